package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitQuestAPI/internal/timeutil"
	"habitQuestAPI/internal/types/profile"
	"habitQuestAPI/internal/types/sleep"
)

type SleepService struct {
	db             *pgxpool.Pool
	profileService *ProfileService
}

func NewSleepService(db *pgxpool.Pool, profileService *ProfileService) *SleepService {
	return &SleepService{db: db, profileService: profileService}
}

// LogSleep upserts the sleep entry for one calendar day. Total hours
// are derived server-side from the clock values. Only a newly created
// row awards XP; editing an existing day's entry does not.
func (s *SleepService) LogSleep(ctx context.Context, p *profile.Profile, req *sleep.LogSleepRequest) (*sleep.LogSleepResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid sleep log: %w", err)
	}

	totalHours, err := timeutil.SleepDuration(req.Bedtime, req.WakeTime)
	if err != nil {
		return nil, fmt.Errorf("invalid sleep times: %w", err)
	}

	logDate := req.LogDate
	if logDate == "" {
		logDate = timeutil.DayKey(time.Now())
	}

	query := `
	INSERT INTO sleep_logs (id, owner_id, log_date, bedtime, wake_time, quality, total_hours, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	ON CONFLICT (owner_id, log_date)
	DO UPDATE SET bedtime = EXCLUDED.bedtime, wake_time = EXCLUDED.wake_time,
	              quality = EXCLUDED.quality, total_hours = EXCLUDED.total_hours,
	              updated_at = EXCLUDED.updated_at
	RETURNING id, owner_id, to_char(log_date, 'YYYY-MM-DD'), bedtime, wake_time, quality, total_hours,
	          created_at, updated_at
	`

	l := &sleep.Log{}
	err = s.db.QueryRow(ctx, query,
		uuid.New().String(), p.ID, logDate, req.Bedtime, req.WakeTime, req.Quality, totalHours, time.Now(),
	).Scan(&l.ID, &l.OwnerID, &l.LogDate, &l.Bedtime, &l.WakeTime, &l.Quality, &l.TotalHours, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to log sleep: %w", err)
	}

	created := firstSleepOfDay(l.CreatedAt, l.UpdatedAt)
	if created {
		msg := fmt.Sprintf("Sleep logged! +%d XP", XPSleepLogged)
		if _, err := s.profileService.AwardXP(ctx, p.ID, XPSleepLogged, msg); err != nil {
			log.Printf("SleepService: failed to award XP for %s: %v", p.ID, err)
		}
	}

	return &sleep.LogSleepResult{Log: l, Created: created}, nil
}

// firstSleepOfDay reports whether the upsert inserted a new row. The
// insert writes the same timestamp to both columns, while a conflict
// update only touches updated_at, so equal timestamps mean a fresh
// entry. This is the gate that keeps XP to one award per day.
func firstSleepOfDay(createdAt, updatedAt time.Time) bool {
	return createdAt.Equal(updatedAt)
}

func (s *SleepService) GetSleepLogs(ctx context.Context, ownerID string) ([]sleep.Log, error) {
	query := `
	SELECT id, owner_id, to_char(log_date, 'YYYY-MM-DD'), bedtime, wake_time, quality, total_hours, created_at, updated_at
	FROM sleep_logs
	WHERE owner_id = $1
	ORDER BY log_date DESC
	`

	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sleep logs: %w", err)
	}
	defer rows.Close()

	logs := []sleep.Log{}
	for rows.Next() {
		var l sleep.Log
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.LogDate, &l.Bedtime, &l.WakeTime, &l.Quality, &l.TotalHours, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sleep log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func (s *SleepService) DeleteSleepLog(ctx context.Context, ownerID, logID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM sleep_logs WHERE id = $1 AND owner_id = $2`, logID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete sleep log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sleep log not found")
	}
	return nil
}

// SleepHours returns all recorded durations, for the progress summary.
func (s *SleepService) SleepHours(ctx context.Context, ownerID string) ([]float64, error) {
	rows, err := s.db.Query(ctx,
		`SELECT total_hours FROM sleep_logs WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sleep hours: %w", err)
	}
	defer rows.Close()

	var hours []float64
	for rows.Next() {
		var h float64
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan sleep hours: %w", err)
		}
		hours = append(hours, h)
	}

	return hours, rows.Err()
}
