package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitQuestAPI/internal/progress"
	"habitQuestAPI/internal/timeutil"
	"habitQuestAPI/internal/types/habit"
	"habitQuestAPI/internal/types/profile"
)

type HabitService struct {
	db             *pgxpool.Pool
	profileService *ProfileService
}

func NewHabitService(db *pgxpool.Pool, profileService *ProfileService) *HabitService {
	return &HabitService{db: db, profileService: profileService}
}

func (s *HabitService) CreateHabit(ctx context.Context, ownerID string, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid habit: %w", err)
	}
	if !req.IsBoolean && req.GoalValue < 1 {
		return nil, fmt.Errorf("quantity habits need a goal of at least 1")
	}

	h := &habit.Habit{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      req.Name,
		Frequency: req.Frequency,
		IsBoolean: req.IsBoolean,
		GoalValue: req.GoalValue,
		Unit:      req.Unit,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
	INSERT INTO habits (id, owner_id, name, frequency, is_boolean, goal_value, unit, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.Exec(ctx, query,
		h.ID, h.OwnerID, h.Name, h.Frequency, h.IsBoolean, h.GoalValue, h.Unit, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return h, nil
}

func (s *HabitService) GetHabits(ctx context.Context, ownerID string) ([]habit.Habit, error) {
	query := `
	SELECT id, owner_id, name, frequency, is_boolean, goal_value, unit, created_at, updated_at
	FROM habits
	WHERE owner_id = $1
	ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}
	defer rows.Close()

	habits := []habit.Habit{}
	for rows.Next() {
		var h habit.Habit
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Frequency, &h.IsBoolean, &h.GoalValue, &h.Unit, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *HabitService) GetHabit(ctx context.Context, ownerID, habitID string) (*habit.Habit, error) {
	query := `
	SELECT id, owner_id, name, frequency, is_boolean, goal_value, unit, created_at, updated_at
	FROM habits
	WHERE id = $1 AND owner_id = $2
	`

	h := &habit.Habit{}
	err := s.db.QueryRow(ctx, query, habitID, ownerID).Scan(
		&h.ID, &h.OwnerID, &h.Name, &h.Frequency, &h.IsBoolean, &h.GoalValue, &h.Unit, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("habit not found")
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return h, nil
}

func (s *HabitService) UpdateHabit(ctx context.Context, ownerID, habitID string, req *habit.UpdateHabitRequest) (*habit.Habit, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid habit: %w", err)
	}
	if !req.IsBoolean && req.GoalValue < 1 {
		return nil, fmt.Errorf("quantity habits need a goal of at least 1")
	}

	query := `
	UPDATE habits
	SET name = $3, frequency = $4, is_boolean = $5, goal_value = $6, unit = $7, updated_at = $8
	WHERE id = $1 AND owner_id = $2
	RETURNING id, owner_id, name, frequency, is_boolean, goal_value, unit, created_at, updated_at
	`

	h := &habit.Habit{}
	err := s.db.QueryRow(ctx, query,
		habitID, ownerID, req.Name, req.Frequency, req.IsBoolean, req.GoalValue, req.Unit, time.Now(),
	).Scan(&h.ID, &h.OwnerID, &h.Name, &h.Frequency, &h.IsBoolean, &h.GoalValue, &h.Unit, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("habit not found")
		}
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	return h, nil
}

func (s *HabitService) DeleteHabit(ctx context.Context, ownerID, habitID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM habits WHERE id = $1 AND owner_id = $2`, habitID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("habit not found")
	}
	return nil
}

// LoadSnapshot rebuilds the in-memory view of a user's habits and full
// log history. Callers rebuild wholesale on each use instead of
// reconciling increments.
func (s *HabitService) LoadSnapshot(ctx context.Context, ownerID string) (*habit.Snapshot, error) {
	habits, err := s.GetHabits(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, owner_id, habit_id, to_char(log_date, 'YYYY-MM-DD'), completed, value, created_at, updated_at
	FROM habit_logs
	WHERE owner_id = $1
	ORDER BY log_date
	`

	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit logs: %w", err)
	}
	defer rows.Close()

	logs := []habit.Log{}
	for rows.Next() {
		var l habit.Log
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.HabitID, &l.LogDate, &l.Completed, &l.Value, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &habit.Snapshot{Habits: habits, Logs: logs}, nil
}

// LogHabit upserts today's log for the habit. XP is awarded only on
// the transition from incomplete to complete for that day, and the
// streak is recomputed afterwards over a fresh snapshot.
func (s *HabitService) LogHabit(ctx context.Context, p *profile.Profile, habitID string, req *habit.LogHabitRequest) (*habit.Log, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid log: %w", err)
	}

	h, err := s.GetHabit(ctx, p.ID, habitID)
	if err != nil {
		return nil, err
	}

	today := timeutil.DayKey(time.Now())
	wasComplete := false

	var existing habit.Log
	err = s.db.QueryRow(ctx,
		`SELECT id, completed, value FROM habit_logs WHERE owner_id = $1 AND habit_id = $2 AND log_date = $3`,
		p.ID, habitID, today,
	).Scan(&existing.ID, &existing.Completed, &existing.Value)
	switch {
	case err == nil:
		wasComplete = h.IsComplete(&existing)
	case errors.Is(err, pgx.ErrNoRows):
		// first log for this habit today
	default:
		return nil, fmt.Errorf("failed to check existing log: %w", err)
	}

	query := `
	INSERT INTO habit_logs (id, owner_id, habit_id, log_date, completed, value, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	ON CONFLICT (owner_id, habit_id, log_date)
	DO UPDATE SET completed = EXCLUDED.completed, value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	RETURNING id, owner_id, habit_id, to_char(log_date, 'YYYY-MM-DD'), completed, value, created_at, updated_at
	`

	l := &habit.Log{}
	err = s.db.QueryRow(ctx, query,
		uuid.New().String(), p.ID, habitID, today, req.Completed, req.Value, time.Now(),
	).Scan(&l.ID, &l.OwnerID, &l.HabitID, &l.LogDate, &l.Completed, &l.Value, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to log habit: %w", err)
	}

	if !wasComplete && h.IsComplete(l) {
		msg := fmt.Sprintf("%s completed! +%d XP", h.Name, XPHabitCompleted)
		if _, err := s.profileService.AwardXP(ctx, p.ID, XPHabitCompleted, msg); err != nil {
			log.Printf("HabitService: failed to award XP for %s: %v", p.ID, err)
		}
	}

	if err := s.RecomputeStreak(ctx, p); err != nil {
		log.Printf("HabitService: streak recompute failed for %s: %v", p.ID, err)
	}

	return l, nil
}

// RecomputeStreak runs the pure streak walk over a fresh snapshot and
// persists the result through the profile service.
func (s *HabitService) RecomputeStreak(ctx context.Context, p *profile.Profile) error {
	snap, err := s.LoadSnapshot(ctx, p.ID)
	if err != nil {
		return err
	}

	computed := progress.ComputeStreak(snap, time.Now())
	return s.profileService.RecordStreak(ctx, p, computed)
}

// GetLogsForDate returns the user's logs on one calendar day.
func (s *HabitService) GetLogsForDate(ctx context.Context, ownerID, date string) ([]habit.Log, error) {
	query := `
	SELECT id, owner_id, habit_id, to_char(log_date, 'YYYY-MM-DD'), completed, value, created_at, updated_at
	FROM habit_logs
	WHERE owner_id = $1 AND log_date = $2
	ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit logs: %w", err)
	}
	defer rows.Close()

	logs := []habit.Log{}
	for rows.Next() {
		var l habit.Log
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.HabitID, &l.LogDate, &l.Completed, &l.Value, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
