package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitQuestAPI/internal/types/timetable"
)

type TimetableService struct {
	db *pgxpool.Pool
}

func NewTimetableService(db *pgxpool.Pool) *TimetableService {
	return &TimetableService{db: db}
}

func (s *TimetableService) CreateEntry(ctx context.Context, ownerID string, req *timetable.CreateEntryRequest) (*timetable.Entry, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid timetable entry: %w", err)
	}

	e := &timetable.Entry{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		CourseName: req.CourseName,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	query := `
	INSERT INTO timetable_entries (id, owner_id, course_name, day_of_week, start_time, end_time, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.Exec(ctx, query,
		e.ID, e.OwnerID, e.CourseName, e.DayOfWeek, e.StartTime, e.EndTime, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create timetable entry: %w", err)
	}

	return e, nil
}

func (s *TimetableService) GetEntries(ctx context.Context, ownerID string) ([]timetable.Entry, error) {
	query := `
	SELECT id, owner_id, course_name, day_of_week, start_time, end_time, created_at, updated_at
	FROM timetable_entries
	WHERE owner_id = $1
	ORDER BY day_of_week, start_time
	`
	return s.queryEntries(ctx, query, ownerID)
}

// GetEntriesForDay returns the classes on one weekday, in start order.
// Used by the daily-plan prompt.
func (s *TimetableService) GetEntriesForDay(ctx context.Context, ownerID string, dayOfWeek int) ([]timetable.Entry, error) {
	query := `
	SELECT id, owner_id, course_name, day_of_week, start_time, end_time, created_at, updated_at
	FROM timetable_entries
	WHERE owner_id = $1 AND day_of_week = $2
	ORDER BY start_time
	`
	return s.queryEntries(ctx, query, ownerID, dayOfWeek)
}

func (s *TimetableService) queryEntries(ctx context.Context, query string, args ...any) ([]timetable.Entry, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get timetable entries: %w", err)
	}
	defer rows.Close()

	entries := []timetable.Entry{}
	for rows.Next() {
		var e timetable.Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.CourseName, &e.DayOfWeek, &e.StartTime, &e.EndTime, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timetable entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *TimetableService) UpdateEntry(ctx context.Context, ownerID, entryID string, req *timetable.UpdateEntryRequest) (*timetable.Entry, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid timetable entry: %w", err)
	}

	query := `
	UPDATE timetable_entries
	SET course_name = $3, day_of_week = $4, start_time = $5, end_time = $6, updated_at = $7
	WHERE id = $1 AND owner_id = $2
	RETURNING id, owner_id, course_name, day_of_week, start_time, end_time, created_at, updated_at
	`

	e := &timetable.Entry{}
	err := s.db.QueryRow(ctx, query,
		entryID, ownerID, req.CourseName, req.DayOfWeek, req.StartTime, req.EndTime, time.Now(),
	).Scan(&e.ID, &e.OwnerID, &e.CourseName, &e.DayOfWeek, &e.StartTime, &e.EndTime, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("timetable entry not found")
		}
		return nil, fmt.Errorf("failed to update timetable entry: %w", err)
	}

	return e, nil
}

func (s *TimetableService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM timetable_entries WHERE id = $1 AND owner_id = $2`, entryID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete timetable entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("timetable entry not found")
	}
	return nil
}
