package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitQuestAPI/internal/types/notification"
)

// PushNotificationProvider is implemented by the FCM service and
// injected from main.go so the service stays testable without Firebase.
type PushNotificationProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string) error
}

type NotificationService struct {
	db           *pgxpool.Pool
	pushProvider PushNotificationProvider
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{db: db}
}

// SetPushProvider injects the real FCM provider from main.go.
func (s *NotificationService) SetPushProvider(provider PushNotificationProvider) {
	s.pushProvider = provider
}

// Create persists a notification for the user's feed. The client shows
// these as transient toasts; the row is the durable record behind them.
func (s *NotificationService) Create(ctx context.Context, userID uuid.UUID, severity notification.Severity, glyph, title, body string) (*notification.Notification, error) {
	query := `
	INSERT INTO notifications (id, user_id, severity, glyph, title, body, is_read, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, false, $7)
	RETURNING id, user_id, severity, glyph, title, body, is_read, created_at
	`

	notif := &notification.Notification{}
	err := s.db.QueryRow(ctx, query, uuid.New(), userID, severity, glyph, title, body, time.Now()).Scan(
		&notif.ID,
		&notif.UserID,
		&notif.Severity,
		&notif.Glyph,
		&notif.Title,
		&notif.Body,
		&notif.IsRead,
		&notif.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notif, nil
}

// CreateAndPush persists the notification and additionally delivers it
// to the user's registered devices. Push failures are logged, never
// propagated: the feed row is the source of truth.
func (s *NotificationService) CreateAndPush(ctx context.Context, userID uuid.UUID, severity notification.Severity, glyph, title, body string) (*notification.Notification, error) {
	notif, err := s.Create(ctx, userID, severity, glyph, title, body)
	if err != nil {
		return nil, err
	}

	if s.pushProvider != nil {
		tokens, err := s.getDeviceTokens(ctx, userID)
		if err != nil {
			log.Printf("Notification: failed to load device tokens for %s: %v", userID, err)
			return notif, nil
		}
		if err := s.pushProvider.SendPush(ctx, tokens, title, body); err != nil {
			log.Printf("Notification: push failed for %s: %v", userID, err)
		}
	}

	return notif, nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
	SELECT id, user_id, severity, glyph, title, body, is_read, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	notifications := []notification.Notification{}
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Severity, &n.Glyph, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

// RegisterDevice stores a push token, replacing the platform entry if
// the token is already known.
func (s *NotificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, token, platform string) error {
	query := `
	INSERT INTO device_tokens (owner_id, token, platform, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (owner_id, token) DO UPDATE SET platform = EXCLUDED.platform
	`
	if _, err := s.db.Exec(ctx, query, userID, token, platform, time.Now()); err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (s *NotificationService) getDeviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx,
		`SELECT token, platform FROM device_tokens WHERE owner_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.Token, &t.Platform); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
