package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// BulkCreate inserts one notification per recipient using the bulk copy
// protocol, so fan-out to large audiences stays a single round trip.
// The copy is all-or-nothing, so on failure it falls back to per-row
// inserts; one bad recipient must not cost the rest their notification.
func (r *NotificationRepository) BulkCreate(ctx context.Context, userIDs []int64, clubID, eventID *int64, message string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, []any{id, clubID, eventID, message})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"notifications"},
		[]string{"user_id", "club_id", "event_id", "message"},
		pgx.CopyFromRows(rows))
	if err == nil {
		return copied, nil
	}

	var created int64
	var lastErr error
	for _, id := range userIDs {
		_, insertErr := r.db.Exec(ctx, `
			INSERT INTO notifications (user_id, club_id, event_id, message)
			VALUES ($1, $2, $3, $4)`, id, clubID, eventID, message)
		if insertErr != nil {
			lastErr = insertErr
			continue
		}
		created++
	}
	if created == 0 {
		return 0, fmt.Errorf("error bulk creating notifications: %w", lastErr)
	}
	return created, nil
}

// ListByUser lists a user's notifications, unread first and newest
// first within each group.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Notification, int, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	queryBuilder := squirrel.Select(
		"id", "user_id", "club_id", "event_id", "message", "is_read", "created_at",
		"COUNT(*) OVER() AS total_count").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("is_read ASC", "created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building notification query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	var total int
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.ClubID, &n.EventID,
			&n.Message, &n.IsRead, &n.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, total, nil
}

// CountUnread counts a user's unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a notification read. The user filter keeps one user
// from touching another's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications read and reports how
// many changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return result.RowsAffected(), nil
}
