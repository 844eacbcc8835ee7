package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
)

// CommentRepository handles database operations for event comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment and fills in its generated fields.
func (r *CommentRepository) Create(ctx context.Context, comment *models.EventComment) error {
	query := `
		INSERT INTO event_comments (event_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, comment.EventID, comment.UserID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment that has not been removed.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.EventComment, error) {
	query := `
		SELECT id, event_id, user_id, content, is_deleted, created_at
		FROM event_comments
		WHERE id = $1 AND is_deleted = FALSE
	`

	var comment models.EventComment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.EventID, &comment.UserID,
		&comment.Content, &comment.IsDeleted, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error getting comment: %w", err)
	}
	return &comment, nil
}

// ListByEvent lists an event's visible comments with author details,
// newest first.
func (r *CommentRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.EventComment, error) {
	query := `
		SELECT ec.id, ec.event_id, ec.user_id, ec.content, ec.created_at,
		       u.first_name, u.last_name, u.profile_photo_url
		FROM event_comments ec
		JOIN users u ON u.id = ec.user_id
		WHERE ec.event_id = $1 AND ec.is_deleted = FALSE AND u.is_deleted = FALSE
		ORDER BY ec.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []models.EventComment
	for rows.Next() {
		var c models.EventComment
		var u models.User
		err := rows.Scan(&c.ID, &c.EventID, &c.UserID, &c.Content, &c.CreatedAt,
			&u.FirstName, &u.LastName, &u.ProfilePhotoURL)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		u.ID = c.UserID
		c.User = &u
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// SoftDelete hides a comment without removing the row.
func (r *CommentRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE event_comments SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}
