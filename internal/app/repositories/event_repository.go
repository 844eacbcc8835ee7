package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, club_id, title, description, image_url, event_date, location,
	capacity, created_by, is_deleted, deleted_at, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID,
		&e.ClubID,
		&e.Title,
		&e.Description,
		&e.ImageURL,
		&e.EventDate,
		&e.Location,
		&e.Capacity,
		&e.CreatedBy,
		&e.IsDeleted,
		&e.DeletedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event and returns the generated id.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (club_id, title, description, image_url, event_date, location, capacity, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		event.ClubID, event.Title, event.Description, event.ImageURL,
		event.EventDate, event.Location, event.Capacity, event.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting event: %w", err)
	}

	return id, nil
}

// GetByID retrieves an event by id, including soft-deleted rows.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error querying event: %w", err)
	}
	return event, nil
}

// Update applies only the fields present in the request.
func (r *EventRepository) Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) error {
	builder := squirrel.Update("events").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ? AND is_deleted = FALSE", id).
		PlaceholderFormat(squirrel.Dollar)

	if req.Title != nil {
		builder = builder.Set("title", *req.Title)
	}
	if req.Description != nil {
		builder = builder.Set("description", *req.Description)
	}
	if req.EventDate != nil {
		builder = builder.Set("event_date", *req.EventDate)
	}
	if req.Location != nil {
		builder = builder.Set("location", *req.Location)
	}
	if req.Capacity != nil {
		builder = builder.Set("capacity", *req.Capacity)
	}
	if req.ImageURL != nil {
		builder = builder.Set("image_url", *req.ImageURL)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// SoftDelete marks an event deleted.
func (r *EventRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE events SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// List retrieves non-deleted events belonging to active clubs, filtered
// by a case-insensitive search over title and description and an
// optional date lower bound, ordered by event date.
func (r *EventRepository) List(ctx context.Context, filter *dto.EventFilterRequest) ([]models.Event, int64, error) {
	builder := squirrel.Select(
		"e.id", "e.club_id", "e.title", "e.description", "e.image_url",
		"e.event_date", "e.location", "e.capacity", "e.created_by",
		"e.is_deleted", "e.deleted_at", "e.created_at", "e.updated_at",
		"c.name AS club_name",
		"COUNT(*) OVER() AS total_count",
	).
		From("events e").
		Join("clubs c ON c.id = e.club_id").
		Where("e.is_deleted = FALSE").
		Where("c.is_deleted = FALSE").
		Where(squirrel.Eq{"c.status": models.ClubStatusActive}).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"e.title": pattern},
			squirrel.ILike{"e.description": pattern},
		})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"e.event_date": *filter.DateFrom})
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	builder = builder.OrderBy("e.event_date").Limit(uint64(limit)).Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	var total int64
	for rows.Next() {
		var e models.Event
		var clubName string
		err := rows.Scan(
			&e.ID, &e.ClubID, &e.Title, &e.Description, &e.ImageURL,
			&e.EventDate, &e.Location, &e.Capacity, &e.CreatedBy,
			&e.IsDeleted, &e.DeletedAt, &e.CreatedAt, &e.UpdatedAt,
			&clubName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		e.Club = &models.Club{ID: e.ClubID, Name: clubName}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, total, nil
}

// ListByClub lists the non-deleted events of a club, soonest first.
func (r *EventRepository) ListByClub(ctx context.Context, clubID int64) ([]models.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE club_id = $1 AND is_deleted = FALSE
		ORDER BY event_date`, eventColumns)

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("error listing club events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		err := rows.Scan(
			&e.ID, &e.ClubID, &e.Title, &e.Description, &e.ImageURL,
			&e.EventDate, &e.Location, &e.Capacity, &e.CreatedBy,
			&e.IsDeleted, &e.DeletedAt, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

// CountActive counts non-deleted events.
func (r *EventRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE is_deleted = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return count, nil
}
