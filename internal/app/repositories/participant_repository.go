package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/db"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/dberrors"
)

// JoinResult reports the outcome of a join attempt.
type JoinResult int

const (
	JoinCreated JoinResult = iota
	JoinAlreadyJoined
	JoinEventFull
)

// errAlreadyParticipating forces a rollback out of the join
// transaction; a unique violation leaves the transaction failed, so
// the duplicate outcome cannot ride a commit.
var errAlreadyParticipating = errors.New("already participating")

// ParticipantRepository handles database operations for event participation
type ParticipantRepository struct {
	db *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Join inserts a participation row. The parent event row is locked
// first so concurrent joins serialize on it; under READ COMMITTED the
// count in the conditional insert then always sees every committed
// participation, which keeps the count at or below capacity. The
// duplicate check runs under the same lock, with the unique constraint
// on (event_id, user_id) as the backstop.
func (r *ParticipantRepository) Join(ctx context.Context, eventID, userID int64, capacity int) (JoinResult, error) {
	var outcome JoinResult
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var locked int
		err := tx.QueryRow(ctx,
			`SELECT 1 FROM events WHERE id = $1 AND is_deleted = FALSE FOR UPDATE`, eventID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error locking event row: %w", err)
		}

		// Checked before the capacity gate so a full event still gives
		// an existing participant the idempotent outcome.
		var exists bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM event_participants
				WHERE event_id = $1 AND user_id = $2
			)`, eventID, userID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("error checking participation: %w", err)
		}
		if exists {
			return errAlreadyParticipating
		}

		query := `
			INSERT INTO event_participants (event_id, user_id, status)
			SELECT $1, $2, $3
			WHERE (
				SELECT COUNT(*) FROM event_participants
				WHERE event_id = $1 AND status = $3
			) < $4
		`

		result, err := tx.Exec(ctx, query, eventID, userID, models.ParticipationGoing, capacity)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return errAlreadyParticipating
			}
			return fmt.Errorf("error inserting participation: %w", err)
		}
		if result.RowsAffected() == 0 {
			outcome = JoinEventFull
			return nil
		}
		outcome = JoinCreated
		return nil
	})
	if err != nil {
		if errors.Is(err, errAlreadyParticipating) {
			return JoinAlreadyJoined, nil
		}
		return 0, err
	}
	return outcome, nil
}

// Leave removes a participation row; removed is false when none existed.
func (r *ParticipantRepository) Leave(ctx context.Context, eventID, userID int64) (removed bool, err error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("error removing participation: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountGoing counts the committed participants of an event.
func (r *ParticipantRepository) CountGoing(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_participants WHERE event_id = $1 AND status = $2`,
		eventID, models.ParticipationGoing).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting participants: %w", err)
	}
	return count, nil
}

// IsGoing reports whether a user is a committed participant of an event.
func (r *ParticipantRepository) IsGoing(ctx context.Context, eventID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM event_participants
			WHERE event_id = $1 AND user_id = $2 AND status = $3
		)`, eventID, userID, models.ParticipationGoing).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking participation: %w", err)
	}
	return exists, nil
}

// ListByEvent lists the participants of an event with their user
// details, excluding banned users.
func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.EventParticipant, error) {
	query := `
		SELECT ep.id, ep.event_id, ep.user_id, ep.status, ep.created_at,
		       u.first_name, u.last_name, u.profile_photo_url
		FROM event_participants ep
		JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = $1 AND u.is_deleted = FALSE
		ORDER BY ep.created_at
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing participants: %w", err)
	}
	defer rows.Close()

	var participants []models.EventParticipant
	for rows.Next() {
		var p models.EventParticipant
		var u models.User
		err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.Status, &p.CreatedAt,
			&u.FirstName, &u.LastName, &u.ProfilePhotoURL)
		if err != nil {
			return nil, fmt.Errorf("error scanning participant row: %w", err)
		}
		u.ID = p.UserID
		p.User = &u
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}

	return participants, nil
}

// HistoryByUser lists a user's committed participations with event and
// club details, most recent first.
func (r *ParticipantRepository) HistoryByUser(ctx context.Context, userID int64) ([]dto.ParticipatedEventResponse, error) {
	query := `
		SELECT e.id, e.title, e.event_date, c.name, ep.created_at
		FROM event_participants ep
		JOIN events e ON e.id = ep.event_id
		JOIN clubs c ON c.id = e.club_id
		WHERE ep.user_id = $1 AND ep.status = $2 AND e.is_deleted = FALSE
		ORDER BY ep.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, models.ParticipationGoing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing participation history: %w", err)
	}
	defer rows.Close()

	var history []dto.ParticipatedEventResponse
	for rows.Next() {
		var h dto.ParticipatedEventResponse
		err := rows.Scan(&h.EventID, &h.Title, &h.EventDate, &h.ClubName, &h.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning history row: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return history, nil
}
