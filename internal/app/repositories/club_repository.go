package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/db"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/dberrors"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{db: db}
}

const clubColumns = `id, name, description, logo_url, status, president_id, created_by,
	is_deleted, deleted_at, created_at, updated_at`

func scanClub(row pgx.Row) (*models.Club, error) {
	var c models.Club
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.LogoURL,
		&c.Status,
		&c.PresidentID,
		&c.CreatedBy,
		&c.IsDeleted,
		&c.DeletedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new club and returns the generated id.
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) (int64, error) {
	query := `
		INSERT INTO clubs (name, description, logo_url, status, president_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		club.Name, club.Description, club.LogoURL, club.Status, club.PresidentID, club.CreatedBy,
	).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrClubNameExists
		}
		return 0, fmt.Errorf("error inserting club: %w", err)
	}

	return id, nil
}

// GetByID retrieves a club by id, including soft-deleted rows; the
// service layer decides how deletion is surfaced.
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	query := fmt.Sprintf(`SELECT %s FROM clubs WHERE id = $1`, clubColumns)

	club, err := scanClub(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error querying club: %w", err)
	}
	return club, nil
}

// ListPublic lists non-deleted active clubs, newest first, with a
// windowed total count.
func (r *ClubRepository) ListPublic(ctx context.Context, page, limit int) ([]models.Club, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM clubs
		WHERE is_deleted = FALSE AND status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, clubColumns)

	offset, limit := helpers.CalculateOffsetLimit(page, limit)
	rows, err := r.db.Query(ctx, query, models.ClubStatusActive, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing clubs: %w", err)
	}
	defer rows.Close()

	var clubs []models.Club
	var total int64
	for rows.Next() {
		var c models.Club
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.LogoURL, &c.Status, &c.PresidentID, &c.CreatedBy,
			&c.IsDeleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating club rows: %w", err)
	}

	return clubs, total, nil
}

// ListAll lists every non-deleted club regardless of status.
func (r *ClubRepository) ListAll(ctx context.Context) ([]models.Club, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM clubs WHERE is_deleted = FALSE ORDER BY created_at DESC`, clubColumns)
	return r.list(ctx, query)
}

// ListByPresident lists the non-deleted clubs presided over by a user.
func (r *ClubRepository) ListByPresident(ctx context.Context, presidentID int64) ([]models.Club, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM clubs
		WHERE is_deleted = FALSE AND president_id = $1
		ORDER BY created_at DESC`, clubColumns)
	return r.list(ctx, query, presidentID)
}

func (r *ClubRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Club, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing clubs: %w", err)
	}
	defer rows.Close()

	var clubs []models.Club
	for rows.Next() {
		var c models.Club
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.LogoURL, &c.Status, &c.PresidentID, &c.CreatedBy,
			&c.IsDeleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", err)
	}
	return clubs, nil
}

// UpdateStatus transitions a club's status.
func (r *ClubRepository) UpdateStatus(ctx context.Context, id int64, status models.ClubStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE clubs SET status = $1, updated_at = NOW() WHERE id = $2 AND is_deleted = FALSE`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating club status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// SoftDelete marks a club deleted. Events and comments are not cascaded;
// they check club deletion status when surfaced.
func (r *ClubRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE clubs SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("error deleting club: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// UpdateWithHandoff applies club field changes and the president-handoff
// role side effects in a single transaction. Either the club row and the
// role updates all commit, or none do.
func (r *ClubRepository) UpdateWithHandoff(ctx context.Context, club *models.Club, demoteUserID, promoteUserID *int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE clubs
			SET name = $1, description = $2, logo_url = $3, president_id = $4, updated_at = NOW()
			WHERE id = $5 AND is_deleted = FALSE`,
			club.Name, club.Description, club.LogoURL, club.PresidentID, club.ID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrClubNameExists
			}
			return fmt.Errorf("error updating club: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrClubNotFound
		}

		if demoteUserID != nil {
			if err := updateRoleTx(ctx, tx, *demoteUserID, models.RoleStudent); err != nil {
				return err
			}
		}
		if promoteUserID != nil {
			if err := updateRoleTx(ctx, tx, *promoteUserID, models.RoleClubAdmin); err != nil {
				return err
			}
		}
		return nil
	})
}

func updateRoleTx(ctx context.Context, tx pgx.Tx, userID int64, role models.Role) error {
	result, err := tx.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, userID)
	if err != nil {
		return fmt.Errorf("error updating role for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// CountByStatus counts non-deleted clubs in a given status.
func (r *ClubRepository) CountByStatus(ctx context.Context, status models.ClubStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM clubs WHERE is_deleted = FALSE AND status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting clubs: %w", err)
	}
	return count, nil
}
