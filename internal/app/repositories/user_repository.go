package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/dberrors"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, student_number, email, password_hash, first_name, last_name,
	department, gender, role, profile_photo_url, bio, interests,
	is_deleted, deleted_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.StudentNumber,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Department,
		&u.Gender,
		&u.Role,
		&u.ProfilePhotoURL,
		&u.Bio,
		&u.Interests,
		&u.IsDeleted,
		&u.DeletedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and returns the generated id.
// Unique violations are translated to the matching conflict errors.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (student_number, email, password_hash, first_name, last_name, department, gender, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		user.StudentNumber, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Department, user.Gender, user.Role,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_student_number_key") {
			return 0, apperrors.ErrStudentNumberExists
		}
		return 0, fmt.Errorf("error inserting user: %w", err)
	}

	return id, nil
}

// FindByEmail retrieves a user by email, including soft-deleted rows so
// that a banned account can be reported distinctly at login.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by id, including soft-deleted rows.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	return user, nil
}

// UpdateRole overrides a user's role.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("error updating user role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateProfile persists the profile fields of a user.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, department = $3,
		    bio = $4, interests = $5, profile_photo_url = $6, updated_at = NOW()
		WHERE id = $7`,
		user.FirstName, user.LastName, user.Department,
		user.Bio, user.Interests, user.ProfilePhotoURL, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetDeleted flips the soft-delete flag; used by the admin ban toggle.
func (r *UserRepository) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	var deletedAt *time.Time
	if deleted {
		now := time.Now()
		deletedAt = &now
	}

	result, err := r.db.Exec(ctx,
		`UPDATE users SET is_deleted = $1, deleted_at = $2, updated_at = NOW() WHERE id = $3`,
		deleted, deletedAt, id)
	if err != nil {
		return fmt.Errorf("error toggling user deletion: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Search lists users matching the search term in email or name, newest
// first, with a windowed total count.
func (r *UserRepository) Search(ctx context.Context, search string, page, limit int) ([]models.User, int64, error) {
	builder := squirrel.Select(
		"id", "student_number", "email", "password_hash", "first_name", "last_name",
		"department", "gender", "role", "profile_photo_url", "bio", "interests",
		"is_deleted", "deleted_at", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("users").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}

	offset, limit := helpers.CalculateOffsetLimit(page, limit)
	builder = builder.OrderBy("created_at DESC").Limit(uint64(limit)).Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []models.User
	var total int64
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID, &u.StudentNumber, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Department, &u.Gender, &u.Role, &u.ProfilePhotoURL, &u.Bio, &u.Interests,
			&u.IsDeleted, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// CountActive counts non-deleted users.
func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE is_deleted = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// ActiveIDs lists the ids of all non-deleted users, used by the
// broadcast announcement fan-out.
func (r *UserRepository) ActiveIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM users WHERE is_deleted = FALSE`)
	if err != nil {
		return nil, fmt.Errorf("error listing active user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user ids: %w", err)
	}
	return ids, nil
}
