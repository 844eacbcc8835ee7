package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/pkg/dberrors"
)

// ClubFollowerRepository handles database operations for club follow relationships
type ClubFollowerRepository struct {
	db *pgxpool.Pool
}

// NewClubFollowerRepository creates a new ClubFollowerRepository
func NewClubFollowerRepository(db *pgxpool.Pool) *ClubFollowerRepository {
	return &ClubFollowerRepository{db: db}
}

// Follow inserts a follow relationship. The unique constraint is the
// source of truth for idempotency: created is false when the pair
// already existed.
func (r *ClubFollowerRepository) Follow(ctx context.Context, clubID, userID int64) (created bool, err error) {
	_, err = r.db.Exec(ctx,
		`INSERT INTO club_followers (club_id, user_id) VALUES ($1, $2)`, clubID, userID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("error inserting follower: %w", err)
	}
	return true, nil
}

// Unfollow removes a follow relationship; removed is false when no
// relation existed.
func (r *ClubFollowerRepository) Unfollow(ctx context.Context, clubID, userID int64) (removed bool, err error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM club_followers WHERE club_id = $1 AND user_id = $2`, clubID, userID)
	if err != nil {
		return false, fmt.Errorf("error removing follower: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListByClub lists the followers of a club with their user details,
// excluding banned users.
func (r *ClubFollowerRepository) ListByClub(ctx context.Context, clubID int64) ([]models.ClubFollower, error) {
	query := `
		SELECT cf.id, cf.club_id, cf.user_id, cf.created_at,
		       u.first_name, u.last_name, u.email
		FROM club_followers cf
		JOIN users u ON u.id = cf.user_id
		WHERE cf.club_id = $1 AND u.is_deleted = FALSE
		ORDER BY cf.created_at
	`

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("error listing followers: %w", err)
	}
	defer rows.Close()

	var followers []models.ClubFollower
	for rows.Next() {
		var f models.ClubFollower
		var u models.User
		err := rows.Scan(&f.ID, &f.ClubID, &f.UserID, &f.CreatedAt,
			&u.FirstName, &u.LastName, &u.Email)
		if err != nil {
			return nil, fmt.Errorf("error scanning follower row: %w", err)
		}
		u.ID = f.UserID
		f.User = &u
		followers = append(followers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follower rows: %w", err)
	}

	return followers, nil
}

// UserIDsByClub lists the ids of a club's followers, used by the
// event-creation notification fan-out.
func (r *ClubFollowerRepository) UserIDsByClub(ctx context.Context, clubID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM club_followers WHERE club_id = $1`, clubID)
	if err != nil {
		return nil, fmt.Errorf("error listing follower ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning follower id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follower ids: %w", err)
	}
	return ids, nil
}

// ClubsByUser lists the active clubs a user follows.
func (r *ClubFollowerRepository) ClubsByUser(ctx context.Context, userID int64) ([]models.Club, error) {
	query := `
		SELECT c.id, c.name
		FROM club_followers cf
		JOIN clubs c ON c.id = cf.club_id
		WHERE cf.user_id = $1 AND c.is_deleted = FALSE
		ORDER BY cf.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing followed clubs: %w", err)
	}
	defer rows.Close()

	var clubs []models.Club
	for rows.Next() {
		var c models.Club
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", err)
	}
	return clubs, nil
}
