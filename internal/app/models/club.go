package models

import "time"

// Club represents a campus club owned by a president
type Club struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	LogoURL     *string    `json:"logoUrl,omitempty" db:"logo_url"`
	Status      ClubStatus `json:"status" db:"status"`
	PresidentID int64      `json:"presidentId" db:"president_id"`
	CreatedBy   int64      `json:"createdBy" db:"created_by"`

	SoftDelete
	Timestamps

	// Related entities
	President *User    `json:"president,omitempty"`
	Events    []*Event `json:"events,omitempty"`
}

// ClubFollower represents a follow relationship, unique per (club, user) pair
type ClubFollower struct {
	ID        int64     `json:"id" db:"id"`
	ClubID    int64     `json:"clubId" db:"club_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty"`
}
