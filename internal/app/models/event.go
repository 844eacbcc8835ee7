package models

import "time"

// Event represents an event published by a club
type Event struct {
	ID          int64     `json:"id" db:"id"`
	ClubID      int64     `json:"clubId" db:"club_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	EventDate   time.Time `json:"eventDate" db:"event_date"`
	Location    string    `json:"location" db:"location"`
	Capacity    int       `json:"capacity" db:"capacity"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`

	SoftDelete
	Timestamps

	// Related entities
	Club *Club `json:"club,omitempty"`
}

// EventParticipant represents a participation row, unique per (event, user) pair
type EventParticipant struct {
	ID        int64               `json:"id" db:"id"`
	EventID   int64               `json:"eventId" db:"event_id"`
	UserID    int64               `json:"userId" db:"user_id"`
	Status    ParticipationStatus `json:"status" db:"status"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty"`
}

// EventComment represents a comment left on an event
type EventComment struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"eventId" db:"event_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	IsDeleted bool      `json:"-" db:"is_deleted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty"`
}
