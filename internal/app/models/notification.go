package models

import "time"

// Notification represents a message delivered to a single user
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ClubID    *int64    `json:"clubId,omitempty" db:"club_id"`
	EventID   *int64    `json:"eventId,omitempty" db:"event_id"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
