package dto

import "time"

// CreateEventRequest defines the payload for event creation
type CreateEventRequest struct {
	ClubID      int64     `json:"clubId" binding:"required"`
	Title       string    `json:"title" binding:"required" example:"Autumn Hack Night"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
}

// UpdateEventRequest defines a partial event update; only present fields
// are applied.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	EventDate   *time.Time `json:"eventDate,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
}

// EventFilterRequest captures the list filters
type EventFilterRequest struct {
	Search   string
	DateFrom *time.Time
	Page     int
	Limit    int
}

// RemoveParticipantRequest identifies the participant to remove
type RemoveParticipantRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

// EventResponse is the public representation of an event
type EventResponse struct {
	ID          int64     `json:"id"`
	ClubID      int64     `json:"clubId"`
	ClubName    string    `json:"clubName,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventListResponse carries a page of events
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// EventDetailResponse is the full event view with the live participant
// count. IsJoined is only present when a viewer identity was supplied.
type EventDetailResponse struct {
	EventResponse
	ParticipantCount int   `json:"participantCount"`
	IsJoined         *bool `json:"isJoined,omitempty"`
}

// EventParticipantResponse is one entry of an event's participant list
type EventParticipantResponse struct {
	UserID          int64     `json:"userId"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfilePhotoURL *string   `json:"profilePhotoUrl,omitempty"`
	Status          string    `json:"status"`
	JoinedAt        time.Time `json:"joinedAt"`
}
