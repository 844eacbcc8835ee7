package models

import "time"

// Role defines the user role type
type Role string

const (
	RoleStudent   Role = "student"
	RoleClubAdmin Role = "club_admin"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether the role is one of the enumerated values.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleClubAdmin, RoleAdmin:
		return true
	}
	return false
}

// ClubStatus defines the approval-workflow state of a club
type ClubStatus string

const (
	ClubStatusPending ClubStatus = "pending"
	ClubStatusActive  ClubStatus = "active"
	ClubStatusClosed  ClubStatus = "closed"
)

// IsValid reports whether the status is one of the enumerated values.
func (s ClubStatus) IsValid() bool {
	switch s {
	case ClubStatusPending, ClubStatusActive, ClubStatusClosed:
		return true
	}
	return false
}

// ParticipationStatus defines how a user participates in an event
type ParticipationStatus string

const (
	ParticipationGoing      ParticipationStatus = "going"
	ParticipationInterested ParticipationStatus = "interested"
)

// SoftDelete carries the shared lifecycle fields for entities that are
// never physically removed.
type SoftDelete struct {
	IsDeleted bool       `json:"-" db:"is_deleted"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// Timestamps carries the shared audit fields.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
