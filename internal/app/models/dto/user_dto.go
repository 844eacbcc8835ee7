package dto

import "time"

// UpdateProfileRequest defines a partial profile update
type UpdateProfileRequest struct {
	FirstName       *string `json:"firstName,omitempty"`
	LastName        *string `json:"lastName,omitempty"`
	Department      *string `json:"department,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Interests       *string `json:"interests,omitempty"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
}

// ParticipatedEventResponse is one event a user joined
type ParticipatedEventResponse struct {
	EventID   int64     `json:"eventId"`
	Title     string    `json:"title"`
	EventDate time.Time `json:"eventDate"`
	ClubName  string    `json:"clubName"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// FollowedClubResponse is one club a user follows
type FollowedClubResponse struct {
	ClubID int64  `json:"clubId"`
	Name   string `json:"name"`
}

// ProfileResponse is the full profile view with activity
type ProfileResponse struct {
	Profile            UserResponse                `json:"profile"`
	ParticipatedEvents []ParticipatedEventResponse `json:"participatedEvents"`
	FollowedClubs      []FollowedClubResponse      `json:"followedClubs"`
}
