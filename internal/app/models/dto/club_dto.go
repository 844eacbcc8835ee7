package dto

import "time"

// CreateClubRequest defines the payload for club creation
type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required" example:"Robotics Club"`
	Description string  `json:"description" example:"We build robots"`
	LogoURL     *string `json:"logoUrl,omitempty"`
}

// UpdateClubRequest defines the payload for the admin club update.
// All fields are optional; only present fields are applied. Setting
// presidentId triggers the president-handoff role side effects.
type UpdateClubRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
	PresidentID *int64  `json:"presidentId,omitempty"`
}

// RemoveMemberRequest identifies the follower to remove from a club
type RemoveMemberRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

// ClubResponse is the public representation of a club
type ClubResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LogoURL     *string   `json:"logoUrl,omitempty"`
	Status      string    `json:"status"`
	PresidentID int64     `json:"presidentId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ClubListResponse carries a page of clubs
type ClubListResponse struct {
	Clubs      []ClubResponse `json:"clubs"`
	Pagination PaginationInfo `json:"pagination"`
}

// ClubMemberResponse is one entry of a club's follower roster
type ClubMemberResponse struct {
	UserID     int64     `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	FollowedAt time.Time `json:"followedAt"`
}

// ClubDetailResponse is the full club view. Members is populated only
// when the viewer is the president or an admin.
type ClubDetailResponse struct {
	ClubResponse
	Events  []EventResponse      `json:"events"`
	Members []ClubMemberResponse `json:"members"`
}
