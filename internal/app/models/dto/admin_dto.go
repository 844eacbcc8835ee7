package dto

// DashboardStatsResponse aggregates the admin dashboard counters
type DashboardStatsResponse struct {
	ActiveUsers  int64 `json:"users"`
	ActiveClubs  int64 `json:"activeClubs"`
	PendingClubs int64 `json:"pendingClubs"`
	ActiveEvents int64 `json:"events"`
}

// AdminUserResponse is the admin-facing representation of a user
type AdminUserResponse struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	IsActive   bool   `json:"isActive"`
}

// AdminUserListResponse carries a page of users with pagination metadata
type AdminUserListResponse struct {
	Users      []AdminUserResponse `json:"users"`
	Pagination PaginationInfo      `json:"pagination"`
}

// UpdateRoleRequest defines the payload for a manual role override
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required" example:"club_admin"`
}

// AnnouncementRequest defines the payload for a broadcast announcement
type AnnouncementRequest struct {
	Message string `json:"message" binding:"required"`
}

// BanResponse reports the outcome of a ban toggle
type BanResponse struct {
	Message  string `json:"message"`
	IsActive bool   `json:"isActive"`
}
