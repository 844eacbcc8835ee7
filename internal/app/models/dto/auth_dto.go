package dto

// RegisterRequest defines the payload for user registration
type RegisterRequest struct {
	StudentNumber string `json:"studentNumber" binding:"required" example:"20210101"`
	Email         string `json:"email" binding:"required,email" example:"deniz@campus.edu.tr"`
	Password      string `json:"password" binding:"required,min=8" example:"s3cretpass"`
	FirstName     string `json:"firstName" binding:"required" example:"Deniz"`
	LastName      string `json:"lastName" binding:"required" example:"Yilmaz"`
	Department    string `json:"department" binding:"required" example:"Computer Engineering"`
	Gender        string `json:"gender" binding:"required" example:"female"`
}

// LoginRequest defines the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID              int64   `json:"id"`
	StudentNumber   string  `json:"studentNumber"`
	Email           string  `json:"email"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Department      string  `json:"department"`
	Gender          string  `json:"gender"`
	Role            string  `json:"role"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Interests       *string `json:"interests,omitempty"`
}

// AuthResponse carries the issued token with the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
