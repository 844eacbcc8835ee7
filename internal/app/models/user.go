package models

// User defines the user model based on the 'users' table
type User struct {
	ID              int64   `json:"id" db:"id" example:"1"`                              // Unique identifier for the user
	StudentNumber   string  `json:"studentNumber" db:"student_number" example:"20210101"` // Externally assigned student number
	Email           string  `json:"email" db:"email" example:"user@campus.edu.tr"`       // User's email address, unique among non-deleted users
	PasswordHash    string  `json:"-" db:"password_hash"`                                // Hashed password (excluded from JSON)
	FirstName       string  `json:"firstName" db:"first_name" example:"Deniz"`
	LastName        string  `json:"lastName" db:"last_name" example:"Yilmaz"`
	Department      string  `json:"department" db:"department" example:"Computer Engineering"`
	Gender          string  `json:"gender" db:"gender" example:"female"`
	Role            Role    `json:"role" db:"role" example:"student"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`
	Bio             *string `json:"bio,omitempty" db:"bio"`
	Interests       *string `json:"interests,omitempty" db:"interests"`

	SoftDelete
	Timestamps
}

// FullName returns the display name used in rosters and comment listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
