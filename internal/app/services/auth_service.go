package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/auth"
)

var studentNumberRegex = regexp.MustCompile(`^\d{8}$`)

// authUserStore is the slice of the user repository AuthService needs.
type authUserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService handles registration, login and identity lookups
type AuthService struct {
	userStore  authUserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore authUserStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userStore:  userStore,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a student account and issues its first token.
// Email and student number uniqueness is enforced by the store.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !studentNumberRegex.MatchString(req.StudentNumber) {
		return nil, apperrors.NewBadRequestError("student number must be 8 digits")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		StudentNumber: req.StudentNumber,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  hash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Department:    req.Department,
		Gender:        req.Gender,
		Role:          models.RoleStudent,
	}

	id, err := s.userStore.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info().Int64("userID", id).Msg("User registered")

	token, err := s.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.AuthResponse{Token: token, User: ToUserResponse(user)}, nil
}

// Login verifies credentials and issues a token. A banned account is
// reported as disabled, which is distinct from wrong credentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	// The banned check runs after the password check so a disabled
	// response never confirms an account's existence to a guesser.
	if user.IsDeleted {
		return nil, apperrors.ErrAccountDisabled
	}

	token, err := s.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return &dto.AuthResponse{Token: token, User: ToUserResponse(user)}, nil
}

// GetCurrentUser returns the authenticated user's profile.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, apperrors.ErrAccountDisabled
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ToUserResponse maps a user entity to its public representation.
func ToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              user.ID,
		StudentNumber:   user.StudentNumber,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Department:      user.Department,
		Gender:          user.Gender,
		Role:            string(user.Role),
		ProfilePhotoURL: user.ProfilePhotoURL,
		Bio:             user.Bio,
		Interests:       user.Interests,
	}
}
