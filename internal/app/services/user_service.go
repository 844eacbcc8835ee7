package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
)

type profileUserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

type profileHistoryStore interface {
	HistoryByUser(ctx context.Context, userID int64) ([]dto.ParticipatedEventResponse, error)
}

type profileFollowStore interface {
	ClubsByUser(ctx context.Context, userID int64) ([]models.Club, error)
}

// UserService handles profiles and activity history
type UserService struct {
	userStore     profileUserStore
	historyStore  profileHistoryStore
	followerStore profileFollowStore
	logger        zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore profileUserStore, historyStore profileHistoryStore, followerStore profileFollowStore, logger zerolog.Logger) *UserService {
	return &UserService{
		userStore:     userStore,
		historyStore:  historyStore,
		followerStore: followerStore,
		logger:        logger,
	}
}

// GetProfile returns the caller's profile with their joined events and
// followed clubs.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.historyStore.HistoryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	clubs, err := s.followerStore.ClubsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{
		Profile:            ToUserResponse(user),
		ParticipatedEvents: history,
		FollowedClubs:      make([]dto.FollowedClubResponse, 0, len(clubs)),
	}
	if resp.ParticipatedEvents == nil {
		resp.ParticipatedEvents = []dto.ParticipatedEventResponse{}
	}
	for _, c := range clubs {
		resp.FollowedClubs = append(resp.FollowedClubs, dto.FollowedClubResponse{ClubID: c.ID, Name: c.Name})
	}
	return resp, nil
}

// UpdateProfile applies a partial profile update and returns the
// updated profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.ProfilePhotoURL != nil {
		user.ProfilePhotoURL = req.ProfilePhotoURL
	}

	if err := s.userStore.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetHistory returns the caller's joined events, newest first.
func (s *UserService) GetHistory(ctx context.Context, userID int64) ([]dto.ParticipatedEventResponse, error) {
	history, err := s.historyStore.HistoryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []dto.ParticipatedEventResponse{}
	}
	return history, nil
}
