package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

type adminUserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Search(ctx context.Context, search string, page, limit int) ([]models.User, int64, error)
	SetDeleted(ctx context.Context, id int64, deleted bool) error
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	CountActive(ctx context.Context) (int64, error)
	ActiveIDs(ctx context.Context) ([]int64, error)
}

type adminClubStore interface {
	CountByStatus(ctx context.Context, status models.ClubStatus) (int64, error)
}

type adminEventStore interface {
	CountActive(ctx context.Context) (int64, error)
}

type adminCommentStore interface {
	SoftDelete(ctx context.Context, id int64) error
}

type adminBroadcastStore interface {
	BulkCreate(ctx context.Context, userIDs []int64, clubID, eventID *int64, message string) (int64, error)
}

// AdminService handles platform administration
type AdminService struct {
	userStore         adminUserStore
	clubStore         adminClubStore
	eventStore        adminEventStore
	commentStore      adminCommentStore
	notificationStore adminBroadcastStore
	logger            zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userStore adminUserStore,
	clubStore adminClubStore,
	eventStore adminEventStore,
	commentStore adminCommentStore,
	notificationStore adminBroadcastStore,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		userStore:         userStore,
		clubStore:         clubStore,
		eventStore:        eventStore,
		commentStore:      commentStore,
		notificationStore: notificationStore,
		logger:            logger,
	}
}

// GetDashboardStats aggregates the platform counters shown on the admin
// dashboard.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	users, err := s.userStore.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	activeClubs, err := s.clubStore.CountByStatus(ctx, models.ClubStatusActive)
	if err != nil {
		return nil, err
	}
	pendingClubs, err := s.clubStore.CountByStatus(ctx, models.ClubStatusPending)
	if err != nil {
		return nil, err
	}
	events, err := s.eventStore.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		ActiveUsers:  users,
		ActiveClubs:  activeClubs,
		PendingClubs: pendingClubs,
		ActiveEvents: events,
	}, nil
}

// ListUsers pages through all accounts, optionally filtered by a search
// term over email and names. Banned accounts are included.
func (s *AdminService) ListUsers(ctx context.Context, search string, page, limit int) (*dto.AdminUserListResponse, error) {
	users, total, err := s.userStore.Search(ctx, search, page, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.AdminUserListResponse{
		Users:      make([]dto.AdminUserResponse, 0, len(users)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for i := range users {
		u := &users[i]
		resp.Users = append(resp.Users, dto.AdminUserResponse{
			ID:         u.ID,
			FullName:   u.FullName(),
			Email:      u.Email,
			Role:       string(u.Role),
			Department: u.Department,
			IsActive:   !u.IsDeleted,
		})
	}
	return resp, nil
}

// ToggleBan flips a user's banned state. Admin accounts cannot be
// banned. Banning is a soft delete, so login reports the account as
// disabled while existing rows keep referring to the user.
func (s *AdminService) ToggleBan(ctx context.Context, userID int64) (*dto.BanResponse, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAdmin {
		return nil, apperrors.ErrCannotBanAdmin
	}

	ban := !user.IsDeleted
	if err := s.userStore.SetDeleted(ctx, userID, ban); err != nil {
		return nil, err
	}

	message := "user banned"
	if !ban {
		message = "user unbanned"
	}
	s.logger.Info().Int64("userID", userID).Bool("banned", ban).Msg("Ban toggled")

	return &dto.BanResponse{Message: message, IsActive: !ban}, nil
}

// UpdateRole sets a user's role to one of the enumerated values.
func (s *AdminService) UpdateRole(ctx context.Context, userID int64, role string) error {
	newRole := models.Role(role)
	if !newRole.IsValid() {
		return apperrors.ErrInvalidRole
	}

	if _, err := s.userStore.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userStore.UpdateRole(ctx, userID, newRole); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Str("role", role).Msg("Role updated")
	return nil
}

// DeleteComment removes any comment regardless of its author.
func (s *AdminService) DeleteComment(ctx context.Context, commentID int64) error {
	return s.commentStore.SoftDelete(ctx, commentID)
}

// BroadcastAnnouncement delivers a message to every active user in one
// bulk insert.
func (s *AdminService) BroadcastAnnouncement(ctx context.Context, message string) (int64, error) {
	if strings.TrimSpace(message) == "" {
		return 0, apperrors.NewBadRequestError("announcement message cannot be empty")
	}

	userIDs, err := s.userStore.ActiveIDs(ctx)
	if err != nil {
		return 0, err
	}

	created, err := s.notificationStore.BulkCreate(ctx, userIDs, nil, nil, message)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("recipients", created).Msg("Announcement broadcast")
	return created, nil
}
