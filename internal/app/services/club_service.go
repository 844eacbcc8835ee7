package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/cache"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

const (
	clubListGenKey   = "clubs:gen"
	clubListCacheTTL = 30 * time.Second
	cacheGenTTL      = time.Hour
)

type clubStore interface {
	Create(ctx context.Context, club *models.Club) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	ListPublic(ctx context.Context, page, limit int) ([]models.Club, int64, error)
	ListAll(ctx context.Context) ([]models.Club, error)
	ListByPresident(ctx context.Context, presidentID int64) ([]models.Club, error)
	UpdateStatus(ctx context.Context, id int64, status models.ClubStatus) error
	SoftDelete(ctx context.Context, id int64) error
	UpdateWithHandoff(ctx context.Context, club *models.Club, demoteUserID, promoteUserID *int64) error
}

type clubFollowerStore interface {
	Follow(ctx context.Context, clubID, userID int64) (bool, error)
	Unfollow(ctx context.Context, clubID, userID int64) (bool, error)
	ListByClub(ctx context.Context, clubID int64) ([]models.ClubFollower, error)
}

type clubEventStore interface {
	ListByClub(ctx context.Context, clubID int64) ([]models.Event, error)
}

type clubUserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
}

// ClubService handles the club approval lifecycle and memberships
type ClubService struct {
	clubStore     clubStore
	followerStore clubFollowerStore
	eventStore    clubEventStore
	userStore     clubUserStore
	cache         cache.Cache
	logger        zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	clubStore clubStore,
	followerStore clubFollowerStore,
	eventStore clubEventStore,
	userStore clubUserStore,
	cacheStore cache.Cache,
	logger zerolog.Logger,
) *ClubService {
	return &ClubService{
		clubStore:     clubStore,
		followerStore: followerStore,
		eventStore:    eventStore,
		userStore:     userStore,
		cache:         cacheStore,
		logger:        logger,
	}
}

// Create registers a club with the actor as president. Clubs created by
// an admin go live immediately; everyone else's wait for approval, and
// a non-admin creator is promoted to club_admin.
func (s *ClubService) Create(ctx context.Context, actorID int64, actorRole models.Role, req *dto.CreateClubRequest) (*dto.ClubResponse, error) {
	status := models.ClubStatusPending
	if actorRole == models.RoleAdmin {
		status = models.ClubStatusActive
	}

	club := &models.Club{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Status:      status,
		PresidentID: actorID,
		CreatedBy:   actorID,
	}

	id, err := s.clubStore.Create(ctx, club)
	if err != nil {
		return nil, err
	}
	club.ID = id

	if actorRole == models.RoleStudent {
		if err := s.userStore.UpdateRole(ctx, actorID, models.RoleClubAdmin); err != nil {
			s.logger.Error().Err(err).Int64("userID", actorID).Msg("Failed to promote club creator")
		}
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Int64("clubID", id).Int64("presidentID", actorID).Str("status", string(status)).Msg("Club created")

	resp := toClubResponse(club)
	return &resp, nil
}

// Approve activates a pending club. Approving an already active club is
// a no-op so retried approvals stay safe.
func (s *ClubService) Approve(ctx context.Context, clubID int64) error {
	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.IsDeleted {
		return apperrors.ErrClubNotFound
	}
	if club.Status == models.ClubStatusActive {
		return nil
	}

	if err := s.clubStore.UpdateStatus(ctx, clubID, models.ClubStatusActive); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Int64("clubID", clubID).Msg("Club approved")
	return nil
}

// Delete soft-deletes a club. Its events and follower rows stay in
// place; visibility rules keep them out of public listings.
func (s *ClubService) Delete(ctx context.Context, clubID int64) error {
	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.IsDeleted {
		return apperrors.ErrClubNotFound
	}

	if err := s.clubStore.SoftDelete(ctx, clubID); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Int64("clubID", clubID).Msg("Club deleted")
	return nil
}

// ListPublic lists active clubs with pagination, served from cache when
// a fresh copy exists.
func (s *ClubService) ListPublic(ctx context.Context, page, limit int) (*dto.ClubListResponse, error) {
	key := fmt.Sprintf("clubs:list:%s:%d:%d", s.cacheGeneration(ctx), page, limit)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var resp dto.ClubListResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	clubs, total, err := s.clubStore.ListPublic(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClubListResponse{
		Clubs:      make([]dto.ClubResponse, 0, len(clubs)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for i := range clubs {
		resp.Clubs = append(resp.Clubs, toClubResponse(&clubs[i]))
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), clubListCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache club list")
		}
	}

	return resp, nil
}

// GetDetails returns a club with its upcoming and past events. The
// follower roster is included only for the club president and admins;
// other viewers get an empty member list.
func (s *ClubService) GetDetails(ctx context.Context, clubID int64, viewerID int64, viewerRole models.Role) (*dto.ClubDetailResponse, error) {
	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.IsDeleted {
		return nil, apperrors.ErrClubNotFound
	}
	// A club awaiting approval exists only for its president and for
	// admins; everyone else gets the same answer as for no club at all.
	if club.Status != models.ClubStatusActive && viewerRole != models.RoleAdmin && viewerID != club.PresidentID {
		return nil, apperrors.ErrClubNotFound
	}

	events, err := s.eventStore.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClubDetailResponse{
		ClubResponse: toClubResponse(club),
		Events:       make([]dto.EventResponse, 0, len(events)),
		Members:      []dto.ClubMemberResponse{},
	}
	for i := range events {
		resp.Events = append(resp.Events, toEventResponse(&events[i]))
	}

	if viewerRole == models.RoleAdmin || viewerID == club.PresidentID {
		followers, err := s.followerStore.ListByClub(ctx, clubID)
		if err != nil {
			return nil, err
		}
		for _, f := range followers {
			member := dto.ClubMemberResponse{UserID: f.UserID, FollowedAt: f.CreatedAt}
			if f.User != nil {
				member.FirstName = f.User.FirstName
				member.LastName = f.User.LastName
				member.Email = f.User.Email
			}
			resp.Members = append(resp.Members, member)
		}
	}

	return resp, nil
}

// Follow subscribes a user to a club's notifications. Admins manage
// clubs and cannot follow them; following twice is a no-op.
func (s *ClubService) Follow(ctx context.Context, clubID, userID int64, userRole models.Role) error {
	if userRole == models.RoleAdmin {
		return apperrors.ErrAdminCannotFollow
	}

	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.IsDeleted {
		return apperrors.ErrClubNotFound
	}
	if club.Status != models.ClubStatusActive {
		return apperrors.ErrClubNotActive
	}

	created, err := s.followerStore.Follow(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info().Int64("clubID", clubID).Int64("userID", userID).Msg("Club followed")
	}
	return nil
}

// Leave removes the caller's follow relationship.
func (s *ClubService) Leave(ctx context.Context, clubID, userID int64) error {
	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.IsDeleted {
		return apperrors.ErrClubNotFound
	}

	removed, err := s.followerStore.Unfollow(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrNotFollowing
	}
	return nil
}

// RemoveFollower lets an admin or the club president drop a follower.
func (s *ClubService) RemoveFollower(ctx context.Context, clubID, targetUserID, actorID int64, actorRole models.Role) error {
	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.IsDeleted {
		return apperrors.ErrClubNotFound
	}
	if actorRole != models.RoleAdmin && actorID != club.PresidentID {
		return apperrors.ErrPermissionDenied
	}

	removed, err := s.followerStore.Unfollow(ctx, clubID, targetUserID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrNotFollowing
	}

	s.logger.Info().Int64("clubID", clubID).Int64("userID", targetUserID).Int64("actorID", actorID).Msg("Follower removed")
	return nil
}

// GetMine lists clubs the caller manages: every club for an admin, the
// presided ones for everyone else. Pending and closed clubs included.
func (s *ClubService) GetMine(ctx context.Context, userID int64, role models.Role) ([]dto.ClubResponse, error) {
	var clubs []models.Club
	var err error
	if role == models.RoleAdmin {
		clubs, err = s.clubStore.ListAll(ctx)
	} else {
		clubs, err = s.clubStore.ListByPresident(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		resp = append(resp, toClubResponse(&clubs[i]))
	}
	return resp, nil
}

// ForceUpdate applies an admin override to a club. A president change
// demotes the outgoing president back to student when club_admin was
// their only role, promotes the incoming student to club_admin, and
// never touches an admin's role. The club update and both role updates
// commit or roll back together.
func (s *ClubService) ForceUpdate(ctx context.Context, clubID int64, req *dto.UpdateClubRequest) (*dto.ClubResponse, error) {
	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.IsDeleted {
		return nil, apperrors.ErrClubNotFound
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.LogoURL != nil {
		club.LogoURL = req.LogoURL
	}

	var demoteID, promoteID *int64
	if req.PresidentID != nil && *req.PresidentID != club.PresidentID {
		incoming, err := s.userStore.FindByID(ctx, *req.PresidentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, apperrors.NewBadRequestError("new president not found")
			}
			return nil, err
		}
		if incoming.IsDeleted {
			return nil, apperrors.NewBadRequestError("new president not found")
		}

		outgoing, err := s.userStore.FindByID(ctx, club.PresidentID)
		if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}

		if outgoing != nil && outgoing.Role == models.RoleClubAdmin {
			demoteID = &outgoing.ID
		}
		if incoming.Role == models.RoleStudent {
			promoteID = &incoming.ID
		}
		club.PresidentID = *req.PresidentID
	}

	if err := s.clubStore.UpdateWithHandoff(ctx, club, demoteID, promoteID); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Int64("clubID", clubID).Msg("Club force-updated")

	resp := toClubResponse(club)
	return &resp, nil
}

// cacheGeneration returns the token mixed into list cache keys. Bumping
// the token on writes orphans every cached page at once; orphans age
// out on their own TTL.
func (s *ClubService) cacheGeneration(ctx context.Context) string {
	gen, err := s.cache.Get(ctx, clubListGenKey)
	if err == nil && gen != "" {
		return gen
	}

	gen = strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := s.cache.Set(ctx, clubListGenKey, gen, cacheGenTTL); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to store club cache generation")
	}
	return gen
}

func (s *ClubService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, clubListGenKey); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate club list cache")
	}
}

func toClubResponse(club *models.Club) dto.ClubResponse {
	return dto.ClubResponse{
		ID:          club.ID,
		Name:        club.Name,
		Description: club.Description,
		LogoURL:     club.LogoURL,
		Status:      string(club.Status),
		PresidentID: club.PresidentID,
		CreatedAt:   club.CreatedAt,
	}
}
