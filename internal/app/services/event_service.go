package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/app/repositories"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/cache"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

const (
	eventListGenKey   = "events:gen"
	eventListCacheTTL = 30 * time.Second
)

type eventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, filter *dto.EventFilterRequest) ([]models.Event, int64, error)
}

type eventClubStore interface {
	GetByID(ctx context.Context, id int64) (*models.Club, error)
}

type participantStore interface {
	Join(ctx context.Context, eventID, userID int64, capacity int) (repositories.JoinResult, error)
	Leave(ctx context.Context, eventID, userID int64) (bool, error)
	CountGoing(ctx context.Context, eventID int64) (int, error)
	IsGoing(ctx context.Context, eventID, userID int64) (bool, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.EventParticipant, error)
}

// followerNotifier fans an event announcement out to a club's followers.
type followerNotifier interface {
	NotifyFollowers(ctx context.Context, clubID, eventID int64, message string) error
}

// EventService handles the event lifecycle and participation
type EventService struct {
	eventStore       eventStore
	clubStore        eventClubStore
	participantStore participantStore
	notifier         followerNotifier
	cache            cache.Cache
	logger           zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventStore eventStore,
	clubStore eventClubStore,
	participantStore participantStore,
	notifier followerNotifier,
	cacheStore cache.Cache,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventStore:       eventStore,
		clubStore:        clubStore,
		participantStore: participantStore,
		notifier:         notifier,
		cache:            cacheStore,
		logger:           logger,
	}
}

// authorizeClubManagement checks that the actor may manage a club's
// events: admins always, otherwise the club president.
func (s *EventService) authorizeClubManagement(club *models.Club, actorID int64, actorRole models.Role) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	if actorID == club.PresidentID {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// Create publishes an event under a club and notifies the club's
// followers. Notification failures are logged and never fail the
// creation itself.
func (s *EventService) Create(ctx context.Context, actorID int64, actorRole models.Role, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	club, err := s.clubStore.GetByID(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}
	if club.IsDeleted {
		return nil, apperrors.ErrClubNotFound
	}
	if err := s.authorizeClubManagement(club, actorID, actorRole); err != nil {
		return nil, err
	}
	if req.Capacity <= 0 {
		return nil, apperrors.ErrInvalidCapacity
	}

	event := &models.Event{
		ClubID:      req.ClubID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		EventDate:   req.EventDate,
		Location:    req.Location,
		Capacity:    req.Capacity,
		CreatedBy:   actorID,
	}

	id, err := s.eventStore.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = id

	message := fmt.Sprintf("%s announced a new event: %s", club.Name, event.Title)
	if err := s.notifier.NotifyFollowers(ctx, club.ID, event.ID, message); err != nil {
		s.logger.Error().Err(err).Int64("eventID", id).Msg("Follower notification failed")
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Int64("eventID", id).Int64("clubID", club.ID).Msg("Event created")

	resp := toEventResponse(event)
	resp.ClubName = club.Name
	return &resp, nil
}

// Update applies a partial update to an event.
func (s *EventService) Update(ctx context.Context, eventID, actorID int64, actorRole models.Role, req *dto.UpdateEventRequest) error {
	event, err := s.getLiveEvent(ctx, eventID)
	if err != nil {
		return err
	}

	club, err := s.clubStore.GetByID(ctx, event.ClubID)
	if err != nil {
		return err
	}
	if err := s.authorizeClubManagement(club, actorID, actorRole); err != nil {
		return err
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return apperrors.ErrInvalidCapacity
	}

	if err := s.eventStore.Update(ctx, eventID, req); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

// Delete soft-deletes an event.
func (s *EventService) Delete(ctx context.Context, eventID, actorID int64, actorRole models.Role) error {
	event, err := s.getLiveEvent(ctx, eventID)
	if err != nil {
		return err
	}

	club, err := s.clubStore.GetByID(ctx, event.ClubID)
	if err != nil {
		return err
	}
	if err := s.authorizeClubManagement(club, actorID, actorRole); err != nil {
		return err
	}

	if err := s.eventStore.SoftDelete(ctx, eventID); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Int64("eventID", eventID).Msg("Event deleted")
	return nil
}

// List returns the public event feed: non-deleted events of active
// clubs, filtered and paginated, served from cache when fresh.
func (s *EventService) List(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	dateFrom := ""
	if filter.DateFrom != nil {
		dateFrom = filter.DateFrom.Format(time.RFC3339)
	}
	key := fmt.Sprintf("events:list:%s:%s:%s:%d:%d",
		s.cacheGeneration(ctx), filter.Search, dateFrom, filter.Page, filter.Limit)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var resp dto.EventListResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	events, total, err := s.eventStore.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventListResponse{
		Events:     make([]dto.EventResponse, 0, len(events)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Limit),
	}
	for i := range events {
		resp.Events = append(resp.Events, toEventResponse(&events[i]))
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), eventListCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache event list")
		}
	}

	return resp, nil
}

// GetDetail returns an event with its live participant count. When a
// viewer identity is supplied the response also says whether that
// viewer has joined.
func (s *EventService) GetDetail(ctx context.Context, eventID int64, viewerID *int64) (*dto.EventDetailResponse, error) {
	event, err := s.getLiveEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	count, err := s.participantStore.CountGoing(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventDetailResponse{
		EventResponse:    toEventResponse(event),
		ParticipantCount: count,
	}

	if club, err := s.clubStore.GetByID(ctx, event.ClubID); err == nil {
		resp.ClubName = club.Name
	}

	if viewerID != nil {
		joined, err := s.participantStore.IsGoing(ctx, eventID, *viewerID)
		if err != nil {
			return nil, err
		}
		resp.IsJoined = &joined
	}

	return resp, nil
}

// Join adds the caller to an event. The capacity check and the insert
// happen in one store statement, so two racing joins for the last seat
// cannot both win. Joining twice is a no-op.
func (s *EventService) Join(ctx context.Context, eventID, userID int64) error {
	event, err := s.getLiveEvent(ctx, eventID)
	if err != nil {
		return err
	}

	result, err := s.participantStore.Join(ctx, eventID, userID, event.Capacity)
	if err != nil {
		return err
	}

	switch result {
	case repositories.JoinEventFull:
		return apperrors.ErrEventFull
	case repositories.JoinCreated:
		s.logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("Event joined")
	}
	return nil
}

// Leave removes the caller's participation.
func (s *EventService) Leave(ctx context.Context, eventID, userID int64) error {
	if _, err := s.getLiveEvent(ctx, eventID); err != nil {
		return err
	}

	removed, err := s.participantStore.Leave(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrNotParticipating
	}
	return nil
}

// RemoveParticipant lets an admin or the club president drop a
// participant from an event.
func (s *EventService) RemoveParticipant(ctx context.Context, eventID, targetUserID, actorID int64, actorRole models.Role) error {
	event, err := s.getLiveEvent(ctx, eventID)
	if err != nil {
		return err
	}

	club, err := s.clubStore.GetByID(ctx, event.ClubID)
	if err != nil {
		return err
	}
	if err := s.authorizeClubManagement(club, actorID, actorRole); err != nil {
		return err
	}

	removed, err := s.participantStore.Leave(ctx, eventID, targetUserID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrNotParticipating
	}

	s.logger.Info().Int64("eventID", eventID).Int64("userID", targetUserID).Int64("actorID", actorID).Msg("Participant removed")
	return nil
}

// ListParticipants lists an event's participants with their names.
func (s *EventService) ListParticipants(ctx context.Context, eventID int64) ([]dto.EventParticipantResponse, error) {
	if _, err := s.getLiveEvent(ctx, eventID); err != nil {
		return nil, err
	}

	participants, err := s.participantStore.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.EventParticipantResponse, 0, len(participants))
	for _, p := range participants {
		entry := dto.EventParticipantResponse{
			UserID:   p.UserID,
			Status:   string(p.Status),
			JoinedAt: p.CreatedAt,
		}
		if p.User != nil {
			entry.FirstName = p.User.FirstName
			entry.LastName = p.User.LastName
			entry.ProfilePhotoURL = p.User.ProfilePhotoURL
		}
		resp = append(resp, entry)
	}
	return resp, nil
}

func (s *EventService) getLiveEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsDeleted {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) cacheGeneration(ctx context.Context) string {
	gen, err := s.cache.Get(ctx, eventListGenKey)
	if err == nil && gen != "" {
		return gen
	}

	gen = strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := s.cache.Set(ctx, eventListGenKey, gen, cacheGenTTL); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to store event cache generation")
	}
	return gen
}

func (s *EventService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, eventListGenKey); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate event list cache")
	}
}

func toEventResponse(event *models.Event) dto.EventResponse {
	resp := dto.EventResponse{
		ID:          event.ID,
		ClubID:      event.ClubID,
		Title:       event.Title,
		Description: event.Description,
		EventDate:   event.EventDate,
		Location:    event.Location,
		Capacity:    event.Capacity,
		ImageURL:    event.ImageURL,
		CreatedAt:   event.CreatedAt,
	}
	if event.Club != nil {
		resp.ClubName = event.Club.Name
	}
	return resp
}
