package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/app/repositories"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
)

// Hand-written in-memory fakes backing the service store interfaces.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (s *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = s.nextID
	}
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if existing.StudentNumber == user.StudentNumber {
			return 0, apperrors.ErrStudentNumberExists
		}
	}
	s.add(user)
	return user.ID, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) UpdateRole(_ context.Context, id int64, role models.Role) error {
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) SetDeleted(_ context.Context, id int64, deleted bool) error {
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsDeleted = deleted
	if deleted {
		now := time.Now()
		user.DeletedAt = &now
	} else {
		user.DeletedAt = nil
	}
	return nil
}

func (s *fakeUserStore) Search(_ context.Context, search string, _, _ int) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range s.users {
		if search == "" || strings.Contains(user.Email, search) ||
			strings.Contains(user.FirstName, search) || strings.Contains(user.LastName, search) {
			out = append(out, *user)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeUserStore) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, user := range s.users {
		if !user.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (s *fakeUserStore) ActiveIDs(_ context.Context) ([]int64, error) {
	var ids []int64
	for _, user := range s.users {
		if !user.IsDeleted {
			ids = append(ids, user.ID)
		}
	}
	return ids, nil
}

type handoffCall struct {
	demoteID  *int64
	promoteID *int64
}

type fakeClubStore struct {
	clubs    map[int64]*models.Club
	nextID   int64
	users    *fakeUserStore
	handoffs []handoffCall
}

func newFakeClubStore(users *fakeUserStore) *fakeClubStore {
	return &fakeClubStore{clubs: make(map[int64]*models.Club), nextID: 1, users: users}
}

func (s *fakeClubStore) add(club *models.Club) *models.Club {
	if club.ID == 0 {
		club.ID = s.nextID
	}
	if club.ID >= s.nextID {
		s.nextID = club.ID + 1
	}
	s.clubs[club.ID] = club
	return club
}

func (s *fakeClubStore) Create(_ context.Context, club *models.Club) (int64, error) {
	for _, existing := range s.clubs {
		if existing.Name == club.Name {
			return 0, apperrors.ErrClubNameExists
		}
	}
	s.add(club)
	return club.ID, nil
}

func (s *fakeClubStore) GetByID(_ context.Context, id int64) (*models.Club, error) {
	club, ok := s.clubs[id]
	if !ok {
		return nil, apperrors.ErrClubNotFound
	}
	copied := *club
	return &copied, nil
}

func (s *fakeClubStore) ListPublic(_ context.Context, _, _ int) ([]models.Club, int64, error) {
	var out []models.Club
	for _, club := range s.clubs {
		if club.Status == models.ClubStatusActive && !club.IsDeleted {
			out = append(out, *club)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeClubStore) ListAll(_ context.Context) ([]models.Club, error) {
	var out []models.Club
	for _, club := range s.clubs {
		if !club.IsDeleted {
			out = append(out, *club)
		}
	}
	return out, nil
}

func (s *fakeClubStore) ListByPresident(_ context.Context, presidentID int64) ([]models.Club, error) {
	var out []models.Club
	for _, club := range s.clubs {
		if club.PresidentID == presidentID && !club.IsDeleted {
			out = append(out, *club)
		}
	}
	return out, nil
}

func (s *fakeClubStore) UpdateStatus(_ context.Context, id int64, status models.ClubStatus) error {
	club, ok := s.clubs[id]
	if !ok {
		return apperrors.ErrClubNotFound
	}
	club.Status = status
	return nil
}

func (s *fakeClubStore) SoftDelete(_ context.Context, id int64) error {
	club, ok := s.clubs[id]
	if !ok {
		return apperrors.ErrClubNotFound
	}
	club.IsDeleted = true
	return nil
}

func (s *fakeClubStore) UpdateWithHandoff(ctx context.Context, club *models.Club, demoteUserID, promoteUserID *int64) error {
	stored, ok := s.clubs[club.ID]
	if !ok {
		return apperrors.ErrClubNotFound
	}
	stored.Name = club.Name
	stored.Description = club.Description
	stored.LogoURL = club.LogoURL
	stored.PresidentID = club.PresidentID

	s.handoffs = append(s.handoffs, handoffCall{demoteID: demoteUserID, promoteID: promoteUserID})
	if demoteUserID != nil {
		if err := s.users.UpdateRole(ctx, *demoteUserID, models.RoleStudent); err != nil {
			return err
		}
	}
	if promoteUserID != nil {
		if err := s.users.UpdateRole(ctx, *promoteUserID, models.RoleClubAdmin); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeClubStore) CountByStatus(_ context.Context, status models.ClubStatus) (int64, error) {
	var count int64
	for _, club := range s.clubs {
		if club.Status == status && !club.IsDeleted {
			count++
		}
	}
	return count, nil
}

type followKey struct {
	clubID, userID int64
}

type fakeFollowerStore struct {
	follows map[followKey]time.Time
	users   *fakeUserStore
	clubs   *fakeClubStore
}

func newFakeFollowerStore(users *fakeUserStore, clubs *fakeClubStore) *fakeFollowerStore {
	return &fakeFollowerStore{follows: make(map[followKey]time.Time), users: users, clubs: clubs}
}

func (s *fakeFollowerStore) Follow(_ context.Context, clubID, userID int64) (bool, error) {
	key := followKey{clubID, userID}
	if _, ok := s.follows[key]; ok {
		return false, nil
	}
	s.follows[key] = time.Now()
	return true, nil
}

func (s *fakeFollowerStore) Unfollow(_ context.Context, clubID, userID int64) (bool, error) {
	key := followKey{clubID, userID}
	if _, ok := s.follows[key]; !ok {
		return false, nil
	}
	delete(s.follows, key)
	return true, nil
}

func (s *fakeFollowerStore) ListByClub(_ context.Context, clubID int64) ([]models.ClubFollower, error) {
	var out []models.ClubFollower
	for key, at := range s.follows {
		if key.clubID != clubID {
			continue
		}
		follower := models.ClubFollower{ClubID: key.clubID, UserID: key.userID, CreatedAt: at}
		if user, ok := s.users.users[key.userID]; ok {
			copied := *user
			follower.User = &copied
		}
		out = append(out, follower)
	}
	return out, nil
}

func (s *fakeFollowerStore) UserIDsByClub(_ context.Context, clubID int64) ([]int64, error) {
	var ids []int64
	for key := range s.follows {
		if key.clubID == clubID {
			ids = append(ids, key.userID)
		}
	}
	return ids, nil
}

func (s *fakeFollowerStore) ClubsByUser(_ context.Context, userID int64) ([]models.Club, error) {
	var out []models.Club
	for key := range s.follows {
		if key.userID != userID {
			continue
		}
		if club, ok := s.clubs.clubs[key.clubID]; ok && !club.IsDeleted {
			out = append(out, *club)
		}
	}
	return out, nil
}

type fakeEventStore struct {
	events map[int64]*models.Event
	nextID int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.Event), nextID: 1}
}

func (s *fakeEventStore) add(event *models.Event) *models.Event {
	if event.ID == 0 {
		event.ID = s.nextID
	}
	if event.ID >= s.nextID {
		s.nextID = event.ID + 1
	}
	s.events[event.ID] = event
	return event
}

func (s *fakeEventStore) Create(_ context.Context, event *models.Event) (int64, error) {
	s.add(event)
	return event.ID, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (s *fakeEventStore) Update(_ context.Context, id int64, req *dto.UpdateEventRequest) error {
	event, ok := s.events[id]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.ImageURL != nil {
		event.ImageURL = req.ImageURL
	}
	return nil
}

func (s *fakeEventStore) SoftDelete(_ context.Context, id int64) error {
	event, ok := s.events[id]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	event.IsDeleted = true
	return nil
}

func (s *fakeEventStore) List(_ context.Context, filter *dto.EventFilterRequest) ([]models.Event, int64, error) {
	var out []models.Event
	for _, event := range s.events {
		if event.IsDeleted {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(event.Title), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(event.Description), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.DateFrom != nil && event.EventDate.Before(*filter.DateFrom) {
			continue
		}
		out = append(out, *event)
	}
	return out, int64(len(out)), nil
}

func (s *fakeEventStore) ListByClub(_ context.Context, clubID int64) ([]models.Event, error) {
	var out []models.Event
	for _, event := range s.events {
		if event.ClubID == clubID && !event.IsDeleted {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (s *fakeEventStore) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, event := range s.events {
		if !event.IsDeleted {
			count++
		}
	}
	return count, nil
}

type fakeParticipantStore struct {
	mu      sync.Mutex
	going   map[followKey]time.Time
	users   *fakeUserStore
	history []dto.ParticipatedEventResponse
}

func newFakeParticipantStore(users *fakeUserStore) *fakeParticipantStore {
	return &fakeParticipantStore{going: make(map[followKey]time.Time), users: users}
}

// Join serializes like the real store, which locks the event row.
func (s *fakeParticipantStore) Join(_ context.Context, eventID, userID int64, capacity int) (repositories.JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := followKey{eventID, userID}
	if _, ok := s.going[key]; ok {
		return repositories.JoinAlreadyJoined, nil
	}
	count := 0
	for k := range s.going {
		if k.clubID == eventID {
			count++
		}
	}
	if count >= capacity {
		return repositories.JoinEventFull, nil
	}
	s.going[key] = time.Now()
	return repositories.JoinCreated, nil
}

func (s *fakeParticipantStore) Leave(_ context.Context, eventID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := followKey{eventID, userID}
	if _, ok := s.going[key]; !ok {
		return false, nil
	}
	delete(s.going, key)
	return true, nil
}

func (s *fakeParticipantStore) CountGoing(_ context.Context, eventID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for key := range s.going {
		if key.clubID == eventID {
			count++
		}
	}
	return count, nil
}

func (s *fakeParticipantStore) IsGoing(_ context.Context, eventID, userID int64) (bool, error) {
	_, ok := s.going[followKey{eventID, userID}]
	return ok, nil
}

func (s *fakeParticipantStore) ListByEvent(_ context.Context, eventID int64) ([]models.EventParticipant, error) {
	var out []models.EventParticipant
	for key, at := range s.going {
		if key.clubID != eventID {
			continue
		}
		p := models.EventParticipant{EventID: eventID, UserID: key.userID, Status: models.ParticipationGoing, CreatedAt: at}
		if user, ok := s.users.users[key.userID]; ok {
			copied := *user
			p.User = &copied
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeParticipantStore) HistoryByUser(_ context.Context, _ int64) ([]dto.ParticipatedEventResponse, error) {
	return s.history, nil
}

type fakeCommentStore struct {
	comments map[int64]*models.EventComment
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[int64]*models.EventComment), nextID: 1}
}

func (s *fakeCommentStore) Create(_ context.Context, comment *models.EventComment) error {
	comment.ID = s.nextID
	comment.CreatedAt = time.Now()
	s.nextID++
	copied := *comment
	s.comments[comment.ID] = &copied
	return nil
}

func (s *fakeCommentStore) GetByID(_ context.Context, id int64) (*models.EventComment, error) {
	comment, ok := s.comments[id]
	if !ok || comment.IsDeleted {
		return nil, apperrors.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (s *fakeCommentStore) ListByEvent(_ context.Context, eventID int64) ([]models.EventComment, error) {
	var out []models.EventComment
	for _, comment := range s.comments {
		if comment.EventID == eventID && !comment.IsDeleted {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) SoftDelete(_ context.Context, id int64) error {
	comment, ok := s.comments[id]
	if !ok || comment.IsDeleted {
		return apperrors.ErrCommentNotFound
	}
	comment.IsDeleted = true
	return nil
}

type bulkCreateCall struct {
	userIDs []int64
	clubID  *int64
	eventID *int64
	message string
}

type fakeNotificationStore struct {
	notifications map[int64]*models.Notification
	nextID        int64
	bulkCalls     []bulkCreateCall
	bulkErr       error
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[int64]*models.Notification), nextID: 1}
}

func (s *fakeNotificationStore) BulkCreate(_ context.Context, userIDs []int64, clubID, eventID *int64, message string) (int64, error) {
	if s.bulkErr != nil {
		return 0, s.bulkErr
	}
	s.bulkCalls = append(s.bulkCalls, bulkCreateCall{userIDs: userIDs, clubID: clubID, eventID: eventID, message: message})
	for _, userID := range userIDs {
		s.notifications[s.nextID] = &models.Notification{
			ID: s.nextID, UserID: userID, ClubID: clubID, EventID: eventID,
			Message: message, CreatedAt: time.Now(),
		}
		s.nextID++
	}
	return int64(len(userIDs)), nil
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userID int64, _, _ int) ([]models.Notification, int, error) {
	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, len(out), nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, id, userID int64) error {
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return apperrors.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) CountUnread(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeNotifier struct {
	calls []int64
	err   error
}

func (f *fakeNotifier) NotifyFollowers(_ context.Context, clubID, _ int64, _ string) error {
	f.calls = append(f.calls, clubID)
	return f.err
}
