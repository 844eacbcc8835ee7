package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/cache"
)

type eventServiceFixture struct {
	svc          *EventService
	users        *fakeUserStore
	clubs        *fakeClubStore
	events       *fakeEventStore
	participants *fakeParticipantStore
	notifier     *fakeNotifier
}

func newEventServiceFixture() *eventServiceFixture {
	users := newFakeUserStore()
	clubs := newFakeClubStore(users)
	events := newFakeEventStore()
	participants := newFakeParticipantStore(users)
	notifier := &fakeNotifier{}

	return &eventServiceFixture{
		svc:          NewEventService(events, clubs, participants, notifier, cache.NewMemoryCache(), zerolog.Nop()),
		users:        users,
		clubs:        clubs,
		events:       events,
		participants: participants,
		notifier:     notifier,
	}
}

func (f *eventServiceFixture) addClub(presidentID int64) *models.Club {
	return f.clubs.add(&models.Club{Name: "Robotics Club", Status: models.ClubStatusActive, PresidentID: presidentID})
}

func (f *eventServiceFixture) addEvent(clubID int64, capacity int) *models.Event {
	return f.events.add(&models.Event{
		ClubID:    clubID,
		Title:     "Hack Night",
		EventDate: time.Now().Add(48 * time.Hour),
		Location:  "Building B",
		Capacity:  capacity,
	})
}

func createEventRequest(clubID int64) *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		ClubID:    clubID,
		Title:     "Hack Night",
		EventDate: time.Now().Add(48 * time.Hour),
		Location:  "Building B",
		Capacity:  50,
	}
}

func TestEventService_Create(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)

	resp, err := f.svc.Create(context.Background(), 7, models.RoleClubAdmin, createEventRequest(club.ID))
	require.NoError(t, err)

	assert.Equal(t, "Hack Night", resp.Title)
	assert.Equal(t, club.Name, resp.ClubName)
	assert.Equal(t, []int64{club.ID}, f.notifier.calls)
}

func TestEventService_Create_NotPresident(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)

	_, err := f.svc.Create(context.Background(), 8, models.RoleClubAdmin, createEventRequest(club.ID))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, f.notifier.calls)
}

func TestEventService_Create_AdminBypassesPresidency(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)

	_, err := f.svc.Create(context.Background(), 999, models.RoleAdmin, createEventRequest(club.ID))
	require.NoError(t, err)
}

func TestEventService_Create_InvalidCapacity(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)

	req := createEventRequest(club.ID)
	req.Capacity = 0
	_, err := f.svc.Create(context.Background(), 7, models.RoleClubAdmin, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCapacity)
}

func TestEventService_Create_NotifierFailureDoesNotFailCreation(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	f.notifier.err = errors.New("broker down")

	resp, err := f.svc.Create(context.Background(), 7, models.RoleClubAdmin, createEventRequest(club.ID))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestEventService_Update_Capacity(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	event := f.addEvent(club.ID, 50)

	bad := 0
	err := f.svc.Update(context.Background(), event.ID, 7, models.RoleClubAdmin, &dto.UpdateEventRequest{Capacity: &bad})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCapacity)

	good := 10
	require.NoError(t, f.svc.Update(context.Background(), event.ID, 7, models.RoleClubAdmin, &dto.UpdateEventRequest{Capacity: &good}))

	stored, err := f.events.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Capacity)
}

func TestEventService_Delete_HidesEvent(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	event := f.addEvent(club.ID, 50)

	require.NoError(t, f.svc.Delete(context.Background(), event.ID, 7, models.RoleClubAdmin))

	_, err := f.svc.GetDetail(context.Background(), event.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestEventService_GetDetail(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	event := f.addEvent(club.ID, 50)

	_, err := f.participants.Join(context.Background(), event.ID, 11, event.Capacity)
	require.NoError(t, err)

	// Anonymous viewer: count but no joined flag.
	resp, err := f.svc.GetDetail(context.Background(), event.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ParticipantCount)
	assert.Equal(t, club.Name, resp.ClubName)
	assert.Nil(t, resp.IsJoined)

	// A participant sees isJoined=true.
	viewerID := int64(11)
	resp, err = f.svc.GetDetail(context.Background(), event.ID, &viewerID)
	require.NoError(t, err)
	require.NotNil(t, resp.IsJoined)
	assert.True(t, *resp.IsJoined)

	// A non-participant sees isJoined=false.
	otherID := int64(12)
	resp, err = f.svc.GetDetail(context.Background(), event.ID, &otherID)
	require.NoError(t, err)
	require.NotNil(t, resp.IsJoined)
	assert.False(t, *resp.IsJoined)
}

func TestEventService_Join(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	event := f.addEvent(club.ID, 2)

	require.NoError(t, f.svc.Join(context.Background(), event.ID, 11))

	// Joining twice is a no-op.
	require.NoError(t, f.svc.Join(context.Background(), event.ID, 11))

	count, err := f.participants.CountGoing(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEventService_Join_Full(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	event := f.addEvent(club.ID, 1)

	require.NoError(t, f.svc.Join(context.Background(), event.ID, 11))
	assert.ErrorIs(t, f.svc.Join(context.Background(), event.ID, 12), apperrors.ErrEventFull)

	// An existing participant re-joining a full event still gets the
	// idempotent outcome, not the full error.
	require.NoError(t, f.svc.Join(context.Background(), event.ID, 11))

	// A seat freed by a leave can be taken again.
	require.NoError(t, f.svc.Leave(context.Background(), event.ID, 11))
	require.NoError(t, f.svc.Join(context.Background(), event.ID, 12))
}

func TestEventService_Join_ConcurrentNeverOverbooks(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	capacity := 3
	event := f.addEvent(club.ID, capacity)

	const joiners = 10
	errs := make(chan error, joiners)
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			errs <- f.svc.Join(context.Background(), event.ID, userID)
		}(int64(100 + i))
	}
	wg.Wait()
	close(errs)

	joined, full := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			joined++
		case errors.Is(err, apperrors.ErrEventFull):
			full++
		default:
			t.Fatalf("unexpected join error: %v", err)
		}
	}
	assert.Equal(t, capacity, joined)
	assert.Equal(t, joiners-capacity, full)

	count, err := f.participants.CountGoing(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, count)
}

func TestEventService_Leave_NotParticipating(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	event := f.addEvent(club.ID, 10)

	assert.ErrorIs(t, f.svc.Leave(context.Background(), event.ID, 11), apperrors.ErrNotParticipating)
}

func TestEventService_RemoveParticipant(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	event := f.addEvent(club.ID, 10)

	require.NoError(t, f.svc.Join(context.Background(), event.ID, 11))

	err := f.svc.RemoveParticipant(context.Background(), event.ID, 11, 12, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, f.svc.RemoveParticipant(context.Background(), event.ID, 11, 7, models.RoleClubAdmin))

	err = f.svc.RemoveParticipant(context.Background(), event.ID, 11, 7, models.RoleClubAdmin)
	assert.ErrorIs(t, err, apperrors.ErrNotParticipating)
}

func TestEventService_ListParticipants(t *testing.T) {
	f := newEventServiceFixture()
	user := f.users.add(&models.User{FirstName: "Deniz", LastName: "Yilmaz"})
	club := f.addClub(7)
	event := f.addEvent(club.ID, 10)

	require.NoError(t, f.svc.Join(context.Background(), event.ID, user.ID))

	participants, err := f.svc.ListParticipants(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, user.ID, participants[0].UserID)
	assert.Equal(t, "Deniz", participants[0].FirstName)
	assert.Equal(t, string(models.ParticipationGoing), participants[0].Status)
}

func TestEventService_List_FiltersAndCache(t *testing.T) {
	f := newEventServiceFixture()
	club := f.addClub(7)
	f.events.add(&models.Event{ClubID: club.ID, Title: "Hack Night", EventDate: time.Now().Add(24 * time.Hour), Capacity: 10})
	f.events.add(&models.Event{ClubID: club.ID, Title: "Career Fair", EventDate: time.Now().Add(72 * time.Hour), Capacity: 10})

	resp, err := f.svc.List(context.Background(), &dto.EventFilterRequest{Search: "hack", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Hack Night", resp.Events[0].Title)

	// Creating an event invalidates the cached feed.
	_, err = f.svc.Create(context.Background(), 7, models.RoleClubAdmin, &dto.CreateEventRequest{
		ClubID: club.ID, Title: "Hackathon", EventDate: time.Now().Add(96 * time.Hour), Location: "Hall A", Capacity: 100,
	})
	require.NoError(t, err)

	resp, err = f.svc.List(context.Background(), &dto.EventFilterRequest{Search: "hack", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, resp.Events, 2)
}
