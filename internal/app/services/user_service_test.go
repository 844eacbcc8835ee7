package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
)

type userServiceFixture struct {
	svc          *UserService
	users        *fakeUserStore
	clubs        *fakeClubStore
	followers    *fakeFollowerStore
	participants *fakeParticipantStore
}

func newUserServiceFixture() *userServiceFixture {
	users := newFakeUserStore()
	clubs := newFakeClubStore(users)
	followers := newFakeFollowerStore(users, clubs)
	participants := newFakeParticipantStore(users)

	return &userServiceFixture{
		svc:          NewUserService(users, participants, followers, zerolog.Nop()),
		users:        users,
		clubs:        clubs,
		followers:    followers,
		participants: participants,
	}
}

func TestUserService_GetProfile(t *testing.T) {
	f := newUserServiceFixture()
	user := f.users.add(&models.User{Email: "deniz@campus.edu.tr", FirstName: "Deniz"})
	club := f.clubs.add(&models.Club{Name: "Robotics Club", Status: models.ClubStatusActive})

	_, err := f.followers.Follow(context.Background(), club.ID, user.ID)
	require.NoError(t, err)
	f.participants.history = []dto.ParticipatedEventResponse{
		{EventID: 9, Title: "Hack Night", EventDate: time.Now(), ClubName: "Robotics Club"},
	}

	resp, err := f.svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "deniz@campus.edu.tr", resp.Profile.Email)
	require.Len(t, resp.ParticipatedEvents, 1)
	assert.Equal(t, "Hack Night", resp.ParticipatedEvents[0].Title)
	require.Len(t, resp.FollowedClubs, 1)
	assert.Equal(t, "Robotics Club", resp.FollowedClubs[0].Name)
}

func TestUserService_GetProfile_EmptyActivity(t *testing.T) {
	f := newUserServiceFixture()
	user := f.users.add(&models.User{Email: "deniz@campus.edu.tr"})

	resp, err := f.svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, resp.ParticipatedEvents)
	assert.Empty(t, resp.ParticipatedEvents)
	assert.NotNil(t, resp.FollowedClubs)
	assert.Empty(t, resp.FollowedClubs)
}

func TestUserService_GetProfile_UnknownUser(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.GetProfile(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	f := newUserServiceFixture()
	user := f.users.add(&models.User{Email: "deniz@campus.edu.tr", FirstName: "Deniz", LastName: "Yilmaz", Department: "CE"})

	bio := "robotics enthusiast"
	newFirst := "Derin"
	resp, err := f.svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		FirstName: &newFirst,
		Bio:       &bio,
	})
	require.NoError(t, err)

	assert.Equal(t, "Derin", resp.FirstName)
	assert.Equal(t, "Yilmaz", resp.LastName)
	assert.Equal(t, "CE", resp.Department)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "robotics enthusiast", *resp.Bio)

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Derin", stored.FirstName)
}

func TestUserService_GetHistory_NeverNil(t *testing.T) {
	f := newUserServiceFixture()
	f.users.add(&models.User{Email: "deniz@campus.edu.tr"})

	history, err := f.svc.GetHistory(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
