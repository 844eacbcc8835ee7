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
	"github.com/dyilmaz/campushub/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExpiry: time.Hour,
		TokenIssuer: "campushub-test",
	})
}

func newTestAuthService(users *fakeUserStore) *AuthService {
	return NewAuthService(users, newTestJWTService(), zerolog.Nop())
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		StudentNumber: "20210101",
		Email:         "Deniz@Campus.edu.tr",
		Password:      "s3cretpass",
		FirstName:     "Deniz",
		LastName:      "Yilmaz",
		Department:    "Computer Engineering",
		Gender:        "female",
	}
}

func TestAuthService_Register(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	assert.Equal(t, "deniz@campus.edu.tr", resp.User.Email)
	assert.Equal(t, string(models.RoleStudent), resp.User.Role)

	stored, err := users.FindByEmail(context.Background(), "deniz@campus.edu.tr")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
	require.NoError(t, auth.CheckPassword(stored.PasswordHash, "s3cretpass"))
}

func TestAuthService_Register_InvalidStudentNumber(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	req := registerRequest()
	req.StudentNumber = "123"
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.StudentNumber = "20210102"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "deniz@campus.edu.tr",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "deniz@campus.edu.tr", resp.User.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "deniz@campus.edu.tr",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@campus.edu.tr",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_BannedAccount(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, users.SetDeleted(context.Background(), resp.User.ID, true))

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "deniz@campus.edu.tr",
		Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestAuthService_Login_BannedWithWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, users.SetDeleted(context.Background(), resp.User.ID, true))

	// Wrong credentials must win over the disabled state so the
	// response does not confirm the account exists.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "deniz@campus.edu.tr",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	user, err := svc.GetCurrentUser(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)

	require.NoError(t, users.SetDeleted(context.Background(), registered.User.ID, true))
	_, err = svc.GetCurrentUser(context.Background(), registered.User.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
