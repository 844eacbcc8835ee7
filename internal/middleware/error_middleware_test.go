package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
)

func TestHandleAPIError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad request", apperrors.ErrInvalidCapacity, http.StatusBadRequest},
		{"wrapped bad request", apperrors.NewBadRequestError("city is required"), http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"admin cannot follow", apperrors.ErrAdminCannotFollow, http.StatusForbidden},
		{"club not found", apperrors.ErrClubNotFound, http.StatusNotFound},
		{"wrapped not found", apperrors.NewResourceNotFoundError("city not found"), http.StatusNotFound},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"event full", apperrors.ErrEventFull, http.StatusConflict},
		{"club not active", apperrors.ErrClubNotActive, http.StatusConflict},
		{"not following", apperrors.ErrNotFollowing, http.StatusConflict},
		{"not participating", apperrors.ErrNotParticipating, http.StatusConflict},
		{"cannot ban admin", apperrors.ErrCannotBanAdmin, http.StatusBadRequest},
		{"service unavailable", apperrors.ErrServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		})
	}
}

func TestHandleAPIError_UnknownErrorIsOpaque(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
