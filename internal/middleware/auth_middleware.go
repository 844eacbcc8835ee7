package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/auth"
)

// Context keys for the authenticated identity
const (
	ContextUserID = "userID"
	ContextRole   = "userRole"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// JWTAuth requires a valid bearer token and stores the caller's
// identity in the request context. Missing, malformed and expired
// tokens get distinct messages; token contents are never logged.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.reject(c, http.StatusUnauthorized, apperrors.ErrTokenMissing.Error(), "missing header")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			m.reject(c, http.StatusUnauthorized, apperrors.ErrTokenInvalid.Error(), "bad header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			message := apperrors.ErrTokenInvalid.Error()
			reason := "invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = apperrors.ErrTokenExpired.Error()
				reason = "expired token"
			}
			m.reject(c, http.StatusUnauthorized, message, reason)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalJWTAuth attaches the caller's identity when a valid token is
// present and lets the request through anonymously otherwise. It never
// rejects.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.Next()
			return
		}

		if claims, err := m.jwtService.ValidateToken(tokenString); err == nil {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)
		}
		c.Next()
	}
}

// AdminRequired allows only authenticated admins through. An absent
// identity is an authentication failure, a wrong role an authorization
// one.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			m.reject(c, http.StatusUnauthorized, apperrors.ErrTokenMissing.Error(), "no identity for admin route")
			return
		}

		if role != string(models.RoleAdmin) {
			m.reject(c, http.StatusForbidden, apperrors.ErrPermissionDenied.Error(), "non-admin on admin route")
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, status int, message, reason string) {
	m.logger.Warn().
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Str("reason", reason).
		Msg("Request rejected")
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message))
}

// GetUserID reads the authenticated user id from the request context.
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// GetUserRole reads the authenticated role from the request context.
func GetUserRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	role, ok := value.(string)
	if !ok {
		return "", false
	}
	return models.Role(role), true
}
