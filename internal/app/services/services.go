package services

import (
	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/repositories"
	"github.com/dyilmaz/campushub/internal/pkg/auth"
	"github.com/dyilmaz/campushub/internal/pkg/cache"
	"github.com/dyilmaz/campushub/internal/pkg/weather"
)

// Services is the container for all service instances
type Services struct {
	AuthService         *AuthService
	ClubService         *ClubService
	EventService        *EventService
	NotificationService *NotificationService
	CommentService      *CommentService
	UserService         *UserService
	AdminService        *AdminService
	WeatherService      *WeatherService
}

// NewServices wires every service to its repositories and shared
// infrastructure.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	cacheStore cache.Cache,
	weatherClient *weather.Client,
	logger zerolog.Logger,
) *Services {
	notificationService := NewNotificationService(
		repos.NotificationRepository,
		repos.ClubFollowerRepository,
		logger.With().Str("service", "notification").Logger(),
	)

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			jwtService,
			logger.With().Str("service", "auth").Logger(),
		),
		ClubService: NewClubService(
			repos.ClubRepository,
			repos.ClubFollowerRepository,
			repos.EventRepository,
			repos.UserRepository,
			cacheStore,
			logger.With().Str("service", "club").Logger(),
		),
		EventService: NewEventService(
			repos.EventRepository,
			repos.ClubRepository,
			repos.ParticipantRepository,
			notificationService,
			cacheStore,
			logger.With().Str("service", "event").Logger(),
		),
		NotificationService: notificationService,
		CommentService: NewCommentService(
			repos.CommentRepository,
			repos.EventRepository,
			repos.UserRepository,
			logger.With().Str("service", "comment").Logger(),
		),
		UserService: NewUserService(
			repos.UserRepository,
			repos.ParticipantRepository,
			repos.ClubFollowerRepository,
			logger.With().Str("service", "user").Logger(),
		),
		AdminService: NewAdminService(
			repos.UserRepository,
			repos.ClubRepository,
			repos.EventRepository,
			repos.CommentRepository,
			repos.NotificationRepository,
			logger.With().Str("service", "admin").Logger(),
		),
		WeatherService: NewWeatherService(
			weatherClient,
			cacheStore,
			logger.With().Str("service", "weather").Logger(),
		),
	}
}
