// Package bootstrap wires configuration, storage, services and routes
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/dyilmaz/campushub/internal/app/controllers"
	appMigrations "github.com/dyilmaz/campushub/internal/app/migrations"
	appRepos "github.com/dyilmaz/campushub/internal/app/repositories"
	appRoutes "github.com/dyilmaz/campushub/internal/app/routes"
	appServices "github.com/dyilmaz/campushub/internal/app/services"
	"github.com/dyilmaz/campushub/internal/config"
	"github.com/dyilmaz/campushub/internal/db"
	appMiddleware "github.com/dyilmaz/campushub/internal/middleware"
	pkgAuth "github.com/dyilmaz/campushub/internal/pkg/auth"
	"github.com/dyilmaz/campushub/internal/pkg/cache"
	"github.com/dyilmaz/campushub/internal/pkg/logger"
	"github.com/dyilmaz/campushub/internal/pkg/weather"
	"github.com/dyilmaz/campushub/internal/seed"
)

// Dependencies holds the wired application components
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	Cache          cache.Cache
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateDir(ctx, migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return dbPool, nil
}

// SetupCache builds the cache backend. Redis when enabled and
// reachable, in-process memory otherwise.
func SetupCache(cfg *config.Config, lgr zerolog.Logger) cache.Cache {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled, using in-memory cache")
		return cache.NewMemoryCache()
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unreachable, falling back to in-memory cache")
		return cache.NewMemoryCache()
	}

	lgr.Info().Str("host", cfg.Redis.Host).Msg("Redis cache connected")
	return redisCache
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(dbPool)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExpiry: cfg.TokenExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	cacheStore := SetupCache(cfg, lgr)

	weatherClient := weather.NewClient(
		weather.WithTimeout(time.Duration(cfg.Weather.TimeoutSeconds) * time.Second),
	)

	services := appServices.NewServices(repos, jwtService, cacheStore, weatherClient, lgr)

	return &Dependencies{
		Repos:          repos,
		Services:       services,
		JWTService:     jwtService,
		Cache:          cacheStore,
		AuthMiddleware: appMiddleware.NewAuthMiddleware(jwtService, lgr.With().Str("component", "auth").Logger()),
		Logger:         lgr,
	}, nil
}

// SetupRouter builds the gin engine with all middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()))

	svcs := deps.Services
	appRoutes.SetupRouter(
		router,
		appControllers.NewAuthController(svcs.AuthService, lgr),
		appControllers.NewClubController(svcs.ClubService, lgr),
		appControllers.NewEventController(svcs.EventService, lgr),
		appControllers.NewCommentController(svcs.CommentService, lgr),
		appControllers.NewNotificationController(svcs.NotificationService, lgr),
		appControllers.NewUserController(svcs.UserService, lgr),
		appControllers.NewAdminController(svcs.AdminService, lgr),
		appControllers.NewWeatherController(svcs.WeatherService, lgr),
		deps.AuthMiddleware,
	)

	return router
}
