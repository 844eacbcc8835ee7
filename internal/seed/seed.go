package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/repositories"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@campushub.app"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData makes sure a platform admin account exists so a
// fresh deployment can be administered. Running it again is a no-op.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, logger zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		StudentNumber: "00000000",
		Email:         defaultAdminEmail,
		PasswordHash:  hash,
		FirstName:     "Platform",
		LastName:      "Admin",
		Department:    "Administration",
		Gender:        "unspecified",
		Role:          models.RoleAdmin,
	}

	_, err = userRepo.Create(ctx, admin)
	switch {
	case err == nil:
		logger.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrStudentNumberExists):
		logger.Debug().Msg("Default admin account already present")
	default:
		return err
	}

	return nil
}
