package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/blogsphere/blogsphere/internal/app/models"
	appRepos "github.com/blogsphere/blogsphere/internal/app/repositories"
	"github.com/blogsphere/blogsphere/internal/config"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@blogsphere.app"
	defaultAdminUsername = "admin"
	defaultAdminName     = "Site Administrator"
)

// CreateDefaultData ensures the default admin account exists so a fresh
// deployment has someone who can moderate the pending queue.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	password := config.GetEnv("ADMIN_PASSWORD", "changeme123")
	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	adminID, err := userRepo.Create(ctx, defaultAdminEmail, hashed, appModels.RoleAdmin)
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Debug().Str("email", defaultAdminEmail).Msg("Default admin already exists, skipping")
		return nil
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	if err := userRepo.SetupProfile(ctx, adminID, defaultAdminName, defaultAdminUsername, "", ""); err != nil {
		lgr.Error().Err(err).Msg("Error completing default admin profile")
		return err
	}

	lgr.Info().Int64("userID", adminID).Str("email", defaultAdminEmail).Msg("Default admin user created")
	return nil
}
