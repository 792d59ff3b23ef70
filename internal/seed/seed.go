package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/shecodes/community-api/internal/app/models"
	appRepos "github.com/shecodes/community-api/internal/app/repositories"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
)

// CreateDefaultData inserts the default admin user and a starter set of
// mentors when the tables are still empty. Passwords and account lifecycle
// live in the identity service, so users are seeded without credentials.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	mentorRepo := appRepos.NewMentorRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin user --- //
	_, err := userRepo.GetByEmail(ctx, "admin@shecodes.id")
	switch {
	case err == nil:
		lgr.Info().Msg("Admin user already exists, skipping creation")
	case errors.Is(err, apperrors.ErrUserNotFound):
		admin := &appModels.User{
			Email: "admin@shecodes.id",
			Name:  "Community Admin",
			Role:  appModels.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			lgr.Error().Err(err).Msg("Error creating admin user")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
		}
	default:
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Starter mentors --- //
	mentors, _, err := mentorRepo.GetAll(ctx, nil, nil, 1, 1)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing mentors")
		return errors.Join(finalErr, err)
	}

	if len(mentors) > 0 {
		lgr.Info().Msg("Mentors already exist, skipping creation")
		return finalErr
	}

	defaults := []*appModels.Mentor{
		{
			Name:        "Grace Hopper",
			Occupation:  "Software Engineer",
			Description: "Backend engineer who loves teaching the fundamentals.",
			ImageSrc:    "/images/mentors/grace.jpg",
			Story:       "Started out in scientific computing and never stopped learning.",
			Status:      "active",
		},
		{
			Name:        "Ada Lovelace",
			Occupation:  "Data Scientist",
			Description: "Turns messy datasets into clear stories.",
			ImageSrc:    "/images/mentors/ada.jpg",
			Story:       "From mathematics to machine learning, one notebook at a time.",
			Status:      "active",
		},
	}

	for _, mentor := range defaults {
		if err := mentorRepo.Create(ctx, mentor); err != nil {
			lgr.Error().Err(err).Str("name", mentor.Name).Msg("Error creating default mentor")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
