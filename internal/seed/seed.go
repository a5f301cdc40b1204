package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

// defaultIdentities are the head identity slots provisioned on a fresh
// install. Registration claims a slot; reprovisioning an existing one is a
// no-op.
var defaultIdentities = []models.HeadIdentity{
	{HodID: "HOD_CSE_001", Name: "Head of Computer Science", Department: "Computer Science"},
	{HodID: "HOD_EEE_001", Name: "Head of Electrical Engineering", Department: "Electrical Engineering"},
	{HodID: "HOD_MEC_001", Name: "Head of Mechanical Engineering", Department: "Mechanical Engineering"},
}

// CreateDefaultData provisions the default head identity slots if they don't
// exist. Errors are collected so one bad slot doesn't block the rest.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	identityRepo := repositories.NewHeadIdentityRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default head identities...")
	var finalErr error

	for _, identity := range defaultIdentities {
		slot := identity
		err := identityRepo.Create(ctx, &slot)
		if err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			lgr.Error().Err(err).Str("hodId", identity.HodID).Msg("Error provisioning head identity")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("hodId", slot.HodID).Str("department", slot.Department).Msg("Head identity provisioned")
	}

	return finalErr
}
