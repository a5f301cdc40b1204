package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

func TestVerifyOwnership(t *testing.T) {
	svc := NewAuthorizationService()
	ctx := context.Background()

	owners := map[int64]int64{10: 1, 20: 2}
	lookup := func(_ context.Context, resourceID int64) (int64, error) {
		ownerID, ok := owners[resourceID]
		if !ok {
			return 0, apperrors.ErrResourceNotFound
		}
		return ownerID, nil
	}

	t.Run("owner passes", func(t *testing.T) {
		assert.NoError(t, svc.VerifyOwnership(ctx, 1, models.RoleStudent, 10, lookup))
	})

	t.Run("other student forbidden", func(t *testing.T) {
		err := svc.VerifyOwnership(ctx, 1, models.RoleStudent, 20, lookup)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("head sees everything", func(t *testing.T) {
		assert.NoError(t, svc.VerifyOwnership(ctx, 99, models.RoleHead, 10, lookup))
		assert.NoError(t, svc.VerifyOwnership(ctx, 99, models.RoleHead, 20, lookup))
	})

	t.Run("missing resource is not-found, not forbidden", func(t *testing.T) {
		err := svc.VerifyOwnership(ctx, 1, models.RoleStudent, 404, lookup)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
		assert.NotErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole(models.RoleHead, models.RoleHead))
	assert.NoError(t, RequireRole(models.RoleStudent, models.RoleStudent, models.RoleHead))

	err := RequireRole(models.RoleStudent, models.RoleHead)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
