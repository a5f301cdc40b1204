package auth

import (
	"context"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

// ResourceLookup resolves a resource id to the account id that owns it.
// Implementations return apperrors.ErrResourceNotFound for unknown ids.
type ResourceLookup func(ctx context.Context, resourceID int64) (int64, error)

// AuthorizationService decides whether an account may act on a resource.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// VerifyOwnership grants access when the caller owns the resource or holds
// the head role; heads see everything. A missing resource stays a not-found,
// never a permission error, so callers can't probe ids they don't own.
func (s *AuthorizationService) VerifyOwnership(ctx context.Context, userID int64, role models.RoleType, resourceID int64, lookup ResourceLookup) error {
	if role == models.RoleHead {
		return nil
	}

	ownerID, err := lookup(ctx, resourceID)
	if err != nil {
		return err
	}

	if ownerID != userID {
		return apperrors.NewForbiddenError("you do not have access to this resource")
	}
	return nil
}

// RequireRole checks that the caller holds one of the allowed roles.
func RequireRole(role models.RoleType, allowed ...models.RoleType) error {
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return apperrors.NewForbiddenError("insufficient role for this operation")
}
