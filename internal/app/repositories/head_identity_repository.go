package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/db"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
	"github.com/attendtrack/attendtrack/internal/pkg/dberrors"
)

// HeadIdentityRepository handles pre-provisioned head identity operations
type HeadIdentityRepository struct {
	db *pgxpool.Pool
}

// NewHeadIdentityRepository creates a new HeadIdentityRepository
func NewHeadIdentityRepository(db *pgxpool.Pool) *HeadIdentityRepository {
	return &HeadIdentityRepository{
		db: db,
	}
}

// Create inserts a pre-provisioned identity slot. Used by seeding and
// administrative provisioning; the registration flow never creates slots.
func (r *HeadIdentityRepository) Create(ctx context.Context, identity *models.HeadIdentity) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO head_identities (hod_id, name, department)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		identity.HodID, identity.Name, identity.Department).
		Scan(&identity.ID, &identity.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "head_identities_hod_id_key") {
			return apperrors.NewConflictError("head identifier already provisioned")
		}
		return fmt.Errorf("error creating head identity: %w", err)
	}
	return nil
}

// GetByHodID retrieves an identity slot by its head identifier
func (r *HeadIdentityRepository) GetByHodID(ctx context.Context, hodID string) (*models.HeadIdentity, error) {
	identity := &models.HeadIdentity{}
	err := r.db.QueryRow(ctx, `
		SELECT id, hod_id, name, department, password, is_registered, registered_user_id, created_at
		FROM head_identities
		WHERE hod_id = $1`, hodID).Scan(
		&identity.ID, &identity.HodID, &identity.Name, &identity.Department,
		&identity.Password, &identity.IsRegistered, &identity.RegisteredUserID, &identity.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting head identity: %w", err)
	}
	return identity, nil
}

// RegisterIdentity completes a head registration in one transaction: the
// account row is inserted first, then the identity slot is flipped to
// registered with the same password hash and the link back to the new
// account. The WHERE is_registered = FALSE guard makes the transition
// single-shot; a concurrent registration of the same identifier loses and
// gets a conflict.
func (r *HeadIdentityRepository) RegisterIdentity(ctx context.Context, hodID string, account *models.User) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (name, email, password, role, hod_id, roll_number, department)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			account.Name, account.Email, account.Password, account.Role,
			account.HodID, account.RollNumber, account.Department).
			Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			if dberrors.IsDuplicateConstraintError(err, "users_hod_id_key") {
				return apperrors.ErrAlreadyRegistered
			}
			return fmt.Errorf("error creating head account: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE head_identities
			SET password = $2, is_registered = TRUE, registered_user_id = $3
			WHERE hod_id = $1 AND is_registered = FALSE`,
			hodID, account.Password, account.ID)
		if err != nil {
			return fmt.Errorf("error registering head identity: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrAlreadyRegistered
		}

		return nil
	})
}

// SyncPasswords replaces the hash on both the account and its identity slot
// in one transaction. Head login verifies against the identity record, so a
// password change has to reach both.
func (r *HeadIdentityRepository) SyncPasswords(ctx context.Context, userID int64, hodID string, passwordHash string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, userID, passwordHash)
		if err != nil {
			return fmt.Errorf("error updating account password: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		tag, err = tx.Exec(ctx, `
			UPDATE head_identities SET password = $2 WHERE hod_id = $1 AND is_registered = TRUE`,
			hodID, passwordHash)
		if err != nil {
			return fmt.Errorf("error updating identity password: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewIntegrityError("registered head account has no registered identity slot")
		}

		return nil
	})
}
