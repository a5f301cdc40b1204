package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
	"github.com/attendtrack/attendtrack/internal/pkg/dberrors"
)

const userColumns = `id, name, email, password, role, hod_id, roll_number, department, created_at, updated_at`

// UserRepository handles account-record database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.HodID, &user.RollNumber, &user.Department, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return user, nil
}

// Create inserts a new account record and fills in its assigned id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role, hod_id, roll_number, department)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		user.Name, user.Email, user.Password, user.Role,
		user.HodID, user.RollNumber, user.Department).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_hod_id_key") {
			return apperrors.NewConflictError("head identifier already in use")
		}
		if dberrors.IsDuplicateConstraintError(err, "users_student_roll_number_key") {
			return apperrors.ErrRollNumberExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves an account record by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmailAndRole retrieves an account record by email restricted to a role
func (r *UserRepository) GetByEmailAndRole(ctx context.Context, email string, role models.RoleType) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1 AND role = $2`, email, role))
}

// GetHeadByHodID retrieves the head account linked to a head identifier
func (r *UserRepository) GetHeadByHodID(ctx context.Context, hodID string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE hod_id = $1 AND role = $2`, hodID, models.RoleHead))
}

// EmailExists checks if an email is used by any account, regardless of role
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// RollNumberExists checks if a roll number is used by another student.
// Head accounts are deliberately not consulted.
func (r *UserRepository) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE roll_number = $1 AND role = $2)`,
		rollNumber, models.RoleStudent).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking roll number: %w", err)
	}
	return exists, nil
}

// LastHeadInDepartment returns the most recently created head account in a
// department, or ErrUserNotFound when the department has none yet.
func (r *UserRepository) LastHeadInDepartment(ctx context.Context, department string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE role = $1 AND department = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, models.RoleHead, department))
}

// ListHeads retrieves all head accounts
func (r *UserRepository) ListHeads(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`, models.RoleHead)
	if err != nil {
		return nil, fmt.Errorf("error listing heads: %w", err)
	}
	defer rows.Close()

	var heads []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		heads = append(heads, user)
	}
	return heads, rows.Err()
}

// UpdateProfile updates an account's name, email and department
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, name, email, department string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET name = $2, email = $3, department = $4, updated_at = NOW()
		WHERE id = $1`, id, name, email, department)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces an account's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes an account record. Outstanding tokens for the account become
// invalid because token verification resolves the account on every request.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
