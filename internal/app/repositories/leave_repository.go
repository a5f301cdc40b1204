package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

const leaveColumns = `id, user_id, start_date, end_date, reason, status, admin_remarks, approved_by, approved_at, created_at, updated_at`

// LeaveRepository handles leave requests
type LeaveRepository struct {
	db *pgxpool.Pool
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{
		db: db,
	}
}

func scanLeave(row pgx.Row) (*models.Leave, error) {
	l := &models.Leave{}
	err := row.Scan(
		&l.ID, &l.UserID, &l.StartDate, &l.EndDate, &l.Reason, &l.Status,
		&l.AdminRemarks, &l.ApprovedBy, &l.ApprovedAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning leave: %w", err)
	}
	return l, nil
}

// Create inserts a leave request
func (r *LeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO leaves (user_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		leave.UserID, leave.StartDate, leave.EndDate, leave.Reason, leave.Status).
		Scan(&leave.ID, &leave.CreatedAt, &leave.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating leave: %w", err)
	}
	return nil
}

// GetByID retrieves one leave request
func (r *LeaveRepository) GetByID(ctx context.Context, id int64) (*models.Leave, error) {
	return scanLeave(r.db.QueryRow(ctx, `
		SELECT `+leaveColumns+` FROM leaves WHERE id = $1`, id))
}

// GetOwnerID returns the owning account id of a leave request
func (r *LeaveRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM leaves WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResourceNotFound
		}
		return 0, fmt.Errorf("error getting leave owner: %w", err)
	}
	return ownerID, nil
}

// ListByUser retrieves leave requests for one account, newest first
func (r *LeaveRepository) ListByUser(ctx context.Context, userID int64, filter LeaveFilter) ([]*models.Leave, error) {
	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE user_id = $1`
	args := []interface{}{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`
	query, args = appendPaging(query, args, filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing leaves: %w", err)
	}
	defer rows.Close()
	return collectLeaves(rows)
}

// ListByDepartment retrieves leave requests filed by accounts in a
// department. Heads are scoped to their own department this way.
func (r *LeaveRepository) ListByDepartment(ctx context.Context, department string, filter LeaveFilter) ([]*models.Leave, error) {
	query := `
		SELECT l.id, l.user_id, l.start_date, l.end_date, l.reason, l.status,
		       l.admin_remarks, l.approved_by, l.approved_at, l.created_at, l.updated_at
		FROM leaves l
		JOIN users u ON u.id = l.user_id
		WHERE u.department = $1`
	args := []interface{}{department}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	query += ` ORDER BY l.created_at DESC`
	query, args = appendPaging(query, args, filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing leaves: %w", err)
	}
	defer rows.Close()
	return collectLeaves(rows)
}

func appendPaging(query string, args []interface{}, filter LeaveFilter) (string, []interface{}) {
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

// Review records an approval or rejection on a pending leave request
func (r *LeaveRepository) Review(ctx context.Context, id int64, status models.LeaveStatus, remarks string, approvedBy int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE leaves
		SET status = $2, admin_remarks = $3, approved_by = $4, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $5`,
		id, status, remarks, approvedBy, models.LeavePending)
	if err != nil {
		return fmt.Errorf("error reviewing leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("leave request is not pending")
	}
	return nil
}

// Delete removes a leave request
func (r *LeaveRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

func collectLeaves(rows pgx.Rows) ([]*models.Leave, error) {
	var leaves []*models.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}
