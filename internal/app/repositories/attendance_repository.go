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

const attendanceColumns = `id, user_id, date, status, check_in_time, remarks, created_at`

// AttendanceRepository handles attendance entries
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := row.Scan(&a.ID, &a.UserID, &a.Date, &a.Status, &a.CheckInTime, &a.Remarks, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning attendance: %w", err)
	}
	return a, nil
}

// Create inserts an attendance entry. The unique index on (user_id, date)
// enforces one entry per user per day.
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendances (user_id, date, status, check_in_time, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		attendance.UserID, attendance.Date, attendance.Status,
		attendance.CheckInTime, attendance.Remarks).
		Scan(&attendance.ID, &attendance.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("attendance already marked for this date")
		}
		return fmt.Errorf("error creating attendance: %w", err)
	}
	return nil
}

// GetByID retrieves one attendance entry
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	return scanAttendance(r.db.QueryRow(ctx, `
		SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
}

// GetOwnerID returns the owning account id of an attendance entry
func (r *AttendanceRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM attendances WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResourceNotFound
		}
		return 0, fmt.Errorf("error getting attendance owner: %w", err)
	}
	return ownerID, nil
}

// ListByUser retrieves all attendance entries for one account
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+attendanceColumns+` FROM attendances WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendances: %w", err)
	}
	defer rows.Close()
	return collectAttendances(rows)
}

// ListByDepartment retrieves attendance entries for every account in a
// department. Heads are scoped to their own department this way.
func (r *AttendanceRepository) ListByDepartment(ctx context.Context, department string) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.user_id, a.date, a.status, a.check_in_time, a.remarks, a.created_at
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE u.department = $1
		ORDER BY a.date DESC, a.user_id`, department)
	if err != nil {
		return nil, fmt.Errorf("error listing attendances: %w", err)
	}
	defer rows.Close()
	return collectAttendances(rows)
}

func collectAttendances(rows pgx.Rows) ([]*models.Attendance, error) {
	var attendances []*models.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, a)
	}
	return attendances, rows.Err()
}
