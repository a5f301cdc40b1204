package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

// AttendanceService handles daily attendance marking and listing
type AttendanceService struct {
	attendanceRepo repositories.IAttendanceRepository
	userRepo       repositories.IUserRepository
	logger         zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(attendanceRepo repositories.IAttendanceRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// Mark records today's attendance for the calling account. A second mark on
// the same day surfaces as a conflict from the unique index.
func (s *AttendanceService) Mark(ctx context.Context, userID int64, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	status := req.Status
	if status == "" {
		status = models.AttendancePresent
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid attendance status")
	}

	now := time.Now().UTC()
	attendance := &models.Attendance{
		UserID:      userID,
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Status:      status,
		CheckInTime: now,
		Remarks:     req.Remarks,
	}

	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, err
	}

	return dto.NewAttendanceResponse(attendance), nil
}

// List returns the caller's own entries, or the entries of every account in
// the caller's department when the caller is a head.
func (s *AttendanceService) List(ctx context.Context, userID int64, role models.RoleType) (*dto.AttendanceListResponse, error) {
	var (
		entries []*models.Attendance
		err     error
	)
	if role == models.RoleHead {
		caller, cerr := s.userRepo.GetByID(ctx, userID)
		if cerr != nil {
			return nil, cerr
		}
		entries, err = s.attendanceRepo.ListByDepartment(ctx, caller.Department)
	} else {
		entries, err = s.attendanceRepo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.AttendanceListResponse{
		Count:       len(entries),
		Attendances: make([]*dto.AttendanceResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Attendances = append(resp.Attendances, dto.NewAttendanceResponse(e))
	}
	return resp, nil
}

// GetByID retrieves one attendance entry. Ownership is enforced by middleware
// before this runs.
func (s *AttendanceService) GetByID(ctx context.Context, id int64) (*dto.AttendanceResponse, error) {
	attendance, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewAttendanceResponse(attendance), nil
}
