package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

const (
	leaveDateLayout   = "2006-01-02"
	minLeaveReasonLen = 10

	defaultLeaveListLimit = 50
	maxLeaveListLimit     = 200
)

// LeaveService handles leave requests and their review
type LeaveService struct {
	leaveRepo repositories.ILeaveRepository
	userRepo  repositories.IUserRepository
	logger    zerolog.Logger
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(leaveRepo repositories.ILeaveRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) *LeaveService {
	return &LeaveService{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Apply files a new leave request for the calling account
func (s *LeaveService) Apply(ctx context.Context, userID int64, req *dto.ApplyLeaveRequest) (*dto.LeaveResponse, error) {
	start, err := time.Parse(leaveDateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("startDate must be in YYYY-MM-DD format")
	}
	end, err := time.Parse(leaveDateLayout, req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("endDate must be in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("endDate must not be before startDate")
	}
	if len(strings.TrimSpace(req.Reason)) < minLeaveReasonLen {
		return nil, apperrors.NewValidationError("reason must be at least 10 characters")
	}

	leave := &models.Leave{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    models.LeavePending,
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Int64("leaveID", leave.ID).Msg("Leave request filed")
	return dto.NewLeaveResponse(leave), nil
}

// List returns the caller's own requests, or the requests of the caller's
// department when the caller is a head. The query can narrow by status and
// page the result.
func (s *LeaveService) List(ctx context.Context, userID int64, role models.RoleType, query *dto.ListLeavesQuery) (*dto.LeaveListResponse, error) {
	filter, err := buildLeaveFilter(query)
	if err != nil {
		return nil, err
	}

	var leaves []*models.Leave
	if role == models.RoleHead {
		caller, cerr := s.userRepo.GetByID(ctx, userID)
		if cerr != nil {
			return nil, cerr
		}
		leaves, err = s.leaveRepo.ListByDepartment(ctx, caller.Department, filter)
	} else {
		leaves, err = s.leaveRepo.ListByUser(ctx, userID, filter)
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaveListResponse{
		Count:  len(leaves),
		Leaves: make([]*dto.LeaveResponse, 0, len(leaves)),
	}
	for _, l := range leaves {
		resp.Leaves = append(resp.Leaves, dto.NewLeaveResponse(l))
	}
	return resp, nil
}

func buildLeaveFilter(query *dto.ListLeavesQuery) (repositories.LeaveFilter, error) {
	filter := repositories.LeaveFilter{Limit: defaultLeaveListLimit}
	if query == nil {
		return filter, nil
	}

	if query.Status != "" {
		status := models.LeaveStatus(query.Status)
		if !status.Valid() {
			return filter, apperrors.NewValidationError("status must be pending, approved or rejected")
		}
		filter.Status = status
	}
	if query.Limit > 0 {
		filter.Limit = query.Limit
		if filter.Limit > maxLeaveListLimit {
			filter.Limit = maxLeaveListLimit
		}
	}
	if query.Page > 1 {
		filter.Offset = (query.Page - 1) * filter.Limit
	}
	return filter, nil
}

// GetByID retrieves one leave request. Ownership is enforced by middleware
// before this runs.
func (s *LeaveService) GetByID(ctx context.Context, id int64) (*dto.LeaveResponse, error) {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewLeaveResponse(leave), nil
}

// Review approves or rejects a pending request. Only the pending state can be
// reviewed; anything else is a conflict.
func (s *LeaveService) Review(ctx context.Context, id int64, reviewerID int64, req *dto.ReviewLeaveRequest) (*dto.LeaveResponse, error) {
	if req.Status != models.LeaveApproved && req.Status != models.LeaveRejected {
		return nil, apperrors.NewValidationError("status must be approved or rejected")
	}

	if err := s.leaveRepo.Review(ctx, id, req.Status, req.AdminRemarks, reviewerID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("leaveID", id).Int64("reviewerID", reviewerID).
		Str("status", string(req.Status)).Msg("Leave request reviewed")

	return s.GetByID(ctx, id)
}

// Cancel removes a leave request while it is still pending
func (s *LeaveService) Cancel(ctx context.Context, id int64) error {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if leave.Status != models.LeavePending {
		return apperrors.NewConflictError("only pending leave requests can be cancelled")
	}
	return s.leaveRepo.Delete(ctx, id)
}
