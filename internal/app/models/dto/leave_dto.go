package dto

import (
	"time"

	"github.com/attendtrack/attendtrack/internal/app/models"
)

// ApplyLeaveRequest files a new leave request for the caller.
type ApplyLeaveRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// ListLeavesQuery narrows a leave listing. Status is optional; limit and
// page default in the service.
type ListLeavesQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Page   int    `form:"page"`
}

// ReviewLeaveRequest approves or rejects a pending leave request.
type ReviewLeaveRequest struct {
	Status       models.LeaveStatus `json:"status" binding:"required"`
	AdminRemarks string             `json:"adminRemarks"`
}

// LeaveResponse represents one leave request
type LeaveResponse struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	Duration     int        `json:"duration"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminRemarks string     `json:"adminRemarks,omitempty"`
	ApprovedBy   *int64     `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
}

// NewLeaveResponse maps a leave request for output.
func NewLeaveResponse(l *models.Leave) *LeaveResponse {
	if l == nil {
		return nil
	}
	return &LeaveResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		Duration:     l.DurationDays(),
		Reason:       l.Reason,
		Status:       string(l.Status),
		AdminRemarks: l.AdminRemarks,
		ApprovedBy:   l.ApprovedBy,
		ApprovedAt:   l.ApprovedAt,
	}
}

// LeaveListResponse wraps a leave request list
type LeaveListResponse struct {
	Count  int              `json:"count"`
	Leaves []*LeaveResponse `json:"leaves"`
}
