package dto

import (
	"time"

	"github.com/attendtrack/attendtrack/internal/app/models"
)

// MarkAttendanceRequest marks today's attendance for the caller.
type MarkAttendanceRequest struct {
	Status  models.AttendanceStatus `json:"status"`
	Remarks string                  `json:"remarks"`
}

// AttendanceResponse represents one attendance entry
type AttendanceResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	CheckInTime time.Time `json:"checkInTime"`
	Remarks     string    `json:"remarks,omitempty"`
}

// NewAttendanceResponse maps an attendance entry for output.
func NewAttendanceResponse(a *models.Attendance) *AttendanceResponse {
	if a == nil {
		return nil
	}
	return &AttendanceResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Date:        a.Date.Format("2006-01-02"),
		Status:      string(a.Status),
		CheckInTime: a.CheckInTime,
		Remarks:     a.Remarks,
	}
}

// AttendanceListResponse wraps an attendance list
type AttendanceListResponse struct {
	Count       int                   `json:"count"`
	Attendances []*AttendanceResponse `json:"attendances"`
}
