package models

import (
	"time"
)

// Leave defines a leave request based on the 'leaves' table.
type Leave struct {
	ID           int64       `json:"id" db:"id"`
	UserID       int64       `json:"userId" db:"user_id"`
	StartDate    time.Time   `json:"startDate" db:"start_date"`
	EndDate      time.Time   `json:"endDate" db:"end_date"`
	Reason       string      `json:"reason" db:"reason"`
	Status       LeaveStatus `json:"status" db:"status"`
	AdminRemarks string      `json:"adminRemarks,omitempty" db:"admin_remarks"`
	ApprovedBy   *int64      `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt   *time.Time  `json:"approvedAt,omitempty" db:"approved_at"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

// DurationDays returns the inclusive length of the leave in days.
func (l *Leave) DurationDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
