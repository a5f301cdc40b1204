package models

import (
	"time"
)

// Attendance defines a daily attendance entry based on the 'attendances'
// table. One entry per user per day (unique index on user_id + date).
type Attendance struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userId" db:"user_id"`
	Date        time.Time        `json:"date" db:"date"`
	Status      AttendanceStatus `json:"status" db:"status"`
	CheckInTime time.Time        `json:"checkInTime" db:"check_in_time"`
	Remarks     string           `json:"remarks,omitempty" db:"remarks"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
