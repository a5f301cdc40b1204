package models

// RoleType defines the account role
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleHead    RoleType = "hod"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleHead
}

// AttendanceStatus defines the state of a daily attendance entry
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid reports whether the status is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceLate
}

// LeaveStatus defines the state of a leave request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// Valid reports whether the status is one of the known statuses.
func (s LeaveStatus) Valid() bool {
	return s == LeavePending || s == LeaveApproved || s == LeaveRejected
}
