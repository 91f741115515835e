package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("already checked in for this day")
	ErrAlreadyCheckedOut  = errors.New("attendance record is already checked out")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
