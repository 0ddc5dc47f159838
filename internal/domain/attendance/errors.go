package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyMarked = errors.New("attendance already marked for this date")

	// Check-out errors
	ErrNoCheckIn         = errors.New("cannot check out without a check-in")
	ErrAlreadyCheckedOut = errors.New("checkout already recorded")
	ErrInvalidTimeOrder  = errors.New("check-out time must be after check-in time")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
