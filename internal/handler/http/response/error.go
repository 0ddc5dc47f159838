package response

import (
	"errors"
	"net/http"

	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// An empty filter resolution carries the filters that produced it
	var noMatch *employee.NoMatchError
	if errors.As(err, &noMatch) {
		NotFound(w, noMatch.Error())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrNoCheckIn):
		BadRequest(w, "Cannot check out without a check-in", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Checkout already recorded")
	case errors.Is(err, attendance.ErrInvalidTimeOrder):
		BadRequest(w, "Check-out time must be after check-in time", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Employee directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
