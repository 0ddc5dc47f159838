package attendance

import (
	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
)

// Policy maps computed work hours to a status. The thresholds encode a
// business decision and come from configuration, not literals.
type Policy struct {
	PresentMinHours float64
	HalfDayMinHours float64
}

func DefaultPolicy() Policy {
	return Policy{
		PresentMinHours: 8,
		HalfDayMinHours: 4,
	}
}

// DeriveStatus is consulted when a check-out completes a record that was not
// created with an explicit non-time status.
func (p Policy) DeriveStatus(workHours float64) attendance.Status {
	switch {
	case workHours >= p.PresentMinHours:
		return attendance.StatusPresent
	case workHours >= p.HalfDayMinHours:
		return attendance.StatusHalfDay
	case workHours > 0:
		return attendance.StatusEarlyLeave
	default:
		return attendance.StatusAbsent
	}
}
