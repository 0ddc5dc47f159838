package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusHalfDay    Status = "half_day"
	StatusEarlyLeave Status = "early_leave"
	StatusOnLeave    Status = "on_leave"
	StatusAbsent     Status = "absent"
	StatusHoliday    Status = "holiday"
	StatusDayOff     Status = "day_off"
)

// AllStatuses lists every status in reporting order.
var AllStatuses = []Status{
	StatusPresent,
	StatusLate,
	StatusHalfDay,
	StatusEarlyLeave,
	StatusOnLeave,
	StatusAbsent,
	StatusHoliday,
	StatusDayOff,
}

func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// NonTime reports whether the status stands on its own, with no check-in or
// check-out times required.
func (s Status) NonTime() bool {
	switch s {
	case StatusHoliday, StatusAbsent, StatusOnLeave, StatusDayOff:
		return true
	}
	return false
}

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
)

func (s Shift) Valid() bool {
	switch s {
	case ShiftMorning, ShiftEvening, ShiftNight:
		return true
	}
	return false
}

// CheckEvent captures one side of the time-tracked path: the instant plus the
// device and source address that reported it.
type CheckEvent struct {
	Time     time.Time
	Device   string
	SourceIP string
}

// Record is the aggregate root. Date is always a day bucket in the reference
// offset; CheckIn/CheckOut hold absolute instants.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *CheckEvent
	CheckOut   *CheckEvent
	Status     Status
	Shift      Shift
	WorkHours  float64
	Notes      *string
	IsDeleted  bool
	CreatedBy  *string
	UpdatedBy  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName     *string
	EmployeePosition *string
}
