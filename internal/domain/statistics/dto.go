package statistics

import (
	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/validator"
)

type StatsRequest struct {
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD; defaults to current month
	EndDate      *string `json:"end_date,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}

func (r *StatsRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]*string{
		"start_date": r.StartDate,
		"end_date":   r.EndDate,
	} {
		if value == nil || *value == "" {
			continue
		}
		if _, ok := validator.IsValidDate(*value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// StatusStats is one status bucket of the current period: how many records,
// how many distinct employees, total hours, and the records themselves sorted
// by date descending.
type StatusStats struct {
	Status          string                      `json:"status"`
	Count           int                         `json:"count"`
	UniqueEmployees int                         `json:"unique_employees"`
	TotalWorkHours  float64                     `json:"total_work_hours"`
	Records         []attendance.RecordResponse `json:"records"`
}

// PreviousPeriod carries the comparison baseline: the same range shifted back
// one calendar month.
type PreviousPeriod struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalEmployees int64   `json:"total_employees"`
	TotalRecords   int     `json:"total_records"`
	TotalWorkHours float64 `json:"total_work_hours"`
}

// TrendDeltas holds signed percentage changes, one decimal place, leading +
// for non-negative values (e.g. "+25.0%", "-100.0%").
type TrendDeltas struct {
	ByStatus       map[string]string `json:"by_status"`
	TotalWorkHours string            `json:"total_work_hours"`
	TotalEmployees string            `json:"total_employees"`
}

type StatsResponse struct {
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	TotalEmployees int64          `json:"total_employees"`
	TotalRecords   int            `json:"total_records"`
	TotalWorkHours float64        `json:"total_work_hours"`
	ByStatus       []StatusStats  `json:"by_status"`
	Previous       PreviousPeriod `json:"previous"`
	Trends         TrendDeltas    `json:"trends"`
}
