package attendance

import (
	"fmt"

	"github.com/kerjalog/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	Time       *string `json:"time,omitempty"` // RFC3339; defaults to now
	Device     string  `json:"device"`
	SourceIP   string  `json:"-"` // filled from the request by the handler
	Status     *string `json:"status,omitempty"`
	Shift      *string `json:"shift,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Time != nil && *r.Time != "" {
		if _, ok := validator.IsValidDateTime(*r.Time); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time",
				Message: "time must be an ISO8601 timestamp",
			})
		}
	}

	if r.Status != nil && *r.Status != "" && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status value",
		})
	}

	if r.Shift != nil && *r.Shift != "" && !Shift(*r.Shift).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "shift",
			Message: "invalid shift value",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Time       *string `json:"time,omitempty"` // RFC3339; defaults to now
	Device     string  `json:"device"`
	SourceIP   string  `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Time != nil && *r.Time != "" {
		if _, ok := validator.IsValidDateTime(*r.Time); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time",
				Message: "time must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRequest struct {
	ID           string  `json:"-"`
	Date         *string `json:"date,omitempty"` // YYYY-MM-DD
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       *string `json:"status,omitempty"`
	Shift        *string `json:"shift,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if r.Date != nil && *r.Date != "" {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be YYYY-MM-DD",
			})
		}
	}

	for field, value := range map[string]*string{
		"check_in_time":  r.CheckInTime,
		"check_out_time": r.CheckOutTime,
	} {
		if value == nil || *value == "" {
			continue
		}
		_, fullOK := validator.IsValidDateTime(*value)
		_, clockOK := validator.IsValidClockTime(*value)
		if !fullOK && !clockOK {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be an ISO8601 timestamp or HH:MM time",
			})
		}
	}

	if r.Status != nil && *r.Status != "" && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status value",
		})
	}

	if r.Shift != nil && *r.Shift != "" && !Shift(*r.Shift).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "shift",
			Message: "invalid shift value",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// BULK DTOs
// ========================================

type BulkItem struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     *string `json:"status,omitempty"`
	Shift      *string `json:"shift,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Device     *string `json:"device,omitempty"`
}

type BulkRequest struct {
	Items    []BulkItem `json:"items"`
	SourceIP string     `json:"-"`
}

// Validate is the batch-fatal structural gate: every item needs an employee id
// and a parseable date, otherwise the whole batch is rejected before any write.
func (r *BulkRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "items",
			Message: "at least one item is required",
		})
		return errs
	}

	for i, item := range r.Items {
		if validator.IsEmpty(item.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("items[%d].employee_id", i),
				Message: "employee_id is required",
			})
		}
		if _, ok := validator.IsValidDate(item.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("items[%d].date", i),
				Message: "date must be YYYY-MM-DD",
			})
		}
		if item.Status != nil && *item.Status != "" && !Status(*item.Status).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("items[%d].status", i),
				Message: "invalid status value",
			})
		}
		if item.Shift != nil && *item.Shift != "" && !Shift(*item.Shift).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("items[%d].shift", i),
				Message: "invalid shift value",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkItemError is a per-item failure, reported with the employee and date
// that caused it while the rest of the batch proceeds.
type BulkItemError struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Message    string `json:"message"`
}

type BulkResponse struct {
	Results []RecordResponse `json:"results"`
	Errors  []BulkItemError  `json:"errors"`
}

// ========================================
// QUERY DTOs
// ========================================

type ListFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	PositionID   *string `json:"position_id,omitempty"`
	Date         *string `json:"date,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Status       *string `json:"status,omitempty"`
	Page         int     `json:"page"`
	Limit        int     `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
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

	if f.Status != nil && *f.Status != "" && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status value",
		})
	}

	if f.EmployeeName != nil && *f.EmployeeName != "" && len(*f.EmployeeName) < 2 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name must be at least 2 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type RecordResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	EmployeePosition *string `json:"employee_position,omitempty"`
	Date             string  `json:"date"`
	CheckInTime      *string `json:"check_in_time,omitempty"`
	CheckInDevice    *string `json:"check_in_device,omitempty"`
	CheckInIP        *string `json:"check_in_ip,omitempty"`
	CheckOutTime     *string `json:"check_out_time,omitempty"`
	CheckOutDevice   *string `json:"check_out_device,omitempty"`
	CheckOutIP       *string `json:"check_out_ip,omitempty"`
	Status           string  `json:"status"`
	Shift            string  `json:"shift"`
	WorkHours        float64 `json:"work_hours"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Records    []RecordResponse `json:"records"`
}

type FilterOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FilterOptionsResponse struct {
	Departments []FilterOption `json:"departments"`
	Positions   []FilterOption `json:"positions"`
}
