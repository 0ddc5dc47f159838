package attendance

import (
	"time"

	"github.com/kerjalog/attendance-backend-go/internal/pkg/timeutil"
)

// NewRecordResponse renders a record with all instants in the reference
// offset.
func NewRecordResponse(rec Record, loc *time.Location) RecordResponse {
	resp := RecordResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		EmployeeName:     rec.EmployeeName,
		EmployeePosition: rec.EmployeePosition,
		Date:             timeutil.FormatDay(rec.Date, loc),
		Status:           string(rec.Status),
		Shift:            string(rec.Shift),
		WorkHours:        rec.WorkHours,
		Notes:            rec.Notes,
		CreatedAt:        rec.CreatedAt.In(loc).Format("2006-01-02 15:04:05"),
		UpdatedAt:        rec.UpdatedAt.In(loc).Format("2006-01-02 15:04:05"),
	}
	if rec.CheckIn != nil {
		resp.CheckInTime = formatInstant(rec.CheckIn.Time, loc)
		resp.CheckInDevice = optional(rec.CheckIn.Device)
		resp.CheckInIP = optional(rec.CheckIn.SourceIP)
	}
	if rec.CheckOut != nil {
		resp.CheckOutTime = formatInstant(rec.CheckOut.Time, loc)
		resp.CheckOutDevice = optional(rec.CheckOut.Device)
		resp.CheckOutIP = optional(rec.CheckOut.SourceIP)
	}
	return resp
}

func formatInstant(t time.Time, loc *time.Location) *string {
	formatted := t.In(loc).Format("2006-01-02 15:04:05")
	return &formatted
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
