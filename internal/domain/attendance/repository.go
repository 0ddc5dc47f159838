package attendance

import (
	"context"
	"time"
)

// RecordQuery narrows repository reads. Days are bucket values in the
// reference offset; soft-deleted rows are always excluded.
type RecordQuery struct {
	Day         *time.Time
	From        *time.Time
	To          *time.Time
	EmployeeIDs []string // nil means no restriction; empty means match nothing
	Status      *Status
	Page        int
	Limit       int // 0 disables pagination
}

// Repository defines data access for attendance records.
type Repository interface {
	// Create inserts a new record. The storage layer's partial unique index on
	// (employee_id, att_date) backs the one-live-record-per-day rule; a
	// uniqueness violation surfaces as ErrAlreadyMarked.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a non-deleted record by id.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDay retrieves the live record for an employee on a day,
	// or nil when none exists.
	GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*Record, error)

	// Update persists mutable fields of an existing record.
	Update(ctx context.Context, record Record) error

	// SoftDelete flags a record deleted; idempotent.
	SoftDelete(ctx context.Context, id string, actor *string) error

	// List retrieves live records matching the query, newest day first.
	List(ctx context.Context, query RecordQuery) ([]Record, int64, error)
}
