package employee

import (
	"context"
	"time"
)

// Directory defines the narrow read-only interface this core consumes from
// the external employee system. Batch variants back the bulk-ingestion gate
// and the statistics employee-set resolution.
type Directory interface {
	// GetByIDs fetches employees for a distinct id set in one call. Missing
	// ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)

	// ListActiveIDs returns ids of active employees, optionally restricted to
	// a department.
	ListActiveIDs(ctx context.Context, departmentID *string) ([]string, error)

	// ActiveCountAsOf counts employees active and already present in the
	// directory at the given instant; used for prior-period trend baselines.
	ActiveCountAsOf(ctx context.Context, departmentID *string, asOf time.Time) (int64, error)

	// SearchIDsByName matches a case-insensitive substring against first and
	// last names.
	SearchIDsByName(ctx context.Context, text string) ([]string, error)

	// ListIDsByDepartment returns all employee ids in a department.
	ListIDsByDepartment(ctx context.Context, departmentID string) ([]string, error)

	// ListIDsByPosition returns all employee ids holding a position.
	ListIDsByPosition(ctx context.Context, positionID string) ([]string, error)

	// DepartmentsWithRecords lists departments referenced by employees that
	// have attendance records, de-duplicated and sorted by name.
	DepartmentsWithRecords(ctx context.Context) ([]Department, error)

	// PositionsWithRecords lists positions referenced by employees that have
	// attendance records, de-duplicated and sorted by name.
	PositionsWithRecords(ctx context.Context) ([]Position, error)
}
