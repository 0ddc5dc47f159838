package directory

import (
	"context"
	"fmt"

	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
)

// Filters are the directory-backed attendance list filters. Each non-nil
// field resolves to an employee id set; the sets intersect.
type Filters struct {
	EmployeeName *string
	DepartmentID *string
	PositionID   *string
}

// Resolver turns directory filters into employee id sets ahead of the
// attendance query. With strictEmpty enabled, a filter that matches nobody
// fails loudly instead of returning an empty page.
type Resolver struct {
	directory   employee.Directory
	strictEmpty bool
}

func NewResolver(directory employee.Directory, strictEmpty bool) *Resolver {
	return &Resolver{directory: directory, strictEmpty: strictEmpty}
}

// Resolve returns the employee ids matching every given filter. The result is
// never nil when at least one filter is set; an empty slice means the
// combination matched nobody.
func (r *Resolver) Resolve(ctx context.Context, filters Filters) ([]string, error) {
	var (
		ids     []string
		applied []string
		started bool
	)

	narrow := func(next []string) {
		if !started {
			ids = next
			started = true
			return
		}
		ids = intersect(ids, next)
	}

	if filters.EmployeeName != nil && *filters.EmployeeName != "" {
		matched, err := r.directory.SearchIDsByName(ctx, *filters.EmployeeName)
		if err != nil {
			return nil, fmt.Errorf("failed to search employees by name: %w", err)
		}
		narrow(matched)
		applied = append(applied, fmt.Sprintf("employee_name=%s", *filters.EmployeeName))
	}

	if filters.DepartmentID != nil && *filters.DepartmentID != "" {
		matched, err := r.directory.ListIDsByDepartment(ctx, *filters.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees by department: %w", err)
		}
		narrow(matched)
		applied = append(applied, fmt.Sprintf("department_id=%s", *filters.DepartmentID))
	}

	if filters.PositionID != nil && *filters.PositionID != "" {
		matched, err := r.directory.ListIDsByPosition(ctx, *filters.PositionID)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees by position: %w", err)
		}
		narrow(matched)
		applied = append(applied, fmt.Sprintf("position_id=%s", *filters.PositionID))
	}

	if !started {
		return nil, nil
	}

	if len(ids) == 0 && r.strictEmpty {
		return nil, &employee.NoMatchError{Filters: applied}
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	result := make([]string, 0, len(b))
	for _, id := range b {
		if _, ok := set[id]; ok {
			result = append(result, id)
		}
	}
	return result
}
