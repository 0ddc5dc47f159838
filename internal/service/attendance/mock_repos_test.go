package attendance

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/timeutil"
)

// ---- in-memory attendance repository ----

type memRepo struct {
	mu      sync.Mutex
	records map[string]attendance.Record
	loc     *time.Location
}

func newMemRepo(loc *time.Location) *memRepo {
	return &memRepo{records: make(map[string]attendance.Record), loc: loc}
}

func (r *memRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.EmployeeID == record.EmployeeID &&
			!existing.IsDeleted &&
			timeutil.SameDay(existing.Date, record.Date, r.loc) {
			return attendance.Record{}, attendance.ErrAlreadyMarked
		}
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = record
	return record, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.IsDeleted {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (r *memRepo) GetByEmployeeAndDay(_ context.Context, employeeID string, day time.Time) (*attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.EmployeeID == employeeID &&
			!record.IsDeleted &&
			timeutil.SameDay(record.Date, day, r.loc) {
			found := record
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memRepo) Update(_ context.Context, record attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ID]
	if !ok || existing.IsDeleted {
		return attendance.ErrRecordNotFound
	}
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now().UTC()
	r.records[record.ID] = record
	return nil
}

func (r *memRepo) SoftDelete(_ context.Context, id string, actor *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	record.IsDeleted = true
	record.UpdatedBy = actor
	r.records[id] = record
	return nil
}

func (r *memRepo) List(_ context.Context, query attendance.RecordQuery) ([]attendance.Record, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var allowed map[string]struct{}
	if query.EmployeeIDs != nil {
		allowed = make(map[string]struct{}, len(query.EmployeeIDs))
		for _, id := range query.EmployeeIDs {
			allowed[id] = struct{}{}
		}
	}

	var matched []attendance.Record
	for _, record := range r.records {
		if record.IsDeleted {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[record.EmployeeID]; !ok {
				continue
			}
		}
		if query.Status != nil && record.Status != *query.Status {
			continue
		}
		if query.Day != nil && !timeutil.SameDay(record.Date, *query.Day, r.loc) {
			continue
		}
		if query.From != nil && record.Date.Before(*query.From) {
			continue
		}
		if query.To != nil && record.Date.After(*query.To) {
			continue
		}
		matched = append(matched, record)
	}

	return matched, int64(len(matched)), nil
}

// ---- in-memory employee directory ----

type memDirectory struct {
	employees []employee.Employee
}

func (d *memDirectory) GetByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var result []employee.Employee
	for _, emp := range d.employees {
		if _, ok := want[emp.ID]; ok {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (d *memDirectory) ListActiveIDs(_ context.Context, departmentID *string) ([]string, error) {
	var ids []string
	for _, emp := range d.employees {
		if !emp.IsActive {
			continue
		}
		if departmentID != nil && *departmentID != "" {
			if emp.DepartmentID == nil || *emp.DepartmentID != *departmentID {
				continue
			}
		}
		ids = append(ids, emp.ID)
	}
	return ids, nil
}

func (d *memDirectory) ActiveCountAsOf(_ context.Context, departmentID *string, asOf time.Time) (int64, error) {
	var count int64
	for _, emp := range d.employees {
		if !emp.IsActive || emp.CreatedAt.After(asOf) {
			continue
		}
		if departmentID != nil && *departmentID != "" {
			if emp.DepartmentID == nil || *emp.DepartmentID != *departmentID {
				continue
			}
		}
		count++
	}
	return count, nil
}

func (d *memDirectory) SearchIDsByName(_ context.Context, text string) ([]string, error) {
	var ids []string
	for _, emp := range d.employees {
		if containsFold(emp.FirstName, text) || containsFold(emp.LastName, text) {
			ids = append(ids, emp.ID)
		}
	}
	return ids, nil
}

func (d *memDirectory) ListIDsByDepartment(_ context.Context, departmentID string) ([]string, error) {
	var ids []string
	for _, emp := range d.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == departmentID {
			ids = append(ids, emp.ID)
		}
	}
	return ids, nil
}

func (d *memDirectory) ListIDsByPosition(_ context.Context, positionID string) ([]string, error) {
	var ids []string
	for _, emp := range d.employees {
		if emp.PositionID != nil && *emp.PositionID == positionID {
			ids = append(ids, emp.ID)
		}
	}
	return ids, nil
}

func (d *memDirectory) DepartmentsWithRecords(_ context.Context) ([]employee.Department, error) {
	return nil, nil
}

func (d *memDirectory) PositionsWithRecords(_ context.Context) ([]employee.Position, error) {
	return nil, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ---- fixed clock ----

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}
