package directory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
)

type fakeDirectory struct {
	employees []employee.Employee
}

func (d *fakeDirectory) GetByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	return nil, nil
}

func (d *fakeDirectory) ListActiveIDs(_ context.Context, _ *string) ([]string, error) {
	return nil, nil
}

func (d *fakeDirectory) ActiveCountAsOf(_ context.Context, _ *string, _ time.Time) (int64, error) {
	return 0, nil
}

func (d *fakeDirectory) SearchIDsByName(_ context.Context, text string) ([]string, error) {
	var ids []string
	for _, emp := range d.employees {
		name := strings.ToLower(emp.FirstName + " " + emp.LastName)
		if strings.Contains(name, strings.ToLower(text)) {
			ids = append(ids, emp.ID)
		}
	}
	return ids, nil
}

func (d *fakeDirectory) ListIDsByDepartment(_ context.Context, departmentID string) ([]string, error) {
	var ids []string
	for _, emp := range d.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == departmentID {
			ids = append(ids, emp.ID)
		}
	}
	return ids, nil
}

func (d *fakeDirectory) ListIDsByPosition(_ context.Context, positionID string) ([]string, error) {
	var ids []string
	for _, emp := range d.employees {
		if emp.PositionID != nil && *emp.PositionID == positionID {
			ids = append(ids, emp.ID)
		}
	}
	return ids, nil
}

func (d *fakeDirectory) DepartmentsWithRecords(_ context.Context) ([]employee.Department, error) {
	return nil, nil
}

func (d *fakeDirectory) PositionsWithRecords(_ context.Context) ([]employee.Position, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

func testDirectory() *fakeDirectory {
	return &fakeDirectory{employees: []employee.Employee{
		{ID: "e1", FirstName: "Asha", LastName: "Verma", DepartmentID: strPtr("d1"), PositionID: strPtr("p1")},
		{ID: "e2", FirstName: "Rohan", LastName: "Iyer", DepartmentID: strPtr("d1"), PositionID: strPtr("p2")},
		{ID: "e3", FirstName: "Asha", LastName: "Nair", DepartmentID: strPtr("d2"), PositionID: strPtr("p1")},
	}}
}

func TestResolve_NoFilters(t *testing.T) {
	resolver := NewResolver(testDirectory(), true)

	ids, err := resolver.Resolve(context.Background(), Filters{})
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestResolve_SingleFilter(t *testing.T) {
	resolver := NewResolver(testDirectory(), true)

	ids, err := resolver.Resolve(context.Background(), Filters{DepartmentID: strPtr("d1")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"e1", "e2"}, ids)
}

func TestResolve_IntersectsFilters(t *testing.T) {
	resolver := NewResolver(testDirectory(), true)

	ids, err := resolver.Resolve(context.Background(), Filters{
		EmployeeName: strPtr("asha"),
		DepartmentID: strPtr("d1"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, ids)
}

func TestResolve_EmptyIntersectionFailsLoudly(t *testing.T) {
	resolver := NewResolver(testDirectory(), true)

	_, err := resolver.Resolve(context.Background(), Filters{
		EmployeeName: strPtr("rohan"),
		DepartmentID: strPtr("d2"),
	})

	var noMatch *employee.NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Contains(t, noMatch.Filters, "employee_name=rohan")
	assert.Contains(t, noMatch.Filters, "department_id=d2")
}

func TestResolve_EmptyIntersectionReturnsEmptyWhenLenient(t *testing.T) {
	resolver := NewResolver(testDirectory(), false)

	ids, err := resolver.Resolve(context.Background(), Filters{
		EmployeeName: strPtr("rohan"),
		DepartmentID: strPtr("d2"),
	})
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestResolve_ThreeWayIntersection(t *testing.T) {
	resolver := NewResolver(testDirectory(), true)

	ids, err := resolver.Resolve(context.Background(), Filters{
		EmployeeName: strPtr("asha"),
		DepartmentID: strPtr("d2"),
		PositionID:   strPtr("p1"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"e3"}, ids)
}
