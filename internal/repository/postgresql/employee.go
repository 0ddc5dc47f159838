package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/database"
)

// employeeDirectory is the read-only view of the external employee system.
// No write methods exist; employee lifecycle belongs to another service.
type employeeDirectory struct {
	db *database.DB
}

func NewEmployeeDirectory(db *database.DB) employee.Directory {
	return &employeeDirectory{db: db}
}

// GetByIDs implements employee.Directory.
func (r *employeeDirectory) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	q := r.db.Pool

	query := `
		SELECT e.id, e.first_name, e.last_name, e.department_id, e.position_id,
		       e.is_active, e.created_at, e.updated_at,
		       d.name AS department_name, p.name AS position_name
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		LEFT JOIN positions p ON p.id = e.position_id
		WHERE e.id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by ids: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.FirstName, &emp.LastName, &emp.DepartmentID, &emp.PositionID,
			&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
			&emp.DepartmentName, &emp.PositionName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

// ListActiveIDs implements employee.Directory.
func (r *employeeDirectory) ListActiveIDs(ctx context.Context, departmentID *string) ([]string, error) {
	q := r.db.Pool

	query := `
		SELECT id FROM employees
		WHERE is_active = TRUE
		  AND ($1::uuid IS NULL OR department_id = $1)
	`

	return r.scanIDs(ctx, q, query, departmentID)
}

// ActiveCountAsOf implements employee.Directory.
func (r *employeeDirectory) ActiveCountAsOf(ctx context.Context, departmentID *string, asOf time.Time) (int64, error) {
	q := r.db.Pool

	query := `
		SELECT COUNT(*) FROM employees
		WHERE is_active = TRUE
		  AND created_at <= $2
		  AND ($1::uuid IS NULL OR department_id = $1)
	`

	var count int64
	if err := q.QueryRow(ctx, query, departmentID, asOf).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}

// SearchIDsByName implements employee.Directory.
func (r *employeeDirectory) SearchIDsByName(ctx context.Context, text string) ([]string, error) {
	q := r.db.Pool

	query := `
		SELECT id FROM employees
		WHERE first_name ILIKE $1 OR last_name ILIKE $1
	`

	return r.scanIDs(ctx, q, query, "%"+text+"%")
}

// ListIDsByDepartment implements employee.Directory.
func (r *employeeDirectory) ListIDsByDepartment(ctx context.Context, departmentID string) ([]string, error) {
	q := r.db.Pool

	return r.scanIDs(ctx, q, `SELECT id FROM employees WHERE department_id = $1`, departmentID)
}

// ListIDsByPosition implements employee.Directory.
func (r *employeeDirectory) ListIDsByPosition(ctx context.Context, positionID string) ([]string, error) {
	q := r.db.Pool

	return r.scanIDs(ctx, q, `SELECT id FROM employees WHERE position_id = $1`, positionID)
}

// DepartmentsWithRecords implements employee.Directory.
func (r *employeeDirectory) DepartmentsWithRecords(ctx context.Context) ([]employee.Department, error) {
	q := r.db.Pool

	query := `
		SELECT DISTINCT d.id, d.name
		FROM departments d
		JOIN employees e ON e.department_id = d.id
		JOIN attendances a ON a.employee_id = e.id AND a.is_deleted = FALSE
		ORDER BY d.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments with records: %w", err)
	}
	defer rows.Close()

	var departments []employee.Department
	for rows.Next() {
		var d employee.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read departments: %w", err)
	}

	return departments, nil
}

// PositionsWithRecords implements employee.Directory.
func (r *employeeDirectory) PositionsWithRecords(ctx context.Context) ([]employee.Position, error) {
	q := r.db.Pool

	query := `
		SELECT DISTINCT p.id, p.name
		FROM positions p
		JOIN employees e ON e.position_id = p.id
		JOIN attendances a ON a.employee_id = e.id AND a.is_deleted = FALSE
		ORDER BY p.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions with records: %w", err)
	}
	defer rows.Close()

	var positions []employee.Position
	for rows.Next() {
		var p employee.Position
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	return positions, nil
}

func (r *employeeDirectory) scanIDs(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]string, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee ids: %w", err)
	}

	return ids, nil
}
