package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.att_date,
	a.check_in_time, a.check_in_device, a.check_in_ip,
	a.check_out_time, a.check_out_device, a.check_out_ip,
	a.status, a.shift, a.work_hours, a.notes, a.is_deleted,
	a.created_by, a.updated_by, a.created_at, a.updated_at`

// scanRecord reads one attendance row, reassembling the nullable check-in and
// check-out column groups into CheckEvent values.
func scanRecord(row pgx.Row, withEmployee bool) (attendance.Record, error) {
	var (
		rec                           attendance.Record
		inTime, outTime               *time.Time
		inDevice, inIP, outDev, outIP *string
	)

	dest := []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.Date,
		&inTime, &inDevice, &inIP,
		&outTime, &outDev, &outIP,
		&rec.Status, &rec.Shift, &rec.WorkHours, &rec.Notes, &rec.IsDeleted,
		&rec.CreatedBy, &rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &rec.EmployeeName, &rec.EmployeePosition)
	}

	if err := row.Scan(dest...); err != nil {
		return attendance.Record{}, err
	}

	if inTime != nil {
		rec.CheckIn = &attendance.CheckEvent{Time: *inTime}
		if inDevice != nil {
			rec.CheckIn.Device = *inDevice
		}
		if inIP != nil {
			rec.CheckIn.SourceIP = *inIP
		}
	}
	if outTime != nil {
		rec.CheckOut = &attendance.CheckEvent{Time: *outTime}
		if outDev != nil {
			rec.CheckOut.Device = *outDev
		}
		if outIP != nil {
			rec.CheckOut.SourceIP = *outIP
		}
	}

	return rec, nil
}

func checkEventColumns(ev *attendance.CheckEvent) (*time.Time, *string, *string) {
	if ev == nil {
		return nil, nil, nil
	}
	return &ev.Time, &ev.Device, &ev.SourceIP
}

// Create implements attendance.Repository.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := r.db.Pool

	query := `
		INSERT INTO attendances (
			id, employee_id, att_date,
			check_in_time, check_in_device, check_in_ip,
			check_out_time, check_out_device, check_out_ip,
			status, shift, work_hours, notes, created_by, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING created_at, updated_at
	`

	inTime, inDevice, inIP := checkEventColumns(record.CheckIn)
	outTime, outDevice, outIP := checkEventColumns(record.CheckOut)

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date.Format("2006-01-02"),
		inTime, inDevice, inIP,
		outTime, outDevice, outIP,
		record.Status,
		record.Shift,
		record.WorkHours,
		record.Notes,
		record.CreatedBy,
		record.UpdatedBy,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Lost the check-then-create race; the partial unique index is the
			// authoritative guard.
			return attendance.Record{}, attendance.ErrAlreadyMarked
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := r.db.Pool

	query := `
		SELECT ` + attendanceColumns + `,
			e.first_name || CASE WHEN e.last_name = '' THEN '' ELSE ' ' || e.last_name END AS employee_name,
			p.name AS employee_position
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		LEFT JOIN positions p ON p.id = e.position_id
		WHERE a.id = $1 AND a.is_deleted = FALSE
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by id: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDay implements attendance.Repository.
func (r *attendanceRepository) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*attendance.Record, error) {
	q := r.db.Pool

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.att_date = $2
		  AND a.is_deleted = FALSE
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, day.Format("2006-01-02")), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and day: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.Repository.
func (r *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := r.db.Pool

	query := `
		UPDATE attendances SET
			att_date = $2,
			check_in_time = $3, check_in_device = $4, check_in_ip = $5,
			check_out_time = $6, check_out_device = $7, check_out_ip = $8,
			status = $9, shift = $10, work_hours = $11, notes = $12,
			updated_by = $13, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING id
	`

	inTime, inDevice, inIP := checkEventColumns(record.CheckIn)
	outTime, outDevice, outIP := checkEventColumns(record.CheckOut)

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.ID,
		record.Date.Format("2006-01-02"),
		inTime, inDevice, inIP,
		outTime, outDevice, outIP,
		record.Status,
		record.Shift,
		record.WorkHours,
		record.Notes,
		record.UpdatedBy,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// SoftDelete implements attendance.Repository. Re-deleting an already deleted
// record is a no-op.
func (r *attendanceRepository) SoftDelete(ctx context.Context, id string, actor *string) error {
	q := r.db.Pool

	query := `
		UPDATE attendances
		SET is_deleted = TRUE, updated_by = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, actor)
	if err != nil {
		return fmt.Errorf("failed to soft-delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// List implements attendance.Repository.
func (r *attendanceRepository) List(ctx context.Context, query attendance.RecordQuery) ([]attendance.Record, int64, error) {
	q := r.db.Pool

	baseWhere := "a.is_deleted = FALSE"
	args := []interface{}{}
	argIdx := 1

	if query.Day != nil {
		baseWhere += fmt.Sprintf(" AND a.att_date = $%d", argIdx)
		args = append(args, query.Day.Format("2006-01-02"))
		argIdx++
	}
	if query.From != nil {
		baseWhere += fmt.Sprintf(" AND a.att_date >= $%d", argIdx)
		args = append(args, query.From.Format("2006-01-02"))
		argIdx++
	}
	if query.To != nil {
		baseWhere += fmt.Sprintf(" AND a.att_date <= $%d", argIdx)
		args = append(args, query.To.Format("2006-01-02"))
		argIdx++
	}
	if query.EmployeeIDs != nil {
		baseWhere += fmt.Sprintf(" AND a.employee_id = ANY($%d)", argIdx)
		args = append(args, query.EmployeeIDs)
		argIdx++
	}
	if query.Status != nil {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, string(*query.Status))
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	selectQuery := `
		SELECT ` + attendanceColumns + `,
			e.first_name || CASE WHEN e.last_name = '' THEN '' ELSE ' ' || e.last_name END AS employee_name,
			p.name AS employee_position
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		LEFT JOIN positions p ON p.id = e.position_id
		WHERE ` + baseWhere + `
		ORDER BY a.att_date DESC, a.created_at DESC`

	if query.Limit > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, query.Limit, (page-1)*query.Limit)
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, total, nil
}
