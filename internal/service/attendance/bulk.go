package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/timeutil"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/validator"
)

// CreateBulk implements attendance.Service. Two batch-fatal gates run before
// any write: structural validation of every item, then a single directory
// lookup confirming every referenced employee exists and is active. Past the
// gates each item succeeds or fails on its own.
func (s *ServiceImpl) CreateBulk(ctx context.Context, req attendance.BulkRequest) (attendance.BulkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkResponse{}, err
	}

	if err := s.checkEmployeeGate(ctx, req.Items); err != nil {
		return attendance.BulkResponse{}, err
	}

	resp := attendance.BulkResponse{
		Results: []attendance.RecordResponse{},
		Errors:  []attendance.BulkItemError{},
	}
	actor := actorFromContext(ctx)

	for _, item := range req.Items {
		result, err := s.processBulkItem(ctx, item, req.SourceIP, actor)
		if err != nil {
			resp.Errors = append(resp.Errors, attendance.BulkItemError{
				EmployeeID: item.EmployeeID,
				Date:       item.Date,
				Message:    err.Error(),
			})
			continue
		}
		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

// checkEmployeeGate rejects the whole batch when any referenced employee is
// missing or inactive.
func (s *ServiceImpl) checkEmployeeGate(ctx context.Context, items []attendance.BulkItem) error {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.EmployeeID]; ok {
			continue
		}
		seen[item.EmployeeID] = struct{}{}
		ids = append(ids, item.EmployeeID)
	}

	employees, err := s.directory.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to look up employees: %w", err)
	}

	found := make(map[string]bool, len(employees))
	for _, emp := range employees {
		found[emp.ID] = emp.IsActive
	}

	for _, id := range ids {
		active, ok := found[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		if !active {
			return employee.ErrEmployeeInactive
		}
	}

	return nil
}

func (s *ServiceImpl) processBulkItem(ctx context.Context, item attendance.BulkItem, sourceIP string, actor *string) (attendance.RecordResponse, error) {
	parsed, _ := validator.IsValidDate(item.Date)
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.loc)

	existing, err := s.repo.GetByEmployeeAndDay(ctx, item.EmployeeID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	if existing != nil {
		return s.applyBulkToExisting(ctx, item, existing, sourceIP, actor)
	}

	if item.CheckIn == nil && item.CheckOut != nil {
		return attendance.RecordResponse{}, fmt.Errorf("cannot checkout without an existing check-in")
	}

	return s.createFromBulk(ctx, item, day, sourceIP, actor)
}

// applyBulkToExisting handles an item whose day already has a live record.
// Only a completing check-out is accepted; everything else is a duplicate.
func (s *ServiceImpl) applyBulkToExisting(ctx context.Context, item attendance.BulkItem, existing *attendance.Record, sourceIP string, actor *string) (attendance.RecordResponse, error) {
	if item.CheckIn != nil {
		return attendance.RecordResponse{}, fmt.Errorf("already marked for this date")
	}

	if item.CheckOut != nil {
		if existing.CheckIn == nil {
			return attendance.RecordResponse{}, fmt.Errorf("cannot checkout without check-in")
		}
		if existing.CheckOut != nil {
			return attendance.RecordResponse{}, fmt.Errorf("checkout already recorded")
		}

		at, ok := s.parseFlexibleTime(*item.CheckOut, existing.Date)
		if !ok {
			return attendance.RecordResponse{}, fmt.Errorf("invalid check_out time")
		}
		if !at.After(existing.CheckIn.Time) {
			return attendance.RecordResponse{}, attendance.ErrInvalidTimeOrder
		}

		existing.CheckOut = &attendance.CheckEvent{
			Time:     at,
			Device:   derefOr(item.Device, ""),
			SourceIP: sourceIP,
		}
		existing.WorkHours = timeutil.ElapsedHours(existing.CheckIn.Time, at)
		if !existing.Status.NonTime() {
			existing.Status = s.policy.DeriveStatus(existing.WorkHours)
		}
		existing.UpdatedBy = actor

		if err := s.repo.Update(ctx, *existing); err != nil {
			return attendance.RecordResponse{}, err
		}
		return s.toResponse(*existing), nil
	}

	if item.Status != nil && attendance.Status(*item.Status).NonTime() {
		return attendance.RecordResponse{}, fmt.Errorf("already marked for this date")
	}

	return attendance.RecordResponse{}, fmt.Errorf("invalid attendance payload")
}

func (s *ServiceImpl) createFromBulk(ctx context.Context, item attendance.BulkItem, day time.Time, sourceIP string, actor *string) (attendance.RecordResponse, error) {
	status := attendance.StatusPresent
	if item.Status != nil && *item.Status != "" {
		status = attendance.Status(*item.Status)
	}
	shift := attendance.ShiftMorning
	if item.Shift != nil && *item.Shift != "" {
		shift = attendance.Shift(*item.Shift)
	}

	record := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: item.EmployeeID,
		Date:       day,
		Status:     status,
		Shift:      shift,
		Notes:      item.Notes,
		CreatedBy:  actor,
		UpdatedBy:  actor,
	}

	if !status.NonTime() {
		if item.CheckIn == nil {
			return attendance.RecordResponse{}, fmt.Errorf("invalid attendance payload")
		}
		at, ok := s.parseFlexibleTime(*item.CheckIn, day)
		if !ok {
			return attendance.RecordResponse{}, fmt.Errorf("invalid check_in time")
		}
		record.CheckIn = &attendance.CheckEvent{
			Time:     at,
			Device:   derefOr(item.Device, ""),
			SourceIP: sourceIP,
		}

		if item.CheckOut != nil {
			out, ok := s.parseFlexibleTime(*item.CheckOut, day)
			if !ok {
				return attendance.RecordResponse{}, fmt.Errorf("invalid check_out time")
			}
			if !out.After(at) {
				return attendance.RecordResponse{}, attendance.ErrInvalidTimeOrder
			}
			record.CheckOut = &attendance.CheckEvent{
				Time:     out,
				Device:   derefOr(item.Device, ""),
				SourceIP: sourceIP,
			}
			record.WorkHours = timeutil.ElapsedHours(at, out)
			record.Status = s.policy.DeriveStatus(record.WorkHours)
		}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return s.toResponse(created), nil
}

func derefOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
