package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/timeutil"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/validator"
	"github.com/kerjalog/attendance-backend-go/internal/service/directory"
)

type ServiceImpl struct {
	repo      attendance.Repository
	directory employee.Directory
	resolver  *directory.Resolver
	policy    Policy
	loc       *time.Location
	clock     Clock
}

func NewService(
	repo attendance.Repository,
	dir employee.Directory,
	resolver *directory.Resolver,
	policy Policy,
	loc *time.Location,
	clock Clock,
) attendance.Service {
	return &ServiceImpl{
		repo:      repo,
		directory: dir,
		resolver:  resolver,
		policy:    policy,
		loc:       loc,
		clock:     clock,
	}
}

// actorFromContext pulls the acting user id from JWT claims for audit fields.
// Missing claims are tolerated; audit attribution is best effort.
func actorFromContext(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if sub, ok := claims["user_id"].(string); ok && sub != "" {
		return &sub
	}
	return nil
}

func (s *ServiceImpl) toResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.NewRecordResponse(rec, s.loc)
}

// resolveRequestTime returns the explicit request time, or the clock's now.
func (s *ServiceImpl) resolveRequestTime(raw *string) time.Time {
	if raw != nil && *raw != "" {
		if t, ok := validator.IsValidDateTime(*raw); ok {
			return t.UTC()
		}
	}
	return s.clock.Now().UTC()
}

// parseFlexibleTime accepts an ISO8601 instant or a bare HH:MM combined with
// the record's day in the reference offset.
func (s *ServiceImpl) parseFlexibleTime(raw string, day time.Time) (time.Time, bool) {
	if t, ok := validator.IsValidDateTime(raw); ok {
		return t.UTC(), true
	}
	if t, ok := validator.IsValidClockTime(raw); ok {
		local := day.In(s.loc)
		combined := time.Date(local.Year(), local.Month(), local.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, s.loc)
		return combined.UTC(), true
	}
	return time.Time{}, false
}

// CheckIn implements attendance.Service.
func (s *ServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	at := s.resolveRequestTime(req.Time)
	day := timeutil.DayStart(at, s.loc)

	status := attendance.StatusPresent
	if req.Status != nil && *req.Status != "" {
		status = attendance.Status(*req.Status)
	}
	shift := attendance.ShiftMorning
	if req.Shift != nil && *req.Shift != "" {
		shift = attendance.Shift(*req.Shift)
	}

	existing, err := s.repo.GetByEmployeeAndDay(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyMarked
	}

	actor := actorFromContext(ctx)
	record := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Date:       day,
		Status:     status,
		Shift:      shift,
		Notes:      req.Notes,
		CreatedBy:  actor,
		UpdatedBy:  actor,
	}

	// Non-time statuses (holiday, leave, ...) are terminal records without a
	// check-in block.
	if !status.NonTime() {
		record.CheckIn = &attendance.CheckEvent{
			Time:     at,
			Device:   req.Device,
			SourceIP: req.SourceIP,
		}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return s.toResponse(created), nil
}

// CheckOut implements attendance.Service.
func (s *ServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	at := s.resolveRequestTime(req.Time)
	day := timeutil.DayStart(at, s.loc)

	record, err := s.repo.GetByEmployeeAndDay(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNoCheckIn
	}
	if record.CheckOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !at.After(record.CheckIn.Time) {
		return attendance.RecordResponse{}, attendance.ErrInvalidTimeOrder
	}

	record.CheckOut = &attendance.CheckEvent{
		Time:     at,
		Device:   req.Device,
		SourceIP: req.SourceIP,
	}
	record.WorkHours = timeutil.ElapsedHours(record.CheckIn.Time, at)

	// A manual non-time status override is never recomputed.
	if !record.Status.NonTime() {
		record.Status = s.policy.DeriveStatus(record.WorkHours)
	}
	record.UpdatedBy = actorFromContext(ctx)

	if err := s.repo.Update(ctx, *record); err != nil {
		return attendance.RecordResponse{}, err
	}

	return s.toResponse(*record), nil
}

// Update implements attendance.Service. A date change re-validates the
// one-record-per-day rule against the target day.
func (s *ServiceImpl) Update(ctx context.Context, req attendance.UpdateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if req.Date != nil && *req.Date != "" {
		parsed, _ := validator.IsValidDate(*req.Date)
		newDay := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.loc)
		if !timeutil.SameDay(newDay, record.Date, s.loc) {
			occupied, err := s.repo.GetByEmployeeAndDay(ctx, record.EmployeeID, newDay)
			if err != nil {
				return attendance.RecordResponse{}, fmt.Errorf("failed to check target day: %w", err)
			}
			if occupied != nil {
				return attendance.RecordResponse{}, attendance.ErrAlreadyMarked
			}
			record.Date = newDay
		}
	}

	if req.CheckInTime != nil && *req.CheckInTime != "" {
		t, ok := s.parseFlexibleTime(*req.CheckInTime, record.Date)
		if ok {
			if record.CheckIn == nil {
				record.CheckIn = &attendance.CheckEvent{}
			}
			record.CheckIn.Time = t
		}
	}
	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		t, ok := s.parseFlexibleTime(*req.CheckOutTime, record.Date)
		if ok {
			if record.CheckOut == nil {
				record.CheckOut = &attendance.CheckEvent{}
			}
			record.CheckOut.Time = t
		}
	}

	if req.Status != nil && *req.Status != "" {
		record.Status = attendance.Status(*req.Status)
	}
	if req.Shift != nil && *req.Shift != "" {
		record.Shift = attendance.Shift(*req.Shift)
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if record.CheckIn != nil && record.CheckOut != nil {
		if !record.CheckOut.Time.After(record.CheckIn.Time) {
			return attendance.RecordResponse{}, attendance.ErrInvalidTimeOrder
		}
		record.WorkHours = timeutil.ElapsedHours(record.CheckIn.Time, record.CheckOut.Time)
	}
	record.UpdatedBy = actorFromContext(ctx)

	if err := s.repo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, err
	}

	updated, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to reload updated record: %w", err)
	}

	return s.toResponse(updated), nil
}

// SoftDelete implements attendance.Service.
func (s *ServiceImpl) SoftDelete(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "record id is required"}}
	}
	return s.repo.SoftDelete(ctx, id, actorFromContext(ctx))
}

// List implements attendance.Service.
func (s *ServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	var employeeIDs []string
	if hasDirectoryFilters(filter) {
		ids, err := s.resolver.Resolve(ctx, directory.Filters{
			EmployeeName: filter.EmployeeName,
			DepartmentID: filter.DepartmentID,
			PositionID:   filter.PositionID,
		})
		if err != nil {
			return attendance.ListResponse{}, err
		}
		employeeIDs = ids
	}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		if employeeIDs == nil {
			employeeIDs = []string{*filter.EmployeeID}
		} else {
			employeeIDs = intersect(employeeIDs, []string{*filter.EmployeeID})
		}
	}

	query := attendance.RecordQuery{
		EmployeeIDs: employeeIDs,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}
	if query.Limit == 0 {
		query.Limit = 20
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if filter.Status != nil && *filter.Status != "" {
		st := attendance.Status(*filter.Status)
		query.Status = &st
	}
	if filter.Date != nil && *filter.Date != "" {
		d := s.dayFromString(*filter.Date)
		query.Day = &d
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		d := s.dayFromString(*filter.StartDate)
		query.From = &d
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		d := s.dayFromString(*filter.EndDate)
		query.To = &d
	}

	records, total, err := s.repo.List(ctx, query)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, s.toResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(query.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (query.Page-1)*query.Limit+1, min(query.Page*query.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListResponse{
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Records:    responses,
	}, nil
}

// FilterOptions implements attendance.Service.
func (s *ServiceImpl) FilterOptions(ctx context.Context) (attendance.FilterOptionsResponse, error) {
	departments, err := s.directory.DepartmentsWithRecords(ctx)
	if err != nil {
		return attendance.FilterOptionsResponse{}, fmt.Errorf("failed to list departments: %w", err)
	}
	positions, err := s.directory.PositionsWithRecords(ctx)
	if err != nil {
		return attendance.FilterOptionsResponse{}, fmt.Errorf("failed to list positions: %w", err)
	}

	resp := attendance.FilterOptionsResponse{
		Departments: make([]attendance.FilterOption, 0, len(departments)),
		Positions:   make([]attendance.FilterOption, 0, len(positions)),
	}
	for _, d := range departments {
		resp.Departments = append(resp.Departments, attendance.FilterOption{ID: d.ID, Name: d.Name})
	}
	for _, p := range positions {
		resp.Positions = append(resp.Positions, attendance.FilterOption{ID: p.ID, Name: p.Name})
	}

	return resp, nil
}

func (s *ServiceImpl) dayFromString(value string) time.Time {
	parsed, _ := validator.IsValidDate(value)
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.loc)
}

func hasDirectoryFilters(filter attendance.ListFilter) bool {
	return (filter.EmployeeName != nil && *filter.EmployeeName != "") ||
		(filter.DepartmentID != nil && *filter.DepartmentID != "") ||
		(filter.PositionID != nil && *filter.PositionID != "")
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
