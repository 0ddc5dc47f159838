package statistics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
	"github.com/kerjalog/attendance-backend-go/internal/domain/statistics"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/timeutil"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/validator"
)

// Clock supplies the current instant when no explicit range is requested.
type Clock interface {
	Now() time.Time
}

type ServiceImpl struct {
	repo      attendance.Repository
	directory employee.Directory
	loc       *time.Location
	clock     Clock
}

func NewService(repo attendance.Repository, dir employee.Directory, loc *time.Location, clock Clock) statistics.Service {
	return &ServiceImpl{
		repo:      repo,
		directory: dir,
		loc:       loc,
		clock:     clock,
	}
}

// GetStats implements statistics.Service. The active employee set resolves
// first; both period queries and the prior-period head count then run
// concurrently before grouping and comparison.
func (s *ServiceImpl) GetStats(ctx context.Context, req statistics.StatsRequest) (statistics.StatsResponse, error) {
	if err := req.Validate(); err != nil {
		return statistics.StatsResponse{}, err
	}

	start, end := s.resolveRange(req)
	prevStart := timeutil.ShiftMonths(start, -1)
	prevEnd := timeutil.ShiftMonths(end, -1)

	employeeIDs, err := s.directory.ListActiveIDs(ctx, req.DepartmentID)
	if err != nil {
		return statistics.StatsResponse{}, fmt.Errorf("failed to resolve active employees: %w", err)
	}

	// Queries stay unrestricted when no department filter is set; otherwise
	// both periods are scoped to the resolved employee set.
	var restriction []string
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		restriction = employeeIDs
		if restriction == nil {
			restriction = []string{}
		}
	}

	var (
		currentRecords []attendance.Record
		prevRecords    []attendance.Record
		prevEmployees  int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.directory.ActiveCountAsOf(gctx, req.DepartmentID, prevEnd)
		if err != nil {
			return fmt.Errorf("failed to count previous-period employees: %w", err)
		}
		prevEmployees = count
		return nil
	})

	g.Go(func() error {
		records, err := s.queryRange(gctx, start, end, restriction)
		if err != nil {
			return fmt.Errorf("failed to query current period: %w", err)
		}
		currentRecords = records
		return nil
	})

	g.Go(func() error {
		records, err := s.queryRange(gctx, prevStart, prevEnd, restriction)
		if err != nil {
			return fmt.Errorf("failed to query previous period: %w", err)
		}
		prevRecords = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return statistics.StatsResponse{}, err
	}

	byStatus := s.groupByStatus(currentRecords)
	prevByStatus := countByStatus(prevRecords)

	totalHours := 0.0
	for _, rec := range currentRecords {
		totalHours += rec.WorkHours
	}
	totalHours = timeutil.Round2(totalHours)

	prevHours := 0.0
	for _, rec := range prevRecords {
		prevHours += rec.WorkHours
	}
	prevHours = timeutil.Round2(prevHours)

	trends := statistics.TrendDeltas{
		ByStatus:       make(map[string]string, len(attendance.AllStatuses)),
		TotalWorkHours: formatDelta(totalHours, prevHours),
		TotalEmployees: formatDelta(float64(len(employeeIDs)), float64(prevEmployees)),
	}
	for _, status := range attendance.AllStatuses {
		current := 0
		for _, bucket := range byStatus {
			if bucket.Status == string(status) {
				current = bucket.Count
				break
			}
		}
		trends.ByStatus[string(status)] = formatDelta(float64(current), float64(prevByStatus[status]))
	}

	return statistics.StatsResponse{
		StartDate:      timeutil.FormatDay(start, s.loc),
		EndDate:        timeutil.FormatDay(end, s.loc),
		TotalEmployees: int64(len(employeeIDs)),
		TotalRecords:   len(currentRecords),
		TotalWorkHours: totalHours,
		ByStatus:       byStatus,
		Previous: statistics.PreviousPeriod{
			StartDate:      timeutil.FormatDay(prevStart, s.loc),
			EndDate:        timeutil.FormatDay(prevEnd, s.loc),
			TotalEmployees: prevEmployees,
			TotalRecords:   len(prevRecords),
			TotalWorkHours: prevHours,
		},
		Trends: trends,
	}, nil
}

// resolveRange parses the requested dates, defaulting to the current calendar
// month.
func (s *ServiceImpl) resolveRange(req statistics.StatsRequest) (time.Time, time.Time) {
	now := s.clock.Now()
	start, end := timeutil.MonthRange(now, s.loc)

	if req.StartDate != nil && *req.StartDate != "" {
		if parsed, ok := validator.IsValidDate(*req.StartDate); ok {
			start = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.loc)
		}
	}
	if req.EndDate != nil && *req.EndDate != "" {
		if parsed, ok := validator.IsValidDate(*req.EndDate); ok {
			end = timeutil.DayEnd(time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.loc), s.loc)
		}
	}

	return start, end
}

func (s *ServiceImpl) queryRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]attendance.Record, error) {
	query := attendance.RecordQuery{From: &from, To: &to, EmployeeIDs: employeeIDs}
	records, _, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// groupByStatus buckets records per status. Every known status is reported,
// zero buckets included, in the canonical status order.
func (s *ServiceImpl) groupByStatus(records []attendance.Record) []statistics.StatusStats {
	buckets := make(map[attendance.Status]*statistics.StatusStats, len(attendance.AllStatuses))
	uniques := make(map[attendance.Status]map[string]struct{}, len(attendance.AllStatuses))

	for _, status := range attendance.AllStatuses {
		buckets[status] = &statistics.StatusStats{
			Status:  string(status),
			Records: []attendance.RecordResponse{},
		}
		uniques[status] = make(map[string]struct{})
	}

	for _, rec := range records {
		bucket, ok := buckets[rec.Status]
		if !ok {
			continue
		}
		bucket.Count++
		bucket.TotalWorkHours += rec.WorkHours
		uniques[rec.Status][rec.EmployeeID] = struct{}{}
		bucket.Records = append(bucket.Records, attendance.NewRecordResponse(rec, s.loc))
	}

	result := make([]statistics.StatusStats, 0, len(attendance.AllStatuses))
	for _, status := range attendance.AllStatuses {
		bucket := buckets[status]
		bucket.UniqueEmployees = len(uniques[status])
		bucket.TotalWorkHours = timeutil.Round2(bucket.TotalWorkHours)
		sort.SliceStable(bucket.Records, func(i, j int) bool {
			return bucket.Records[i].Date > bucket.Records[j].Date
		})
		result = append(result, *bucket)
	}

	return result
}

func countByStatus(records []attendance.Record) map[attendance.Status]int {
	counts := make(map[attendance.Status]int, len(attendance.AllStatuses))
	for _, rec := range records {
		counts[rec.Status]++
	}
	return counts
}

// formatDelta renders the signed month-over-month percentage change with one
// decimal place. A previous value of zero compares as +100% when the current
// value is non-zero and 0% when both are zero.
func formatDelta(current, previous float64) string {
	if previous == 0 {
		if current > 0 {
			return "+100.0%"
		}
		return "0.0%"
	}
	return fmt.Sprintf("%+.1f%%", (current-previous)/previous*100)
}
