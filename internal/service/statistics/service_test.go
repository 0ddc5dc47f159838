package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/domain/employee"
	"github.com/kerjalog/attendance-backend-go/internal/domain/statistics"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/timeutil"
)

type stubRepo struct {
	records []attendance.Record
}

func (r *stubRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.records = append(r.records, record)
	return record, nil
}

func (r *stubRepo) GetByID(_ context.Context, _ string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (r *stubRepo) GetByEmployeeAndDay(_ context.Context, _ string, _ time.Time) (*attendance.Record, error) {
	return nil, nil
}

func (r *stubRepo) Update(_ context.Context, _ attendance.Record) error { return nil }

func (r *stubRepo) SoftDelete(_ context.Context, _ string, _ *string) error { return nil }

func (r *stubRepo) List(_ context.Context, query attendance.RecordQuery) ([]attendance.Record, int64, error) {
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

type stubDirectory struct {
	activeIDs []string
	prevCount int64
}

func (d *stubDirectory) GetByIDs(_ context.Context, _ []string) ([]employee.Employee, error) {
	return nil, nil
}

func (d *stubDirectory) ListActiveIDs(_ context.Context, _ *string) ([]string, error) {
	return d.activeIDs, nil
}

func (d *stubDirectory) ActiveCountAsOf(_ context.Context, _ *string, _ time.Time) (int64, error) {
	return d.prevCount, nil
}

func (d *stubDirectory) SearchIDsByName(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (d *stubDirectory) ListIDsByDepartment(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (d *stubDirectory) ListIDsByPosition(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (d *stubDirectory) DepartmentsWithRecords(_ context.Context) ([]employee.Department, error) {
	return nil, nil
}

func (d *stubDirectory) PositionsWithRecords(_ context.Context) ([]employee.Position, error) {
	return nil, nil
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

func strPtr(s string) *string { return &s }

func presentRecord(employeeID string, day time.Time, hours float64) attendance.Record {
	return attendance.Record{
		ID:         employeeID + day.Format("20060102"),
		EmployeeID: employeeID,
		Date:       day,
		Status:     attendance.StatusPresent,
		WorkHours:  hours,
	}
}

func makePresentRecords(loc *time.Location, year int, month time.Month, count int) []attendance.Record {
	records := make([]attendance.Record, 0, count)
	for i := 0; i < count; i++ {
		day := time.Date(year, month, 1+i%27, 0, 0, 0, 0, loc)
		records = append(records, presentRecord("e1", day, 8))
	}
	return records
}

func TestGetStats_MonthOverMonthDelta(t *testing.T) {
	loc := timeutil.Location(timeutil.DefaultUTCOffsetMinutes)

	repo := &stubRepo{}
	repo.records = append(repo.records, makePresentRecords(loc, 2024, time.March, 20)...)
	repo.records = append(repo.records, makePresentRecords(loc, 2024, time.February, 16)...)

	dir := &stubDirectory{activeIDs: []string{"e1", "e2"}, prevCount: 2}
	clock := fixedClock{at: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)}
	svc := NewService(repo, dir, loc, clock)

	resp, err := svc.GetStats(context.Background(), statistics.StatsRequest{
		StartDate: strPtr("2024-03-01"),
		EndDate:   strPtr("2024-03-31"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", resp.StartDate)
	assert.Equal(t, "2024-03-31", resp.EndDate)
	assert.Equal(t, "2024-02-01", resp.Previous.StartDate)
	assert.Equal(t, 20, resp.TotalRecords)
	assert.Equal(t, 16, resp.Previous.TotalRecords)
	assert.Equal(t, "+25.0%", resp.Trends.ByStatus["present"])
}

func TestGetStats_ZeroPreviousIsPlusHundred(t *testing.T) {
	loc := timeutil.Location(timeutil.DefaultUTCOffsetMinutes)

	repo := &stubRepo{records: makePresentRecords(loc, 2024, time.March, 5)}
	dir := &stubDirectory{activeIDs: []string{"e1"}, prevCount: 1}
	clock := fixedClock{at: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)}
	svc := NewService(repo, dir, loc, clock)

	resp, err := svc.GetStats(context.Background(), statistics.StatsRequest{})
	require.NoError(t, err)

	assert.Equal(t, "+100.0%", resp.Trends.ByStatus["present"])
	assert.Equal(t, "0.0%", resp.Trends.ByStatus["late"])
}

func TestGetStats_StatusGoneIsMinusHundred(t *testing.T) {
	loc := timeutil.Location(timeutil.DefaultUTCOffsetMinutes)

	repo := &stubRepo{records: makePresentRecords(loc, 2024, time.February, 4)}
	dir := &stubDirectory{activeIDs: []string{"e1"}, prevCount: 1}
	clock := fixedClock{at: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)}
	svc := NewService(repo, dir, loc, clock)

	resp, err := svc.GetStats(context.Background(), statistics.StatsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.TotalRecords)
	assert.Equal(t, "-100.0%", resp.Trends.ByStatus["present"])
}

func TestGetStats_ZeroStatusesStillReported(t *testing.T) {
	loc := timeutil.Location(timeutil.DefaultUTCOffsetMinutes)

	repo := &stubRepo{records: makePresentRecords(loc, 2024, time.March, 3)}
	dir := &stubDirectory{activeIDs: []string{"e1"}, prevCount: 1}
	clock := fixedClock{at: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)}
	svc := NewService(repo, dir, loc, clock)

	resp, err := svc.GetStats(context.Background(), statistics.StatsRequest{})
	require.NoError(t, err)

	require.Len(t, resp.ByStatus, len(attendance.AllStatuses))
	byName := make(map[string]statistics.StatusStats, len(resp.ByStatus))
	for _, bucket := range resp.ByStatus {
		byName[bucket.Status] = bucket
	}
	assert.Equal(t, 3, byName["present"].Count)
	assert.Equal(t, 1, byName["present"].UniqueEmployees)
	assert.Equal(t, 24.0, byName["present"].TotalWorkHours)
	assert.Equal(t, 0, byName["holiday"].Count)
	assert.NotNil(t, byName["holiday"].Records)
}

func TestGetStats_WorkHoursTotals(t *testing.T) {
	loc := timeutil.Location(timeutil.DefaultUTCOffsetMinutes)

	repo := &stubRepo{records: []attendance.Record{
		presentRecord("e1", time.Date(2024, 3, 1, 0, 0, 0, 0, loc), 8.5),
		presentRecord("e2", time.Date(2024, 3, 1, 0, 0, 0, 0, loc), 7.25),
	}}
	dir := &stubDirectory{activeIDs: []string{"e1", "e2"}, prevCount: 2}
	clock := fixedClock{at: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)}
	svc := NewService(repo, dir, loc, clock)

	resp, err := svc.GetStats(context.Background(), statistics.StatsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 15.75, resp.TotalWorkHours)
	assert.Equal(t, int64(2), resp.TotalEmployees)
}
