package attendance

import (
	"context"
)

// Service defines the per-record attendance transitions and the query surface.
type Service interface {
	// CheckIn creates the day's record: the time-tracked path when the status
	// needs times, or a terminal non-time record (holiday, leave, ...).
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut completes an open time-tracked record and derives work hours
	// and status.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// CreateBulk validates and replays a batch of items with per-item failure
	// isolation.
	CreateBulk(ctx context.Context, req BulkRequest) (BulkResponse, error)

	// Update edits record fields directly, recomputing work hours when both
	// times end up present.
	Update(ctx context.Context, req UpdateRequest) (RecordResponse, error)

	// SoftDelete flags a record deleted; the day becomes free for a new record.
	SoftDelete(ctx context.Context, id string) error

	// List retrieves records with filters resolved against the directory.
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	// FilterOptions returns the departments and positions referenced by
	// recorded employees.
	FilterOptions(ctx context.Context) (FilterOptionsResponse, error)
}
