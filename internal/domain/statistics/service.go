package statistics

import (
	"context"
)

// Service computes period attendance statistics with month-over-month deltas.
type Service interface {
	GetStats(ctx context.Context, req StatsRequest) (StatsResponse, error)
}
