package collector

import (
	"context"

	"SalesEcho/internal/model"
)

// Fetcher defines the interface for fetching daily traffic and revenue.
type Fetcher interface {
	FetchDaily(ctx context.Context, days int) (*model.DailySeries, error)
	Name() string
}
