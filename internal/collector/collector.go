package collector

import (
	"context"
	"fmt"
	"log"
	"math"

	"SalesEcho/internal/calculator"
	"SalesEcho/internal/model"
)

// Collector orchestrates data fetching, sanitizing and summary computation.
type Collector struct {
	Fetcher Fetcher
	Days    int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, days int) *Collector {
	return &Collector{Fetcher: fetcher, Days: days}
}

// Collect fetches the daily series, repairs values the engine cannot accept,
// and computes the report summary.
func (c *Collector) Collect(ctx context.Context) (*model.DailySeries, *model.MetricsSummary, error) {
	series, err := c.Fetcher.FetchDaily(ctx, c.Days)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch daily series: %w", err)
	}
	if len(series.Sessions) != len(series.Revenue) {
		return nil, nil, fmt.Errorf("fetch daily series: %d session days vs %d revenue days",
			len(series.Sessions), len(series.Revenue))
	}
	if len(series.Sessions) < 2 {
		return nil, nil, fmt.Errorf("fetch daily series: need at least 2 days, got %d", len(series.Sessions))
	}
	if len(series.Sessions) < c.Days {
		log.Printf("[WARN] %s returned %d of %d requested days", c.Fetcher.Name(), len(series.Sessions), c.Days)
	}

	sanitize(series)

	sum, err := calculator.Summarize(series)
	if err != nil {
		return nil, nil, err
	}
	return series, sum, nil
}

func sanitize(series *model.DailySeries) {
	for i, s := range series.Sessions {
		if s < 0 {
			log.Printf("[WARN] day %d: negative sessions %d, using 0", i, s)
			series.Sessions[i] = 0
		}
	}
	for i, r := range series.Revenue {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			log.Printf("[WARN] day %d: invalid revenue %v, using 0", i, r)
			series.Revenue[i] = 0
		}
	}
}
