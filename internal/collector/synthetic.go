package collector

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat"

	"SalesEcho/internal/model"
)

const (
	baseSessions   = 1400.0
	avgOrderValue  = 87.0
	conversionRate = 0.034
)

// spike multiplies sessions on days [From, To) and annotates the first day.
type spike struct {
	From, To int
	Factor   float64
	Label    string
}

var syntheticSpikes = []spike{
	{10, 13, 3.2, "Email campaign"},
	{18, 23, 1.9, "Paid surge"},
	{25, 26, 4.5, "Black Friday"},
}

// SyntheticFetcher returns a seeded, reproducible store month for demos and tests.
type SyntheticFetcher struct {
	Seed  uint64
	Start time.Time
}

func (f *SyntheticFetcher) Name() string { return "synthetic" }

func (f *SyntheticFetcher) FetchDaily(_ context.Context, days int) (*model.DailySeries, error) {
	series := GenerateSeries(f.Seed, days)
	series.Start = f.Start
	return series, nil
}

// GenerateSeries builds weekly-seasonal, trending traffic with campaign spikes,
// and revenue that follows traffic over the next two days.
func GenerateSeries(seed uint64, days int) *model.DailySeries {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))

	sessions := make([]int, days)
	for d := range sessions {
		weekly := 1 + 0.3*math.Sin(2*math.Pi*float64(d)/7+1.0)
		trend := 1 + float64(d)*0.015
		noise := math.Exp(rng.NormFloat64() * 0.10)
		sessions[d] = int(baseSessions * weekly * trend * noise)
	}

	var events []model.Event
	for _, s := range syntheticSpikes {
		if s.From >= days {
			continue
		}
		for d := s.From; d < s.To && d < days; d++ {
			sessions[d] = int(float64(sessions[d]) * s.Factor)
		}
		events = append(events, model.Event{Day: s.From, Label: s.Label})
	}

	revenue := make([]float64, days)
	for d := range revenue {
		carried := 0.30*float64(sessions[d]) +
			0.50*float64(sessions[max(0, d-1)]) +
			0.20*float64(sessions[max(0, d-2)])
		revenue[d] = carried * avgOrderValue * conversionRate
	}
	if days > 1 {
		_, std := stat.MeanStdDev(revenue, nil)
		for d := range revenue {
			revenue[d] = math.Max(0, revenue[d]+rng.NormFloat64()*std*0.05)
		}
	}

	return &model.DailySeries{
		Sessions:  sessions,
		Revenue:   revenue,
		Events:    events,
		Source:    "synthetic",
		FetchedAt: time.Now(),
	}
}
