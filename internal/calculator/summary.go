package calculator

import (
	"fmt"

	"SalesEcho/internal/model"
)

// RecentWindow is the trailing window used for the recent conversion ratio.
const RecentWindow = 7

// Summarize computes report statistics for a series.
func Summarize(series *model.DailySeries) (*model.MetricsSummary, error) {
	sessions := ToFloats(series.Sessions)
	revenue := series.Revenue
	n := len(sessions)
	if n == 0 || n != len(revenue) {
		return nil, fmt.Errorf("summarize: %d sessions vs %d revenue days", n, len(revenue))
	}

	sum := &model.MetricsSummary{Days: n}
	for i := range sessions {
		sum.TotalSessions += series.Sessions[i]
		sum.TotalRevenue += revenue[i]
	}

	var err error
	if sum.MeanSessions, err = CalculateMean(sessions); err != nil {
		return nil, fmt.Errorf("mean sessions: %w", err)
	}
	if sum.MeanRevenue, err = CalculateMean(revenue); err != nil {
		return nil, fmt.Errorf("mean revenue: %w", err)
	}

	day, peak, err := CalculatePeakDay(sessions)
	if err != nil {
		return nil, fmt.Errorf("peak sessions: %w", err)
	}
	sum.PeakSessionsDay, sum.PeakSessions = day, int(peak)
	if sum.PeakRevenueDay, sum.PeakRevenue, err = CalculatePeakDay(revenue); err != nil {
		return nil, fmt.Errorf("peak revenue: %w", err)
	}

	if sum.RevenuePerSession, err = CalculateRatio(revenue, sessions, n); err != nil {
		return nil, fmt.Errorf("revenue per session: %w", err)
	}
	window := min(RecentWindow, n)
	if sum.RecentPerSession, err = CalculateRatio(revenue, sessions, window); err != nil {
		return nil, fmt.Errorf("recent revenue per session: %w", err)
	}
	if sum.ConversionHigh, sum.ConversionLow, err = CalculateConversionRange(sessions, revenue); err != nil {
		return nil, fmt.Errorf("conversion range: %w", err)
	}
	return sum, nil
}
