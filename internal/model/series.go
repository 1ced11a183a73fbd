package model

import "time"

// DailySeries holds the two aligned day-indexed series that get sonified.
// Sessions is the leading (traffic) series, Revenue the lagging one.
type DailySeries struct {
	Start     time.Time
	Sessions  []int
	Revenue   []float64
	Events    []Event
	Source    string
	FetchedAt time.Time
}

// Days returns the number of day slots in the series.
func (s *DailySeries) Days() int {
	return len(s.Sessions)
}

// Date returns the calendar day of slot i. Without a known Start the
// series is assumed to end on the day it was fetched.
func (s *DailySeries) Date(i int) time.Time {
	start := s.Start
	if start.IsZero() {
		fetched := s.FetchedAt
		if fetched.IsZero() {
			fetched = time.Now()
		}
		y, m, d := fetched.Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, fetched.Location()).AddDate(0, 0, -(s.Days() - 1))
	}
	return start.AddDate(0, 0, i)
}

// EventOn returns the label of the event starting on day, if any.
func (s *DailySeries) EventOn(day int) (string, bool) {
	for _, e := range s.Events {
		if e.Day == day {
			return e.Label, true
		}
	}
	return "", false
}

// Event annotates a notable day (campaign, surge) for reports.
type Event struct {
	Day   int
	Label string
}

// MetricsSummary holds derived statistics for a DailySeries.
type MetricsSummary struct {
	Days              int
	TotalSessions     int
	TotalRevenue      float64
	MeanSessions      float64
	MeanRevenue       float64
	PeakSessionsDay   int
	PeakSessions      int
	PeakRevenueDay    int
	PeakRevenue       float64
	RevenuePerSession float64 // whole-period revenue / sessions
	RecentPerSession  float64 // same ratio over the trailing week
	ConversionLow     float64
	ConversionHigh    float64
}

// Insight is the verdict derived from conversion strength.
type Insight struct {
	Label      string
	Score      float64 // recent / overall revenue-per-session
	Commentary string
}
