package calculator

import (
	"errors"
	"math"
)

// CalculateRange scans the series and returns its high and low.
func CalculateRange(values []float64) (high, low float64, err error) {
	if len(values) == 0 {
		return 0, 0, errors.New("no values provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, v := range values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low, nil
}

// CalculatePeakDay returns the first day holding the series maximum.
func CalculatePeakDay(values []float64) (day int, peak float64, err error) {
	if len(values) == 0 {
		return 0, 0, errors.New("no values provided")
	}
	peak = values[0]
	for i, v := range values {
		if v > peak {
			day, peak = i, v
		}
	}
	return day, peak, nil
}

// CalculateConversionRange returns the high and low of daily revenue per session,
// skipping days without sessions.
func CalculateConversionRange(sessions, revenue []float64) (high, low float64, err error) {
	if len(sessions) != len(revenue) {
		return 0, 0, errors.New("series lengths differ")
	}
	var ratios []float64
	for i, s := range sessions {
		if s > 0 {
			ratios = append(ratios, revenue[i]/s)
		}
	}
	if len(ratios) == 0 {
		return 0, 0, nil
	}
	return CalculateRange(ratios)
}
