package calculator

import "errors"

// CalculateSMA computes the simple moving average of the most recent period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// CalculateMean returns the mean over the whole series.
func CalculateMean(values []float64) (float64, error) {
	return CalculateSMA(values, len(values))
}

// CalculateRatio returns sum(num)/sum(den) over the trailing period days.
// A zero denominator yields 0.
func CalculateRatio(num, den []float64, period int) (float64, error) {
	if len(num) != len(den) {
		return 0, errors.New("series lengths differ")
	}
	if period <= 0 || period > len(num) {
		return 0, errors.New("period out of range")
	}
	var n, d float64
	for i := len(num) - period; i < len(num); i++ {
		n += num[i]
		d += den[i]
	}
	if d == 0 {
		return 0, nil
	}
	return n / d, nil
}

// ToFloats widens an integer series.
func ToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
