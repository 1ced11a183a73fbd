package sonify

// ShiftRight delays signal by lagDays slots: the head is zero-filled and
// whatever would run past the end of the clip is discarded.
func ShiftRight(signal []float64, lagDays int, tb TimeBase) []float64 {
	out := make([]float64, len(signal))
	lag := tb.LagSamples(lagDays)
	if lag < 0 || lag >= len(signal) {
		return out
	}
	copy(out[lag:], signal[:len(signal)-lag])
	return out
}
