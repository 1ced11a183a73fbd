package sonify

import "testing"

func TestShiftRight(t *testing.T) {
	tb := TimeBase{SampleRate: 10, Days: 5, TotalSamples: 10} // 2 samples per day
	signal := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		lag  int
		want []float64
	}{
		{0, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{1, []float64{0, 0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{3, []float64{0, 0, 0, 0, 0, 0, 1, 2, 3, 4}},
		{5, []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{9, []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		got := ShiftRight(signal, tt.lag, tb)
		if len(got) != len(signal) {
			t.Fatalf("lag %d: length changed to %d", tt.lag, len(got))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("lag %d: expected %v, got %v", tt.lag, tt.want, got)
				break
			}
		}
	}
	if signal[0] != 1 {
		t.Error("ShiftRight must not modify its input")
	}
}
