package sonify

import (
	"math"
	"testing"
)

func TestNormalize_ConstantSeriesIsZero(t *testing.T) {
	c := Normalize([]float64{1000, 1000, 1000, 1000})
	for i := range c.Raw {
		if c.LogNorm[i] != 0 || c.LinearNorm[i] != 0 {
			t.Errorf("day %d: expected zeros, got log=%v linear=%v", i, c.LogNorm[i], c.LinearNorm[i])
		}
	}
}

func TestNormalize_RangeAndOrder(t *testing.T) {
	raw := []float64{0, 10, 100, 1000, 10000}
	c := Normalize(raw)
	for i := range raw {
		if c.LogNorm[i] < 0 || c.LogNorm[i] >= 1 {
			t.Errorf("LogNorm[%d] = %v out of [0,1)", i, c.LogNorm[i])
		}
		if c.LinearNorm[i] < 0 || c.LinearNorm[i] >= 1 {
			t.Errorf("LinearNorm[%d] = %v out of [0,1)", i, c.LinearNorm[i])
		}
	}
	// The log view lifts mid values far more than the linear view.
	if c.LogNorm[2] <= c.LinearNorm[2] {
		t.Errorf("expected log compression to lift day 2: log=%v linear=%v", c.LogNorm[2], c.LinearNorm[2])
	}
	if raw[4] != 10000 {
		t.Error("Normalize must not modify its input")
	}
}

func TestNormalize_OutlierDoesNotSaturate(t *testing.T) {
	raw := []float64{1400, 1500, 1450, 1500 * 4.5, 1420}
	c := Normalize(raw)
	if c.LinearNorm[1] > 0.05 {
		t.Errorf("linear view: non-spike day should be crushed near 0, got %v", c.LinearNorm[1])
	}
	if c.LogNorm[1] < 0.02 || c.LogNorm[1] > 0.2 {
		t.Errorf("log view: non-spike day expected in (0.02, 0.2), got %v", c.LogNorm[1])
	}
	if c.LogNorm[3] < 0.99 {
		t.Errorf("spike should reach the top of the range, got %v", c.LogNorm[3])
	}
}

func TestConversionRatio_ZeroSessions(t *testing.T) {
	ratio := ConversionRatio([]float64{0, 100}, []float64{0, 50})
	if ratio[0] != 0 {
		t.Errorf("expected 0/eps = 0, got %v", ratio[0])
	}
	if !approx(ratio[1], 0.5, 1e-9) {
		t.Errorf("expected 0.5, got %v", ratio[1])
	}
	withRevenue := ConversionRatio([]float64{0}, []float64{5})
	if math.IsInf(withRevenue[0], 0) || math.IsNaN(withRevenue[0]) {
		t.Errorf("expected finite ratio, got %v", withRevenue[0])
	}
}
