package insight

import (
	"fmt"

	"SalesEcho/internal/model"
)

// Tiers maps the recent/overall conversion score to a verdict, strongest first.
// A loud echo means traffic is converting; a faint one means the funnel leaks.
var Tiers = []struct {
	MinScore float64
	Label    string
	Echo     string
}{
	{1.15, "converting well", "echo louder than usual"},
	{0.95, "steady", "echo tracks traffic"},
	{0.80, "softening", "echo fading"},
}

// DefaultTier applies below the lowest threshold.
var DefaultTier = struct{ Label, Echo string }{"funnel leak", "echo faint"}

// Evaluate scores the trailing week's revenue per session against the whole period.
func Evaluate(sum *model.MetricsSummary) *model.Insight {
	if sum.RevenuePerSession == 0 {
		return &model.Insight{Label: "no revenue", Commentary: "no revenue recorded in this window"}
	}
	score := sum.RecentPerSession / sum.RevenuePerSession

	label, echo := DefaultTier.Label, DefaultTier.Echo
	for _, t := range Tiers {
		if score >= t.MinScore {
			label, echo = t.Label, t.Echo
			break
		}
	}

	return &model.Insight{
		Label: label,
		Score: score,
		Commentary: fmt.Sprintf("%s: last week %.2f/session vs %.2f/session overall (%+.0f%%)",
			echo, sum.RecentPerSession, sum.RevenuePerSession, (score-1)*100),
	}
}
