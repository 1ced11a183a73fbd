package playback

import (
	"context"
	"math"
	"time"
)

// Cursor maps wall-clock time since playback start to the audible day.
type Cursor struct {
	Start    time.Time
	Duration time.Duration
	Days     int
	LagDays  int
}

// NewCursor creates a cursor for a clip of the given length in seconds.
func NewCursor(start time.Time, durationSeconds float64, days, lagDays int) *Cursor {
	return &Cursor{
		Start:    start,
		Duration: time.Duration(durationSeconds * float64(time.Second)),
		Days:     days,
		LagDays:  lagDays,
	}
}

// Position returns the traffic day under the playhead and the revenue day
// being echoed on the right channel.
func (c *Cursor) Position(now time.Time) (day, echoDay int) {
	if c.Days < 1 || c.Duration <= 0 {
		return 0, 0
	}
	t := now.Sub(c.Start).Seconds()
	last := float64(c.Days - 1)
	pos := math.Max(0, math.Min(last, t/c.Duration.Seconds()*last))
	day = int(pos)
	return day, max(0, day-c.LagDays)
}

// Done reports whether the clip has finished.
func (c *Cursor) Done(now time.Time) bool {
	return now.Sub(c.Start) >= c.Duration
}

// Follow polls the cursor every interval and calls onDay whenever the day
// changes. It returns when the clip ends or ctx is cancelled.
func Follow(ctx context.Context, c *Cursor, interval time.Duration, onDay func(day, echoDay int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := -1
	emit := func(now time.Time) {
		day, echo := c.Position(now)
		if day != last {
			last = day
			onDay(day, echo)
		}
	}
	emit(time.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if c.Done(now) {
				emit(c.Start.Add(c.Duration))
				return
			}
			emit(now)
		}
	}
}
