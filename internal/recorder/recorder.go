package recorder

import "SalesEcho/internal/model"

// RenderEvent holds the parameters and outcome of one render.
type RenderEvent struct {
	Trigger         string // "cron", "command" or "cli"
	Mode            model.Mode
	LagDays         int
	Ticks           bool
	Solo            string
	SampleRate      int
	DurationSeconds float64
	Frames          int
	PeakLeft        float64
	PeakRight       float64
	OutputPath      string
}

// NewRenderEvent fills a RenderEvent from the parameters and buffer of a render.
func NewRenderEvent(trigger, solo string, p model.RenderParameters, buf *model.AudioBuffer) *RenderEvent {
	return &RenderEvent{
		Trigger:         trigger,
		Mode:            p.Mode,
		LagDays:         p.LagDays,
		Ticks:           p.TicksEnabled,
		Solo:            solo,
		SampleRate:      p.SampleRate,
		DurationSeconds: p.DurationSeconds,
		Frames:          buf.Len(),
		PeakLeft:        buf.Peak(model.ChannelLeft),
		PeakRight:       buf.Peak(model.ChannelRight),
	}
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordRender(evt *RenderEvent) error
	RecordMetrics(series *model.DailySeries) error
	Close() error
}
