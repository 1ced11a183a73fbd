package scheduler

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"SalesEcho/internal/encoder"
	"SalesEcho/internal/insight"
	"SalesEcho/internal/model"
	"SalesEcho/internal/notifier"
	"SalesEcho/internal/playback"
	"SalesEcho/internal/recorder"
	"SalesEcho/internal/sonify"
)

// Clip is one rendered and encoded digest.
type Clip struct {
	Path    string
	Report  string
	Caption string
	Params  model.RenderParameters
	Series  *model.DailySeries
	Buffer  *model.AudioBuffer
}

// Produce collects the series, renders it with the current session toggles,
// writes the WAV and records the render.
func (s *Scheduler) Produce(ctx context.Context, trigger, solo string) (*Clip, error) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	series, sum, err := s.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	if err := s.Recorder.RecordMetrics(series); err != nil {
		log.Printf("[ERROR] record metrics: %v", err)
	}

	params := s.Session.Params(s.Audio.SampleRate, s.Audio.DurationSeconds)
	buf, err := sonify.RenderSeries(series, params)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	buf = playback.SoloBuffer(buf, solo)

	path := filepath.Join(s.Audio.OutputDir, fmt.Sprintf("salesecho-%s.wav", time.Now().Format("20060102-150405.000")))
	if err := encoder.WriteFile(path, buf); err != nil {
		return nil, err
	}
	log.Printf("[INFO] rendered %d days (%s, lag %d, %s) to %s", series.Days(), params.Mode, params.LagDays, solo, path)

	evt := recorder.NewRenderEvent(trigger, solo, params, buf)
	evt.OutputPath = path
	if err := s.Recorder.RecordRender(evt); err != nil {
		log.Printf("[ERROR] record render: %v", err)
	}
	s.Session.RecordRender()

	ins := insight.Evaluate(sum)
	return &Clip{
		Path:    path,
		Report:  notifier.FormatReport(series, sum, ins, params),
		Caption: notifier.FormatCaption(series, ins, params, solo),
		Params:  params,
		Series:  series,
		Buffer:  buf,
	}, nil
}

// PlayLocal plays a clip on the configured player and logs the audible day.
// The cursor starts when the player reports that sound has begun.
func (s *Scheduler) PlayLocal(ctx context.Context, clip *Clip) error {
	if s.Player == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return s.Player.Play(ctx, clip.Buffer, func(start time.Time) {
		cursor := playback.NewCursor(start, clip.Params.DurationSeconds, clip.Series.Days(), clip.Params.LagDays)
		go playback.Follow(ctx, cursor, 50*time.Millisecond, func(day, echoDay int) {
			log.Printf("[INFO] ▶ day %d: %d sessions | echo day %d: %.0f revenue",
				day+1, clip.Series.Sessions[day], echoDay+1, clip.Series.Revenue[echoDay])
		})
	})
}
