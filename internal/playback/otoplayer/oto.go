// Package otoplayer streams rendered buffers to the default audio device.
package otoplayer

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"SalesEcho/internal/model"
	"SalesEcho/internal/playback"
)

const (
	channelCount = 2
	pollInterval = 10 * time.Millisecond
)

// Player owns one oto context. oto allows a single context per process.
type Player struct {
	ctx        *oto.Context
	ready      chan struct{}
	sampleRate int
}

// New opens the audio device at the given sample rate.
func New(sampleRate int) (*Player, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Player{ctx: ctx, ready: ready, sampleRate: sampleRate}, nil
}

// Play blocks until the buffer has been played or ctx is cancelled.
func (p *Player) Play(ctx context.Context, buf *model.AudioBuffer, onStart playback.StartFunc) error {
	if buf.SampleRate != p.sampleRate {
		return fmt.Errorf("buffer sample rate %d does not match device rate %d", buf.SampleRate, p.sampleRate)
	}
	select {
	case <-p.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	player := p.ctx.NewPlayer(bytes.NewReader(playback.Float32LE(buf)))
	defer player.Close()
	player.Play()
	if onStart != nil {
		onStart(time.Now())
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := player.Err(); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	return nil
}
