// Package playback plays rendered buffers and tracks which day is audible.
package playback

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"SalesEcho/internal/encoder"
	"SalesEcho/internal/model"
)

// StartFunc receives the moment audio actually starts leaving the output.
type StartFunc func(start time.Time)

// Player sends a buffer to an output and blocks until it finishes or ctx is done.
// onStart, if non-nil, is called once when sound begins.
type Player interface {
	Play(ctx context.Context, buf *model.AudioBuffer, onStart StartFunc) error
}

// NopPlayer discards audio. Used when no playback backend is configured.
type NopPlayer struct{}

func (NopPlayer) Play(context.Context, *model.AudioBuffer, StartFunc) error { return nil }

// CommandPlayer writes a temporary WAV and hands it to an external program
// such as afplay or aplay. The file path is appended as the last argument.
type CommandPlayer struct {
	Command string
	Args    []string
	TempDir string
}

// NewCommandPlayer parses a command line like "aplay -q".
func NewCommandPlayer(commandLine string) (*CommandPlayer, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("playback command is empty")
	}
	return &CommandPlayer{Command: fields[0], Args: fields[1:]}, nil
}

func (p *CommandPlayer) Play(ctx context.Context, buf *model.AudioBuffer, onStart StartFunc) error {
	dir, err := os.MkdirTemp(p.TempDir, "salesecho-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "clip.wav")
	if err := encoder.WriteFile(path, buf); err != nil {
		return err
	}

	args := append(append([]string(nil), p.Args...), path)
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Command, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.Command, err)
	}
	if onStart != nil {
		onStart(time.Now())
	}
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			log.Printf("[INFO] playback interrupted")
			return ctx.Err()
		}
		return fmt.Errorf("run %s: %w (%s)", p.Command, err, strings.TrimSpace(out.String()))
	}
	return nil
}

// Float32LE interleaves a buffer into little-endian float32 stereo frames.
func Float32LE(buf *model.AudioBuffer) []byte {
	out := make([]byte, buf.Len()*8)
	for i, f := range buf.Frames {
		binary.LittleEndian.PutUint32(out[i*8:], math.Float32bits(float32(f[model.ChannelLeft])))
		binary.LittleEndian.PutUint32(out[i*8+4:], math.Float32bits(float32(f[model.ChannelRight])))
	}
	return out
}

// SoloBuffer returns the buffer to play for a solo setting: "traffic" keeps
// the left channel, "revenue" keeps the right, anything else plays both.
func SoloBuffer(buf *model.AudioBuffer, solo string) *model.AudioBuffer {
	switch solo {
	case "traffic":
		return buf.Solo(model.ChannelLeft)
	case "revenue":
		return buf.Solo(model.ChannelRight)
	default:
		return buf
	}
}
