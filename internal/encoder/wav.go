// Package encoder writes rendered buffers as 16-bit PCM WAV files.
package encoder

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"SalesEcho/internal/model"
)

const (
	bitDepth  = 16
	pcmFormat = 1
	fullScale = 32767
)

// PCM16 converts a sample to a signed 16-bit integer after clipping to [-1, 1].
func PCM16(x float64) int {
	x = math.Max(-1, math.Min(1, x))
	return int(math.Round(x * fullScale))
}

// IntBuffer interleaves a stereo buffer into go-audio's integer layout.
func IntBuffer(buf *model.AudioBuffer) *audio.IntBuffer {
	data := make([]int, 0, 2*buf.Len())
	for _, f := range buf.Frames {
		data = append(data, PCM16(f[model.ChannelLeft]), PCM16(f[model.ChannelRight]))
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}

// WriteWAV encodes buf as a stereo 16-bit WAV stream.
func WriteWAV(w io.WriteSeeker, buf *model.AudioBuffer) error {
	if buf.SampleRate <= 0 {
		return fmt.Errorf("write wav: invalid sample rate %d", buf.SampleRate)
	}
	enc := wav.NewEncoder(w, buf.SampleRate, bitDepth, 2, pcmFormat)
	if err := enc.Write(IntBuffer(buf)); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// WriteFile writes buf to path, creating parent directories as needed.
func WriteFile(path string, buf *model.AudioBuffer) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteWAV(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
