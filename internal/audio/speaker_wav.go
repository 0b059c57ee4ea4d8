package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavRecorder buffers the whole sample stream in memory and encodes a
// 16-bit mono WAV file on Close. Intended for headless runs and
// regression listening, not long sessions.
type WavRecorder struct {
	path       string
	sampleRate int
	samples    []int
}

// NewWavRecorder creates a recorder writing to path.
func NewWavRecorder(path string) *WavRecorder {
	return &WavRecorder{path: path}
}

// Start implements Speaker.
func (w *WavRecorder) Start(sampleRate int) error {
	w.sampleRate = sampleRate
	w.samples = w.samples[:0]
	return nil
}

// Queue implements Speaker.
func (w *WavRecorder) Queue(samples []int16) {
	for _, s := range samples {
		w.samples = append(w.samples, int(s))
	}
}

// Close encodes the buffered samples to disk.
func (w *WavRecorder) Close() error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("wav create: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, w.sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: w.sampleRate},
		Data:           w.samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("wav encode: %w", err)
	}
	return enc.Close()
}
