// Package audio provides pluggable sinks for the emulator's mono s16
// sample stream.
package audio

import "fmt"

// Speaker consumes the APU's output. Queue never blocks; sinks that
// fall behind drop samples.
type Speaker interface {
	Start(sampleRate int) error
	Queue(samples []int16)
	Close() error
}

// NewSpeaker builds a sink by backend name: "portaudio", "wav", "none".
func NewSpeaker(backend, wavPath string) (Speaker, error) {
	switch backend {
	case "portaudio":
		return NewPortaudio(), nil
	case "wav":
		return NewWavRecorder(wavPath), nil
	case "none", "":
		return Nil{}, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", backend)
	}
}

// Nil discards all samples.
type Nil struct{}

// Start implements Speaker.
func (Nil) Start(sampleRate int) error { return nil }

// Queue implements Speaker.
func (Nil) Queue(samples []int16) {}

// Close implements Speaker.
func (Nil) Close() error { return nil }
