package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Portaudio plays the sample stream on the default output device
// through a half-second ring buffer.
type Portaudio struct {
	stream *portaudio.Stream
	ring   *ring
}

// NewPortaudio creates the sink; the device opens on Start.
func NewPortaudio() *Portaudio {
	return &Portaudio{}
}

// Start initializes portaudio and opens a mono output stream at the
// given rate.
func (s *Portaudio) Start(sampleRate int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	s.ring = newRing(sampleRate / 2)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), 0, s.callback)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("portaudio open: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("portaudio start: %w", err)
	}
	return nil
}

func (s *Portaudio) callback(out []float32) {
	s.ring.read(out)
}

// Queue implements Speaker.
func (s *Portaudio) Queue(samples []int16) {
	if s.ring != nil {
		s.ring.write(samples)
	}
}

// Close stops the stream and tears down portaudio.
func (s *Portaudio) Close() error {
	if s.stream == nil {
		return nil
	}
	err := s.stream.Close()
	portaudio.Terminate()
	s.stream = nil
	return err
}
