package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const (
	micSampleRate = 44100
	micFrames     = 1024
)

// MicSource captures the default input device and serves its spectrum.
type MicSource struct {
	stream *portaudio.Stream
	ring   *ring
	an     *analyzer
}

// OpenMic initializes portaudio and starts an input-only capture stream.
func OpenMic() (*MicSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: portaudio init: %w", err)
	}

	s := &MicSource{
		ring: newRing(ringSize),
		an:   newAnalyzer(),
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, micSampleRate, micFrames, func(in []float32) {
		samples := make([]float64, len(in))
		for i, v := range in {
			samples[i] = float64(v)
		}
		s.ring.push(samples)
	})
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: start input stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

// Spectrum analyzes the most recent capture window.
func (s *MicSource) Spectrum() Spectrum {
	return s.an.analyze(s.ring.snapshot(fftSize))
}

func (s *MicSource) Close() error {
	var err error
	if s.stream != nil {
		err = s.stream.Stop()
		if cerr := s.stream.Close(); err == nil {
			err = cerr
		}
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
