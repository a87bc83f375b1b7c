package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const ringSize = 8192

// tap wraps a beep.Streamer and records a mono mixdown of everything that
// passes through it, so the analyzer sees exactly what is being played.
type tap struct {
	src  beep.Streamer
	ring *ring
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.src.Stream(samples)
	if n > 0 {
		mono := make([]float64, n)
		for i := 0; i < n; i++ {
			mono[i] = (samples[i][0] + samples[i][1]) * 0.5
		}
		t.ring.push(mono)
	}
	return n, ok
}

func (t *tap) Err() error { return t.src.Err() }

// FileSource plays an audio file through the speaker and serves its spectrum.
type FileSource struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	tap      *tap
	an       *analyzer
	paused   bool
}

// OpenFile decodes path by extension (wav, mp3, flac), starts playback, and
// returns a spectrum source tapping the playback chain.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("audio: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/20)); err != nil {
		streamer.Close()
		f.Close()
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}

	// Chain: decoder -> loop -> tap -> pause control -> speaker.
	t := &tap{src: beep.Loop(-1, streamer), ring: newRing(ringSize)}
	ctrl := &beep.Ctrl{Streamer: t}

	s := &FileSource{
		file:     f,
		streamer: streamer,
		ctrl:     ctrl,
		tap:      t,
		an:       newAnalyzer(),
	}
	speaker.Play(ctrl)
	return s, nil
}

// Spectrum analyzes the most recent playback window.
func (s *FileSource) Spectrum() Spectrum {
	return s.an.analyze(s.tap.ring.snapshot(fftSize))
}

// TogglePause flips playback on or off and reports the new paused state.
func (s *FileSource) TogglePause() bool {
	speaker.Lock()
	s.paused = !s.paused
	s.ctrl.Paused = s.paused
	speaker.Unlock()
	return s.paused
}

func (s *FileSource) Paused() bool { return s.paused }

func (s *FileSource) Close() error {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	err := s.streamer.Close()
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}
