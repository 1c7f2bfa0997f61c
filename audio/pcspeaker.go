// Package audio emulates the PC speaker: a square wave at a frequency
// derived from a PIT channel 2 divisor, played through beep.
package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// PITFrequency is the 8253/8254 input clock in Hz
const PITFrequency = 1193182

const (
	sampleRate = beep.SampleRate(44100)

	minFrequency = 20
	maxFrequency = 20000
	maxDuration  = 2 * time.Second

	BellFrequency = 800
	BellDuration  = 80 * time.Millisecond
)

var (
	ErrSpeakerDisabled = errors.New("speaker disabled")
	ErrNotInitialized  = errors.New("speaker not initialized")
)

// Wave selects the tone shape
type Wave uint8

const (
	WaveSquare Wave = iota // What the PC speaker actually produces
	WaveSine
)

// PITDivisor returns the 16-bit reload value that programs freq
func PITDivisor(freq float64) uint16 {
	if freq < minFrequency {
		freq = minFrequency
	}
	d := int(PITFrequency/freq + 0.5)
	if d < 1 {
		d = 1
	}
	if d > 0xFFFF {
		d = 0xFFFF
	}
	return uint16(d)
}

// DivisorFrequency returns the frequency the PIT really emits for a divisor
func DivisorFrequency(d uint16) float64 {
	if d == 0 {
		return PITFrequency / 65536.0
	}
	return PITFrequency / float64(d)
}

// Speaker plays tones on the host audio device
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	wave        Wave
	volume      float64
	enabled     bool
	initialized bool
}

// NewSpeaker creates a speaker; a disabled speaker rejects every tone
func NewSpeaker(enabled bool, wave Wave) *Speaker {
	return &Speaker{
		mixer:   &beep.Mixer{},
		wave:    wave,
		volume:  0.2,
		enabled: enabled,
	}
}

// Initialize opens the audio device
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Cleanup silences everything queued on the mixer
func (s *Speaker) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()

	s.initialized = false
}

// Enabled reports whether tones will be played
func (s *Speaker) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Beep queues a tone; it does not wait for playback to finish
func (s *Speaker) Beep(freq float64, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return ErrSpeakerDisabled
	}
	if !s.initialized {
		return ErrNotInitialized
	}

	streamer, err := s.tone(freq, d)
	if err != nil {
		return err
	}

	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
	return nil
}

// Bell plays the short error tone, ignoring failures
func (s *Speaker) Bell() {
	_ = s.Beep(BellFrequency, BellDuration)
}

// tone builds a finite streamer for the PIT-quantized frequency
func (s *Speaker) tone(freq float64, d time.Duration) (beep.Streamer, error) {
	if freq > maxFrequency {
		freq = maxFrequency
	}
	if d <= 0 {
		d = BellDuration
	}
	if d > maxDuration {
		d = maxDuration
	}

	actual := DivisorFrequency(PITDivisor(freq))
	n := sampleRate.N(d)

	switch s.wave {
	case WaveSine:
		sine, err := generators.SineTone(sampleRate, actual)
		if err != nil {
			return nil, err
		}
		return beep.Take(n, &gain{Streamer: sine, volume: s.volume}), nil
	default:
		return beep.Take(n, NewSquareGenerator(sampleRate, actual, s.volume)), nil
	}
}
