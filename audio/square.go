package audio

import (
	"github.com/gopxl/beep"
)

// SquareGenerator produces a 50% duty square wave, the speaker gate output
type SquareGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
}

// NewSquareGenerator creates a square wave generator
func NewSquareGenerator(sr beep.SampleRate, freq, volume float64) *SquareGenerator {
	return &SquareGenerator{
		sr:     sr,
		freq:   freq,
		volume: volume,
	}
}

func (g *SquareGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	period := float64(g.sr) / g.freq
	for i := range samples {
		phase := float64(g.pos) / period
		phase -= float64(int(phase))

		sample := g.volume
		if phase >= 0.5 {
			sample = -g.volume
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SquareGenerator) Err() error {
	return nil
}

// gain scales another streamer
type gain struct {
	beep.Streamer
	volume float64
}

func (g *gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.Streamer.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= g.volume
		samples[i][1] *= g.volume
	}
	return n, ok
}
