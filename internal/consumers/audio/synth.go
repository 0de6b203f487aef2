package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
)

const (
	clickLength = 0.03
	clickPitch  = 880.0
)

// Synth is a beep.Streamer: a filtered pad whose brightness follows the
// modulator level, plus clicks spaced by the modulator's tick interval.
type Synth struct {
	mod *Modulator
	sr  beep.SampleRate
	vol float64

	t         float64
	filter    [2]float64
	untilTick int
	clickPos  int
	clickLen  int
	clicking  bool

	clicks atomic.Uint64
}

func NewSynth(mod *Modulator) *Synth {
	sr := beep.SampleRate(mod.cfg.SampleRate)
	return &Synth{
		mod:      mod,
		sr:       sr,
		vol:      mod.cfg.Volume,
		clickLen: int(clickLength * float64(sr)),
	}
}

// Pad voicing: G2, D3, A3.
var padFreqs = []float64{98.00, 146.83, 220.00}

func (s *Synth) Stream(samples [][2]float64) (n int, ok bool) {
	dt := 1.0 / float64(s.sr)
	cutoff := s.mod.Cutoff()
	level := s.mod.Level()
	pitch := clickPitch * (1 + 0.5*s.mod.Progress())

	for i := range samples {
		var padL, padR float64
		for j, f := range padFreqs {
			g := 1.0 / float64(len(padFreqs))
			lfo := math.Sin(s.t*0.2 + float64(j))
			padL += triangle(s.t*f*0.999) * g * (0.7 + 0.3*lfo)
			padR += triangle(s.t*f*1.001) * g * (0.7 + 0.3*lfo)
		}
		padL = lpf(padL, cutoff, dt, &s.filter[0])
		padR = lpf(padR, cutoff, dt, &s.filter[1])
		padGain := 0.3 + 0.7*level

		click := s.nextClick(pitch)

		samples[i][0] = s.vol * (padL*padGain + click)
		samples[i][1] = s.vol * (padR*padGain + click)
		s.t += dt
	}
	return len(samples), true
}

func (s *Synth) nextClick(pitch float64) float64 {
	if s.untilTick <= 0 {
		interval := s.mod.TickInterval()
		if interval > 0 {
			s.untilTick = s.sr.N(interval)
			s.clicking = true
			s.clickPos = 0
			s.clicks.Add(1)
		} else {
			// at rest: poll again in a few milliseconds
			s.untilTick = s.sr.N(10 * time.Millisecond)
		}
	}
	s.untilTick--

	if !s.clicking {
		return 0
	}
	env := math.Exp(-8 * float64(s.clickPos) / float64(s.clickLen))
	out := env * math.Sin(2*math.Pi*pitch*float64(s.clickPos)/float64(s.sr)) * 0.5
	s.clickPos++
	if s.clickPos >= s.clickLen {
		s.clicking = false
	}
	return out
}

func (s *Synth) Err() error { return nil }

// Clicks is the number of clicks started so far.
func (s *Synth) Clicks() uint64 { return s.clicks.Load() }

func (s *Synth) SampleRate() beep.SampleRate { return s.sr }

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// one-pole low-pass
func lpf(sample, cutoff, dt float64, state *float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	*state += alpha * (sample - *state)
	return *state
}
