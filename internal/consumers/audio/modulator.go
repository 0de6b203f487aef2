package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/san-kum/driftscroll/internal/signal"
)

type Config struct {
	SampleRate    int           `yaml:"sample_rate"`
	MinInterval   time.Duration `yaml:"min_interval"`
	MaxInterval   time.Duration `yaml:"max_interval"`
	VelocityScale float64       `yaml:"velocity_scale"`
	RestThreshold float64       `yaml:"rest_threshold"`
	Smoothing     float64       `yaml:"smoothing"`
	Volume        float64       `yaml:"volume"`
}

func DefaultConfig() Config {
	return Config{
		SampleRate:    48000,
		MinInterval:   40 * time.Millisecond,
		MaxInterval:   400 * time.Millisecond,
		VelocityScale: 1200,
		RestThreshold: 0.5,
		Smoothing:     0.05,
		Volume:        0.25,
	}
}

// Modulator maps scroll momentum to audio parameters. The tick interval is
// recomputed from the latest momentum every time the synth asks for it;
// the level is smoothed once per modulation frame.
type Modulator struct {
	reader signal.Reader
	cfg    Config

	level    atomic.Uint64
	progress atomic.Uint64
}

func NewModulator(reader signal.Reader, cfg Config) *Modulator {
	return &Modulator{reader: reader, cfg: cfg}
}

func (m *Modulator) speed(momentum float64) float64 {
	return math.Min(math.Abs(momentum)/m.cfg.VelocityScale, 1)
}

// TickInterval is the gap before the next click, or 0 when scrolling has
// come to rest and the clicks should stop.
func (m *Modulator) TickInterval() time.Duration {
	momentum := m.reader.Momentum()
	if math.Abs(momentum) < m.cfg.RestThreshold {
		return 0
	}
	span := float64(m.cfg.MaxInterval - m.cfg.MinInterval)
	return m.cfg.MaxInterval - time.Duration(span*m.speed(momentum))
}

// Frame advances the smoothed level. It runs on the audio modulation loop.
func (m *Modulator) Frame(dt time.Duration) {
	snap := m.reader.Snapshot()
	level := m.Level()
	level += (m.speed(snap.Momentum) - level) * m.cfg.Smoothing
	m.level.Store(math.Float64bits(level))
	m.progress.Store(math.Float64bits(snap.Progress))
}

func (m *Modulator) Level() float64    { return math.Float64frombits(m.level.Load()) }
func (m *Modulator) Progress() float64 { return math.Float64frombits(m.progress.Load()) }

// Cutoff is the pad's low-pass cutoff in Hz; motion opens the filter.
func (m *Modulator) Cutoff() float64 {
	return 300 + 900*m.Level()
}
