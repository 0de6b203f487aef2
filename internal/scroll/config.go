package scroll

import (
	"fmt"
	"time"
)

type Config struct {
	Ease           float64
	RewindDuration time.Duration
	RewindEasing   string
}

func DefaultConfig() Config {
	return Config{
		Ease:           0.08,
		RewindDuration: 1200 * time.Millisecond,
		RewindEasing:   "inOutCubic",
	}
}

func (c Config) Validate() error {
	if !(c.Ease > 0 && c.Ease <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidEase, c.Ease)
	}
	if c.RewindDuration <= 0 {
		return fmt.Errorf("%w: rewind %v", ErrInvalidDuration, c.RewindDuration)
	}
	return nil
}
