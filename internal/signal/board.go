package signal

import (
	"math"
	"runtime"
	"sync/atomic"

	"github.com/san-kum/driftscroll/internal/scroll"
)

// Reader is the read-only view handed to consumers.
type Reader interface {
	Momentum() float64
	Progress() float64
	Position() float64
	Snapshot() scroll.Snapshot
}

type Board struct {
	seq       atomic.Uint64
	position  atomic.Uint64
	momentum  atomic.Uint64
	progress  atomic.Uint64
	limit     atomic.Uint64
	frame     atomic.Uint64
	rewinding atomic.Bool
}

func NewBoard() *Board {
	return &Board{}
}

// Publish stores a snapshot. The sequence counter is odd while a write is
// in flight so Snapshot can detect torn reads.
func (b *Board) Publish(s scroll.Snapshot) {
	b.seq.Add(1)
	b.position.Store(math.Float64bits(s.Position))
	b.momentum.Store(math.Float64bits(s.Momentum))
	b.progress.Store(math.Float64bits(s.Progress))
	b.limit.Store(math.Float64bits(s.Limit))
	b.frame.Store(s.Frame)
	b.rewinding.Store(s.Rewinding)
	b.seq.Add(1)
}

func (b *Board) Momentum() float64 { return math.Float64frombits(b.momentum.Load()) }
func (b *Board) Progress() float64 { return math.Float64frombits(b.progress.Load()) }
func (b *Board) Position() float64 { return math.Float64frombits(b.position.Load()) }
func (b *Board) Frame() uint64     { return b.frame.Load() }

// Snapshot returns all fields from the same publish.
func (b *Board) Snapshot() scroll.Snapshot {
	for {
		start := b.seq.Load()
		if start&1 == 1 {
			runtime.Gosched()
			continue
		}
		s := scroll.Snapshot{
			Position:  math.Float64frombits(b.position.Load()),
			Momentum:  math.Float64frombits(b.momentum.Load()),
			Progress:  math.Float64frombits(b.progress.Load()),
			Limit:     math.Float64frombits(b.limit.Load()),
			Frame:     b.frame.Load(),
			Rewinding: b.rewinding.Load(),
		}
		if b.seq.Load() == start {
			return s
		}
	}
}
