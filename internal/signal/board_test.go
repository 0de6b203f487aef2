package signal

import (
	"context"
	"sync"
	"testing"

	"github.com/san-kum/driftscroll/internal/scroll"
)

func TestBoard_ZeroValue(t *testing.T) {
	b := NewBoard()
	if b.Momentum() != 0 || b.Progress() != 0 || b.Position() != 0 {
		t.Error("fresh board should read zeros")
	}
}

func TestBoard_LastWriteWins(t *testing.T) {
	b := NewBoard()
	b.Publish(scroll.Snapshot{Position: 40, Momentum: 460, Progress: 0.04, Limit: 1000, Frame: 1})
	b.Publish(scroll.Snapshot{Position: 76.8, Momentum: 423.2, Progress: 0.0768, Limit: 1000, Frame: 2})

	if b.Position() != 76.8 {
		t.Errorf("Position() = %v, want 76.8", b.Position())
	}
	if b.Momentum() != 423.2 {
		t.Errorf("Momentum() = %v, want 423.2", b.Momentum())
	}
	if b.Frame() != 2 {
		t.Errorf("Frame() = %d, want 2", b.Frame())
	}

	snap := b.Snapshot()
	if snap.Progress != 0.0768 || snap.Limit != 1000 {
		t.Errorf("Snapshot() = %+v", snap)
	}
}

func TestBoard_SnapshotConsistentUnderConcurrentPublish(t *testing.T) {
	b := NewBoard()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(1); ; i++ {
			select {
			case <-ctx.Done():
				return
			default:
			}
			// every field derives from the frame number
			f := float64(i)
			b.Publish(scroll.Snapshot{Position: f, Momentum: -f, Progress: f / 2, Limit: f * 2, Frame: i})
		}
	}()

	for n := 0; n < 20000; n++ {
		s := b.Snapshot()
		f := float64(s.Frame)
		if s.Position != f || s.Momentum != -f || s.Progress != f/2 || s.Limit != f*2 {
			cancel()
			wg.Wait()
			t.Fatalf("torn snapshot: %+v", s)
		}
	}

	cancel()
	wg.Wait()
}

var _ Reader = (*Board)(nil)
