package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player routes a Synth to the system speaker.
type Player struct {
	synth *Synth
	ctrl  *beep.Ctrl

	mu     sync.Mutex
	active bool
}

func NewPlayer(synth *Synth) *Player {
	return &Player{synth: synth}
}

func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return nil
	}

	sr := p.synth.SampleRate()
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	p.ctrl = &beep.Ctrl{Streamer: p.synth}
	speaker.Play(p.ctrl)
	p.active = true
	return nil
}

func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = muted
	speaker.Unlock()
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	speaker.Clear()
	p.active = false
}
