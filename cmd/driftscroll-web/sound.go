//go:build js
// +build js

package main

import (
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/san-kum/driftscroll/internal/consumers/audio"
)

const restPoll = 100 * time.Millisecond

// clickTrack plays a short Web Audio blip at the modulator's tick
// interval. Each click re-reads the interval so it follows the latest
// momentum.
type clickTrack struct {
	mod    *audio.Modulator
	ctx    *js.Object
	timer  *js.Object
	active bool
}

func newClickTrack(mod *audio.Modulator) *clickTrack {
	return &clickTrack{mod: mod}
}

func (t *clickTrack) Start() {
	if t.active {
		return
	}
	if t.ctx == nil {
		ctor := js.Global.Get("AudioContext")
		if ctor == nil || ctor == js.Undefined {
			ctor = js.Global.Get("webkitAudioContext")
		}
		if ctor == nil || ctor == js.Undefined {
			return
		}
		t.ctx = ctor.New()
	}
	t.ctx.Call("resume")
	t.active = true
	t.schedule()
}

func (t *clickTrack) Stop() {
	t.active = false
	if t.timer != nil {
		js.Global.Call("clearTimeout", t.timer)
		t.timer = nil
	}
}

func (t *clickTrack) schedule() {
	if !t.active {
		return
	}
	interval := t.mod.TickInterval()
	if interval > 0 {
		t.blip()
	} else {
		interval = restPoll
	}
	t.timer = js.Global.Call("setTimeout", t.schedule, interval.Milliseconds())
}

func (t *clickTrack) blip() {
	now := t.ctx.Get("currentTime").Float()

	osc := t.ctx.Call("createOscillator")
	osc.Set("type", "triangle")
	osc.Get("frequency").Set("value", 600+600*t.mod.Progress())

	filter := t.ctx.Call("createBiquadFilter")
	filter.Set("type", "lowpass")
	filter.Get("frequency").Set("value", t.mod.Cutoff())

	gain := t.ctx.Call("createGain")
	gain.Get("gain").Call("setValueAtTime", max(0.2*t.mod.Level(), 0.001), now)
	gain.Get("gain").Call("exponentialRampToValueAtTime", 0.0001, now+0.05)

	osc.Call("connect", filter)
	filter.Call("connect", gain)
	gain.Call("connect", t.ctx.Get("destination"))
	osc.Call("start", now)
	osc.Call("stop", now+0.06)
}
