//go:build js
// +build js

package main

import (
	"log"
	"strings"
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/san-kum/driftscroll/internal/config"
	"github.com/san-kum/driftscroll/internal/consumers/audio"
	"github.com/san-kum/driftscroll/internal/consumers/shader"
	"github.com/san-kum/driftscroll/internal/consumers/timeline"
	"github.com/san-kum/driftscroll/internal/engine"
	"github.com/san-kum/driftscroll/internal/input"
	"github.com/san-kum/driftscroll/internal/integrators"
	"github.com/san-kum/driftscroll/internal/loop"
	"github.com/san-kum/driftscroll/internal/signal"
)

// loadingDelay keeps input blocked while the intro sequence plays.
const loadingDelay = 800 * time.Millisecond

func main() {
	doc := js.Global.Get("document")
	content := doc.Call("getElementById", "content")
	if content == nil || content == js.Undefined {
		panic("content element not found")
	}

	cfg := config.DefaultConfig()
	logger := log.New(consoleWriter{}, "driftscroll: ", 0)

	board := signal.NewBoard()
	eng, err := engine.New(cfg.ScrollConfig(), integrators.NewTimed(), board)
	if err != nil {
		panic(err)
	}
	layout := domLayout{content: content}
	eng.SetLayout(layout)
	eng.SetSurface(transformSurface{el: content})

	capture := input.NewCapture(eng, cfg.Input)
	bindInput(capture, eng, layout)

	shd := shader.New(board, cfg.Shader)
	shd.SetSink(cssSink{root: doc.Get("documentElement")})

	tl, err := timeline.New(board, cfg.Scenes)
	if err != nil {
		panic(err)
	}
	body := doc.Get("body")
	tl.OnTransition(func(t timeline.Transition) {
		class := "scene-" + t.Scene.Name
		if t.Entered {
			body.Get("classList").Call("add", class)
		} else {
			body.Get("classList").Call("remove", class)
		}
		body.Get("dataset").Set("direction", t.Direction.String())
	})

	mod := audio.NewModulator(board, cfg.Audio)
	clicks := newClickTrack(mod)

	rafLoop("engine", logger, func(dt time.Duration) { eng.Tick(dt) })
	rafLoop("shader", logger, shd.Frame)
	rafLoop("timeline", logger, tl.Frame)
	rafLoop("audio", logger, mod.Frame)

	js.Global.Call("addEventListener", "load", func() {
		js.Global.Call("setTimeout", func() {
			capture.Ready()
			body.Get("classList").Call("add", "ready")
		}, loadingDelay.Milliseconds())
	})

	js.Global.Set("driftscroll", map[string]interface{}{
		"rewind": func() { eng.Rewind() },
		"sound": func(on bool) {
			if on {
				clicks.Start()
			} else {
				clicks.Stop()
			}
		},
		"state": func() map[string]interface{} {
			snap := board.Snapshot()
			return map[string]interface{}{
				"position":  snap.Position,
				"momentum":  snap.Momentum,
				"progress":  snap.Progress,
				"rewinding": snap.Rewinding,
				"scenes":    strings.Join(tl.Active(), " "),
			}
		},
	})

	select {}
}

// rafLoop runs frame on every animation frame until the page goes away.
// A panicking frame is logged and the next frame is still scheduled.
func rafLoop(name string, logger *log.Logger, frame loop.FrameFunc) {
	var last float64
	var n uint64
	var step func(now float64)
	step = func(now float64) {
		js.Global.Call("requestAnimationFrame", step)

		dt := time.Second / 60
		if last > 0 {
			dt = time.Duration((now - last) * float64(time.Millisecond))
		}
		last = now
		n++

		if ferr := loop.Guard(name, n, func() { frame(dt) }); ferr != nil {
			logger.Printf("%v", ferr)
		}
	}
	js.Global.Call("requestAnimationFrame", step)
}

type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global.Get("console").Call("warn", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
