//go:build js
// +build js

package main

import (
	"fmt"
	"strconv"

	"github.com/gopherjs/gopherjs/js"

	"github.com/san-kum/driftscroll/internal/engine"
	"github.com/san-kum/driftscroll/internal/input"
)

type domLayout struct {
	content *js.Object
}

func (l domLayout) ContentHeight() float64 {
	return l.content.Get("scrollHeight").Float()
}

func (l domLayout) ViewportHeight() float64 {
	return js.Global.Get("innerHeight").Float()
}

// transformSurface moves the content element instead of the native
// scroll position.
type transformSurface struct {
	el *js.Object
}

func (s transformSurface) Apply(position float64) {
	s.el.Get("style").Set("transform", fmt.Sprintf("translate3d(0, %.2fpx, 0)", -position))
}

// cssSink exposes shader uniforms as custom properties, e.g. --uVelocity.
type cssSink struct {
	root *js.Object
}

func (c cssSink) SetUniform(name string, v float64) {
	c.root.Get("style").Call("setProperty", "--"+name, strconv.FormatFloat(v, 'f', 4, 64))
}

var wheelModes = map[int]input.DeltaMode{
	0: input.DeltaPixel,
	1: input.DeltaLine,
	2: input.DeltaPage,
}

func bindInput(c *input.Capture, eng *engine.Engine, layout domLayout) {
	win := js.Global
	doc := js.Global.Get("document")
	active := map[string]interface{}{"passive": false}

	win.Call("addEventListener", "wheel", func(event *js.Object) {
		if c.Wheel(event.Get("deltaY").Float(), wheelModes[event.Get("deltaMode").Int()]) {
			event.Call("preventDefault")
		}
	}, active)

	doc.Call("addEventListener", "keydown", func(event *js.Object) {
		if event.Get("key").String() == "r" && event.Get("ctrlKey").Bool() {
			eng.Rewind()
			event.Call("preventDefault")
			return
		}
		if c.Key(input.ParseKey(event.Get("key").String())) {
			event.Call("preventDefault")
		}
	})

	win.Call("addEventListener", "touchstart", func(event *js.Object) {
		c.TouchStart(event.Get("touches").Index(0).Get("clientY").Float())
	}, active)
	win.Call("addEventListener", "touchmove", func(event *js.Object) {
		if c.TouchMove(event.Get("touches").Index(0).Get("clientY").Float()) {
			event.Call("preventDefault")
		}
	}, active)
	win.Call("addEventListener", "touchend", func(event *js.Object) {
		c.TouchEnd()
	})

	// Layout is re-read every tick; resize only re-clamps so the next
	// frame starts inside the new bounds.
	win.Call("addEventListener", "resize", func() {
		eng.Resize(layout.ContentHeight(), layout.ViewportHeight())
	})
}
