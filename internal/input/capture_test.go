package input

import (
	"testing"
)

type recordSink struct {
	target   float64
	limit    float64
	viewport float64
	calls    int
}

func (s *recordSink) ScrollBy(delta float64) {
	s.calls++
	s.target += delta
	if s.target > s.limit {
		s.target = s.limit
	}
	if s.target < 0 {
		s.target = 0
	}
}

func (s *recordSink) ScrollTo(position float64) {
	s.calls++
	s.target = position
}

func (s *recordSink) Limit() float64    { return s.limit }
func (s *recordSink) Viewport() float64 { return s.viewport }

func readyCapture(sink *recordSink) *Capture {
	c := NewCapture(sink, DefaultConfig())
	c.Ready()
	return c
}

func TestCapture_IgnoredUntilReady(t *testing.T) {
	sink := &recordSink{limit: 1000, viewport: 800}
	c := NewCapture(sink, DefaultConfig())

	if c.Wheel(100, DeltaPixel) {
		t.Error("wheel consumed before ready")
	}
	if c.Key(KeyDown) {
		t.Error("key consumed before ready")
	}
	c.TouchStart(300)
	if c.TouchMove(200) {
		t.Error("touch consumed before ready")
	}
	if sink.calls != 0 {
		t.Errorf("sink called %d times before ready", sink.calls)
	}

	c.Ready()
	if !c.Wheel(100, DeltaPixel) {
		t.Error("wheel not consumed after ready")
	}
	if sink.target != 100 {
		t.Errorf("target = %v, want 100", sink.target)
	}
}

func TestCapture_WheelModes(t *testing.T) {
	tests := []struct {
		name     string
		delta    float64
		mode     DeltaMode
		expected float64
	}{
		{"pixel", 500, DeltaPixel, 500},
		{"line", 3, DeltaLine, 120},
		{"page", 1, DeltaPage, 800},
		{"negative pixel clamps", -50, DeltaPixel, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordSink{limit: 10000, viewport: 800}
			c := readyCapture(sink)
			c.Wheel(tt.delta, tt.mode)
			if sink.target != tt.expected {
				t.Errorf("target = %v, want %v", sink.target, tt.expected)
			}
		})
	}
}

func TestCapture_Keys(t *testing.T) {
	tests := []struct {
		key      Key
		start    float64
		expected float64
		handled  bool
	}{
		{KeyDown, 0, 100, true},
		{KeyUp, 500, 400, true},
		{KeyPageDown, 0, 640, true},
		{KeySpace, 0, 640, true},
		{KeyPageUp, 1000, 360, true},
		{KeyHome, 700, 0, true},
		{KeyEnd, 0, 2000, true},
		{KeyNone, 50, 50, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.key.String(), func(t *testing.T) {
			sink := &recordSink{target: tt.start, limit: 2000, viewport: 800}
			c := readyCapture(sink)
			if got := c.Key(tt.key); got != tt.handled {
				t.Errorf("handled = %v, want %v", got, tt.handled)
			}
			if sink.target != tt.expected {
				t.Errorf("target = %v, want %v", sink.target, tt.expected)
			}
		})
	}
}

func TestCapture_TouchAmplified(t *testing.T) {
	sink := &recordSink{limit: 10000, viewport: 800}
	c := readyCapture(sink)

	c.TouchStart(400)
	c.TouchMove(380)
	c.TouchMove(350)
	if sink.target != 125 {
		t.Errorf("target = %v, want 125 (50px * 2.5)", sink.target)
	}

	c.TouchMove(360)
	if sink.target != 100 {
		t.Errorf("target = %v, want 100 after dragging back 10px", sink.target)
	}

	c.TouchEnd()
	// a move without a start only re-anchors
	c.TouchMove(100)
	if sink.target != 100 {
		t.Errorf("unanchored move scrolled to %v", sink.target)
	}
}

func TestParseKey(t *testing.T) {
	tests := map[string]Key{
		"ArrowDown": KeyDown,
		"ArrowUp":   KeyUp,
		"PageDown":  KeyPageDown,
		"pgup":      KeyPageUp,
		" ":         KeySpace,
		"space":     KeySpace,
		"Home":      KeyHome,
		"End":       KeyEnd,
		"q":         KeyNone,
	}
	for name, want := range tests {
		if got := ParseKey(name); got != want {
			t.Errorf("ParseKey(%q) = %v, want %v", name, got, want)
		}
	}
}
