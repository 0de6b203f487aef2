package input

import "strings"

type Key int

const (
	KeyNone Key = iota
	KeyDown
	KeyUp
	KeyPageDown
	KeyPageUp
	KeySpace
	KeyHome
	KeyEnd
)

// DeltaMode is the unit a wheel event reports its delta in.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

var keyNames = map[string]Key{
	"arrowdown": KeyDown,
	"down":      KeyDown,
	"arrowup":   KeyUp,
	"up":        KeyUp,
	"pagedown":  KeyPageDown,
	"pgdown":    KeyPageDown,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	" ":         KeySpace,
	"space":     KeySpace,
	"home":      KeyHome,
	"end":       KeyEnd,
}

// ParseKey maps DOM key names ("ArrowDown", "PageUp", " ") and terminal key
// names ("down", "pgup", "space") to a Key. Unknown names give KeyNone.
func ParseKey(name string) Key {
	if name == " " {
		return KeySpace
	}
	return keyNames[strings.ToLower(strings.TrimSpace(name))]
}

func (k Key) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyPageDown:
		return "pagedown"
	case KeyPageUp:
		return "pageup"
	case KeySpace:
		return "space"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	default:
		return "none"
	}
}
