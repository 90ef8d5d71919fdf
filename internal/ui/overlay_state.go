package ui

// Marker is a screen position to highlight, typically the last pointer hit.
type Marker struct {
	X, Y float64
	OK   bool
}

type overlayFlag uint8

const (
	showStats overlayFlag = 1 << iota
	falseColour
	showMap
)

// overlayState holds the toggles shared by the GUI and headless overlays.
type overlayState struct {
	flags overlayFlag
}

func (s *overlayState) toggle(f overlayFlag) { s.flags ^= f }

func (s overlayState) has(f overlayFlag) bool { return s.flags&f != 0 }
