//go:build !ebiten

package ui

import (
	"ripple/internal/render"
	"ripple/internal/sims/water"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct {
	state overlayState
}

// NewOverlay constructs a stub overlay.
func NewOverlay(*render.HeightPalette, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// FalseColour reports the toggle state.
func (o *Overlay) FalseColour() bool { return o.state.has(falseColour) }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, Stats, []water.Cell, Marker) {}
