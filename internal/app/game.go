//go:build ebiten

package app

import (
	"image"
	"time"

	"ripple/internal/core"
	"ripple/internal/render"
	"ripple/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	clock   core.Clock
	painter *render.MeshPainter
	frames  *render.FrameBuilder
	hud     *ui.HUD
	overlay *ui.Overlay

	hudWidth int
	showHUD  bool
	seed     int64

	cursorX, cursorY int
	touches          []ebiten.TouchID
}

// New constructs a Game around an initialized controller.
func New(ctrl *Controller, hudWidth int, seed int64) *Game {
	palette := render.NewHeightPalette(render.DefaultHeightRange)
	n := ctrl.Simulation().Field().Resolution()
	return &Game{
		ctrl:     ctrl,
		clock:    ctrl.Scheduler().Clock(),
		painter:  render.NewMeshPainter(),
		frames:   render.NewFrameBuilder(palette),
		hud:      ui.NewHUD(ctrl, hudWidth),
		overlay:  ui.NewOverlay(palette, n),
		hudWidth: hudWidth,
		showHUD:  hudWidth > 0,
		seed:     seed,
	}
}

// Update handles input and advances the simulation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.ctrl.Dispose()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD && g.hudWidth > 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.seed = time.Now().UnixNano()
		g.ctrl.Reset(g.seed)
	}

	g.overlay.Update()
	g.frames.FalseColour = g.overlay.FalseColour()
	if g.showHUD {
		g.hud.Update(g.ctrl.Viewport().W)
	}
	g.handlePointer()

	return g.ctrl.Advance(g.clock.Now())
}

func (g *Game) handlePointer() {
	vp := g.ctrl.Viewport()
	inView := func(x, y int) bool { return x >= 0 && y >= 0 && x < vp.W && y < vp.H }

	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		if inView(x, y) {
			g.ctrl.PointerMove(float64(x), float64(y))
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inView(g.cursorX, g.cursorY) {
		g.ctrl.PointerDown(float64(g.cursorX), float64(g.cursorY))
	}

	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		if x, y := ebiten.TouchPosition(id); inView(x, y) {
			g.ctrl.PointerDown(float64(x), float64(y))
		}
	}
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if (x != px || y != py) && inView(x, y) {
			g.ctrl.PointerMove(float64(x), float64(y))
		}
	}
}

// Draw renders the lit surface, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	sc := g.ctrl.Scene()
	if sc == nil {
		return
	}
	vp := g.ctrl.Viewport()
	view := screen.SubImage(image.Rect(0, 0, vp.W, vp.H)).(*ebiten.Image)
	g.painter.Draw(view, g.frames.Build(sc), sc.Lighting.Background)

	stats := g.ctrl.Stats()
	stats.FPS = ebiten.ActualFPS()
	stats.TPS = ebiten.ActualTPS()
	mx, my, ok := g.ctrl.PointerMarker()
	g.overlay.Draw(view, stats, g.ctrl.Simulation().Field().Current(), ui.Marker{X: mx, Y: my, OK: ok})

	if g.showHUD {
		g.hud.Draw(screen, vp.W, vp.H)
	}
}

// Layout gives the simulation everything left of the HUD panel and resizes
// the camera to match.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := outsideWidth
	if g.showHUD {
		w -= g.hudWidth
	}
	if w < 1 {
		w = 1
	}
	g.ctrl.Resize(w, outsideHeight)
	return outsideWidth, outsideHeight
}
