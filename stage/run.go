package stage

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height default to the mounted canvas size.
	Width, Height int
	ShowFPS       bool
	// DragDeadZone overrides the scene's drag dead zone when positive.
	DragDeadZone float64
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene   *Scene
	showFPS bool
	w, h    int
}

func (g *game) Update() error { return g.scene.Update() }

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(int, int) (int, int) { return g.w, g.h }

// newGame applies cfg to scene and sizes the window.
func newGame(scene *Scene, cfg RunConfig) *game {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = int(scene.canvas.FullWidth)
	}
	if h <= 0 {
		h = int(scene.canvas.FullHeight)
	}
	if w <= 0 || h <= 0 {
		w, h = 640, 480
	}
	if cfg.DragDeadZone > 0 {
		scene.SetDragDeadZone(cfg.DragDeadZone)
	}
	return &game{scene: scene, showFPS: cfg.ShowFPS, w: w, h: h}
}

// Run opens a window and runs the scene until the window is closed or the
// update function returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	g := newGame(scene, cfg)
	title := cfg.Title
	if title == "" {
		title = "treechart"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.w, g.h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
