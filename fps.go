package ultraspin

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the FPS readout is redrawn.
const fpsRefresh = 500 * time.Millisecond

// FPSWidget is a small readout of ebiten's measured FPS and TPS, along with
// the number of running transitions. Attach its node anywhere and run it
// with Scene.Run.
type FPSWidget struct {
	processClock
	scene *Scene
	node  *Node
	img   *ebiten.Image
	since time.Duration
}

// NewFPSWidget creates the readout for scene.
func NewFPSWidget(scene *Scene) *FPSWidget {
	// 120x48 fits three lines of debug text.
	img := ebiten.NewImage(120, 48)
	node := NewSprite("fps_widget", img)
	node.Origin = &Vec2{}
	node.ZIndex = 1 << 16
	return &FPSWidget{scene: scene, node: node, img: img, since: fpsRefresh}
}

// Node returns the readout sprite.
func (w *FPSWidget) Node() *Node { return w.node }

// Start arms the readout.
func (w *FPSWidget) Start(delay, duration time.Duration) { w.start(delay, duration) }

// Stop removes the readout.
func (w *FPSWidget) Stop() {
	if w.done {
		return
	}
	w.done = true
	w.node.Dispose()
}

// Update redraws the readout every fpsRefresh.
func (w *FPSWidget) Update(dt float32) {
	local, running := w.advance(dt)
	if !running {
		return
	}
	if w.expired(local) {
		w.Stop()
		return
	}
	w.since += seconds(dt)
	if w.since < fpsRefresh {
		return
	}
	w.since = 0

	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nPlaying: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), len(w.scene.playbacks)))
}
