// Package ultraspin renders HyperSpin media themes with [Ebitengine].
//
// A theme is a zip archive holding artwork, videos and a Theme.xml
// descriptor that places each component on a 1024x768 reference canvas and
// names the transition it enters with. ultraspin resolves the assets, lays
// the components out on a retained scene graph, compiles every transition
// into a keyframe plan and plays the plans.
//
// # Quick start
//
// Implement [ebiten.Game] and drive a [Scene] from it:
//
//	scene := ultraspin.NewScene(1024, 768)
//	r := ultraspin.NewThemeRenderer(scene, resolver)
//	if _, err := r.RenderTheme(ctx, "MAME", "pacman"); err != nil {
//		log.Fatal(err)
//	}
//
//	type Game struct{ scene *ultraspin.Scene }
//
//	func (g *Game) Update() error         { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Scene graph
//
// Every visual element is a [Node]. A node has a layout box (Left, Top,
// Width, Height) in its parent's coordinate space and a pose: a transform
// matrix applied about its origin, an opacity, a visibility flag and a blur
// radius. Keyframe animations write the pose; layout stays fixed. Children
// inherit their parent's transform and alpha.
//
//	frame := ultraspin.NewSprite("artwork1", img)
//	frame.Left, frame.Top = 100, 50
//	scene.Root().AddChild(frame)
//
// # Playing transitions
//
// [Scene.Play] takes a [transition.Plan], applies its first keyframe to the
// node and, on the next frame, starts the keyframe [Animation] together with
// any auxiliary [Process] the plan asks for (static noise, pixelation, a
// waving flag and so on). Nothing advances until [Scene.Update] is called;
// there is no background goroutine.
//
// [Ebitengine]: https://ebitengine.org
package ultraspin
