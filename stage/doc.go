// Package stage draws a treechart.Chart in an [Ebitengine] window.
//
// A [Scene] is a retained scene graph with one marker node per chart node
// and one link node per edge. It implements treechart.Surface: every plan
// the chart produces is turned into [gween] tweens, and clicking a marker
// feeds the node ID back into the chart's toggle.
//
// # Quick start
//
//	scene := stage.NewScene()
//	chart := treechart.New(treechart.Config{Size: 800}, scene)
//	chart.RenderChart(state)
//	stage.Run(scene, stage.RunConfig{Title: "state"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Transitions
//
// Each element runs at most one tween group. A new transition for an
// element replaces the running one and starts from the element's current
// values, so rapid toggles never jump. Exiting elements stay in the scene,
// and are not clickable, until their tween finishes.
//
// # Testing
//
// [Scene.InjectClick] and [Scene.InjectNodeClick] queue synthetic pointer
// events that the next [Scene.Update] consumes instead of the real mouse.
// [Scene.Tick] advances tweens by an explicit step.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package stage
