// Package treechart draws an interactive, collapsible tree diagram of an
// arbitrary nested state value.
//
// A [Chart] turns each state snapshot into a tree of named nodes with
// [Build], lays the visible part out left to right with [ComputeLayout],
// and diffs the result against the previous render with [Reconcile]. The
// outcome is a [Plan] of enter, update and exit transitions for nodes and
// links, handed to a [Surface] to animate.
//
// # Quick start
//
//	surface := treechart.NewSVGSurface()
//	chart := treechart.New(treechart.Config{Size: 800}, surface)
//	state, _ := treechart.DecodeJSON([]byte(`{"todos": [{"text": "ship"}]}`))
//	chart.RenderChart(state)
//	surface.WriteTo(os.Stdout)
//
// For an animated window see package stage, which implements [Surface] on
// Ebitengine and feeds node clicks back into [Chart.Toggle].
//
// # Identity
//
// The tree is rebuilt on every [Chart.RenderChart]. Nodes are matched to
// the previous render by their path in the state, so a node keeps its ID,
// previous position and collapsed state as long as its path does.
//
// # Layout
//
// Positions follow the Reingold–Tilford tidy tree algorithm: siblings never
// overlap and parents are centred over their children. The vertical spread
// grows with the tallest visible branch, so collapsing or expanding a
// subtree rescales the whole chart.
package treechart
