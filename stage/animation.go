package stage

import (
	"time"

	"github.com/phanxgames/treechart"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates any number of float64 fields on a Node together.
// Create one with the constructors below and call Update(dt) each frame;
// the Scene does this for every transition it runs. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens []*gween.Tween
	fields []*float64
	target *Node
	Done   bool
}

func newTweenGroup(node *Node, capacity int) *TweenGroup {
	return &TweenGroup{
		tweens: make([]*gween.Tween, 0, capacity),
		fields: make([]*float64, 0, capacity),
		target: node,
	}
}

// add animates *field from its current value to `to`.
func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens = append(g.tweens, gween.New(float32(*field), float32(to), duration, fn))
	g.fields = append(g.fields, field)
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenMarker creates a TweenGroup that animates a marker's position,
// radius, fill and label opacity towards v. The label text and anchor are
// not animated and switch immediately.
func TweenMarker(node *Node, v treechart.NodeVisual, duration float32, fn ease.TweenFunc) *TweenGroup {
	node.applyLabel(v)
	g := newTweenGroup(node, 8)
	g.add(&node.X, v.Pos.X, duration, fn)
	g.add(&node.Y, v.Pos.Y, duration, fn)
	g.add(&node.Radius, v.Radius, duration, fn)
	g.add(&node.TextAlpha, v.TextOpacity, duration, fn)
	g.add(&node.Fill.R, v.Fill.R, duration, fn)
	g.add(&node.Fill.G, v.Fill.G, duration, fn)
	g.add(&node.Fill.B, v.Fill.B, duration, fn)
	g.add(&node.Fill.A, v.Fill.A, duration, fn)
	return g
}

// TweenLink creates a TweenGroup that animates every control point of a
// link's curve towards to.
func TweenLink(node *Node, to treechart.Diagonal, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(node, 8)
	c := &node.Curve
	for i, p := range [...]*treechart.Vec2{&c.Source, &c.C1, &c.C2, &c.Target} {
		dst := to.Points()[i]
		g.add(&p.X, dst.X, duration, fn)
		g.add(&p.Y, dst.Y, duration, fn)
	}
	return g
}

// seconds converts a transition duration for gween.
func seconds(d time.Duration) float32 {
	if d < 0 {
		return 0
	}
	return float32(d.Seconds())
}

// easeOrLinear returns fn, or ease.Linear when fn is nil.
func easeOrLinear(fn ease.TweenFunc) ease.TweenFunc {
	if fn == nil {
		return ease.Linear
	}
	return fn
}
