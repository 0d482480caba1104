package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/treechart"
)

const (
	strokeWidth = 1.5

	// curveSegments is how many straight segments approximate a link.
	curveSegments = 24
)

// draw renders n and its subtree in painter order.
func (s *Scene) draw(dst *ebiten.Image, n *Node) {
	if !n.Visible || n.Alpha <= 0 {
		return
	}
	switch n.Type {
	case NodeTypeMarker:
		s.drawMarker(dst, n)
	case NodeTypeLink:
		s.drawLink(dst, n)
	}
	for _, child := range n.children {
		s.draw(dst, child)
	}
}

func (s *Scene) drawMarker(dst *ebiten.Image, n *Node) {
	x, y := n.WorldPosition()
	if n.Radius > 0 {
		cx, cy, r := float32(x), float32(y), float32(n.Radius)
		vector.DrawFilledCircle(dst, cx, cy, r, toRGBA(n.Fill, n.Alpha), true)
		vector.StrokeCircle(dst, cx, cy, r, strokeWidth, toRGBA(n.Stroke, n.Alpha), true)
	}
	if n.Label == "" || n.TextAlpha <= 0 {
		return
	}

	f := s.labelFont()
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+n.LabelOffset, y)
	op.ColorScale.ScaleWithColor(toRGBA(treechart.Color{A: 1}, n.TextAlpha*n.Alpha))
	op.LineSpacing = f.lh
	op.PrimaryAlign = text.AlignStart
	if n.Anchor == treechart.AnchorEnd {
		op.PrimaryAlign = text.AlignEnd
	}
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, n.Label, f.face, op)
}

func (s *Scene) drawLink(dst *ebiten.Image, n *Node) {
	ox, oy := n.WorldPosition()
	clr := toRGBA(treechart.ColorLink, n.Alpha)
	prev := n.Curve.At(0)
	for i := 1; i <= curveSegments; i++ {
		p := n.Curve.At(float64(i) / curveSegments)
		vector.StrokeLine(dst,
			float32(ox+prev.X), float32(oy+prev.Y),
			float32(ox+p.X), float32(oy+p.Y),
			strokeWidth, clr, true)
		prev = p
	}
}

func (s *Scene) labelFont() *Font {
	if s.font == nil {
		return DefaultFont()
	}
	return s.font
}
