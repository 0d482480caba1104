package treechart

import (
	"strconv"
	"strings"
)

// Diagonal is the cubic Bézier drawn for a link: it leaves the source and
// enters the target horizontally, bending halfway between them.
type Diagonal struct {
	Source, C1, C2, Target Vec2
}

// NewDiagonal returns the link curve between two drawing-space points.
func NewDiagonal(source, target Vec2) Diagonal {
	mid := (source.X + target.X) / 2
	return Diagonal{
		Source: source,
		C1:     Vec2{X: mid, Y: source.Y},
		C2:     Vec2{X: mid, Y: target.Y},
		Target: target,
	}
}

// PointDiagonal returns a curve collapsed onto a single point, used as the
// start of entering links and the end of exiting ones.
func PointDiagonal(p Vec2) Diagonal {
	return Diagonal{Source: p, C1: p, C2: p, Target: p}
}

// At evaluates the curve at t in [0, 1].
func (d Diagonal) At(t float64) Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	e := t * t * t
	return Vec2{
		X: a*d.Source.X + b*d.C1.X + c*d.C2.X + e*d.Target.X,
		Y: a*d.Source.Y + b*d.C1.Y + c*d.C2.Y + e*d.Target.Y,
	}
}

// Points returns the four control points in order.
func (d Diagonal) Points() [4]Vec2 {
	return [4]Vec2{d.Source, d.C1, d.C2, d.Target}
}

// Lerp interpolates every control point between d and to.
func (d Diagonal) Lerp(to Diagonal, t float64) Diagonal {
	from, dst := d.Points(), to.Points()
	var out [4]Vec2
	for i := range out {
		out[i] = Vec2{
			X: from[i].X + (dst[i].X-from[i].X)*t,
			Y: from[i].Y + (dst[i].Y-from[i].Y)*t,
		}
	}
	return Diagonal{Source: out[0], C1: out[1], C2: out[2], Target: out[3]}
}

// SVGPath renders the curve as SVG path data ("M…C…").
func (d Diagonal) SVGPath() string {
	var b strings.Builder
	b.WriteByte('M')
	writePoint(&b, d.Source)
	b.WriteByte('C')
	writePoint(&b, d.C1)
	b.WriteByte(' ')
	writePoint(&b, d.C2)
	b.WriteByte(' ')
	writePoint(&b, d.Target)
	return b.String()
}

func writePoint(b *strings.Builder, p Vec2) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}
