package treechart

import "fmt"

// Vec2 is a 2D point in drawing space (X to the right, Y downward).
type Vec2 struct {
	X, Y float64
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Fill colors for the three node shapes.
var (
	ColorCollapsed = Color{R: 176.0 / 255, G: 196.0 / 255, B: 222.0 / 255, A: 1} // lightsteelblue
	ColorLeaf      = Color{R: 0xcc / 255.0, G: 0xcc / 255.0, B: 0xcc / 255.0, A: 1}
	ColorExpanded  = Color{R: 1, G: 1, B: 1, A: 1}
	ColorStroke    = Color{R: 70.0 / 255, G: 130.0 / 255, B: 180.0 / 255, A: 1} // steelblue
	ColorLink      = Color{R: 0xcc / 255.0, G: 0xcc / 255.0, B: 0xcc / 255.0, A: 1}
)

// Hex returns the color as a #rrggbb string. Alpha is ignored.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	b := [7]byte{'#'}
	for i, v := range [3]float64{c.R, c.G, c.B} {
		n := int(v*255 + 0.5)
		if n < 0 {
			n = 0
		} else if n > 255 {
			n = 255
		}
		b[1+2*i] = digits[n>>4]
		b[2+2*i] = digits[n&0xf]
	}
	return string(b[:])
}

// NodeShape classifies a node by which of its child lists is populated.
type NodeShape uint8

const (
	ShapeLeaf      NodeShape = iota // no children, visible or hidden
	ShapeExpanded                   // children visible
	ShapeCollapsed                  // children hidden
)

// String implements fmt.Stringer.
func (s NodeShape) String() string {
	switch s {
	case ShapeLeaf:
		return "leaf"
	case ShapeExpanded:
		return "expanded"
	case ShapeCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Fill returns the fill color drawn for nodes of this shape.
func (s NodeShape) Fill() Color {
	switch s {
	case ShapeCollapsed:
		return ColorCollapsed
	case ShapeExpanded:
		return ColorExpanded
	default:
		return ColorLeaf
	}
}

// TextAnchor controls which end of a label sits at its anchor point.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota // label extends to the right
	AnchorEnd                     // label extends to the left
)

// String returns the SVG text-anchor keyword.
func (a TextAnchor) String() string {
	if a == AnchorEnd {
		return "end"
	}
	return "start"
}

// Visual constants shared by every surface.
const (
	NodeRadius      = 4.5
	LabelOffset     = 10.0
	LabelBaselineEm = 0.35
)

// FormatValue renders a scalar state value for tooltips.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
