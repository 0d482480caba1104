package stage

import (
	"image/color"

	"github.com/phanxgames/treechart"
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeMarker                    // tree node: circle plus label
	NodeTypeLink                      // parent-child curve
)

// String implements fmt.Stringer.
func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "container"
	case NodeTypeMarker:
		return "marker"
	case NodeTypeLink:
		return "link"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// ClickContext carries click event data.
type ClickContext struct {
	Node    *Node
	ChartID int
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	Button  MouseButton
}

// Background is the default clear color.
var Background = treechart.Color{R: 1, G: 1, B: 1, A: 1}

// toRGBA converts c to a premultiplied color.RGBA, scaled by alpha.
func toRGBA(c treechart.Color, alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
