package stage

import (
	"image/color"
	"testing"

	"github.com/phanxgames/treechart"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(10, 10) {
		t.Error("edge point should be inside")
	}
	if r.Contains(11, 5) {
		t.Error("point outside should not be contained")
	}
}

func TestNodeTypeString(t *testing.T) {
	tests := []struct {
		typ  NodeType
		want string
	}{
		{NodeTypeContainer, "container"},
		{NodeTypeMarker, "marker"},
		{NodeTypeLink, "link"},
		{NodeType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("NodeType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestToRGBAPremultiplies(t *testing.T) {
	tests := []struct {
		name  string
		c     treechart.Color
		alpha float64
		want  color.RGBA
	}{
		{"opaque white", treechart.Color{R: 1, G: 1, B: 1, A: 1}, 1, color.RGBA{255, 255, 255, 255}},
		{"half alpha", treechart.Color{R: 1, G: 0, B: 0, A: 1}, 0.5, color.RGBA{128, 0, 0, 128}},
		{"transparent", treechart.Color{R: 1, G: 1, B: 1, A: 0}, 1, color.RGBA{0, 0, 0, 0}},
		{"clamped", treechart.Color{R: 2, G: -1, B: 0, A: 1}, 1, color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toRGBA(tt.c, tt.alpha); got != tt.want {
				t.Errorf("toRGBA = %v, want %v", got, tt.want)
			}
		})
	}
}
