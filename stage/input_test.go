package stage

import (
	"testing"

	"github.com/phanxgames/treechart"
)

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// --- Hit testing ---

func markerAt(s *Scene, id int, x, y float64) *Node {
	m := NewMarker("m", id)
	m.X, m.Y = x, y
	m.Radius = 4.5
	s.markers.AddChild(m)
	s.markerByID[id] = m
	return m
}

func TestHitTestMarkerUsesMinimumRadius(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 1, 100, 100)

	if got := s.hitTest(106, 100); got != m {
		t.Errorf("hitTest 6px from centre = %v, want marker", got)
	}
	if got := s.hitTest(110, 100); got != nil {
		t.Errorf("hitTest 10px from centre = %v, want nil", got)
	}
}

func TestHitTestMarkerLabel(t *testing.T) {
	s := NewScene()
	start := markerAt(s, 1, 100, 100)
	start.Label, start.LabelOffset, start.TextAlpha = "visibility", 13, 1
	end := markerAt(s, 2, 300, 100)
	end.Label, end.LabelOffset, end.TextAlpha = "todos", -13, 1
	end.Anchor = treechart.AnchorEnd

	sw, _ := s.labelFont().MeasureString(start.Label)
	ew, _ := s.labelFont().MeasureString(end.Label)
	if sw <= 0 || ew <= 0 {
		t.Fatalf("label widths = %f, %f", sw, ew)
	}

	if got := s.hitTest(100+13+sw/2, 100); got != start {
		t.Errorf("hitTest on start-anchored label = %v, want marker 1", got)
	}
	if got := s.hitTest(300-13-ew/2, 101); got != end {
		t.Errorf("hitTest on end-anchored label = %v, want marker 2", got)
	}
	if got := s.hitTest(100+13+sw+5, 100); got != nil {
		t.Errorf("hitTest past the label = %v, want nil", got)
	}
	if got := s.hitTest(100-13-5, 100); got != nil {
		t.Errorf("hitTest on the wrong side = %v, want nil", got)
	}

	start.TextAlpha = 0
	if got := s.hitTest(100+13+sw/2, 100); got != nil {
		t.Errorf("hitTest on a hidden label = %v, want nil", got)
	}
}

func TestSetDragDeadZone(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 1, 50, 50)
	clicks := 0
	m.OnClick = func(ClickContext) { clicks++ }

	s.SetDragDeadZone(20)
	s.processPointer(50, 50, true, MouseButtonLeft)
	s.processPointer(50, 60, true, MouseButtonLeft)
	s.processPointer(50, 50, false, MouseButtonLeft)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1 with a 20px dead zone", clicks)
	}

	s.SetDragDeadZone(1)
	s.processPointer(50, 50, true, MouseButtonLeft)
	s.processPointer(52, 50, true, MouseButtonLeft)
	s.processPointer(50, 50, false, MouseButtonLeft)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1 after a drag past a 1px dead zone", clicks)
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	s := NewScene()
	markerAt(s, 1, 100, 100)
	top := markerAt(s, 2, 102, 100)

	if got := s.hitTest(101, 100); got != top {
		t.Errorf("hitTest = %v, want the later (topmost) marker", got)
	}
}

func TestHitTestSkipsNonInteractable(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 1, 100, 100)
	m.Interactable = false

	if got := s.hitTest(100, 100); got != nil {
		t.Errorf("hitTest = %v, want nil for non-interactable marker", got)
	}
}

func TestHitTestAppliesRootOffset(t *testing.T) {
	s := NewScene()
	s.root.X, s.root.Y = 40, 10
	m := markerAt(s, 1, 100, 100)

	if got := s.hitTest(140, 110); got != m {
		t.Errorf("hitTest = %v, want marker at offset position", got)
	}
	if got := s.hitTest(100, 100); got != nil {
		t.Errorf("hitTest at local coords = %v, want nil", got)
	}
}

func TestLinksAreNotHittable(t *testing.T) {
	s := NewScene()
	l := NewLink("l", 1)
	s.links.AddChild(l)

	if got := s.hitTest(0, 0); got != nil {
		t.Errorf("hitTest = %v, want nil", got)
	}
}

// --- Pointer state machine ---

func TestClickFiresOnPressRelease(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 7, 50, 50)

	var got []int
	m.OnClick = func(ctx ClickContext) { got = append(got, ctx.ChartID) }

	s.processPointer(50, 50, true, MouseButtonLeft)
	if len(got) != 0 {
		t.Fatal("click should not fire on press")
	}
	s.processPointer(50, 50, false, MouseButtonLeft)
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("clicks = %v, want [7]", got)
	}
}

func TestClickRequiresSameNode(t *testing.T) {
	s := NewScene()
	a := markerAt(s, 1, 50, 50)
	markerAt(s, 2, 150, 50)

	clicked := false
	a.OnClick = func(ClickContext) { clicked = true }

	s.processPointer(50, 50, true, MouseButtonLeft)
	s.processPointer(150, 50, true, MouseButtonLeft)
	s.processPointer(150, 50, false, MouseButtonLeft)

	if clicked {
		t.Error("click should not fire when released over another node")
	}
}

func TestDragPastDeadZoneSuppressesClick(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 1, 50, 50)
	m.HitShape = HitRect{X: -50, Y: -50, Width: 100, Height: 100}

	clicked := false
	m.OnClick = func(ClickContext) { clicked = true }

	s.processPointer(50, 50, true, MouseButtonLeft)
	s.processPointer(60, 50, true, MouseButtonLeft)
	s.processPointer(50, 50, false, MouseButtonLeft)

	if clicked {
		t.Error("click should not fire after a drag")
	}
}

func TestMoveWithinDeadZoneStillClicks(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 1, 50, 50)

	clicked := false
	m.OnClick = func(ClickContext) { clicked = true }

	s.processPointer(50, 50, true, MouseButtonLeft)
	s.processPointer(52, 51, true, MouseButtonLeft)
	s.processPointer(52, 51, false, MouseButtonLeft)

	if !clicked {
		t.Error("click should fire for movement inside the dead zone")
	}
}

func TestRightClickSkipsNodeHandler(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 1, 50, 50)

	nodeClicked := false
	sceneClicks := 0
	m.OnClick = func(ClickContext) { nodeClicked = true }
	s.OnClick(func(ctx ClickContext) {
		sceneClicks++
		if ctx.Button != MouseButtonRight {
			t.Errorf("Button = %v, want right", ctx.Button)
		}
	})

	s.processPointer(50, 50, true, MouseButtonRight)
	s.processPointer(50, 50, false, MouseButtonRight)

	if nodeClicked {
		t.Error("right click should not toggle")
	}
	if sceneClicks != 1 {
		t.Errorf("scene clicks = %d, want 1", sceneClicks)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := NewScene()
	markerAt(s, 1, 50, 50)

	count := 0
	h := s.OnClick(func(ClickContext) { count++ })
	h.Remove()

	s.processPointer(50, 50, true, MouseButtonLeft)
	s.processPointer(50, 50, false, MouseButtonLeft)

	if count != 0 {
		t.Errorf("count = %d, want 0 after Remove", count)
	}
	if len(s.handlers.click) != 0 {
		t.Errorf("handlers = %d, want 0", len(s.handlers.click))
	}
}
