package stage

import (
	"testing"

	"github.com/phanxgames/treechart"
)

func TestInjectClick(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 3, 50, 50)

	var clicked bool
	s.OnClick(func(ctx ClickContext) {
		clicked = true
		if ctx.Node != m {
			t.Error("expected marker node")
		}
	})

	s.InjectClick(50, 50)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}

	// Frame 1: press
	s.processInput()
	if len(s.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(s.injectQueue))
	}
	if clicked {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release fires the click
	s.processInput()
	if len(s.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(s.injectQueue))
	}
	if !clicked {
		t.Error("click should fire on release frame")
	}
}

func TestInjectDragDoesNotClick(t *testing.T) {
	s := NewScene()
	m := markerAt(s, 1, 10, 10)
	m.HitShape = HitRect{X: -10, Y: -10, Width: 400, Height: 400}

	clicked := false
	m.OnClick = func(ClickContext) { clicked = true }

	s.InjectPress(10, 10)
	s.InjectMove(100, 100)
	s.InjectRelease(10, 10)
	for len(s.injectQueue) > 0 {
		s.processInput()
	}

	if clicked {
		t.Error("drag should not produce a click")
	}
}

func TestInjectNodeClickTogglesChart(t *testing.T) {
	s, c := newTestChart(t)
	s.Tick(1.0)

	a := c.Find("state/a")
	if !s.InjectNodeClick(a.ID) {
		t.Fatal("InjectNodeClick should find the marker")
	}
	s.processInput()
	s.processInput()

	if a.Shape() != treechart.ShapeCollapsed {
		t.Errorf("shape = %v, want collapsed after click", a.Shape())
	}
}

func TestInjectNodeClickUnknownID(t *testing.T) {
	s := NewScene()
	if s.InjectNodeClick(42) {
		t.Error("InjectNodeClick should report false for an unknown node")
	}
	if len(s.injectQueue) != 0 {
		t.Errorf("queue = %d, want 0", len(s.injectQueue))
	}
}
