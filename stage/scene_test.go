package stage

import (
	"math"
	"testing"

	"github.com/phanxgames/treechart"
)

func newTestChart(t *testing.T) (*Scene, *treechart.Chart) {
	t.Helper()
	s := NewScene()
	c := treechart.New(treechart.Config{Size: 600, Logger: treechart.NoopLogger{}}, s)
	state := treechart.Map{
		{Key: "a", Value: treechart.Map{{Key: "b", Value: 1}}},
		{Key: "c", Value: 2},
	}
	c.RenderChart(state)
	return s, c
}

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.root == nil {
		t.Fatal("root should not be nil")
	}
	if s.root.Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.root.Name, "root")
	}
	if s.root.Type != NodeTypeContainer {
		t.Errorf("root.Type = %v, want container", s.root.Type)
	}
	if got := s.root.NumChildren(); got != 2 {
		t.Fatalf("root children = %d, want 2 (links, markers)", got)
	}
	if s.root.Children()[0] != s.links {
		t.Error("links layer should be drawn first")
	}
}

func TestSceneMountOffsetsRoot(t *testing.T) {
	s, c := newTestChart(t)
	m := c.Canvas().Margin
	if s.root.X != m.Left || s.root.Y != m.Top {
		t.Errorf("root = (%f, %f), want margin (%f, %f)", s.root.X, s.root.Y, m.Left, m.Top)
	}
}

func TestSceneApplyCreatesElements(t *testing.T) {
	s, _ := newTestChart(t)
	if got := s.NumMarkers(); got != 4 {
		t.Errorf("NumMarkers = %d, want 4", got)
	}
	if got := s.NumLinks(); got != 3 {
		t.Errorf("NumLinks = %d, want 3", got)
	}
	if !s.Animating() {
		t.Error("scene should be animating after the first render")
	}
}

func TestSceneSettlesOnFrame(t *testing.T) {
	s, c := newTestChart(t)
	s.Tick(1.0)

	if s.Animating() {
		t.Fatal("tweens should be finished after 1s")
	}
	for id, v := range c.Frame().Nodes {
		m := s.Marker(id)
		if m == nil {
			t.Fatalf("no marker for node %d", id)
		}
		if math.Abs(m.X-v.Pos.X) > 0.5 || math.Abs(m.Y-v.Pos.Y) > 0.5 {
			t.Errorf("marker %d at (%f, %f), want ~(%f, %f)", id, m.X, m.Y, v.Pos.X, v.Pos.Y)
		}
		if math.Abs(m.Radius-treechart.NodeRadius) > 0.01 {
			t.Errorf("marker %d radius = %f, want %f", id, m.Radius, treechart.NodeRadius)
		}
	}
}

func TestSceneExitRemovesAfterTween(t *testing.T) {
	s, c := newTestChart(t)
	s.Tick(1.0)

	a := c.Find("state/a")
	b := c.Find("state/a/b")
	if !c.Toggle(a.ID) {
		t.Fatal("toggle should report a change")
	}

	if s.Marker(b.ID) == nil {
		t.Fatal("exiting marker should stay until its tween finishes")
	}
	if s.Marker(b.ID).Interactable {
		t.Error("exiting marker should not be interactable")
	}

	s.Tick(0.3)
	if s.Marker(b.ID) == nil {
		t.Fatal("exiting marker removed too early")
	}

	s.Tick(1.0)
	if s.Marker(b.ID) != nil {
		t.Error("exiting marker should be removed")
	}
	if s.Link(b.ID) != nil {
		t.Error("exiting link should be removed")
	}
	if got := s.NumMarkers(); got != 3 {
		t.Errorf("NumMarkers = %d, want 3", got)
	}
}

func TestSceneReenterSupersedesExit(t *testing.T) {
	s, c := newTestChart(t)
	s.Tick(1.0)

	a := c.Find("state/a")
	b := c.Find("state/a/b")
	c.Toggle(a.ID)
	s.Tick(0.2)
	marker := s.Marker(b.ID)

	c.Toggle(a.ID)
	if s.Marker(b.ID) != marker {
		t.Fatal("re-entering node should reuse its exiting marker")
	}
	s.Tick(1.0)

	if s.Marker(b.ID) == nil {
		t.Fatal("re-entered marker should survive the superseded exit")
	}
	want := c.Frame().Nodes[b.ID].Pos
	if math.Abs(marker.X-want.X) > 0.5 || math.Abs(marker.Y-want.Y) > 0.5 {
		t.Errorf("marker at (%f, %f), want ~(%f, %f)", marker.X, marker.Y, want.X, want.Y)
	}
}

func TestSceneTickIgnoresNonPositive(t *testing.T) {
	s, _ := newTestChart(t)
	n := len(s.tweens)
	s.Tick(0)
	s.Tick(-1)
	if len(s.tweens) != n {
		t.Errorf("tweens = %d, want %d", len(s.tweens), n)
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug {
		t.Error("debug should be false")
	}
}

func TestSceneSetUpdateFunc(t *testing.T) {
	s := NewScene()
	called := 0
	s.SetUpdateFunc(func() error {
		called++
		return nil
	})
	if err := s.updateFunc(); err != nil {
		t.Fatal(err)
	}
	if called != 1 {
		t.Errorf("called = %d, want 1", called)
	}
}

func TestNewGameAppliesRunConfig(t *testing.T) {
	s, _ := newTestChart(t)
	g := newGame(s, RunConfig{DragDeadZone: 12})
	if s.dragDeadZone != 12 {
		t.Errorf("dragDeadZone = %f, want 12", s.dragDeadZone)
	}
	if g.w != int(s.canvas.FullWidth) || g.h != int(s.canvas.FullHeight) {
		t.Errorf("window = %dx%d, want the canvas size", g.w, g.h)
	}

	g = newGame(NewScene(), RunConfig{})
	if g.w != 640 || g.h != 480 {
		t.Errorf("window = %dx%d, want 640x480 for an unmounted scene", g.w, g.h)
	}
	if d := g.scene.dragDeadZone; d != defaultDragDeadZone {
		t.Errorf("dragDeadZone = %f, want the default", d)
	}
}
