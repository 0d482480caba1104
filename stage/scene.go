package stage

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/treechart"
)

// Scene is a treechart.Surface drawn with Ebitengine. It keeps one marker
// per chart node and one link per parent-child edge as retained nodes, and
// animates each plan it receives with gween tweens.
//
// A new transition for an element replaces the one in flight and starts
// from wherever the element currently is. Exiting elements are removed
// once their transition completes.
type Scene struct {
	root    *Node
	links   *Node
	markers *Node
	debug   bool

	canvas   treechart.Canvas
	onToggle func(id int)
	mounted  bool

	markerByID map[int]*Node
	linkByID   map[int]*Node
	tweens     map[*Node]*TweenGroup
	exiting    map[*Node]bool

	// ClearColor fills the screen before drawing. Defaults to white.
	ClearColor treechart.Color

	font       *Font
	updateFunc func() error

	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// DefaultScreenshotDir.
	ScreenshotDir   string
	screenshotQueue []string
	script          *Script

	// Input state
	handlers     handlerRegistry
	pointer      pointerState
	hitBuf       []*Node
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent

	stats debugStats
}

var _ treechart.Surface = (*Scene)(nil)

// NewScene creates an empty scene. Links are drawn below markers.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	links := NewContainer("links")
	markers := NewContainer("markers")
	markers.Interactable = true
	root.AddChild(links)
	root.AddChild(markers)
	return &Scene{
		root:         root,
		links:        links,
		markers:      markers,
		markerByID:   make(map[int]*Node),
		linkByID:     make(map[int]*Node),
		tweens:       make(map[*Node]*TweenGroup),
		exiting:      make(map[*Node]bool),
		ClearColor:   Background,
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Mount implements treechart.Surface. The root is offset by the canvas
// margins so chart coordinates can be used unchanged.
func (s *Scene) Mount(canvas treechart.Canvas, onToggle func(id int)) {
	s.canvas = canvas
	s.onToggle = onToggle
	s.mounted = true
	origin := canvas.Origin()
	s.root.X, s.root.Y = origin.X, origin.Y
}

// Canvas returns the mounted canvas.
func (s *Scene) Canvas() treechart.Canvas {
	return s.canvas
}

// Apply implements treechart.Surface.
func (s *Scene) Apply(plan *treechart.Plan) {
	for _, t := range plan.Links {
		s.applyLink(t)
	}
	for _, t := range plan.Nodes {
		s.applyNode(t)
	}
}

func (s *Scene) applyNode(t treechart.NodeTransition) {
	n := s.markerByID[t.ID]
	if n == nil {
		if t.Kind == treechart.Exit {
			return
		}
		n = NewMarker(fmt.Sprintf("node-%d", t.ID), t.ID)
		n.applyVisual(t.From)
		id := t.ID
		n.OnClick = func(ClickContext) { s.toggle(id) }
		s.attach(s.markers, n)
		s.markerByID[t.ID] = n
	}
	if t.Kind == treechart.Exit {
		s.exiting[n] = true
		n.Interactable = false
	} else {
		delete(s.exiting, n)
		n.Interactable = true
	}
	s.tweens[n] = TweenMarker(n, t.To, seconds(t.Duration), easeOrLinear(t.Ease))
}

func (s *Scene) applyLink(t treechart.LinkTransition) {
	n := s.linkByID[t.TargetID]
	if n == nil {
		if t.Kind == treechart.Exit {
			return
		}
		n = NewLink(fmt.Sprintf("link-%d", t.TargetID), t.TargetID)
		n.Curve = t.From
		s.attach(s.links, n)
		s.linkByID[t.TargetID] = n
	}
	if t.Kind == treechart.Exit {
		s.exiting[n] = true
	} else {
		delete(s.exiting, n)
	}
	s.tweens[n] = TweenLink(n, t.To, seconds(t.Duration), easeOrLinear(t.Ease))
}

func (s *Scene) toggle(id int) {
	if s.onToggle != nil {
		s.onToggle(id)
	}
}

// Tick advances every running transition by dt seconds and removes exited
// elements whose transition has completed.
func (s *Scene) Tick(dt float32) {
	if dt <= 0 {
		return
	}
	for n, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			continue
		}
		delete(s.tweens, n)
		if s.exiting[n] {
			s.remove(n)
		}
	}
}

func (s *Scene) remove(n *Node) {
	delete(s.exiting, n)
	switch n.Type {
	case NodeTypeMarker:
		if s.markerByID[n.ChartID] == n {
			delete(s.markerByID, n.ChartID)
		}
	case NodeTypeLink:
		if s.linkByID[n.ChartID] == n {
			delete(s.linkByID, n.ChartID)
		}
	}
	n.Dispose()
}

// Animating reports whether any transition is still running.
func (s *Scene) Animating() bool {
	return len(s.tweens) > 0
}

// Marker returns the marker drawn for the chart node with the given ID, or
// nil.
func (s *Scene) Marker(id int) *Node { return s.markerByID[id] }

// Link returns the link ending at the chart node with the given ID, or nil.
func (s *Scene) Link(id int) *Node { return s.linkByID[id] }

// NumMarkers returns the number of markers in the scene, exiting ones
// included.
func (s *Scene) NumMarkers() int { return len(s.markerByID) }

// NumLinks returns the number of links in the scene, exiting ones included.
func (s *Scene) NumLinks() int { return len(s.linkByID) }

// SetUpdateFunc sets a function called once per frame after transitions and
// input have been processed. An error stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetFont sets the label font. A nil font restores the default.
func (s *Scene) SetFont(f *Font) {
	s.font = f
}

// Update advances transitions, runs the attached script, processes input,
// then calls the update function.
func (s *Scene) Update() error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.Tick(float32(1.0 / float64(ebiten.TPS())))
	if s.script != nil {
		s.script.step(s)
	}
	s.processInput()

	if s.debug {
		s.stats.updateTime = time.Since(t0)
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw clears the screen and draws links, then markers.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(toRGBA(s.ClearColor, 1))
	s.draw(screen, s.root)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.markers = len(s.markerByID)
		s.stats.links = len(s.linkByID)
		s.stats.tweens = len(s.tweens)
		s.stats.exiting = len(s.exiting)
		s.debugLog(s.stats)
	}
	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables debug mode. When enabled, attaching a
// disposed node panics and per-frame stats are logged to stderr. The flag
// is per scene.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// attach adds child under parent, checking for disposed nodes in debug mode.
func (s *Scene) attach(parent, child *Node) {
	if s.debug {
		debugCheckDisposed(parent, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	parent.AddChild(child)
}
