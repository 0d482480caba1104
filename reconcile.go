package treechart

import (
	"sort"
	"time"

	"github.com/tanema/gween/ease"
)

// TransitionKind classifies a drawn element against the previous render.
type TransitionKind uint8

const (
	Enter  TransitionKind = iota // new element, grows out of the anchor
	Update                       // element present before and after
	Exit                         // element no longer visible, shrinks into the anchor
)

// String implements fmt.Stringer.
func (k TransitionKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Update:
		return "update"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// NodeVisual is the drawn state of one tree node.
type NodeVisual struct {
	Pos         Vec2
	Radius      float64
	Fill        Color
	Shape       NodeShape
	Label       string
	LabelOffset float64
	Anchor      TextAnchor
	TextOpacity float64
	Value       any
}

// NodeTransition describes one node's animation from From to To. Exit
// transitions end with the element removed from the scene.
type NodeTransition struct {
	ID       int
	Kind     TransitionKind
	From, To NodeVisual
	Duration time.Duration
	Ease     ease.TweenFunc
}

// Remove reports whether the element should be dropped once the
// transition completes.
func (t NodeTransition) Remove() bool { return t.Kind == Exit }

// LinkTransition describes one link's animation. Links are keyed by the ID
// of their target node.
type LinkTransition struct {
	TargetID int
	SourceID int
	Kind     TransitionKind
	From, To Diagonal
	Duration time.Duration
	Ease     ease.TweenFunc
}

// Remove reports whether the link should be dropped once the transition
// completes.
func (t LinkTransition) Remove() bool { return t.Kind == Exit }

// Plan is the set of transitions produced by one update. Surfaces may run
// them in any order and need not finish one before starting another.
type Plan struct {
	// AnchorID is the node the update was anchored at.
	AnchorID int
	Nodes    []NodeTransition
	Links    []LinkTransition
}

// Tally counts node and link transitions of the given kind.
func (p *Plan) Tally(kind TransitionKind) (nodes, links int) {
	for _, t := range p.Nodes {
		if t.Kind == kind {
			nodes++
		}
	}
	for _, t := range p.Links {
		if t.Kind == kind {
			links++
		}
	}
	return nodes, links
}

// LinkState is a drawn link.
type LinkState struct {
	SourceID int
	Path     Diagonal
}

// Frame is the settled scene after a plan completes: what is on screen
// once all transitions have finished. It is the "previous" scene the next
// Reconcile diffs against.
type Frame struct {
	Nodes map[int]NodeVisual
	Links map[int]LinkState
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{
		Nodes: make(map[int]NodeVisual),
		Links: make(map[int]LinkState),
	}
}

// NodeIDs returns the IDs of the frame's nodes in ascending order.
func (f *Frame) NodeIDs() []int {
	return sortedKeys(f.Nodes)
}

// LinkIDs returns the target IDs of the frame's links in ascending order.
func (f *Frame) LinkIDs() []int {
	return sortedKeys(f.Links)
}

func sortedKeys[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Timing sets the duration and easing of every transition of a plan.
type Timing struct {
	Duration time.Duration
	Ease     ease.TweenFunc
}

// DefaultEase matches the cubic in-out easing of the original chart.
var DefaultEase ease.TweenFunc = ease.InOutCubic

// DrawPoint maps layout coordinates to drawing space. The layout's
// secondary axis runs down the canvas and its depth axis to the right,
// which turns the tree on its side.
func DrawPoint(x, y float64) Vec2 {
	return Vec2{X: y, Y: x}
}

// VisualFor returns the settled visual of a laid-out node.
func VisualFor(n *TreeNode) NodeVisual {
	shape := n.Shape()
	v := NodeVisual{
		Pos:         DrawPoint(n.X, n.Y),
		Radius:      NodeRadius,
		Fill:        shape.Fill(),
		Shape:       shape,
		Label:       n.Name,
		LabelOffset: LabelOffset,
		Anchor:      AnchorStart,
		TextOpacity: 1,
		Value:       n.Value,
	}
	if shape != ShapeLeaf {
		v.LabelOffset = -LabelOffset
		v.Anchor = AnchorEnd
	}
	return v
}

// hidden returns v shrunk to nothing at p.
func (v NodeVisual) hidden(p Vec2) NodeVisual {
	v.Pos = p
	v.Radius = 0
	v.TextOpacity = 0
	return v
}

// Reconcile diffs the laid-out tree against prev and returns the
// transitions that carry the scene from prev to the new layout, together
// with the frame the scene settles into.
//
// Entering elements start collapsed at the anchor's previous position;
// exiting elements collapse into the anchor's current position. The layout
// must have been applied (Layout.Apply) and anchor must be part of it.
// As a final step every laid-out node's previous position is set to its
// current one, so the next call animates from here.
func Reconcile(prev *Frame, layout *Layout, anchor *TreeNode, timing Timing) (*Plan, *Frame) {
	if prev == nil {
		prev = NewFrame()
	}
	if timing.Ease == nil {
		timing.Ease = DefaultEase
	}
	next := NewFrame()
	plan := &Plan{AnchorID: anchor.ID}

	enterFrom := DrawPoint(anchor.X0, anchor.Y0)
	exitTo := DrawPoint(anchor.X, anchor.Y)

	for _, n := range layout.Nodes {
		to := VisualFor(n)
		t := NodeTransition{ID: n.ID, To: to, Duration: timing.Duration, Ease: timing.Ease}
		if old, ok := prev.Nodes[n.ID]; ok {
			t.Kind = Update
			t.From = old
			t.From.Pos = DrawPoint(n.X0, n.Y0)
		} else {
			t.Kind = Enter
			t.From = to.hidden(enterFrom)
		}
		plan.Nodes = append(plan.Nodes, t)
		next.Nodes[n.ID] = to
	}
	for _, id := range prev.NodeIDs() {
		if _, ok := next.Nodes[id]; ok {
			continue
		}
		old := prev.Nodes[id]
		plan.Nodes = append(plan.Nodes, NodeTransition{
			ID:       id,
			Kind:     Exit,
			From:     old,
			To:       old.hidden(exitTo),
			Duration: timing.Duration,
			Ease:     timing.Ease,
		})
	}

	for _, link := range layout.Links {
		to := NewDiagonal(DrawPoint(link.Source.X, link.Source.Y), DrawPoint(link.Target.X, link.Target.Y))
		t := LinkTransition{
			TargetID: link.Target.ID,
			SourceID: link.Source.ID,
			To:       to,
			Duration: timing.Duration,
			Ease:     timing.Ease,
		}
		if old, ok := prev.Links[link.Target.ID]; ok {
			t.Kind = Update
			t.From = old.Path
		} else {
			t.Kind = Enter
			t.From = PointDiagonal(enterFrom)
		}
		plan.Links = append(plan.Links, t)
		next.Links[link.Target.ID] = LinkState{SourceID: link.Source.ID, Path: to}
	}
	for _, id := range prev.LinkIDs() {
		if _, ok := next.Links[id]; ok {
			continue
		}
		old := prev.Links[id]
		plan.Links = append(plan.Links, LinkTransition{
			TargetID: id,
			SourceID: old.SourceID,
			Kind:     Exit,
			From:     old.Path,
			To:       PointDiagonal(exitTo),
			Duration: timing.Duration,
			Ease:     timing.Ease,
		})
	}

	for _, n := range layout.Nodes {
		n.X0 = n.X
		n.Y0 = n.Y
	}
	return plan, next
}
