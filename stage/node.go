package stage

import (
	"github.com/phanxgames/treechart"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// Node is a scene element. A single flat struct is used for markers, links
// and containers.
type Node struct {
	// Identity
	Name string
	Type NodeType

	// ChartID is the treechart node ID a marker draws, or the target node
	// ID of a link.
	ChartID int

	// Hierarchy
	Parent   *Node
	children []*Node

	// Position relative to the parent.
	X, Y float64

	Alpha        float64
	Visible      bool
	Interactable bool

	// Marker fields (NodeTypeMarker)
	Radius      float64
	Fill        treechart.Color
	Stroke      treechart.Color
	Label       string
	LabelOffset float64
	Anchor      treechart.TextAnchor
	TextAlpha   float64
	Title       string

	// Link fields (NodeTypeLink)
	Curve treechart.Diagonal

	// Hit testing
	HitShape HitShape

	OnClick func(ClickContext)

	disposed bool
}

func nodeDefaults(n *Node) {
	n.Alpha = 1
	n.Visible = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewMarker creates a marker for the chart node with the given ID. Markers
// are interactable.
func NewMarker(name string, chartID int) *Node {
	n := &Node{
		Name:         name,
		Type:         NodeTypeMarker,
		ChartID:      chartID,
		Interactable: true,
		Stroke:       treechart.ColorStroke,
	}
	nodeDefaults(n)
	return n
}

// NewLink creates a link ending at the chart node with the given ID.
func NewLink(name string, targetID int) *Node {
	n := &Node{Name: name, Type: NodeTypeLink, ChartID: targetID}
	nodeDefaults(n)
	return n
}

// applyVisual copies a chart visual onto a marker.
func (n *Node) applyVisual(v treechart.NodeVisual) {
	n.X, n.Y = v.Pos.X, v.Pos.Y
	n.Radius = v.Radius
	n.Fill = v.Fill
	n.TextAlpha = v.TextOpacity
	n.applyLabel(v)
}

// applyLabel sets the parts of a visual that are not animated.
func (n *Node) applyLabel(v treechart.NodeVisual) {
	n.Label = v.Label
	n.LabelOffset = v.LabelOffset
	n.Anchor = v.Anchor
	n.Title = ""
	if v.Value != nil {
		n.Title = treechart.FormatValue(v.Value)
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("stage: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("stage: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("stage: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Coordinates ---

// WorldPosition returns the node's position in screen space.
func (n *Node) WorldPosition() (float64, float64) {
	var x, y float64
	for p := n; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// WorldToLocal converts a screen-space point into this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (float64, float64) {
	x, y := n.WorldPosition()
	return wx - x, wy - y
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.OnClick = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
