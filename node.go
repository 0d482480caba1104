package treechart

// TreeNode is one node of the chart's hierarchy.
//
// Children and HiddenChildren are never both non-empty: an expanded node
// keeps its children in Children, a collapsed node keeps them in
// HiddenChildren, and a leaf has neither.
type TreeNode struct {
	Name  string
	Value any

	// ID is zero until the node is first rendered. Once assigned it never
	// changes.
	ID int

	// Path is the node's stable key in the source state.
	Path string

	Children       []*TreeNode
	HiddenChildren []*TreeNode

	// Layout output. X runs along the secondary (sibling) axis, Y along the
	// primary (depth) axis.
	Depth int
	X, Y  float64

	// Position from the previous render, used as animation origin.
	X0, Y0 float64
}

// Shape reports whether the node is a leaf, expanded or collapsed.
func (n *TreeNode) Shape() NodeShape {
	switch {
	case len(n.Children) > 0:
		return ShapeExpanded
	case len(n.HiddenChildren) > 0:
		return ShapeCollapsed
	default:
		return ShapeLeaf
	}
}

// IsLeaf reports whether the node has no children, visible or hidden.
func (n *TreeNode) IsLeaf() bool {
	return n.Shape() == ShapeLeaf
}

// Position returns the node's current layout coordinates.
func (n *TreeNode) Position() Position {
	return Position{X: n.X, Y: n.Y, Depth: n.Depth}
}

// IDCounter hands out node IDs. Each Chart owns one, so IDs are unique per
// chart and start at 1.
type IDCounter struct {
	last int
}

// Next returns a fresh ID.
func (c *IDCounter) Next() int {
	c.last++
	return c.last
}

// Last returns the most recently issued ID, or 0.
func (c *IDCounter) Last() int {
	return c.last
}

// EnsureID assigns the node an ID from counter if it has none and returns
// the node's ID.
func EnsureID(n *TreeNode, counter *IDCounter) int {
	if n.ID == 0 {
		n.ID = counter.Next()
	}
	return n.ID
}
