package treechart

// Toggle flips the node between expanded and collapsed by moving its child
// list between Children and HiddenChildren. Leaves are left untouched. The
// same node is returned so callers can re-render anchored at it.
func Toggle(n *TreeNode) *TreeNode {
	switch {
	case len(n.Children) > 0:
		n.HiddenChildren = n.Children
		n.Children = nil
	case len(n.HiddenChildren) > 0:
		n.Children = n.HiddenChildren
		n.HiddenChildren = nil
	}
	return n
}

// Collapse hides the node's children if they are visible.
func Collapse(n *TreeNode) {
	if n.Shape() == ShapeExpanded {
		Toggle(n)
	}
}

// Expand shows the node's children if they are hidden.
func Expand(n *TreeNode) {
	if n.Shape() == ShapeCollapsed {
		Toggle(n)
	}
}
