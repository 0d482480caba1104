package treechart

import "unicode/utf8"

// Visit walks the tree rooted at root depth first, calling fn on each node
// before its children. children selects which child list to descend into;
// returning nil or an empty slice stops descent at that node.
func Visit(root *TreeNode, fn func(*TreeNode), children func(*TreeNode) []*TreeNode) {
	if root == nil {
		return
	}
	fn(root)
	for _, child := range children(root) {
		Visit(child, fn, children)
	}
}

// VisibleChildren returns the node's expanded children, or nil.
func VisibleChildren(n *TreeNode) []*TreeNode {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children
}

// AllChildren returns whichever child list is populated.
func AllChildren(n *TreeNode) []*TreeNode {
	if len(n.Children) > 0 {
		return n.Children
	}
	if len(n.HiddenChildren) > 0 {
		return n.HiddenChildren
	}
	return nil
}

// MaxLabelLength returns the longest node name in the whole tree, in runes,
// including nodes under collapsed ancestors.
func MaxLabelLength(root *TreeNode) int {
	longest := 0
	Visit(root, func(n *TreeNode) {
		if l := utf8.RuneCountInString(n.Name); l > longest {
			longest = l
		}
	}, AllChildren)
	return longest
}

// BranchDepths returns the node count of every root-to-leaf path of the
// visible tree, in depth-first order. A lone root yields [1]; a nil root
// yields nil.
func BranchDepths(root *TreeNode) []int {
	if root == nil {
		return nil
	}
	var depths []int
	var walk func(n *TreeNode, length int)
	walk = func(n *TreeNode, length int) {
		children := VisibleChildren(n)
		if len(children) == 0 {
			depths = append(depths, length)
			return
		}
		for _, child := range children {
			walk(child, length+1)
		}
	}
	walk(root, 1)
	return depths
}

// TallestBranch returns the largest value of BranchDepths.
func TallestBranch(root *TreeNode) int {
	tallest := 0
	for _, d := range BranchDepths(root) {
		if d > tallest {
			tallest = d
		}
	}
	return tallest
}

// CountNodes returns the number of nodes reachable through children.
func CountNodes(root *TreeNode, children func(*TreeNode) []*TreeNode) int {
	count := 0
	Visit(root, func(*TreeNode) { count++ }, children)
	return count
}
