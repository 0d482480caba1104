package treechart

import (
	"fmt"
	"sort"
	"strings"
)

// branchPadding is added to the tallest branch length when sizing the
// secondary axis.
const branchPadding = 120

// Position is a node's place in layout space. X runs along the secondary
// axis (drawn vertically), Y along the primary axis (drawn horizontally).
type Position struct {
	X, Y  float64
	Depth int
}

// LayoutOptions configures ComputeLayout.
type LayoutOptions struct {
	// MaxLabelLength is the longest label of the tree, usually measured
	// with MaxLabelLength over the whole tree.
	MaxLabelLength int

	WidthBetweenBranchCoeff float64
	HeightBetweenNodesCoeff float64

	// Sorted orders siblings by case-insensitive name. Otherwise siblings
	// keep their order in Children.
	Sorted bool
}

// Layout is the result of ComputeLayout. It is a fresh value on every call
// and shares nothing with earlier layouts.
type Layout struct {
	// Nodes lists the visible nodes in depth-first pre-order, siblings in
	// layout order.
	Nodes []*TreeNode
	// Links holds one parent→child edge per visible non-root node, in the
	// same order as Nodes.
	Links []Link
	// Positions maps node ID to its computed position.
	Positions map[int]Position

	TallestBranch int
	// Extent is the size of the secondary axis the nodes were spread over.
	Extent float64
	// LevelSpacing is the primary-axis distance between adjacent depths.
	LevelSpacing float64
}

// Link is a parent→child edge of the visible tree.
type Link struct {
	Source, Target *TreeNode
}

// Position returns the position of the node with the given ID.
func (l *Layout) Position(id int) (Position, bool) {
	p, ok := l.Positions[id]
	return p, ok
}

// Apply copies Depth, X and Y from the layout onto its nodes.
func (l *Layout) Apply() {
	for _, n := range l.Nodes {
		p := l.Positions[n.ID]
		n.Depth = p.Depth
		n.X = p.X
		n.Y = p.Y
	}
}

// Children returns node's children in layout order.
func (l *Layout) Children(n *TreeNode) []*TreeNode {
	var out []*TreeNode
	for _, link := range l.Links {
		if link.Source == n {
			out = append(out, link.Target)
		}
	}
	return out
}

// ComputeLayout positions the visible tree rooted at root. Every visible
// node must already carry an ID (see EnsureID). The tree is not modified.
func ComputeLayout(root *TreeNode, opts LayoutOptions) *Layout {
	if opts.WidthBetweenBranchCoeff <= 0 {
		opts.WidthBetweenBranchCoeff = 1
	}
	if opts.HeightBetweenNodesCoeff <= 0 {
		opts.HeightBetweenNodesCoeff = 1
	}
	if opts.MaxLabelLength <= 0 {
		opts.MaxLabelLength = 1
	}

	tallest := TallestBranch(root)
	l := &Layout{
		Positions:     make(map[int]Position),
		TallestBranch: tallest,
		Extent:        float64(tallest+branchPadding) * opts.WidthBetweenBranchCoeff,
		LevelSpacing:  float64(opts.MaxLabelLength*tallest) * opts.HeightBetweenNodesCoeff,
	}
	if root == nil {
		return l
	}

	w := wrapTree(root, opts.Sorted)
	visitAfter(w, firstWalk)
	w.parent.m = -w.z
	visitBefore(w, secondWalk)

	// Normalise to the extent the same way d3's tree layout does: the
	// leftmost and rightmost nodes get half a separation of margin.
	left, right := w, w
	visitBefore(w, func(v *walkNode) {
		if v.x < left.x {
			left = v
		}
		if v.x > right.x {
			right = v
		}
	})
	tx := separation(left, right)/2 - left.x
	kx := l.Extent / (right.x + separation(right, left)/2 + tx)

	visitBefore(w, func(v *walkNode) {
		n := v.node
		if n.ID == 0 {
			panic(fmt.Sprintf("treechart: layout of node %q without an ID", n.Path))
		}
		l.Nodes = append(l.Nodes, n)
		l.Positions[n.ID] = Position{
			X:     (v.x + tx) * kx,
			Y:     float64(v.depth) * l.LevelSpacing,
			Depth: v.depth,
		}
		for _, c := range v.children {
			l.Links = append(l.Links, Link{Source: n, Target: c.node})
		}
	})
	return l
}

// walkNode is the per-node scratch state of the Reingold–Tilford walk, in
// the formulation of Buchheim, Jünger and Leipert.
type walkNode struct {
	node     *TreeNode
	parent   *walkNode
	children []*walkNode
	depth    int
	index    int // position among siblings

	z float64 // preliminary x
	m float64 // modifier
	c float64 // change
	s float64 // shift

	ancestor *walkNode // the "A" pointer: default ancestor
	a        *walkNode // ancestor used by apportion
	thread   *walkNode

	x float64
}

func wrapTree(root *TreeNode, sorted bool) *walkNode {
	sentinel := &walkNode{depth: -1}
	var wrap func(n *TreeNode, parent *walkNode, depth, index int) *walkNode
	wrap = func(n *TreeNode, parent *walkNode, depth, index int) *walkNode {
		v := &walkNode{node: n, parent: parent, depth: depth, index: index}
		v.a = v
		children := VisibleChildren(n)
		if sorted && len(children) > 1 {
			children = sortedByName(children)
		}
		if len(children) > 0 {
			v.children = make([]*walkNode, len(children))
			for i, c := range children {
				v.children[i] = wrap(c, v, depth+1, i)
			}
		}
		return v
	}
	root1 := wrap(root, sentinel, 0, 0)
	sentinel.children = []*walkNode{root1}
	return root1
}

func sortedByName(nodes []*TreeNode) []*TreeNode {
	out := make([]*TreeNode, len(nodes))
	copy(out, nodes)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// separation is 1 between siblings and 2 between cousins.
func separation(a, b *walkNode) float64 {
	if a.parent == b.parent {
		return 1
	}
	return 2
}

func visitAfter(v *walkNode, fn func(*walkNode)) {
	for _, c := range v.children {
		visitAfter(c, fn)
	}
	fn(v)
}

func visitBefore(v *walkNode, fn func(*walkNode)) {
	fn(v)
	for _, c := range v.children {
		visitBefore(c, fn)
	}
}

func firstWalk(v *walkNode) {
	siblings := v.parent.children
	var w *walkNode
	if v.index > 0 {
		w = siblings[v.index-1]
	}
	if len(v.children) > 0 {
		executeShifts(v)
		midpoint := (v.children[0].z + v.children[len(v.children)-1].z) / 2
		if w != nil {
			v.z = w.z + separation(v, w)
			v.m = v.z - midpoint
		} else {
			v.z = midpoint
		}
	} else if w != nil {
		v.z = w.z + separation(v, w)
	}
	defaultAncestor := v.parent.ancestor
	if defaultAncestor == nil {
		defaultAncestor = siblings[0]
	}
	v.parent.ancestor = apportion(v, w, defaultAncestor)
}

func secondWalk(v *walkNode) {
	v.x = v.z + v.parent.m
	v.m += v.parent.m
}

func apportion(v, w, ancestor *walkNode) *walkNode {
	if w == nil {
		return ancestor
	}
	vip, vop := v, v
	vim := w
	vom := vip.parent.children[0]
	sip, sop := vip.m, vop.m
	sim, som := vim.m, vom.m
	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.a = v
		shift := vim.z + sim - vip.z - sip + separation(vim, vip)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.m
		sip += vip.m
		som += vom.m
		sop += vop.m
	}
	if vim != nil && nextRight(vop) == nil {
		vop.thread = vim
		vop.m += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.thread = vip
		vom.m += sip - som
		ancestor = v
	}
	return ancestor
}

func nextLeft(v *walkNode) *walkNode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func nextRight(v *walkNode) *walkNode {
	if n := len(v.children); n > 0 {
		return v.children[n-1]
	}
	return v.thread
}

func moveSubtree(wm, wp *walkNode, shift float64) {
	change := shift / float64(wp.index-wm.index)
	wp.c -= change
	wp.s += shift
	wm.c += change
	wp.z += shift
	wp.m += shift
}

func executeShifts(v *walkNode) {
	shift, change := 0.0, 0.0
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.z += shift
		w.m += shift
		change += w.c
		shift += w.s + change
	}
}

func nextAncestor(vim, v, ancestor *walkNode) *walkNode {
	if vim.a.parent == v.parent {
		return vim.a
	}
	return ancestor
}
