package treechart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestToggleSwapsChildLists(t *testing.T) {
	root := sampleTree()
	a := find(root, "a")
	kids := a.Children

	require.Same(t, a, Toggle(a))
	assert.Nil(t, a.Children)
	assert.Equal(t, kids, a.HiddenChildren)
	assert.Equal(t, ShapeCollapsed, a.Shape())

	Toggle(a)
	assert.Equal(t, kids, a.Children)
	assert.Nil(t, a.HiddenChildren)
	assert.Equal(t, ShapeExpanded, a.Shape())
}

func TestToggleLeafIsNoop(t *testing.T) {
	leaf := &TreeNode{Name: "x"}
	Toggle(leaf)
	assert.Equal(t, ShapeLeaf, leaf.Shape())
	assert.Nil(t, leaf.Children)
	assert.Nil(t, leaf.HiddenChildren)
}

func TestCollapseExpandIdempotent(t *testing.T) {
	root := sampleTree()
	Collapse(root)
	Collapse(root)
	assert.Equal(t, ShapeCollapsed, root.Shape())
	Expand(root)
	Expand(root)
	assert.Equal(t, ShapeExpanded, root.Shape())
}

func TestToggleTwiceRestoresChildren(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := Build(genState(4).Draw(t, "state"), DefaultRootName)
		candidates := nonLeaves(root)
		if len(candidates) == 0 {
			return
		}
		n := rapid.SampledFrom(candidates).Draw(t, "node")
		// Start from either shape.
		if rapid.Bool().Draw(t, "collapsed") {
			Toggle(n)
		}
		before := append([]*TreeNode(nil), n.Children...)
		hiddenBefore := append([]*TreeNode(nil), n.HiddenChildren...)

		Toggle(n)
		Toggle(n)

		if len(before) != len(n.Children) || len(hiddenBefore) != len(n.HiddenChildren) {
			t.Fatalf("child counts changed: %d/%d -> %d/%d",
				len(before), len(hiddenBefore), len(n.Children), len(n.HiddenChildren))
		}
		for i := range before {
			if before[i] != n.Children[i] {
				t.Fatalf("child %d changed", i)
			}
		}
		for i := range hiddenBefore {
			if hiddenBefore[i] != n.HiddenChildren[i] {
				t.Fatalf("hidden child %d changed", i)
			}
		}
	})
}

func TestChildListsMutuallyExclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := Build(genState(4).Draw(t, "state"), DefaultRootName)
		candidates := nonLeaves(root)
		if len(candidates) == 0 {
			return
		}
		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			Toggle(rapid.SampledFrom(candidates).Draw(t, "node"))
			Visit(root, func(n *TreeNode) {
				if len(n.Children) > 0 && len(n.HiddenChildren) > 0 {
					t.Fatalf("node %q has both child lists populated", n.Path)
				}
			}, AllChildren)
		}
	})
}
