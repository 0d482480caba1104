package treechart

import (
	"strings"

	"pgregory.net/rapid"
)

// genState draws a random nested state of at most depth levels.
func genState(depth int) *rapid.Generator[any] {
	return rapid.Custom(func(t *rapid.T) any {
		if depth == 0 || rapid.IntRange(0, 3).Draw(t, "kind") == 0 {
			return rapid.IntRange(0, 99).Draw(t, "scalar")
		}
		if rapid.IntRange(0, 4).Draw(t, "seq") == 0 {
			n := rapid.IntRange(0, 3).Draw(t, "len")
			items := make([]any, n)
			for i := range items {
				items[i] = genState(depth-1).Draw(t, "item")
			}
			return items
		}
		n := rapid.IntRange(0, 4).Draw(t, "keys")
		m := make(Map, 0, n)
		for i := 0; i < n; i++ {
			key := rapid.StringMatching(`[a-zA-Z]{1,5}`).Draw(t, "key")
			m = append(m, Entry{Key: key, Value: genState(depth-1).Draw(t, "value")})
		}
		return m
	})
}

// buildWithIDs builds a tree and numbers every node in pre-order.
func buildWithIDs(state any) *TreeNode {
	root := Build(state, DefaultRootName)
	var ids IDCounter
	Visit(root, func(n *TreeNode) { EnsureID(n, &ids) }, AllChildren)
	return root
}

func layoutOf(root *TreeNode, sorted bool) *Layout {
	l := ComputeLayout(root, LayoutOptions{
		MaxLabelLength: MaxLabelLength(root),
		Sorted:         sorted,
	})
	l.Apply()
	return l
}

// find returns the first node with the given name.
func find(root *TreeNode, name string) *TreeNode {
	var found *TreeNode
	Visit(root, func(n *TreeNode) {
		if found == nil && n.Name == name {
			found = n
		}
	}, AllChildren)
	return found
}

func names(nodes []*TreeNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func lowerNames(nodes []*TreeNode) []string {
	out := names(nodes)
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}

// nonLeaves returns every node with children, visible or hidden.
func nonLeaves(root *TreeNode) []*TreeNode {
	var out []*TreeNode
	Visit(root, func(n *TreeNode) {
		if !n.IsLeaf() {
			out = append(out, n)
		}
	}, AllChildren)
	return out
}
