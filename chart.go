package treechart

// Chart is a collapsible tree chart bound to one surface. It owns the tree,
// the ID counter and the previous frame; nothing is shared between charts.
//
// A Chart is not safe for concurrent use. Call RenderChart and Toggle from
// the goroutine that drives the surface.
type Chart struct {
	cfg     Config
	canvas  Canvas
	surface Surface
	log     Logger

	ids      IDCounter
	root     *TreeNode
	maxLabel int
	layout   *Layout
	frame    *Frame
	index    map[int]*TreeNode

	// memory carries node identity, previous position and collapsed state
	// across rebuilds, keyed by TreeNode.Path.
	memory map[string]nodeMemory

	updates int
}

type nodeMemory struct {
	id        int
	x0, y0    float64
	collapsed bool
}

// New creates a chart and mounts its canvas on surface. The canvas is
// mounted exactly once; later renders reuse it.
func New(cfg Config, surface Surface) *Chart {
	cfg = cfg.withDefaults()
	c := &Chart{
		cfg:     cfg,
		canvas:  CanvasFor(cfg),
		surface: surface,
		log:     cfg.Logger,
		frame:   NewFrame(),
		index:   make(map[int]*TreeNode),
		memory:  make(map[string]nodeMemory),
	}
	if surface != nil {
		surface.Mount(c.canvas, func(id int) { c.Toggle(id) })
	}
	return c
}

// RenderChart rebuilds the tree from next and renders it, anchored at the
// root. A nil next renders Config.State.
//
// Nodes whose path in the state is unchanged keep their ID, previous
// position and collapsed state from the last render.
func (c *Chart) RenderChart(next any) {
	if next == nil {
		next = c.cfg.State
	}
	root := Build(next, DefaultRootName)
	c.restore(root)
	if _, seen := c.memory[root.Path]; !seen {
		root.X0 = c.canvas.Height / 2
		root.Y0 = 0
	}
	c.root = root
	c.maxLabel = MaxLabelLength(root)
	c.update(root)
}

// Toggle collapses or expands the node with the given ID and re-renders
// anchored at it, so only that subtree grows or shrinks. It reports whether
// anything changed. Unknown IDs, leaves and nodes hidden under a collapsed
// ancestor are ignored.
func (c *Chart) Toggle(id int) bool {
	n := c.index[id]
	if n == nil || n.IsLeaf() || c.layout == nil {
		return false
	}
	if _, drawn := c.layout.Position(id); !drawn {
		return false
	}
	c.update(Toggle(n))
	return true
}

// SetSorted switches sibling sorting. It takes effect on the next render.
func (c *Chart) SetSorted(sorted bool) {
	c.cfg.IsSorted = sorted
}

// Root returns the current tree, or nil before the first render.
func (c *Chart) Root() *TreeNode { return c.root }

// Layout returns the most recent layout, or nil before the first render.
func (c *Chart) Layout() *Layout { return c.layout }

// Frame returns the scene as it looks once the last plan has settled.
func (c *Chart) Frame() *Frame { return c.frame }

// Canvas returns the mounted canvas geometry.
func (c *Chart) Canvas() Canvas { return c.canvas }

// Config returns the chart's configuration with defaults applied.
func (c *Chart) Config() Config { return c.cfg }

// Node returns the node with the given ID, including nodes under collapsed
// ancestors that were rendered before.
func (c *Chart) Node(id int) *TreeNode { return c.index[id] }

// Find returns the node at the given state path, or nil.
func (c *Chart) Find(path string) *TreeNode {
	var found *TreeNode
	Visit(c.root, func(n *TreeNode) {
		if found == nil && n.Path == path {
			found = n
		}
	}, AllChildren)
	return found
}

func (c *Chart) update(anchor *TreeNode) {
	Visit(c.root, func(n *TreeNode) { EnsureID(n, &c.ids) }, VisibleChildren)

	layout := ComputeLayout(c.root, LayoutOptions{
		MaxLabelLength:          c.maxLabel,
		WidthBetweenBranchCoeff: c.cfg.WidthBetweenBranchCoeff,
		HeightBetweenNodesCoeff: c.cfg.HeightBetweenNodesCoeff,
		Sorted:                  c.cfg.IsSorted,
	})
	layout.Apply()

	plan, frame := Reconcile(c.frame, layout, anchor, Timing{
		Duration: c.cfg.TransitionDuration,
		Ease:     c.cfg.Ease,
	})
	c.layout = layout
	c.frame = frame
	c.remember()
	c.updates++

	if c.cfg.Debug {
		ne, le := plan.Tally(Enter)
		nu, lu := plan.Tally(Update)
		nx, lx := plan.Tally(Exit)
		c.log.Infof("update %d anchored at %q: %d nodes, %d links (enter %d/%d, update %d/%d, exit %d/%d), tallest branch %d",
			c.updates, anchor.Path, len(layout.Nodes), len(layout.Links), ne, le, nu, lu, nx, lx, layout.TallestBranch)
	}
	if c.surface != nil {
		c.surface.Apply(plan)
	}
}

// restore copies remembered identity, position and collapsed state onto a
// freshly built tree.
func (c *Chart) restore(root *TreeNode) {
	Visit(root, func(n *TreeNode) {
		m, ok := c.memory[n.Path]
		if !ok {
			return
		}
		n.ID = m.id
		n.X0, n.Y0 = m.x0, m.y0
		if m.collapsed {
			Collapse(n)
		}
	}, AllChildren)
}

// remember records the state restore needs and rebuilds the ID index.
// Paths that left the tree are forgotten.
func (c *Chart) remember() {
	memory := make(map[string]nodeMemory, len(c.memory))
	index := make(map[int]*TreeNode, len(c.index))
	Visit(c.root, func(n *TreeNode) {
		if n.ID == 0 {
			return
		}
		index[n.ID] = n
		memory[n.Path] = nodeMemory{
			id:        n.ID,
			x0:        n.X0,
			y0:        n.Y0,
			collapsed: n.Shape() == ShapeCollapsed,
		}
	}, AllChildren)
	c.memory = memory
	c.index = index
}
