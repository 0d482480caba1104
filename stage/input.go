package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/treechart"
)

const (
	defaultDragDeadZone = 4.0 // pixels

	// minHitRadius keeps small markers clickable.
	minHitRadius = 8.0
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  *Node
	dragging bool
	button   MouseButton // button captured at press time
}

// --- Handler registry ---

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	click  []clickHandler
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.click
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			h.reg.click = s[:len(s)-1]
			return
		}
	}
}

// OnClick registers a scene-level callback for click events. Scene-level
// handlers run before the clicked node's own OnClick.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers}
}

// SetDragDeadZone sets the minimum movement in pixels before a press stops
// counting as a click.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set. Markers otherwise hit within their radius or on
// their visible label.
func (s *Scene) nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type != NodeTypeMarker {
		return false
	}
	if (HitCircle{Radius: math.Max(n.Radius, minHitRadius)}).Contains(lx, ly) {
		return true
	}
	r, ok := s.labelRect(n)
	return ok && r.Contains(lx, ly)
}

// labelRect returns the area a marker's label covers, in the marker's local
// coordinates. Hidden or empty labels have no area.
func (s *Scene) labelRect(n *Node) (HitRect, bool) {
	if n.Label == "" || n.TextAlpha <= 0 {
		return HitRect{}, false
	}
	f := s.labelFont()
	w, _ := f.MeasureString(n.Label)
	h := f.LineHeight()
	x := n.LabelOffset
	if n.Anchor == treechart.AnchorEnd {
		x -= w
	}
	return HitRect{X: x, Y: -h / 2, Width: w, Height: h}, true
}

// collectInteractable walks the tree in painter order, appending
// interactable nodes to buf. Skips Visible=false or Interactable=false
// subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable || n.disposed {
		return buf
	}
	if n.HitShape != nil || n.Type == NodeTypeMarker {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if s.nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update to handle mouse input. Injected
// events take priority over the real mouse.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.processMousePointer()
}

// processMousePointer handles mouse input.
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine. A click fires when the
// pointer is pressed and released over the same node without moving past
// the drag dead zone.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.hitTest(wx, wy)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false

	case !pressed && ps.down:
		if !ps.dragging && ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, wx, wy, ps.button)
		}
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false

	case pressed && ps.down:
		if !ps.dragging {
			dx := wx - ps.startX
			dy := wy - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
				ps.dragging = true
			}
		}
		ps.lastX, ps.lastY = wx, wy
	}
}

// --- Event dispatch ---

func (s *Scene) fireClick(node *Node, wx, wy float64, button MouseButton) {
	lx, ly := node.WorldToLocal(wx, wy)
	ctx := ClickContext{
		Node: node, ChartID: node.ChartID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button,
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node.OnClick != nil && button == MouseButtonLeft {
		node.OnClick(ctx)
	}
}
