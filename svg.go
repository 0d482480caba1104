package treechart

import (
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/cockroachdb/errors"
)

// SVGSurface is a Surface that renders the settled scene as a static SVG
// document. Transitions are applied instantly: each element is written in
// its end state, and exited elements are dropped.
type SVGSurface struct {
	canvas   Canvas
	nodes    map[int]NodeVisual
	links    map[int]LinkState
	onToggle func(id int)
}

var _ Surface = (*SVGSurface)(nil)

// NewSVGSurface returns an empty SVG surface.
func NewSVGSurface() *SVGSurface {
	return &SVGSurface{
		nodes: make(map[int]NodeVisual),
		links: make(map[int]LinkState),
	}
}

// Mount implements Surface.
func (s *SVGSurface) Mount(canvas Canvas, onToggle func(id int)) {
	s.canvas = canvas
	s.onToggle = onToggle
}

// Apply implements Surface.
func (s *SVGSurface) Apply(plan *Plan) {
	for _, t := range plan.Nodes {
		if t.Remove() {
			delete(s.nodes, t.ID)
			continue
		}
		s.nodes[t.ID] = t.To
	}
	for _, t := range plan.Links {
		if t.Remove() {
			delete(s.links, t.TargetID)
			continue
		}
		s.links[t.TargetID] = LinkState{SourceID: t.SourceID, Path: t.To}
	}
}

// Toggle forwards a toggle request to the mounted chart. It lets callers
// drive an SVG chart from outside events such as HTTP requests.
func (s *SVGSurface) Toggle(id int) {
	if s.onToggle != nil {
		s.onToggle(id)
	}
}

// NumNodes returns the number of nodes currently drawn.
func (s *SVGSurface) NumNodes() int { return len(s.nodes) }

// NumLinks returns the number of links currently drawn.
func (s *SVGSurface) NumLinks() int { return len(s.links) }

// WriteTo writes the scene as an SVG document. Links are written before
// nodes so nodes are painted on top.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	c := s.canvas
	canvas := svg.New(cw)
	canvas.Start(c.FullWidth, c.FullHeight,
		fmt.Sprintf(`id="%s"`, html.EscapeString(c.ID)),
		fmt.Sprintf(`style="%s"`, html.EscapeString(c.Style)),
		fmt.Sprintf(`viewBox="0 0 %g %g"`, c.FullWidth, c.FullHeight),
		fmt.Sprintf(`preserveAspectRatio="%s"`, c.PreserveAspectRatio),
	)
	canvas.Gtransform(fmt.Sprintf("translate(%g, %g)", c.Margin.Left, c.Margin.Top))

	for _, id := range sortedKeys(s.links) {
		canvas.Path(s.links[id].Path.SVGPath(),
			`class="link"`,
			fmt.Sprintf(`fill="none" stroke="%s" stroke-width="1.5"`, ColorLink.Hex()))
	}

	for _, id := range sortedKeys(s.nodes) {
		v := s.nodes[id]
		canvas.Group(`class="node"`,
			fmt.Sprintf(`data-id="%d"`, id),
			fmt.Sprintf(`transform="translate(%g,%g)"`, v.Pos.X, v.Pos.Y))
		if v.Value != nil {
			canvas.Title(FormatValue(v.Value))
		}
		canvas.Circle(0, 0, v.Radius,
			`class="nodeCircle"`,
			fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="1.5"`, v.Fill.Hex(), ColorStroke.Hex()))
		canvas.Text(v.LabelOffset, 0, v.Label,
			`class="nodeText"`,
			fmt.Sprintf(`dy="%gem"`, LabelBaselineEm),
			fmt.Sprintf(`text-anchor="%s"`, v.Anchor),
			fmt.Sprintf(`fill-opacity="%g"`, v.TextOpacity))
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
	if cw.err != nil {
		return cw.n, errors.Wrap(cw.err, "write svg")
	}
	return cw.n, nil
}

// countingWriter records the bytes written and the first error, since the
// svg canvas swallows both.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil {
		c.err = err
	}
	return n, err
}
