package treechart

// Surface is the rendering host a Chart draws on.
//
// Mount is called once, when the chart is created. onToggle is the input
// stream back into the chart: the surface calls it with a node ID whenever
// the user asks to collapse or expand that node. Apply hands over the
// transitions of one update; the surface decides how and when to run them
// and may interrupt transitions still in flight for the same element.
type Surface interface {
	Mount(canvas Canvas, onToggle func(id int))
	Apply(plan *Plan)
}

// Recorder is a Surface that keeps every plan it receives. It is useful in
// tests and for headless callers that only need the transition stream.
type Recorder struct {
	Canvas Canvas
	Mounts int
	Plans  []*Plan

	onToggle func(id int)
}

var _ Surface = (*Recorder)(nil)

// Mount implements Surface.
func (r *Recorder) Mount(canvas Canvas, onToggle func(id int)) {
	r.Canvas = canvas
	r.Mounts++
	r.onToggle = onToggle
}

// Apply implements Surface.
func (r *Recorder) Apply(plan *Plan) {
	r.Plans = append(r.Plans, plan)
}

// Last returns the most recent plan, or nil.
func (r *Recorder) Last() *Plan {
	if len(r.Plans) == 0 {
		return nil
	}
	return r.Plans[len(r.Plans)-1]
}

// Click delivers a toggle request for the node with the given ID, as a
// pointer click on the drawn node would.
func (r *Recorder) Click(id int) {
	if r.onToggle != nil {
		r.onToggle(id)
	}
}
