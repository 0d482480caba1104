package stage

import (
	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

// scriptStep is a single action of an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Node   int     `json:"node,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected clicks, waits and screenshots across frames.
// Attach it to a Scene with SetScript.
//
// Supported actions:
//
//	{"action": "click", "x": 120, "y": 40}   click at screen coordinates
//	{"action": "toggle", "node": 3}          click the marker of chart node 3
//	{"action": "wait", "frames": 30}         do nothing for n frames
//	{"action": "settle"}                     wait until no transition runs
//	{"action": "screenshot", "label": "x"}   capture the next drawn frame
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse script")
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "click", "toggle", "wait", "settle", "screenshot":
		default:
			return nil, errors.Newf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a script to the scene. Its steps run from Update,
// before input is processed. A nil script detaches the current one.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run, or the script stopped on an
// error.
func (r *Script) Done() bool {
	return r.done
}

// Err returns the error that stopped the script, if any.
func (r *Script) Err() error {
	return r.err
}

// step advances the script by one frame.
func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	// Pending injections drain first.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	switch st.Action {
	case "settle":
		if s.Animating() {
			return
		}
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "toggle":
		if !s.InjectNodeClick(st.Node) {
			r.err = errors.Newf("script step %d: no marker for node %d", r.cursor, st.Node)
			r.done = true
			return
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	r.cursor++

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
