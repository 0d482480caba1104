package stage

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugStats holds per-frame timing and scene counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	markers    int
	links      int
	tweens     int
	exiting    int
}

// debugOut is where debug output goes.
var debugOut io.Writer = os.Stderr

// debugLog prints timing and scene stats.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[stage] update: %v | draw: %v | total: %v\n",
		stats.updateTime, stats.drawTime, stats.updateTime+stats.drawTime)
	_, _ = fmt.Fprintf(debugOut,
		"[stage] markers: %d | links: %d | tweens: %d | exiting: %d\n",
		stats.markers, stats.links, stats.tweens, stats.exiting)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("stage debug: %s on disposed node %q", op, n.Name))
	}
}
