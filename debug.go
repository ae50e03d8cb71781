package ultraspin

import (
	"fmt"
	"time"

	"github.com/justindarc/ultraspin/logging"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	submitTime    time.Duration
	commandCount  int
	filteredCount int
	drawCallCount int
}

// debugLog writes frame stats to the scene logger.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		logging.Duration("traverse", stats.traverseTime),
		logging.Duration("submit", stats.submitTime),
		logging.Int("commands", stats.commandCount),
		logging.Int("offscreen", stats.filteredCount),
		logging.Int("draw_calls", stats.drawCallCount),
		logging.Int("playbacks", len(s.playbacks)))
}

// countDrawCalls counts individual draw calls from the command list.
// Particle commands count as the number of alive particles.
func countDrawCalls(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		cmd := &commands[i]
		switch cmd.Type {
		case CommandParticle:
			if cmd.emitter != nil {
				count += cmd.emitter.alive
			}
		default:
			count++
		}
	}
	return count
}

// DumpTree returns an indented outline of n's subtree, one node per line.
func DumpTree(n *Node) string {
	var out []byte
	dumpTree(&out, n, 0)
	return string(out)
}

func dumpTree(out *[]byte, n *Node, depth int) {
	for i := 0; i < depth; i++ {
		*out = append(*out, "  "...)
	}
	*out = fmt.Appendf(*out, "%s %q box=(%.0f,%.0f %.0fx%.0f) alpha=%.2f z=%d",
		n.Type, n.Name, n.Left, n.Top, n.Width, n.Height, n.Alpha, n.ZIndex)
	if !n.Visible {
		*out = append(*out, " hidden"...)
	}
	*out = append(*out, '\n')
	for _, c := range n.children {
		dumpTree(out, c, depth+1)
	}
}
