package howitzer

import (
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	buildTime       time.Duration
	submitTime      time.Duration
	commandCount    int
	outlineCount    int
	viewCount       int
	projectileCount int
}

// debugLog writes timing and draw stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug().
		Uint64("frame", s.frame).
		Dur("build", stats.buildTime).
		Dur("submit", stats.submitTime).
		Dur("total", stats.buildTime+stats.submitTime).
		Int("commands", stats.commandCount).
		Int("outlines", stats.outlineCount).
		Int("views", stats.viewCount).
		Int("draws", stats.commandCount*stats.viewCount).
		Int("projectiles", stats.projectileCount).
		Msg("frame stats")
}

// Graph shape thresholds checked when debug mode is switched on.
const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugCheckGraph warns about graphs deep or wide enough to slow every frame's
// traversal. It returns the number of warnings logged.
func (s *Scene) debugCheckGraph() int {
	warnings := 0
	s.graph.Walk(func(id NodeID, n *Node) {
		if d := s.graph.Depth(id); d > debugMaxTreeDepth {
			s.log.Warn().Str("node", n.Name).Int("depth", d).Int("threshold", debugMaxTreeDepth).Msg("graph depth exceeds threshold")
			warnings++
		}
		if c := len(n.Children()); c > debugMaxChildCount {
			s.log.Warn().Str("node", n.Name).Int("children", c).Int("threshold", debugMaxChildCount).Msg("node child count exceeds threshold")
			warnings++
		}
	})
	return warnings
}

// countOutlines counts the outline commands in a command list.
func countOutlines(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		if commands[i].Mode == DrawOutline {
			count++
		}
	}
	return count
}
