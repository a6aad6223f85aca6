// Package equity scores checkers positions for the search.
package equity

import (
	"github.com/domino14/kingme/game"
)

// MaxScore bounds every evaluator output. The search reserves the extreme
// integers for won and lost games, so no heuristic may reach them.
const MaxScore = 1 << 30

// Evaluator maps a position to a score from the point of view of one side:
// black (player two) if forP2 is true, white otherwise. Higher is better for
// that side.
type Evaluator interface {
	Evaluate(g *game.Game, forP2 bool) int
}

func clamp(v int) int {
	if v > MaxScore {
		return MaxScore
	}
	if v < -MaxScore {
		return -MaxScore
	}
	return v
}
