package search

import (
	"github.com/samber/lo"

	"github.com/domino14/kingme/equity"
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/move"
)

// GenerateCandidates returns the legal moves for the side to move, sorted
// ascending by ordering score. Captures are mandatory: if one exists only
// captures are returned, and a capture sequence in progress only offers
// continuations from its skip cell. Moves with the same score keep the
// order the pieces were enumerated in (men before kings, ascending cell).
//
// The ordering score of a move is the evaluator's value of the resulting
// position for the side that is not to move in it. It only biases search
// order.
func GenerateCandidates(g *game.Game, ev equity.Evaluator) []*move.Move {
	moves := lo.Map(g.LegalMoves(), func(p [2]int, _ int) *move.Move {
		child := g.Copy()
		child.Move(p[0], p[1])
		return move.NewMove(p[0], p[1], ev.Evaluate(child, !child.IsP2Turn()))
	})
	move.SortByValuation(moves)
	return moves
}
