package equity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/kingme/board"
	"github.com/domino14/kingme/equity"
	"github.com/domino14/kingme/game"
)

func at(x, y int) int { return board.ToIndex(board.Point{X: x, Y: y}) }

func TestStartingPositionIsBalanced(t *testing.T) {
	g := game.NewGame()
	for _, ev := range []equity.Evaluator{equity.NewPositionEvaluator(), equity.MaterialEvaluator{}} {
		assert.Equal(t, 0, ev.Evaluate(g, false))
		assert.Equal(t, 0, ev.Evaluate(g, true))
	}
}

func TestEvaluationIsAntisymmetric(t *testing.T) {
	g := game.NewGame()
	g.Move(22, 17)
	g.Move(9, 13)
	g.Move(17, 14)
	ev := equity.NewPositionEvaluator()
	assert.Equal(t, -ev.Evaluate(g, false), ev.Evaluate(g, true))
}

func TestMaterialDominates(t *testing.T) {
	var b board.Board
	b.Set(at(2, 5), board.WhiteMan)
	b.Set(at(6, 5), board.WhiteMan)
	b.Set(at(3, 4), board.BlackMan)
	g := game.NewGameFromBoard(b, false, game.NoSkip)
	ev := equity.NewPositionEvaluator()
	assert.Greater(t, ev.Evaluate(g, false), 0)
	assert.Less(t, ev.Evaluate(g, true), 0)
	assert.Equal(t, 1, equity.MaterialEvaluator{}.Evaluate(g, false))
}

func TestKingsAndAdvancement(t *testing.T) {
	ev := equity.NewPositionEvaluator()

	var home, advanced board.Board
	home.Set(at(0, 7), board.WhiteMan)
	advanced.Set(at(1, 6), board.WhiteMan)
	gHome := game.NewGameFromBoard(home, false, game.NoSkip)
	gAdv := game.NewGameFromBoard(advanced, false, game.NoSkip)
	// the home-row guard is worth more than one row of advancement
	assert.Equal(t, 108, ev.Evaluate(gHome, false))
	assert.Equal(t, 104, ev.Evaluate(gAdv, false))

	var k board.Board
	k.Set(at(0, 1), board.BlackKing)
	gk := game.NewGameFromBoard(k, true, game.NoSkip)
	assert.Equal(t, 160, ev.Evaluate(gk, true))
	assert.Equal(t, 2, equity.MaterialEvaluator{}.Evaluate(gk, true))
	assert.Equal(t, -3, equity.MaterialEvaluator{KingWeight: 3}.Evaluate(gk, false))
}

func TestScoresStayInsideBounds(t *testing.T) {
	ev := &equity.PositionEvaluator{ManValue: equity.MaxScore, KingValue: equity.MaxScore}
	var b board.Board
	b.Set(at(0, 1), board.WhiteMan)
	b.Set(at(2, 1), board.WhiteMan)
	g := game.NewGameFromBoard(b, false, game.NoSkip)
	assert.Equal(t, equity.MaxScore, ev.Evaluate(g, false))
	assert.Equal(t, -equity.MaxScore, ev.Evaluate(g, true))
}
