package player

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/kingme/board"
	"github.com/domino14/kingme/config"
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/search"
)

func TestPlayerKinds(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()

	var h Player = HumanPlayer{}
	is.True(h.IsHuman())

	mm := NewMinimaxPlayer(true, cfg)
	is.True(!mm.IsHuman())
	is.Equal(mm.Solver().Variant(), search.Minimax)
	is.Equal(mm.Solver().MaxDepth(), 8)
	is.True(mm.Solver().ForP2())

	ab := NewAlphaBetaPlayer(false, cfg)
	is.Equal(ab.Solver().Variant(), search.AlphaBeta)
	is.Equal(ab.Solver().MaxDepth(), 6)

	p, err := NewComputerPlayer("minimax", false, nil)
	is.NoErr(err)
	is.Equal(p.Solver().MaxDepth(), search.DefaultMinimaxDepth)

	_, err = NewComputerPlayer("random", false, cfg)
	is.True(errors.Is(err, ErrUnknownPlayerKind))
}

func TestDepthFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAlphaBetaDepth, 2)
	p, err := NewComputerPlayer("alphabeta", true, cfg)
	is.NoErr(err)
	is.Equal(p.Solver().MaxDepth(), 2)
}

func TestHumanDoesNotMove(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	HumanPlayer{}.UpdateGame(g)
	is.True(g.Equals(game.NewGame()))
}

func TestComputerPlaysOnlyItsSide(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAlphaBetaDepth, 3)
	white := NewAlphaBetaPlayer(false, cfg)
	black := NewAlphaBetaPlayer(true, cfg)

	g := game.NewGame()
	black.UpdateGame(g)
	is.True(g.Equals(game.NewGame()))

	white.UpdateGame(g)
	is.True(g.IsP2Turn())
	is.Equal(g.Board().Count(board.WhiteMan), 12)
	black.UpdateGame(g)
	is.True(!g.IsP2Turn())
	is.True(black.Solver().LastResult() != nil)
}

func TestComputerTakesTheWin(t *testing.T) {
	is := is.New(t)
	var b board.Board
	b.Set(21, board.WhiteMan)
	b.Set(17, board.BlackMan)
	g := game.NewGameFromBoard(b, false, game.NoSkip)

	p := NewMinimaxPlayer(false, config.DefaultConfig())
	p.UpdateGame(g)
	p2, over := g.Winner()
	is.True(over)
	is.True(!p2)
}
