// Package player holds the participants of a game. A computer player
// decides and plays its own moves; a human player only tells the interface
// to wait for input.
package player

import (
	"errors"
	"fmt"

	"github.com/domino14/kingme/config"
	"github.com/domino14/kingme/equity"
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/search"
)

var ErrUnknownPlayerKind = errors.New("unknown player kind")

// Player is one side of a game.
type Player interface {
	// IsHuman returns true if the moves of this player come from outside.
	IsHuman() bool
	// UpdateGame plays this player's move on g if it is its turn. It does
	// nothing for a human player.
	UpdateGame(g *game.Game)
}

type HumanPlayer struct{}

func (HumanPlayer) IsHuman() bool           { return true }
func (HumanPlayer) UpdateGame(g *game.Game) {}

// ComputerPlayer plays one fixed side using a search.Solver.
type ComputerPlayer struct {
	solver *search.Solver
}

func (p *ComputerPlayer) IsHuman() bool { return false }

func (p *ComputerPlayer) UpdateGame(g *game.Game) {
	p.solver.UpdateGame(g)
}

// Solver exposes the underlying solver, for its statistics.
func (p *ComputerPlayer) Solver() *search.Solver {
	return p.solver
}

func newComputerPlayer(variant search.Variant, depthKey string, forP2 bool,
	cfg *config.Config) *ComputerPlayer {

	s := search.NewSolver(forP2, variant, equity.NewPositionEvaluator())
	if cfg != nil {
		s.SetMaxDepth(cfg.GetInt(depthKey))
		s.SetMemoryFraction(cfg.GetFloat64(config.ConfigCacheMemoryFraction))
	}
	return &ComputerPlayer{solver: s}
}

// NewMinimaxPlayer searches every line to the minimax depth and plays the
// best scoring move.
func NewMinimaxPlayer(forP2 bool, cfg *config.Config) *ComputerPlayer {
	return newComputerPlayer(search.Minimax, config.ConfigMinimaxDepth, forP2, cfg)
}

// NewAlphaBetaPlayer prunes its search and plays the first move that reaches
// the root value.
func NewAlphaBetaPlayer(forP2 bool, cfg *config.Config) *ComputerPlayer {
	return newComputerPlayer(search.AlphaBeta, config.ConfigAlphaBetaDepth, forP2, cfg)
}

// NewComputerPlayer builds a player by kind name: "minimax" or "alphabeta".
func NewComputerPlayer(kind string, forP2 bool, cfg *config.Config) (*ComputerPlayer, error) {
	variant, err := search.ParseVariant(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayerKind, kind)
	}
	if variant == search.Minimax {
		return NewMinimaxPlayer(forP2, cfg), nil
	}
	return NewAlphaBetaPlayer(forP2, cfg), nil
}
