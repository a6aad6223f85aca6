// Package search chooses a move for the computer player with a depth
// limited minimax search, optionally with alpha-beta pruning. Every decision
// memoizes scores in two transposition tables, one per role, that live only
// as long as the decision.
package search

import (
	"fmt"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/kingme/equity"
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/move"
	"github.com/domino14/kingme/zobrist"
)

const (
	DefaultMinimaxDepth   = 8
	DefaultAlphaBetaDepth = 6
	// DefaultMemoryFraction is the share of system memory the tables of one
	// decision may use before a warning is logged.
	DefaultMemoryFraction = 0.25
)

// Variant selects how the search prunes and how the root move is picked.
type Variant int

const (
	// Minimax searches every node and plays the strictly best scoring root
	// move, the earliest one on ties.
	Minimax Variant = iota
	// AlphaBeta prunes with an (alpha, beta) window and plays the first
	// root move whose score equals the root value.
	AlphaBeta
)

func (v Variant) String() string {
	switch v {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "minimax":
		return Minimax, nil
	case "alphabeta":
		return AlphaBeta, nil
	}
	return 0, fmt.Errorf("unknown search variant %q", s)
}

// DefaultDepth returns the depth a variant searches to unless told
// otherwise.
func (v Variant) DefaultDepth() int {
	if v == Minimax {
		return DefaultMinimaxDepth
	}
	return DefaultAlphaBetaDepth
}

// Stats counts the work done by one decision.
type Stats struct {
	Nodes      uint64
	Leaves     uint64
	Cutoffs    uint64
	Terminals  uint64
	Lookups    uint64
	Hits       uint64
	Entries    uint64
	Collisions uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d leaves=%d cutoffs=%d terminals=%d lookups=%d hits=%d entries=%d collisions=%d",
		s.Nodes, s.Leaves, s.Cutoffs, s.Terminals, s.Lookups, s.Hits, s.Entries, s.Collisions)
}

func (d *decision) stats() Stats {
	return Stats{
		Nodes:      d.nodes,
		Leaves:     d.leaves,
		Cutoffs:    d.cutoffs,
		Terminals:  d.terminals,
		Lookups:    d.maxTT.lookups + d.minTT.lookups,
		Hits:       d.maxTT.hits + d.minTT.hits,
		Entries:    d.maxTT.created + d.minTT.created,
		Collisions: d.maxTT.collisions + d.minTT.collisions,
	}
}

// Result is the outcome of one decision. Move is nil if no root candidate
// matched the root value, in which case nothing is played.
type Result struct {
	Value    int
	Move     *move.Move
	Children []ChildScore
	Stats    Stats
	Elapsed  time.Duration
}

// Solver picks moves for one side. It keeps no search state between
// decisions.
type Solver struct {
	forP2          bool
	variant        Variant
	maxDepth       int
	memoryFraction float64
	evaluator      equity.Evaluator
	zobrist        *zobrist.Zobrist

	lastResult *Result
}

// NewSolver returns a solver playing black (player two) if forP2 is true,
// white otherwise, searching to the variant's default depth.
func NewSolver(forP2 bool, variant Variant, ev equity.Evaluator) *Solver {
	z := &zobrist.Zobrist{}
	z.Initialize()
	return &Solver{
		forP2:          forP2,
		variant:        variant,
		maxDepth:       variant.DefaultDepth(),
		memoryFraction: DefaultMemoryFraction,
		evaluator:      ev,
		zobrist:        z,
	}
}

func (s *Solver) SetMaxDepth(d int) {
	if d < 0 {
		d = 0
	}
	s.maxDepth = d
}

func (s *Solver) MaxDepth() int {
	return s.maxDepth
}

func (s *Solver) SetMemoryFraction(f float64) {
	s.memoryFraction = f
}

func (s *Solver) Variant() Variant {
	return s.variant
}

func (s *Solver) ForP2() bool {
	return s.forP2
}

// LastResult returns the result of the most recent decision, or nil.
func (s *Solver) LastResult() *Result {
	return s.lastResult
}

// LastStats returns the statistics of the most recent decision, or zero
// stats if there was none.
func (s *Solver) LastStats() Stats {
	if s.lastResult == nil {
		return Stats{}
	}
	return s.lastResult.Stats
}

// Solve searches g and returns the chosen move without playing it. It
// returns nil without searching if g is nil, over, or if it is not the
// controlled side's turn.
func (s *Solver) Solve(g *game.Game) *Result {
	if g == nil {
		log.Debug().Msg("solve-called-without-game")
		return nil
	}
	if g.IsGameOver() {
		log.Debug().Msg("solve-called-on-finished-game")
		return nil
	}
	if g.IsP2Turn() != s.forP2 {
		log.Debug().Str("side", game.SideName(s.forP2)).Msg("not-our-turn")
		return nil
	}

	ts := time.Now()
	d := newDecision(s.forP2, s.maxDepth, s.variant == AlphaBeta, s.evaluator, s.zobrist)
	hash := s.zobrist.Hash(g.Key())
	candidates := GenerateCandidates(g, s.evaluator)

	v := d.maxValue(g, hash, 0, LossScore, WinScore)
	children := d.childScores(g, hash, candidates)

	res := &Result{Value: v, Children: children}
	if s.variant == AlphaBeta {
		res.Move = exactMatch(children, v)
	} else {
		res.Move = bestOf(children)
	}
	res.Stats = d.stats()
	res.Elapsed = time.Since(ts)
	s.lastResult = res

	ev := log.Debug().Str("variant", s.variant.String()).
		Int("depth", s.maxDepth).
		Int("value", v).
		Uint64("nodes", res.Stats.Nodes).
		Uint64("cutoffs", res.Stats.Cutoffs).
		Uint64("tt-hits", res.Stats.Hits).
		Uint64("tt-collisions", res.Stats.Collisions).
		Dur("elapsed", res.Elapsed)
	if res.Move != nil {
		ev = ev.Str("move", res.Move.ShortDescription())
	}
	ev.Msg("decision-made")

	s.checkFootprint(res.Stats.Entries)
	return res
}

func (s *Solver) checkFootprint(entries uint64) {
	if s.memoryFraction <= 0 {
		return
	}
	totalMem := memory.TotalMemory()
	used := entries * entrySize
	if totalMem == 0 || float64(used) <= s.memoryFraction*float64(totalMem) {
		return
	}
	log.Warn().Uint64("entries", entries).
		Uint64("estimated-total-memory-bytes", used).
		Uint64("total-system-memory-bytes", totalMem).
		Float64("fraction", s.memoryFraction).
		Msg("transposition-tables-exceed-memory-fraction")
}

// UpdateGame decides and plays a move for the controlled side. If no move
// was chosen the no-move sentinel is offered, which the game rejects, so g
// is left as it was.
func (s *Solver) UpdateGame(g *game.Game) {
	if g == nil {
		return
	}
	res := s.Solve(g)
	m := &move.NoMove
	if res != nil && res.Move != nil {
		m = res.Move
	}
	if !g.Move(m.Origin(), m.Destination()) {
		log.Debug().Str("move", m.ShortDescription()).Msg("no-move-played")
	}
}
