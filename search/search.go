package search

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/domino14/kingme/equity"
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/zobrist"
)

const (
	// WinScore is the value of a position the controlled player has won.
	WinScore = math.MaxInt
	// LossScore is the value of a position the controlled player has lost.
	LossScore = math.MinInt
)

// decision is the state of one top-level move choice. Both tables are
// created with it and dropped with it; nothing is carried over to the next
// decision.
type decision struct {
	forP2     bool
	maxDepth  int
	pruning   bool
	evaluator equity.Evaluator
	zobrist   *zobrist.Zobrist

	maxTT *TranspositionTable
	minTT *TranspositionTable

	nodes     uint64
	leaves    uint64
	cutoffs   uint64
	terminals uint64
}

func newDecision(forP2 bool, maxDepth int, pruning bool,
	ev equity.Evaluator, z *zobrist.Zobrist) *decision {

	return &decision{
		forP2:     forP2,
		maxDepth:  maxDepth,
		pruning:   pruning,
		evaluator: ev,
		zobrist:   z,
		maxTT:     NewTranspositionTable(),
		minTT:     NewTranspositionTable(),
	}
}

// isMaxNode returns true if the side to move in g is the controlled player.
// A capture sequence keeps the same side to move, so it keeps the role.
func (d *decision) isMaxNode(g *game.Game) bool {
	return g.IsP2Turn() == d.forP2
}

func (d *decision) boundFor(v, alphaOrig, betaOrig int) uint8 {
	if !d.pruning {
		return TTExact
	}
	if v <= alphaOrig {
		return TTUpper
	} else if v >= betaOrig {
		return TTLower
	}
	return TTExact
}

func (d *decision) value(g *game.Game, hash uint64, depth, alpha, beta int) int {
	if d.isMaxNode(g) {
		return d.maxValue(g, hash, depth, alpha, beta)
	}
	return d.minValue(g, hash, depth, alpha, beta)
}

// child plays one candidate on a copy of g and returns it along with its key
// and hash.
func (d *decision) child(g *game.Game, key game.Key, hash uint64,
	origin, destination int) (*game.Game, game.Key, uint64) {

	c := g.Copy()
	c.Move(origin, destination)
	ckey := c.Key()
	return c, ckey, d.zobrist.Update(hash, key, ckey)
}

func (d *decision) leaf(g *game.Game, tt *TranspositionTable, hash uint64, key game.Key) int {
	d.leaves++
	v := d.evaluator.Evaluate(g, d.forP2)
	tt.store(hash, TableEntry{key: key, depth: 0, flag: TTExact, score: v})
	return v
}

func (d *decision) maxValue(g *game.Game, hash uint64, depth, alpha, beta int) int {
	d.nodes++
	remaining := d.maxDepth - depth
	key := g.Key()
	if e, ok := d.maxTT.lookup(hash, key, remaining); ok && e.usable(alpha, beta) {
		return e.score
	}
	if remaining <= 0 {
		return d.leaf(g, d.maxTT, hash, key)
	}

	alphaOrig, betaOrig := alpha, beta
	candidates := GenerateCandidates(g, d.evaluator)
	if len(candidates) == 0 {
		log.Warn().Int("depth", depth).Str("side", game.SideName(g.IsP2Turn())).
			Msg("no-candidates-for-live-position")
		d.maxTT.store(hash, TableEntry{key: key, depth: remaining, flag: TTExact, score: LossScore})
		return LossScore
	}

	acc := LossScore
	for _, m := range candidates {
		c, ckey, chash := d.child(g, key, hash, m.Origin(), m.Destination())
		if c.IsGameOver() {
			// The opponent cannot move: a win.
			d.terminals++
			d.maxTT.store(chash, TableEntry{key: ckey, depth: remaining - 1, flag: TTExact, score: WinScore})
			acc = WinScore
			break
		}
		acc = max(acc, d.value(c, chash, depth+1, alpha, beta))
		if d.pruning {
			if acc >= beta {
				d.cutoffs++
				break
			}
			alpha = max(alpha, acc)
		}
	}
	d.maxTT.store(hash, TableEntry{key: key, depth: remaining,
		flag: d.boundFor(acc, alphaOrig, betaOrig), score: acc})
	return acc
}

func (d *decision) minValue(g *game.Game, hash uint64, depth, alpha, beta int) int {
	d.nodes++
	remaining := d.maxDepth - depth
	key := g.Key()
	if e, ok := d.minTT.lookup(hash, key, remaining); ok && e.usable(alpha, beta) {
		return e.score
	}
	if remaining <= 0 {
		return d.leaf(g, d.minTT, hash, key)
	}

	alphaOrig, betaOrig := alpha, beta
	candidates := GenerateCandidates(g, d.evaluator)
	if len(candidates) == 0 {
		log.Warn().Int("depth", depth).Str("side", game.SideName(g.IsP2Turn())).
			Msg("no-candidates-for-live-position")
		d.minTT.store(hash, TableEntry{key: key, depth: remaining, flag: TTExact, score: WinScore})
		return WinScore
	}

	acc := WinScore
	for _, m := range candidates {
		c, ckey, chash := d.child(g, key, hash, m.Origin(), m.Destination())
		if c.IsGameOver() {
			// The controlled player cannot move: a loss.
			d.terminals++
			d.minTT.store(chash, TableEntry{key: ckey, depth: remaining - 1, flag: TTExact, score: LossScore})
			acc = LossScore
			break
		}
		acc = min(acc, d.value(c, chash, depth+1, alpha, beta))
		if d.pruning {
			if acc <= alpha {
				d.cutoffs++
				break
			}
			beta = min(beta, acc)
		}
	}
	d.minTT.store(hash, TableEntry{key: key, depth: remaining,
		flag: d.boundFor(acc, alphaOrig, betaOrig), score: acc})
	return acc
}
