package search

import (
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/move"
)

// ChildScore is what the search recorded for one root candidate. Known is
// false if the search never reached the candidate, for example after a
// cutoff.
type ChildScore struct {
	Move  *move.Move
	Score int
	Known bool
}

// childScores reads the score of every root candidate back from the tables.
// A terminal child was stored by the root itself, so it is in the max table;
// any other child is in the table of its own role.
func (d *decision) childScores(root *game.Game, rootHash uint64, candidates []*move.Move) []ChildScore {
	key := root.Key()
	scores := make([]ChildScore, len(candidates))
	for i, m := range candidates {
		c, ckey, chash := d.child(root, key, rootHash, m.Origin(), m.Destination())
		tt := d.maxTT
		if !c.IsGameOver() && !d.isMaxNode(c) {
			tt = d.minTT
		}
		e, ok := tt.find(chash, ckey, d.maxDepth-1)
		scores[i] = ChildScore{Move: m, Score: e.score, Known: ok}
	}
	return scores
}

// exactMatch returns the first candidate whose score equals the root value.
func exactMatch(scores []ChildScore, v int) *move.Move {
	for _, cs := range scores {
		if cs.Known && cs.Score == v {
			return cs.Move
		}
	}
	return nil
}

// bestOf returns the candidate with the highest score. The first known
// score is the starting best and only a strictly higher score replaces it,
// so ties go to the earlier candidate.
func bestOf(scores []ChildScore) *move.Move {
	var best *move.Move
	bestScore := 0
	for _, cs := range scores {
		if !cs.Known {
			continue
		}
		if best == nil || cs.Score > bestScore {
			best = cs.Move
			bestScore = cs.Score
		}
	}
	return best
}
