package search

import (
	"github.com/domino14/kingme/game"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

// Approximate bytes per stored entry, including its share of the bucket
// slice and map overhead.
const entrySize = 64

// TableEntry is the score of one position searched with a given number of
// plies left.
type TableEntry struct {
	key   game.Key
	depth int // remaining plies
	flag  uint8
	score int
}

// usable returns true if the entry decides the node for the window
// (alpha, beta) without searching it again.
func (t TableEntry) usable(alpha, beta int) bool {
	switch t.flag {
	case TTExact:
		return true
	case TTLower:
		return t.score >= beta
	case TTUpper:
		return t.score <= alpha
	}
	return false
}

// TranspositionTable memoizes search scores for one role. Positions are
// bucketed by zobrist hash and always compared by their full key, so a hash
// collision is counted but never returns a wrong score.
type TranspositionTable struct {
	table   map[uint64][]TableEntry
	created uint64
	lookups uint64
	hits    uint64
	// positions with a different key sharing the full 64-bit hash.
	collisions uint64
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{table: make(map[uint64][]TableEntry)}
}

func (t *TranspositionTable) find(zval uint64, key game.Key, depth int) (TableEntry, bool) {
	for _, e := range t.table[zval] {
		if e.key == key && e.depth == depth {
			return e, true
		}
	}
	return TableEntry{}, false
}

func (t *TranspositionTable) lookup(zval uint64, key game.Key, depth int) (TableEntry, bool) {
	t.lookups++
	bucket := t.table[zval]
	for _, e := range bucket {
		if e.key != key {
			t.collisions++
			continue
		}
		if e.depth == depth {
			t.hits++
			return e, true
		}
	}
	return TableEntry{}, false
}

func (t *TranspositionTable) store(zval uint64, tentry TableEntry) {
	bucket := t.table[zval]
	for i := range bucket {
		if bucket[i].key == tentry.key && bucket[i].depth == tentry.depth {
			bucket[i] = tentry
			return
		}
	}
	t.table[zval] = append(bucket, tentry)
	t.created++
}

// Len returns the number of stored entries.
func (t *TranspositionTable) Len() int {
	return int(t.created)
}
