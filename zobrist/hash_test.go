package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/kingme/board"
	"github.com/domino14/kingme/game"
)

func TestHashDistinguishesSideAndSkip(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	var b board.Board
	b.Set(21, board.WhiteMan)
	b.Set(17, board.BlackMan)
	b.Set(10, board.BlackMan)

	white := game.NewGameFromBoard(b, false, game.NoSkip)
	black := game.NewGameFromBoard(b, true, game.NoSkip)
	skipping := game.NewGameFromBoard(b, false, 21)

	is.True(z.Hash(white.Key()) != z.Hash(black.Key()))
	is.True(z.Hash(white.Key()) != z.Hash(skipping.Key()))
	is.Equal(z.Hash(white.Key()), z.Hash(white.Copy().Key()))
	is.Equal(z.Hash(game.Key{SkipIndex: game.NoSkip}), uint64(0))
}

func TestUpdateMatchesFullHash(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	g := game.NewGame()
	h := z.Hash(g.Key())
	plies := [][2]int{{22, 17}, {9, 13}, {17, 14}, {10, 17}, {21, 14}}
	for _, p := range plies {
		before := g.Key()
		is.True(g.Move(p[0], p[1]))
		after := g.Key()
		h = z.Update(h, before, after)
		is.Equal(h, z.Hash(after))
	}
}

func TestUpdateIsReversible(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	g := game.NewGame()
	start := g.Key()
	h := z.Hash(start)
	g.Move(22, 17)
	h1 := z.Update(h, start, g.Key())
	is.True(h1 != h)
	is.Equal(z.Update(h1, g.Key(), start), h)
}
