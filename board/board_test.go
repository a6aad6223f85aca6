package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestIndexRoundTrip(t *testing.T) {
	is := is.New(t)
	for idx := 0; idx < NumCells; idx++ {
		p := ToPoint(idx)
		is.True((p.X+p.Y)%2 == 1) // playable squares are dark
		is.Equal(ToIndex(p), idx)
	}
	is.Equal(ToIndex(Point{0, 0}), -1)
	is.Equal(ToIndex(Point{8, 1}), -1)
	is.Equal(ToPoint(32), Point{-1, -1})
	is.Equal(ToPoint(-1), Point{-1, -1})
}

func TestKnownIndices(t *testing.T) {
	is := is.New(t)
	is.Equal(ToIndex(Point{1, 0}), 0)
	is.Equal(ToIndex(Point{0, 1}), 4)
	is.Equal(ToIndex(Point{2, 5}), 21)
	is.Equal(ToIndex(Point{3, 4}), 17)
	is.Equal(ToIndex(Point{4, 3}), 14)
	is.Equal(ToIndex(Point{6, 7}), 31)
}

func TestMiddle(t *testing.T) {
	is := is.New(t)
	is.Equal(Middle(21, 14), 17)
	is.Equal(Middle(14, 21), 17)
	is.Equal(Middle(21, 16), -1) // single step
	is.Equal(Middle(0, 31), -1)
	is.Equal(Middle(-1, 5), -1)
}

func TestNewBoard(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.Equal(b.Count(BlackMan), 12)
	is.Equal(b.Count(WhiteMan), 12)
	is.Equal(b.Count(Empty), 8)
	is.Equal(b.Find(BlackMan)[0], 0)
	is.Equal(b.Find(WhiteMan)[0], 20)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	c := b
	c.Set(0, Empty)
	is.Equal(b.Get(0), BlackMan)
	is.Equal(c.Get(0), Empty)
}

func TestParseRoundTrip(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.Set(13, WhiteKing)
	parsed, err := Parse(b.Rows())
	is.NoErr(err)
	is.Equal(parsed, b)
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	_, err := Parse([]string{"-"})
	is.True(errors.Is(err, ErrBadBoardText))

	nb := NewBoard()
	rows := nb.Rows()
	rows[0] = "b-b-b-b-" // pieces on light squares
	_, err = Parse(rows)
	is.True(errors.Is(err, ErrBadBoardText))

	nb = NewBoard()
	rows = nb.Rows()
	rows[3] = ".x.-.-.-"
	_, err = Parse(rows)
	is.True(errors.Is(err, ErrBadBoardText))
}

func TestCellPredicates(t *testing.T) {
	is := is.New(t)
	is.True(BlackMan.IsOpponent(WhiteKing))
	is.True(!BlackMan.IsOpponent(BlackKing))
	is.True(!Empty.IsOpponent(WhiteMan))
	is.Equal(BlackMan.Crowned(), BlackKing)
	is.Equal(WhiteKing.Crowned(), WhiteKing)
	is.Equal(Empty.Crowned(), Empty)
}
