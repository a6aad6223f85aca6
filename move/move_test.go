package move

import (
	"testing"

	"github.com/matryer/is"
)

func TestShortDescription(t *testing.T) {
	is := is.New(t)
	is.Equal(NewMove(21, 17, 0).ShortDescription(), "21-17")
	is.Equal(NewMove(21, 14, 0).ShortDescription(), "21x14")
	is.Equal(NoMove.ShortDescription(), "(none)")
	is.True(NewMove(21, 14, 0).IsCapture())
	is.True(!NewMove(21, 17, 0).IsCapture())
}

func TestSortByValuationIsStable(t *testing.T) {
	is := is.New(t)
	a := NewMove(20, 16, 5)
	b := NewMove(21, 16, -3)
	c := NewMove(21, 17, 5)
	d := NewMove(22, 17, 0)
	moves := []*Move{a, b, c, d}
	SortByValuation(moves)
	is.Equal(moves, []*Move{b, d, a, c})
}
