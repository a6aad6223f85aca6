package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/kingme/board"
)

func at(x, y int) int { return board.ToIndex(board.Point{X: x, Y: y}) }

func TestMovesFromStart(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	// back-row black men are blocked by their own pieces
	is.Equal(len(Moves(&b, 0)), 0)
	// front-row black man at (1,2) steps to (0,3) and (2,3)
	is.Equal(Moves(&b, at(1, 2)), []int{at(0, 3), at(2, 3)})
	// white men move up
	is.Equal(Moves(&b, at(0, 5)), []int{at(1, 4)})
	is.Equal(len(Moves(&b, at(0, 7))), 0)
	// empty square
	is.Equal(len(Moves(&b, at(0, 3))), 0)
}

func TestSkips(t *testing.T) {
	is := is.New(t)
	var b board.Board
	b.Set(at(2, 5), board.WhiteMan)
	b.Set(at(3, 4), board.BlackMan)
	is.Equal(Skips(&b, at(2, 5)), []int{at(4, 3)})
	is.True(IsValidSkip(&b, at(2, 5), at(4, 3)))
	is.True(!IsValidSkip(&b, at(2, 5), at(0, 3)))

	// landing square occupied
	b.Set(at(4, 3), board.WhiteMan)
	is.Equal(len(Skips(&b, at(2, 5))), 0)

	// men cannot capture backwards
	var back board.Board
	back.Set(at(2, 3), board.WhiteMan)
	back.Set(at(3, 4), board.BlackMan)
	is.Equal(len(Skips(&back, at(2, 3))), 0)
	back.Set(at(2, 3), board.WhiteKing)
	is.Equal(Skips(&back, at(2, 3)), []int{at(4, 5)})
}

func TestSkipsOwnPiece(t *testing.T) {
	is := is.New(t)
	var b board.Board
	b.Set(at(2, 5), board.WhiteMan)
	b.Set(at(3, 4), board.WhiteKing)
	is.Equal(len(Skips(&b, at(2, 5))), 0)
}

func TestKingMoves(t *testing.T) {
	is := is.New(t)
	var b board.Board
	b.Set(at(3, 4), board.BlackKing)
	is.Equal(len(Moves(&b, at(3, 4))), 4)
	is.True(IsValidMove(&b, at(3, 4), at(2, 3)))
	is.True(CanMoveInDirection(board.BlackKing, -1))
	is.True(!CanMoveInDirection(board.BlackMan, -1))
	is.True(!CanMoveInDirection(board.Empty, 1))
}
