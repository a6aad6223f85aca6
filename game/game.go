// Package game holds a checkers position: the board, the side to move, and
// the cell a capturing piece must continue from, if any. It enforces the
// rules of play: forced capture, multi-jump continuation and promotion.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/kingme/board"
	"github.com/domino14/kingme/movegen"
)

// NoSkip is the skip index when no capture sequence is in progress.
const NoSkip = -1

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

// Game is a position. Player one plays white and moves first; player two
// plays black.
type Game struct {
	board     board.Board
	p2Turn    bool
	skipIndex int
}

// Key identifies a position exactly. Two games are equal iff their keys are
// equal; it is comparable and can be used as a map key.
type Key struct {
	Cells     [board.NumCells]board.Cell
	P2Turn    bool
	SkipIndex int8
}

// NewGame returns a game in the starting position, white to move.
func NewGame() *Game {
	return &Game{board: board.NewBoard(), skipIndex: NoSkip}
}

// NewGameFromBoard sets up an arbitrary position. A skipIndex that does not
// name a valid cell is stored as NoSkip.
func NewGameFromBoard(b board.Board, p2Turn bool, skipIndex int) *Game {
	if !board.IsValidIndex(skipIndex) {
		skipIndex = NoSkip
	}
	return &Game{board: b, p2Turn: p2Turn, skipIndex: skipIndex}
}

// FromKey rebuilds the position a key was taken from.
func FromKey(k Key) *Game {
	return NewGameFromBoard(board.FromCells(k.Cells), k.P2Turn, int(k.SkipIndex))
}

// Copy returns an independent copy of the game.
func (g *Game) Copy() *Game {
	c := *g
	return &c
}

// Board returns the game's board. Callers must not modify it; use Move.
func (g *Game) Board() *board.Board {
	return &g.board
}

func (g *Game) IsP2Turn() bool {
	return g.p2Turn
}

// SkipIndex returns the cell the side to move must continue capturing from,
// or NoSkip.
func (g *Game) SkipIndex() int {
	return g.skipIndex
}

func (g *Game) Key() Key {
	return Key{Cells: g.board.Cells(), P2Turn: g.p2Turn, SkipIndex: int8(g.skipIndex)}
}

// Equals compares board, side to move and skip index.
func (g *Game) Equals(o *Game) bool {
	if o == nil {
		return false
	}
	return g.Key() == o.Key()
}

func (g *Game) owns(c board.Cell) bool {
	if g.p2Turn {
		return c.IsBlack()
	}
	return c.IsWhite()
}

// Pieces returns the cells of the side to move: men first, then kings, each
// in ascending cell order.
func (g *Game) Pieces() []int {
	if g.p2Turn {
		return append(g.board.Find(board.BlackMan), g.board.Find(board.BlackKing)...)
	}
	return append(g.board.Find(board.WhiteMan), g.board.Find(board.WhiteKing)...)
}

// HasSkip returns true if the side to move has at least one capture.
func (g *Game) HasSkip() bool {
	if g.skipIndex != NoSkip {
		return len(movegen.Skips(&g.board, g.skipIndex)) > 0
	}
	for _, idx := range g.Pieces() {
		if len(movegen.Skips(&g.board, idx)) > 0 {
			return true
		}
	}
	return false
}

// LegalMoves returns every legal (start, end) pair for the side to move,
// honoring forced capture and any capture sequence in progress.
func (g *Game) LegalMoves() [][2]int {
	var moves [][2]int
	if g.skipIndex != NoSkip {
		for _, end := range movegen.Skips(&g.board, g.skipIndex) {
			moves = append(moves, [2]int{g.skipIndex, end})
		}
		return moves
	}
	pieces := g.Pieces()
	for _, idx := range pieces {
		for _, end := range movegen.Skips(&g.board, idx) {
			moves = append(moves, [2]int{idx, end})
		}
	}
	if len(moves) > 0 {
		return moves
	}
	for _, idx := range pieces {
		for _, end := range movegen.Moves(&g.board, idx) {
			moves = append(moves, [2]int{idx, end})
		}
	}
	return moves
}

func (g *Game) hasAnyMove() bool {
	if g.skipIndex != NoSkip {
		return len(movegen.Skips(&g.board, g.skipIndex)) > 0
	}
	for _, idx := range g.Pieces() {
		if len(movegen.Skips(&g.board, idx)) > 0 || len(movegen.Moves(&g.board, idx)) > 0 {
			return true
		}
	}
	return false
}

// IsGameOver returns true if the side to move has no legal move, which
// includes having no pieces left.
func (g *Game) IsGameOver() bool {
	return !g.hasAnyMove()
}

// Winner reports the winner of a finished game. ok is false while the game
// is still being played.
func (g *Game) Winner() (p2 bool, ok bool) {
	if !g.IsGameOver() {
		return false, false
	}
	return !g.p2Turn, true
}

// ValidateMove checks that moving the piece on start to end is legal for
// the side to move. The returned error wraps ErrIllegalMove.
func (g *Game) ValidateMove(start, end int) error {
	if !board.IsValidIndex(start) || !board.IsValidIndex(end) {
		return fmt.Errorf("%w: cells %d, %d are not on the board", ErrIllegalMove, start, end)
	}
	piece := g.board.Get(start)
	if !g.owns(piece) {
		return fmt.Errorf("%w: no piece of the side to move on %d", ErrIllegalMove, start)
	}
	if g.board.Get(end) != board.Empty {
		return fmt.Errorf("%w: cell %d is occupied", ErrIllegalMove, end)
	}
	if g.skipIndex != NoSkip && start != g.skipIndex {
		return fmt.Errorf("%w: must continue capturing from %d", ErrIllegalMove, g.skipIndex)
	}
	if board.Middle(start, end) != -1 {
		if !movegen.IsValidSkip(&g.board, start, end) {
			return fmt.Errorf("%w: %d cannot capture to %d", ErrIllegalMove, start, end)
		}
		return nil
	}
	if g.skipIndex != NoSkip || g.HasSkip() {
		return fmt.Errorf("%w: a capture is mandatory", ErrIllegalMove)
	}
	if !movegen.IsValidMove(&g.board, start, end) {
		return fmt.Errorf("%w: %d cannot move to %d", ErrIllegalMove, start, end)
	}
	return nil
}

// Move plays start to end if it is legal and returns whether it was played.
// An illegal move, including the (-1, -1) "no move", leaves the game
// untouched.
func (g *Game) Move(start, end int) bool {
	if g.ValidateMove(start, end) != nil {
		return false
	}
	g.apply(start, end)
	return true
}

// PlayMove is Move with the reason for a rejection.
func (g *Game) PlayMove(start, end int) error {
	if err := g.ValidateMove(start, end); err != nil {
		return err
	}
	g.apply(start, end)
	return nil
}

func (g *Game) apply(start, end int) {
	piece := g.board.Get(start)
	g.board.Set(start, board.Empty)
	mid := board.Middle(start, end)
	if mid != -1 {
		g.board.Set(mid, board.Empty)
	}

	promoted := false
	row := board.ToPoint(end).Y
	if (piece == board.BlackMan && row == board.Dim-1) || (piece == board.WhiteMan && row == 0) {
		piece = piece.Crowned()
		promoted = true
	}
	g.board.Set(end, piece)

	// A capture continues while the same piece can keep jumping. Being
	// crowned ends the turn.
	if mid != -1 && !promoted && len(movegen.Skips(&g.board, end)) > 0 {
		g.skipIndex = end
		return
	}
	g.skipIndex = NoSkip
	g.p2Turn = !g.p2Turn
}

// SideName returns "white" or "black".
func SideName(p2 bool) string {
	if p2 {
		return "black"
	}
	return "white"
}

func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	if p2, over := g.Winner(); over {
		fmt.Fprintf(&sb, "Game over, %s wins.\n", SideName(p2))
		return sb.String()
	}
	fmt.Fprintf(&sb, "%s to move", SideName(g.p2Turn))
	if g.skipIndex != NoSkip {
		fmt.Fprintf(&sb, ", must continue capturing from %d", g.skipIndex)
	}
	sb.WriteString("\n")
	return sb.String()
}
