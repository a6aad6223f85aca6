// Package board holds the 8x8 checkers board. Only the 32 dark squares are
// playable; they are addressed by a cell index from 0 (top left) to 31
// (bottom right), four per row.
package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Dim is the width and height of the board.
	Dim = 8
	// NumCells is the number of playable (dark) squares.
	NumCells = 32
	// CellsPerRow is the number of playable squares on each row.
	CellsPerRow = Dim / 2
)

// A Cell is the content of a playable square.
type Cell int8

const (
	Empty Cell = iota
	BlackMan
	WhiteMan
	BlackKing
	WhiteKing
	// Invalid is returned when asking for a square that is off the board
	// or not playable.
	Invalid
)

// NumCellKinds is the number of distinct values a playable square can hold.
const NumCellKinds = int(Invalid)

var ErrBadBoardText = errors.New("bad board text")

func (c Cell) IsBlack() bool { return c == BlackMan || c == BlackKing }
func (c Cell) IsWhite() bool { return c == WhiteMan || c == WhiteKing }
func (c Cell) IsKing() bool  { return c == BlackKing || c == WhiteKing }
func (c Cell) IsMan() bool   { return c == BlackMan || c == WhiteMan }

// IsPiece returns true if the cell holds a piece of either color.
func (c Cell) IsPiece() bool { return c.IsBlack() || c.IsWhite() }

// IsOpponent returns true if c and o are pieces of different colors.
func (c Cell) IsOpponent(o Cell) bool {
	return (c.IsBlack() && o.IsWhite()) || (c.IsWhite() && o.IsBlack())
}

// Crowned returns the king version of a man. Kings and non-pieces are
// returned unchanged.
func (c Cell) Crowned() Cell {
	switch c {
	case BlackMan:
		return BlackKing
	case WhiteMan:
		return WhiteKing
	}
	return c
}

func (c Cell) String() string {
	return string(c.rune())
}

func (c Cell) rune() rune {
	switch c {
	case Empty:
		return '-'
	case BlackMan:
		return 'b'
	case WhiteMan:
		return 'w'
	case BlackKing:
		return 'B'
	case WhiteKing:
		return 'W'
	}
	return '.'
}

func cellFromRune(r rune) (Cell, bool) {
	switch r {
	case '-', '_':
		return Empty, true
	case 'b':
		return BlackMan, true
	case 'w':
		return WhiteMan, true
	case 'B':
		return BlackKing, true
	case 'W':
		return WhiteKing, true
	}
	return Invalid, false
}

// A Point is a square given by column (X) and row (Y), both from 0 to 7.
// Row 0 is the top of the board, where black starts.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ToIndex converts a point to a cell index, or -1 if the point is not a
// playable square.
func ToIndex(p Point) int {
	if p.X < 0 || p.Y < 0 || p.X >= Dim || p.Y >= Dim {
		return -1
	}
	if (p.X+p.Y)%2 == 0 {
		return -1
	}
	return p.Y*CellsPerRow + p.X/2
}

// ToPoint converts a cell index to a point. An invalid index gives (-1,-1).
func ToPoint(idx int) Point {
	if !IsValidIndex(idx) {
		return Point{-1, -1}
	}
	y := idx / CellsPerRow
	x := 2*(idx%CellsPerRow) + (y+1)%2
	return Point{x, y}
}

func IsValidIndex(idx int) bool {
	return idx >= 0 && idx < NumCells
}

// Middle returns the index of the cell jumped over when moving from start to
// end, or -1 if the two cells are not exactly two diagonal steps apart.
func Middle(start, end int) int {
	if !IsValidIndex(start) || !IsValidIndex(end) {
		return -1
	}
	s, e := ToPoint(start), ToPoint(end)
	dx, dy := e.X-s.X, e.Y-s.Y
	if (dx != 2 && dx != -2) || (dy != 2 && dy != -2) {
		return -1
	}
	return ToIndex(Point{s.X + dx/2, s.Y + dy/2})
}

// Board is a fixed-size array, so assigning a Board copies it.
type Board struct {
	cells [NumCells]Cell
}

// NewBoard returns a board in the standard starting layout: black on the
// first three rows, white on the last three.
func NewBoard() Board {
	var b Board
	for i := 0; i < 12; i++ {
		b.cells[i] = BlackMan
	}
	for i := 20; i < NumCells; i++ {
		b.cells[i] = WhiteMan
	}
	return b
}

// FromCells builds a board from the output of Cells.
func FromCells(cells [NumCells]Cell) Board {
	return Board{cells: cells}
}

// Get returns the cell at idx, or Invalid if idx is out of range.
func (b *Board) Get(idx int) Cell {
	if !IsValidIndex(idx) {
		return Invalid
	}
	return b.cells[idx]
}

func (b *Board) GetAt(p Point) Cell {
	return b.Get(ToIndex(p))
}

// Set sets the cell at idx. Out-of-range indices are ignored.
func (b *Board) Set(idx int, c Cell) {
	if !IsValidIndex(idx) || c == Invalid {
		return
	}
	b.cells[idx] = c
}

func (b *Board) SetAt(p Point, c Cell) {
	b.Set(ToIndex(p), c)
}

// Cells returns a copy of the board contents.
func (b *Board) Cells() [NumCells]Cell {
	return b.cells
}

// Find returns the indices holding c, in ascending order.
func (b *Board) Find(c Cell) []int {
	var found []int
	for i, v := range b.cells {
		if v == c {
			found = append(found, i)
		}
	}
	return found
}

// Count returns how many cells hold any of the given values.
func (b *Board) Count(cs ...Cell) int {
	n := 0
	for _, v := range b.cells {
		for _, c := range cs {
			if v == c {
				n++
				break
			}
		}
	}
	return n
}

// Rows renders the board as 8 strings of 8 runes each: '.' for light
// squares, '-' for empty dark squares and b/w/B/W for pieces. Parse reads
// the same format back.
func (b *Board) Rows() []string {
	rows := make([]string, Dim)
	for y := 0; y < Dim; y++ {
		var sb strings.Builder
		for x := 0; x < Dim; x++ {
			sb.WriteRune(b.GetAt(Point{x, y}).rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// Parse builds a board from the output of Rows. '_' is accepted as an
// empty dark square and ' ' as a light square.
func Parse(rows []string) (Board, error) {
	var b Board
	if len(rows) != Dim {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrBadBoardText, Dim, len(rows))
	}
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != Dim {
			return b, fmt.Errorf("%w: row %d has %d squares", ErrBadBoardText, y, len(runes))
		}
		for x, r := range runes {
			p := Point{x, y}
			if ToIndex(p) == -1 {
				if r != '.' && r != ' ' {
					return b, fmt.Errorf("%w: piece on light square %v", ErrBadBoardText, p)
				}
				continue
			}
			c, ok := cellFromRune(r)
			if !ok {
				return b, fmt.Errorf("%w: unknown square %q at %v", ErrBadBoardText, r, p)
			}
			b.SetAt(p, c)
		}
	}
	return b, nil
}

// ToDisplayText renders the board with column letters and, to the right of
// each row, the cell indices of its playable squares.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("   a b c d e f g h\n")
	for y := 0; y < Dim; y++ {
		fmt.Fprintf(&sb, "%d  ", y)
		for x := 0; x < Dim; x++ {
			sb.WriteRune(b.GetAt(Point{x, y}).rune())
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "   %2d-%2d\n", y*CellsPerRow, y*CellsPerRow+CellsPerRow-1)
	}
	return sb.String()
}
