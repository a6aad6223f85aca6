package equity

import (
	"github.com/domino14/kingme/board"
	"github.com/domino14/kingme/game"
)

// PositionEvaluator weighs material first, then how far men have advanced,
// whether the home row is still guarded, and control of the center.
type PositionEvaluator struct {
	ManValue     int
	KingValue    int
	AdvanceBonus int // per row a man has travelled
	BackRowBonus int // per man still on its home row
	CenterBonus  int // per piece on the four central rows' middle squares
}

func NewPositionEvaluator() *PositionEvaluator {
	return &PositionEvaluator{
		ManValue:     100,
		KingValue:    160,
		AdvanceBonus: 4,
		BackRowBonus: 8,
		CenterBonus:  6,
	}
}

func isCenter(p board.Point) bool {
	return p.X >= 2 && p.X <= 5 && p.Y >= 2 && p.Y <= 5
}

func (e *PositionEvaluator) pieceValue(c board.Cell, p board.Point) int {
	v := 0
	switch c {
	case board.BlackMan:
		v = e.ManValue + e.AdvanceBonus*p.Y
		if p.Y == 0 {
			v += e.BackRowBonus
		}
	case board.WhiteMan:
		v = e.ManValue + e.AdvanceBonus*(board.Dim-1-p.Y)
		if p.Y == board.Dim-1 {
			v += e.BackRowBonus
		}
	case board.BlackKing, board.WhiteKing:
		v = e.KingValue
	}
	if isCenter(p) {
		v += e.CenterBonus
	}
	return v
}

func (e *PositionEvaluator) Evaluate(g *game.Game, forP2 bool) int {
	b := g.Board()
	black, white := 0, 0
	for idx := 0; idx < board.NumCells; idx++ {
		c := b.Get(idx)
		if !c.IsPiece() {
			continue
		}
		v := e.pieceValue(c, board.ToPoint(idx))
		if c.IsBlack() {
			black += v
		} else {
			white += v
		}
	}
	if forP2 {
		return clamp(black - white)
	}
	return clamp(white - black)
}

// MaterialEvaluator counts pieces only: one point per man, KingWeight per
// king.
type MaterialEvaluator struct {
	KingWeight int
}

func (e MaterialEvaluator) Evaluate(g *game.Game, forP2 bool) int {
	kw := e.KingWeight
	if kw == 0 {
		kw = 2
	}
	b := g.Board()
	black := b.Count(board.BlackMan) + kw*b.Count(board.BlackKing)
	white := b.Count(board.WhiteMan) + kw*b.Count(board.WhiteKing)
	if forP2 {
		return clamp(black - white)
	}
	return clamp(white - black)
}
