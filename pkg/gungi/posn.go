package gungi

import (
	"fmt"
	"slices"
)

// BoardLength is the side length of the board. The board is BoardLength by
// BoardLength squares.
const BoardLength = 9

// Posn is a position on the board, given by a zero-based column and row.
// Column 0 is the 'a' file, row 0 is the '1' rank.
type Posn struct {
	Col int
	Row int
}

// NewPosn returns the position at the given column and row.
func NewPosn(col, row int) Posn {
	return Posn{Col: col, Row: row}
}

// IsValid reports whether p lies on the board.
func (p Posn) IsValid() bool {
	return p.Col >= 0 && p.Col < BoardLength && p.Row >= 0 && p.Row < BoardLength
}

// Index returns p interpreted as an index into a row-major array of squares.
func (p Posn) Index() int {
	return BoardLength*p.Row + p.Col
}

// Adjacent returns the direction from p to p2, or MoveDirNone if p2 is not
// one step away from p in any of the eight directions.
func (p Posn) Adjacent(p2 Posn) MoveDir {
	for _, d := range allDirections {
		if p.step(d, false) == p2 {
			return d
		}
	}
	return MoveDirNone
}

// Up returns the position one row towards Black's side (row+1); if invert is
// true, the direction is reversed (used for Black's inverted movement).
func (p Posn) Up(invert bool) Posn {
	return p.step(MoveDirUp, invert)
}

// Down returns the position one row towards White's side (row-1), honouring
// invert the same way Up does.
func (p Posn) Down(invert bool) Posn {
	return p.step(MoveDirDown, invert)
}

// Left returns the position one column to the left, honouring invert the
// same way Up does.
func (p Posn) Left(invert bool) Posn {
	return p.step(MoveDirLeft, invert)
}

// Right returns the position one column to the right, honouring invert the
// same way Up does.
func (p Posn) Right(invert bool) Posn {
	return p.step(MoveDirRight, invert)
}

// step moves p by the given direction. Diagonal directions are decomposed
// into axis moves by diagonalStep.
func (p Posn) step(d MoveDir, invert bool) Posn {
	out := p
	switch d {
	case MoveDirUp:
		if invert {
			out.Row--
		} else {
			out.Row++
		}
	case MoveDirDown:
		if invert {
			out.Row++
		} else {
			out.Row--
		}
	case MoveDirLeft:
		if invert {
			out.Col++
		} else {
			out.Col--
		}
	case MoveDirRight:
		if invert {
			out.Col--
		} else {
			out.Col++
		}
	default:
		out = p.diagonalStep(d, invert)
	}
	return out
}

// diagonalStep applies a combined up/down + left/right direction one square
// at a time, matching the axis semantics of step.
func (p Posn) diagonalStep(d MoveDir, invert bool) Posn {
	out := p
	if d&MoveDirUp != 0 {
		out = out.step(MoveDirUp, invert)
	}
	if d&MoveDirDown != 0 {
		out = out.step(MoveDirDown, invert)
	}
	if d&MoveDirLeft != 0 {
		out = out.step(MoveDirLeft, invert)
	}
	if d&MoveDirRight != 0 {
		out = out.step(MoveDirRight, invert)
	}
	return out
}

func (p Posn) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

// PosnSet is an unordered collection of positions.
type PosnSet []Posn

// Contains reports whether s contains p.
func (s PosnSet) Contains(p Posn) bool {
	return slices.Contains(s, p)
}
