package gungi

// MoveDir is a bitmask describing one or more axis directions a move step
// travels in. Diagonal directions are the bitwise OR of their two axis
// components, matching how the underlying catalogue data is expressed.
type MoveDir uint8

const (
	MoveDirNone MoveDir = 0

	MoveDirUp    MoveDir = 1 << 1
	MoveDirDown  MoveDir = 1 << 2
	MoveDirLeft  MoveDir = 1 << 3
	MoveDirRight MoveDir = 1 << 4

	MoveDirUpLeft    = MoveDirUp | MoveDirLeft
	MoveDirUpRight   = MoveDirUp | MoveDirRight
	MoveDirDownLeft  = MoveDirDown | MoveDirLeft
	MoveDirDownRight = MoveDirDown | MoveDirRight
)

// allDirections lists the eight unit directions used when testing adjacency.
var allDirections = []MoveDir{
	MoveDirUp, MoveDirDown, MoveDirLeft, MoveDirRight,
	MoveDirUpLeft, MoveDirUpRight, MoveDirDownLeft, MoveDirDownRight,
}

// MoveMod qualifies how a move step is repeated.
type MoveMod uint8

const (
	// ModNone takes exactly one step in the step's direction.
	ModNone MoveMod = iota
	// ModUnlimited repeats the step in the same direction until the edge
	// of the board or an obstruction is reached.
	ModUnlimited
)

// MoveStep is a single leg of a move sequence: a direction and a modifier
// describing how many times it is applied.
type MoveStep struct {
	Dir MoveDir
	Mod MoveMod
}

// MoveSeq is an ordered chain of steps walked in turn to realize one of a
// piece's possible moves at a given tier (e.g. "up, then up-left").
type MoveSeq []MoveStep

// Moveset holds, for a single tower tier, every move sequence a piece can
// perform from that tier.
type Moveset []MoveSeq

// walkStep advances pos by one square along every axis bit still present in
// dir, clearing axis bits that are not unlimited so a MoveStep of ModNone
// only ever applies once per axis component.
func walkStep(pos Posn, dir *MoveDir, mod MoveMod, invert bool) Posn {
	if *dir&MoveDirUp != 0 {
		pos = pos.Up(invert)
		if mod == ModNone {
			*dir &^= MoveDirUp
		}
	}
	if *dir&MoveDirDown != 0 {
		pos = pos.Down(invert)
		if mod == ModNone {
			*dir &^= MoveDirDown
		}
	}
	if *dir&MoveDirLeft != 0 {
		pos = pos.Left(invert)
		if mod == ModNone {
			*dir &^= MoveDirLeft
		}
	}
	if *dir&MoveDirRight != 0 {
		pos = pos.Right(invert)
		if mod == ModNone {
			*dir &^= MoveDirRight
		}
	}
	return pos
}

// anyWalk reports whether the given moveset, starting at start, can reach any
// square on the board. invert flips the board-relative sense of up/down/
// left/right, used for Black's inverted movement.
func anyWalk(moveset Moveset, start Posn, invert bool) bool {
	for _, seq := range moveset {
		pos := start
		for _, step := range seq {
			dir := step.Dir
			for dir != MoveDirNone {
				pos = walkStep(pos, &dir, step.Mod, invert)
				if step.Mod == ModUnlimited && pos.IsValid() {
					return true
				} else if !pos.IsValid() {
					break
				}
			}
		}
		if pos.IsValid() {
			return true
		}
	}
	return false
}

// allWalks returns every square the given moveset can reach from start.
func allWalks(moveset Moveset, start Posn, invert bool) PosnSet {
	var posns PosnSet
	for _, seq := range moveset {
		pos := start
		for _, step := range seq {
			dir := step.Dir
			for dir != MoveDirNone {
				pos = walkStep(pos, &dir, step.Mod, invert)
				if step.Mod == ModUnlimited && pos.IsValid() {
					posns = append(posns, pos)
				} else if !pos.IsValid() {
					break
				}
			}
		}
		if pos.IsValid() {
			posns = append(posns, pos)
		}
	}
	return posns
}

// getWalk returns the ordered set of squares (including start but excluding
// none) traversed by the first move sequence in moveset that reaches end
// exactly, along with ErrNone. If no sequence reaches end, it returns
// ErrNoWalk.
func getWalk(moveset Moveset, start, end Posn, invert bool) (PosnSet, Error) {
	for _, seq := range moveset {
		posns := PosnSet{start}
		pos := start
		for _, step := range seq {
			dir := step.Dir
			for dir != MoveDirNone {
				pos = walkStep(pos, &dir, step.Mod, invert)
				posns = append(posns, pos)
				if pos == end || !pos.IsValid() {
					break
				}
			}
		}
		if pos == end {
			return posns, ErrNone
		}
	}
	return nil, ErrNoWalk
}

// crossed returns the squares strictly between a and b on the Bresenham line
// from a to b, excluding a and b themselves; a and b need not share a
// straight or diagonal line. The result is empty if a and b are adjacent,
// and nil if they are the same square.
func crossed(a, b Posn) PosnSet {
	x0, y0 := a.Col, a.Row
	x1, y1 := b.Col, b.Row

	dx := abs(x0 - x1)
	dy := abs(y0 - y1)

	x, y := x0, y0

	n := 1 + dx + dy
	xInc := -1
	if x1 > x0 {
		xInc = 1
	}
	yInc := -1
	if y1 > y0 {
		yInc = 1
	}
	errTerm := dx - dy
	dx *= 2
	dy *= 2

	var posns PosnSet
	for ; n > 0; n-- {
		posns = append(posns, NewPosn(x, y))

		if errTerm > 0 {
			x += xInc
			errTerm -= dy
		} else if errTerm < 0 {
			y += yInc
			errTerm += dx
		} else {
			x += xInc
			y += yInc
			n--
		}
	}

	if len(posns) < 2 {
		return nil
	}
	return posns[1 : len(posns)-1]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
