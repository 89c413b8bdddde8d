package gungi

import "github.com/seekerror/stdlib/pkg/lang"

// Handle is a stable index into an Arena's unit slice. Towers and players
// never hold a unit directly; they hold its Handle, so a unit's tower
// back-reference never creates a reference cycle.
type Handle int

// InvalidHandle is returned where no handle is applicable.
const InvalidHandle Handle = -1

// location is a unit's non-owning back-reference to the tower tier it
// currently occupies.
type location struct {
	posn Posn
	tier int
}

// Unit is one physical piece, possibly two-sided. front is the currently
// active identity, back the currently inactive one (PieceNone if the unit
// has no back, i.e. a Commander). flip swaps which side is active, which is
// why front/back are mutable fields rather than a fixed pair plus an
// orientation flag: it mirrors how the identity is actually exchanged.
type Unit struct {
	front Piece
	back  Piece

	colour Colour

	at lang.Optional[location]
}

// NewUnit returns a unit whose active identity is front, with back as the
// identity that flip would reveal (PieceNone if the piece has no back).
func NewUnit(front, back Piece) *Unit {
	return &Unit{front: front, back: back}
}

// Front returns the unit's currently active identity.
func (u *Unit) Front() Piece {
	return u.front
}

// Back returns the unit's currently inactive identity, or PieceNone if the
// unit has no back side.
func (u *Unit) Back() Piece {
	return u.back
}

// Colour returns the unit's owning player colour.
func (u *Unit) Colour() Colour {
	return u.colour
}

// setColour is called by Player.AddUnit each time the unit is bound to a
// side, including when a capture or recovery moves it to the other player.
func (u *Unit) setColour(c Colour) {
	u.colour = c
}

// Flip swaps the unit's active and inactive identities. It fails with
// ErrNoBack if the unit has no back side.
func (u *Unit) Flip() Error {
	if u.back == PieceNone {
		return ErrNoBack
	}
	u.front, u.back = u.back, u.front
	return ErrNone
}

// Effect returns the effect bitfield of the unit's active identity.
func (u *Unit) Effect() Effect {
	return u.front.Effect()
}

// Immunity returns the immunity bitfield of the unit's active identity.
func (u *Unit) Immunity() Effect {
	return u.front.Immunity()
}

// Moveset returns the move sequences available to the unit's active
// identity at the given tier.
func (u *Unit) Moveset(tier int) Moveset {
	return u.front.Moveset(tier)
}

// Code returns the two-letter GN identifier pair for the unit's current
// orientation: the active identity's letter followed by the inactive
// identity's letter (or a placeholder if there is no back).
func (u *Unit) Code() string {
	back := "-"
	if u.back != PieceNone {
		back = u.back.GN()
	}
	return u.front.GN() + back
}

// IsActive reports whether the unit currently occupies a tower.
func (u *Unit) IsActive() bool {
	_, ok := u.at.V()
	return ok
}

// Posn returns the square the unit occupies and true, or the zero Posn and
// false if the unit is not currently on the board.
func (u *Unit) Posn() (Posn, bool) {
	loc, ok := u.at.V()
	if !ok {
		return Posn{}, false
	}
	return loc.posn, true
}

// Tier returns the tower tier the unit occupies and true, or 0 and false if
// the unit is not currently on the board.
func (u *Unit) Tier() (int, bool) {
	loc, ok := u.at.V()
	if !ok {
		return 0, false
	}
	return loc.tier, true
}

// setLocation records the tower position and tier the unit now occupies.
// Only Tower calls this, keeping it the single writer of unit placement.
func (u *Unit) setLocation(posn Posn, tier int) {
	u.at = lang.Some(location{posn: posn, tier: tier})
}

// clearLocation removes the unit's tower back-reference.
func (u *Unit) clearLocation() {
	u.at = lang.Optional[location]{}
}

// Arena owns every unit created for a game, addressed by stable Handle.
// Towers and players reference units only through their Arena-issued
// handle, never by pointer, so the tower <-> unit relationship never forms
// a reference cycle.
type Arena struct {
	units []*Unit
}

// NewArena returns an empty arena with capacity for n units preallocated.
func NewArena(n int) *Arena {
	return &Arena{units: make([]*Unit, 0, n)}
}

// Add creates a new unit in the arena and returns its handle.
func (a *Arena) Add(front, back Piece) Handle {
	a.units = append(a.units, NewUnit(front, back))
	return Handle(len(a.units) - 1)
}

// Unit dereferences handle. It panics if handle was never issued by this
// arena, the same contract a slice index has.
func (a *Arena) Unit(handle Handle) *Unit {
	return a.units[handle]
}

// Len returns the number of units held by the arena.
func (a *Arena) Len() int {
	return len(a.units)
}

// Reset clears every unit's tower back-reference, leaving the arena's
// handles valid but its units unplaced. Colours are left unchanged.
func (a *Arena) Reset() {
	for _, u := range a.units {
		u.at = lang.Optional[location]{}
	}
}
