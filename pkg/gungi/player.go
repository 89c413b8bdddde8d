package gungi

import (
	"slices"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Player tracks one side's colour, its commander, and every unit it owns
// (whether on the board or held in hand).
type Player struct {
	colour Colour

	commander lang.Optional[Handle]
	units     []Handle
}

// NewPlayer returns an empty player of the given colour.
func NewPlayer(colour Colour) *Player {
	return &Player{colour: colour}
}

// Colour returns the player's side.
func (p *Player) Colour() Colour {
	return p.colour
}

// Reset drops every unit the player owns, leaving it empty. The caller is
// responsible for detaching those units from any tower first.
func (p *Player) Reset() {
	p.commander = lang.Optional[Handle]{}
	p.units = nil
}

// Commander returns the player's commander handle, or InvalidHandle and
// false if the player has not yet been assigned one.
func (p *Player) Commander() (Handle, bool) {
	return p.commander.V()
}

// Units returns every handle the player owns, on the board or in hand.
func (p *Player) Units() []Handle {
	return p.units
}

// ActiveUnits returns the handles of units the player owns that currently
// occupy a tower.
func (p *Player) ActiveUnits(arena *Arena) []Handle {
	var out []Handle
	for _, h := range p.units {
		if arena.Unit(h).IsActive() {
			out = append(out, h)
		}
	}
	return out
}

// InactiveUnits returns the handles of units the player owns that are
// currently held in hand.
func (p *Player) InactiveUnits(arena *Arena) []Handle {
	var out []Handle
	for _, h := range p.units {
		if !arena.Unit(h).IsActive() {
			out = append(out, h)
		}
	}
	return out
}

// hasUnit reports whether handle is already owned by the player.
func (p *Player) hasUnit(handle Handle) bool {
	return slices.Contains(p.units, handle)
}

// AddUnit binds handle to the player, setting its colour. It fails with
// ErrDuplicate if the handle is already owned. A unit whose active front is
// Commander becomes the player's commander; a player may only ever have one,
// so binding a second commander handle is an internal invariant violation.
func (p *Player) AddUnit(arena *Arena, handle Handle) Error {
	if p.hasUnit(handle) {
		return ErrDuplicate
	}
	u := arena.Unit(handle)
	u.setColour(p.colour)
	if u.Front() == Commander {
		if _, ok := p.commander.V(); ok {
			panic("gungi: player already has a commander")
		}
		p.commander = lang.Some(handle)
	}
	p.units = append(p.units, handle)
	return ErrNone
}

// RemoveUnit releases handle from the player. It fails with ErrNotAMember
// if the handle is not owned by the player.
func (p *Player) RemoveUnit(arena *Arena, handle Handle) Error {
	idx := slices.Index(p.units, handle)
	if idx < 0 {
		return ErrNotAMember
	}
	if arena.Unit(handle).Front() == Commander {
		p.commander = lang.Optional[Handle]{}
	}
	p.units = append(p.units[:idx], p.units[idx+1:]...)
	return ErrNone
}
