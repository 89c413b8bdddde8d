package gn

import (
	"fmt"
	"strings"

	"github.com/hkpeprah/gungi/pkg/gungi"
)

// Encoder wraps a controller and records the Gungi Notation movetext for
// every action successfully applied through it. There is no way to recover
// a move's notation from controller state alone (the controller keeps no
// move history), so an Encoder must observe every mutating call made to the
// game from the start; it otherwise only reads the wrapped controller.
type Encoder struct {
	controller *gungi.Controller
	metadata   Metadata

	moves     []string
	moveCount int
}

// NewEncoder returns an encoder recording moves applied to controller.
func NewEncoder(controller *gungi.Controller) *Encoder {
	return &Encoder{controller: controller, moveCount: 1}
}

// Controller returns the controller the encoder wraps.
func (e *Encoder) Controller() *gungi.Controller {
	return e.controller
}

// Import decodes doc from a fresh controller, replacing both the encoder's
// controller and its recorded movetext with the decoded game: re-decoding
// rather than reconstructing notation from the final position means the
// document's own move text, not a re-derivation of it, is what Encode later
// reproduces. On failure the encoder is left unchanged.
func (e *Encoder) Import(doc string) error {
	controller := gungi.NewController()

	var moves []string
	md, err := decode(doc, controller, func(move string) error {
		if err := DecodeMove(move, controller); err != nil {
			return err
		}
		moves = append(moves, move)
		return nil
	})
	if err != nil {
		return err
	}

	e.controller = controller
	e.metadata = *md
	e.moves = moves
	return nil
}

// Metadata returns the encoder's header metadata, for the caller to
// populate with SetEvent/SetDate/SetLocation/SetWhite/SetBlack.
func (e *Encoder) Metadata() *Metadata {
	return &e.metadata
}

// Encode renders the full document recorded so far: the header followed by
// movetext written two recorded moves to a line, in the order they were
// recorded, each line prefixed "N."; no "N..." indicator is written.
func (e *Encoder) Encode() string {
	var b strings.Builder
	b.WriteString(e.metadata.Header(e.controller))
	b.WriteString("\n")

	for i := 0; i+1 < len(e.moves); i += 2 {
		fmt.Fprintf(&b, "%d. %s %s\n", i/2+1, e.moves[i], e.moves[i+1])
	}
	if len(e.moves)%2 == 1 {
		fmt.Fprintf(&b, "%d. %s\n", len(e.moves)/2+1, e.moves[len(e.moves)-1])
	}
	return b.String()
}

func (e *Encoder) record(move string) {
	e.moves = append(e.moves, move)
}

func code(front, back gungi.Piece) string {
	return front.GN() + back.GN()
}

// Drop places front/back from the current player's hand at to, recording
// the drop's notation on success.
func (e *Encoder) Drop(front, back gungi.Piece, to gungi.Posn) gungi.Error {
	tier := e.controller.Board()[to.Index()].Height()
	err := e.controller.DropUnitPiece(front, back, to)
	if err.OK() {
		e.record(fmt.Sprintf("%s*%d-%d-%d", code(front, back), to.Col, to.Row, tier))
	}
	return err
}

// Move relocates the unit at the given tier of from to to, recording either
// plain move or mobile strike notation depending on whether the
// destination tower's top was captured.
func (e *Encoder) Move(from gungi.Posn, fromTier int, to gungi.Posn) gungi.Error {
	h, ok := e.controller.UnitAtPosn(from, fromTier)
	if !ok {
		return gungi.ErrInvalidUnit
	}
	u := e.controller.Arena().Unit(h)
	front, back := u.Front(), u.Back()

	target := e.controller.Board()[to.Index()]
	captures := false
	if top, terr := target.Top(); terr.OK() {
		captures = e.controller.Arena().Unit(top).Colour() != u.Colour()
	}

	err := e.controller.MoveUnitAt(from, fromTier, to)
	if !err.OK() {
		return err
	}

	toTier, _ := u.Tier()
	sep := ">"
	if captures {
		sep = "x"
	}
	e.record(fmt.Sprintf("%s<%d-%d-%d%s%d-%d-%d", code(front, back), from.Col, from.Row, fromTier, sep, to.Col, to.Row, toTier))
	return gungi.ErrNone
}

// ImmobileStrike captures the unit at targetTier of the tower the given
// unit occupies, recording immobile-strike notation on success.
func (e *Encoder) ImmobileStrike(posn gungi.Posn, strikerTier, targetTier int) gungi.Error {
	h, ok := e.controller.UnitAtPosn(posn, strikerTier)
	if !ok {
		return gungi.ErrInvalidUnit
	}
	u := e.controller.Arena().Unit(h)
	front, back := u.Front(), u.Back()

	err := e.controller.ImmobileStrikeAt(posn, strikerTier, targetTier)
	if err.OK() {
		e.record(fmt.Sprintf("%s<%d-%d-%dx%d", code(front, back), posn.Col, posn.Row, strikerTier, targetTier))
	}
	return err
}

// ForceRecover resolves the pending forced recovery, recording the '+'
// (recovered to the mover) or '^' (recovered to the opponent) glyph to
// match the destination player the controller actually recorded, or the
// '=' decline glyph if recover is false.
func (e *Encoder) ForceRecover(recover bool) gungi.Error {
	handle, dest, ok := e.controller.ForcedRecovery()
	if !ok {
		return gungi.ErrInvalidState
	}
	u := e.controller.Arena().Unit(handle)
	front, back := u.Front(), u.Back()
	posn, _ := u.Posn()
	tier, _ := u.Tier()
	mover := u.Colour()

	err := e.controller.ForceRecover(recover)
	if !err.OK() {
		return err
	}

	glyph := "="
	if recover {
		glyph = "^"
		if dest == mover {
			glyph = "+"
		}
	}
	e.record(fmt.Sprintf("%s%s%d-%d-%d", code(front, back), glyph, posn.Col, posn.Row, tier))
	return gungi.ErrNone
}

// Substitute swaps the top units of the towers occupied by a and b,
// recording substitution notation on success.
func (e *Encoder) Substitute(from gungi.Posn, fromTier int, to gungi.Posn, toTier int) gungi.Error {
	return e.exchange(gungi.EffectSubstitution, from, fromTier, to, toTier)
}

// TierExchange performs a 1-3 tier exchange within the tower at from,
// recording tier-exchange notation on success.
func (e *Encoder) TierExchange(from gungi.Posn, fromTier, toTier int) gungi.Error {
	return e.exchange(gungi.Effect1_3TierExchange, from, fromTier, from, toTier)
}

func (e *Encoder) exchange(effect gungi.Effect, from gungi.Posn, fromTier int, to gungi.Posn, toTier int) gungi.Error {
	h, ok := e.controller.UnitAtPosn(from, fromTier)
	if !ok {
		return gungi.ErrInvalidUnit
	}
	u := e.controller.Arena().Unit(h)
	front, back := u.Front(), u.Back()

	err := e.controller.ExchangeUnitsAt(effect, from, fromTier, to, toTier)
	if !err.OK() {
		return err
	}

	switch effect {
	case gungi.EffectSubstitution:
		e.record(fmt.Sprintf("%s<%d-%d-%d&%d-%d-%d", code(front, back), from.Col, from.Row, fromTier, to.Col, to.Row, toTier))
	case gungi.Effect1_3TierExchange:
		e.record(fmt.Sprintf("%s<%d-%d-%d&%d", code(front, back), from.Col, from.Row, fromTier, toTier))
	}
	return gungi.ErrNone
}
