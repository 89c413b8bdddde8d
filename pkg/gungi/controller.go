package gungi

import (
	"fmt"
	"io"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
)

// GameState is a bitfield describing the controller's current phase.
type GameState uint32

const (
	StateInitialArrangement GameState = 1 << 0
	StateTurnBlack          GameState = 1 << 1
	StateTurnWhite          GameState = 1 << 2
	StateCheck              GameState = 1 << 3
	StateCheckmate          GameState = 1 << 4
	StateDraw               GameState = 1 << 5
)

const (
	boardSize  = BoardLength * BoardLength
	pieceCount = 2 * 23

	mobileRangeExpansion = EffectMobileRangeExpansion1 | EffectMobileRangeExpansion2
)

// recoveryInfo records a pending forced recovery: the unit awaiting a
// recover/decline decision, the player it will join if recovered, and the
// tower it currently occupies.
type recoveryInfo struct {
	unit  Handle
	dest  Colour
	tower Posn
}

// Controller is the Gungi game state machine: it owns every unit, both
// players, and the 81 towers making up the board, and exposes the legality
// predicates and mutators that drive a game from initial arrangement through
// to checkmate or a draw.
type Controller struct {
	arena *Arena
	black *Player
	white *Player
	board [boardSize]*Tower

	recorder *Recorder

	state        GameState
	toRearrange  lang.Optional[Handle]
	recovery     lang.Optional[recoveryInfo]
	expansions   [boardSize]uint8
	escapeRoutes PosnSet
	checkPoints  PosnSet
}

// NewController returns a controller with a fresh game already set up.
func NewController() *Controller {
	c := &Controller{recorder: NewRecorder()}
	for i := range c.board {
		c.board[i] = NewTower(NewPosn(i%BoardLength, i/BoardLength))
	}
	c.reset()
	return c
}

func expansionBit(colour Colour) uint8 {
	return 1 << uint(colour)
}

// PRIVATE ACCESSORS

func (c *Controller) next() *Player {
	if c.state&StateTurnWhite != 0 {
		return c.black
	}
	return c.white
}

func (c *Controller) current() *Player {
	if c.state&StateTurnWhite != 0 {
		return c.white
	}
	return c.black
}

func (c *Controller) towerAt(posn Posn) *Tower {
	return c.board[posn.Index()]
}

// commanderEscapeRoutes returns the squares the given commander could move
// to in order to step out of check: its eight neighbours that are on-board
// and not full, plus the square of any friendly SUBSTITUTION unit that is
// the top of its tower and orthogonally adjacent to the commander.
func (c *Controller) commanderEscapeRoutes(com Handle, commanderPosn Posn) PosnSet {
	candidates := []Posn{
		NewPosn(commanderPosn.Col+1, commanderPosn.Row),
		NewPosn(commanderPosn.Col-1, commanderPosn.Row),
		NewPosn(commanderPosn.Col, commanderPosn.Row+1),
		NewPosn(commanderPosn.Col, commanderPosn.Row-1),
		NewPosn(commanderPosn.Col+1, commanderPosn.Row+1),
		NewPosn(commanderPosn.Col+1, commanderPosn.Row-1),
		NewPosn(commanderPosn.Col-1, commanderPosn.Row+1),
		NewPosn(commanderPosn.Col-1, commanderPosn.Row-1),
	}

	var escapes PosnSet
	for _, p := range candidates {
		if !p.IsValid() || c.towerAt(p).Height() == MaxTowerHeight {
			continue
		}
		escapes = append(escapes, p)
	}

	colour := c.arena.Unit(com).Colour()
	player := c.playerOf(colour)
	for _, h := range player.Units() {
		u := c.arena.Unit(h)
		if !u.Effect().Has(EffectSubstitution) {
			continue
		}
		posn, ok := u.Posn()
		if !ok {
			continue
		}
		tower := c.towerAt(posn)
		tier, _ := u.Tier()
		if tier != tower.Height()-1 {
			continue
		}
		switch posn.Adjacent(commanderPosn) {
		case MoveDirUp, MoveDirDown, MoveDirLeft, MoveDirRight:
			escapes = append(escapes, posn)
		}
	}
	return escapes
}

// isReachableAfterMove reports whether any active unit of player could reach
// posn after an opposing unit hypothetically moves there.
func (c *Controller) isReachableAfterMove(posn Posn, player *Player) bool {
	for _, h := range player.ActiveUnits(c.arena) {
		u := c.arena.Unit(h)
		up, _ := u.Posn()
		tower := c.towerAt(up)
		if up == posn {
			tier, _ := u.Tier()
			if tier != tower.Height()-1 {
				continue
			}
			top, err := tower.At(tier + 1)
			if err != ErrNone || c.arena.Unit(top).Colour() != u.Colour() {
				continue
			}
			return true
		}
		if _, ok, _ := c.isValidMoveUnit(posn, h); ok {
			return true
		}
	}
	return false
}

// isDuplicateInFile reports whether a unit with the same colour and active
// front as unit already occupies any square in posn's file.
func (c *Controller) isDuplicateInFile(unit Handle, posn Posn) bool {
	u := c.arena.Unit(unit)
	for row := 0; row < BoardLength; row++ {
		tower := c.towerAt(NewPosn(posn.Col, row))
		for _, h := range tower.Members() {
			o := c.arena.Unit(h)
			if o.Colour() == u.Colour() && o.Front() == u.Front() {
				return true
			}
		}
	}
	return false
}

func (c *Controller) playerOf(colour Colour) *Player {
	if colour == Black {
		return c.black
	}
	return c.white
}

// PRIVATE MANIPULATORS

func (c *Controller) reset() {
	c.arena = NewArena(pieceCount)
	for i := range c.board {
		c.board[i] = NewTower(NewPosn(i%BoardLength, i/BoardLength))
	}

	c.black = NewPlayer(Black)
	c.white = NewPlayer(White)
	c.resetPlayer(c.black)
	c.resetPlayer(c.white)

	c.state = StateTurnBlack | StateInitialArrangement
	c.recorder.Reset()
	c.toRearrange = lang.Optional[Handle]{}
	c.recovery = lang.Optional[recoveryInfo]{}
	c.expansions = [boardSize]uint8{}
	c.escapeRoutes = nil
	c.checkPoints = nil
}

func (c *Controller) resetPlayer(p *Player) {
	for _, entry := range StartingHand {
		for i := 0; i < entry.Count; i++ {
			h := c.arena.Add(entry.Front, entry.Back)
			if err := p.AddUnit(c.arena, h); err != ErrNone {
				panic("gungi: failed to build starting hand: " + err.String())
			}
		}
	}
}

// captureUnit transfers handle from from's army to to's army. If remove is
// true, the unit is also taken off the board and flipped to its back side.
func (c *Controller) captureUnit(handle Handle, from, to *Player, remove bool) {
	if err := from.RemoveUnit(c.arena, handle); err != ErrNone {
		panic("gungi: captureUnit: " + err.String())
	}
	if err := to.AddUnit(c.arena, handle); err != ErrNone {
		panic("gungi: captureUnit: " + err.String())
	}

	if remove {
		u := c.arena.Unit(handle)
		posn, ok := u.Posn()
		if !ok {
			panic("gungi: captureUnit: unit has no tower to remove from")
		}
		c.towerAt(posn).Remove(c.arena, handle)
		u.Flip()

		if u.Effect().Has(EffectForcedRearrangement) {
			c.toRearrange = lang.Some(handle)
		}
	}
}

// updateMobileRangeExpansion recomputes which squares lie in each Fortress's
// or Catapult's mobile range expansion region.
func (c *Controller) updateMobileRangeExpansion() {
	c.expansions = [boardSize]uint8{}

	for h := 0; h < c.arena.Len(); h++ {
		u := c.arena.Unit(Handle(h))
		posn, ok := u.Posn()
		if !ok {
			continue
		}
		effects := u.Effect()
		if effects&mobileRangeExpansion == 0 {
			continue
		}

		colour := u.Colour()
		inverted := c.IsInverted(colour)
		bit := expansionBit(colour)

		if effects.Has(EffectMobileRangeExpansion1) {
			p := posn
			for p.IsValid() {
				c.expansions[p.Index()] |= bit
				p = p.Up(inverted)
			}
		}

		if effects.Has(EffectMobileRangeExpansion2) {
			upAmounts := []int{2, 1, 0, -1, -2}
			leftAmounts := []int{0, 1, 2, 1, 0}
			rightAmounts := []int{0, 2, 4, 2, 0}
			for i, up := range upAmounts {
				p := posn
				for up != 0 {
					if up < 0 {
						p = p.Down(inverted)
						up++
					} else {
						p = p.Up(inverted)
						up--
					}
				}
				if !p.IsValid() || !c.IsInTerritory(p, colour) {
					continue
				}
				left := leftAmounts[i]
				for left > 0 {
					p = p.Left(inverted)
					left--
				}
				right := rightAmounts[i]
				for right >= 0 {
					if p.IsValid() {
						c.expansions[p.Index()] |= bit
					}
					p = p.Right(inverted)
					right--
				}
			}
		}
	}
}

// updateStateAfterTurn recomputes whose turn it is, check/checkmate/draw
// status, and the escape-route/check-point sets, after an action completes.
// dropped carries the identity of a piece that was just dropped (or moved,
// for a Bronze) for the checkmate-foul rule; it is PieceNone otherwise.
func (c *Controller) updateStateAfterTurn(dropped Piece) Error {
	if c.IsForcedRecovery() {
		return ErrNone
	}

	c.updateMobileRangeExpansion()

	originalState := c.state

	c.state ^= StateTurnBlack | StateTurnWhite
	c.state &^= StateCheck

	initialPlaced := 0
	if c.IsInitialArrangement() {
		for h := 0; h < c.arena.Len(); h++ {
			if c.arena.Unit(Handle(h)).IsActive() {
				initialPlaced++
			}
		}
		if initialPlaced == pieceCount {
			c.state &^= StateInitialArrangement
		} else if initialPlaced == pieceCount-1 {
			c.state &^= StateInitialArrangement
		}
	}

	nextPlayer := c.next()
	currentPlayer := c.current()
	commander, ok := currentPlayer.Commander()
	if !ok {
		panic("gungi: current player has no commander")
	}

	commanderPosn, onBoard := c.arena.Unit(commander).Posn()
	if !onBoard {
		c.state |= StateInitialArrangement
		c.checkPoints = nil
		c.escapeRoutes = nil
		return ErrNone
	}

	target := commanderPosn

	var escapes PosnSet
	if initialPlaced == 0 {
		escapes = c.commanderEscapeRoutes(commander, target)
	}

	var checkPoints PosnSet
	inCheck := false

	for _, h := range nextPlayer.ActiveUnits(c.arena) {
		unit := c.arena.Unit(h)
		start, _ := unit.Posn()

		walk, validWalk, _ := c.isValidMoveUnit(target, h)

		remaining := escapes[:0:0]
		for _, p := range escapes {
			remove := false
			if p == start {
				tower := c.towerAt(start)
				tier, _ := unit.Tier()
				if tier == tower.Height()-1 {
					if c.arena.Unit(commander).Colour() != unit.Colour() {
						remove = true
					}
				} else if tier == tower.Height()-2 {
					above, err := tower.At(tier + 1)
					if err == ErrNone && c.arena.Unit(above).Colour() == unit.Colour() {
						remove = true
					}
				}
			} else if _, ok, _ := c.isValidMoveUnit(p, h); ok {
				remove = true
			}
			if !remove {
				remaining = append(remaining, p)
			}
		}
		escapes = remaining

		if !validWalk {
			continue
		}

		w := walk
		if len(w) > 0 {
			w = w[:len(w)-1]
		}
		if inCheck {
			checkPoints = intersectPosns(checkPoints, w)
		} else {
			checkPoints = w
		}
		inCheck = true
	}

	if initialPlaced == pieceCount-1 {
		c.state ^= StateInitialArrangement
	}

	if len(checkPoints) > 0 {
		var available PosnSet
		for _, h := range currentPlayer.Units() {
			unit := c.arena.Unit(h)
			for _, posn := range checkPoints {
				if unit.IsActive() {
					if c.IsInitialArrangement() {
						continue
					}
					if unit.Front() == Commander {
						continue
					}
					if _, ok, _ := c.isValidMoveUnit(posn, h); !ok {
						continue
					}

					var removed Handle = InvalidHandle
					unitPosn, _ := unit.Posn()
					unitTower := c.towerAt(unitPosn)
					targetTower := c.towerAt(posn)
					if targetTower.Height() == MaxTowerHeight {
						top, _ := targetTower.Top()
						removed = top
						targetTower.Remove(c.arena, removed)
					}

					unitTower.Remove(c.arena, h)
					targetTower.Add(c.arena, h)

					stillInCheck := false
					for _, eh := range nextPlayer.Units() {
						enemy := c.arena.Unit(eh)
						if !enemy.IsActive() {
							continue
						}
						if _, ok, _ := c.isValidMoveUnit(target, eh); ok {
							stillInCheck = true
							break
						}
					}

					if !stillInCheck {
						available = append(available, posn)
					}

					targetTower.Remove(c.arena, h)
					unitTower.Add(c.arena, h)
					if removed != InvalidHandle {
						targetTower.Add(c.arena, removed)
					}
				} else if ok, _ := c.IsValidDrop(posn, h); ok {
					available = append(available, posn)
				}
			}
			checkPoints = differencePosns(checkPoints, available)
		}
		checkPoints = available
	}

	if inCheck {
		c.state ^= StateCheck

		if len(checkPoints) == 0 && len(escapes) == 0 {
			if dropped == Pawn {
				c.state = originalState
				return ErrPawnCheckmate
			} else if dropped == Bronze {
				c.state = originalState
				return ErrBronzeCheckmate
			}
			c.state ^= StateCheckmate
		}
	}

	repetitions := c.recorder.Record(c.board[:], c.arena)
	if c.state&StateCheckmate == 0 && repetitions == MaxPositionRepetitions {
		c.state ^= StateDraw
	}

	c.escapeRoutes = escapes
	c.checkPoints = checkPoints
	return ErrNone
}

func intersectPosns(a, b PosnSet) PosnSet {
	var out PosnSet
	for _, p := range a {
		if b.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

func differencePosns(a, b PosnSet) PosnSet {
	var out PosnSet
	for _, p := range a {
		if !b.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// ACCESSORS

// Board returns the controller's 81 towers, indexed by Posn.Index().
func (c *Controller) Board() []*Tower {
	return c.board[:]
}

// Arena returns the unit arena backing this controller's units.
func (c *Controller) Arena() *Arena {
	return c.arena
}

// Winner returns the winning colour and true if the game ended in a
// checkmate; it returns false if the game is ongoing or ended in a draw.
func (c *Controller) Winner() (Colour, bool) {
	if !c.IsOver() || c.IsDraw() {
		return 0, false
	}
	if c.IsInCheckmateColour(Black) {
		return White, true
	}
	return Black, true
}

// Black returns the black player.
func (c *Controller) Black() *Player {
	return c.black
}

// White returns the white player.
func (c *Controller) White() *Player {
	return c.white
}

// State returns the current game state bitfield.
func (c *Controller) State() GameState {
	return c.state
}

// ForcedRearrangeUnit returns the unit obligated to be rearranged, if any.
func (c *Controller) ForcedRearrangeUnit() (Handle, bool) {
	return c.toRearrange.V()
}

// ForcedRecovery returns the pending recovery's unit and destination colour,
// if a recovery is pending.
func (c *Controller) ForcedRecovery() (Handle, Colour, bool) {
	info, ok := c.recovery.V()
	if !ok {
		return InvalidHandle, 0, false
	}
	return info.unit, info.dest, true
}

// UnitAtPosn returns the unit occupying the given tier of the tower at posn.
func (c *Controller) UnitAtPosn(posn Posn, tier int) (Handle, bool) {
	h, err := c.towerAt(posn).At(tier)
	return h, err == ErrNone
}

// IsDraw reports whether the game ended in a draw.
func (c *Controller) IsDraw() bool {
	return c.state&StateDraw != 0
}

// IsOver reports whether the game has ended, by checkmate or draw.
func (c *Controller) IsOver() bool {
	return c.state&(StateCheckmate|StateDraw) != 0
}

// IsPlayersTurn reports whether it is colour's turn.
func (c *Controller) IsPlayersTurn(colour Colour) bool {
	if c.state&StateTurnWhite != 0 {
		return colour == White
	} else if c.state&StateTurnBlack != 0 {
		return colour == Black
	}
	return false
}

// IsInitialArrangement reports whether the game is in the initial
// arrangement phase.
func (c *Controller) IsInitialArrangement() bool {
	return c.state&StateInitialArrangement != 0
}

// IsInCheck reports whether the player to move is in check.
func (c *Controller) IsInCheck() bool {
	return c.state&StateCheck != 0
}

// IsInCheckColour reports whether colour is in check; a player can only be
// in check on their own turn.
func (c *Controller) IsInCheckColour(colour Colour) bool {
	return c.IsPlayersTurn(colour) && c.IsInCheck()
}

// IsInCheckmate reports whether the player to move is in checkmate.
func (c *Controller) IsInCheckmate() bool {
	return c.state&StateCheckmate != 0
}

// IsInCheckmateColour reports whether colour is in checkmate.
func (c *Controller) IsInCheckmateColour(colour Colour) bool {
	return c.IsPlayersTurn(colour) && c.IsInCheckmate()
}

// IsInverted reports whether colour's movement directions are inverted
// (true for Black, whose territory includes the board's far corner).
func (c *Controller) IsInverted(colour Colour) bool {
	return c.IsInTerritory(NewPosn(BoardLength-1, BoardLength-1), colour)
}

// IsInTerritory reports whether posn lies within colour's home territory
// (the three ranks nearest that colour's side).
func (c *Controller) IsInTerritory(posn Posn, colour Colour) bool {
	idx := posn.Index()
	if colour == White {
		return idx < BoardLength*3
	}
	return idx >= boardSize-BoardLength*3 && idx < boardSize
}

// IsInMobileRangeExpansion reports whether posn lies in colour's current
// mobile range expansion region.
func (c *Controller) IsInMobileRangeExpansion(posn Posn, colour Colour) bool {
	return c.expansions[posn.Index()]&expansionBit(colour) != 0
}

// IsForcedRearrangement reports whether a forced rearrangement is pending.
func (c *Controller) IsForcedRearrangement() bool {
	_, ok := c.toRearrange.V()
	return ok
}

// IsForcedRearrangeForPlayer reports whether it is colour's turn and they
// owe a forced rearrangement.
func (c *Controller) IsForcedRearrangeForPlayer(colour Colour) bool {
	return c.IsPlayersTurn(colour) && c.IsForcedRearrangement()
}

// IsForcedRecovery reports whether a forced recovery decision is pending.
func (c *Controller) IsForcedRecovery() bool {
	_, ok := c.recovery.V()
	return ok
}

// IsForcedRecoveryForPlayer reports whether it is colour's turn and they owe
// a forced recovery decision.
func (c *Controller) IsForcedRecoveryForPlayer(colour Colour) bool {
	return c.IsPlayersTurn(colour) && c.IsForcedRecovery()
}

// IsValidDrop reports whether unit could legally be dropped at posn.
func (c *Controller) IsValidDrop(posn Posn, unit Handle) (bool, Error) {
	u := c.arena.Unit(unit)

	if c.IsForcedRecoveryForPlayer(u.Colour()) {
		return false, ErrInvalidState
	} else if c.IsOver() {
		return false, ErrGameOver
	} else if u.IsActive() {
		return false, ErrInvalidUnit
	}

	player := c.playerOf(u.Colour())
	if c.IsInCheckColour(player.Colour()) {
		if !c.checkPoints.Contains(posn) {
			return false, ErrCheck
		}
	}

	initialArrangement := c.IsInitialArrangement()
	rearrange := c.IsForcedRearrangeForPlayer(player.Colour())
	if (rearrange || initialArrangement) && !c.IsInTerritory(posn, player.Colour()) {
		return false, ErrTerritory
	}

	if rearrange {
		if h, ok := c.toRearrange.V(); !ok || h != unit {
			return false, ErrInvalidUnit
		}
	}

	tower := c.towerAt(posn)
	if tower.Height() == MaxTowerHeight {
		return false, ErrFullTower
	}

	if u.Front() == Pawn || u.Front() == Bronze {
		if c.isDuplicateInFile(unit, posn) {
			if u.Front() == Pawn {
				return false, ErrPawnFile
			}
			return false, ErrBronzeFile
		}
	}

	if tower.Height() == 0 {
		return true, ErrNone
	}

	top, _ := tower.Top()
	topUnit := c.arena.Unit(top)
	if !initialArrangement &&
		(!topUnit.Effect().Has(EffectLandLink) || u.Immunity().Has(EffectLandLink)) {
		return false, ErrLandLink
	}

	if topUnit.Effect().Has(EffectNoTower) {
		return false, ErrNoTower
	} else if u.Effect().Has(EffectNoStack) {
		return false, ErrNoStack
	} else if topUnit.Effect().Has(EffectBackDropOnly) && u.Front().IsFront() {
		return false, ErrBackOnly
	} else if topUnit.Effect().Has(EffectFrontDropOnly) && u.Front().IsBack() {
		return false, ErrFrontOnly
	}

	if tower.IsDuplicate(c.arena, u.Colour(), u.Front()) {
		return false, ErrDuplicate
	}

	return true, ErrNone
}

// IsValidMove reports whether unit can move to target, returning the walk
// taken to reach it.
func (c *Controller) IsValidMove(target Posn, unit Handle) (PosnSet, bool, Error) {
	return c.isValidMoveUnit(target, unit)
}

// isValidMoveUnit is IsValidMove's implementation, shared with internal
// callers that only need the legality result.
func (c *Controller) isValidMoveUnit(target Posn, unit Handle) (PosnSet, bool, Error) {
	u := c.arena.Unit(unit)

	if c.IsInitialArrangement() {
		return nil, false, ErrDropsOnly
	} else if c.IsForcedRearrangeForPlayer(u.Colour()) || c.IsForcedRecoveryForPlayer(u.Colour()) {
		return nil, false, ErrInvalidState
	} else if c.IsOver() {
		return nil, false, ErrGameOver
	} else if !u.IsActive() {
		return nil, false, ErrInvalidUnit
	}

	player := c.playerOf(u.Colour())
	if c.IsInCheckColour(player.Colour()) {
		if !c.checkPoints.Contains(target) {
			return nil, false, ErrCheck
		}
	}

	targetTower := c.towerAt(target)
	if targetTower.Height() > 0 {
		top, _ := targetTower.Top()
		topUnit := c.arena.Unit(top)
		if topUnit.Colour() == u.Colour() && targetTower.Height() == MaxTowerHeight {
			return nil, false, ErrFullTower
		}
	}

	if u.Front() == Bronze && c.isDuplicateInFile(unit, target) {
		return nil, false, ErrBronzeFile
	}

	start, _ := u.Posn()
	startTower := c.towerAt(start)
	tier, _ := u.Tier()
	if tier != startTower.Height()-1 {
		return nil, false, ErrNotTop
	}

	inverted := c.IsInverted(player.Colour())
	enemyColour := player.Colour().Opponent()

	tiers := []int{tier}
	if tier+1 <= MaxTowerHeight-1 {
		tiers = append(tiers, tier+1)
	}

	for _, t := range tiers {
		walk, werr := getWalk(u.Moveset(t), start, target, inverted)
		if werr == ErrNone {
			crossedSquares := crossed(start, target)
			valid := true

			for _, posn := range crossedSquares {
				tower := c.towerAt(posn)
				if tower.Height() == 0 {
					continue
				}
				top, _ := tower.Top()
				if u.Effect().Has(EffectJump) {
					if c.arena.Unit(top).Colour() == enemyColour && c.IsInMobileRangeExpansion(posn, enemyColour) {
						valid = false
						break
					}
				} else {
					valid = false
					break
				}
			}

			if valid {
				if u.Front() == Commander {
					enemy := c.playerOf(enemyColour)
					if c.isReachableAfterMove(target, enemy) {
						return nil, false, ErrCheck
					}
				}
				return walk, true, ErrNone
			}
		}

		if !c.IsInMobileRangeExpansion(start, player.Colour()) {
			break
		}
		if u.Immunity().Has(mobileRangeExpansion) {
			break
		}
	}

	return nil, false, ErrNoWalk
}

// IsValidImmobileStrike reports whether unit can strike the unit at tier
// within its own tower.
func (c *Controller) IsValidImmobileStrike(tier int, unit Handle) (bool, Error) {
	u := c.arena.Unit(unit)

	if c.IsInitialArrangement() {
		return false, ErrDropsOnly
	} else if c.IsForcedRearrangeForPlayer(u.Colour()) || c.IsForcedRecoveryForPlayer(u.Colour()) {
		return false, ErrInvalidState
	} else if c.IsOver() {
		return false, ErrGameOver
	} else if !u.IsActive() {
		return false, ErrInvalidUnit
	}

	posn, _ := u.Posn()
	tower := c.towerAt(posn)

	targetHandle, terr := tower.At(tier)
	if terr != ErrNone {
		return false, ErrOutOfRange
	}
	target := c.arena.Unit(targetHandle)
	if target.Colour() == u.Colour() {
		return false, ErrSameTeam
	}

	unitTier, _ := u.Tier()
	diff := unitTier - tier
	if diff < 0 {
		diff = -diff
	}
	if diff > 1 {
		return false, ErrOutOfRange
	}

	if c.IsInCheckColour(u.Colour()) &&
		(!c.checkPoints.Contains(posn) || tier != tower.Height()-1) {
		return false, ErrCheck
	}

	return true, ErrNone
}

// IsValidExchange reports whether the given exchange effect can be invoked
// between unit and target.
func (c *Controller) IsValidExchange(exchange Effect, unit, target Handle) (bool, Error) {
	u := c.arena.Unit(unit)
	t := c.arena.Unit(target)

	if c.IsInitialArrangement() {
		return false, ErrDropsOnly
	} else if c.IsForcedRearrangeForPlayer(u.Colour()) || c.IsForcedRecoveryForPlayer(u.Colour()) {
		return false, ErrInvalidState
	} else if c.IsOver() {
		return false, ErrGameOver
	}

	if !u.IsActive() || !t.IsActive() {
		return false, ErrInvalidUnit
	}

	switch {
	case exchange == Effect1_3TierExchange && u.Effect().Has(exchange):
		if t.Immunity().Has(Effect1_3TierExchange) {
			return false, ErrImmune
		}
		if c.IsInCheckColour(u.Colour()) {
			return false, ErrCheck
		}

		uPosn, _ := u.Posn()
		tower := c.towerAt(uPosn)
		tPosn, _ := t.Posn()
		if tPosn != uPosn || u.Colour() != t.Colour() || tower.IsDirty(DirtyTierExchange) {
			return false, ErrInvalidExchange
		}

		unitTier, _ := u.Tier()
		targetTier, _ := t.Tier()
		diff := unitTier - targetTier
		if diff < 0 {
			diff = -diff
		}
		if diff <= 1 {
			return false, ErrInvalidExchange
		}

		if unitTier == MaxTowerHeight-1 && (t.Front() == Catapult || t.Front() == Fortress) {
			return false, ErrInvalidExchange
		}

		return true, ErrNone

	case exchange == EffectSubstitution && u.Effect().Has(exchange):
		if t.Immunity().Has(EffectSubstitution) {
			return false, ErrImmune
		}

		if t.Colour() != u.Colour() || t.Front() != Commander || !c.IsInCheckColour(u.Colour()) {
			return false, ErrInvalidSub
		}

		uPosn, _ := u.Posn()
		tower := c.towerAt(uPosn)
		tier, _ := u.Tier()
		if c.escapeRoutes.Contains(uPosn) && tier == tower.Height()-1 {
			return true, ErrNone
		}
		return false, ErrInvalidSub
	}

	return false, ErrInvalidUnit
}

// MUTATORS

// NewGame resets the controller to a fresh game, ready for initial
// arrangement. Black moves first.
func (c *Controller) NewGame() {
	c.reset()
}

// MoveUnitAt moves the unit at the given tier of the tower at from to to.
func (c *Controller) MoveUnitAt(from Posn, tier int, to Posn) Error {
	h, err := c.towerAt(from).At(tier)
	if err != ErrNone {
		return err
	}
	return c.MoveUnit(h, to)
}

// MoveUnit moves unit to posn, capturing an enemy top occupant if present.
func (c *Controller) MoveUnit(unit Handle, posn Posn) Error {
	u := c.arena.Unit(unit)
	if !c.IsPlayersTurn(u.Colour()) {
		return ErrNotTurn
	}

	if _, ok, err := c.IsValidMove(posn, unit); !ok {
		return err
	}

	tower := c.towerAt(posn)

	var capturedUnits []Handle
	var betrayedUnits []Handle

	if tower.Height() > 0 {
		top, _ := tower.Top()
		if c.arena.Unit(top).Colour() != u.Colour() {
			c.captureUnit(top, c.next(), c.current(), true)
			capturedUnits = append(capturedUnits, top)

			if u.Effect().Has(EffectBetrayal) {
				for _, h := range append([]Handle{}, tower.Members()...) {
					o := c.arena.Unit(h)
					if o.Colour() != u.Colour() {
						c.captureUnit(h, c.next(), c.current(), false)
						betrayedUnits = append(betrayedUnits, h)
					}
				}
			}
		}
	}

	startPosn, _ := u.Posn()
	startTower := c.towerAt(startPosn)
	startTower.Remove(c.arena, unit)
	tower.Add(c.arena, unit)

	if u.Effect().Has(EffectForcedRecovery) {
		newTier, _ := u.Tier()
		inverted := c.IsInverted(u.Colour())

		dest := c.current().Colour()
		if len(capturedUnits) > 0 {
			dest = c.next().Colour()
		}

		if !anyWalk(u.Moveset(newTier), posn, inverted) {
			c.recovery = lang.Some(recoveryInfo{unit: unit, dest: dest, tower: posn})
		}

		if c.IsInMobileRangeExpansion(posn, u.Colour()) && newTier < MaxTowerHeight-1 &&
			!anyWalk(u.Moveset(newTier+1), posn, inverted) {
			c.recovery = lang.Some(recoveryInfo{unit: unit, dest: dest, tower: posn})
		}
	}

	if u.Front() == Bronze {
		err := c.updateStateAfterTurn(Bronze)
		if err == ErrNone {
			return ErrNone
		}

		for _, h := range capturedUnits {
			c.captureUnit(h, c.current(), c.next(), false)
			c.arena.Unit(h).Flip()
			if th, ok := c.toRearrange.V(); ok && th == h {
				c.toRearrange = lang.Optional[Handle]{}
			}
			tower.Add(c.arena, h)
		}
		for _, h := range betrayedUnits {
			c.captureUnit(h, c.current(), c.next(), false)
		}

		tower.Remove(c.arena, unit)
		startTower.Add(c.arena, unit)
		c.updateMobileRangeExpansion()
		return err
	}

	if err := c.updateStateAfterTurn(PieceNone); err != ErrNone {
		panic("gungi: moveUnit: unexpected error after non-Bronze move: " + err.String())
	}
	return ErrNone
}

// DropUnitPiece drops a matching unvalued unit from the current player's
// hand, chosen by its front/back identity, to posn.
func (c *Controller) DropUnitPiece(front, back Piece, to Posn) Error {
	p := c.current()
	for _, h := range p.Units() {
		u := c.arena.Unit(h)
		if u.Front() == front && u.Back() == back && !u.IsActive() {
			return c.DropUnit(h, to)
		}
	}
	return ErrInvalidUnit
}

// DropUnit places unit, currently in hand, onto the tower at posn.
func (c *Controller) DropUnit(unit Handle, posn Posn) Error {
	u := c.arena.Unit(unit)
	if !c.IsPlayersTurn(u.Colour()) {
		return ErrNotTurn
	}

	if ok, err := c.IsValidDrop(posn, unit); !ok {
		return err
	}

	tower := c.towerAt(posn)
	tower.Add(c.arena, unit)

	c.toRearrange = lang.Optional[Handle]{}
	err := c.updateStateAfterTurn(u.Front())
	if err != ErrNone {
		tower.Remove(c.arena, unit)
		return err
	}
	return ErrNone
}

// ExchangeUnitsAt performs exchange between the units at the given towers
// and tiers.
func (c *Controller) ExchangeUnitsAt(exchange Effect, from Posn, fromTier int, to Posn, toTier int) Error {
	a, err := c.towerAt(from).At(fromTier)
	if err != ErrNone {
		return err
	}
	b, err := c.towerAt(to).At(toTier)
	if err != ErrNone {
		return err
	}
	return c.ExchangeUnits(exchange, a, b)
}

// ExchangeUnits performs the given exchange effect between a and b.
func (c *Controller) ExchangeUnits(exchange Effect, a, b Handle) Error {
	ua := c.arena.Unit(a)
	if !c.IsPlayersTurn(ua.Colour()) {
		return ErrNotTurn
	}

	if ok, err := c.IsValidExchange(exchange, a, b); !ok {
		return err
	}

	aPosn, _ := ua.Posn()
	unitTower := c.towerAt(aPosn)

	switch exchange {
	case EffectSubstitution:
		ub := c.arena.Unit(b)
		bPosn, _ := ub.Posn()
		targetTower := c.towerAt(bPosn)
		unitTower.SwapTop(c.arena, targetTower)
	case Effect1_3TierExchange:
		unitTower.Swap13(c.arena)
	default:
		panic("gungi: exchangeUnits: unsupported exchange effect")
	}

	if err := c.updateStateAfterTurn(PieceNone); err != ErrNone {
		panic("gungi: exchangeUnits: unexpected error: " + err.String())
	}
	return ErrNone
}

// ImmobileStrikeAt strikes the unit at targetTier from the tower at posn's
// given strikerTier.
func (c *Controller) ImmobileStrikeAt(posn Posn, strikerTier, targetTier int) Error {
	h, err := c.towerAt(posn).At(strikerTier)
	if err != ErrNone {
		return err
	}
	return c.ImmobileStrike(h, targetTier)
}

// ImmobileStrike has unit capture the unit at targetTier within its tower.
func (c *Controller) ImmobileStrike(unit Handle, targetTier int) Error {
	u := c.arena.Unit(unit)
	if !c.IsPlayersTurn(u.Colour()) {
		return ErrNotTurn
	}

	if ok, err := c.IsValidImmobileStrike(targetTier, unit); !ok {
		return err
	}

	posn, _ := u.Posn()
	target, _ := c.towerAt(posn).At(targetTier)

	c.captureUnit(target, c.next(), c.current(), true)

	if err := c.updateStateAfterTurn(PieceNone); err != ErrNone {
		panic("gungi: immobileStrike: unexpected error: " + err.String())
	}
	return ErrNone
}

// ForceRecover resolves a pending forced recovery: if recover is true, the
// unit is moved from the board into its destination player's hand.
func (c *Controller) ForceRecover(recover bool) Error {
	info, ok := c.recovery.V()
	if !ok {
		return ErrInvalidState
	}

	if recover {
		u := c.arena.Unit(info.unit)
		current := c.current()
		if err := current.RemoveUnit(c.arena, info.unit); err != ErrNone {
			panic("gungi: forceRecover: " + err.String())
		}
		if err := c.playerOf(info.dest).AddUnit(c.arena, info.unit); err != ErrNone {
			panic("gungi: forceRecover: " + err.String())
		}

		posn, hasPosn := u.Posn()
		if hasPosn {
			c.towerAt(posn).Remove(c.arena, info.unit)
		}
	}

	c.recovery = lang.Optional[recoveryInfo]{}

	if err := c.updateStateAfterTurn(PieceNone); err != ErrNone {
		panic("gungi: forceRecover: unexpected error: " + err.String())
	}
	return ErrNone
}

// String renders the board as a 9x9 grid of 3-tier cells, for debugging and
// the console driver.
func (c *Controller) String() string {
	var b strings.Builder
	c.WriteBoard(&b)
	return b.String()
}

// WriteBoard renders the board to w in the same layout as String.
func (c *Controller) WriteBoard(w io.Writer) {
	lineLen := BoardLength*6 + 1

	fmt.Fprintf(w, "\n   %d", 0)
	for col := 1; col < BoardLength; col++ {
		fmt.Fprintf(w, "     %d", col)
	}
	fmt.Fprintln(w)

	for row := BoardLength - 1; row >= 0; row-- {
		fmt.Fprintln(w, strings.Repeat("-", lineLen))
		for tier := MaxTowerHeight - 1; tier >= 0; tier-- {
			fmt.Fprint(w, "|")
			for col := 0; col < BoardLength; col++ {
				posn := NewPosn(col, row)
				tower := c.towerAt(posn)
				h, err := tower.At(tier)
				if err != ErrNone {
					fmt.Fprint(w, "    ")
				} else {
					u := c.arena.Unit(h)
					colourLetter := "W"
					if u.Colour() == Black {
						colourLetter = "B"
					}
					fmt.Fprintf(w, " %s%s", colourLetter, u.Code())
				}
				fmt.Fprint(w, " |")
				if tier == MaxTowerHeight/2 && col == BoardLength-1 {
					fmt.Fprintf(w, " %d", row)
				}
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", lineLen))
}
