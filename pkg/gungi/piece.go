package gungi

// Piece identifies a kind of unit, independent of colour. Every unit on the
// board is a front/back pair of pieces (see unit.go); a piece's behaviour at
// a given tower tier comes from the Catalogue below.
type Piece int8

const PieceNone Piece = -1

const (
	Pawn Piece = iota
	Bow
	Prodigy
	HiddenDragon
	Fortress
	Catapult
	Spy
	Samurai
	Captain
	Commander
	Bronze
	Silver
	Gold
	Arrow
	Phoenix
	DragonKing
	Lance
	Clandestinite
	Pike
	Pistol

	numPieces
)

// IsValid reports whether p identifies one of the twenty pieces.
func (p Piece) IsValid() bool {
	return p >= Pawn && p < numPieces
}

// IsFront reports whether p may be used as the front identity of a unit.
func (p Piece) IsFront() bool {
	switch p {
	case Commander, Captain, Samurai, Spy, Catapult, Fortress, HiddenDragon, Prodigy, Bow, Pawn:
		return true
	default:
		return false
	}
}

// IsBack reports whether p may be used as the back identity of a unit.
func (p Piece) IsBack() bool {
	switch p {
	case Pistol, Pike, Clandestinite, Lance, DragonKing, Phoenix, Arrow, Bronze, Silver, Gold:
		return true
	default:
		return false
	}
}

func (p Piece) String() string {
	switch p {
	case PieceNone:
		return "none"
	case Pawn:
		return "pawn"
	case Bow:
		return "bow"
	case Prodigy:
		return "prodigy"
	case HiddenDragon:
		return "hidden dragon"
	case Fortress:
		return "fortress"
	case Catapult:
		return "catapult"
	case Spy:
		return "spy"
	case Samurai:
		return "samurai"
	case Captain:
		return "captain"
	case Commander:
		return "commander"
	case Bronze:
		return "bronze"
	case Silver:
		return "silver"
	case Gold:
		return "gold"
	case Arrow:
		return "arrow"
	case Phoenix:
		return "phoenix"
	case DragonKing:
		return "dragon king"
	case Lance:
		return "lance"
	case Clandestinite:
		return "clandestinite"
	case Pike:
		return "pike"
	case Pistol:
		return "pistol"
	default:
		return "?"
	}
}

// GN returns the Gungi Notation single-letter identifier for p, or "-" if p
// is not a valid piece.
func (p Piece) GN() string {
	if !p.IsValid() {
		return "-"
	}
	return gnIdentifiers[p]
}

// PieceFromGN returns the piece whose GN letter matches id (case
// insensitive), or PieceNone if no piece matches.
func PieceFromGN(id byte) Piece {
	upper := id
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}
	for p := Pawn; p < numPieces; p++ {
		if gnIdentifiers[p][0] == upper {
			return p
		}
	}
	return PieceNone
}

var gnIdentifiers = [numPieces]string{
	Pawn:          "P",
	Bow:           "B",
	Prodigy:       "R",
	HiddenDragon:  "H",
	Fortress:      "F",
	Catapult:      "T",
	Spy:           "Y",
	Samurai:       "S",
	Captain:       "C",
	Commander:     "O",
	Bronze:        "Z",
	Silver:        "V",
	Gold:          "G",
	Arrow:         "A",
	Phoenix:       "X",
	DragonKing:    "K",
	Lance:         "L",
	Clandestinite: "N",
	Pike:          "E",
	Pistol:        "I",
}

// pieceEffects holds the effect bitfield belonging to each piece.
var pieceEffects = [numPieces]Effect{
	Pawn:      EffectForcedRecovery,
	Bow:       EffectJump,
	Fortress:  EffectLandLink | EffectMobileRangeExpansion1 | EffectPassive | EffectNoStack,
	Catapult:  EffectLandLink | EffectMobileRangeExpansion2 | EffectNoStack,
	Spy:       EffectLandLink | EffectForcedRecovery | EffectBackDropOnly | EffectJump,
	Samurai:   EffectSubstitution,
	Captain:   Effect1_3TierExchange,
	Commander: EffectNoTower,
	Bronze:    EffectBetrayal,
	Lance:     EffectForcedRearrangement | EffectForcedRecovery,
	Clandestinite: EffectLandLink | EffectFrontDropOnly | EffectJump,
}

// pieceImmunities holds the immunity bitfield belonging to each piece.
var pieceImmunities = [numPieces]Effect{
	Prodigy:      EffectMobileRangeExpansion1 | EffectMobileRangeExpansion2,
	HiddenDragon: EffectMobileRangeExpansion1 | EffectMobileRangeExpansion2,
	Phoenix:      EffectMobileRangeExpansion1 | EffectMobileRangeExpansion2,
	DragonKing:   EffectMobileRangeExpansion1 | EffectMobileRangeExpansion2,
	Commander:    EffectMobileRangeExpansion1 | EffectMobileRangeExpansion2 | Effect1_3TierExchange,
}

// Effect returns the effect bitfield for p. Invalid pieces have no effects.
func (p Piece) Effect() Effect {
	if !p.IsValid() {
		return EffectNone
	}
	return pieceEffects[p]
}

// Immunity returns the immunity bitfield for p. Invalid pieces have no
// immunities.
func (p Piece) Immunity() Effect {
	if !p.IsValid() {
		return EffectNone
	}
	return pieceImmunities[p]
}

func one(d MoveDir) MoveStep      { return MoveStep{Dir: d, Mod: ModNone} }
func unlimited(d MoveDir) MoveStep { return MoveStep{Dir: d, Mod: ModUnlimited} }
func seq(steps ...MoveStep) MoveSeq { return MoveSeq(steps) }

// movesets holds, for each piece, the Moveset available at tower tier 0, 1
// and 2 (tier 0 is the bottom of the tower).
var movesets = [numPieces][3]Moveset{
	Pawn: {
		{seq(one(MoveDirUp))},
		{seq(one(MoveDirUp)), seq(one(MoveDirLeft), one(MoveDirLeft)), seq(one(MoveDirRight), one(MoveDirRight))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirLeft), one(MoveDirLeft)), seq(one(MoveDirRight), one(MoveDirRight))},
	},
	Bow: {
		{seq(one(MoveDirUp), one(MoveDirUp)), seq(one(MoveDirLeft), one(MoveDirLeft)), seq(one(MoveDirRight), one(MoveDirRight))},
		{seq(one(MoveDirUp)), seq(one(MoveDirDown)), seq(one(MoveDirUpLeft), one(MoveDirUpLeft)), seq(one(MoveDirUpRight), one(MoveDirUpRight))},
		{
			seq(one(MoveDirUpLeft), one(MoveDirUpLeft)), seq(one(MoveDirUpRight), one(MoveDirUpRight)),
			seq(one(MoveDirLeft), one(MoveDirLeft)), seq(one(MoveDirRight), one(MoveDirRight)), seq(one(MoveDirDown), one(MoveDirDown)),
		},
	},
	Prodigy: {
		{seq(unlimited(MoveDirUpLeft)), seq(unlimited(MoveDirUpRight)), seq(unlimited(MoveDirDownLeft)), seq(unlimited(MoveDirDownRight))},
		{seq(one(MoveDirUp)), seq(one(MoveDirRight)), seq(one(MoveDirLeft)), seq(one(MoveDirDown))},
		{seq(one(MoveDirUp)), seq(one(MoveDirRight)), seq(one(MoveDirLeft)), seq(one(MoveDirDown))},
	},
	HiddenDragon: {
		{seq(unlimited(MoveDirUp)), seq(unlimited(MoveDirLeft)), seq(unlimited(MoveDirRight)), seq(unlimited(MoveDirDown))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
	},
	Fortress: {{}, {}, {}},
	Catapult: {{}, {}, {}},
	Spy: {
		{seq(one(MoveDirUpLeft), one(MoveDirUp)), seq(one(MoveDirUpRight), one(MoveDirUp))},
		{
			seq(one(MoveDirUpLeft), one(MoveDirUp)), seq(one(MoveDirUpRight), one(MoveDirUp)),
			seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)),
		},
		{
			seq(one(MoveDirUpLeft), one(MoveDirUp)), seq(one(MoveDirUpRight), one(MoveDirUp)),
			seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)),
		},
	},
	Samurai: {
		{seq(one(MoveDirUp)), seq(one(MoveDirLeft)), seq(one(MoveDirRight)), seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight))},
		{
			seq(one(MoveDirUp), one(MoveDirUp)), seq(one(MoveDirUpRight)), seq(one(MoveDirUpLeft)),
			seq(one(MoveDirLeft)), seq(one(MoveDirRight)), seq(one(MoveDirDown), one(MoveDirDown)),
		},
		{
			seq(one(MoveDirUp), one(MoveDirUp)), seq(one(MoveDirUpRight)), seq(one(MoveDirUpLeft)),
			seq(one(MoveDirLeft)), seq(one(MoveDirRight)), seq(one(MoveDirDown), one(MoveDirDown)),
		},
	},
	Captain: {
		{seq(one(MoveDirUp)), seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownRight)), seq(one(MoveDirDownLeft))},
		{
			seq(one(MoveDirUp)), seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)),
			seq(one(MoveDirDown)), seq(one(MoveDirDownRight)), seq(one(MoveDirDownLeft)),
		},
		{
			seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)),
			seq(one(MoveDirUpRight), one(MoveDirUpRight)), seq(one(MoveDirUpLeft), one(MoveDirUpLeft)),
			seq(one(MoveDirLeft), one(MoveDirLeft)), seq(one(MoveDirRight), one(MoveDirRight)),
			seq(one(MoveDirDownRight)), seq(one(MoveDirDownLeft)),
		},
	},
	Commander: {
		commanderMoves(), commanderMoves(), commanderMoves(),
	},
	Bronze: {
		{seq(one(MoveDirLeft)), seq(one(MoveDirRight))},
		{seq(one(MoveDirLeft)), seq(one(MoveDirRight))},
		{seq(one(MoveDirLeft)), seq(one(MoveDirRight))},
	},
	Silver: {
		{seq(one(MoveDirUp)), seq(one(MoveDirLeft)), seq(one(MoveDirDown)), seq(one(MoveDirRight))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
	},
	Gold: {
		goldMoves(), goldMoves(), goldMoves(),
	},
	Arrow: {
		{seq(one(MoveDirUp)), seq(one(MoveDirDown)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
		{
			seq(one(MoveDirUp)), seq(one(MoveDirDown)),
			seq(one(MoveDirDownLeft), one(MoveDirDownLeft)), seq(one(MoveDirDownRight), one(MoveDirDownRight)),
		},
		{
			seq(one(MoveDirUp)), seq(one(MoveDirDown)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight)),
			seq(one(MoveDirDownLeft), one(MoveDirDownLeft)), seq(one(MoveDirDownRight), one(MoveDirDownRight)),
		},
	},
	Phoenix: {
		{
			seq(unlimited(MoveDirUpLeft)), seq(unlimited(MoveDirUpRight)), seq(unlimited(MoveDirDownLeft)), seq(unlimited(MoveDirDownRight)),
			seq(one(MoveDirUp)), seq(one(MoveDirRight)), seq(one(MoveDirLeft)), seq(one(MoveDirDown)),
		},
		{seq(one(MoveDirUp)), seq(one(MoveDirRight)), seq(one(MoveDirLeft)), seq(one(MoveDirDown))},
		{seq(one(MoveDirUp)), seq(one(MoveDirRight)), seq(one(MoveDirLeft)), seq(one(MoveDirDown))},
	},
	Lance: {
		{seq(unlimited(MoveDirUp))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownRight)), seq(one(MoveDirDownLeft))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownRight)), seq(one(MoveDirDownLeft))},
	},
	Clandestinite: {
		{seq(one(MoveDirUpLeft), one(MoveDirUp)), seq(one(MoveDirUpRight), one(MoveDirUp)), seq(one(MoveDirDown))},
		{
			seq(one(MoveDirUpLeft), one(MoveDirUp)), seq(one(MoveDirUpRight), one(MoveDirUp)),
			seq(one(MoveDirUpRight)), seq(one(MoveDirUpLeft)), seq(one(MoveDirDown)),
		},
		{
			seq(one(MoveDirUpLeft), one(MoveDirUp)), seq(one(MoveDirUpRight), one(MoveDirUp)),
			seq(one(MoveDirUpRight)), seq(one(MoveDirUpLeft)), seq(one(MoveDirDown)),
			seq(one(MoveDirDownLeft), one(MoveDirDown)), seq(one(MoveDirDownRight), one(MoveDirDown)),
			seq(one(MoveDirDownLeft), one(MoveDirDownLeft)), seq(one(MoveDirDownRight), one(MoveDirDownRight)),
		},
	},
	Pike: {
		{seq(one(MoveDirUp), one(MoveDirUp)), seq(one(MoveDirUp)), seq(one(MoveDirLeft)), seq(one(MoveDirRight)), seq(one(MoveDirDown))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
	},
	Pistol: {
		{seq(one(MoveDirUpRight)), seq(one(MoveDirUpLeft)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
		{seq(one(MoveDirUp)), seq(one(MoveDirLeft)), seq(one(MoveDirRight)), seq(one(MoveDirDown))},
		{seq(one(MoveDirUp)), seq(one(MoveDirLeft)), seq(one(MoveDirRight)), seq(one(MoveDirDown))},
	},
	DragonKing: {
		{
			seq(unlimited(MoveDirUp)), seq(unlimited(MoveDirLeft)), seq(unlimited(MoveDirRight)), seq(unlimited(MoveDirDown)),
			seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight)),
		},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
		{seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight))},
	},
}

func commanderMoves() Moveset {
	return Moveset{
		seq(one(MoveDirUp)), seq(one(MoveDirLeft)), seq(one(MoveDirRight)), seq(one(MoveDirDown)),
		seq(one(MoveDirUpRight)), seq(one(MoveDirUpLeft)), seq(one(MoveDirDownLeft)), seq(one(MoveDirDownRight)),
	}
}

func goldMoves() Moveset {
	return Moveset{
		seq(one(MoveDirUp)), seq(one(MoveDirLeft)), seq(one(MoveDirDown)), seq(one(MoveDirRight)),
		seq(one(MoveDirUpLeft)), seq(one(MoveDirUpRight)),
	}
}

// Moveset returns the moves available to p when it sits at the given tower
// tier (0, 1 or 2).
func (p Piece) Moveset(tier int) Moveset {
	if !p.IsValid() || tier < 0 || tier > 2 {
		return nil
	}
	return movesets[p][tier]
}

// handEntry is one row of the starting hand table: a front/back pair and the
// count of that pair each player begins the game holding.
type handEntry struct {
	Front Piece
	Back  Piece
	Count int
}

// StartingHand lists every front/back unit pair, and how many of each, a
// player holds at the start of a game.
var StartingHand = []handEntry{
	{Pawn, Bronze, 7},
	{Pawn, Silver, 1},
	{Pawn, Gold, 1},
	{Bow, Arrow, 2},
	{Prodigy, Phoenix, 1},
	{HiddenDragon, DragonKing, 1},
	{Fortress, Lance, 1},
	{Catapult, Lance, 1},
	{Spy, Clandestinite, 3},
	{Samurai, Pike, 2},
	{Captain, Pistol, 2},
	{Commander, PieceNone, 1},
}
