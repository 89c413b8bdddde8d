package gungi

// Error is a flat error code returned by core operations. The core never
// returns an ordinary Go error: every legality check and state mutation
// resolves to one of these codes so callers can switch on outcome without
// string matching. Host-boundary packages (pkg/gn, pkg/engine, cmd/gungi)
// translate an Error into an ordinary error where Go idiom expects one.
type Error int

const (
	ErrNone Error = iota
	ErrInvalidIndex
	ErrNoBack
	ErrFullTower
	ErrNotAMember
	ErrOutOfRange
	ErrDuplicate
	ErrNoWalk
	ErrGameOver
	ErrInvalidUnit
	ErrCheck
	ErrTerritory
	ErrNotTop
	ErrPawnFile
	ErrBronzeFile
	ErrLandLink
	ErrSameTeam
	ErrPawnCheckmate
	ErrBronzeCheckmate
	ErrNoTower
	ErrBackOnly
	ErrFrontOnly
	ErrImmune
	ErrInvalidExchange
	ErrInvalidSub
	ErrNoStack
	ErrNotTurn
	ErrDropsOnly
	ErrInvalidState
	numErrors
)

var errorStrings = [numErrors]string{
	ErrNone:             "no error",
	ErrInvalidIndex:     "invalid index",
	ErrNoBack:           "unit has no back",
	ErrFullTower:        "tower is full",
	ErrNotAMember:       "unit is not a member of the tower",
	ErrOutOfRange:       "tier is out of range",
	ErrDuplicate:        "duplicate unit in tower",
	ErrNoWalk:           "no walk exists for the given move",
	ErrGameOver:         "game is over",
	ErrInvalidUnit:      "invalid unit",
	ErrCheck:            "move would leave commander in check",
	ErrTerritory:        "drop is outside of territory",
	ErrNotTop:           "unit is not on top of its tower",
	ErrPawnFile:         "file already has an active pawn",
	ErrBronzeFile:       "file already has an active bronze",
	ErrLandLink:         "top unit has no land link to drop onto",
	ErrSameTeam:         "unit belongs to the same team",
	ErrPawnCheckmate:    "pawn may not deliver checkmate by drop",
	ErrBronzeCheckmate:  "bronze may not deliver checkmate by drop",
	ErrNoTower:          "top unit cannot be stacked upon",
	ErrBackOnly:         "only a back piece may be dropped here",
	ErrFrontOnly:        "only a front piece may be dropped here",
	ErrImmune:           "unit is immune to the effect",
	ErrInvalidExchange:  "invalid tier exchange",
	ErrInvalidSub:       "invalid substitution",
	ErrNoStack:          "unit cannot stack on another unit",
	ErrNotTurn:          "not the given colour's turn",
	ErrDropsOnly:        "only drops are legal in this position",
	ErrInvalidState:     "controller is not in a state to perform this action",
}

// String returns the error's human-readable message.
func (e Error) String() string {
	if e < 0 || e >= numErrors {
		return "unknown error"
	}
	return errorStrings[e]
}

// OK reports whether e is ErrNone.
func (e Error) OK() bool {
	return e == ErrNone
}

// Error implements the error interface so an Error can be wrapped or
// returned at a host boundary that expects ordinary Go errors.
func (e Error) Error() string {
	return e.String()
}
