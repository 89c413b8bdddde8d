package gungi

// Effect is a bitfield of special rules that apply to a piece.
type Effect uint16

const (
	EffectNone Effect = 0

	EffectLandLink              Effect = 1 << 1
	EffectMobileRangeExpansion1 Effect = 1 << 2 // Fortress
	EffectMobileRangeExpansion2 Effect = 1 << 3 // Catapult
	Effect1_3TierExchange       Effect = 1 << 4
	EffectSubstitution          Effect = 1 << 5
	EffectBetrayal              Effect = 1 << 6
	EffectForcedRecovery        Effect = 1 << 7
	EffectForcedRearrangement   Effect = 1 << 8

	// EffectNoTower marks a piece that cannot be stacked upon.
	EffectNoTower Effect = 1 << 9

	// EffectPassive marks a piece that cannot capture.
	EffectPassive Effect = 1 << 10

	// EffectNoStack marks a piece that cannot stack on other units.
	EffectNoStack Effect = 1 << 11

	// EffectFrontDropOnly marks a tower that only accepts a front piece
	// dropped onto it (Clandestinite).
	EffectFrontDropOnly Effect = 1 << 12

	// EffectBackDropOnly marks a tower that only accepts a back piece
	// dropped onto it (Spy).
	EffectBackDropOnly Effect = 1 << 13

	// EffectJump marks a piece that may jump over occupied squares along
	// its walk.
	EffectJump Effect = 1 << 14
)

// Has reports whether e includes all the bits in other.
func (e Effect) Has(other Effect) bool {
	return e&other == other
}
