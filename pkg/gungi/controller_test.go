package gungi_test

import (
	"testing"

	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFreshGameSmoke (scenario S1) checks the state of a brand new
// controller before any action is taken.
func TestFreshGameSmoke(t *testing.T) {
	c := gungi.NewController()

	assert.True(t, c.IsInitialArrangement())
	assert.True(t, c.IsPlayersTurn(gungi.Black))
	assert.False(t, c.IsPlayersTurn(gungi.White))
	assert.False(t, c.IsOver())
	assert.False(t, c.IsDraw())
	assert.False(t, c.IsInCheck())

	_, ok := c.Winner()
	assert.False(t, ok)

	assert.Len(t, c.Black().Units(), 23)
	assert.Len(t, c.White().Units(), 23)
	assert.Empty(t, c.Black().ActiveUnits(c.Arena()))
	assert.Empty(t, c.White().ActiveUnits(c.Arena()))

	_, ok = c.Black().Commander()
	assert.True(t, ok)
	_, ok = c.White().Commander()
	assert.True(t, ok)

	for _, tower := range c.Board() {
		assert.Equal(t, 0, tower.Height())
	}
}

// TestPawnFileDuplicate (scenario S2) verifies that a second pawn of the
// same colour cannot be dropped into a file that already holds one.
func TestPawnFileDuplicate(t *testing.T) {
	c := gungi.NewController()

	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Pawn, gungi.Bronze, gungi.NewPosn(0, 6)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Pawn, gungi.Bronze, gungi.NewPosn(0, 0)))

	err := c.DropUnitPiece(gungi.Pawn, gungi.Bronze, gungi.NewPosn(0, 7))
	assert.Equal(t, gungi.ErrPawnFile, err)
}

// TestCommanderHasNoTower (scenario S5) verifies a unit cannot be dropped
// on top of a commander.
func TestCommanderHasNoTower(t *testing.T) {
	c := gungi.NewController()

	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Commander, gungi.PieceNone, gungi.NewPosn(4, 6)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Pawn, gungi.Bronze, gungi.NewPosn(4, 0)))

	err := c.DropUnitPiece(gungi.Bow, gungi.Arrow, gungi.NewPosn(4, 6))
	assert.Equal(t, gungi.ErrNoTower, err)
}

// TestFortressMobileRangeExpansionColumn (scenario S3) verifies a Fortress
// extends its owner's mobile range expansion up its own file.
func TestFortressMobileRangeExpansionColumn(t *testing.T) {
	c := gungi.NewController()

	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Pawn, gungi.Bronze, gungi.NewPosn(0, 6)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Fortress, gungi.Lance, gungi.NewPosn(4, 1)))

	assert.True(t, c.IsInMobileRangeExpansion(gungi.NewPosn(4, 1), gungi.White))
	assert.True(t, c.IsInMobileRangeExpansion(gungi.NewPosn(4, 5), gungi.White))
	assert.True(t, c.IsInMobileRangeExpansion(gungi.NewPosn(4, 8), gungi.White))
	assert.False(t, c.IsInMobileRangeExpansion(gungi.NewPosn(4, 0), gungi.White))
	assert.False(t, c.IsInMobileRangeExpansion(gungi.NewPosn(3, 5), gungi.White))
}

// TestCatapultMobileRangeExpansionDiamond (scenario S4) verifies the eleven
// squares of a Catapult's diamond-shaped mobile range expansion.
func TestCatapultMobileRangeExpansionDiamond(t *testing.T) {
	c := gungi.NewController()

	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Pawn, gungi.Bronze, gungi.NewPosn(0, 6)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Catapult, gungi.Lance, gungi.NewPosn(4, 1)))

	inside := []gungi.Posn{
		gungi.NewPosn(3, 2), gungi.NewPosn(4, 2), gungi.NewPosn(5, 2),
		gungi.NewPosn(2, 1), gungi.NewPosn(3, 1), gungi.NewPosn(4, 1), gungi.NewPosn(5, 1), gungi.NewPosn(6, 1),
		gungi.NewPosn(3, 0), gungi.NewPosn(4, 0), gungi.NewPosn(5, 0),
	}
	for _, p := range inside {
		assert.True(t, c.IsInMobileRangeExpansion(p, gungi.White), "expected %v in range", p)
	}

	outside := []gungi.Posn{
		gungi.NewPosn(4, 3), gungi.NewPosn(2, 2), gungi.NewPosn(6, 2),
		gungi.NewPosn(1, 1), gungi.NewPosn(7, 1), gungi.NewPosn(2, 0), gungi.NewPosn(6, 0),
	}
	for _, p := range outside {
		assert.False(t, c.IsInMobileRangeExpansion(p, gungi.White), "expected %v outside range", p)
	}
}

func TestDropOutsideTerritoryDuringInitialArrangement(t *testing.T) {
	c := gungi.NewController()
	err := c.DropUnitPiece(gungi.Pawn, gungi.Bronze, gungi.NewPosn(0, 0))
	assert.Equal(t, gungi.ErrTerritory, err)
}

func TestDropUnmatchedFrontBackIsInvalidUnit(t *testing.T) {
	c := gungi.NewController()
	err := c.DropUnitPiece(gungi.Samurai, gungi.Bronze, gungi.NewPosn(4, 6))
	assert.Equal(t, gungi.ErrInvalidUnit, err)
}

func TestMoveDuringInitialArrangementIsDropsOnly(t *testing.T) {
	c := gungi.NewController()

	com, ok := c.Black().Commander()
	require.True(t, ok)

	err := c.MoveUnit(com, gungi.NewPosn(4, 5))
	assert.Equal(t, gungi.ErrDropsOnly, err)
}

func TestActingOutOfTurnIsRejected(t *testing.T) {
	c := gungi.NewController()

	com, ok := c.White().Commander()
	require.True(t, ok)

	err := c.MoveUnit(com, gungi.NewPosn(4, 5))
	assert.Equal(t, gungi.ErrNotTurn, err)
}

func TestDropFullTower(t *testing.T) {
	c := gungi.NewController()

	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Pawn, gungi.Bronze, gungi.NewPosn(0, 6)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Bow, gungi.Arrow, gungi.NewPosn(0, 0)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Samurai, gungi.Pike, gungi.NewPosn(0, 6)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Captain, gungi.Pistol, gungi.NewPosn(1, 0)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Bow, gungi.Arrow, gungi.NewPosn(0, 6)))
	require.Equal(t, gungi.ErrNone, c.DropUnitPiece(gungi.Samurai, gungi.Pike, gungi.NewPosn(2, 0)))

	err := c.DropUnitPiece(gungi.Captain, gungi.Pistol, gungi.NewPosn(0, 6))
	assert.Equal(t, gungi.ErrFullTower, err)
}
