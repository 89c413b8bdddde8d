package gungi_test

import (
	"testing"

	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/stretchr/testify/assert"
)

func TestMovesetTierBounds(t *testing.T) {
	assert.Nil(t, gungi.Pawn.Moveset(-1))
	assert.Nil(t, gungi.Pawn.Moveset(3))
	assert.Nil(t, gungi.PieceNone.Moveset(0))
}

func TestPawnMovesetGrowsWithTier(t *testing.T) {
	assert.Len(t, gungi.Pawn.Moveset(0), 1)
	assert.Len(t, gungi.Pawn.Moveset(1), 3)
	assert.Len(t, gungi.Pawn.Moveset(2), 4)
}

func TestFortressAndCatapultHaveNoMoveset(t *testing.T) {
	for tier := 0; tier < 3; tier++ {
		assert.Empty(t, gungi.Fortress.Moveset(tier))
		assert.Empty(t, gungi.Catapult.Moveset(tier))
	}
}

func TestCommanderHasEightDirections(t *testing.T) {
	assert.Len(t, gungi.Commander.Moveset(0), 8)
}

func TestMoveDirDiagonalsCombineAxisBits(t *testing.T) {
	assert.Equal(t, gungi.MoveDirUp|gungi.MoveDirLeft, gungi.MoveDirUpLeft)
	assert.Equal(t, gungi.MoveDirDown|gungi.MoveDirRight, gungi.MoveDirDownRight)
}
