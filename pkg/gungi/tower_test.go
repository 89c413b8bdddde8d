package gungi_test

import (
	"testing"

	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTowerHeightAndDuplicate(t *testing.T) {
	arena := gungi.NewArena(4)
	tower := gungi.NewTower(gungi.NewPosn(0, 0))

	w1 := arena.Add(gungi.Pawn, gungi.Bronze)
	w2 := arena.Add(gungi.Pawn, gungi.Silver)

	require.Equal(t, gungi.ErrNone, tower.Add(arena, w1))
	assert.Equal(t, 1, tower.Height())

	assert.True(t, tower.IsDuplicate(arena, gungi.White, gungi.Pawn))
	assert.Equal(t, gungi.ErrDuplicate, tower.Add(arena, w2))
	assert.Equal(t, 1, tower.Height())
}

func TestTowerFull(t *testing.T) {
	arena := gungi.NewArena(4)
	tower := gungi.NewTower(gungi.NewPosn(0, 0))

	pieces := [][2]gungi.Piece{
		{gungi.Pawn, gungi.Bronze},
		{gungi.Bow, gungi.Arrow},
		{gungi.Samurai, gungi.Pike},
	}
	for _, pb := range pieces {
		h := arena.Add(pb[0], pb[1])
		require.Equal(t, gungi.ErrNone, tower.Add(arena, h))
	}
	assert.Equal(t, gungi.MaxTowerHeight, tower.Height())

	extra := arena.Add(gungi.Captain, gungi.Pistol)
	assert.Equal(t, gungi.ErrFullTower, tower.Add(arena, extra))
}

func TestTowerRemoveShiftsTiers(t *testing.T) {
	arena := gungi.NewArena(4)
	tower := gungi.NewTower(gungi.NewPosn(2, 2))

	bottom := arena.Add(gungi.Pawn, gungi.Bronze)
	top := arena.Add(gungi.Bow, gungi.Arrow)
	require.Equal(t, gungi.ErrNone, tower.Add(arena, bottom))
	require.Equal(t, gungi.ErrNone, tower.Add(arena, top))

	require.Equal(t, gungi.ErrNone, tower.Remove(arena, bottom))
	assert.Equal(t, 1, tower.Height())

	tier, err := tower.Tier(top)
	require.Equal(t, gungi.ErrNone, err)
	assert.Equal(t, 0, tier)

	_, ok := arena.Unit(bottom).Posn()
	assert.False(t, ok)
}

func TestTowerRemoveNotAMember(t *testing.T) {
	arena := gungi.NewArena(2)
	tower := gungi.NewTower(gungi.NewPosn(0, 0))
	h := arena.Add(gungi.Pawn, gungi.Bronze)
	assert.Equal(t, gungi.ErrNotAMember, tower.Remove(arena, h))
}

func TestTowerSwap13(t *testing.T) {
	arena := gungi.NewArena(4)
	tower := gungi.NewTower(gungi.NewPosn(0, 0))

	bottom := arena.Add(gungi.Pawn, gungi.Bronze)
	mid := arena.Add(gungi.Bow, gungi.Arrow)
	top := arena.Add(gungi.Samurai, gungi.Pike)
	for _, h := range []gungi.Handle{bottom, mid, top} {
		require.Equal(t, gungi.ErrNone, tower.Add(arena, h))
	}

	tower.Swap13(arena)

	assert.Equal(t, top, tower.Members()[0])
	assert.Equal(t, mid, tower.Members()[1])
	assert.Equal(t, bottom, tower.Members()[2])
	assert.True(t, tower.IsDirty(gungi.DirtyTierExchange))

	tower.MarkClean(gungi.DirtyTierExchange)
	assert.False(t, tower.IsDirty(gungi.DirtyTierExchange))
}
