package gungi_test

import (
	"testing"

	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitFlip(t *testing.T) {
	u := gungi.NewUnit(gungi.Pawn, gungi.Bronze)
	assert.Equal(t, gungi.Pawn, u.Front())
	assert.Equal(t, gungi.Bronze, u.Back())

	require.Equal(t, gungi.ErrNone, u.Flip())
	assert.Equal(t, gungi.Bronze, u.Front())
	assert.Equal(t, gungi.Pawn, u.Back())
}

func TestUnitFlipNoBack(t *testing.T) {
	u := gungi.NewUnit(gungi.Commander, gungi.PieceNone)
	assert.Equal(t, gungi.ErrNoBack, u.Flip())
}

func TestUnitCode(t *testing.T) {
	u := gungi.NewUnit(gungi.Pawn, gungi.Bronze)
	assert.Equal(t, "PZ", u.Code())

	commander := gungi.NewUnit(gungi.Commander, gungi.PieceNone)
	assert.Equal(t, "O-", commander.Code())
}

func TestUnitLocationLifecycle(t *testing.T) {
	u := gungi.NewUnit(gungi.Pawn, gungi.Bronze)
	assert.False(t, u.IsActive())

	arena := gungi.NewArena(1)
	h := arena.Add(gungi.Pawn, gungi.Bronze)
	tower := gungi.NewTower(gungi.NewPosn(3, 3))
	require.Equal(t, gungi.ErrNone, tower.Add(arena, h))

	placed := arena.Unit(h)
	assert.True(t, placed.IsActive())
	posn, ok := placed.Posn()
	require.True(t, ok)
	assert.Equal(t, gungi.NewPosn(3, 3), posn)
	tier, ok := placed.Tier()
	require.True(t, ok)
	assert.Equal(t, 0, tier)

	require.Equal(t, gungi.ErrNone, tower.Remove(arena, h))
	assert.False(t, placed.IsActive())
}

func TestArenaAddAndLen(t *testing.T) {
	arena := gungi.NewArena(2)
	assert.Equal(t, 0, arena.Len())

	h1 := arena.Add(gungi.Pawn, gungi.Bronze)
	h2 := arena.Add(gungi.Bow, gungi.Arrow)
	assert.Equal(t, 2, arena.Len())
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, gungi.Pawn, arena.Unit(h1).Front())
	assert.Equal(t, gungi.Bow, arena.Unit(h2).Front())
}

func TestArenaReset(t *testing.T) {
	arena := gungi.NewArena(1)
	h := arena.Add(gungi.Pawn, gungi.Bronze)
	tower := gungi.NewTower(gungi.NewPosn(0, 0))
	require.Equal(t, gungi.ErrNone, tower.Add(arena, h))
	require.True(t, arena.Unit(h).IsActive())

	arena.Reset()
	assert.False(t, arena.Unit(h).IsActive())
}
