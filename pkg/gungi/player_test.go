package gungi_test

import (
	"testing"

	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerAddUnitBindsColourAndCommander(t *testing.T) {
	arena := gungi.NewArena(2)
	player := gungi.NewPlayer(gungi.Black)

	com := arena.Add(gungi.Commander, gungi.PieceNone)
	require.Equal(t, gungi.ErrNone, player.AddUnit(arena, com))
	assert.Equal(t, gungi.Black, arena.Unit(com).Colour())

	got, ok := player.Commander()
	require.True(t, ok)
	assert.Equal(t, com, got)
}

func TestPlayerAddUnitDuplicate(t *testing.T) {
	arena := gungi.NewArena(1)
	player := gungi.NewPlayer(gungi.White)

	h := arena.Add(gungi.Pawn, gungi.Bronze)
	require.Equal(t, gungi.ErrNone, player.AddUnit(arena, h))
	assert.Equal(t, gungi.ErrDuplicate, player.AddUnit(arena, h))
}

func TestPlayerRemoveUnitClearsCommander(t *testing.T) {
	arena := gungi.NewArena(1)
	player := gungi.NewPlayer(gungi.White)

	com := arena.Add(gungi.Commander, gungi.PieceNone)
	require.Equal(t, gungi.ErrNone, player.AddUnit(arena, com))
	require.Equal(t, gungi.ErrNone, player.RemoveUnit(arena, com))

	_, ok := player.Commander()
	assert.False(t, ok)
}

func TestPlayerRemoveUnitNotAMember(t *testing.T) {
	arena := gungi.NewArena(1)
	player := gungi.NewPlayer(gungi.White)
	h := arena.Add(gungi.Pawn, gungi.Bronze)
	assert.Equal(t, gungi.ErrNotAMember, player.RemoveUnit(arena, h))
}

func TestPlayerActiveAndInactiveUnits(t *testing.T) {
	arena := gungi.NewArena(2)
	player := gungi.NewPlayer(gungi.White)

	onBoard := arena.Add(gungi.Pawn, gungi.Bronze)
	inHand := arena.Add(gungi.Bow, gungi.Arrow)
	require.Equal(t, gungi.ErrNone, player.AddUnit(arena, onBoard))
	require.Equal(t, gungi.ErrNone, player.AddUnit(arena, inHand))

	tower := gungi.NewTower(gungi.NewPosn(0, 0))
	require.Equal(t, gungi.ErrNone, tower.Add(arena, onBoard))

	assert.Equal(t, []gungi.Handle{onBoard}, player.ActiveUnits(arena))
	assert.Equal(t, []gungi.Handle{inHand}, player.InactiveUnits(arena))
}

func TestPlayerReset(t *testing.T) {
	arena := gungi.NewArena(1)
	player := gungi.NewPlayer(gungi.Black)
	com := arena.Add(gungi.Commander, gungi.PieceNone)
	require.Equal(t, gungi.ErrNone, player.AddUnit(arena, com))

	player.Reset()
	assert.Empty(t, player.Units())
	_, ok := player.Commander()
	assert.False(t, ok)
}
