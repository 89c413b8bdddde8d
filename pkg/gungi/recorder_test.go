package gungi_test

import (
	"testing"

	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsOccurrences(t *testing.T) {
	arena := gungi.NewArena(1)
	h := arena.Add(gungi.Pawn, gungi.Bronze)
	tower := gungi.NewTower(gungi.NewPosn(0, 0))
	require.Equal(t, gungi.ErrNone, tower.Add(arena, h))
	towers := []*gungi.Tower{tower}

	r := gungi.NewRecorder()
	assert.Equal(t, 1, r.Record(towers, arena))
	assert.Equal(t, 2, r.Record(towers, arena))
	assert.Equal(t, 3, r.Record(towers, arena))
	assert.Equal(t, 4, r.Record(towers, arena))
	assert.Equal(t, gungi.MaxPositionRepetitions, 4)
}

func TestRecorderDistinctPositionsCountedSeparately(t *testing.T) {
	arena := gungi.NewArena(2)
	a := arena.Add(gungi.Pawn, gungi.Bronze)
	b := arena.Add(gungi.Bow, gungi.Arrow)

	towerA := gungi.NewTower(gungi.NewPosn(0, 0))
	require.Equal(t, gungi.ErrNone, towerA.Add(arena, a))
	towerB := gungi.NewTower(gungi.NewPosn(0, 0))
	require.Equal(t, gungi.ErrNone, towerB.Add(arena, b))

	r := gungi.NewRecorder()
	assert.Equal(t, 1, r.Record([]*gungi.Tower{towerA}, arena))
	assert.Equal(t, 1, r.Record([]*gungi.Tower{towerB}, arena))
	assert.Equal(t, 2, r.Record([]*gungi.Tower{towerA}, arena))
}

func TestRecorderReset(t *testing.T) {
	arena := gungi.NewArena(1)
	h := arena.Add(gungi.Pawn, gungi.Bronze)
	tower := gungi.NewTower(gungi.NewPosn(0, 0))
	require.Equal(t, gungi.ErrNone, tower.Add(arena, h))
	towers := []*gungi.Tower{tower}

	r := gungi.NewRecorder()
	r.Record(towers, arena)
	r.Record(towers, arena)
	r.Reset()
	assert.Equal(t, 1, r.Record(towers, arena))
}
