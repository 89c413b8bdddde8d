package gungi_test

import (
	"testing"

	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/stretchr/testify/assert"
)

func TestPosnIsValid(t *testing.T) {
	assert.True(t, gungi.NewPosn(0, 0).IsValid())
	assert.True(t, gungi.NewPosn(8, 8).IsValid())
	assert.False(t, gungi.NewPosn(-1, 0).IsValid())
	assert.False(t, gungi.NewPosn(0, 9).IsValid())
	assert.False(t, gungi.NewPosn(9, 0).IsValid())
}

func TestPosnIndex(t *testing.T) {
	assert.Equal(t, 0, gungi.NewPosn(0, 0).Index())
	assert.Equal(t, 1, gungi.NewPosn(1, 0).Index())
	assert.Equal(t, gungi.BoardLength, gungi.NewPosn(0, 1).Index())
	assert.Equal(t, gungi.BoardLength*gungi.BoardLength-1, gungi.NewPosn(gungi.BoardLength-1, gungi.BoardLength-1).Index())
}

func TestPosnAdjacent(t *testing.T) {
	center := gungi.NewPosn(4, 4)
	assert.Equal(t, gungi.MoveDirUp, center.Adjacent(gungi.NewPosn(4, 5)))
	assert.Equal(t, gungi.MoveDirDown, center.Adjacent(gungi.NewPosn(4, 3)))
	assert.Equal(t, gungi.MoveDirLeft, center.Adjacent(gungi.NewPosn(3, 4)))
	assert.Equal(t, gungi.MoveDirRight, center.Adjacent(gungi.NewPosn(5, 4)))
	assert.Equal(t, gungi.MoveDirUpLeft, center.Adjacent(gungi.NewPosn(3, 5)))
	assert.Equal(t, gungi.MoveDirNone, center.Adjacent(gungi.NewPosn(6, 6)))
}

func TestPosnUpDownInvert(t *testing.T) {
	p := gungi.NewPosn(4, 4)
	assert.Equal(t, gungi.NewPosn(4, 5), p.Up(false))
	assert.Equal(t, gungi.NewPosn(4, 3), p.Up(true))
	assert.Equal(t, gungi.NewPosn(4, 3), p.Down(false))
	assert.Equal(t, gungi.NewPosn(4, 5), p.Down(true))
	assert.Equal(t, gungi.NewPosn(3, 4), p.Left(false))
	assert.Equal(t, gungi.NewPosn(5, 4), p.Left(true))
}

func TestPosnSetContains(t *testing.T) {
	set := gungi.PosnSet{gungi.NewPosn(0, 0), gungi.NewPosn(1, 1)}
	assert.True(t, set.Contains(gungi.NewPosn(1, 1)))
	assert.False(t, set.Contains(gungi.NewPosn(2, 2)))
}

func TestPosnString(t *testing.T) {
	assert.Equal(t, "a1", gungi.NewPosn(0, 0).String())
	assert.Equal(t, "e5", gungi.NewPosn(4, 4).String())
}
