package gn_test

import (
	"testing"

	"github.com/hkpeprah/gungi/pkg/gn"
	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMoveDrop(t *testing.T) {
	c := gungi.NewController()
	require.NoError(t, gn.DecodeMove("PZ*0-6-0", c))

	h, ok := c.UnitAtPosn(gungi.NewPosn(0, 6), 0)
	require.True(t, ok)
	u := c.Arena().Unit(h)
	assert.Equal(t, gungi.Pawn, u.Front())
	assert.Equal(t, gungi.Bronze, u.Back())
	assert.Equal(t, gungi.Black, u.Colour())
}

func TestDecodeMoveUnrecognised(t *testing.T) {
	c := gungi.NewController()
	assert.Error(t, gn.DecodeMove("not-a-move", c))
}

func TestDecodeMoveEmptyIsNoop(t *testing.T) {
	c := gungi.NewController()
	assert.NoError(t, gn.DecodeMove("   ", c))
	assert.True(t, c.IsPlayersTurn(gungi.Black))
}

func TestDecodeFullDocument(t *testing.T) {
	doc := `[Event "Test"]
[Date "2024.01.01"]
[Location "Earth"]
[White "Alice"]
[Black "Bob"]
[Result "*"]

1. PZ*0-6-0 PZ*0-0-0
2. PZ*1-6-0
`

	c := gungi.NewController()
	md, err := gn.Decode(doc, c)
	require.NoError(t, err)

	assert.Equal(t, "Test", md.Event())
	assert.Equal(t, "2024.01.01", md.Date())
	assert.Equal(t, "Earth", md.Location())
	assert.Equal(t, "Alice", md.White())
	assert.Equal(t, "Bob", md.Black())

	h, ok := c.UnitAtPosn(gungi.NewPosn(0, 6), 0)
	require.True(t, ok)
	assert.Equal(t, gungi.Pawn, c.Arena().Unit(h).Front())
	assert.Equal(t, gungi.Black, c.Arena().Unit(h).Colour())

	h2, ok := c.UnitAtPosn(gungi.NewPosn(0, 0), 0)
	require.True(t, ok)
	assert.Equal(t, gungi.White, c.Arena().Unit(h2).Colour())

	h3, ok := c.UnitAtPosn(gungi.NewPosn(1, 6), 0)
	require.True(t, ok)
	assert.Equal(t, gungi.Black, c.Arena().Unit(h3).Colour())
}

func TestDecodeRejectsMalformedDate(t *testing.T) {
	doc := `[Event "Test"]
[Date "not-a-date"]
[Location "Earth"]
[White "Alice"]
[Black "Bob"]
[Result "*"]
`
	c := gungi.NewController()
	_, err := gn.Decode(doc, c)
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownHeader(t *testing.T) {
	doc := `[Mystery "value"]
`
	c := gungi.NewController()
	_, err := gn.Decode(doc, c)
	assert.Error(t, err)
}

func TestDecodeRejectsOutOfSequenceMoveNumber(t *testing.T) {
	doc := `5. PZ*0-6-0
`
	c := gungi.NewController()
	_, err := gn.Decode(doc, c)
	assert.Error(t, err)
}

// TestDecodeFullInitialArrangementEndsWithAMove decodes all forty-six drops
// of a complete initial arrangement (the full hand of both colours, one
// drop per turn, black to move first) followed by one ordinary move, and
// checks that decode carries the controller across the arrangement/play
// boundary: IsInitialArrangement drops once every unit has a square, and a
// move immediately after it is still accepted and applied.
func TestDecodeFullInitialArrangementEndsWithAMove(t *testing.T) {
	doc := `[Event "Test"]
[Date "2024.01.01"]
[Location "Earth"]
[White "Alice"]
[Black "Bob"]
[Result "*"]

1. PZ*0-6-0 PZ*0-2-0
2. PZ*1-6-0 PZ*1-2-0
3. PZ*2-6-0 PZ*2-2-0
4. PZ*3-6-0 PZ*3-2-0
5. PZ*4-6-0 PZ*4-2-0
6. PZ*5-6-0 PZ*5-2-0
7. PZ*6-6-0 PZ*6-2-0
8. PV*7-6-0 PV*7-2-0
9. PG*8-6-0 PG*8-2-0
10. BA*0-7-0 BA*0-1-0
11. BA*1-7-0 BA*1-1-0
12. RX*2-7-0 RX*2-1-0
13. HK*3-7-0 HK*3-1-0
14. FL*4-7-0 FL*4-1-0
15. TL*5-7-0 TL*5-1-0
16. YN*6-7-0 YN*6-1-0
17. YN*7-7-0 YN*7-1-0
18. YN*8-7-0 YN*8-1-0
19. SE*0-8-0 SE*0-0-0
20. SE*1-8-0 SE*1-0-0
21. CI*2-8-0 CI*2-0-0
22. CI*3-8-0 CI*3-0-0
23. O-*4-8-0 O-*4-0-0
24. O-<4-8-0>5-8-0
`

	c := gungi.NewController()
	_, err := gn.Decode(doc, c)
	require.NoError(t, err)

	assert.False(t, c.IsInitialArrangement())
	assert.True(t, c.IsPlayersTurn(gungi.White))

	_, ok := c.UnitAtPosn(gungi.NewPosn(4, 8), 0)
	assert.False(t, ok, "black commander should have vacated its drop square")

	h, ok := c.UnitAtPosn(gungi.NewPosn(5, 8), 0)
	require.True(t, ok)
	u := c.Arena().Unit(h)
	assert.Equal(t, gungi.Commander, u.Front())
	assert.Equal(t, gungi.Black, u.Colour())
}

func TestDecodeSkipsLineAndBlockComments(t *testing.T) {
	doc := `# a line comment
[Event "Test"]
(an inline comment)
[Date "2024.01.01"]
[Location "Earth"]
[White "Alice"]
[Black "Bob"]
[Result "*"]

1. PZ*0-6-0 (white has not moved yet)
`
	c := gungi.NewController()
	md, err := gn.Decode(doc, c)
	require.NoError(t, err)
	assert.Equal(t, "Test", md.Event())

	_, ok := c.UnitAtPosn(gungi.NewPosn(0, 6), 0)
	assert.True(t, ok)
}
