package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInViewIsSymmetric(t *testing.T) {
	a := Location{MapID: 1002, X: 100, Y: 100}
	b := Location{MapID: 1002, X: 110, Y: 95}

	assert.True(t, a.InView(b))
	assert.True(t, b.InView(a))
}

func TestInViewEdgeOfRange(t *testing.T) {
	a := Location{MapID: 1002, X: 100, Y: 100}

	atEdge := Location{MapID: 1002, X: 100 + ViewRange, Y: 100}
	assert.True(t, a.InView(atEdge))

	beyondEdge := Location{MapID: 1002, X: 100 + ViewRange + 1, Y: 100}
	assert.False(t, a.InView(beyondEdge))
}

func TestInViewDifferentRegions(t *testing.T) {
	a := Location{MapID: 1002, X: 100, Y: 100}
	b := Location{MapID: 1003, X: 100, Y: 100}

	assert.False(t, a.InView(b))
	assert.False(t, b.InView(a))
}

func TestStepCoversAllHeadings(t *testing.T) {
	origin := Location{MapID: 1002, X: 100, Y: 100}

	seen := make(map[[2]uint16]bool)
	for d := Direction(0); d < 8; d++ {
		next := origin.Step(d)
		assert.Equal(t, d, next.Direction)
		assert.NotEqual(t, [2]uint16{origin.X, origin.Y}, [2]uint16{next.X, next.Y})
		seen[[2]uint16{next.X, next.Y}] = true
	}
	// Eight headings reach eight distinct neighbouring cells
	assert.Len(t, seen, 8)
}

func TestPlayerWalkMovesOneCell(t *testing.T) {
	p := NewPlayer(1000000, "Walker", Location{MapID: 1002, X: 50, Y: 50})

	before := p.Location()
	p.Walk(3)
	after := p.Location()

	assert.Equal(t, before.X, after.X)
	assert.Equal(t, before.Y-1, after.Y)
	assert.Equal(t, Direction(3), after.Direction)
}
