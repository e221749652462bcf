package model

// ViewRange is the visibility radius in cells. Entities further apart than
// this on either axis do not receive each other's broadcasts.
const ViewRange = 18

// Direction is one of the eight compass headings the client can walk in,
// numbered clockwise from south-west.
type Direction uint8

// Walk deltas per direction, indexed by Direction % 8
var (
	walkDX = [8]int{-1, -1, -1, 0, 1, 1, 1, 0}
	walkDY = [8]int{1, 0, -1, -1, -1, 0, 1, 1}
)

// Location is a position within a region of the world
type Location struct {
	MapID     uint32
	X         uint16
	Y         uint16
	Direction Direction
}

// InView reports whether other is within visibility range of this location.
// Locations in different regions are never in view of each other. The test
// is symmetric: a.InView(b) == b.InView(a).
func (l Location) InView(other Location) bool {
	if l.MapID != other.MapID {
		return false
	}
	return absDiff(l.X, other.X) <= ViewRange && absDiff(l.Y, other.Y) <= ViewRange
}

// Step returns the location one cell along the given direction, facing it
func (l Location) Step(d Direction) Location {
	i := int(d) % 8
	return Location{
		MapID:     l.MapID,
		X:         uint16(int(l.X) + walkDX[i]),
		Y:         uint16(int(l.Y) + walkDY[i]),
		Direction: d,
	}
}

func absDiff(a, b uint16) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
