package model

// Entity is anything that can be present in a world region: players,
// NPCs, monsters. The registry only needs identity equality and a
// location; everything else lives on the concrete variant.
type Entity interface {
	Identity() uint64
	Name() string
	Location() Location
}
