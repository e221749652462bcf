package model

import "sync"

// Sender delivers an encoded frame to a connected client. Implemented by
// the gateway connection; the player holds it as a non-owning reference,
// the connection's lifetime is managed elsewhere.
type Sender interface {
	Send(frame []byte) error
}

// Player is the entity variant bound to a live client connection
type Player struct {
	ID        uint64
	CharName  string
	Class     uint16
	Body      uint32
	HairStyle uint16
	Money     uint32
	Level     uint8

	mu     sync.RWMutex
	loc    Location
	sender Sender
}

// Ensure Player satisfies the registry contract
var _ Entity = (*Player)(nil)

// NewPlayer creates a player at the given location
func NewPlayer(id uint64, name string, loc Location) *Player {
	return &Player{ID: id, CharName: name, loc: loc}
}

// Identity returns the player's server-unique identity
func (p *Player) Identity() uint64 { return p.ID }

// Name returns the character name
func (p *Player) Name() string { return p.CharName }

// Location returns the player's current location
func (p *Player) Location() Location {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loc
}

// SetLocation replaces the player's location (login placement, teleport)
func (p *Player) SetLocation(loc Location) {
	p.mu.Lock()
	p.loc = loc
	p.mu.Unlock()
}

// Walk advances the player one cell along the given direction
func (p *Player) Walk(d Direction) {
	p.mu.Lock()
	p.loc = p.loc.Step(d)
	p.mu.Unlock()
}

// Bind attaches the player to its connection for outbound delivery
func (p *Player) Bind(s Sender) {
	p.mu.Lock()
	p.sender = s
	p.mu.Unlock()
}

// Send delivers a frame to the player's client. Frames for unbound
// players are dropped.
func (p *Player) Send(frame []byte) error {
	p.mu.RLock()
	s := p.sender
	p.mu.RUnlock()
	if s == nil {
		return nil
	}
	return s.Send(frame)
}
