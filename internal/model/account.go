package model

import "time"

// Account is a login account in the account directory. The identity is
// assigned once from the storage identity sequence and shared with the
// account's character.
type Account struct {
	Identity     uint64
	Name         string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

// Character is the persisted playable character for an account
type Character struct {
	Identity  uint64 // same as the owning account's identity
	Name      string
	Class     uint16
	Body      uint32
	HairStyle uint16
	Money     uint32
	Level     uint8
	Location  Location
}
