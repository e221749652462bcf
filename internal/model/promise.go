package model

import "time"

// Promise is a short-lived identity/token pair issued by the auth gateway
// and redeemed by the session gateway to complete the handshake.
type Promise struct {
	Identity     uint64
	Token        uint32
	HasCharacter bool
	IssuedAt     time.Time
}
