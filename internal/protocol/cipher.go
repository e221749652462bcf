package protocol

import (
	"encoding/binary"
	"sync"
)

// Cipher is the symmetric stream cipher for a session connection. A fresh
// cipher passes data through unchanged; after the handshake redeems the
// promise, SetKeys switches it to keyed mode with two 8-byte keys derived
// from the token and identity.
//
// Each direction keeps its own keystream position, so one Cipher instance
// serves a connection's reads and writes. The scheme is symmetric: the
// peer decrypts with an identically keyed cipher.
type Cipher struct {
	mu     sync.Mutex
	keyed  bool
	key1   [8]byte
	key2   [8]byte
	encPos uint32
	decPos uint32
}

// NewCipher creates a passthrough cipher
func NewCipher() *Cipher {
	return &Cipher{}
}

// SetKeys derives the two directional keys from the handshake token and
// identity and resets both keystream positions.
func (c *Cipher) SetKeys(token uint32, identity uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seed1 := (uint64(token) * 0x9e3779b1) ^ identity
	seed2 := (identity * 0x85ebca77) ^ uint64(token)
	binary.LittleEndian.PutUint64(c.key1[:], seed1)
	binary.LittleEndian.PutUint64(c.key2[:], seed2)
	c.keyed = true
	c.encPos = 0
	c.decPos = 0
}

// Keyed reports whether SetKeys has been applied
func (c *Cipher) Keyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyed
}

// Encrypt transforms outbound bytes in place
func (c *Cipher) Encrypt(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.keyed {
		return
	}
	for i := range data {
		data[i] ^= c.keystream(c.encPos)
		c.encPos++
	}
}

// Decrypt transforms inbound bytes in place
func (c *Cipher) Decrypt(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.keyed {
		return
	}
	for i := range data {
		data[i] ^= c.keystream(c.decPos)
		c.decPos++
	}
}

func (c *Cipher) keystream(pos uint32) byte {
	return c.key1[pos&7] ^ c.key2[(pos>>3)&7] ^ byte(pos)
}
