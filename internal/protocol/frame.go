package protocol

import (
	"errors"
	"fmt"
	"io"
)

// ErrFrameTooLarge is returned for frames exceeding MaxFrameSize
var ErrFrameTooLarge = errors.New("frame exceeds maximum size")

// ReadFrame reads and decrypts one frame from the stream. The header is
// decrypted first to learn the frame length, then the remainder.
func ReadFrame(r io.Reader, c *Cipher) (Packet, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	c.Decrypt(header)

	size := int(uint16(header[0]) | uint16(header[1])<<8)
	if size > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	if size < HeaderSize {
		return nil, fmt.Errorf("frame length %d below header size", size)
	}

	frame := make([]byte, size)
	copy(frame, header)
	if size > HeaderSize {
		if _, err := io.ReadFull(r, frame[HeaderSize:]); err != nil {
			return nil, err
		}
		c.Decrypt(frame[HeaderSize:])
	}
	return Packet(frame), nil
}

// WriteFrame encrypts and writes one frame to the stream. The input slice
// is not modified.
func WriteFrame(w io.Writer, frame []byte, c *Cipher) error {
	out := make([]byte, len(frame))
	copy(out, frame)
	c.Encrypt(out)
	_, err := w.Write(out)
	return err
}
