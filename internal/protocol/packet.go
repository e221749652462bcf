package protocol

import (
	"encoding/binary"
	"strings"
)

// Packet is one decoded frame: little-endian u16 length, u16 type,
// payload. Field offsets are absolute within the frame, matching the
// client's fixed layouts.
type Packet []byte

// HeaderSize is the byte size of the frame header (length + type)
const HeaderSize = 4

// MaxFrameSize caps inbound frame lengths; anything larger is a corrupt
// or hostile stream.
const MaxFrameSize = 1024

// Type returns the packet type from the header
func (p Packet) Type() Type {
	if len(p) < HeaderSize {
		return 0
	}
	return Type(binary.LittleEndian.Uint16(p[2:4]))
}

// Byte returns the byte at the given offset
func (p Packet) Byte(offset int) byte {
	if offset >= len(p) {
		return 0
	}
	return p[offset]
}

// Uint16 reads a little-endian u16 at the given offset
func (p Packet) Uint16(offset int) uint16 {
	if offset+2 > len(p) {
		return 0
	}
	return binary.LittleEndian.Uint16(p[offset : offset+2])
}

// Uint32 reads a little-endian u32 at the given offset
func (p Packet) Uint32(offset int) uint32 {
	if offset+4 > len(p) {
		return 0
	}
	return binary.LittleEndian.Uint32(p[offset : offset+4])
}

// String reads a fixed-width string field, trimming embedded NUL padding
func (p Packet) String(offset, width int) string {
	if offset >= len(p) {
		return ""
	}
	end := offset + width
	if end > len(p) {
		end = len(p)
	}
	return strings.ReplaceAll(string(p[offset:end]), "\x00", "")
}

// Writer builds an outbound frame with a sequential cursor starting after
// the header, the way the client's fixed layouts are written.
type Writer struct {
	buf    []byte
	cursor int
}

// NewWriter allocates a frame of the given total size for the given type
func NewWriter(t Type, size int) *Writer {
	buf := make([]byte, size)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(size))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(t))
	return &Writer{buf: buf, cursor: HeaderSize}
}

// PutByte writes one byte at the cursor
func (w *Writer) PutByte(b byte) *Writer {
	w.buf[w.cursor] = b
	w.cursor++
	return w
}

// PutUint16 writes a little-endian u16 at the cursor
func (w *Writer) PutUint16(v uint16) *Writer {
	binary.LittleEndian.PutUint16(w.buf[w.cursor:w.cursor+2], v)
	w.cursor += 2
	return w
}

// PutUint32 writes a little-endian u32 at the cursor
func (w *Writer) PutUint32(v uint32) *Writer {
	binary.LittleEndian.PutUint32(w.buf[w.cursor:w.cursor+4], v)
	w.cursor += 4
	return w
}

// PutString writes a fixed-width NUL-padded string at the cursor
func (w *Writer) PutString(s string, width int) *Writer {
	copy(w.buf[w.cursor:w.cursor+width], s)
	w.cursor += width
	return w
}

// Bytes returns the finished frame
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Packet returns the finished frame as a Packet
func (w *Writer) Packet() Packet {
	return Packet(w.buf)
}
