package binary

import (
	"bytes"
	"encoding/binary"
)

// Writer provides buffered writing utilities for fixed-width binary encoding.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer with room for size bytes.
func NewWriter(size int) *Writer {
	w := &Writer{buf: &bytes.Buffer{}}
	w.buf.Grow(size)
	return w
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU64LE writes a little-endian uint64 (fixed 8 bytes).
func (w *Writer) WriteU64LE(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.buf.Write(buf[:])
}
