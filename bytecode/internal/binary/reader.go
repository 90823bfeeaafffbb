package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrShortRead is returned when fewer bytes remain than a read asks for.
var ErrShortRead = errors.New("short read")

// Reader reads fixed-width little-endian values from a byte slice with
// position tracking.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader over data. The slice is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The returned slice is a copy.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, r.wrapError(ErrShortRead)
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:r.pos+n])
	r.pos += n
	return buf, nil
}

// ReadU64LE reads a little-endian uint64 (fixed 8 bytes).
func (r *Reader) ReadU64LE() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, r.wrapError(ErrShortRead)
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadRemaining reads all remaining bytes.
func (r *Reader) ReadRemaining() []byte {
	buf, _ := r.ReadBytes(r.Remaining())
	return buf
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}
