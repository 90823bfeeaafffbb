package bytecode

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns the hex BLAKE3-256 digest of an encoded buffer. It is an
// identity for tooling only; the wire format carries no checksum.
func Digest(buf []byte) string {
	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
