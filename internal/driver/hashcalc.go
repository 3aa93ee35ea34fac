package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 value.
type Digest [32]byte

// cacheKey: H(schema || frontend || content hash). A new schema or front
// end never reuses an entry of another.
func cacheKey(frontend Frontend, content [32]byte) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write([]byte(frontend))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
