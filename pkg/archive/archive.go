// Package archive handles the downloaded source tarball: content hashing for
// the recipe's integrity field, and extraction into a scoped temporary
// directory whose lifetime is bounded to the pipeline run.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
)

// Archive is the raw downloaded tarball plus its content digest.
type Archive struct {
	Bytes  []byte
	SHA256 string // hex-encoded digest, embedded in the rendered recipe
}

// New wraps raw tarball bytes and computes their SHA-256 digest.
func New(data []byte) *Archive {
	sum := sha256.Sum256(data)
	return &Archive{
		Bytes:  data,
		SHA256: hex.EncodeToString(sum[:]),
	}
}
