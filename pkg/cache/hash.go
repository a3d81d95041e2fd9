package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a "<prefix>:<sha256 hex>" key from the JSON encoding of
// parts. All key material that is not already a content hash (layout and
// render options, root xrefs) goes through here, so structurally distinct
// option sets can never collide on a key.
func hashKey(prefix string, parts ...interface{}) string {
	enc, _ := json.Marshal(parts)
	sum := sha256.Sum256(enc)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the SHA-256 of data as a 64-character hex string. It is the
// content hash used for GEDCOM sources and for addressing uploaded trees
// over the serve API.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
