package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// SumBytes returns the hex encoded SHA-256 of b.
func SumBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// ETag returns a strong entity tag for a response body.
func ETag(body []byte) string {
	return `"` + SumBytes(body)[:32] + `"`
}
