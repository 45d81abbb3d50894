package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA-256 digest of data.
//
// It is used for change detection (snapshot dedup, ETags), not for
// integrity or authentication.
//
//	digest := utils.SHA256Hex([]byte("some data"))
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WeakETag wraps a digest into a quoted entity tag suitable for the ETag
// response header.
func WeakETag(digest string) string {
	return `W/"` + digest + `"`
}
