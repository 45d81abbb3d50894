package http

import (
	"crypto/subtle"
	"strings"

	"github.com/MKhiriev/go-shelf-sync/internal/utils"
)

// contentDigestHeader carries the hex SHA-256 of an uploaded file. It is
// optional; uploads without it are accepted as is.
const contentDigestHeader = "X-Content-SHA256"

// checkContentDigest compares the digest announced by the client with the
// digest of the received content.
func checkContentDigest(announced string, data []byte) error {
	announced = strings.ToLower(strings.TrimSpace(announced))
	if announced == "" {
		return nil
	}

	actual := utils.SHA256Hex(data)
	if subtle.ConstantTimeCompare([]byte(announced), []byte(actual)) != 1 {
		return ErrDigestMismatch
	}
	return nil
}
