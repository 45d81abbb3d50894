// Package utils provides general-purpose helpers used across shelf-sync:
// typed context keys, content hashing, JSON response writing, the HTTP
// client wrapper and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// OwnerCtxKey is the key under which the backup server stores the owner
// resolved from the bearer token.
//
//	ctx := context.WithValue(ctx, utils.OwnerCtxKey, "alice")
var OwnerCtxKey = contextKey("owner")

// GetOwnerFromContext retrieves the authenticated backup owner.
//
// ok is false when the value is missing, empty or has an unexpected type.
func GetOwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerCtxKey).(string)
	if !ok || owner == "" {
		return "", false
	}
	return owner, true
}
