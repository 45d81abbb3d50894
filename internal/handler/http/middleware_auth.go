package http

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-shelf-sync/internal/app"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
)

// ownerToken is one accepted bearer credential and the backup namespace it
// grants access to.
type ownerToken struct {
	owner string
	token string
}

// parseOwnerTokens turns "owner:token" pairs into credentials. The token may
// itself contain colons; only the first one separates the owner.
func parseOwnerTokens(pairs []string) ([]ownerToken, error) {
	tokens := make([]ownerToken, 0, len(pairs))
	for i, pair := range pairs {
		owner, token, ok := strings.Cut(strings.TrimSpace(pair), ":")
		owner, token = strings.TrimSpace(owner), strings.TrimSpace(token)
		if !ok || owner == "" || token == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrMalformedTokenPair, i)
		}
		tokens = append(tokens, ownerToken{owner: owner, token: token})
	}
	return tokens, nil
}

// ownerFor returns the owner of token. Every configured credential is
// compared in constant time.
func (h *Handler) ownerFor(token string) (string, bool) {
	owner := ""
	for _, t := range h.tokens {
		if subtle.ConstantTimeCompare([]byte(t.token), []byte(token)) == 1 && owner == "" {
			owner = t.owner
		}
	}
	return owner, owner != ""
}

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// On success the owner bound to the token is stored in the request context
// under [utils.OwnerCtxKey]. Requests are rejected with HTTP 401 when the
// header is absent or malformed, or when the token is unknown.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		owner, ok := h.ownerFor(tokenString)
		if !ok {
			log.Err(ErrUnknownToken).Msg("rejected request")
			http.Error(w, app.MsgInvalidToken, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.OwnerCtxKey, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from an "Authorization" header
// value of the form:
//
//	Authorization: Bearer <token>
//
// The scheme is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
