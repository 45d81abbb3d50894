// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrUnknownToken is returned when the bearer token matches no
	// configured owner.
	ErrUnknownToken = errors.New("unknown token")

	// ErrMalformedTokenPair is returned by NewHandler for a configured
	// credential that is not an "owner:token" pair.
	ErrMalformedTokenPair = errors.New("malformed owner token pair")
)

var (
	ErrMissingFile        = errors.New("multipart field `file` is missing")
	ErrUploadTooLarge     = errors.New("backup exceeds upload limit")
	ErrDigestMismatch     = errors.New("content digest mismatch")
	ErrMalformedMultipart = errors.New("malformed multipart body")
)
