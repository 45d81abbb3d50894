// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the backup server
// handlers and middleware.
//
// Msg* constants are written into HTTP response bodies in place of
// internal error text.
package app

const (
	// MsgInternalServerError replaces the details of any failure answered
	// with a 5xx status.
	MsgInternalServerError = "internal server error"

	// MsgInvalidToken is returned when the bearer token is well formed but
	// bound to no owner.
	MsgInvalidToken = "invalid token"

	// MsgInvalidGzipBody is returned when a request announces gzip content
	// encoding but its body cannot be decoded.
	MsgInvalidGzipBody = "invalid gzip data"
)
