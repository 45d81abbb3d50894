// Package http implements the HTTP transport of the reference backup server.
//
// It exposes route wiring, request handlers and middleware for the backup
// API. Bearer-token authentication, request tracing, access logging and
// response compression are handled in this package before requests are
// delegated to the service layer.
package http
