// Package server runs the backup API listener.
//
// It owns the HTTP server lifecycle: startup, signal handling and graceful
// shutdown.
package server
