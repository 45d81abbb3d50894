package client

import "errors"

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")

	// ErrUnresolvedConflict is returned by sync and pull when a conflict was
	// raised and no resolution strategy was given.
	ErrUnresolvedConflict = errors.New("conflict requires resolution")
)
