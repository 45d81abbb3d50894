// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the remote backup API.
//
// The primary abstraction is [BackupAPI], which decouples the sync
// coordinator from the HTTP transport. The package ships a resty-based
// implementation ([NewHTTPBackupAPI]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrNotModified] for 304).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-shelf-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/backup_api_mock.go -package=mock

// BackupAPI defines communication with the remote backup service.
// Implementations attach the bearer token to every request and map
// transport-level errors to the sentinel values of this package.
type BackupAPI interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter.
	Token() string

	// Upload stores data under filename (PUT /backups, multipart field
	// "file").
	Upload(ctx context.Context, filename string, data []byte) error

	// Latest returns the metadata of the canonical latest backup. A non-empty
	// etag is sent as If-None-Match; an unchanged backup yields
	// [ErrNotModified]. [ErrNotFound] means no backup exists yet.
	Latest(ctx context.Context, etag string) (models.BackupMeta, error)

	// Download fetches downloadURL. Content of a filename ending in ".gz" is
	// decompressed before it is returned.
	Download(ctx context.Context, downloadURL, filename string) ([]byte, error)

	// List returns every stored backup.
	List(ctx context.Context) ([]models.BackupInfo, error)

	// Fetch returns the content of one named backup, decompressed when the
	// name ends in ".gz".
	Fetch(ctx context.Context, name string) ([]byte, error)

	// Delete removes one named backup.
	Delete(ctx context.Context, name string) error
}
