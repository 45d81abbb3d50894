package store

import (
	"context"

	"github.com/MKhiriev/go-shelf-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// PutOptions modifies a mutating call.
type PutOptions struct {
	// SkipSync suppresses the mutation hook for high-frequency, low-value
	// writes.
	SkipSync bool
}

// ExportOptions modifies Export.
type ExportOptions struct {
	// ExcludeLargeBlobs omits Item.Blob from the result.
	ExcludeLargeBlobs bool
}

// CollectionStore is the keyed per-collection document store. Every mutating
// call fires the mutation hook unless PutOptions.SkipSync is set or the
// collection is a quiet one (reading progress, audio cache). Restore and
// Apply never fire it.
type CollectionStore interface {
	Get(ctx context.Context, collection, id string) (models.Item, error)
	GetAll(ctx context.Context, collection string) ([]models.Item, error)
	Put(ctx context.Context, collection string, item models.Item, opts PutOptions) error
	Delete(ctx context.Context, collection, id string, opts PutOptions) error
	Clear(ctx context.Context, collection string, opts PutOptions) error

	// Export returns every collection and all settings.
	Export(ctx context.Context, opts ExportOptions) (models.Collections, map[string]string, error)
	// Restore replaces all local collections and settings with the
	// snapshot contents. Binary blobs absent from the snapshot are kept for
	// items that survive the restore.
	Restore(ctx context.Context, snapshot models.Snapshot) error
	// Apply upserts the given items, leaving every other item untouched.
	Apply(ctx context.Context, items models.Collections) error

	SetSetting(ctx context.Context, key, value string) error
	GetSettings(ctx context.Context) (map[string]string, error)

	// OnMutation registers a hook called with the collection name after a
	// qualifying mutation. Settings changes do not call it.
	OnMutation(hook func(collection string)) (unsubscribe func())
}

// SyncMetaRepository persists the sync bookkeeping of one installation.
type SyncMetaRepository interface {
	GetLastBackup(ctx context.Context) (timestamp int64, hash string, err error)
	SaveLastBackup(ctx context.Context, timestamp int64, hash string) error

	GetRetentionMarker(ctx context.Context) (string, error)
	SaveRetentionMarker(ctx context.Context, day string) error

	GetFetchCache(ctx context.Context) (models.FetchCache, error)
	SaveFetchCache(ctx context.Context, cache models.FetchCache) error

	GetCredential(ctx context.Context) (string, error)
	SaveCredential(ctx context.Context, token string) error

	GetDeviceID(ctx context.Context) (string, error)
	SaveDeviceID(ctx context.Context, id string) error
}

// BackupStorage stores backup files of the reference server, one namespace
// per owner.
type BackupStorage interface {
	Save(ctx context.Context, owner, name string, data []byte) (models.BackupInfo, error)
	Load(ctx context.Context, owner, name string) ([]byte, models.BackupInfo, error)
	Stat(ctx context.Context, owner, name string) (models.BackupInfo, error)
	List(ctx context.Context, owner string) ([]models.BackupInfo, error)
	Delete(ctx context.Context, owner, name string) error
}
