package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
)

// ClientStorages groups the client-side repositories over one SQLite
// database.
type ClientStorages struct {
	Collections CollectionStore
	SyncMeta    SyncMetaRepository

	db *DB
}

// NewClientStorages opens the SQLite database at cfg.DB.DSN, runs the
// pending migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Collections: NewCollectionRepository(db, logger),
		SyncMeta:    NewSyncMetaRepository(db, logger),
		db:          db,
	}, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ServerStorages groups the backup server storage.
type ServerStorages struct {
	Backups BackupStorage
}

func NewServerStorages(cfg config.ServerStorage, logger *logger.Logger) (*ServerStorages, error) {
	backups, err := NewBackupFileStorage(cfg.Files.BackupDir, logger)
	if err != nil {
		return nil, err
	}
	return &ServerStorages{Backups: backups}, nil
}
