package store

import (
	"database/sql"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/migrations"
)

// DB wraps the SQLite connection shared by the client repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewDB wraps an existing connection. Used by tests with sqlmock.
func NewDB(conn *sql.DB, logger *logger.Logger) *DB {
	return &DB{DB: conn, logger: logger}
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
