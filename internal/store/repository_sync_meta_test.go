package store

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/models"
)

func TestSyncMetaRepository_LastBackup(t *testing.T) {
	s := newTestStorages(t)
	ctx := testContext()

	ts, hash, err := s.SyncMeta.GetLastBackup(ctx)
	require.NoError(t, err)
	assert.Zero(t, ts)
	assert.Empty(t, hash)

	require.NoError(t, s.SyncMeta.SaveLastBackup(ctx, 1700000000123, "abc"))
	ts, hash, err = s.SyncMeta.GetLastBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), ts)
	assert.Equal(t, "abc", hash)

	// hash cleared, timestamp kept
	require.NoError(t, s.SyncMeta.SaveLastBackup(ctx, 1700000000999, ""))
	ts, hash, err = s.SyncMeta.GetLastBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000999), ts)
	assert.Empty(t, hash)
}

func TestSyncMetaRepository_Scalars(t *testing.T) {
	s := newTestStorages(t)
	ctx := testContext()

	require.NoError(t, s.SyncMeta.SaveRetentionMarker(ctx, "2026-10-17"))
	require.NoError(t, s.SyncMeta.SaveCredential(ctx, "tok"))
	require.NoError(t, s.SyncMeta.SaveDeviceID(ctx, "dev"))

	marker, err := s.SyncMeta.GetRetentionMarker(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", marker)

	cred, err := s.SyncMeta.GetCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", cred)

	dev, err := s.SyncMeta.GetDeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dev", dev)
}

func TestSyncMetaRepository_FetchCache(t *testing.T) {
	s := newTestStorages(t)
	ctx := testContext()

	empty, err := s.SyncMeta.GetFetchCache(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.ETag)

	cache := models.FetchCache{
		ETag:    `W/"1"`,
		Meta:    models.BackupMeta{Modified: 5, DownloadURL: "/backups/latest.json", Filename: "latest.json"},
		Content: []byte(`{"version":1}`),
	}
	require.NoError(t, s.SyncMeta.SaveFetchCache(ctx, cache))

	got, err := s.SyncMeta.GetFetchCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, cache, got)
}

func TestSyncMetaRepository_QueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT value FROM kv").WillReturnError(assert.AnError)

	repo := NewSyncMetaRepository(NewDB(conn, logger.Nop()), logger.Nop())
	_, _, err = repo.GetLastBackup(testContext())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncMetaRepository_NonNumericTimestamp(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT value FROM kv").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("garbage")))
	mock.ExpectQuery("SELECT value FROM kv").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("h")))

	repo := NewSyncMetaRepository(NewDB(conn, logger.Nop()), logger.Nop())
	ts, hash, err := repo.GetLastBackup(testContext())
	require.NoError(t, err)
	assert.Zero(t, ts)
	assert.Equal(t, "h", hash)
}
