package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// Keys of the sync namespace.
const (
	keyLastBackupTimestamp = "last_backup_timestamp"
	keyLastContentHash     = "last_content_hash"
	keyRetentionMarker     = "retention_marker"
	keyFetchCache          = "fetch_cache"
	keyCredential          = "credential"
	keyDeviceID            = "device_id"
)

type kvQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type syncMetaRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncMetaRepository(db *DB, logger *logger.Logger) SyncMetaRepository {
	return &syncMetaRepository{DB: db, logger: logger}
}

func (r *syncMetaRepository) GetLastBackup(ctx context.Context) (int64, string, error) {
	ts, ok, err := getKV(ctx, r.DB, nsSync, keyLastBackupTimestamp)
	if err != nil {
		return 0, "", err
	}

	var timestamp int64
	if ok && len(ts) > 0 {
		timestamp, err = strconv.ParseInt(string(ts), 10, 64)
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "syncMetaRepository.GetLastBackup").
				Msg("stored timestamp is not a number; treating as never synced")
			timestamp = 0
		}
	}

	hash, _, err := getKV(ctx, r.DB, nsSync, keyLastContentHash)
	if err != nil {
		return 0, "", err
	}

	return timestamp, string(hash), nil
}

func (r *syncMetaRepository) SaveLastBackup(ctx context.Context, timestamp int64, hash string) error {
	if err := setKV(ctx, r.DB, nsSync, keyLastBackupTimestamp, []byte(strconv.FormatInt(timestamp, 10))); err != nil {
		return err
	}
	return setKV(ctx, r.DB, nsSync, keyLastContentHash, []byte(hash))
}

func (r *syncMetaRepository) GetRetentionMarker(ctx context.Context) (string, error) {
	v, _, err := getKV(ctx, r.DB, nsSync, keyRetentionMarker)
	return string(v), err
}

func (r *syncMetaRepository) SaveRetentionMarker(ctx context.Context, day string) error {
	return setKV(ctx, r.DB, nsSync, keyRetentionMarker, []byte(day))
}

func (r *syncMetaRepository) GetFetchCache(ctx context.Context) (models.FetchCache, error) {
	v, ok, err := getKV(ctx, r.DB, nsSync, keyFetchCache)
	if err != nil || !ok || len(v) == 0 {
		return models.FetchCache{}, err
	}

	var cache models.FetchCache
	if err = json.Unmarshal(v, &cache); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncMetaRepository.GetFetchCache").
			Msg("corrupted fetch cache ignored")
		return models.FetchCache{}, nil
	}
	return cache, nil
}

func (r *syncMetaRepository) SaveFetchCache(ctx context.Context, cache models.FetchCache) error {
	v, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("error encoding fetch cache: %w", err)
	}
	return setKV(ctx, r.DB, nsSync, keyFetchCache, v)
}

func (r *syncMetaRepository) GetCredential(ctx context.Context) (string, error) {
	v, _, err := getKV(ctx, r.DB, nsSync, keyCredential)
	return string(v), err
}

func (r *syncMetaRepository) SaveCredential(ctx context.Context, token string) error {
	return setKV(ctx, r.DB, nsSync, keyCredential, []byte(token))
}

func (r *syncMetaRepository) GetDeviceID(ctx context.Context) (string, error) {
	v, _, err := getKV(ctx, r.DB, nsSync, keyDeviceID)
	return string(v), err
}

func (r *syncMetaRepository) SaveDeviceID(ctx context.Context, id string) error {
	return setKV(ctx, r.DB, nsSync, keyDeviceID, []byte(id))
}

func getKV(ctx context.Context, db kvQueryer, namespace, key string) ([]byte, bool, error) {
	query, args, err := selectKVQuery(namespace, key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "getKV").
			Str("namespace", namespace).
			Str("key", key).
			Msg("failed to query value")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil, false, nil
	}

	var value []byte
	if err = rows.Scan(&value); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return value, true, nil
}

func listKV(ctx context.Context, db kvQueryer, namespace string) (map[string][]byte, error) {
	query, args, err := selectNamespaceQuery(namespace)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "listKV").
			Str("namespace", namespace).
			Msg("failed to query namespace")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var k string
		var v []byte
		if err = rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out[k] = v
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func setKV(ctx context.Context, db kvQueryer, namespace, key string, value []byte) error {
	query, args, err := upsertKVQuery(namespace, key, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "setKV").
			Str("namespace", namespace).
			Str("key", key).
			Msg("failed to upsert value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

