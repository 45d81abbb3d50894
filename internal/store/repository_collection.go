package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// quietCollections never fire the mutation hook.
var quietCollections = map[string]bool{
	models.CollectionReadingProgress: true,
	models.CollectionAudioCache:      true,
}

type collectionRepository struct {
	*DB
	logger *logger.Logger

	hooksMu sync.RWMutex
	hooks   map[int]func(string)
	nextID  int
}

func NewCollectionRepository(db *DB, logger *logger.Logger) CollectionStore {
	return &collectionRepository{
		DB:     db,
		logger: logger,
		hooks:  make(map[int]func(string)),
	}
}

func (r *collectionRepository) Get(ctx context.Context, collection, id string) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectItemQuery(collection, id)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Get").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to query item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return models.Item{}, err
	}
	if len(items) == 0 {
		return models.Item{}, ErrItemNotFound
	}

	return items[0].Item, nil
}

func (r *collectionRepository) GetAll(ctx context.Context, collection string) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectCollectionQuery(collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.GetAll").
			Str("collection", collection).
			Msg("failed to query collection")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	scanned, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(scanned))
	for _, s := range scanned {
		items = append(items, s.Item)
	}
	return items, nil
}

func (r *collectionRepository) Put(ctx context.Context, collection string, item models.Item, opts PutOptions) error {
	if err := validateItem(collection, item); err != nil {
		return err
	}

	query, args, err := upsertItemQuery(collection, item, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "collectionRepository.Put").
			Str("collection", collection).
			Str("id", item.ID).
			Msg("failed to upsert item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	r.notify(collection, opts)
	return nil
}

func (r *collectionRepository) Delete(ctx context.Context, collection, id string, opts PutOptions) error {
	query, args, err := deleteItemQuery(collection, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "collectionRepository.Delete").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to delete item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}

	r.notify(collection, opts)
	return nil
}

func (r *collectionRepository) Clear(ctx context.Context, collection string, opts PutOptions) error {
	query, args, err := deleteCollectionQuery(collection)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "collectionRepository.Clear").
			Str("collection", collection).
			Msg("failed to clear collection")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	r.notify(collection, opts)
	return nil
}

func (r *collectionRepository) Export(ctx context.Context, opts ExportOptions) (models.Collections, map[string]string, error) {
	query, args, err := selectAllItemsQuery(!opts.ExcludeLargeBlobs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "collectionRepository.Export").
			Msg("failed to query items")
		return nil, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	scanned, err := scanItems(rows)
	if err != nil {
		return nil, nil, err
	}

	collections := make(models.Collections)
	for _, s := range scanned {
		collections[s.Collection] = append(collections[s.Collection], s.Item)
	}

	settings, err := r.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}

	return collections, settings, nil
}

func (r *collectionRepository) Restore(ctx context.Context, snapshot models.Snapshot) error {
	names := make([]string, 0, len(snapshot.Collections))
	for name := range snapshot.Collections {
		names = append(names, name)
	}

	return r.inTx(ctx, "collectionRepository.Restore", func(tx *sql.Tx) error {
		query, args, err := deleteCollectionsNotInQuery(names)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		for name, items := range snapshot.Collections {
			ids := make([]string, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}

			query, args, err = deleteItemsNotInQuery(name, ids)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			if err = upsertItems(ctx, tx, name, items); err != nil {
				return err
			}
		}

		query, args, err = deleteNamespaceQuery(nsSettings)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		for key, value := range snapshot.Settings {
			query, args, err = upsertKVQuery(nsSettings, key, []byte(value))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		return nil
	})
}

func (r *collectionRepository) Apply(ctx context.Context, items models.Collections) error {
	return r.inTx(ctx, "collectionRepository.Apply", func(tx *sql.Tx) error {
		for name, list := range items {
			if err := upsertItems(ctx, tx, name, list); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *collectionRepository) SetSetting(ctx context.Context, key, value string) error {
	return setKV(ctx, r.DB, nsSettings, key, []byte(value))
}

func (r *collectionRepository) GetSettings(ctx context.Context) (map[string]string, error) {
	raw, err := listKV(ctx, r.DB, nsSettings)
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(raw))
	for k, v := range raw {
		settings[k] = string(v)
	}
	return settings, nil
}

func (r *collectionRepository) OnMutation(hook func(collection string)) (unsubscribe func()) {
	r.hooksMu.Lock()
	id := r.nextID
	r.nextID++
	r.hooks[id] = hook
	r.hooksMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.hooksMu.Lock()
			delete(r.hooks, id)
			r.hooksMu.Unlock()
		})
	}
}

func (r *collectionRepository) notify(collection string, opts PutOptions) {
	if opts.SkipSync || quietCollections[collection] {
		return
	}

	r.hooksMu.RLock()
	hooks := make([]func(string), 0, len(r.hooks))
	for _, h := range r.hooks {
		hooks = append(hooks, h)
	}
	r.hooksMu.RUnlock()

	for _, h := range hooks {
		h(collection)
	}
}

func (r *collectionRepository) inTx(ctx context.Context, funcName string, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		log.Err(err).Str("func", funcName).Msg("transaction aborted")
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Err(rbErr).Str("func", funcName).Msg("failed to rollback transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func upsertItems(ctx context.Context, tx *sql.Tx, collection string, items []models.Item) error {
	for _, it := range items {
		if err := validateItem(collection, it); err != nil {
			return err
		}
		query, args, err := upsertItemQuery(collection, it, true)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w (collection=%s id=%s): %w", ErrExecutingStatement, collection, it.ID, err)
		}
	}
	return nil
}

func validateItem(collection string, item models.Item) error {
	if strings.TrimSpace(collection) == "" {
		return ErrEmptyCollectionName
	}
	if item.ID == "" {
		return ErrEmptyItemID
	}
	return nil
}

type scannedItem struct {
	Collection string
	models.Item
}

func scanItems(rows *sql.Rows) ([]scannedItem, error) {
	var out []scannedItem

	for rows.Next() {
		var s scannedItem
		var payload, blob []byte
		if err := rows.Scan(&s.Collection, &s.ID, &s.UpdatedAt, &s.Title, &payload, &blob); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if len(payload) > 0 {
			s.Payload = payload
		}
		if len(blob) > 0 {
			s.Blob = blob
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}
