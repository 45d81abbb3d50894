package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-shelf-sync/models"
)

const (
	itemsTable = "items"
	kvTable    = "kv"

	nsSettings = "settings"
	nsSync     = "sync"
)

var itemColumns = []string{"collection", "id", "updated_at", "title", "payload", "blob"}

// upsertItemSuffix replaces every column. upsertKeepBlobSuffix keeps the
// stored blob when the incoming one is NULL, so snapshots uploaded without
// blobs do not erase local covers and audio.
const (
	upsertItemSuffix = `ON CONFLICT(collection, id) DO UPDATE SET
		updated_at = excluded.updated_at,
		title      = excluded.title,
		payload    = excluded.payload,
		blob       = excluded.blob`

	upsertKeepBlobSuffix = `ON CONFLICT(collection, id) DO UPDATE SET
		updated_at = excluded.updated_at,
		title      = excluded.title,
		payload    = excluded.payload,
		blob       = COALESCE(excluded.blob, items.blob)`

	upsertKVSuffix = `ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value`
)

func selectItemQuery(collection, id string) (string, []any, error) {
	return sq.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func selectCollectionQuery(collection string) (string, []any, error) {
	return sq.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"collection": collection}).
		OrderBy("id").
		ToSql()
}

// selectAllItemsQuery lists every item; withBlob=false selects NULL in place
// of the blob column so large binaries are never read.
func selectAllItemsQuery(withBlob bool) (string, []any, error) {
	cols := itemColumns
	if !withBlob {
		cols = append(append([]string{}, itemColumns[:5]...), "NULL AS blob")
	}
	return sq.Select(cols...).
		From(itemsTable).
		OrderBy("collection", "id").
		ToSql()
}

func upsertItemQuery(collection string, item models.Item, keepBlob bool) (string, []any, error) {
	suffix := upsertItemSuffix
	if keepBlob {
		suffix = upsertKeepBlobSuffix
	}
	return sq.Insert(itemsTable).
		Columns(itemColumns...).
		Values(collection, item.ID, item.UpdatedAt, item.Title, nullableBytes(item.Payload), nullableBytes(item.Blob)).
		Suffix(suffix).
		ToSql()
}

func deleteItemQuery(collection, id string) (string, []any, error) {
	return sq.Delete(itemsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func deleteCollectionQuery(collection string) (string, []any, error) {
	return sq.Delete(itemsTable).
		Where(sq.Eq{"collection": collection}).
		ToSql()
}

// deleteItemsNotInQuery removes the items of collection whose ids are not
// listed; with no ids it empties the collection.
func deleteItemsNotInQuery(collection string, keep []string) (string, []any, error) {
	q := sq.Delete(itemsTable).Where(sq.Eq{"collection": collection})
	if len(keep) > 0 {
		q = q.Where(sq.NotEq{"id": keep})
	}
	return q.ToSql()
}

// deleteCollectionsNotInQuery removes every collection absent from keep.
func deleteCollectionsNotInQuery(keep []string) (string, []any, error) {
	q := sq.Delete(itemsTable)
	if len(keep) > 0 {
		q = q.Where(sq.NotEq{"collection": keep})
	}
	return q.ToSql()
}

func selectKVQuery(namespace, key string) (string, []any, error) {
	return sq.Select("value").
		From(kvTable).
		Where(sq.Eq{"namespace": namespace, "key": key}).
		ToSql()
}

func selectNamespaceQuery(namespace string) (string, []any, error) {
	return sq.Select("key", "value").
		From(kvTable).
		Where(sq.Eq{"namespace": namespace}).
		OrderBy("key").
		ToSql()
}

func upsertKVQuery(namespace, key string, value []byte) (string, []any, error) {
	if value == nil {
		value = []byte{}
	}
	return sq.Insert(kvTable).
		Columns("namespace", "key", "value").
		Values(namespace, key, value).
		Suffix(upsertKVSuffix).
		ToSql()
}

func deleteNamespaceQuery(namespace string) (string, []any, error) {
	return sq.Delete(kvTable).
		Where(sq.Eq{"namespace": namespace}).
		ToSql()
}

// nullableBytes binds empty slices as SQL NULL.
func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
