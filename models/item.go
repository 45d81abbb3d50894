// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Well-known collection names used by the application. Any other name is a
// valid collection as well; these are referenced by defaults and by the
// mutation hook filter.
const (
	CollectionBooks           = "books"
	CollectionDocuments       = "documents"
	CollectionSeries          = "series"
	CollectionInstructions    = "instructions"
	CollectionMacros          = "macros"
	CollectionReadingProgress = "reading_progress"
	CollectionAudioCache      = "audio_cache"
)

// Item is a single uniquely identified record inside a collection
// (one book, one document, one macro...).
//
// UpdatedAt is the unix time in milliseconds of the last local mutation. It is
// set by whoever mutates the item and is never rewritten by the sync engine.
type Item struct {
	// ID is stable and unique within its collection.
	ID string `json:"id"`

	// UpdatedAt is the last-modified time in unix milliseconds.
	UpdatedAt int64 `json:"updatedAt"`

	// Title is the human-readable label of the item. Optional.
	Title string `json:"title,omitempty"`

	// Payload holds the arbitrary item body as raw JSON.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Blob carries large binary data (covers, audio). It is dropped from
	// snapshots produced in low-bandwidth mode.
	Blob []byte `json:"blob,omitempty"`
}

// Label returns the name used to present the item to a user: its title when
// set, its id otherwise.
func (i Item) Label() string {
	if i.Title != "" {
		return i.Title
	}
	return i.ID
}

// Collections maps a collection name to its items.
type Collections map[string][]Item

// Clone returns a deep copy of the map and the item slices. Item payloads
// are shared; they are never mutated in place.
func (c Collections) Clone() Collections {
	out := make(Collections, len(c))
	for name, items := range c {
		cp := make([]Item, len(items))
		copy(cp, items)
		out[name] = cp
	}
	return out
}

// Index builds an id → item lookup for one collection.
func (c Collections) Index(collection string) map[string]Item {
	items := c[collection]
	idx := make(map[string]Item, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}
	return idx
}

// LatestUpdate returns the greatest UpdatedAt over every item, or zero for
// an empty set.
func (c Collections) LatestUpdate() int64 {
	var latest int64
	for _, items := range c {
		for _, it := range items {
			if it.UpdatedAt > latest {
				latest = it.UpdatedAt
			}
		}
	}
	return latest
}
