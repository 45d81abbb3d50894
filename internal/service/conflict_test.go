// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-sync/models"
)

var defaultConflictCollections = []string{models.CollectionBooks, models.CollectionDocuments}

func item(id, title string, updatedAt int64) models.Item {
	return models.Item{ID: id, Title: title, UpdatedAt: updatedAt}
}

func TestFindConflicts(t *testing.T) {
	const lastSync = 1000

	tests := []struct {
		name      string
		local     models.Collections
		remote    models.Collections
		tolerance time.Duration
		want      []string
	}{
		{
			name:   "changed on both sides",
			local:  models.Collections{"books": {item("b1", "Dune", 5000)}},
			remote: models.Collections{"books": {item("b1", "Dune", 9000)}},
			want:   []string{"Dune"},
		},
		{
			name:   "changed locally only",
			local:  models.Collections{"books": {item("b1", "Dune", 5000)}},
			remote: models.Collections{"books": {item("b1", "Dune", 900)}},
			want:   []string{},
		},
		{
			name:   "changed remotely only",
			local:  models.Collections{"books": {item("b1", "Dune", 900)}},
			remote: models.Collections{"books": {item("b1", "Dune", 5000)}},
			want:   []string{},
		},
		{
			name:      "difference within tolerance",
			local:     models.Collections{"books": {item("b1", "Dune", 5000)}},
			remote:    models.Collections{"books": {item("b1", "Dune", 6500)}},
			tolerance: 2 * time.Second,
			want:      []string{},
		},
		{
			name:   "item on one side only",
			local:  models.Collections{"books": {item("b1", "Dune", 5000)}},
			remote: models.Collections{"books": {item("b2", "Emma", 5000)}},
			want:   []string{},
		},
		{
			name:   "collection not inspected",
			local:  models.Collections{"macros": {item("m1", "", 5000)}},
			remote: models.Collections{"macros": {item("m1", "", 9000)}},
			want:   []string{},
		},
		{
			name: "ordered by collection then id, id used without title",
			local: models.Collections{
				"documents": {item("d1", "", 5000)},
				"books":     {item("b2", "Emma", 5000), item("b1", "Dune", 5000)},
			},
			remote: models.Collections{
				"documents": {item("d1", "", 7000)},
				"books":     {item("b1", "Dune", 7000), item("b2", "Emma", 7000)},
			},
			want: []string{"Dune", "Emma", "d1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflicts(tt.local, tt.remote, lastSync, tt.tolerance, defaultConflictCollections)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindConflicts_Symmetric(t *testing.T) {
	a := models.Collections{"books": {item("b1", "Dune", 5000), item("b2", "Emma", 5000), item("b3", "Ulysses", 100)}}
	b := models.Collections{"books": {item("b1", "Dune", 8000), item("b2", "Emma", 5001), item("b3", "Ulysses", 9000)}}

	ab := FindConflicts(a, b, 1000, 0, defaultConflictCollections)
	ba := FindConflicts(b, a, 1000, 0, defaultConflictCollections)

	assert.Equal(t, []string{"Dune", "Emma"}, ab)
	assert.Equal(t, ab, ba)
}

func TestFindConflicts_DuplicateCollectionNames(t *testing.T) {
	local := models.Collections{"books": {item("b1", "Dune", 5000)}}
	remote := models.Collections{"books": {item("b1", "Dune", 9000)}}

	got := FindConflicts(local, remote, 1000, 0, []string{"books", "books"})
	assert.Equal(t, []string{"Dune"}, got)
}

func TestAutoMerge(t *testing.T) {
	local := models.Snapshot{
		DeviceID: "local-device",
		Collections: models.Collections{
			"books":  {item("b1", "Dune", 5000), item("b2", "Emma", 3000), item("b3", "Ulysses", 4000)},
			"macros": {item("m1", "local", 100)},
		},
		Settings: map[string]string{"theme": "dark"},
	}
	remote := models.Snapshot{
		DeviceID: "remote-device",
		Collections: models.Collections{
			"books":     {item("b1", "Dune (old)", 2000), item("b2", "Emma (new)", 6000), item("b3", "Ulysses (tie)", 4000), item("b4", "Walden", 1)},
			"documents": {item("d1", "", 10)},
		},
		Settings: map[string]string{"theme": "light", "font": "serif"},
	}

	merged := AutoMerge(local, remote)

	assert.Equal(t, models.SnapshotVersion, merged.Version)
	assert.Equal(t, "local-device", merged.DeviceID)
	assert.Equal(t, []models.Item{
		item("b1", "Dune", 5000),
		item("b2", "Emma (new)", 6000),
		item("b3", "Ulysses", 4000),
		item("b4", "Walden", 1),
	}, merged.Collections["books"])
	assert.Equal(t, []models.Item{item("d1", "", 10)}, merged.Collections["documents"])
	assert.Equal(t, []models.Item{item("m1", "local", 100)}, merged.Collections["macros"])
	assert.Equal(t, map[string]string{"theme": "dark", "font": "serif"}, merged.Settings)
}

func TestMerge_ReportsRemoteWins(t *testing.T) {
	local := models.Snapshot{Collections: models.Collections{"books": {item("b1", "Dune", 5000)}}}
	remote := models.Snapshot{
		Collections: models.Collections{"books": {item("b1", "Dune", 4000), item("b2", "Emma", 1)}},
		Settings:    map[string]string{"font": "serif"},
	}

	res := merge(local, remote)

	require.True(t, res.Changed())
	assert.Equal(t, models.Collections{"books": {item("b2", "Emma", 1)}}, res.RemoteWins)
	assert.Equal(t, map[string]string{"font": "serif"}, res.RemoteSettings)

	same := merge(local, local)
	assert.False(t, same.Changed())
}

// No item modified since the last sync is replaced when FindConflicts
// reports nothing.
func TestAutoMerge_LosslessWithoutConflicts(t *testing.T) {
	const lastSync = 1000

	local := models.Snapshot{Collections: models.Collections{
		"books": {item("b1", "Dune", 5000), item("b2", "Emma", 500)},
	}}
	remote := models.Snapshot{Collections: models.Collections{
		"books": {item("b1", "Dune", 800), item("b2", "Emma", 7000), item("b3", "Walden", 7000)},
	}}

	require.Empty(t, FindConflicts(local.Collections, remote.Collections, lastSync, 0, defaultConflictCollections))

	merged := AutoMerge(local, remote).Collections.Index("books")
	for _, side := range []models.Snapshot{local, remote} {
		for _, it := range side.Collections["books"] {
			if it.UpdatedAt > lastSync {
				assert.Equal(t, it, merged[it.ID], "item %s modified since last sync was lost", it.ID)
			}
		}
	}
}
