// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sort"
	"time"

	"github.com/MKhiriev/go-shelf-sync/models"
)

// itemRef identifies one item of a collection.
type itemRef struct {
	Collection string
	ID         string
	Label      string
}

// FindConflicts returns the labels of items changed on both sides since
// lastSync (unix ms). Only the named collections are inspected; an item
// conflicts iff both copies are newer than lastSync and their modification
// times differ by more than tolerance. An item changed on one side only
// never conflicts.
//
// Labels are ordered by collection (in the given order), then by id.
func FindConflicts(local, remote models.Collections, lastSync int64, tolerance time.Duration, collections []string) []string {
	refs := findConflictRefs(local, remote, lastSync, tolerance, collections)

	labels := make([]string, 0, len(refs))
	for _, r := range refs {
		labels = append(labels, r.Label)
	}
	return labels
}

func findConflictRefs(local, remote models.Collections, lastSync int64, tolerance time.Duration, collections []string) []itemRef {
	tol := tolerance.Milliseconds()
	seen := make(map[string]bool, len(collections))

	var refs []itemRef
	for _, name := range collections {
		if seen[name] {
			continue
		}
		seen[name] = true

		remoteIdx := remote.Index(name)
		localItems := local[name]

		ids := make([]string, 0, len(localItems))
		localIdx := make(map[string]models.Item, len(localItems))
		for _, it := range localItems {
			if _, ok := remoteIdx[it.ID]; ok {
				ids = append(ids, it.ID)
				localIdx[it.ID] = it
			}
		}
		sort.Strings(ids)

		for _, id := range ids {
			l, r := localIdx[id], remoteIdx[id]
			if l.UpdatedAt > lastSync && r.UpdatedAt > lastSync && abs(l.UpdatedAt-r.UpdatedAt) > tol {
				refs = append(refs, itemRef{Collection: name, ID: id, Label: l.Label()})
			}
		}
	}
	return refs
}

// mergeResult is the outcome of merging a remote snapshot into a local one.
type mergeResult struct {
	// Snapshot is the merged state.
	Snapshot models.Snapshot

	// RemoteWins holds the items the local store must upsert: remote-only
	// items and items whose remote copy is newer.
	RemoteWins models.Collections

	// RemoteSettings holds remote-only settings.
	RemoteSettings map[string]string
}

// Changed reports whether applying the merge alters the local store.
func (m mergeResult) Changed() bool {
	return len(m.RemoteWins) > 0 || len(m.RemoteSettings) > 0
}

// AutoMerge unions local and remote per collection. Items present on both
// sides keep the copy with the greater UpdatedAt; ties keep the local copy.
// Local settings are kept and remote-only settings are added.
//
// When FindConflicts reported nothing the result is lossless: no item
// modified since the last sync is replaced.
func AutoMerge(local, remote models.Snapshot) models.Snapshot {
	return merge(local, remote).Snapshot
}

func merge(local, remote models.Snapshot) mergeResult {
	res := mergeResult{
		RemoteWins:     models.Collections{},
		RemoteSettings: map[string]string{},
	}

	names := make(map[string]struct{}, len(local.Collections)+len(remote.Collections))
	for name := range local.Collections {
		names[name] = struct{}{}
	}
	for name := range remote.Collections {
		names[name] = struct{}{}
	}

	merged := make(models.Collections, len(names))
	for name := range names {
		out := make([]models.Item, 0, len(local.Collections[name]))
		pos := make(map[string]int, len(local.Collections[name]))
		for _, it := range local.Collections[name] {
			pos[it.ID] = len(out)
			out = append(out, it)
		}

		for _, r := range remote.Collections[name] {
			i, ok := pos[r.ID]
			switch {
			case !ok:
				pos[r.ID] = len(out)
				out = append(out, r)
				res.RemoteWins[name] = append(res.RemoteWins[name], r)
			case r.UpdatedAt > out[i].UpdatedAt:
				out[i] = r
				res.RemoteWins[name] = append(res.RemoteWins[name], r)
			}
		}

		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		merged[name] = out
	}

	settings := make(map[string]string, len(local.Settings)+len(remote.Settings))
	for k, v := range local.Settings {
		settings[k] = v
	}
	for k, v := range remote.Settings {
		if _, ok := settings[k]; !ok {
			settings[k] = v
			res.RemoteSettings[k] = v
		}
	}

	res.Snapshot = models.Snapshot{
		Version:     models.SnapshotVersion,
		DeviceID:    local.DeviceID,
		Collections: merged,
		Settings:    settings,
	}
	return res
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
