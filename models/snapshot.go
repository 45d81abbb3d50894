// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SnapshotVersion is the format version written into every serialized
// snapshot.
const SnapshotVersion = 1

// Snapshot is an immutable, versioned bundle of every collection plus a
// small set of scalar settings.
//
// It intentionally carries no creation time: two snapshots of the same
// content must serialize to the same bytes so the content hash can be used
// for deduplication.
type Snapshot struct {
	Version     int               `json:"version"`
	DeviceID    string            `json:"deviceId,omitempty"`
	Collections Collections       `json:"collections"`
	Settings    map[string]string `json:"settings,omitempty"`
}

// RemoteSnapshot is the result of the pull path: the remote snapshot plus
// the timestamps it was judged against.
type RemoteSnapshot struct {
	Snapshot Snapshot

	// RemoteTimestamp is the remote modification time (unix ms).
	RemoteTimestamp int64

	// LocalTimestamp is the local last backup time (unix ms) at the moment
	// of the fetch.
	LocalTimestamp int64
}
