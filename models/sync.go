// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncStatus is the externally visible state of the sync coordinator.
type SyncStatus string

const (
	SyncStatusIdle     SyncStatus = "idle"
	SyncStatusSyncing  SyncStatus = "syncing"
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusFailed   SyncStatus = "failed"
	SyncStatusDisabled SyncStatus = "disabled"
	SyncStatusConflict SyncStatus = "conflict"
)

// SyncState is the observable state of one sync coordinator.
type SyncState struct {
	Status SyncStatus `json:"status"`

	// LastBackupTimestamp is the unix ms time of the last successful upload
	// (or dedup confirmation).
	LastBackupTimestamp int64 `json:"lastBackupTimestamp"`

	// LastContentHash is the hex SHA-256 of the last uploaded snapshot.
	LastContentHash string `json:"lastContentHash,omitempty"`

	// LastError is the message of the error that moved the state to failed.
	LastError string `json:"lastError,omitempty"`
}

// ConflictRecord describes a detected conflict between the local and the
// remote snapshot that needs a user decision.
type ConflictRecord struct {
	LocalSnapshot  Snapshot `json:"localSnapshot"`
	RemoteSnapshot Snapshot `json:"remoteSnapshot"`

	// RemoteTimestamp is the modification time of the remote backup.
	RemoteTimestamp int64 `json:"remoteTimestamp"`

	// LocalTimestamp is the latest local item modification time.
	LocalTimestamp int64 `json:"localTimestamp"`

	// ConflictingItems holds the labels of items changed on both sides.
	ConflictingItems []string `json:"conflictingItems"`
}

// ResolutionStrategy selects how a ConflictRecord is resolved.
type ResolutionStrategy string

const (
	// ResolveUseLocal keeps local data; the next sync overwrites the remote.
	ResolveUseLocal ResolutionStrategy = "use_local"

	// ResolveUseRemote replaces local data with the remote snapshot.
	ResolveUseRemote ResolutionStrategy = "use_remote"

	// ResolveSmartMerge unions both sides; for items changed on both sides
	// the newer updatedAt wins, ties keep the local item.
	ResolveSmartMerge ResolutionStrategy = "smart_merge"
)

// Valid reports whether s is one of the known strategies.
func (s ResolutionStrategy) Valid() bool {
	switch s {
	case ResolveUseLocal, ResolveUseRemote, ResolveSmartMerge:
		return true
	}
	return false
}

// Resolution reports what a Resolve call did.
type Resolution struct {
	Strategy ResolutionStrategy `json:"strategy"`

	// PolicyDecided lists the labels of conflicting items whose winner was
	// picked by the smart-merge tie-break instead of by the user. Callers
	// must surface these.
	PolicyDecided []string `json:"policyDecided,omitempty"`
}
