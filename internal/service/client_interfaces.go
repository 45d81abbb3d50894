package service

import (
	"context"

	"github.com/MKhiriev/go-shelf-sync/models"
)

// ForceOptions modifies ForceSync.
type ForceOptions struct {
	// Overwrite skips the remote conflict check and replaces the remote
	// backup with the local state. An active conflict is cleared on success.
	Overwrite bool
}

// SyncCoordinator owns the sync state machine of one local installation.
type SyncCoordinator interface {
	// Start loads the persisted sync state and subscribes to store mutations
	// and network eligibility changes.
	Start(ctx context.Context) error

	// Stop cancels pending timers and background uploads and waits for them
	// to finish.
	Stop()

	// RequestSync schedules a debounced opportunistic sync. Bursts of calls
	// collapse into one attempt. It also resets the retry budget.
	RequestSync()

	// RequestScheduledSync is RequestSync for periodic triggers. It leaves
	// the retry budget untouched and does nothing once the budget is
	// exhausted.
	RequestScheduledSync()

	// ForceSync runs a sync immediately and returns its error. It never
	// enters the automatic retry loop.
	ForceSync(ctx context.Context, opts ForceOptions) error

	// FetchRemoteIfNewer downloads the remote snapshot when it is newer than
	// the last backup (or always when force is set). It returns nil when no
	// newer backup exists.
	FetchRemoteIfNewer(ctx context.Context, force bool) (*models.RemoteSnapshot, error)

	// PullLatest downloads the latest remote backup and merges it into the
	// local store, or raises a conflict.
	PullLatest(ctx context.Context) error

	// Resolve settles the active conflict with the given strategy and
	// starts a sync.
	Resolve(ctx context.Context, strategy models.ResolutionStrategy) (models.Resolution, error)

	// Dismiss clears the active conflict without resolving it.
	Dismiss()

	State() models.SyncState
	Conflict() *models.ConflictRecord
	SubscribeState(cb func(models.SyncState)) (unsubscribe func())
	SubscribeConflict(cb func(*models.ConflictRecord)) (unsubscribe func())

	ListBackups(ctx context.Context) ([]models.BackupInfo, error)
	RestoreBackup(ctx context.Context, name string) error
	DeleteBackup(ctx context.Context, name string) error
}

// CredentialStore keeps the bearer token for the remote backup API.
type CredentialStore interface {
	// Token returns the configured credential, or "" when none is set.
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
}

// NetworkGate reports upload eligibility. Implemented by *network.Gate.
type NetworkGate interface {
	IsEligible(ctx context.Context) bool
	OnChange(cb func(eligible bool)) (unsubscribe func())
}

// SyncJob periodically requests a sync until ctx is cancelled.
type SyncJob interface {
	Run(ctx context.Context) error
}
