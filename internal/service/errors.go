package service

import "errors"

var (
	// ErrConfigurationMissing is returned when no remote credential is
	// configured.
	ErrConfigurationMissing = errors.New("sync is not configured: no remote credential")

	// ErrSyncInProgress is returned by ForceSync, PullLatest and Resolve
	// while another sync attempt is running. ForceSync queues one re-run.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrConflictPending is returned by a forced sync without overwrite while
	// a conflict waits for resolution.
	ErrConflictPending = errors.New("conflict pending resolution")

	ErrNoConflict         = errors.New("no active conflict")
	ErrInvalidStrategy    = errors.New("invalid resolution strategy")
	ErrCoordinatorStopped = errors.New("sync coordinator is stopped")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrBackupNotFound        = errors.New("backup not found")
	ErrInvalidBackupName     = errors.New("invalid backup name")
	ErrEmptyBackup           = errors.New("empty backup")
	ErrNoOwner               = errors.New("no owner in request context")
)
