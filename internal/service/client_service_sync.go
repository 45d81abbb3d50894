// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shelf-sync/internal/adapter"
	"github.com/MKhiriev/go-shelf-sync/internal/snapshot"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
	"github.com/MKhiriev/go-shelf-sync/models"
)

type syncOptions struct {
	force     bool
	overwrite bool
}

// localSnapshot is the serialized local state and its content hash. data is
// the exact buffer that gets hashed and uploaded.
type localSnapshot struct {
	snapshot models.Snapshot
	data     []byte
	hash     string
}

// performSync runs one sync attempt. Automatic attempts report failures
// through the state and the retry schedule and always return nil; forced
// attempts return the error to the caller.
func (c *syncCoordinator) performSync(ctx context.Context, opts syncOptions) error {
	log := c.logger.With().Bool("force", opts.force).Bool("overwrite", opts.overwrite).Logger()

	c.mu.Lock()
	if c.inFlight {
		c.rerun = true
		c.mu.Unlock()
		if opts.force {
			return ErrSyncInProgress
		}
		return nil
	}
	c.inFlight = true
	c.mu.Unlock()
	defer c.finishSync()

	token, err := c.creds.Token(ctx)
	if err != nil {
		return c.fail(ctx, opts, fmt.Errorf("load credential: %w", err))
	}
	if token == "" {
		c.setStatus(models.SyncStatusDisabled)
		if opts.force {
			return ErrConfigurationMissing
		}
		return nil
	}
	c.api.SetToken(token)

	if c.Conflict() != nil {
		if !opts.force {
			return nil
		}
		if !opts.overwrite {
			return ErrConflictPending
		}
	}

	if !opts.force {
		if !c.gate.IsEligible(ctx) {
			log.Debug().Str("func", "syncCoordinator.performSync").Msg("network not eligible, sync deferred")
			c.updateState(func(s *models.SyncState) {
				if s.Status == models.SyncStatusSynced {
					s.Status = models.SyncStatusIdle
				}
			})
			return nil
		}
		if c.cfg.DisableAutoSync {
			c.setStatus(models.SyncStatusDisabled)
			return nil
		}
	}

	c.setStatus(models.SyncStatusSyncing)

	if err = c.sync(ctx, opts); err != nil {
		return c.fail(ctx, opts, err)
	}
	return nil
}

// sync runs steps serialize → dedup → conflict check → upload → retention.
func (c *syncCoordinator) sync(ctx context.Context, opts syncOptions) error {
	log := c.logger.With().Str("func", "syncCoordinator.sync").Logger()

	local, err := c.serializeLocal(ctx)
	if err != nil {
		return err
	}

	last := c.State()
	if !opts.force && local.hash == last.LastContentHash {
		ts := c.now().UnixMilli()
		if err = c.meta.SaveLastBackup(ctx, ts, local.hash); err != nil {
			return fmt.Errorf("save sync state: %w", err)
		}
		c.updateState(func(s *models.SyncState) {
			s.Status = models.SyncStatusSynced
			s.LastBackupTimestamp = ts
			s.LastError = ""
		})
		c.resetRetry()
		log.Debug().Str("hash", local.hash).Msg("content unchanged, upload skipped")
		return nil
	}

	if !opts.overwrite {
		outcome, err := c.checkRemote(ctx, local, last.LastBackupTimestamp)
		if err != nil {
			return err
		}
		switch {
		case outcome.conflict != nil:
			c.setConflict(outcome.conflict)
			c.setStatus(models.SyncStatusConflict)
			log.Warn().
				Strs("items", outcome.conflict.ConflictingItems).
				Msg("conflicting remote changes, upload skipped")
			return nil
		case outcome.merged:
			if local, err = c.serializeLocal(ctx); err != nil {
				return err
			}
		}
	}

	if err = c.api.Upload(ctx, latestBackupName, local.data); err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}

	ts := c.now().UnixMilli()
	if err = c.meta.SaveLastBackup(ctx, ts, local.hash); err != nil {
		return fmt.Errorf("save sync state: %w", err)
	}
	c.updateState(func(s *models.SyncState) {
		s.Status = models.SyncStatusSynced
		s.LastBackupTimestamp = ts
		s.LastContentHash = local.hash
		s.LastError = ""
	})
	c.resetRetry()

	if opts.overwrite && c.Conflict() != nil {
		c.setConflict(nil)
	}

	log.Info().Str("hash", local.hash).Int("bytes", len(local.data)).Msg("snapshot uploaded")

	c.maybeUploadRetention(ctx, local.data)
	return nil
}

func (c *syncCoordinator) serializeLocal(ctx context.Context) (localSnapshot, error) {
	collections, settings, err := c.collections.Export(ctx, store.ExportOptions{ExcludeLargeBlobs: c.cfg.LowBandwidth})
	if err != nil {
		return localSnapshot{}, fmt.Errorf("export local collections: %w", err)
	}

	snap := snapshot.Build(collections, settings, snapshot.Options{
		ExcludeLargeBlobs: c.cfg.LowBandwidth,
		DeviceID:          c.deviceID,
	})
	data, err := snapshot.Encode(snap)
	if err != nil {
		return localSnapshot{}, fmt.Errorf("serialize snapshot: %w", err)
	}

	return localSnapshot{snapshot: snap, data: data, hash: snapshot.Hash(data)}, nil
}

type remoteOutcome struct {
	conflict *models.ConflictRecord
	merged   bool
}

// checkRemote compares the remote backup with local. A remote that is not
// newer than lastSync plus the tolerance, or whose content cannot be
// decoded, is treated as absent. Transport errors abort the attempt.
func (c *syncCoordinator) checkRemote(ctx context.Context, local localSnapshot, lastSync int64) (remoteOutcome, error) {
	log := c.logger.With().Str("func", "syncCoordinator.checkRemote").Logger()

	reqCtx, cancel := c.withRequestTimeout(ctx)
	defer cancel()

	meta, err := c.api.Latest(reqCtx, "")
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return remoteOutcome{}, nil
		}
		return remoteOutcome{}, fmt.Errorf("check remote backup: %w", err)
	}

	if meta.Modified <= lastSync+c.cfg.Tolerance.Milliseconds() {
		return remoteOutcome{}, nil
	}

	data, err := c.api.Download(reqCtx, meta.DownloadURL, meta.Filename)
	if err != nil {
		if errors.Is(err, snapshot.ErrDecode) {
			log.Err(err).Msg("remote backup unreadable, uploading without merge")
			return remoteOutcome{}, nil
		}
		return remoteOutcome{}, fmt.Errorf("download remote backup: %w", err)
	}

	remote, err := snapshot.Parse(data)
	if err != nil {
		log.Err(err).Msg("remote backup unreadable, uploading without merge")
		return remoteOutcome{}, nil
	}

	conflicts := FindConflicts(local.snapshot.Collections, remote.Collections, lastSync, c.cfg.Tolerance, c.cfg.ConflictCollections)
	if len(conflicts) > 0 {
		return remoteOutcome{conflict: &models.ConflictRecord{
			LocalSnapshot:    local.snapshot,
			RemoteSnapshot:   remote,
			RemoteTimestamp:  meta.Modified,
			LocalTimestamp:   local.snapshot.Collections.LatestUpdate(),
			ConflictingItems: conflicts,
		}}, nil
	}

	res := merge(local.snapshot, remote)
	if !res.Changed() {
		return remoteOutcome{}, nil
	}
	if err = c.applyMerge(ctx, res); err != nil {
		return remoteOutcome{}, err
	}

	log.Info().Int("collections", len(res.RemoteWins)).Msg("remote changes merged into local store")
	return remoteOutcome{merged: true}, nil
}

// applyMerge writes the remote-winning items and settings to the store
// without triggering a sync.
func (c *syncCoordinator) applyMerge(ctx context.Context, res mergeResult) error {
	if len(res.RemoteWins) > 0 {
		if err := c.collections.Apply(ctx, res.RemoteWins); err != nil {
			return fmt.Errorf("apply merged items: %w", err)
		}
	}
	for k, v := range res.RemoteSettings {
		if err := c.collections.SetSetting(ctx, k, v); err != nil {
			return fmt.Errorf("apply merged setting %s: %w", k, err)
		}
	}
	return nil
}

// fail records a failed attempt. Automatic attempts schedule a retry.
func (c *syncCoordinator) fail(ctx context.Context, opts syncOptions, err error) error {
	c.updateState(func(s *models.SyncState) {
		s.Status = models.SyncStatusFailed
		s.LastError = err.Error()
	})

	if opts.force {
		c.logger.Err(err).Str("func", "syncCoordinator.performSync").Msg("forced sync failed")
		return err
	}

	if ctx.Err() != nil {
		return nil
	}
	c.scheduleRetry(err)
	return nil
}

func (c *syncCoordinator) scheduleRetry(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	if c.backoff == nil {
		c.backoff = c.newBackoff()
	}

	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}

	delay, stop := c.backoff.Next()
	if stop {
		c.exhausted = true
		c.logger.Err(cause).Str("func", "syncCoordinator.scheduleRetry").Msg("sync failed, retry budget exhausted")
		return
	}

	c.logger.Err(cause).
		Str("func", "syncCoordinator.scheduleRetry").
		Dur("delay", delay).
		Msg("sync failed, retry scheduled")
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if c.retryTimer == t {
			c.retryTimer = nil
		}
		c.mu.Unlock()
		c.runScheduled()
	})
	c.retryTimer = t
}

func (c *syncCoordinator) resetRetry() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.backoff = nil
	c.exhausted = false
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
}

// acquire takes the in-flight slot for an operation that changes the store
// or the sync state outside performSync.
func (c *syncCoordinator) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return ErrSyncInProgress
	}
	c.inFlight = true
	return nil
}

// finishSync clears the in-flight flag and schedules the queued re-run.
func (c *syncCoordinator) finishSync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight = false
	if !c.rerun || c.stopped {
		c.rerun = false
		return
	}
	c.rerun = false
	c.rerunTimer = time.AfterFunc(c.cfg.RerunDelay, c.runScheduled)
}

// maybeUploadRetention uploads a dated gzip copy once per calendar day.
// The upload runs detached from the caller; its failure is only logged.
func (c *syncCoordinator) maybeUploadRetention(ctx context.Context, data []byte) {
	day := c.now().Format("2006-01-02")

	marker, err := c.meta.GetRetentionMarker(ctx)
	if err != nil {
		c.logger.Err(err).Str("func", "syncCoordinator.maybeUploadRetention").Msg("failed to read retention marker")
		return
	}
	if marker == day {
		return
	}

	c.mu.Lock()
	if c.retentionDay == day {
		c.mu.Unlock()
		return
	}
	c.retentionDay = day
	c.mu.Unlock()

	name := fmt.Sprintf("backup-%s.json.gz", day)
	started := c.spawn(func(ctx context.Context) {
		ctx, cancel := c.withRetentionTimeout(ctx)
		defer cancel()

		err := c.uploadRetention(ctx, name, day, data)
		if err != nil {
			c.logger.Err(err).
				Str("func", "syncCoordinator.maybeUploadRetention").
				Str("name", name).
				Msg("retention upload failed")

			c.mu.Lock()
			if c.retentionDay == day {
				c.retentionDay = ""
			}
			c.mu.Unlock()
			return
		}
		c.logger.Info().Str("name", name).Msg("retention copy uploaded")
	})
	if !started {
		c.mu.Lock()
		c.retentionDay = ""
		c.mu.Unlock()
	}
}

func (c *syncCoordinator) uploadRetention(ctx context.Context, name, day string, data []byte) error {
	gz, err := snapshot.Gzip(data)
	if err != nil {
		return err
	}
	if err = c.api.Upload(ctx, name, gz); err != nil {
		return err
	}
	return c.meta.SaveRetentionMarker(ctx, day)
}

func (c *syncCoordinator) withRequestTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}

func (c *syncCoordinator) withRetentionTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, 4*c.requestTimeout)
}
