// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shelf-sync/internal/adapter"
	"github.com/MKhiriev/go-shelf-sync/internal/snapshot"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// FetchRemoteIfNewer implements SyncCoordinator. The stored fetch cache
// answers a 304 Not Modified without downloading the content again.
func (c *syncCoordinator) FetchRemoteIfNewer(ctx context.Context, force bool) (*models.RemoteSnapshot, error) {
	log := c.logger.With().Str("func", "syncCoordinator.FetchRemoteIfNewer").Logger()

	if err := c.authorize(ctx); err != nil {
		return nil, err
	}

	cache, err := c.meta.GetFetchCache(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fetch cache: %w", err)
	}
	if len(cache.Content) == 0 {
		cache = models.FetchCache{}
	}

	reqCtx, cancel := c.withRequestTimeout(ctx)
	defer cancel()

	fromCache := false
	meta, err := c.api.Latest(reqCtx, cache.ETag)
	switch {
	case errors.Is(err, adapter.ErrNotModified) && cache.ETag != "":
		meta = cache.Meta
		fromCache = true
	case errors.Is(err, adapter.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("fetch remote metadata: %w", err)
	}

	lastSync := c.State().LastBackupTimestamp
	if !force && meta.Modified <= lastSync+c.cfg.Tolerance.Milliseconds() {
		log.Debug().
			Int64("remote", meta.Modified).
			Int64("last_backup", lastSync).
			Msg("remote backup is not newer")
		return nil, nil
	}

	data := cache.Content
	if !fromCache {
		data, err = c.api.Download(reqCtx, meta.DownloadURL, meta.Filename)
		if err != nil {
			return nil, fmt.Errorf("download remote backup: %w", err)
		}
	}

	snap, err := snapshot.Parse(data)
	if err != nil {
		return nil, err
	}

	if !fromCache && meta.ETag != "" {
		if err = c.meta.SaveFetchCache(ctx, models.FetchCache{ETag: meta.ETag, Meta: meta, Content: data}); err != nil {
			log.Err(err).Msg("failed to save fetch cache")
		}
	}

	return &models.RemoteSnapshot{
		Snapshot:        snap,
		RemoteTimestamp: meta.Modified,
		LocalTimestamp:  lastSync,
	}, nil
}

// PullLatest implements SyncCoordinator.
func (c *syncCoordinator) PullLatest(ctx context.Context) error {
	log := c.logger.With().Str("func", "syncCoordinator.PullLatest").Logger()

	if err := c.acquire(); err != nil {
		return err
	}
	defer c.finishSync()

	remote, err := c.FetchRemoteIfNewer(ctx, true)
	if err != nil {
		return err
	}
	if remote == nil {
		log.Info().Msg("no remote backup to pull")
		return nil
	}

	local, err := c.serializeLocal(ctx)
	if err != nil {
		return err
	}

	lastSync := c.State().LastBackupTimestamp
	conflicts := FindConflicts(local.snapshot.Collections, remote.Snapshot.Collections, lastSync, c.cfg.Tolerance, c.cfg.ConflictCollections)
	if len(conflicts) > 0 {
		c.setConflict(&models.ConflictRecord{
			LocalSnapshot:    local.snapshot,
			RemoteSnapshot:   remote.Snapshot,
			RemoteTimestamp:  remote.RemoteTimestamp,
			LocalTimestamp:   local.snapshot.Collections.LatestUpdate(),
			ConflictingItems: conflicts,
		})
		c.setStatus(models.SyncStatusConflict)
		log.Warn().Strs("items", conflicts).Msg("pull raised a conflict")
		return nil
	}

	res := merge(local.snapshot, remote.Snapshot)
	if err = c.applyMerge(ctx, res); err != nil {
		return err
	}

	ts := max(lastSync, remote.RemoteTimestamp)
	hash := c.State().LastContentHash
	if err = c.meta.SaveLastBackup(ctx, ts, hash); err != nil {
		return fmt.Errorf("save sync state: %w", err)
	}
	c.updateState(func(s *models.SyncState) {
		s.LastBackupTimestamp = ts
	})

	log.Info().Bool("changed", res.Changed()).Msg("remote backup pulled")
	if res.Changed() {
		c.RequestSync()
	}
	return nil
}

// Resolve implements SyncCoordinator.
func (c *syncCoordinator) Resolve(ctx context.Context, strategy models.ResolutionStrategy) (models.Resolution, error) {
	if !strategy.Valid() {
		return models.Resolution{}, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}

	if err := c.acquire(); err != nil {
		return models.Resolution{}, err
	}
	resolution, err := c.resolve(ctx, strategy)
	c.finishSync()
	if err != nil {
		return models.Resolution{}, err
	}

	c.spawn(func(ctx context.Context) {
		_ = c.performSync(ctx, syncOptions{})
	})
	return resolution, nil
}

// resolve applies strategy to the active conflict. The caller holds the
// in-flight slot.
func (c *syncCoordinator) resolve(ctx context.Context, strategy models.ResolutionStrategy) (models.Resolution, error) {
	rec := c.Conflict()
	if rec == nil {
		return models.Resolution{}, ErrNoConflict
	}

	resolution := models.Resolution{Strategy: strategy}
	switch strategy {
	case models.ResolveUseLocal:
	case models.ResolveUseRemote:
		if err := c.collections.Restore(ctx, rec.RemoteSnapshot); err != nil {
			return models.Resolution{}, fmt.Errorf("restore remote snapshot: %w", err)
		}
	case models.ResolveSmartMerge:
		collections, settings, err := c.collections.Export(ctx, store.ExportOptions{})
		if err != nil {
			return models.Resolution{}, fmt.Errorf("export local collections: %w", err)
		}
		local := models.Snapshot{Collections: collections, Settings: settings}
		if err = c.applyMerge(ctx, merge(local, rec.RemoteSnapshot)); err != nil {
			return models.Resolution{}, err
		}
		resolution.PolicyDecided = append([]string(nil), rec.ConflictingItems...)
	}

	ts := max(c.State().LastBackupTimestamp, rec.RemoteTimestamp)
	if err := c.meta.SaveLastBackup(ctx, ts, ""); err != nil {
		return models.Resolution{}, fmt.Errorf("save sync state: %w", err)
	}

	c.setConflict(nil)
	c.updateState(func(s *models.SyncState) {
		s.Status = models.SyncStatusIdle
		s.LastBackupTimestamp = ts
		s.LastContentHash = ""
		s.LastError = ""
	})
	c.resetRetry()

	c.logger.Info().
		Str("func", "syncCoordinator.Resolve").
		Str("strategy", string(strategy)).
		Strs("policy_decided", resolution.PolicyDecided).
		Msg("conflict resolved")
	return resolution, nil
}

// Dismiss implements SyncCoordinator.
func (c *syncCoordinator) Dismiss() {
	if c.Conflict() == nil {
		return
	}
	c.setConflict(nil)
	c.setStatus(models.SyncStatusIdle)
}

func (c *syncCoordinator) ListBackups(ctx context.Context) ([]models.BackupInfo, error) {
	if err := c.authorize(ctx); err != nil {
		return nil, err
	}
	return c.api.List(ctx)
}

// RestoreBackup replaces the local state with the named backup and uploads
// it as the new latest backup.
func (c *syncCoordinator) RestoreBackup(ctx context.Context, name string) error {
	if err := store.ValidateBackupName(name); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidBackupName, name)
	}
	if err := c.authorize(ctx); err != nil {
		return err
	}

	data, err := c.api.Fetch(ctx, name)
	if err != nil {
		return fmt.Errorf("fetch backup %s: %w", name, err)
	}

	snap, err := snapshot.Parse(data)
	if err != nil {
		return err
	}

	if err = c.collections.Restore(ctx, snap); err != nil {
		return fmt.Errorf("restore backup %s: %w", name, err)
	}

	c.logger.Info().
		Str("func", "syncCoordinator.RestoreBackup").
		Str("name", name).
		Msg("backup restored")

	return c.ForceSync(ctx, ForceOptions{Overwrite: true})
}

func (c *syncCoordinator) DeleteBackup(ctx context.Context, name string) error {
	if err := store.ValidateBackupName(name); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidBackupName, name)
	}
	if err := c.authorize(ctx); err != nil {
		return err
	}
	return c.api.Delete(ctx, name)
}

// authorize hands the current credential to the API client.
func (c *syncCoordinator) authorize(ctx context.Context) error {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if token == "" {
		return ErrConfigurationMissing
	}
	c.api.SetToken(token)
	return nil
}
