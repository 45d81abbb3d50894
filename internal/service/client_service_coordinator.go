// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-shelf-sync/internal/adapter"
	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// latestBackupName is the fixed name of the canonical remote backup.
const latestBackupName = "latest.json"

// syncCoordinator is the concrete SyncCoordinator.
//
// All fields below mu are guarded by it. Subscribers are always invoked
// after mu is released.
type syncCoordinator struct {
	collections store.CollectionStore
	meta        store.SyncMetaRepository
	api         adapter.BackupAPI
	gate        NetworkGate
	creds       CredentialStore

	cfg            config.ClientSync
	deviceID       string
	requestTimeout time.Duration

	logger *logger.Logger

	now        func() time.Time
	newBackoff func() retry.Backoff

	// lifetime of timer driven syncs and retention uploads
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	state         models.SyncState
	conflict      *models.ConflictRecord
	inFlight      bool
	rerun         bool
	stopped       bool
	backoff       retry.Backoff
	exhausted     bool
	debounceTimer *time.Timer
	retryTimer    *time.Timer
	rerunTimer    *time.Timer
	retentionDay  string
	unsubscribe   []func()

	nextSubID    int
	stateSubs    map[int]func(models.SyncState)
	conflictSubs map[int]func(*models.ConflictRecord)
}

// NewSyncCoordinator wires a coordinator over the client storages and the
// remote backup API. It is idle until Start is called.
func NewSyncCoordinator(
	storages *store.ClientStorages,
	api adapter.BackupAPI,
	gate NetworkGate,
	creds CredentialStore,
	cfg config.ClientConfig,
	logger *logger.Logger,
) SyncCoordinator {
	return newSyncCoordinator(storages.Collections, storages.SyncMeta, api, gate, creds, cfg, logger)
}

func newSyncCoordinator(
	collections store.CollectionStore,
	meta store.SyncMetaRepository,
	api adapter.BackupAPI,
	gate NetworkGate,
	creds CredentialStore,
	cfg config.ClientConfig,
	log *logger.Logger,
) *syncCoordinator {
	ctx, cancel := context.WithCancel(context.Background())
	syncCfg := cfg.Sync

	return &syncCoordinator{
		collections:    collections,
		meta:           meta,
		api:            api,
		gate:           gate,
		creds:          creds,
		cfg:            syncCfg,
		deviceID:       cfg.App.DeviceID,
		requestTimeout: cfg.Adapter.RequestTimeout,
		logger:         log.WithComponent("sync"),
		now:            time.Now,
		newBackoff: func() retry.Backoff {
			return newRetryBackoff(syncCfg.RetryBase, syncCfg.RetryJitter, syncCfg.MaxRetries)
		},
		ctx:          ctx,
		cancel:       cancel,
		state:        models.SyncState{Status: models.SyncStatusIdle},
		stateSubs:    make(map[int]func(models.SyncState)),
		conflictSubs: make(map[int]func(*models.ConflictRecord)),
	}
}

// Start implements SyncCoordinator.
func (c *syncCoordinator) Start(ctx context.Context) error {
	ts, hash, err := c.meta.GetLastBackup(ctx)
	if err != nil {
		return fmt.Errorf("load sync state: %w", err)
	}

	token, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}

	status := models.SyncStatusIdle
	switch {
	case token == "":
		status = models.SyncStatusDisabled
	case c.cfg.DisableAutoSync:
		status = models.SyncStatusDisabled
	}

	c.updateState(func(s *models.SyncState) {
		s.Status = status
		s.LastBackupTimestamp = ts
		s.LastContentHash = hash
	})

	unsubMutation := c.collections.OnMutation(func(collection string) {
		c.RequestSync()
	})
	unsubNetwork := c.gate.OnChange(c.onEligibilityChange)

	c.mu.Lock()
	c.unsubscribe = append(c.unsubscribe, unsubMutation, unsubNetwork)
	c.mu.Unlock()

	c.logger.Info().
		Str("func", "syncCoordinator.Start").
		Str("status", string(status)).
		Int64("last_backup", ts).
		Msg("sync coordinator started")
	return nil
}

// Stop implements SyncCoordinator.
func (c *syncCoordinator) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	for _, t := range []*time.Timer{c.debounceTimer, c.retryTimer, c.rerunTimer} {
		if t != nil {
			t.Stop()
		}
	}
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
	c.cancel()
	c.wg.Wait()

	c.logger.Info().Str("func", "syncCoordinator.Stop").Msg("sync coordinator stopped")
}

// RequestSync implements SyncCoordinator.
func (c *syncCoordinator) RequestSync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	// manual trigger: fresh retry budget
	c.backoff = nil
	c.exhausted = false
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}

	c.armDebounceLocked()
}

// RequestScheduledSync implements SyncCoordinator. It keeps the retry
// budget: a pending retry already covers the request, and an exhausted
// budget waits for a manual trigger.
func (c *syncCoordinator) RequestScheduledSync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.retryTimer != nil {
		return
	}
	if c.exhausted {
		c.logger.Debug().
			Str("func", "syncCoordinator.RequestScheduledSync").
			Msg("retry budget exhausted, waiting for a manual sync")
		return
	}

	c.armDebounceLocked()
}

func (c *syncCoordinator) armDebounceLocked() {
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.cfg.Debounce, c.runScheduled)
}

// ForceSync implements SyncCoordinator.
func (c *syncCoordinator) ForceSync(ctx context.Context, opts ForceOptions) error {
	if c.isStopped() {
		return ErrCoordinatorStopped
	}
	return c.performSync(ctx, syncOptions{force: true, overwrite: opts.Overwrite})
}

func (c *syncCoordinator) State() models.SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Conflict returns a copy of the active conflict, or nil.
func (c *syncCoordinator) Conflict() *models.ConflictRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyConflict(c.conflict)
}

func (c *syncCoordinator) SubscribeState(cb func(models.SyncState)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.stateSubs[id] = cb
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.stateSubs, id)
			c.mu.Unlock()
		})
	}
}

func (c *syncCoordinator) SubscribeConflict(cb func(*models.ConflictRecord)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.conflictSubs[id] = cb
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.conflictSubs, id)
			c.mu.Unlock()
		})
	}
}

// onEligibilityChange retries a deferred sync when uploads become possible.
func (c *syncCoordinator) onEligibilityChange(eligible bool) {
	if !eligible {
		return
	}

	st := c.State()
	if st.Status != models.SyncStatusIdle && st.Status != models.SyncStatusFailed {
		return
	}

	c.logger.Debug().
		Str("func", "syncCoordinator.onEligibilityChange").
		Str("status", string(st.Status)).
		Msg("network eligible again, resuming sync")
	c.spawn(func(ctx context.Context) {
		_ = c.performSync(ctx, syncOptions{})
	})
}

// runScheduled runs one non-forced sync attempt on behalf of a timer or a
// callback. It is a no-op after Stop.
func (c *syncCoordinator) runScheduled() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	ctx := c.ctx
	c.mu.Unlock()

	defer c.wg.Done()
	_ = c.performSync(ctx, syncOptions{})
}

// spawn runs fn in a tracked goroutine bound to the coordinator lifetime.
func (c *syncCoordinator) spawn(fn func(ctx context.Context)) bool {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return false
	}
	c.wg.Add(1)
	ctx := c.ctx
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		fn(ctx)
	}()
	return true
}

func (c *syncCoordinator) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// updateState applies fn under the lock and notifies subscribers when the
// state changed.
func (c *syncCoordinator) updateState(fn func(s *models.SyncState)) {
	c.mu.Lock()
	before := c.state
	fn(&c.state)
	after := c.state
	var subs []func(models.SyncState)
	if after != before {
		subs = make([]func(models.SyncState), 0, len(c.stateSubs))
		for _, cb := range c.stateSubs {
			subs = append(subs, cb)
		}
	}
	c.mu.Unlock()

	for _, cb := range subs {
		cb(after)
	}
}

func (c *syncCoordinator) setStatus(status models.SyncStatus) {
	c.updateState(func(s *models.SyncState) {
		s.Status = status
		if status != models.SyncStatusFailed {
			s.LastError = ""
		}
	})
}

// setConflict replaces the active conflict and notifies subscribers.
func (c *syncCoordinator) setConflict(rec *models.ConflictRecord) {
	c.mu.Lock()
	c.conflict = copyConflict(rec)
	subs := make([]func(*models.ConflictRecord), 0, len(c.conflictSubs))
	for _, cb := range c.conflictSubs {
		subs = append(subs, cb)
	}
	c.mu.Unlock()

	for _, cb := range subs {
		cb(copyConflict(rec))
	}
}

func copyConflict(rec *models.ConflictRecord) *models.ConflictRecord {
	if rec == nil {
		return nil
	}
	cp := *rec
	cp.ConflictingItems = append([]string(nil), rec.ConflictingItems...)
	return &cp
}
