package client

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-shelf-sync/internal/service"
	"github.com/MKhiriev/go-shelf-sync/internal/workers"
	"github.com/MKhiriev/go-shelf-sync/models"
)

type command func(ctx context.Context, args []string) error

func (a *App) commands() map[string]command {
	return map[string]command{
		"run":     a.runDaemon,
		"sync":    a.syncCommand,
		"pull":    a.pullCommand,
		"status":  a.statusCommand,
		"list":    a.listCommand,
		"restore": a.restoreCommand,
		"delete":  a.deleteCommand,
		"login":   a.loginCommand,
		"logout":  a.logoutCommand,
	}
}

// Run starts the sync coordinator and executes the command named by the
// first positional argument; without one the background daemon runs.
func (a *App) Run(ctx context.Context) error {
	name, args := "run", []string(nil)
	if len(a.cfg.Args) > 0 {
		name, args = a.cfg.Args[0], a.cfg.Args[1:]
	}

	cmd, ok := a.commands()[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	coordinator := a.services.Coordinator
	if err := coordinator.Start(ctx); err != nil {
		return fmt.Errorf("start sync coordinator: %w", err)
	}
	defer coordinator.Stop()

	a.logger.Debug().Str("command", name).Strs("args", args).Msg("running command")
	return cmd(ctx, args)
}

// runDaemon requests an initial sync and keeps the periodic sync job and
// the network watcher running until ctx is cancelled.
func (a *App) runDaemon(ctx context.Context, _ []string) error {
	unsubscribe := a.services.Coordinator.SubscribeState(func(s models.SyncState) {
		a.logger.Info().
			Str("status", string(s.Status)).
			Int64("last_backup", s.LastBackupTimestamp).
			Str("last_error", s.LastError).
			Msg("sync state changed")
	})
	defer unsubscribe()

	unsubscribeConflict := a.services.Coordinator.SubscribeConflict(func(rec *models.ConflictRecord) {
		if rec != nil {
			a.logger.Warn().Strs("items", rec.ConflictingItems).Msg("sync conflict needs resolution")
		}
	})
	defer unsubscribeConflict()

	a.services.Coordinator.RequestSync()

	return workers.NewWorkers(a.logger).
		Add("sync-job", a.services.SyncJob).
		Add("network-watcher", a.watcher).
		Run(ctx)
}

func (a *App) syncCommand(ctx context.Context, args []string) error {
	fs := a.flagSet("sync")
	overwrite := fs.Bool("overwrite", false, "replace the remote backup with the local state")
	resolve := fs.String("resolve", "", "strategy for a raised conflict: use_local, use_remote or smart_merge")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.services.Coordinator.ForceSync(ctx, service.ForceOptions{Overwrite: *overwrite}); err != nil {
		return err
	}
	return a.settle(ctx, models.ResolutionStrategy(*resolve))
}

func (a *App) pullCommand(ctx context.Context, args []string) error {
	fs := a.flagSet("pull")
	resolve := fs.String("resolve", "", "strategy for a raised conflict: use_local, use_remote or smart_merge")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.services.Coordinator.PullLatest(ctx); err != nil {
		return err
	}
	return a.settle(ctx, models.ResolutionStrategy(*resolve))
}

// settle applies strategy to a conflict raised by the previous step and
// reports the resulting state.
func (a *App) settle(ctx context.Context, strategy models.ResolutionStrategy) error {
	coordinator := a.services.Coordinator

	rec := coordinator.Conflict()
	if rec == nil {
		a.printState(coordinator.State())
		return nil
	}

	fmt.Fprintf(a.out, "conflict: %s\n", strings.Join(rec.ConflictingItems, ", "))
	if strategy == "" {
		return ErrUnresolvedConflict
	}

	wait, stop := a.awaitSyncOutcome()
	defer stop()

	resolution, err := coordinator.Resolve(ctx, strategy)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "resolved: %s\n", resolution.Strategy)
	if len(resolution.PolicyDecided) > 0 {
		fmt.Fprintf(a.out, "decided by merge policy: %s\n", strings.Join(resolution.PolicyDecided, ", "))
	}

	a.printState(wait(ctx))
	return nil
}

// awaitSyncOutcome subscribes before a sync is started and returns a
// function waiting for that sync to reach a terminal status. stop drops the
// subscription.
func (a *App) awaitSyncOutcome() (wait func(ctx context.Context) models.SyncState, stop func()) {
	coordinator := a.services.Coordinator

	var once sync.Once
	done := make(chan models.SyncState, 1)
	unsubscribe := coordinator.SubscribeState(func(s models.SyncState) {
		switch s.Status {
		case models.SyncStatusSynced, models.SyncStatusFailed, models.SyncStatusDisabled, models.SyncStatusConflict:
			once.Do(func() { done <- s })
		}
	})

	wait = func(ctx context.Context) models.SyncState {
		ctx, cancel := context.WithTimeout(ctx, a.settleTimeout())
		defer cancel()

		select {
		case s := <-done:
			return s
		case <-ctx.Done():
			return coordinator.State()
		}
	}
	return wait, unsubscribe
}

func (a *App) settleTimeout() time.Duration {
	if a.cfg.Adapter.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return 2 * a.cfg.Adapter.RequestTimeout
}

func (a *App) statusCommand(_ context.Context, _ []string) error {
	a.printState(a.services.Coordinator.State())
	return nil
}

func (a *App) listCommand(ctx context.Context, _ []string) error {
	backups, err := a.services.Coordinator.ListBackups(ctx)
	if err != nil {
		return err
	}

	for _, b := range backups {
		fmt.Fprintf(a.out, "%s\t%d\t%s\n", b.Filename, b.Size, formatMillis(b.Modified))
	}
	return nil
}

func (a *App) restoreCommand(ctx context.Context, args []string) error {
	name, err := requireArg(args, "backup name")
	if err != nil {
		return err
	}

	if err = a.services.Coordinator.RestoreBackup(ctx, name); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "restored: %s\n", name)
	return nil
}

func (a *App) deleteCommand(ctx context.Context, args []string) error {
	name, err := requireArg(args, "backup name")
	if err != nil {
		return err
	}

	if err = a.services.Coordinator.DeleteBackup(ctx, name); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted: %s\n", name)
	return nil
}

func (a *App) loginCommand(ctx context.Context, args []string) error {
	token, err := requireArg(args, "token")
	if err != nil {
		return err
	}
	return a.services.Credentials.SetToken(ctx, token)
}

func (a *App) logoutCommand(ctx context.Context, _ []string) error {
	return a.services.Credentials.SetToken(ctx, "")
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) printState(s models.SyncState) {
	fmt.Fprintf(a.out, "status: %s\n", s.Status)
	if s.LastBackupTimestamp > 0 {
		fmt.Fprintf(a.out, "last backup: %s\n", formatMillis(s.LastBackupTimestamp))
	}
	if s.LastError != "" {
		fmt.Fprintf(a.out, "last error: %s\n", s.LastError)
	}
}

func requireArg(args []string, what string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, what)
	}
	return strings.TrimSpace(args[0]), nil
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
