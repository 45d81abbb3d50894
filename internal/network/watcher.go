// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"time"
)

// Watcher polls a Gate so that eligibility transitions reach its
// subscribers without an OS connectivity API.
type Watcher struct {
	gate     *Gate
	interval time.Duration
}

func NewWatcher(gate *Gate, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{gate: gate, interval: interval}
}

// Run blocks until ctx is cancelled. The first check happens immediately.
func (w *Watcher) Run(ctx context.Context) error {
	w.gate.Check(ctx)

	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.gate.Check(ctx)
		}
	}
}
