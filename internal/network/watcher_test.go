// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/models"
)

func TestWatcher_DeliversTransitions(t *testing.T) {
	c := NewStaticClassifier(models.ConnectionNone)
	g := NewGate(c, false, logger.Nop())

	var turnedOn atomic.Int32
	g.OnChange(func(eligible bool) {
		if eligible {
			turnedOn.Add(1)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWatcher(g, 10*time.Millisecond).Run(ctx) }()

	// let the baseline be recorded before the switch
	assert.Eventually(t, func() bool { return !g.IsEligible(ctx) }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	c.Set(models.ConnectionUnmetered)

	assert.Eventually(t, func() bool { return turnedOn.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
