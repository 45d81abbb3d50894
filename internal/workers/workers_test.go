// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
)

// blockingWorker counts runs and blocks until its context is cancelled.
type blockingWorker struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (b *blockingWorker) Run(ctx context.Context) error {
	b.started.Add(1)
	<-ctx.Done()
	b.stopped.Add(1)
	return nil
}

func TestWorkers_Run_StopsAllOnCancel(t *testing.T) {
	w1, w2 := &blockingWorker{}, &blockingWorker{}
	ws := NewWorkers(logger.Nop()).Add("one", w1).Add("two", w2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.started.Load() == 1 && w2.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Equal(t, int32(1), w1.stopped.Load())
	assert.Equal(t, int32(1), w2.stopped.Load())
}

func TestWorkers_Run_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("listener closed")
	blocking := &blockingWorker{}
	ws := NewWorkers(logger.Nop()).
		Add("blocking", blocking).
		Add("failing", WorkerFunc(func(context.Context) error { return boom }))

	err := ws.Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "worker failing")
	assert.Equal(t, int32(1), blocking.stopped.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	require.NoError(t, NewWorkers(logger.Nop()).Run(context.Background()))
}
