package workers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
)

type namedWorker struct {
	name string
	Worker
}

// Workers is a group of named workers sharing one lifetime.
type Workers struct {
	workers []namedWorker
	logger  *logger.Logger
}

func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger}
}

// Add registers w under name. It must be called before Run.
func (w *Workers) Add(name string, worker Worker) *Workers {
	w.workers = append(w.workers, namedWorker{name: name, Worker: worker})
	return w
}

// Run starts every worker and blocks until all of them returned. The first
// failing worker cancels the others; its error is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, worker := range w.workers {
		g.Go(func() error {
			w.logger.Info().Str("worker", worker.name).Msg("worker started")

			if err := worker.Run(ctx); err != nil {
				w.logger.Err(err).Str("worker", worker.name).Msg("worker failed")
				return fmt.Errorf("worker %s: %w", worker.name, err)
			}

			w.logger.Info().Str("worker", worker.name).Msg("worker stopped")
			return nil
		})
	}

	return g.Wait()
}
