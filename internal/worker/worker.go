// Package worker hosts the background job runtime. It wires the indexing
// worker into a River client backed by the application's pgx pool.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"noteref/internal/extractor"
	"noteref/pkg/dispatch"
	"noteref/pkg/logger"
	"noteref/pkg/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	st storage.Storage,
	indexed *dispatch.Dispatcher[extractor.ExtractionIndexed],
	opts IndexerOptions) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewIndexWorker(st, indexed, opts))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 100}, // TODO: make configurable
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
