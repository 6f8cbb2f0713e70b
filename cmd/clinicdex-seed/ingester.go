package main

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	clinicdex "github.com/kailas-cloud/clinicdex/pkg/sdk"
)

// upserter stores a batch of clinics.
type upserter interface {
	UpsertBatch(ctx context.Context, recs []clinicdex.Record) (clinicdex.BatchResponse, error)
}

// ingester is a worker pool for batch upserts.
// Reader -> channel([]Record) -> N workers -> UpsertBatch.
type ingester struct {
	store     upserter
	workers   int
	batchSize int
	maxRows   int
	metrics   *loaderMetrics
	logger    *zap.Logger
}

// ingestResult summarises a run.
type ingestResult struct {
	Read      int64
	Processed int64
	Failed    int64
	Duration  time.Duration
}

// Run reads every record from r and stores them in batches.
func (ing *ingester) Run(ctx context.Context, r io.Reader) (ingestResult, error) {
	workers := max(ing.workers, 1)
	batches := make(chan []clinicdex.Record, workers*2)

	var wg sync.WaitGroup
	var processed, failed atomic.Int64
	start := time.Now()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for batch := range batches {
				ing.processBatch(ctx, workerID, batch, &processed, &failed)
			}
		}(i)
	}

	read, readErr := ing.produce(ctx, r, batches)
	close(batches)
	wg.Wait()

	return ingestResult{
		Read:      read,
		Processed: processed.Load(),
		Failed:    failed.Load(),
		Duration:  time.Since(start),
	}, readErr
}

// produce reads records and groups them into batches.
func (ing *ingester) produce(ctx context.Context, r io.Reader, out chan<- []clinicdex.Record) (int64, error) {
	size := max(ing.batchSize, 1)
	batch := make([]clinicdex.Record, 0, size)
	var read int64

	err := readRecords(r, func(rec *clinicdex.Record, seq int) bool {
		if ctx.Err() != nil {
			return false
		}
		if ing.maxRows > 0 && seq >= ing.maxRows {
			return false
		}
		read++
		batch = append(batch, *rec)
		if len(batch) >= size {
			select {
			case out <- batch:
			case <-ctx.Done():
				return false
			}
			batch = make([]clinicdex.Record, 0, size)
		}
		return true
	})

	if len(batch) > 0 && ctx.Err() == nil {
		out <- batch
	}
	return read, err
}

func (ing *ingester) processBatch(
	ctx context.Context,
	id int,
	batch []clinicdex.Record,
	processed, failed *atomic.Int64,
) {
	start := time.Now()
	resp, err := ing.store.UpsertBatch(ctx, batch)

	if ing.metrics != nil {
		ing.metrics.batchDuration.Observe(time.Since(start).Seconds())
		ing.metrics.batchesTotal.Inc()
	}

	if err != nil {
		ing.logger.Warn("Batch upsert failed",
			zap.Int("worker", id),
			zap.Int("size", len(batch)),
			zap.Error(err),
		)
		failed.Add(int64(len(batch)))
		if ing.metrics != nil {
			ing.metrics.rowsFailed.WithLabelValues("batch_error").Add(float64(len(batch)))
		}
		return
	}

	processed.Add(int64(resp.Succeeded))
	failed.Add(int64(resp.Failed))

	if ing.metrics != nil {
		ing.metrics.rowsProcessed.Add(float64(resp.Succeeded))
		if resp.Failed > 0 {
			ing.metrics.rowsFailed.WithLabelValues("invalid").Add(float64(resp.Failed))
		}
	}
	if resp.Failed > 0 {
		// First failure only; the rest are counted.
		for _, r := range resp.Results {
			if !r.OK {
				ing.logger.Warn("Record rejected",
					zap.Int("worker", id),
					zap.String("id", r.ID),
					zap.Error(r.Err),
				)
				break
			}
		}
	}

	total := processed.Load()
	if total%10000 < int64(len(batch)) {
		ing.logger.Info("Seeding progress",
			zap.Int64("processed", total),
			zap.Int64("failed", failed.Load()),
		)
	}
}
