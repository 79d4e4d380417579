package worker

import (
	"context"
	"fmt"
	"strings"

	"noteref/internal/config"
	"noteref/internal/extractor"
	"noteref/pkg/dispatch"
	"noteref/pkg/domain"
	"noteref/pkg/logger"
	"noteref/pkg/storage"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// IndexerOptions configure the indexing worker.
type IndexerOptions struct {
	// MaxAttempts bounds how many times a failing extraction is retried
	// before its row is marked FAILED.
	MaxAttempts int
}

// NewIndexerOptions constructs an IndexerOptions value from the provided
// application config.
func NewIndexerOptions(cfg *config.Config) IndexerOptions {
	return IndexerOptions{MaxAttempts: cfg.Indexer.MaxAttempts}
}

// IndexWorker is a River worker that turns a stored extraction's references
// into flat, lower-cased index terms and advances the row to INDEXED. The row
// itself tracks attempts; once they reach MaxAttempts a failing update flips
// the status to FAILED instead.
type IndexWorker struct {
	river.WorkerDefaults[extractor.IndexJobArgs]

	options IndexerOptions
	storage storage.Storage
	// indexed announces successfully indexed extractions to in-process subscribers.
	indexed *dispatch.Dispatcher[extractor.ExtractionIndexed]
}

// NewIndexWorker constructs an IndexWorker backed by the given storage,
// publishing ExtractionIndexed events on the given dispatcher.
func NewIndexWorker(st storage.Storage,
	indexed *dispatch.Dispatcher[extractor.ExtractionIndexed],
	options IndexerOptions) *IndexWorker {
	return &IndexWorker{
		options: options,
		storage: st,
		indexed: indexed,
	}
}

// Work indexes a single extraction. A missing or soft-deleted row cancels the
// job: the submission was removed and there is nothing left to index.
func (w *IndexWorker) Work(ctx context.Context, job *river.Job[extractor.IndexJobArgs]) error {
	extractionID := domain.ExtractionID(job.Args.ExtractionID)
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("extractionID", job.Args.ExtractionID.String()))

	row, err := w.storage.ExtractionByIDAnyUser(ctx, extractionID)
	if err != nil {
		logger.Error(ctx, "error loading extraction", zap.Error(err))

		return fmt.Errorf("could not load extraction: %w", err)
	}
	if row == nil {
		return river.JobCancel(fmt.Errorf("extraction %s no longer exists", job.Args.ExtractionID)) //nolint: wrapcheck
	}

	terms := IndexTerms(row.References)

	updated, err := w.storage.UpdateExtractionByID(ctx, extractionID, storage.ExtractionUpdates{
		Status:     domain.ExtractionStatusIndexed,
		IndexTerms: &terms,
	})
	if err != nil {
		w.markFailed(ctx, extractionID, err)

		return fmt.Errorf("could not update extraction: %w", err)
	}
	if updated == nil {
		// deleted between the read and the update
		return river.JobCancel(fmt.Errorf("extraction %s no longer exists", job.Args.ExtractionID)) //nolint: wrapcheck
	}

	w.indexed.Publish(ctx, extractor.ExtractionIndexed{
		ExtractionID: updated.ID,
		UserID:       updated.UserID,
		IndexTerms:   updated.IndexTerms,
	})

	logger.Info(ctx, "extraction indexed", zap.Int("terms", len(terms)))

	return nil
}

// markFailed records an indexing failure on the extraction row. The storage
// guard flips the status to FAILED only once attempts reach MaxAttempts, so
// earlier failures leave the row PENDING for the next retry.
func (w *IndexWorker) markFailed(ctx context.Context, extractionID domain.ExtractionID, cause error) {
	msg := cause.Error()
	if _, err := w.storage.UpdateExtractionByID(ctx, extractionID, storage.ExtractionUpdates{
		Status:      domain.ExtractionStatusFailed,
		LastError:   &msg,
		MaxAttempts: w.options.MaxAttempts,
	}); err != nil {
		logger.Error(ctx, "error recording indexing failure", zap.Error(err))
	}
}

// IndexTerms flattens the references of one extraction into search terms:
// lower-cased hashtags, link domains, mention tokens and quoted-reference ids.
// Duplicates are collapsed; order follows the reference families above.
func IndexTerms(references domain.References) []string {
	seen := make(map[string]struct{})
	var terms []string

	add := func(term string) {
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for _, tag := range references.Hashtags {
		add(strings.ToLower(tag))
	}
	for _, link := range references.Links {
		add(link.Domain)
	}
	for _, mention := range references.Mentions {
		add(strings.ToLower(mention))
	}
	for _, quoted := range references.Quoted {
		add(quoted.ID)
	}

	return terms
}
