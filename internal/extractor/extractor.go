// Package extractor implements the content submission service. It runs the
// pure reference scan over submitted text, persists the result together with
// an indexing job, and exposes read and delete operations scoped to the
// submitting user.
package extractor

import (
	"context"
	"fmt"
	"time"

	"noteref/internal/config"
	"noteref/pkg/dispatch"
	"noteref/pkg/domain"
	"noteref/pkg/refs"
	"noteref/pkg/serrors"
	"noteref/pkg/storage"

	"github.com/google/uuid"
)

// Options configure submission validation and how indexing jobs are enqueued.
// These settings are typically derived from application configuration.
type Options struct {
	// MaxContentBytes bounds the size of a single submission. Zero disables
	// the bound.
	MaxContentBytes int
	// MaxAttempts is the maximum number of attempts the background worker
	// should make when indexing an extraction before marking it failed.
	MaxAttempts int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxContentBytes: cfg.Extractor.MaxContentBytes,
		MaxAttempts:     cfg.Indexer.MaxAttempts,
	}
}

// extractor is the concrete implementation of the Extractor interface.
// It coordinates persistence with the storage layer, job enqueueing and
// event publication.
type extractor struct {
	// options holds runtime configuration that affects validation and enqueueing.
	options Options
	// storage is the persistence layer used to store extractions and manage jobs.
	storage storage.Storage
	// completed announces stored extractions to in-process subscribers.
	completed *dispatch.Dispatcher[ExtractionCompleted]
}

// Submit scans content for references, stores the resulting extraction with
// status PENDING and enqueues an indexing job, all in one transaction. After
// the transaction commits, an ExtractionCompleted event is published.
func (e extractor) Submit(ctx context.Context, userID domain.UserID, content string) (*domain.Extraction, error) {
	if content == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "content must not be empty")
	}
	if e.options.MaxContentBytes > 0 && len(content) > e.options.MaxContentBytes {
		return nil, serrors.With(serrors.ErrBadRequest,
			"content exceeds %d bytes", e.options.MaxContentBytes)
	}

	references := domain.References{
		Media:    refs.Media(content),
		Links:    refs.Links(content),
		Quoted:   refs.Quoted(content),
		Hashtags: refs.Hashtags(content),
		Mentions: refs.Mentions(content),
	}

	var extraction *domain.Extraction
	if err := e.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreExtractions(ctx, domain.Extraction{
			UserID:     userID,
			Content:    content,
			Status:     domain.ExtractionStatusPending,
			References: references,
		})
		if err != nil {
			return fmt.Errorf("could not store extraction: %w", err)
		}
		extraction = &res[0]

		if _, err := tx.AddJob(ctx, IndexJobArgs{
			ExtractionID: uuid.UUID(extraction.ID),
			maxAttempts:  e.options.MaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not submit content: %w", err)
	}

	e.completed.Publish(ctx, ExtractionCompleted{Extraction: *extraction})

	return extraction, nil
}

// UserExtractions returns a page of extractions for the given user filtered by
// status. It supports cursor-based pagination using an RFC3339 timestamp
// string and returns the next cursor when more results are available.
func (e extractor) UserExtractions(ctx context.Context,
	userID domain.UserID,
	status domain.ExtractionStatus,
	cursor string,
	limit uint) ([]domain.Extraction, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := e.storage.UserExtractions(ctx, userID, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user extractions: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Extractions, next, nil
}

// Result fetches a single extraction by ID for the given user. It returns a
// not-found error when no matching extraction exists.
func (e extractor) Result(ctx context.Context,
	userID domain.UserID,
	extractionID domain.ExtractionID) (*domain.Extraction, error) {
	res, err := e.storage.ExtractionByID(ctx, userID, extractionID)
	if err != nil {
		return nil, fmt.Errorf("could not get extraction: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "extraction not found")
	}

	return res, nil
}

// Delete removes an extraction belonging to the given user. If the extraction
// does not exist, a not-found error is returned. A pending indexing job is not
// cancelled here; the worker cancels itself when it finds the row gone.
func (e extractor) Delete(ctx context.Context, userID domain.UserID, extractionID domain.ExtractionID) error {
	res, err := e.storage.DeleteExtraction(ctx, userID, extractionID)
	if err != nil {
		return fmt.Errorf("could not delete extraction: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "extraction not found")
	}

	return nil
}

// New creates a new Extractor instance backed by the provided storage,
// publishing ExtractionCompleted events on the given dispatcher.
func New(storage storage.Storage,
	completed *dispatch.Dispatcher[ExtractionCompleted],
	options Options) Extractor {
	return &extractor{
		options:   options,
		storage:   storage,
		completed: completed,
	}
}
