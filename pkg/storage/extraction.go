package storage

import (
	"context"
	"time"

	"noteref/pkg/domain"
)

// ExtractionUpdates describes a set of optional fields that can be applied to
// an existing extraction during an update. Only non-nil fields will be updated.
type ExtractionUpdates struct {
	// Status is the new status to set for the extraction.
	Status domain.ExtractionStatus
	// IndexTerms, when provided, replaces the stored index terms.
	IndexTerms *[]string
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
	// MaxAttempts, when provided alongside a Failed status, ensures that status
	// is only updated to Failed if the current attempts after increment would
	// exceed this threshold. A value <= 0 disables this guard.
	MaxAttempts int
}

// UserExtractions groups a page of extractions returned for a user together
// with an optional NextCursor used for pagination.
type UserExtractions struct {
	// Extractions contains the current page of extraction records.
	Extractions []domain.Extraction
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// ExtractionStorage defines CRUD and query operations related to extractions.
// Implementations should ensure idempotency and proper handling of
// soft-deletes where applicable.
type ExtractionStorage interface {
	// StoreExtractions inserts one or more extractions and returns the stored
	// rows as they exist in the database (including generated fields).
	StoreExtractions(ctx context.Context, extractions ...domain.Extraction) ([]domain.Extraction, error)
	// UpdateExtractionByID updates a single extraction identified by its ID and
	// returns the updated row, or nil when no live row matches.
	// Notes:
	// - Attempts is incremented by 1 and updated_at is set automatically.
	// - If Status is Failed and MaxAttempts > 0, status is only set to Failed
	//   when the attempts after increment would exceed MaxAttempts; otherwise
	//   status remains unchanged (i.e., stays Pending).
	// - Soft-deleted rows are ignored.
	UpdateExtractionByID(ctx context.Context, ID domain.ExtractionID, updates ExtractionUpdates) (*domain.Extraction, error)
	// DeleteExtraction performs a soft delete for the given extraction ID and
	// user ID and returns the deleted extraction, or nil if it was not found.
	DeleteExtraction(ctx context.Context, userID domain.UserID, ID domain.ExtractionID) (*domain.Extraction, error)
	// UserExtractions returns a page of extractions for a user created before
	// the optional cursor time, limited by the given limit. If status is
	// non-empty, results are filtered to records with the given status.
	UserExtractions(ctx context.Context,
		userID domain.UserID,
		status domain.ExtractionStatus,
		cursor time.Time,
		limit uint) (UserExtractions, error)
	// ExtractionByID fetches an extraction by its ID for the given user,
	// excluding soft-deleted records. Returns nil when not found.
	ExtractionByID(ctx context.Context, userID domain.UserID, ID domain.ExtractionID) (*domain.Extraction, error)
	// ExtractionByIDAnyUser fetches an extraction by its ID regardless of
	// owner, excluding soft-deleted records. Used by background workers that
	// operate outside a user scope. Returns nil when not found.
	ExtractionByIDAnyUser(ctx context.Context, ID domain.ExtractionID) (*domain.Extraction, error)
}
