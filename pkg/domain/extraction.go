package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionID uniquely identifies an extraction.
// It wraps uuid.UUID to provide type safety at the domain layer.
type ExtractionID uuid.UUID

// ExtractionStatus represents the lifecycle state of an extraction.
// It can be pending, indexed, or failed.
type ExtractionStatus string

const (
	// ExtractionStatusPending indicates the references were extracted and
	// stored but the indexing job has not processed them yet.
	ExtractionStatusPending ExtractionStatus = "PENDING"
	// ExtractionStatusIndexed indicates the indexing job finished and
	// IndexTerms is populated.
	ExtractionStatusIndexed ExtractionStatus = "INDEXED"
	// ExtractionStatusFailed indicates indexing gave up; see LastError and
	// Attempts for details.
	ExtractionStatusFailed ExtractionStatus = "FAILED"
)

// Extraction represents a single piece of submitted content together with the
// references extracted from it and its indexing lifecycle.
type Extraction struct {
	// ID is the unique identifier of the extraction.
	ID ExtractionID `json:"id"`
	// UserID is the identifier of the user who submitted the content.
	UserID UserID `json:"userId"`

	// Content is the original text as submitted. It is never mutated by
	// extraction; all references point back into it.
	Content string `json:"content"`
	// Status is the current lifecycle state of the extraction.
	Status ExtractionStatus `json:"status"`
	// References holds the typed records extracted from Content.
	References References `json:"references"`
	// IndexTerms holds the search terms derived from References by the
	// indexing worker. Empty until the extraction is indexed.
	IndexTerms []string `json:"indexTerms,omitempty"`

	// Attempts is the number of times the indexer has tried to process this extraction.
	Attempts uint `json:"attempts"`
	// LastError stores the most recent indexing error message, if any.
	LastError string `json:"-"`

	// CreatedAt is the time when the content was submitted.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the extraction was last updated (e.g., status or terms changed).
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the extraction was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
