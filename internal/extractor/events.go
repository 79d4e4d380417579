package extractor

import "noteref/pkg/domain"

// ExtractionCompleted is published once a submission has been extracted and
// committed. Subscribers see the stored extraction with its references; the
// indexing job may or may not have run yet.
type ExtractionCompleted struct {
	Extraction domain.Extraction
}

// ExtractionIndexed is published by the indexing worker after an extraction
// transitions to INDEXED.
type ExtractionIndexed struct {
	ExtractionID domain.ExtractionID
	UserID       domain.UserID
	IndexTerms   []string
}
