package extractor

import (
	"context"

	"noteref/pkg/domain"
)

//go:generate mockgen -package mockextractor -source=interface.go -destination=mock/mockextractor.go *
type Extractor interface {
	Submit(ctx context.Context, userID domain.UserID, content string) (*domain.Extraction, error)
	UserExtractions(ctx context.Context,
		userID domain.UserID,
		status domain.ExtractionStatus,
		cursor string,
		limit uint) ([]domain.Extraction, string, error)
	Result(ctx context.Context, userID domain.UserID, extractionID domain.ExtractionID) (*domain.Extraction, error)
	Delete(ctx context.Context, userID domain.UserID, extractionID domain.ExtractionID) error
}
