package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"noteref/pkg/domain"

	"github.com/google/uuid"
)

type PgExtraction struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	Content    string          `db:"content"`
	Status     string          `db:"status"`
	References json.RawMessage `db:"refs"`
	IndexTerms json.RawMessage `db:"index_terms" goqu:"skipinsert"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgExtraction) ToDomain() (*domain.Extraction, error) {
	var references domain.References
	if err := json.Unmarshal(p.References, &references); err != nil {
		return nil, fmt.Errorf("could not unmarshal references: %w", err)
	}

	var indexTerms []string
	if len(p.IndexTerms) > 0 {
		if err := json.Unmarshal(p.IndexTerms, &indexTerms); err != nil {
			return nil, fmt.Errorf("could not unmarshal index terms: %w", err)
		}
	}

	return &domain.Extraction{
		ID:         domain.ExtractionID(p.ID),
		UserID:     domain.UserID(p.UserID),
		Content:    p.Content,
		Status:     domain.ExtractionStatus(p.Status),
		References: references,
		IndexTerms: indexTerms,
		Attempts:   p.Attempts,
		LastError:  p.LastError.String,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt.Time,
		DeletedAt:  p.DeletedAt.Time,
	}, nil
}

func (p *PgExtraction) FromDomain(extraction domain.Extraction) error {
	references, err := json.Marshal(extraction.References)
	if err != nil {
		return fmt.Errorf("could not marshal references: %w", err)
	}

	var indexTerms json.RawMessage
	if extraction.IndexTerms != nil {
		indexTerms, err = json.Marshal(extraction.IndexTerms)
		if err != nil {
			return fmt.Errorf("could not marshal index terms: %w", err)
		}
	}

	*p = PgExtraction{
		ID:         uuid.UUID(extraction.ID),
		UserID:     uuid.UUID(extraction.UserID),
		Content:    extraction.Content,
		Status:     string(extraction.Status),
		References: references,
		IndexTerms: indexTerms,
		Attempts:   extraction.Attempts,
		LastError: sql.NullString{
			String: extraction.LastError,
			Valid:  extraction.LastError != "",
		},
		CreatedAt: extraction.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  extraction.UpdatedAt,
			Valid: !extraction.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  extraction.DeletedAt,
			Valid: !extraction.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainExtractionsToPg(extractions []domain.Extraction) ([]PgExtraction, error) {
	out := make([]PgExtraction, len(extractions))
	for i := range out {
		if err := out[i].FromDomain(extractions[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgExtractionsToDomain(extractions []PgExtraction) ([]domain.Extraction, error) {
	out := make([]domain.Extraction, 0, len(extractions))
	for _, extraction := range extractions {
		d, err := extraction.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
