package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"noteref/pkg/domain"
	"noteref/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	extractionsTable = "extractions"
)

func (p *PgSQL) StoreExtractions(ctx context.Context, extractions ...domain.Extraction) ([]domain.Extraction, error) {
	if len(extractions) == 0 {
		return nil, nil
	}

	pgExtractions, err := domainExtractionsToPg(extractions)
	if err != nil {
		return nil, err
	}

	var result []PgExtraction
	if err := p.Builder.Insert(extractionsTable).
		Rows(pgExtractions).
		Returning(&PgExtraction{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store extractions into pg: %w", err)
	}

	return pgExtractionsToDomain(result)
}

// UpdateExtractionByID updates a single extraction by its ID with the provided
// fields and returns the updated row. Attempts is incremented by 1 and
// updated_at is set. When updates carry a Failed status together with a
// positive MaxAttempts, the status only transitions to Failed once the
// incremented attempts exceed that threshold; otherwise it stays as it was.
// Soft-deleted rows are ignored.
func (p *PgSQL) UpdateExtractionByID(ctx context.Context,
	id domain.ExtractionID,
	updates storage.ExtractionUpdates) (*domain.Extraction, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"attempts":   goqu.L("attempts + 1"),
	}
	if updates.Status == domain.ExtractionStatusFailed && updates.MaxAttempts > 0 {
		rec["status"] = goqu.L("CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
			updates.MaxAttempts, string(domain.ExtractionStatusFailed))
	} else {
		rec["status"] = updates.Status
	}
	if updates.IndexTerms != nil {
		b, err := json.Marshal(*updates.IndexTerms)
		if err != nil {
			return nil, fmt.Errorf("could not marshal index terms: %w", err)
		}

		rec["index_terms"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgExtraction
	found, err := p.Builder.Update(extractionsTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgExtraction{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update extraction by id in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteExtraction performs a soft delete by setting deleted_at timestamp
// for a given extraction id and user, returning the deleted record.
func (p *PgSQL) DeleteExtraction(ctx context.Context,
	userID domain.UserID,
	id domain.ExtractionID) (*domain.Extraction, error) {
	var row PgExtraction
	found, err := p.Builder.Update(extractionsTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgExtraction{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete extraction in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserExtractions returns a page of extractions for a user filtered by an
// optional status and cursor, limited by limit. Results are ordered by
// created_at DESC, id DESC. A next cursor is returned when more rows exist.
func (p *PgSQL) UserExtractions(ctx context.Context,
	userID domain.UserID,
	status domain.ExtractionStatus,
	cursor time.Time,
	limit uint) (storage.UserExtractions, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(extractionsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgExtraction
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserExtractions{}, fmt.Errorf("could not fetch user extractions from pg: %w", err)
	}

	// if we fetched more than the limit, there is a next page
	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	domainRows, err := pgExtractionsToDomain(rows)
	if err != nil {
		return storage.UserExtractions{}, err
	}

	return storage.UserExtractions{
		Extractions: domainRows,
		NextCursor:  nextCursor,
	}, nil
}

// ExtractionByID returns an extraction by its ID for the given user,
// excluding soft-deleted rows.
func (p *PgSQL) ExtractionByID(ctx context.Context,
	userID domain.UserID,
	id domain.ExtractionID) (*domain.Extraction, error) {
	var row PgExtraction
	found, err := p.Builder.From(extractionsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch extraction by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// ExtractionByIDAnyUser returns an extraction by its ID regardless of owner,
// excluding soft-deleted rows. Intended for background workers.
func (p *PgSQL) ExtractionByIDAnyUser(ctx context.Context, id domain.ExtractionID) (*domain.Extraction, error) {
	var row PgExtraction
	found, err := p.Builder.From(extractionsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch extraction by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
