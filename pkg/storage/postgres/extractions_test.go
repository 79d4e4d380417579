package postgres_test

import (
	"context"
	"testing"
	"time"

	"noteref/pkg/domain"
	"noteref/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testExtraction(userID domain.UserID, content string) domain.Extraction {
	return domain.Extraction{
		UserID:  userID,
		Content: content,
		Status:  domain.ExtractionStatusPending,
		References: domain.References{
			Links:    []domain.LinkReference{{URL: "https://example.com/a", Domain: "example.com"}},
			Hashtags: []string{"tag"},
		},
	}
}

func TestPgSQL_StoreExtractions(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	t.Run("store single extraction", func(t *testing.T) {
		res, err := pgSQL.StoreExtractions(ctx, testExtraction(userID, "hello #tag https://example.com/a"))
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, "hello #tag https://example.com/a", res[0].Content)
		require.Equal(t, domain.ExtractionStatusPending, res[0].Status)
		require.Equal(t, []string{"tag"}, res[0].References.Hashtags)
		require.NotEqual(t, domain.ExtractionID(uuid.Nil), res[0].ID)
	})

	t.Run("store multiple extractions", func(t *testing.T) {
		res, err := pgSQL.StoreExtractions(ctx,
			testExtraction(userID, "first"),
			testExtraction(userID, "second"))
		require.NoError(t, err)
		require.Len(t, res, 2)
	})

	t.Run("store no extractions", func(t *testing.T) {
		res, err := pgSQL.StoreExtractions(ctx)
		require.NoError(t, err)
		require.Empty(t, res)
	})
}

func TestPgSQL_UpdateExtractionByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	stored, err := pgSQL.StoreExtractions(ctx, testExtraction(userID, "content"))
	require.NoError(t, err)
	id := stored[0].ID

	t.Run("sets terms, status and increments attempts", func(t *testing.T) {
		terms := []string{"tag", "example.com"}
		updated, err := pgSQL.UpdateExtractionByID(ctx, id, storage.ExtractionUpdates{
			Status:     domain.ExtractionStatusIndexed,
			IndexTerms: &terms,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, domain.ExtractionStatusIndexed, updated.Status)
		require.Equal(t, terms, updated.IndexTerms)
		require.Equal(t, uint(1), updated.Attempts)
	})

	t.Run("failed status respects max attempts guard", func(t *testing.T) {
		row, err := pgSQL.StoreExtractions(ctx, testExtraction(userID, "guarded"))
		require.NoError(t, err)

		lastError := "boom"
		// first failure: attempts goes to 1, below the threshold of 3
		updated, err := pgSQL.UpdateExtractionByID(ctx, row[0].ID, storage.ExtractionUpdates{
			Status:      domain.ExtractionStatusFailed,
			LastError:   &lastError,
			MaxAttempts: 3,
		})
		require.NoError(t, err)
		require.Equal(t, domain.ExtractionStatusPending, updated.Status)
		require.Equal(t, "boom", updated.LastError)

		// exhaust the remaining attempts
		for i := 0; i < 2; i++ {
			updated, err = pgSQL.UpdateExtractionByID(ctx, row[0].ID, storage.ExtractionUpdates{
				Status:      domain.ExtractionStatusFailed,
				LastError:   &lastError,
				MaxAttempts: 3,
			})
			require.NoError(t, err)
		}
		require.Equal(t, domain.ExtractionStatusFailed, updated.Status)
		require.Equal(t, uint(3), updated.Attempts)
	})

	t.Run("unknown id returns nil", func(t *testing.T) {
		updated, err := pgSQL.UpdateExtractionByID(ctx, domain.ExtractionID(uuid.New()), storage.ExtractionUpdates{
			Status: domain.ExtractionStatusIndexed,
		})
		require.NoError(t, err)
		require.Nil(t, updated)
	})
}

func TestPgSQL_DeleteExtraction(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	stored, err := pgSQL.StoreExtractions(ctx, testExtraction(userID, "to delete"))
	require.NoError(t, err)
	id := stored[0].ID

	t.Run("delete existing", func(t *testing.T) {
		deleted, err := pgSQL.DeleteExtraction(ctx, userID, id)
		require.NoError(t, err)
		require.NotNil(t, deleted)

		// row is gone from reads
		got, err := pgSQL.ExtractionByID(ctx, userID, id)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("delete twice returns nil", func(t *testing.T) {
		deleted, err := pgSQL.DeleteExtraction(ctx, userID, id)
		require.NoError(t, err)
		require.Nil(t, deleted)
	})

	t.Run("wrong user returns nil", func(t *testing.T) {
		row, err := pgSQL.StoreExtractions(ctx, testExtraction(userID, "other"))
		require.NoError(t, err)

		deleted, err := pgSQL.DeleteExtraction(ctx, domain.UserID(uuid.New()), row[0].ID)
		require.NoError(t, err)
		require.Nil(t, deleted)
	})
}

func TestPgSQL_UserExtractions(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	for i := 0; i < 5; i++ {
		_, err := pgSQL.StoreExtractions(ctx, testExtraction(userID, "row"))
		require.NoError(t, err)
		// created_at has to differ for cursor pagination to be deterministic
		time.Sleep(10 * time.Millisecond)
	}

	t.Run("pagination with cursor", func(t *testing.T) {
		page, err := pgSQL.UserExtractions(ctx, userID, "", time.Time{}, 3)
		require.NoError(t, err)
		require.Len(t, page.Extractions, 3)
		require.NotNil(t, page.NextCursor)

		rest, err := pgSQL.UserExtractions(ctx, userID, "", *page.NextCursor, 3)
		require.NoError(t, err)
		require.Len(t, rest.Extractions, 2)
		require.Nil(t, rest.NextCursor)
	})

	t.Run("status filter", func(t *testing.T) {
		page, err := pgSQL.UserExtractions(ctx, userID, domain.ExtractionStatusIndexed, time.Time{}, 10)
		require.NoError(t, err)
		require.Empty(t, page.Extractions)

		page, err = pgSQL.UserExtractions(ctx, userID, domain.ExtractionStatusPending, time.Time{}, 10)
		require.NoError(t, err)
		require.Len(t, page.Extractions, 5)
	})

	t.Run("other user sees nothing", func(t *testing.T) {
		page, err := pgSQL.UserExtractions(ctx, domain.UserID(uuid.New()), "", time.Time{}, 10)
		require.NoError(t, err)
		require.Empty(t, page.Extractions)
	})
}

func TestPgSQL_ExtractionByIDAnyUser(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	stored, err := pgSQL.StoreExtractions(ctx, testExtraction(domain.UserID(uuid.New()), "worker read"))
	require.NoError(t, err)

	got, err := pgSQL.ExtractionByIDAnyUser(ctx, stored[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "worker read", got.Content)

	missing, err := pgSQL.ExtractionByIDAnyUser(ctx, domain.ExtractionID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, missing)
}
