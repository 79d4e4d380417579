package extractor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"noteref/internal/extractor"
	"noteref/pkg/dispatch"
	"noteref/pkg/domain"
	"noteref/pkg/serrors"
	"noteref/pkg/storage"

	mockstorage "noteref/pkg/storage/mock"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

const content = "hello #world https://example.com/cat.png"

func newTestExtractor(t *testing.T) (*gomock.Controller,
	*mockstorage.MockStorage,
	*dispatch.Dispatcher[extractor.ExtractionCompleted],
	extractor.Extractor) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	completed := dispatch.New[extractor.ExtractionCompleted]("extraction completed")
	e := extractor.New(st, completed, extractor.Options{MaxContentBytes: 1024, MaxAttempts: 3})

	return ctrl, st, completed, e
}

// helper to wire Storage.WithTx to execute callback with a MockAllStorage.
func expectWithTx(
	t *testing.T,
	ctrl *gomock.Controller,
	m *mockstorage.MockStorage,
	fn func(tx *mockstorage.MockAllStorage)) {
	t.Helper()

	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			// provide a tx mock that implements AllStorage
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func TestExtractor_Submit_StoresReferencesAndEnqueues(t *testing.T) {
	ctrl, st, completed, e := newTestExtractor(t)

	var published []extractor.ExtractionCompleted
	completed.Subscribe(func(_ context.Context, ev extractor.ExtractionCompleted) {
		published = append(published, ev)
	})

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreExtractions(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, extractions ...domain.Extraction) ([]domain.Extraction, error) {
				if len(extractions) != 1 {
					t.Fatalf("expected one extraction input")
				}
				ret := extractions
				ret[0].ID = domain.ExtractionID(uuid.New())

				return ret, nil
			},
		)
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).Return(true, nil)
	})

	res, err := e.Submit(context.Background(), domain.UserID{}, content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatalf("expected extraction, got nil")
	}
	if res.Content != content {
		t.Fatalf("expected content %q got %q", content, res.Content)
	}
	if res.Status != domain.ExtractionStatusPending {
		t.Fatalf("expected status PENDING, got %s", res.Status)
	}
	if len(res.References.Hashtags) != 1 || res.References.Hashtags[0] != "world" {
		t.Fatalf("unexpected hashtags: %+v", res.References.Hashtags)
	}
	if len(res.References.Media) != 1 || res.References.Media[0].Kind != domain.MediaKindImage {
		t.Fatalf("unexpected media: %+v", res.References.Media)
	}
	if len(published) != 1 || published[0].Extraction.ID != res.ID {
		t.Fatalf("expected one ExtractionCompleted event for the stored extraction")
	}
}

func TestExtractor_Submit_EmptyContent(t *testing.T) {
	_, st, _, e := newTestExtractor(t)

	_, err := e.Submit(context.Background(), domain.UserID{}, "")
	if err == nil || !errors.Is(err, serrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
	// ensure no calls were made on storage
	st.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(0)
}

func TestExtractor_Submit_OversizedContent(t *testing.T) {
	_, st, _, e := newTestExtractor(t)

	big := make([]byte, 1025)
	for i := range big {
		big[i] = 'a'
	}

	_, err := e.Submit(context.Background(), domain.UserID{}, string(big))
	if err == nil || !errors.Is(err, serrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
	st.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(0)
}

func TestExtractor_Submit_PropagatesErrors(t *testing.T) {
	ctrl, st, completed, e := newTestExtractor(t)

	var published int
	completed.Subscribe(func(_ context.Context, _ extractor.ExtractionCompleted) { published++ })

	// error from StoreExtractions
	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreExtractions(gomock.Any(), gomock.Any()).Return(nil, errors.New("store err"))
	})
	if _, err := e.Submit(context.Background(), domain.UserID{}, content); err == nil {
		t.Fatalf("expected error from StoreExtractions")
	}

	// error from AddJob
	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreExtractions(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, extractions ...domain.Extraction) ([]domain.Extraction, error) {
				return extractions, nil
			},
		)
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).Return(false, errors.New("add err"))
	})
	if _, err := e.Submit(context.Background(), domain.UserID{}, content); err == nil {
		t.Fatalf("expected error from AddJob")
	}

	// no events for failed submissions
	if published != 0 {
		t.Fatalf("expected no ExtractionCompleted events, got %d", published)
	}
}

func TestExtractor_UserExtractions_SuccessAndPagination(t *testing.T) {
	_, st, _, e := newTestExtractor(t)
	userID := domain.UserID{}
	status := domain.ExtractionStatusPending
	cursorTime := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	cursor := cursorTime.Format(time.RFC3339)

	page := storage.UserExtractions{
		Extractions: []domain.Extraction{{Content: "a"}},
		NextCursor: func() *time.Time {
			t := cursorTime.Add(-time.Minute)

			return &t
		}(),
	}

	st.EXPECT().UserExtractions(gomock.Any(), userID, status, cursorTime, uint(10)).Return(page, nil)

	extractions, next, err := e.UserExtractions(context.Background(), userID, status, cursor, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(extractions) != 1 || extractions[0].Content != "a" {
		t.Fatalf("unexpected extractions: %+v", extractions)
	}
	if next == "" {
		t.Fatalf("expected next cursor, got empty")
	}
}

func TestExtractor_UserExtractions_InvalidCursor(t *testing.T) {
	_, _, _, e := newTestExtractor(t)
	_, _, err := e.UserExtractions(context.Background(), domain.UserID{}, "", "not-a-time", 5)
	if err == nil || !errors.Is(err, serrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestExtractor_Result(t *testing.T) {
	_, st, _, e := newTestExtractor(t)
	userID := domain.UserID{}
	id := domain.ExtractionID{}

	// found
	st.EXPECT().ExtractionByID(gomock.Any(), userID, id).Return(&domain.Extraction{Content: "x"}, nil)
	res, err := e.Result(context.Background(), userID, id)
	if err != nil || res == nil || res.Content != "x" {
		t.Fatalf("unexpected: res=%+v err=%v", res, err)
	}

	// not found
	st.EXPECT().ExtractionByID(gomock.Any(), userID, id).Return(nil, nil)
	_, err = e.Result(context.Background(), userID, id)
	if err == nil || !errors.Is(err, serrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// storage error
	st.EXPECT().ExtractionByID(gomock.Any(), userID, id).Return(nil, errors.New("boom"))
	_, err = e.Result(context.Background(), userID, id)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestExtractor_Delete(t *testing.T) {
	_, st, _, e := newTestExtractor(t)
	userID := domain.UserID{}
	id := domain.ExtractionID{}

	// success
	st.EXPECT().DeleteExtraction(gomock.Any(), userID, id).Return(&domain.Extraction{}, nil)
	if err := e.Delete(context.Background(), userID, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// not found
	st.EXPECT().DeleteExtraction(gomock.Any(), userID, id).Return(nil, nil)
	err := e.Delete(context.Background(), userID, id)
	if err == nil || !errors.Is(err, serrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// storage error
	st.EXPECT().DeleteExtraction(gomock.Any(), userID, id).Return(nil, errors.New("boom"))
	if err := e.Delete(context.Background(), userID, id); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
