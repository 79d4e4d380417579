package v1handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"noteref/pkg/domain"
	"noteref/pkg/serrors"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

const DefaultLimit = 20

// CreateExtraction submits a piece of content for reference extraction.
func (h Handler) CreateExtraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content, err := decodeCreateRequest(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	res, err := h.deps.Extractor.Submit(ctx, GetUserIDFromContext(ctx), content)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(w, http.StatusCreated, encodeExtraction(res))
}

// ListExtractions returns a paginated list of the caller's extractions.
func (h Handler) ListExtractions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := uint(DefaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			h.writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid limit"))

			return
		}
		limit = uint(parsed)
	}

	extractions, nextCursor, err := h.deps.Extractor.UserExtractions(ctx,
		GetUserIDFromContext(ctx),
		domain.ExtractionStatus(r.URL.Query().Get("status")),
		r.URL.Query().Get("cursor"),
		limit)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range extractions {
					e.Raw(encodeExtraction(&extractions[i]))
				}
			})
		})
		if nextCursor != "" {
			e.Field("nextCursor", func(e *jx.Encoder) { e.Str(nextCursor) })
		}
	})

	writeJSON(w, http.StatusOK, e.Bytes())
}

// GetExtraction returns one extraction by ID.
func (h Handler) GetExtraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := extractionIDFromPath(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	res, err := h.deps.Extractor.Result(ctx, GetUserIDFromContext(ctx), id)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(w, http.StatusOK, encodeExtraction(res))
}

// DeleteExtraction soft-deletes one extraction by ID.
func (h Handler) DeleteExtraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := extractionIDFromPath(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	if err := h.deps.Extractor.Delete(ctx, GetUserIDFromContext(ctx), id); err != nil {
		h.writeError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func extractionIDFromPath(r *http.Request) (domain.ExtractionID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return domain.ExtractionID{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid extraction id")
	}

	return domain.ExtractionID(id), nil
}

func decodeCreateRequest(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	var content string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "content":
			v, err := d.Str()
			if err != nil {
				return fmt.Errorf("could not decode content: %w", err)
			}
			content = v

			return nil
		default:
			return d.Skip() //nolint: wrapcheck
		}
	}); err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return content, nil
}

func encodeExtraction(in *domain.Extraction) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(uuid.UUID(in.ID).String()) })
		e.Field("userId", func(e *jx.Encoder) { e.Str(uuid.UUID(in.UserID).String()) })
		e.Field("content", func(e *jx.Encoder) { e.Str(in.Content) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(in.Status)) })
		e.Field("references", func(e *jx.Encoder) { encodeReferences(e, in.References) })
		if len(in.IndexTerms) > 0 {
			e.Field("indexTerms", func(e *jx.Encoder) { encodeStrings(e, in.IndexTerms) })
		}
		e.Field("attempts", func(e *jx.Encoder) { e.UInt(in.Attempts) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(in.CreatedAt.Format(time.RFC3339)) })
		if !in.UpdatedAt.IsZero() {
			e.Field("updatedAt", func(e *jx.Encoder) { e.Str(in.UpdatedAt.Format(time.RFC3339)) })
		}
	})

	return e.Bytes()
}

func encodeReferences(e *jx.Encoder, in domain.References) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("media", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, m := range in.Media {
					e.Obj(func(e *jx.Encoder) {
						e.Field("kind", func(e *jx.Encoder) { e.Str(string(m.Kind)) })
						e.Field("url", func(e *jx.Encoder) { e.Str(m.URL) })
						if m.Thumbnail != "" {
							e.Field("thumbnail", func(e *jx.Encoder) { e.Str(m.Thumbnail) })
						}
					})
				}
			})
		})
		e.Field("links", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range in.Links {
					e.Obj(func(e *jx.Encoder) {
						e.Field("url", func(e *jx.Encoder) { e.Str(l.URL) })
						if l.Domain != "" {
							e.Field("domain", func(e *jx.Encoder) { e.Str(l.Domain) })
						}
					})
				}
			})
		})
		e.Field("quoted", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, q := range in.Quoted {
					e.Obj(func(e *jx.Encoder) {
						e.Field("kind", func(e *jx.Encoder) { e.Str(string(q.Kind)) })
						e.Field("id", func(e *jx.Encoder) { e.Str(q.ID) })
						e.Field("raw", func(e *jx.Encoder) { e.Str(q.Raw) })
					})
				}
			})
		})
		e.Field("hashtags", func(e *jx.Encoder) { encodeStrings(e, in.Hashtags) })
		e.Field("mentions", func(e *jx.Encoder) { encodeStrings(e, in.Mentions) })
	})
}

func encodeStrings(e *jx.Encoder, in []string) {
	e.Arr(func(e *jx.Encoder) {
		for _, s := range in {
			e.Str(s)
		}
	})
}
