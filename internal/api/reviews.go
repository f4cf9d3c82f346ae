package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/HamdySalah/carelink/internal/errs"
	"github.com/HamdySalah/carelink/internal/model"
)

// ReviewInput rates the other side of a completed request.
type ReviewInput struct {
	RequestID uuid.UUID `json:"requestId"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
}

// SubmitReview posts a review. Reviewing the same request twice yields
// KindReviewExists.
func (c *Client) SubmitReview(ctx context.Context, in ReviewInput) (*model.Review, error) {
	var r model.Review
	if err := c.post(ctx, "/reviews", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// RequestReviews fetches the reviews left on a request. The reviews
// endpoint has moved across backend revisions, so unknown paths are
// probed in order until one answers; only a 404 moves on to the next.
func (c *Client) RequestReviews(ctx context.Context, requestID uuid.UUID) ([]model.Review, error) {
	id := requestID.String()
	paths := []string{
		"/reviews/request/" + id,
		"/ratings/" + id,
		"/requests/" + id + "/reviews",
	}

	var lastErr error
	for _, p := range paths {
		var raws []json.RawMessage
		err := c.get(ctx, p, &raws)
		if err != nil {
			var ce *errs.ClassifiedError
			if errors.As(err, &ce) && ce.Kind() == errs.KindResourceNotFound {
				lastErr = err
				continue
			}
			return nil, err
		}
		out := make([]model.Review, 0, len(raws))
		for _, raw := range raws {
			out = append(out, decodeReview(raw))
		}
		return out, nil
	}
	return nil, lastErr
}

// decodeReview maps one review object to the model, coalescing the field
// names different backend revisions have used for the rating and comment.
func decodeReview(raw json.RawMessage) model.Review {
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil {
		return model.Review{}
	}
	return model.Review{
		ID:        pickUUID(fields, "id"),
		RequestID: pickUUID(fields, "requestId", "request_id"),
		RaterID:   pickUUID(fields, "raterId", "reviewerId"),
		RateeID:   pickUUID(fields, "rateeId", "revieweeId"),
		Rating:    pickInt(fields, "rating", "stars", "score"),
		Comment:   pickString(fields, "comment", "review", "feedback"),
		CreatedAt: pickTime(fields, "createdAt", "created_at"),
	}
}

func pickString(fields map[string]json.RawMessage, names ...string) string {
	for _, n := range names {
		raw, ok := fields[n]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

func pickInt(fields map[string]json.RawMessage, names ...string) int {
	for _, n := range names {
		raw, ok := fields[n]
		if !ok {
			continue
		}
		// some revisions sent the rating as a float, some as a string
		var f float64
		if json.Unmarshal(raw, &f) == nil {
			return int(f)
		}
		var s string
		if json.Unmarshal(raw, &s) == nil {
			var n2 float64
			if json.Unmarshal([]byte(s), &n2) == nil {
				return int(n2)
			}
		}
	}
	return 0
}

func pickUUID(fields map[string]json.RawMessage, names ...string) uuid.UUID {
	if s := pickString(fields, names...); s != "" {
		if id, err := uuid.FromString(s); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func pickTime(fields map[string]json.RawMessage, names ...string) time.Time {
	if s := pickString(fields, names...); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
