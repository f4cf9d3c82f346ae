package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HamdySalah/carelink/internal/errs"
)

func TestRequestReviews_EndpointFallback(t *testing.T) {
	t.Parallel()

	var hits []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		// only the newest path answers; older ones 404
		if !strings.HasSuffix(r.URL.Path, "/reviews") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Cannot GET"}`))
			return
		}
		// legacy field names: stars + feedback
		_, _ = w.Write([]byte(`{"data":[{"stars":4,"feedback":"very attentive"},{"rating":"5","comment":"great"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	reviews, err := c.RequestReviews(context.Background(), mustID(t))
	require.NoError(t, err)
	require.Len(t, hits, 3, "two 404 probes then the live endpoint")

	require.Len(t, reviews, 2)
	require.Equal(t, 4, reviews[0].Rating)
	require.Equal(t, "very attentive", reviews[0].Comment)
	require.Equal(t, 5, reviews[1].Rating, "string ratings are coalesced")
	require.Equal(t, "great", reviews[1].Comment)
}

func TestRequestReviews_AllEndpointsGone(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.RequestReviews(context.Background(), mustID(t))
	require.Error(t, err)
	require.Equal(t, errs.KindResourceNotFound, errs.Ensure(err).Kind())
}

func TestRequestReviews_NonNotFoundStopsProbing(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.RequestReviews(context.Background(), mustID(t))
	require.Error(t, err)
	require.Equal(t, errs.KindServerError, errs.Ensure(err).Kind())
	require.Equal(t, 1, hits, "server errors must not cascade through every path")
}
