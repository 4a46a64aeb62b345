package drive

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workflowhub/internal/connectors/google"
	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	factory := google.NewServiceFactory(
		google.WithEndpoint(srv.URL+"/"),
		google.WithBaseHTTPClient(srv.Client()),
	)
	return NewFetcher(factory, google.NewRateLimiters(nil))
}

func TestFetcher_ListFiles(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/files"), r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "50", q.Get("pageSize"))
		assert.Equal(t, "modifiedTime desc", q.Get("orderBy"))
		assert.Equal(t, "trashed = false", q.Get("q"))
		assert.Equal(t, fileFields, q.Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files":[
			{"id":"f1","name":"Q1 plan","mimeType":"application/vnd.google-apps.document",
			 "modifiedTime":"2025-02-28T10:15:00.000Z","webViewLink":"https://docs.google.com/document/d/f1"},
			{"id":"f2","name":"budget.pdf","mimeType":"application/pdf","size":"2048",
			 "modifiedTime":"not a time"},
			{"id":"d1","name":"Clients","mimeType":"application/vnd.google-apps.folder"},
			{"name":"missing id"}
		]}`))
	})

	files, err := f.ListFiles(context.Background(), &domain.GoogleTokens{AccessToken: "a"})
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "f1", files[0].ID)
	assert.Equal(t, "Q1 plan", files[0].Name)
	assert.Equal(t, "https://docs.google.com/document/d/f1", files[0].WebViewLink)
	assert.True(t, files[0].ModifiedTime.Equal(time.Date(2025, 2, 28, 10, 15, 0, 0, time.UTC)))

	assert.Equal(t, int64(2048), files[1].Size)
	assert.True(t, files[1].ModifiedTime.IsZero())
	assert.False(t, files[1].IsFolder)

	assert.Equal(t, "d1", files[2].ID)
	assert.True(t, files[2].IsFolder)
}

func TestFetcher_ListFiles_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized requires reauth", status: http.StatusUnauthorized, want: domain.ErrReauthRequired},
		{name: "server error is upstream", status: http.StatusInternalServerError, want: domain.ErrUpstream},
		{name: "rate limit is upstream", status: http.StatusTooManyRequests, want: domain.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"boom"}}`, tt.status)
			})

			_, err := f.ListFiles(context.Background(), &domain.GoogleTokens{AccessToken: "a"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
