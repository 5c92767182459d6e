package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return Client{BaseURL: server.URL, HTTPClient: server.Client()}, &hits
}

func TestSearchRejectsBlankQueryWithoutRequest(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.Search(context.Background(), "  \t ")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, int32(0), hits.Load())
}

func TestSearchTokyoScenario(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search/Tokyo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Name":"Tokyo","Tags":"city"}]`))
	})

	results, err := client.Search(context.Background(), "Tokyo")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tokyo", results[0].NameOrEmpty())
	assert.Equal(t, "city", *results[0].Tags)
	assert.Nil(t, results[0].ImageURL)
	assert.Empty(t, results[0].Extra)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSearchEscapesQueryIntoPath(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/New%20York%2FNJ%3F", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`[]`))
	})

	results, err := client.Search(context.Background(), "New York/NJ?")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchDecodesPermissively(t *testing.T) {
	t.Parallel()

	body := `[
		{"id":7,"NAME":"Kyoto","url":"https://kyoto.example","phone":"+81 75","Address":"Kyoto, Japan","score":"0.9","imageUrl":"https://img.example/kyoto.jpg","Country":"Japan","open":true},
		{"Name":"Osaka","score":0.5,"image_url":null,"Tags":["food"]},
		"not an object",
		42
	]`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	results, err := client.Search(context.Background(), "japan")
	require.NoError(t, err)
	require.Len(t, results, 4)

	kyoto := results[0]
	assert.Equal(t, "7", *kyoto.ID)
	assert.Equal(t, "Kyoto", kyoto.NameOrEmpty())
	assert.Equal(t, "https://kyoto.example", *kyoto.URL)
	assert.Equal(t, "+81 75", *kyoto.Phone)
	assert.Equal(t, "Kyoto, Japan", *kyoto.Address)
	assert.InDelta(t, 0.9, *kyoto.Score, 1e-9)
	assert.Equal(t, "https://img.example/kyoto.jpg", kyoto.ImageURLOrEmpty())
	assert.Equal(t, map[string]json.RawMessage{
		"Country": json.RawMessage(`"Japan"`),
		"open":    json.RawMessage(`true`),
	}, kyoto.Extra)

	osaka := results[1]
	assert.Equal(t, "Osaka", osaka.NameOrEmpty())
	assert.InDelta(t, 0.5, *osaka.Score, 1e-9)
	assert.Nil(t, osaka.ImageURL)
	assert.Nil(t, osaka.Tags)
	assert.Equal(t, json.RawMessage(`["food"]`), osaka.Extra["Tags"])

	assert.Equal(t, domain.AttractionResult{}, results[2])
	assert.Equal(t, domain.AttractionResult{}, results[3])
}

func TestSearchRejectsNonArrayBody(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"results":[]}`, `not json`, `"Tokyo"`} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})

		_, err := client.Search(context.Background(), "Tokyo")
		require.Error(t, err, body)
	}
}

func TestSearchReturnsRemoteErrorOnce(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	})

	_, err := client.Search(context.Background(), "Tokyo")
	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusServiceUnavailable, remote.StatusCode)
	assert.Equal(t, "model overloaded", remote.Body)
	assert.ErrorContains(t, err, "API error: 503 model overloaded")
	assert.Equal(t, int32(1), hits.Load())
}

func TestSearchHonoursCallerCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := client.Search(ctx, "Tokyo")
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, domain.IsCanceled(err))
}

func TestSearchRequestTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })
	client.RequestTimeout = 30 * time.Millisecond

	_, err := client.Search(context.Background(), "Tokyo")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{name: "url", status: http.StatusOK, body: `{"image_url":"https://img.example/tokyo.jpg"}`, want: "https://img.example/tokyo.jpg"},
		{name: "camel case key", status: http.StatusOK, body: `{"imageUrl":" https://img.example/t.jpg "}`, want: "https://img.example/t.jpg"},
		{name: "null image", status: http.StatusOK, body: `{"image_url":null}`, wantErr: domain.ErrNoImage},
		{name: "empty image", status: http.StatusOK, body: `{"image_url":""}`, wantErr: domain.ErrNoImage},
		{name: "missing key", status: http.StatusOK, body: `{}`, wantErr: domain.ErrNoImage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/image-search", r.URL.Path)
				assert.Equal(t, "Tokyo Tower", r.URL.Query().Get("query"))
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			got, err := client.FetchImage(context.Background(), "Tokyo Tower")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFetchImageRemoteFailure(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchImage(context.Background(), "Atlantis")
	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.StatusCode)
	assert.NotErrorIs(t, err, domain.ErrNoImage)
}

func TestBuildAPIURLValidatesBase(t *testing.T) {
	t.Parallel()

	_, err := buildAPIURL("", "/search/x", nil)
	assert.ErrorContains(t, err, "api base url is required")

	_, err = buildAPIURL("ftp://example.com", "/search/x", nil)
	assert.ErrorContains(t, err, "must use http or https")

	got, err := buildAPIURL("http://localhost:8000", "/api/image-search", map[string][]string{"query": {"a b"}})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/image-search?query=a+b", got)
}

func TestBuildAPIURLKeepsBasePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "no path", base: "http://host", path: "/search/Tokyo", want: "http://host/search/Tokyo"},
		{name: "prefix", base: "http://host/compass-api", path: "/search/Tokyo", want: "http://host/compass-api/search/Tokyo"},
		{name: "trailing slash", base: "http://host/compass-api/", path: "/api/image-search", want: "http://host/compass-api/api/image-search"},
		{name: "escaped query", base: "https://host/v1", path: "/search/New%20York%2FNJ", want: "https://host/v1/search/New%20York%2FNJ"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildAPIURL(tc.base, tc.path, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSearchUnderBasePath(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/compass-api/search/Tokyo", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	})
	client.BaseURL += "/compass-api"

	_, err := client.Search(context.Background(), "Tokyo")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
