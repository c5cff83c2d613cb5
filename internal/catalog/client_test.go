package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "pokeapi.co", u.Host)
	assert.Equal(t, "/api/v2", u.Path)

	u, err = parseBaseURL("127.0.0.1:8089/api/v2/?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8089/api/v2", u.String())

	_, err = parseBaseURL("http://")
	assert.Error(t, err)
}

func newTestClient(t *testing.T, handler http.Handler, ttl time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL + "/api/v2", CacheTTL: ttl})
	require.NoError(t, err)
	return c
}

func writeList(w http.ResponseWriter, next *string, names ...string) {
	payload := listResponse{Count: len(names), Next: next}
	for i, name := range names {
		payload.Results = append(payload.Results, EntityRef{Name: name, URL: "/api/v2/pokemon/" + string(rune('1'+i)) + "/"})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func strPtr(s string) *string { return &s }

func TestClient_FetchPageEncodesQueryAndParsesNext(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotPath, gotUserAgent string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		writeList(w, strPtr("http://example.test/api/v2/pokemon?offset=40&limit=20"), "charmander", "charmeleon")
	}), 0)

	page, err := c.FetchPage(context.Background(), "  Char ", Cursor{Offset: 20, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/pokemon", gotPath)
	assert.Equal(t, "20", gotQuery.Get("offset"))
	assert.Equal(t, "20", gotQuery.Get("limit"))
	assert.Equal(t, "Char", gotQuery.Get("search"))
	assert.True(t, strings.HasPrefix(gotUserAgent, "pokedexter/"), "User-Agent = %q", gotUserAgent)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "charmander", page.Items[0].Name)
	require.NotNil(t, page.Next)
	assert.Equal(t, Cursor{Offset: 40, Limit: 20}, *page.Next)
}

func TestClient_FetchPageOmitsEmptySearch(t *testing.T) {
	t.Parallel()

	var hasSearch bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSearch = r.URL.Query()["search"]
		writeList(w, nil, "bulbasaur")
	}), 0)

	page, err := c.FetchPage(context.Background(), "", Cursor{Limit: 20})
	require.NoError(t, err)
	assert.False(t, hasSearch, "search parameter should be omitted for an empty filter")
	assert.Nil(t, page.Next, "null next should mean no more pages")
}

func TestClient_FetchPageFiltersLocally(t *testing.T) {
	t.Parallel()

	// An upstream that ignores the search parameter.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeList(w, strPtr("offset=3&limit=3"), "bulbasaur", "Charmander", "squirtle")
	}), 0)

	page, err := c.FetchPage(context.Background(), "char", Cursor{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Charmander", page.Items[0].Name)
	require.NotNil(t, page.Next)
	assert.Equal(t, 3, page.Next.Offset)
	assert.Zero(t, page.Count, "upstream count covers unfiltered results")
}

func TestClient_FetchPageKeepsCountWhenUpstreamFilters(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeList(w, nil, "charmander", "charmeleon")
	}), 0)

	page, err := c.FetchPage(context.Background(), "char", Cursor{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Count)
}

func TestClient_FetchPageKeepsItemsOnNonAdvancingNext(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeList(w, strPtr("offset=0&limit=20"), "charmander")
	}), 0)

	page, err := c.FetchPage(context.Background(), "char", Cursor{Limit: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Next)
	assert.Equal(t, Cursor{Offset: 0, Limit: 20}, *page.Next)
}

func TestClient_FetchPageRejectsInvalidCursor(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "127.0.0.1:1"})
	require.NoError(t, err)

	_, err = c.FetchPage(context.Background(), "", Cursor{Limit: 0})
	assert.Error(t, err)
	_, err = c.FetchPage(context.Background(), "", Cursor{Offset: -1, Limit: 5})
	assert.Error(t, err)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("offset") {
		case "0":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "2":
			writeList(w, strPtr("offset=abc"), "pikachu")
		default:
			http.NotFound(w, r)
		}
	}), 0)

	ctx := context.Background()

	_, err := c.FetchPage(ctx, "", Cursor{Offset: 0, Limit: 1})
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr), "error = %v, want UpstreamError", err)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Contains(t, err.Error(), "returned status 500")
	assert.Equal(t, KindUpstream, Kind(err))

	_, err = c.FetchPage(ctx, "", Cursor{Offset: 1, Limit: 1})
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "error = %v, want ParseError", err)
	assert.Equal(t, KindParse, Kind(err))

	_, err = c.FetchPage(ctx, "", Cursor{Offset: 2, Limit: 1})
	assert.Equal(t, KindParse, Kind(err), "bad next link should be a parse error")
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c, err := NewClient(Options{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.FetchPage(context.Background(), "", Cursor{Limit: 1})
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "error = %v, want NetworkError", err)
	assert.Equal(t, KindNetwork, Kind(err))

	_, err = c.FetchDetail(context.Background(), base+"/pokemon/25/")
	assert.Equal(t, KindNetwork, Kind(err))
}

func TestClient_FetchDetail(t *testing.T) {
	t.Parallel()

	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"height": 4, "weight": 60,
			"abilities": [{"ability": {"name": "static"}}, {"ability": {"name": "lightning-rod"}}],
			"types": [{"slot": 1, "type": {"name": "electric"}}]
		}`))
	}), 0)

	detail, err := c.FetchDetail(context.Background(), "/pokemon/25/")
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/pokemon/25/", gotPath, "relative detail url should resolve under the base path")
	assert.Equal(t, 4, detail.HeightDecimetres)
	assert.Equal(t, 60, detail.WeightHectograms)
	assert.Equal(t, []string{"static", "lightning-rod"}, detail.Abilities)
	assert.Equal(t, []string{"electric"}, detail.Types)
}

func TestClient_FetchDetailCancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"height": 6, "weight": 85, "abilities": [], "types": [{"type": {"name": "fire"}}]}`))
	}), 0)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.FetchDetail(first, "/pokemon/4/")
		firstErr <- err
	}()
	<-started

	type result struct {
		detail Detail
		err    error
	}
	second := make(chan result, 1)
	go func() {
		d, err := c.FetchDetail(context.Background(), "/pokemon/4/")
		second <- result{d, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	err := <-firstErr
	assert.Equal(t, KindNetwork, Kind(err))
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, 6, res.detail.HeightDecimetres)
	assert.Equal(t, []string{"fire"}, res.detail.Types)
}

func TestClient_FetchDetailUpstreamError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}), 0)

	_, err := c.FetchDetail(context.Background(), "/pokemon/25/")
	assert.Equal(t, KindUpstream, Kind(err))

	_, err = c.FetchDetail(context.Background(), "  ")
	assert.Error(t, err)
}

func TestClient_CacheServesRepeatedRequests(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if strings.Contains(r.URL.Path, "/pokemon/") {
			_, _ = w.Write([]byte(`{"height": 7, "weight": 69}`))
			return
		}
		writeList(w, nil, "bulbasaur")
	}), time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		page, err := c.FetchPage(ctx, "bulb", Cursor{Limit: 20})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		page.Items[0].Name = "mutated"
	}
	for i := 0; i < 2; i++ {
		_, err := c.FetchDetail(ctx, "/pokemon/1/")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load(), "one list and one detail request expected")

	page, err := c.FetchPage(ctx, "bulb", Cursor{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, "bulbasaur", page.Items[0].Name, "cached page must not share memory with callers")
}

func TestClient_NoCacheByDefault(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeList(w, nil, "bulbasaur")
	}), 0)

	for i := 0; i < 2; i++ {
		_, err := c.FetchPage(context.Background(), "", Cursor{Limit: 20})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}
