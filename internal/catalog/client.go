package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Fetcher defines the catalog operations the list controller and detail cards
// rely on. It is implemented by *Client and can be faked in tests.
type Fetcher interface {
	FetchPage(ctx context.Context, filter string, cursor Cursor) (Page, error)
	FetchDetail(ctx context.Context, detailURL string) (Detail, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the catalog REST API.
type Client struct {
	baseURL   *url.URL
	listPath  string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	cache     *responseCache
	details   singleflight.Group
}

const (
	// DefaultBaseURL is the public PokeAPI.
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	// DefaultListPath is appended to the base URL for list requests.
	DefaultListPath = "/pokemon"

	defaultUserAgent = "pokedexter/0.1"
	requestTimeout   = 10 * time.Second
	maxBodyBytes     = 4 << 20
)

// Options configure a Client. Zero values select defaults.
type Options struct {
	BaseURL  string
	ListPath string
	Timeout  time.Duration
	// CacheTTL enables an in-memory cache of pages and details when positive.
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// NewClient builds a Client for the catalog at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	listPath := strings.TrimSpace(opts.ListPath)
	if listPath == "" {
		listPath = DefaultListPath
	}
	if !strings.HasPrefix(listPath, "/") {
		listPath = "/" + listPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   base,
		listPath:  listPath,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		logger:    logger.With("component", "catalog"),
		cache:     newResponseCache(opts.CacheTTL),
	}, nil
}

// BaseURL returns the normalized catalog base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchPage requests one page of entities whose name contains filter.
func (c *Client) FetchPage(ctx context.Context, filter string, cursor Cursor) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	if cursor.Limit <= 0 {
		return Page{}, fmt.Errorf("cursor limit must be positive, got %d", cursor.Limit)
	}
	if cursor.Offset < 0 {
		return Page{}, fmt.Errorf("cursor offset must not be negative, got %d", cursor.Offset)
	}

	filter = strings.TrimSpace(filter)
	reqURL := c.listURL(filter, cursor)
	if page, ok := c.cache.page(reqURL); ok {
		c.logger.Debug("page cache hit", "url", reqURL)
		return page, nil
	}

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return Page{}, err
	}
	var payload listResponse
	if err := decodeJSON(body, &payload, reqURL); err != nil {
		c.logger.Warn("list decode failed", "url", reqURL, "error", err)
		return Page{}, err
	}
	next, err := parseNext(payload.Next, cursor)
	if err != nil {
		perr := &ParseError{URL: reqURL, Err: err}
		c.logger.Warn("list next cursor invalid", "url", reqURL, "error", err)
		return Page{}, perr
	}

	if next != nil && next.Offset <= cursor.Offset {
		c.logger.Warn("list next link does not advance", "url", reqURL, "next", next.String())
	}

	page := Page{Next: next, Count: payload.Count}
	for _, item := range payload.Results {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		if !matchesFilter(item.Name, filter) {
			// The upstream ignored search, so its count is for the whole catalog.
			page.Count = 0
			continue
		}
		page.Items = append(page.Items, item)
	}
	c.cache.storePage(reqURL, page)
	return page, nil
}

// FetchDetail requests the extended attributes at detailURL. Relative URLs are
// resolved against the base URL. Concurrent calls for the same URL share one
// round trip. The shared request is not tied to any caller's cancellation and
// is bounded by the client timeout; a caller whose ctx ends stops waiting with
// a NetworkError.
func (c *Client) FetchDetail(ctx context.Context, detailURL string) (Detail, error) {
	if c == nil {
		return Detail{}, fmt.Errorf("client is nil")
	}
	reqURL, err := c.resolve(detailURL)
	if err != nil {
		return Detail{}, err
	}
	if detail, ok := c.cache.detail(reqURL); ok {
		return detail, nil
	}

	flight := c.details.DoChan(reqURL, func() (any, error) {
		body, err := c.get(context.WithoutCancel(ctx), reqURL)
		if err != nil {
			return Detail{}, err
		}
		var payload detailResponse
		if err := decodeJSON(body, &payload, reqURL); err != nil {
			c.logger.Warn("detail decode failed", "url", reqURL, "error", err)
			return Detail{}, err
		}
		detail := payload.toDetail()
		c.cache.storeDetail(reqURL, detail)
		return detail, nil
	})

	select {
	case <-ctx.Done():
		return Detail{}, &NetworkError{URL: reqURL, Err: ctx.Err()}
	case res := <-flight:
		if res.Shared {
			c.logger.Debug("detail request shared", "url", reqURL)
		}
		if res.Err != nil {
			return Detail{}, res.Err
		}
		return cloneDetail(res.Val.(Detail)), nil
	}
}

func (c *Client) listURL(filter string, cursor Cursor) string {
	values := url.Values{}
	values.Set("offset", strconv.Itoa(cursor.Offset))
	values.Set("limit", strconv.Itoa(cursor.Limit))
	if filter != "" {
		values.Set("search", filter)
	}
	u := *c.baseURL
	u.Path = strings.TrimSuffix(c.baseURL.Path, "/") + c.listPath
	u.RawQuery = values.Encode()
	return u.String()
}

func (c *Client) resolve(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("detail url is empty")
	}
	ref, err := url.Parse(trimmed)
	if err != nil {
		return "", &ParseError{URL: trimmed, Err: err}
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	u := *c.baseURL
	u.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + strings.TrimPrefix(ref.Path, "/")
	u.RawQuery = ref.RawQuery
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", "url", reqURL, "error", err)
		return nil, &NetworkError{URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("catalog request", "url", reqURL, "status", resp.StatusCode, "elapsed", time.Since(start))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		c.logger.Warn("catalog returned error status", "url", reqURL, "status", resp.StatusCode)
		return nil, &UpstreamError{URL: reqURL, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func cloneDetail(d Detail) Detail {
	d.Abilities = append([]string(nil), d.Abilities...)
	d.Types = append([]string(nil), d.Types...)
	return d
}
