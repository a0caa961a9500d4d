package bugzilla

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bugscope/bugscope/pkg/cache"
	"github.com/bugscope/bugscope/pkg/tracker"
)

const httpTimeout = 10 * time.Second

// DefaultBaseURL is the public Mozilla Bugzilla instance.
const DefaultBaseURL = "https://bugzilla.mozilla.org"

// Query selects the set of open bugs to fetch. Resolution "---" is the
// Bugzilla convention for unresolved bugs.
type Query struct {
	Product    string
	Component  string
	Resolution string
}

// Client fetches bug records from one Bugzilla instance. Responses are
// cached through the configured backend and 5xx failures are retried.
//
// All methods are safe for concurrent use.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	baseURL string
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Bugzilla client for the given instance URL, using
// backend to cache query responses. Pass [cache.NullCache] to disable
// caching. An empty baseURL falls back to [DefaultBaseURL].
func NewClient(baseURL string, backend cache.Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   backend,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		ttl:     cache.TTLQuery,
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "bugscope",
		},
	}
}

// BaseURL returns the instance URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchBugs retrieves every bug matching q and converts the result to
// flat records. If refresh is true, the cache is bypassed and a fresh
// query is made. The bool return reports whether the result came from
// cache.
//
// Returns [cache.ErrNotFound] if the endpoint does not exist and
// [cache.ErrNetwork] for HTTP failures.
func (c *Client) FetchBugs(ctx context.Context, q Query, refresh bool) ([]tracker.Record, bool, error) {
	endpoint := c.searchURL(q)
	key := cache.QueryKey(c.baseURL, endpoint)

	var data apiResponse
	hit, err := c.cached(ctx, key, refresh, &data, func() error {
		return c.get(ctx, endpoint, &data)
	})
	if err != nil {
		return nil, false, err
	}

	records := make([]tracker.Record, 0, len(data.Bugs))
	for _, b := range data.Bugs {
		records = append(records, tracker.Record{
			ID:      b.ID,
			Alias:   string(b.Alias),
			Rank:    b.Rank.String(),
			Summary: b.Summary,
			Blocks:  b.Blocks,
		})
	}
	return records, hit, nil
}

// searchURL builds the /rest/bug query. limit=0 disables the server-side
// result cap so the whole component comes back in one page.
func (c *Client) searchURL(q Query) string {
	v := url.Values{}
	v.Set("product", q.Product)
	v.Set("component", q.Component)
	v.Set("resolution", q.Resolution)
	v.Set("include_fields", "id,alias,summary,blocks,cf_rank")
	v.Set("limit", "0")
	return fmt.Sprintf("%s/rest/bug?%s", c.baseURL, v.Encode())
}

// cached retrieves a value from cache or executes fetch and caches the
// result. If refresh is true, the cache is bypassed and fetch is always
// called. The bool return reports a cache hit.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) (bool, error) {
	if !refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			if json.Unmarshal(data, v) == nil {
				return true, nil
			}
		}
	}
	if err := cache.RetryWithBackoff(ctx, fetch); err != nil {
		return false, err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return false, nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	body, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) doRequest(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &cache.RetryableError{Err: fmt.Errorf("%w: %v", cache.ErrNetwork, err)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return &cache.RetryableError{Err: fmt.Errorf("%w: status %d", cache.ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}
