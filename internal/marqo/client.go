package marqo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/logger"
)

// DefaultEndpoint is the search service URL of the local docker container.
const DefaultEndpoint = "http://localhost:8882"

const defaultUserAgent = "marqo-demo"

// Client talks to one search service instance. Safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithRateLimit caps outgoing requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(cl *Client) { cl.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithUserAgent sets the User-Agent header on all requests.
func WithUserAgent(ua string) Option {
	return func(cl *Client) { cl.userAgent = ua }
}

// New creates a client for the service at endpoint. An empty endpoint
// falls back to DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateIndex creates a named index with the given settings. Returns
// domain.ErrIndexExists when the index is already present.
func (c *Client) CreateIndex(ctx context.Context, name string, settings IndexSettings) error {
	logger.Debug("creating index %s with model %s", name, settings.Model)

	resp, err := c.do(ctx, http.MethodPost, "/indexes/"+url.PathEscape(name), settings)
	if err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	defer drain(resp)

	if err := c.checkStatus(resp, name); err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// DeleteIndex removes a named index. Returns domain.ErrIndexNotFound when
// the index does not exist.
func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	logger.Debug("deleting index %s", name)

	resp, err := c.do(ctx, http.MethodDelete, "/indexes/"+url.PathEscape(name), nil)
	if err != nil {
		return fmt.Errorf("delete index %s: %w", name, err)
	}
	defer drain(resp)

	if err := c.checkStatus(resp, name); err != nil {
		return fmt.Errorf("delete index %s: %w", name, err)
	}
	return nil
}

// AddDocuments uploads docs to the index in batches of batchSize. Documents
// without an ID are assigned one. The service embeds and indexes each batch
// before the call returns.
func (c *Client) AddDocuments(ctx context.Context, index string, docs []Document, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 100
	}

	for i := range docs {
		if docs[i].ID == "" {
			docs[i].ID = uuid.NewString()
		}
	}

	path := "/indexes/" + url.PathEscape(index) + "/documents"
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		logger.Debug("adding documents %d-%d of %d to index %s", start+1, end, len(docs), index)

		resp, err := c.do(ctx, http.MethodPost, path, docs[start:end])
		if err != nil {
			return fmt.Errorf("add documents to %s: %w", index, err)
		}
		statusErr := c.checkStatus(resp, index)
		drain(resp)
		if statusErr != nil {
			return fmt.Errorf("add documents to %s: %w", index, statusErr)
		}
	}
	return nil
}

// Search runs a query against the index and returns the ordered hits.
// Returns domain.ErrIndexNotFound when the index does not exist.
func (c *Client) Search(ctx context.Context, index string, req SearchRequest) (*domain.ResultSet, error) {
	logger.Debug("searching index %s: mode=%s filter=%q limit=%d", index, req.Mode, req.Filter, req.Limit)

	body := searchBody{
		Q:                    req.Query,
		SearchMethod:         req.Mode.String(),
		Filter:               req.Filter,
		SearchableAttributes: req.SearchableAttributes,
		Limit:                req.Limit,
	}

	resp, err := c.do(ctx, http.MethodPost, "/indexes/"+url.PathEscape(index)+"/search", body)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	defer drain(resp)

	if err := c.checkStatus(resp, index); err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}

	var rs domain.ResultSet
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		return nil, fmt.Errorf("search %s: decoding response: %w", index, err)
	}
	logger.Debug("search returned %d hits", len(rs.Hits))
	return &rs, nil
}

// do builds and executes one request. Each call waits on the rate limiter
// and is attempted exactly once; there is no retry policy.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

// checkStatus maps error responses to domain errors. 404 and 409 are the
// two conditions the UI recognises; anything else surfaces as a plain
// error with the service's message.
func (c *Client) checkStatus(resp *http.Response, index string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.ErrIndexNotFound
	case http.StatusConflict:
		return domain.ErrIndexExists
	}
	if eb.Message != "" {
		return fmt.Errorf("service returned HTTP %d: %s", resp.StatusCode, eb.Message)
	}
	return fmt.Errorf("service returned HTTP %d", resp.StatusCode)
}

// drain discards any unread body and closes it so connections are reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()              //nolint:errcheck
}
