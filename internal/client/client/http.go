package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventsync/eventsync/internal/logging"
)

const (
	headerAuthorization = "Authorization"
	headerAccept        = "Accept"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"

	DefaultTimeout   = 12 * time.Second
	DefaultUserAgent = "eventsync-cli"
)

// ResponseInfo describes a completed HTTP exchange. Path is relative to the
// client's base URL, e.g. "/auth/login".
type ResponseInfo struct {
	Method     string
	Path       string
	StatusCode int
}

// ResponseHook observes every response the client receives.
type ResponseHook func(ctx context.Context, info ResponseInfo)

// HTTPClient implements Client over the REST/JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string

	mu      sync.RWMutex
	headers http.Header
	hooks   []ResponseHook
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// NewHTTPClient creates a client for the API rooted at baseURL
// (for example "http://localhost:5000/api").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		headers:    http.Header{},
	}
	c.headers.Set(headerAccept, contentTypeJSON)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" {
		c.headers.Del(headerAuthorization)
		return
	}
	c.headers.Set(headerAuthorization, "Bearer "+token)
}

// AuthToken returns the bearer token currently in the default headers.
func (c *HTTPClient) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.TrimPrefix(c.headers.Get(headerAuthorization), "Bearer ")
}

// OnResponse registers a hook called after every response, before the
// response is decoded.
func (c *HTTPClient) OnResponse(hook ResponseHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

type requestOption func(h http.Header)

func withBearer(token string) requestOption {
	return func(h http.Header) {
		h.Set(headerAuthorization, "Bearer "+token)
	}
}

func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body any, result any, opts ...requestOption) error {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.mu.RLock()
	req.Header = c.headers.Clone()
	hooks := append([]ResponseHook(nil), c.hooks...)
	c.mu.RUnlock()

	req.Header.Set(headerUserAgent, c.userAgent)
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	for _, o := range opts {
		o(req.Header)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	hookCtx := logging.WithRequestID(ctx, requestID)
	for _, h := range hooks {
		h(hookCtx, ResponseInfo{Method: method, Path: path, StatusCode: resp.StatusCode})
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string, result any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, result)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, result any, opts ...requestOption) error {
	return c.doRequest(ctx, http.MethodPost, path, body, result, opts...)
}
