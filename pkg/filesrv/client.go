package filesrv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/zyc-labs/filesrv_sdk_go/internal/filesrvapi"
	"github.com/zyc-labs/filesrv_sdk_go/internal/httpx"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/logging"
)

// Backend performs the raw exchanges with a file server. Methods returning
// bytes yield the undecoded JSON success body.
type Backend interface {
	Ping(ctx context.Context, cfg ServerConfig) error
	PostFiles(ctx context.Context, cfg ServerConfig, path string) ([]byte, error)
	DeleteFiles(ctx context.Context, cfg ServerConfig, path string) error
	PostContent(ctx context.Context, cfg ServerConfig, path string) ([]byte, error)
	PutContent(ctx context.Context, cfg ServerConfig, path, content string) error
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpOpts []httpx.Option
	logger   logging.Logger
}

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) {
		o.httpOpts = append(o.httpOpts, httpx.WithHTTPClient(h))
	}
}

// WithHeaders adds default headers to every request.
func WithHeaders(h http.Header) Option {
	return func(o *options) {
		o.httpOpts = append(o.httpOpts, httpx.WithHeaders(h))
	}
}

// WithTimeout bounds each request. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.httpOpts = append(o.httpOpts, httpx.WithTimeout(d))
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Client talks to a remote file server. It is safe for concurrent use; calls
// are independent and unordered.
type Client struct {
	backend Backend
	log     logging.Logger

	mu  sync.RWMutex
	cfg ServerConfig
}

// New constructs an HTTP-backed client.
func New(cfg ServerConfig, opts ...Option) *Client {
	o := collectOptions(opts)
	return newClient(cfg, &httpBackend{client: httpx.NewClient(o.httpOpts...)}, o)
}

// NewWithBackend allows callers to provide a custom backend (e.g., mocks).
func NewWithBackend(cfg ServerConfig, b Backend, opts ...Option) *Client {
	return newClient(cfg, b, collectOptions(opts))
}

func collectOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newClient(cfg ServerConfig, b Backend, o *options) *Client {
	cfg.BaseAddress = NormalizeBaseAddress(cfg.BaseAddress)
	return &Client{
		backend: b,
		log:     logging.OrNoop(o.logger).WithComponent("filesrv"),
		cfg:     cfg,
	}
}

// Configure replaces the server address and shared secret. Requests already
// in flight keep the configuration they were built with.
func (c *Client) Configure(baseAddress, sharedSecret string) {
	addr := NormalizeBaseAddress(baseAddress)
	c.mu.Lock()
	c.cfg = ServerConfig{BaseAddress: addr, SharedSecret: sharedSecret}
	c.mu.Unlock()
	c.log.Debug("Configured server %s", addr)
}

// Config returns a snapshot of the current configuration.
func (c *Client) Config() ServerConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// IsOnline pings the server without credentials. Any failure reads as false.
func (c *Client) IsOnline(ctx context.Context) bool {
	if c == nil || c.backend == nil {
		return false
	}
	cfg := c.Config()
	if err := c.backend.Ping(ctx, cfg); err != nil {
		if status, ok := StatusCode(err); ok {
			c.log.Debug("Server %s answered ping with %d", cfg.BaseAddress, status)
		} else {
			c.log.Debug("Server %s is offline: %s", cfg.BaseAddress, err)
		}
		return false
	}
	return true
}

// IsPasswordValid probes /files with an empty path. A well-formed listing
// means the secret was accepted; HTTP 401 and malformed listings yield false.
// Other failures are returned.
func (c *Client) IsPasswordValid(ctx context.Context) (bool, error) {
	if c == nil || c.backend == nil {
		return false, fmt.Errorf("filesrv: client is nil")
	}
	cfg := c.Config()
	body, err := c.backend.PostFiles(ctx, cfg, "")
	if err != nil {
		if IsUnauthorized(err) {
			c.log.Warn("Password rejected by %s", cfg.BaseAddress)
			return false, nil
		}
		return false, c.fail(err)
	}
	if _, err := filesrvapi.DecodeListing(body); err != nil {
		c.log.Debug("API request failed: %s", err)
		return false, nil
	}
	return true, nil
}

// ListDirectory returns the entry descriptors of a directory in server order.
func (c *Client) ListDirectory(ctx context.Context, path string) ([]json.RawMessage, error) {
	if c == nil || c.backend == nil {
		return nil, fmt.Errorf("filesrv: client is nil")
	}
	body, err := c.backend.PostFiles(ctx, c.Config(), path)
	if err != nil {
		return nil, c.fail(err)
	}
	contents, err := filesrvapi.DecodeContents(body)
	if err != nil {
		return nil, c.fail(fmt.Errorf("filesrv: list %q: %w", path, err))
	}
	return contents, nil
}

// ListDirectoryJSON returns the listing as JSON text, the form handed to
// string-typed callers.
func (c *Client) ListDirectoryJSON(ctx context.Context, path string) (string, error) {
	contents, err := c.ListDirectory(ctx, path)
	if err != nil {
		return "", err
	}
	data, err := encodeJSON(contents)
	if err != nil {
		return "", fmt.Errorf("filesrv: encode listing: %w", err)
	}
	return string(data), nil
}

// ListEntries decodes the listing into Entry values.
func (c *Client) ListEntries(ctx context.Context, path string) ([]Entry, error) {
	contents, err := c.ListDirectory(ctx, path)
	if err != nil {
		return nil, err
	}
	return DecodeEntries(contents)
}

// CreateDirectory asks the server to create path. The request is identical to
// CreateFile; the server decides what kind of node to create.
func (c *Client) CreateDirectory(ctx context.Context, path string) error {
	return c.create(ctx, path)
}

// CreateFile asks the server to create path.
func (c *Client) CreateFile(ctx context.Context, path string) error {
	return c.create(ctx, path)
}

func (c *Client) create(ctx context.Context, path string) error {
	if c == nil || c.backend == nil {
		return fmt.Errorf("filesrv: client is nil")
	}
	if _, err := c.backend.PostFiles(ctx, c.Config(), path); err != nil {
		return c.fail(err)
	}
	return nil
}

// WriteFile replaces the content of path.
func (c *Client) WriteFile(ctx context.Context, path, content string) error {
	if c == nil || c.backend == nil {
		return fmt.Errorf("filesrv: client is nil")
	}
	if err := c.backend.PutContent(ctx, c.Config(), path, content); err != nil {
		return c.fail(err)
	}
	return nil
}

// ReadFile returns the content of path.
func (c *Client) ReadFile(ctx context.Context, path string) (string, error) {
	if c == nil || c.backend == nil {
		return "", fmt.Errorf("filesrv: client is nil")
	}
	body, err := c.backend.PostContent(ctx, c.Config(), path)
	if err != nil {
		return "", c.fail(err)
	}
	content, err := filesrvapi.DecodeContent(body)
	if err != nil {
		return "", c.fail(fmt.Errorf("filesrv: read %q: %w", path, err))
	}
	return content, nil
}

// DeletePath removes a file or a directory tree.
func (c *Client) DeletePath(ctx context.Context, path string) error {
	if c == nil || c.backend == nil {
		return fmt.Errorf("filesrv: client is nil")
	}
	if err := c.backend.DeleteFiles(ctx, c.Config(), path); err != nil {
		return c.fail(err)
	}
	return nil
}

func (c *Client) fail(err error) error {
	c.log.Error("API request failed: %s", err)
	return err
}

func encodeJSON(payload any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

type httpBackend struct {
	client *httpx.Client
}

func (b *httpBackend) Ping(ctx context.Context, cfg ServerConfig) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("filesrv: http backend not configured")
	}
	resp, err := b.client.Do(ctx, &httpx.Request{
		Method:  http.MethodGet,
		BaseURL: cfg.BaseAddress,
		Path:    EndpointPing,
	})
	if err != nil {
		return translateError(http.MethodGet, err)
	}
	_, _ = httpx.ReadAllAndClose(resp.Body)
	return nil
}

func (b *httpBackend) PostFiles(ctx context.Context, cfg ServerConfig, path string) ([]byte, error) {
	return b.fetch(ctx, cfg, http.MethodPost, EndpointFiles, map[string]any{"path": path})
}

func (b *httpBackend) DeleteFiles(ctx context.Context, cfg ServerConfig, path string) error {
	_, err := b.fetch(ctx, cfg, http.MethodDelete, EndpointFiles, map[string]any{"path": path})
	return err
}

func (b *httpBackend) PostContent(ctx context.Context, cfg ServerConfig, path string) ([]byte, error) {
	return b.fetch(ctx, cfg, http.MethodPost, EndpointContent, map[string]any{"path": path})
}

func (b *httpBackend) PutContent(ctx context.Context, cfg ServerConfig, path, content string) error {
	_, err := b.fetch(ctx, cfg, http.MethodPut, EndpointContent, map[string]any{
		"path":    path,
		"content": content,
	})
	return err
}

// fetch injects the encoded password into params, sends them as a JSON body
// and returns the success body.
func (b *httpBackend) fetch(ctx context.Context, cfg ServerConfig, method, endpoint string, params map[string]any) ([]byte, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("filesrv: http backend not configured")
	}
	params["password"] = cfg.EncodedPassword()
	body, contentType, err := httpx.WithJSONBody(params)
	if err != nil {
		return nil, fmt.Errorf("filesrv: encode request: %w", err)
	}
	resp, err := b.client.Do(ctx, &httpx.Request{
		Method:  method,
		BaseURL: cfg.BaseAddress,
		Path:    endpoint,
		Header:  http.Header{"Content-Type": []string{contentType}},
		Body:    body,
	})
	if err != nil {
		return nil, translateError(method, err)
	}
	payload, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: resp.Request.URL.String(), Err: err}
	}
	return payload, nil
}

// translateError maps httpx failures onto the public error types. Anything
// that did not produce a status, including an unusable base address, is a
// TransportError.
func translateError(method string, err error) error {
	var httpErr *httpx.HTTPError
	if errors.As(err, &httpErr) {
		return &HTTPError{
			StatusCode: httpErr.StatusCode,
			Message:    filesrvapi.ErrorMessage(httpErr.StatusCode, httpErr.Body),
		}
	}
	var transportErr *httpx.TransportError
	if errors.As(err, &transportErr) {
		return &TransportError{Method: transportErr.Method, URL: transportErr.URL, Err: transportErr.Err}
	}
	return &TransportError{Method: method, Err: err}
}
