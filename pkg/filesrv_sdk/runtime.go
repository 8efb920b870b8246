package filesrv_sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/zyc-labs/filesrv_sdk_go/internal/devseed"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv/mock"
)

const (
	envMode     = "FILESRV_RUNTIME_MODE"
	envAPIURL   = "FILESRV_API_URL"
	envPassword = "FILESRV_PASSWORD"
	envMockSeed = "FILESRV_MOCK_SEED"

	ModeAuto = "auto"
	ModeHTTP = "http"
	ModeMock = "mock"
)

// NewFromEnv initialises a client based on environment variables. It returns
// the resolved mode ("http" or "mock").
func NewFromEnv(opts ...filesrv.Option) (*filesrv.Client, string, error) {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(envMode)))
	baseURL := strings.TrimSpace(os.Getenv(envAPIURL))
	password, ok := os.LookupEnv(envPassword)
	if !ok {
		password = filesrv.DefaultSharedSecret
	}

	switch mode {
	case "", ModeAuto:
		if baseURL != "" {
			return newHTTPClient(baseURL, password, opts)
		}
		return newMockClient(password, opts)
	case ModeHTTP:
		if baseURL == "" {
			return nil, "", fmt.Errorf("filesrv_sdk: HTTP mode requires %s", envAPIURL)
		}
		return newHTTPClient(baseURL, password, opts)
	case ModeMock:
		return newMockClient(password, opts)
	default:
		return nil, "", fmt.Errorf("filesrv_sdk: unsupported %s value %q", envMode, mode)
	}
}

func newHTTPClient(baseURL, password string, opts []filesrv.Option) (*filesrv.Client, string, error) {
	cfg := filesrv.ServerConfig{BaseAddress: baseURL, SharedSecret: password}
	return filesrv.New(cfg, opts...), ModeHTTP, nil
}

func newMockClient(password string, opts []filesrv.Option) (*filesrv.Client, string, error) {
	store, _, err := NewSeededStore(strings.TrimSpace(os.Getenv(envMockSeed)))
	if err != nil {
		return nil, "", err
	}
	cfg := filesrv.ServerConfig{BaseAddress: mockAddress, SharedSecret: password}
	return NewMockClient(store, cfg, opts...), ModeMock, nil
}

// NewSeededStore returns a mock store holding the entries of the seed file at
// path, and how many entries were applied. An empty path yields an empty store.
func NewSeededStore(path string) (*mock.Mock, int, error) {
	store := mock.New()
	if path == "" {
		return store, 0, nil
	}
	entries, err := devseed.Load(path)
	if err != nil {
		return nil, 0, fmt.Errorf("filesrv_sdk: load seed: %w", err)
	}
	if err := store.Seed(entries); err != nil {
		return nil, 0, fmt.Errorf("filesrv_sdk: apply seed: %w", err)
	}
	return store, len(entries), nil
}

const mockAddress = "mock://filesrv"

// NewMockClient returns a client served by store. Requests must carry the
// secret in cfg; a later Configure with another secret is rejected with 401.
func NewMockClient(store *mock.Mock, cfg filesrv.ServerConfig, opts ...filesrv.Option) *filesrv.Client {
	b := &mockBackend{store: store, password: cfg.EncodedPassword()}
	return filesrv.NewWithBackend(cfg, b, opts...)
}

type mockBackend struct {
	store    *mock.Mock
	password string
}

func (b *mockBackend) Ping(ctx context.Context, cfg filesrv.ServerConfig) error {
	if err := ctx.Err(); err != nil {
		return transportError(http.MethodGet, cfg, filesrv.EndpointPing, err)
	}
	return nil
}

func (b *mockBackend) PostFiles(ctx context.Context, cfg filesrv.ServerConfig, path string) ([]byte, error) {
	if err := b.authorize(cfg); err != nil {
		return nil, err
	}
	listing, _, err := b.store.ListOrCreate(ctx, path)
	if err != nil {
		return nil, translate(http.MethodPost, cfg, filesrv.EndpointFiles, err)
	}
	if listing == nil {
		return encode(map[string]string{"message": "File created: " + path})
	}
	return encode(listing)
}

func (b *mockBackend) DeleteFiles(ctx context.Context, cfg filesrv.ServerConfig, path string) error {
	if err := b.authorize(cfg); err != nil {
		return err
	}
	if err := b.store.Delete(ctx, path); err != nil {
		return translate(http.MethodDelete, cfg, filesrv.EndpointFiles, err)
	}
	return nil
}

func (b *mockBackend) PostContent(ctx context.Context, cfg filesrv.ServerConfig, path string) ([]byte, error) {
	if err := b.authorize(cfg); err != nil {
		return nil, err
	}
	data, err := b.store.Read(ctx, path)
	if err != nil {
		return nil, translate(http.MethodPost, cfg, filesrv.EndpointContent, err)
	}
	return encode(map[string]string{"path": path, "content": string(data)})
}

func (b *mockBackend) PutContent(ctx context.Context, cfg filesrv.ServerConfig, path, content string) error {
	if err := b.authorize(cfg); err != nil {
		return err
	}
	if err := b.store.Write(ctx, path, []byte(content)); err != nil {
		return translate(http.MethodPut, cfg, filesrv.EndpointContent, err)
	}
	return nil
}

func (b *mockBackend) authorize(cfg filesrv.ServerConfig) error {
	if cfg.EncodedPassword() != b.password {
		return &filesrv.HTTPError{
			StatusCode: mock.StatusCode(mock.ErrUnauthorized),
			Message:    mock.Message(mock.ErrUnauthorized),
		}
	}
	return nil
}

// translate maps store failures onto what the HTTP backend would report:
// store errors carry a status, anything else (a cancelled context) did not
// reach a server.
func translate(method string, cfg filesrv.ServerConfig, endpoint string, err error) error {
	var storeErr *mock.Error
	if errors.As(err, &storeErr) {
		return &filesrv.HTTPError{StatusCode: storeErr.Status, Message: storeErr.Message}
	}
	return transportError(method, cfg, endpoint, err)
}

func transportError(method string, cfg filesrv.ServerConfig, endpoint string, err error) error {
	return &filesrv.TransportError{Method: method, URL: cfg.BaseAddress + endpoint, Err: err}
}

func encode(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("filesrv_sdk: encode mock response: %w", err)
	}
	return data, nil
}
