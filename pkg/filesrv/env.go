package filesrv

import (
	"fmt"
	"os"
	"strings"
)

const (
	envAPIURL   = "FILESRV_API_URL"
	envPassword = "FILESRV_PASSWORD"
)

// NewFromEnv initialises an HTTP client from FILESRV_API_URL and
// FILESRV_PASSWORD. The password falls back to DefaultSharedSecret.
func NewFromEnv(opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(os.Getenv(envAPIURL))
	if baseURL == "" {
		return nil, fmt.Errorf("filesrv: HTTP mode requires %s", envAPIURL)
	}
	password, ok := os.LookupEnv(envPassword)
	if !ok {
		password = DefaultSharedSecret
	}
	return New(ServerConfig{BaseAddress: baseURL, SharedSecret: password}, opts...), nil
}
