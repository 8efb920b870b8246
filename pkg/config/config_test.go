package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/config"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/logging"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, filesrv.DefaultBaseAddress, cfg.Server.URL)
	assert.Equal(t, filesrv.DefaultSharedSecret, cfg.Server.Password)
	assert.Equal(t, "http", cfg.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Zero(t, cfg.Timeout())
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  url: http://files.local:8080\ntimeout_ms: 1500\n"), 0o600))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://files.local:8080", cfg.Server.URL)
	assert.Equal(t, filesrv.DefaultSharedSecret, cfg.Server.Password)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout())
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o600))
	_, err = config.LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: mock\n"), 0o600))

	cfg, used, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "mock", cfg.Mode)
}

func TestApplyEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  url: http://from-file\n  password: file-secret\n"), 0o600))

	t.Setenv("FILESRV_API_URL", "http://from-env")
	t.Setenv("FILESRV_PASSWORD", "")
	t.Setenv("FILESRV_RUNTIME_MODE", "MOCK")
	t.Setenv("FILESRV_MOCK_SEED", "")
	t.Setenv("FILESRV_LOG_LEVEL", "debug")
	t.Setenv("FILESRV_TIMEOUT_MS", "250")

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "http://from-env", cfg.Server.URL)
	assert.Equal(t, "", cfg.Server.Password, "an explicitly empty password is kept")
	assert.Equal(t, "mock", cfg.Mode)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout())

	t.Setenv("FILESRV_TIMEOUT_MS", "soon")
	assert.Error(t, cfg.ApplyEnv())
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.URL = "http://saved:5000"
	cfg.Log.Quiet = true

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	written, err := config.Save(cfg, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	loaded, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.IsType(t, &logging.NoopLogger{}, loaded.Logger())
}

func TestClientMockMode(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[{"path":"hello.txt","content":"hello"}]`), 0o600))

	cfg := config.Defaults()
	cfg.Mode = "mock"
	cfg.MockSeed = seed

	client, mode, err := cfg.Client(logging.NewNoop())
	require.NoError(t, err)
	assert.Equal(t, "mock", mode)

	content, err := client.ReadFile(context.Background(), "hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
}

func TestClientModes(t *testing.T) {
	cfg := config.Defaults()
	cfg.TimeoutMs = 100
	client, mode, err := cfg.Client(nil)
	require.NoError(t, err)
	assert.Equal(t, "http", mode)
	assert.Equal(t, filesrv.DefaultBaseAddress, client.Config().BaseAddress)

	cfg.Mode = "auto"
	cfg.Server.URL = ""
	_, mode, err = cfg.Client(nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", mode)

	cfg.Mode = "ftp"
	_, _, err = cfg.Client(nil)
	assert.Error(t, err)
}
