package filesrv_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
)

func TestNewFromEnvHTTP(t *testing.T) {
	var gotPassword string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotPassword = body["password"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"","contents":[]}`))
	}))
	defer srv.Close()

	t.Setenv("FILESRV_API_URL", srv.URL+"/")
	t.Setenv("FILESRV_PASSWORD", "env-secret")

	client, err := filesrv.NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	if client.Config().BaseAddress != srv.URL {
		t.Fatalf("unexpected base address %q", client.Config().BaseAddress)
	}
	ok, err := client.IsPasswordValid(context.Background())
	if err != nil || !ok {
		t.Fatalf("IsPasswordValid: %v, %v", ok, err)
	}
	if gotPassword != base64.StdEncoding.EncodeToString([]byte("env-secret")) {
		t.Fatalf("unexpected password field %q", gotPassword)
	}
}

func TestNewFromEnvRequiresURL(t *testing.T) {
	t.Setenv("FILESRV_API_URL", "")
	if _, err := filesrv.NewFromEnv(); err == nil {
		t.Fatalf("expected error without FILESRV_API_URL")
	}
}
