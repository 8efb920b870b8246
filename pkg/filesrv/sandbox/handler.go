// Package sandbox serves the file server wire protocol over the in-memory
// mock store. It backs local development and the SDK's own tests.
package sandbox

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv/mock"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/logging"
)

// FailConfig injects failures: a fraction Rate of requests is answered with
// status Code.
type FailConfig struct {
	Rate float64
	Code int
}

// Options configures the handler.
type Options struct {
	// Password is the plain shared secret; requests must carry its base64 form.
	Password string
	Latency  time.Duration
	Fail     FailConfig
	Logger   logging.Logger
	// Rand overrides the source used for failure injection.
	Rand func() float64
}

type handler struct {
	store    *mock.Mock
	password string
	log      logging.Logger
}

type requestBody struct {
	Path     *string         `json:"path"`
	Content  json.RawMessage `json:"content"`
	Password string          `json:"password"`
}

// NewHandler returns an http.Handler serving /ping, /files and
// /files/content from store.
func NewHandler(store *mock.Mock, opts Options) http.Handler {
	h := &handler{
		store:    store,
		password: base64.StdEncoding.EncodeToString([]byte(opts.Password)),
		log:      logging.OrNoop(opts.Logger).WithComponent("sandbox"),
	}
	random := opts.Rand
	if random == nil {
		random = rand.Float64
	}

	mux := http.NewServeMux()
	mux.HandleFunc(filesrv.EndpointPing, h.withMiddleware(opts, random, h.handlePing))
	mux.HandleFunc(filesrv.EndpointFiles, h.withMiddleware(opts, random, h.withAuth(h.handleFiles)))
	mux.HandleFunc(filesrv.EndpointContent, h.withMiddleware(opts, random, h.withAuth(h.handleContent)))
	return mux
}

func (h *handler) withMiddleware(opts Options, random func() float64, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.log.Debug("Request %s %s", r.Method, r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		}
		if opts.Latency > 0 {
			time.Sleep(opts.Latency)
		}
		if opts.Fail.Rate > 0 && random() < opts.Fail.Rate {
			status := opts.Fail.Code
			if status == 0 {
				status = http.StatusInternalServerError
			}
			h.log.Warn("Failure injected for %s %s", r.Method, r.URL.Path)
			writeError(w, status, "failure injected")
			return
		}
		next(w, r)
	}
}

type authedHandler func(w http.ResponseWriter, r *http.Request, body requestBody)

func (h *handler) withAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body requestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if body.Password != h.password {
			writeStoreError(w, mock.ErrUnauthorized)
			return
		}
		next(w, r, body)
	}
}

func (h *handler) handlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleFiles(w http.ResponseWriter, r *http.Request, body requestBody) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodPost:
		path := ""
		if body.Path != nil {
			path = *body.Path
		}
		listing, created, err := h.store.ListOrCreate(ctx, path)
		if err != nil {
			h.reject(w, path, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		if listing == nil {
			writeJSON(w, status, map[string]string{"message": "File created: " + path})
			return
		}
		writeJSON(w, status, listing)
	case http.MethodDelete:
		path, ok := requirePath(w, body)
		if !ok {
			return
		}
		stat, err := h.store.Stat(ctx, path)
		if err == nil {
			err = h.store.Delete(ctx, path)
		}
		if err != nil {
			h.reject(w, path, err)
			return
		}
		kind := "File"
		if stat.IsDir() {
			kind = "Directory"
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("%s deleted: %s", kind, path)})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *handler) handleContent(w http.ResponseWriter, r *http.Request, body requestBody) {
	ctx := r.Context()
	path, ok := requirePath(w, body)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPost:
		data, err := h.store.Read(ctx, path)
		if err != nil {
			h.reject(w, path, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"path": path, "content": string(data)})
	case http.MethodPut:
		if err := h.store.Write(ctx, path, []byte(contentText(body.Content))); err != nil {
			h.reject(w, path, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Content written to " + path})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *handler) reject(w http.ResponseWriter, path string, err error) {
	if errors.Is(err, mock.ErrForbidden) {
		h.log.Warn("Rejected path %s: %s", path, mock.Message(err))
	}
	writeStoreError(w, err)
}

func requirePath(w http.ResponseWriter, body requestBody) (string, bool) {
	if body.Path == nil || strings.TrimSpace(*body.Path) == "" {
		writeStoreError(w, mock.ErrMissingPath)
		return "", false
	}
	return *body.Path, true
}

// contentText accepts a JSON string verbatim and any other JSON value as its
// literal text.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func writeStoreError(w http.ResponseWriter, err error) {
	writeError(w, mock.StatusCode(err), mock.Message(err))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ParseFailConfig parses "rate=<float>,code=<httpStatus>".
func ParseFailConfig(raw string) (FailConfig, error) {
	if strings.TrimSpace(raw) == "" {
		return FailConfig{}, nil
	}
	cfg := FailConfig{Code: http.StatusInternalServerError}
	parts := strings.Split(raw, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keyVal := strings.SplitN(part, "=", 2)
		if len(keyVal) != 2 {
			return FailConfig{}, fmt.Errorf("invalid fail segment %q", part)
		}
		switch strings.TrimSpace(keyVal[0]) {
		case "rate":
			val, err := strconv.ParseFloat(strings.TrimSpace(keyVal[1]), 64)
			if err != nil {
				return FailConfig{}, err
			}
			cfg.Rate = val
		case "code":
			val, err := strconv.Atoi(strings.TrimSpace(keyVal[1]))
			if err != nil {
				return FailConfig{}, err
			}
			cfg.Code = val
		default:
			return FailConfig{}, fmt.Errorf("unknown fail key %q", keyVal[0])
		}
	}
	return cfg, nil
}
