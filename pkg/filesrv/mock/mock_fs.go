package mock

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zyc-labs/filesrv_sdk_go/internal/devseed"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
)

// Error is a failure the file server reports with an HTTP status and an
// "error" message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return "mock filesrv: " + e.Message
}

var (
	ErrMissingPath    = &Error{Status: http.StatusBadRequest, Message: "Missing file path"}
	ErrForbidden      = &Error{Status: http.StatusForbidden, Message: "Path traversal attempt detected"}
	ErrRootDelete     = &Error{Status: http.StatusForbidden, Message: "Cannot delete the root directory"}
	ErrDirNotFound    = &Error{Status: http.StatusNotFound, Message: "Directory not found"}
	ErrNotDirectory   = &Error{Status: http.StatusBadRequest, Message: "Not a directory"}
	ErrFileNotFound   = &Error{Status: http.StatusNotFound, Message: "File not found"}
	ErrReadDirectory  = &Error{Status: http.StatusBadRequest, Message: "Cannot read directory content"}
	ErrWriteDirectory = &Error{Status: http.StatusBadRequest, Message: "Cannot write to a directory"}
	ErrPathNotFound   = &Error{Status: http.StatusNotFound, Message: "Path not found"}
	ErrParentIsFile   = &Error{Status: http.StatusBadRequest, Message: "Parent path is a file"}
	ErrUnauthorized   = &Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
)

// StatusCode returns the HTTP status for err; unknown errors map to 500.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Message returns the "error" text for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return http.StatusText(http.StatusInternalServerError)
	}
	return err.Error()
}

type node struct {
	dir     bool
	data    []byte
	modTime time.Time
}

// Listing is a directory listing as the server returns it.
type Listing struct {
	Path     string          `json:"path"`
	Contents []filesrv.Entry `json:"contents"`
}

// Mock implements an in-memory file tree for tests and sandboxing. Keys are
// slash-separated paths relative to the root; the root is "".
type Mock struct {
	mu    sync.RWMutex
	nodes map[string]*node
	now   func() time.Time
}

// New constructs a filesystem holding only the root directory.
func New() *Mock {
	m := &Mock{
		nodes: make(map[string]*node),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	m.nodes[""] = &node{dir: true, modTime: m.now()}
	return m
}

// Seed loads nodes from seed entries, creating parent directories.
func (m *Mock) Seed(entries []devseed.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		if strings.TrimSpace(e.Path) == "" {
			return fmt.Errorf("mock filesrv: seed entry missing path")
		}
		key, err := resolve(e.Path)
		if err != nil {
			return fmt.Errorf("mock filesrv: seed %q: %w", e.Path, err)
		}
		if err := m.ensureParentsLocked(key); err != nil {
			return fmt.Errorf("mock filesrv: seed %q: %w", e.Path, err)
		}
		if e.Dir {
			m.nodes[key] = &node{dir: true, modTime: m.now()}
			continue
		}
		data := []byte(e.Content)
		if e.Base64 != "" {
			data, err = base64.StdEncoding.DecodeString(e.Base64)
			if err != nil {
				return fmt.Errorf("mock filesrv: decode base64: %w", err)
			}
		}
		m.nodes[key] = &node{data: data, modTime: m.now()}
	}
	return nil
}

// Len returns the number of nodes below the root.
func (m *Mock) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.nodes) - 1
}

// List returns the direct children of dir sorted by name. An empty dir is the
// root.
func (m *Mock) List(ctx context.Context, dir string) (*Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := resolve(dir)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(dir, key)
}

func (m *Mock) listLocked(requested, key string) (*Listing, error) {
	n, ok := m.nodes[key]
	if !ok {
		return nil, ErrDirNotFound
	}
	if !n.dir {
		return nil, ErrNotDirectory
	}

	names := make([]string, 0)
	for p := range m.nodes {
		if p != "" && parentOf(p) == key {
			names = append(names, path.Base(p))
		}
	}
	sort.Strings(names)

	contents := make([]filesrv.Entry, 0, len(names))
	for _, name := range names {
		child := joinKey(key, name)
		contents = append(contents, entryFor(child, m.nodes[child]))
	}
	return &Listing{Path: requested, Contents: contents}, nil
}

// Create makes p. A base name containing a dot becomes an empty file, any
// other name a directory; missing parents are created. An existing directory
// is left alone and an existing file is truncated.
func (m *Mock) Create(ctx context.Context, p string) (filesrv.Entry, error) {
	if err := ctx.Err(); err != nil {
		return filesrv.Entry{}, err
	}
	key, err := resolveRequired(p)
	if err != nil {
		return filesrv.Entry{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked(key)
}

func (m *Mock) createLocked(key string) (filesrv.Entry, error) {
	if err := m.ensureParentsLocked(key); err != nil {
		return filesrv.Entry{}, err
	}
	if existing, ok := m.nodes[key]; ok {
		if !existing.dir {
			existing.data = nil
			existing.modTime = m.now()
		}
		return entryFor(key, existing), nil
	}
	n := &node{dir: !strings.Contains(path.Base(key), "."), modTime: m.now()}
	m.nodes[key] = n
	return entryFor(key, n), nil
}

// ListOrCreate is the server side of POST /files, which serves both listing
// and creation: an existing directory (or the root) is listed, a missing
// path is created and, when it became a directory, listed. created reports
// whether a node was made; listing is nil when a file was created.
func (m *Mock) ListOrCreate(ctx context.Context, p string) (listing *Listing, created bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	key, err := resolve(p)
	if err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if n, ok := m.nodes[key]; ok {
		if !n.dir {
			return nil, false, ErrNotDirectory
		}
		listing, err := m.listLocked(p, key)
		return listing, false, err
	}

	entry, err := m.createLocked(key)
	if err != nil {
		return nil, false, err
	}
	if !entry.IsDir() {
		return nil, true, nil
	}
	listing, err = m.listLocked(p, key)
	return listing, true, err
}

// Write replaces the content of p, creating the file and its parents.
func (m *Mock) Write(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := resolveRequired(p)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.nodes[key]; ok && n.dir {
		return ErrWriteDirectory
	}
	if err := m.ensureParentsLocked(key); err != nil {
		return err
	}
	m.nodes[key] = &node{data: append([]byte(nil), data...), modTime: m.now()}
	return nil
}

// Read returns a copy of the content of p.
func (m *Mock) Read(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := resolveRequired(p)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[key]
	if !ok {
		return nil, ErrFileNotFound
	}
	if n.dir {
		return nil, ErrReadDirectory
	}
	return append([]byte(nil), n.data...), nil
}

// Stat describes p.
func (m *Mock) Stat(ctx context.Context, p string) (*filesrv.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := resolve(p)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[key]
	if !ok {
		return nil, ErrPathNotFound
	}
	e := entryFor(key, n)
	return &e, nil
}

// Delete removes a file, or a directory with everything below it.
func (m *Mock) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := resolveRequired(p)
	if err != nil {
		return err
	}
	if key == "" {
		return ErrRootDelete
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[key]
	if !ok {
		return ErrPathNotFound
	}
	if n.dir {
		prefix := key + "/"
		for k := range m.nodes {
			if strings.HasPrefix(k, prefix) {
				delete(m.nodes, k)
			}
		}
	}
	delete(m.nodes, key)
	return nil
}

func (m *Mock) ensureParentsLocked(key string) error {
	if key == "" {
		return nil
	}
	parent := parentOf(key)
	var missing []string
	for {
		n, ok := m.nodes[parent]
		if ok {
			if !n.dir {
				return ErrParentIsFile
			}
			break
		}
		missing = append(missing, parent)
		parent = parentOf(parent)
	}
	for i := len(missing) - 1; i >= 0; i-- {
		m.nodes[missing[i]] = &node{dir: true, modTime: m.now()}
	}
	return nil
}

// resolve confines p to the root the way the reference server does: leading
// slashes are dropped and any ".." escaping the root is rejected.
func resolve(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	var parts []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(parts) == 0 {
				return "", ErrForbidden
			}
			parts = parts[:len(parts)-1]
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/"), nil
}

func resolveRequired(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", ErrMissingPath
	}
	return resolve(p)
}

func parentOf(key string) string {
	idx := strings.LastIndex(key, "/")
	if idx < 0 {
		return ""
	}
	return key[:idx]
}

func joinKey(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func entryFor(key string, n *node) filesrv.Entry {
	e := filesrv.Entry{
		Name: path.Base(key),
		Type: filesrv.EntryFile,
		Path: key,
		Size: int64(len(n.data)),
	}
	if key == "" {
		e.Name = ""
	}
	if n.dir {
		e.Type = filesrv.EntryDirectory
		e.Size = 0
	}
	return e
}
