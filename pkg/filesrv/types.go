package filesrv

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Endpoints exposed by the file server.
const (
	EndpointFiles   = "/files"
	EndpointContent = "/files/content"
	EndpointPing    = "/ping"
)

// Defaults a client starts with before Configure.
const (
	DefaultBaseAddress  = "http://127.0.0.1:5000"
	DefaultSharedSecret = "default_password"
)

// Entry kinds reported by the reference server.
const (
	EntryFile      = "file"
	EntryDirectory = "directory"
)

// ServerConfig holds the target server and the shared secret sent with every
// authenticated request.
type ServerConfig struct {
	BaseAddress  string
	SharedSecret string
}

// DefaultConfig returns the configuration used before Configure is called.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		BaseAddress:  DefaultBaseAddress,
		SharedSecret: DefaultSharedSecret,
	}
}

// EncodedPassword returns the value of the "password" body field. It is
// base64 of the secret: obfuscation, not authentication.
func (c ServerConfig) EncodedPassword() string {
	return base64.StdEncoding.EncodeToString([]byte(c.SharedSecret))
}

// NormalizeBaseAddress removes a single trailing slash.
func NormalizeBaseAddress(addr string) string {
	return strings.TrimSuffix(addr, "/")
}

// Entry is the descriptor the reference server places in a listing. The
// client itself treats descriptors as opaque JSON; Entry is for display.
type Entry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Type == EntryDirectory
}

// DecodeEntries decodes raw listing elements. Bare strings are accepted as
// entry names.
func DecodeEntries(raw []json.RawMessage) ([]Entry, error) {
	out := make([]Entry, 0, len(raw))
	for i, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, Entry{Name: name})
			continue
		}
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, fmt.Errorf("filesrv: decode entry %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
