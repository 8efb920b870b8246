// Package devseed loads seed files used to pre-populate the in-memory file
// server.
package devseed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry describes one seeded node. Content holds text; Base64 holds binary
// data and wins when both are set. Dir marks a directory.
type Entry struct {
	Path    string `json:"path" yaml:"path"`
	Dir     bool   `json:"dir,omitempty" yaml:"dir,omitempty"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Base64  string `json:"base64,omitempty" yaml:"base64,omitempty"`
}

// Load reads a seed file. Files ending in .yaml or .yml are parsed as YAML,
// everything else as JSON.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("devseed: read %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes seed data; ext selects the format as in Load.
func Parse(data []byte, ext string) ([]Entry, error) {
	var entries []Entry
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("devseed: decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("devseed: decode json: %w", err)
		}
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Path) == "" {
			return nil, fmt.Errorf("devseed: entry %d missing path", i)
		}
	}
	return entries, nil
}
