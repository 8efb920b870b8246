package devseed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadYAML(t *testing.T) {
	seed := "- path: docs\n  dir: true\n- path: docs/readme.txt\n  content: hello\n- path: bin/blob.dat\n  base64: AAEC\n"
	file := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(file, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	entries, err := Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !entries[0].Dir || entries[1].Content != "hello" || entries[2].Base64 != "AAEC" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestParseJSON(t *testing.T) {
	entries, err := Parse([]byte(`[{"path":"a.txt","content":"hi"}]`), ".json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "a.txt" || entries[0].Content != "hi" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestParseRejectsMissingPath(t *testing.T) {
	if _, err := Parse([]byte(`[{"content":"x"}]`), ""); err == nil {
		t.Fatalf("expected error for entry without path")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
