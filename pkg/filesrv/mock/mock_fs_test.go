package mock_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/zyc-labs/filesrv_sdk_go/internal/devseed"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv/mock"
)

func TestMockWriteReadDelete(t *testing.T) {
	m := mock.New()
	ctx := context.Background()

	if err := m.Write(ctx, "files/a.txt", []byte("mock-file")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := m.Read(ctx, "/files/a.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "mock-file" {
		t.Fatalf("read mismatch: %q", data)
	}

	stat, err := m.Stat(ctx, "files")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !stat.IsDir() {
		t.Fatalf("expected parent directory to be created: %#v", stat)
	}

	if err := m.Delete(ctx, "files"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Read(ctx, "files/a.txt"); !errors.Is(err, mock.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound after recursive delete, got %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty tree, got %d nodes", m.Len())
	}
}

func TestMockListSortedEntries(t *testing.T) {
	m := mock.New()
	ctx := context.Background()
	seed := []devseed.Entry{
		{Path: "docs/zeta.txt", Content: "zz"},
		{Path: "docs/alpha.txt", Content: "a"},
		{Path: "docs/sub", Dir: true},
		{Path: "docs/sub/deep.txt", Content: "deep"},
	}
	if err := m.Seed(seed); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	listing, err := m.List(ctx, "docs")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []filesrv.Entry{
		{Name: "alpha.txt", Type: filesrv.EntryFile, Path: "docs/alpha.txt", Size: 1},
		{Name: "sub", Type: filesrv.EntryDirectory, Path: "docs/sub", Size: 0},
		{Name: "zeta.txt", Type: filesrv.EntryFile, Path: "docs/zeta.txt", Size: 2},
	}
	if len(listing.Contents) != len(want) {
		t.Fatalf("unexpected listing: %#v", listing.Contents)
	}
	for i := range want {
		if listing.Contents[i] != want[i] {
			t.Fatalf("entry %d: got %#v want %#v", i, listing.Contents[i], want[i])
		}
	}

	root, err := m.List(ctx, "")
	if err != nil {
		t.Fatalf("List root: %v", err)
	}
	if len(root.Contents) != 1 || root.Contents[0].Name != "docs" {
		t.Fatalf("unexpected root listing: %#v", root.Contents)
	}
}

func TestMockCreateDecidesKindByName(t *testing.T) {
	m := mock.New()
	ctx := context.Background()

	dir, err := m.Create(ctx, "new_folder")
	if err != nil {
		t.Fatalf("Create dir: %v", err)
	}
	if !dir.IsDir() {
		t.Fatalf("expected directory, got %#v", dir)
	}
	file, err := m.Create(ctx, "new_folder/new_file.txt")
	if err != nil {
		t.Fatalf("Create file: %v", err)
	}
	if file.IsDir() || file.Size != 0 {
		t.Fatalf("expected empty file, got %#v", file)
	}

	if err := m.Write(ctx, "new_folder/new_file.txt", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := m.Create(ctx, "new_folder/new_file.txt"); err != nil {
		t.Fatalf("re-Create: %v", err)
	}
	data, err := m.Read(ctx, "new_folder/new_file.txt")
	if err != nil || len(data) != 0 {
		t.Fatalf("expected truncated file, got %q, %v", data, err)
	}

	if _, err := m.Create(ctx, "new_folder/new_file.txt/child"); !errors.Is(err, mock.ErrParentIsFile) {
		t.Fatalf("expected ErrParentIsFile, got %v", err)
	}
}

func TestMockListOrCreate(t *testing.T) {
	m := mock.New()
	ctx := context.Background()

	listing, created, err := m.ListOrCreate(ctx, "docs")
	if err != nil || !created || listing == nil || len(listing.Contents) != 0 {
		t.Fatalf("expected created empty directory listing, got %#v, %v, %v", listing, created, err)
	}
	listing, created, err = m.ListOrCreate(ctx, "docs/a.txt")
	if err != nil || !created || listing != nil {
		t.Fatalf("expected created file, got %#v, %v, %v", listing, created, err)
	}
	listing, created, err = m.ListOrCreate(ctx, "docs")
	if err != nil || created || len(listing.Contents) != 1 {
		t.Fatalf("expected listing of existing directory, got %#v, %v, %v", listing, created, err)
	}
	if _, _, err := m.ListOrCreate(ctx, "docs/a.txt"); !errors.Is(err, mock.ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
}

func TestMockErrors(t *testing.T) {
	m := mock.New()
	ctx := context.Background()
	if err := m.Write(ctx, "dir", nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := m.Create(ctx, "folder"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"traversal", func() error { _, err := m.Read(ctx, "../etc/passwd"); return err }(), http.StatusForbidden},
		{"missing path", m.Write(ctx, "", []byte("x")), http.StatusBadRequest},
		{"read missing", func() error { _, err := m.Read(ctx, "nope.txt"); return err }(), http.StatusNotFound},
		{"read directory", func() error { _, err := m.Read(ctx, "folder"); return err }(), http.StatusBadRequest},
		{"write directory", m.Write(ctx, "folder", []byte("x")), http.StatusBadRequest},
		{"delete missing", m.Delete(ctx, "ghost"), http.StatusNotFound},
		{"delete root", m.Delete(ctx, "/"), http.StatusForbidden},
		{"list missing", func() error { _, err := m.List(ctx, "ghost"); return err }(), http.StatusNotFound},
	}
	for _, tc := range tests {
		if tc.err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if got := mock.StatusCode(tc.err); got != tc.status {
			t.Fatalf("%s: status %d, want %d (%v)", tc.name, got, tc.status, tc.err)
		}
	}

	if mock.StatusCode(errors.New("other")) != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown errors")
	}
	if mock.Message(mock.ErrFileNotFound) != "File not found" {
		t.Fatalf("unexpected message %q", mock.Message(mock.ErrFileNotFound))
	}
}

func TestMockSeedBase64(t *testing.T) {
	m := mock.New()
	if err := m.Seed([]devseed.Entry{{Path: "/seed/one.bin", Base64: "aGVsbG8="}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	data, err := m.Read(context.Background(), "seed/one.bin")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected seeded data %q", data)
	}
	if err := m.Seed([]devseed.Entry{{Path: " "}}); err == nil {
		t.Fatalf("expected error for empty seed path")
	}
}

func TestMockHonoursContext(t *testing.T) {
	m := mock.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Write(ctx, "a.txt", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
