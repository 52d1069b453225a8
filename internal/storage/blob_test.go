package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/rpattn/filedash/internal/domain"
)

func TestKeyKeepsSafeExtension(t *testing.T) {
	cases := map[string]string{
		"report_final.PDF":      ".pdf",
		"../../etc/passwd":      "",
		`C:\tmp\inv-2024.csv`:   ".csv",
		"archive.tar.gz":        ".gz",
		"weird.ext with spaces": "",
	}
	for in, ext := range cases {
		key := Key(in)
		if !strings.HasSuffix(key, ext) || strings.ContainsAny(key, `/\ `) {
			t.Errorf("Key(%q) = %q, want suffix %q without separators", in, key, ext)
		}
	}
}

func TestFSStoreLifecycle(t *testing.T) {
	store := NewFSStore(afero.NewMemMapFs())
	ctx := context.Background()

	key, url, err := store.Put(ctx, "notes.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if url != URLPrefix+key {
		t.Fatalf("unexpected url %q for key %q", url, key)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "hello" {
		t.Fatalf("unexpected contents %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Open(ctx, key); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	store := NewFSStore(afero.NewMemMapFs())
	if _, err := store.Open(context.Background(), "../secret"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected traversal key to be rejected, got %v", err)
	}
}
