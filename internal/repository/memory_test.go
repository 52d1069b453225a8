package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rpattn/filedash/internal/domain"
)

func seedFiles(t *testing.T, repo FileRepository) []domain.File {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	files := []domain.File{
		domain.NewFile("Report.PDF", "Docs", "report_final.pdf", "a.pdf", "/blobs/a.pdf", "alice"),
		domain.NewFile("Invoice", "Finance", "inv-2024.csv", "b.csv", "/blobs/b.csv", "bob"),
		domain.NewFile("100% done", "", "progress_log.txt", "c.txt", "/blobs/c.txt", "alice"),
	}
	for i := range files {
		files[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if _, err := repo.Create(context.Background(), files[i]); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}
	}
	return files
}

func displayNames(files []domain.File) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.DisplayName
	}
	return names
}

func TestMemoryFileRepositoryList(t *testing.T) {
	repo := NewMemoryFileRepository()
	seedFiles(t, repo)
	ctx := context.Background()

	cases := []struct {
		search string
		want   []string
	}{
		{"", []string{"100% done", "Invoice", "Report.PDF"}},
		{"   ", []string{"100% done", "Invoice", "Report.PDF"}},
		{"pdf", []string{"Report.PDF"}},
		{" FINANCE ", []string{"Invoice"}},
		{"_", []string{"100% done", "Report.PDF"}},
		{"%", []string{"100% done"}},
		{"zzz", []string{}},
	}
	for _, tc := range cases {
		got, err := repo.List(ctx, &domain.FileFilter{Search: tc.search})
		if err != nil {
			t.Fatalf("list %q: %v", tc.search, err)
		}
		if diff := cmp.Diff(tc.want, displayNames(got)); diff != "" {
			t.Errorf("search %q mismatch (-want +got):\n%s", tc.search, diff)
		}
	}

	all, err := repo.List(ctx, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected nil filter to list everything, got %d (%v)", len(all), err)
	}
}

func TestMemoryFileRepositoryDelete(t *testing.T) {
	repo := NewMemoryFileRepository()
	files := seedFiles(t, repo)
	ctx := context.Background()

	if err := repo.Delete(ctx, files[1].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, files[1].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, files[1].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	alice, err := repo.Create(ctx, domain.NewUser("alice", "hash"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(ctx, domain.NewUser("alice", "other")); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := repo.Create(ctx, domain.NewUser("bob", "hash")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.GetByUsernames(ctx, []string{"alice", "carol"})
	if err != nil || len(found) != 1 || found[0].ID != alice.ID {
		t.Fatalf("unexpected batch lookup result: %+v (%v)", found, err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if users[0].Username != "alice" || users[1].Username != "bob" {
		t.Fatalf("expected users sorted by name, got %+v", users)
	}

	if err := repo.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByUsername(ctx, "alice"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
