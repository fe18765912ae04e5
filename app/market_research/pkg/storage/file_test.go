package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

func newReport(id, topic string) *model.GeneratedReport {
	return &model.GeneratedReport{
		ID:        id,
		Title:     topic + " Market Analysis",
		Topic:     topic,
		Category:  "Transportation",
		CreatedAt: time.Now(),
		FullText:  strings.Replace(sampleReport, "MR-20261017-093000-1a2b3c4d", id, 1),
	}
}

func TestFileStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "reports")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	r := newReport("MR-20261017-093000-1a2b3c4d", "Electric Bicycles")
	path, err := s.Save(ctx, r)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(path) != FileName(r) {
		t.Errorf("Save() path = %s", path)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(metas) != 1 || metas[0].ID != r.ID || metas[0].Title != "Electric Bicycles Market Analysis" || metas[0].Date != "October 17, 2026" {
		t.Errorf("List() = %+v", metas)
	}

	for _, key := range []string{r.ID, FileName(r)} {
		text, err := s.Read(ctx, key)
		if err != nil {
			t.Fatalf("Read(%s) error = %v", key, err)
		}
		if text != r.FullText {
			t.Errorf("Read(%s) returned different text", key)
		}
	}

	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Read(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() after delete error = %v", err)
	}
	if err := s.Delete(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v", err)
	}
}

func TestFileStore_NoOverwrite(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	r := newReport("MR-20261017-093000-aaaaaaaa", "Solar")
	if _, err := s.Save(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(context.Background(), r); !errors.Is(err, ErrPersistence) {
		t.Fatalf("second Save() error = %v, want ErrPersistence", err)
	}
}

func TestFileStore_ConcurrentSaves(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ids := []string{"MR-20261017-093000-00000001", "MR-20261017-093000-00000002", "MR-20261017-093000-00000003"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := s.Save(context.Background(), newReport(id, "Solar")); err != nil {
				t.Errorf("Save(%s) error = %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	metas, err := s.List(context.Background())
	if err != nil || len(metas) != len(ids) {
		t.Fatalf("List() = %d reports, %v", len(metas), err)
	}
}

func TestFileStore_RejectsPaths(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "secret.md"), []byte("x"), 0o644)
	s, _ := NewFileStore(filepath.Join(dir, "reports"))

	for _, id := range []string{"../secret.md", "/etc/passwd", ""} {
		if _, err := s.Read(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Read(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestFileStore_ListSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	os.Mkdir(filepath.Join(dir, "sub.md"), 0o755)
	os.WriteFile(filepath.Join(dir, "manual.md"), []byte("plain text"), 0o644)

	metas, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 || metas[0].ID != "manual" || metas[0].Title != "manual" {
		t.Errorf("List() = %+v", metas)
	}
}

func TestNewStore_UnknownDriver(t *testing.T) {
	if _, err := NewStore(context.Background(), configWithDriver("cassandra")); err == nil {
		t.Fatal("expected error")
	}
}
