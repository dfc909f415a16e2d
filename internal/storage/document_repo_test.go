package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestDocumentRepoGetByPathNotFound(t *testing.T) {
	repo := NewDocumentRepo(testDB(t))

	_, err := repo.GetByPath(context.Background(), "/missing.md")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByPath() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepoUpsert(t *testing.T) {
	repo := NewDocumentRepo(testDB(t))
	ctx := context.Background()

	doc := &Document{ID: "doc-1", Path: "/guide.md", DocType: "markdown", Hash: "aaa"}
	if err := repo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.GetByPath(ctx, "/guide.md")
	if err != nil {
		t.Fatalf("GetByPath() error = %v", err)
	}
	if got.ID != "doc-1" || got.Hash != "aaa" {
		t.Errorf("document = %+v", got)
	}
	if got.IndexedAt.IsZero() {
		t.Error("indexed_at not set")
	}

	// Same path again updates hash, keeps the original row.
	doc.Hash = "bbb"
	if err := repo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}
	got, err = repo.GetByPath(ctx, "/guide.md")
	if err != nil {
		t.Fatalf("GetByPath() error = %v", err)
	}
	if got.Hash != "bbb" {
		t.Errorf("hash = %q, want bbb", got.Hash)
	}

	docs, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("ListAll() = %d documents, want 1", len(docs))
	}
}

func TestDocumentRepoListAllOrder(t *testing.T) {
	repo := NewDocumentRepo(testDB(t))
	ctx := context.Background()

	for _, d := range []Document{
		{ID: "2", Path: "/b.md", DocType: "markdown", Hash: "h"},
		{ID: "1", Path: "/a.md", DocType: "markdown", Hash: "h"},
	} {
		if err := repo.Upsert(ctx, &d); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	docs, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(docs) != 2 || docs[0].Path != "/a.md" {
		t.Errorf("ListAll() = %+v, want path order", docs)
	}
}
