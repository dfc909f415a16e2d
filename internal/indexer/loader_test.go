package indexer

import "testing"

func TestLoadJSON(t *testing.T) {
	chunks, err := loadJSON([]byte(`[{"text": "first item"}, {"text": "second item"}]`))
	if err != nil {
		t.Fatalf("loadJSON() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "first item" || chunks[0].Kind != ChunkKindItem {
		t.Errorf("chunk = %+v", chunks[0])
	}
}

func TestLoadJSONRejectsNonArray(t *testing.T) {
	if _, err := loadJSON([]byte(`{"text": "not an array"}`)); err == nil {
		t.Fatal("expected error for non-array JSON")
	}
}

func TestLoadCSV(t *testing.T) {
	chunks := loadCSV([]byte("name,age\nann,30\n\nbob,41\n"))

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks (header plus 2 rows), got %d", len(chunks))
	}
	if chunks[0].Text != "name,age" || chunks[0].Kind != ChunkKindRow {
		t.Errorf("chunk = %+v", chunks[0])
	}
	if chunks[2].Text != "bob,41" {
		t.Errorf("blank row not skipped: %+v", chunks[2])
	}
}

func TestLoadText(t *testing.T) {
	chunks := loadText([]byte("plain prose content"), NewRecursiveSplitter())

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Kind != ChunkKindProse {
		t.Errorf("kind = %q", chunks[0].Kind)
	}
}
