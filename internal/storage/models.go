package storage

import "time"

// Document represents one ingested source file.
type Document struct {
	ID        string // UUID
	Path      string // source path as given to the ingest tool
	DocType   string // "markdown", "text", "json", "csv"
	Hash      string // SHA-256 hex of the file content, for change detection
	IndexedAt time.Time
}

// ChunkRecord represents one indexed chunk of a document. The ID doubles as
// the vector-index point ID.
type ChunkRecord struct {
	ID           string
	DocumentID   string
	ChunkIndex   int
	SectionTitle string
	ChunkKind    string
	PageNumber   int
	Text         string
}
