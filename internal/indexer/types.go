package indexer

// Chunk is one unit of text prepared for embedding and indexing.
type Chunk struct {
	Text         string
	SectionTitle string // heading path for markdown, empty otherwise
	Kind         string // "prose", "row", "item"
	PageNumber   int    // 0 when the source has no page structure
}

// Document types recorded in bookkeeping and chunk payloads.
const (
	DocTypeMarkdown = "markdown"
	DocTypeText     = "text"
	DocTypeJSON     = "json"
	DocTypeCSV      = "csv"
)

const (
	// ChunkKindProse marks free-form text chunks.
	ChunkKindProse = "prose"
	// ChunkKindRow marks one CSV row.
	ChunkKindRow = "row"
	// ChunkKindItem marks one JSON array item.
	ChunkKindItem = "item"
)
