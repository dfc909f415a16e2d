package indexer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// loadJSON turns a JSON array of objects into one chunk per item; the item's
// "text" field supplies the content. Mirrors the expected ingestion format:
// [{"text": "..."}, ...].
func loadJSON(content []byte) ([]Chunk, error) {
	var items []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(content, &items); err != nil {
		return nil, fmt.Errorf("JSON must be an array of objects: %w", err)
	}

	chunks := make([]Chunk, 0, len(items))
	for _, item := range items {
		chunks = append(chunks, Chunk{
			Text: item.Text,
			Kind: ChunkKindItem,
		})
	}
	return chunks, nil
}

// loadCSV turns CSV content into one chunk per non-empty row, header included.
// Row-granular chunks keep numeric records individually retrievable.
func loadCSV(content []byte) []Chunk {
	var chunks []Chunk
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Text: line,
			Kind: ChunkKindRow,
		})
	}
	return chunks
}

// loadText splits plain text with the recursive splitter.
func loadText(content []byte, splitter RecursiveSplitter) []Chunk {
	parts := splitter.Split(string(content))
	chunks := make([]Chunk, 0, len(parts))
	for _, part := range parts {
		chunks = append(chunks, Chunk{
			Text: part,
			Kind: ChunkKindProse,
		})
	}
	return chunks
}
