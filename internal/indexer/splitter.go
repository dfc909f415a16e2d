package indexer

import "strings"

const (
	// DefaultChunkSize is the target chunk length in runes.
	DefaultChunkSize = 800
	// DefaultChunkOverlap is how many trailing runes of a chunk are repeated
	// at the start of the next one to preserve context across boundaries.
	DefaultChunkOverlap = 200
)

// RecursiveSplitter splits text into overlapping chunks, preferring paragraph
// boundaries, then line boundaries, then word boundaries, and hard-cutting
// only as a last resort.
type RecursiveSplitter struct {
	ChunkSize int
	Overlap   int
}

// NewRecursiveSplitter creates a splitter with the default size and overlap.
func NewRecursiveSplitter() RecursiveSplitter {
	return RecursiveSplitter{ChunkSize: DefaultChunkSize, Overlap: DefaultChunkOverlap}
}

// Split breaks text into chunks of at most ChunkSize runes with Overlap runes
// of carry-over between consecutive chunks. Whitespace-only input yields nil.
func (s RecursiveSplitter) Split(text string) []string {
	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := s.Overlap
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len([]rune(text)) <= size {
		return []string{strings.TrimSpace(text)}
	}

	pieces := breakPieces(text, size)

	var chunks []string
	var current []rune
	for _, piece := range pieces {
		runes := []rune(piece)
		if len(current) > 0 && len(current)+1+len(runes) > size {
			chunk := strings.TrimSpace(string(current))
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			// Carry the tail of the finished chunk into the next one.
			if overlap > 0 && len(current) > overlap {
				current = append([]rune(nil), current[len(current)-overlap:]...)
			} else {
				current = nil
			}
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, runes...)
	}
	if chunk := strings.TrimSpace(string(current)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// breakPieces splits text into fragments no longer than size runes, trying
// progressively finer separators.
func breakPieces(text string, size int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n\n") {
		if para == "" {
			continue
		}
		if len([]rune(para)) <= size {
			out = append(out, para)
			continue
		}
		for _, line := range strings.Split(para, "\n") {
			if line == "" {
				continue
			}
			if len([]rune(line)) <= size {
				out = append(out, line)
				continue
			}
			out = append(out, breakWords(line, size)...)
		}
	}
	return out
}

// breakWords splits a long line on spaces, hard-cutting words that alone
// exceed the size.
func breakWords(line string, size int) []string {
	var out []string
	var current []rune
	for _, word := range strings.Fields(line) {
		runes := []rune(word)
		for len(runes) > size {
			out = append(out, string(runes[:size]))
			runes = runes[size:]
		}
		if len(current) > 0 && len(current)+1+len(runes) > size {
			out = append(out, string(current))
			current = nil
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, runes...)
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}
