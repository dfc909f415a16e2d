package indexer

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// minSectionRunes is the threshold below which a section is merged into the
// previous chunk instead of standing alone.
const minSectionRunes = 50

// MarkdownChunker chunks markdown content by heading hierarchy using goldmark
// AST parsing, with size constraints applied per section.
type MarkdownChunker struct {
	parser   goldmark.Markdown
	splitter RecursiveSplitter
}

// NewMarkdownChunker creates a markdown chunker.
func NewMarkdownChunker() *MarkdownChunker {
	return &MarkdownChunker{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
		splitter: NewRecursiveSplitter(),
	}
}

// section is an intermediate unit: all text under one heading path.
type section struct {
	headingPath string
	text        string
}

// ChunkMarkdown parses markdown and returns chunks organized by heading
// hierarchy. Oversized sections are split with overlap; tiny sections are
// merged into their predecessor.
func (c *MarkdownChunker) ChunkMarkdown(content []byte) []Chunk {
	if len(content) == 0 {
		return nil
	}

	reader := text.NewReader(content)
	doc := c.parser.Parser().Parse(reader)
	sections := collectSections(doc, content)

	var chunks []Chunk
	for _, sec := range sections {
		if strings.TrimSpace(sec.text) == "" {
			continue
		}

		// Merge a tiny section into the previous chunk when one exists and
		// the merge stays within the size budget.
		if len(chunks) > 0 && len([]rune(sec.text)) < minSectionRunes {
			prev := &chunks[len(chunks)-1]
			merged := prev.Text + "\n\n" + sec.text
			if len([]rune(merged)) <= c.splitter.chunkSize() {
				prev.Text = merged
				continue
			}
		}

		for _, part := range c.splitter.Split(sec.text) {
			chunks = append(chunks, Chunk{
				Text:         part,
				SectionTitle: sec.headingPath,
				Kind:         ChunkKindProse,
			})
		}
	}
	return chunks
}

func (s RecursiveSplitter) chunkSize() int {
	if s.ChunkSize > 0 {
		return s.ChunkSize
	}
	return DefaultChunkSize
}

// collectSections walks the document's top-level blocks, grouping text by the
// heading path in effect when it appears.
func collectSections(doc ast.Node, content []byte) []section {
	var sections []section
	var headings []string // heading text per level, index = level-1
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		sections = append(sections, section{
			headingPath: joinHeadings(headings),
			text:        strings.TrimSpace(buf.String()),
		})
		buf.Reset()
	}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok {
			flush()
			level := heading.Level
			if level > len(headings) {
				grown := make([]string, level)
				copy(grown, headings)
				headings = grown
			} else {
				headings = headings[:level]
			}
			headings[level-1] = nodeText(heading, content)
			continue
		}

		blockText := nodeText(node, content)
		if blockText == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(blockText)
	}
	flush()
	return sections
}

// joinHeadings renders the active heading stack as "Top > Sub > Subsub",
// skipping levels that were never set.
func joinHeadings(headings []string) string {
	var parts []string
	for _, h := range headings {
		if h != "" {
			parts = append(parts, h)
		}
	}
	return strings.Join(parts, " > ")
}

// nodeText extracts the raw text of a node and its descendants.
func nodeText(node ast.Node, content []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(content))
			if t.HardLineBreak() || t.SoftLineBreak() {
				b.WriteString("\n")
			}
		case *ast.AutoLink:
			b.Write(t.URL(content))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
