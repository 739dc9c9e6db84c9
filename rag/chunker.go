// Package rag prepares page views for retrieval pipelines. Reading
// ordered page content is packed into chunks that respect block and
// table boundaries, with optional overlap between consecutive chunks,
// and can be exported as markdown or JSON.
package rag

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/pagina/view"
)

// ChunkType tells what kind of content a chunk holds.
type ChunkType string

const (
	ChunkText  ChunkType = "text"
	ChunkTable ChunkType = "table"
)

// Chunk is one retrievable unit of page content.
type Chunk struct {
	Index   int       `json:"index"`
	PageID  string    `json:"page_id"`
	Type    ChunkType `json:"type"`
	Text    string    `json:"text"`
	Regions []string  `json:"regions"`
}

// Size returns the chunk text length in characters.
func (c Chunk) Size() int {
	return utf8.RuneCountInString(c.Text)
}

// ChunkerConfig holds configuration for chunking.
type ChunkerConfig struct {
	// MaxChunkSize is the target maximum chunk size in characters.
	// Blocks are never split, so a single oversized block still becomes
	// one chunk.
	MaxChunkSize int

	// MinChunkSize merges a trailing undersized text chunk into its
	// predecessor.
	MinChunkSize int

	// Overlap is the number of trailing characters of one chunk carried
	// into the next as context, cut at a word boundary.
	Overlap int

	// PreserveTables emits each table as its own chunk holding the
	// markdown rendering. Without it, tables are skipped.
	PreserveTables bool
}

// DefaultChunkerConfig returns 1000 character chunks with 100 character
// overlap and tables preserved.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxChunkSize:   1000,
		MinChunkSize:   100,
		Overlap:        100,
		PreserveTables: true,
	}
}

// Chunker splits page views into retrieval chunks.
type Chunker struct {
	config ChunkerConfig
}

// NewChunker creates a chunker with default configuration.
func NewChunker() *Chunker {
	return &Chunker{config: DefaultChunkerConfig()}
}

// NewChunkerWithConfig creates a chunker with custom configuration.
// Out-of-range values fall back to the defaults.
func NewChunkerWithConfig(config ChunkerConfig) *Chunker {
	def := DefaultChunkerConfig()
	if config.MaxChunkSize <= 0 {
		config.MaxChunkSize = def.MaxChunkSize
	}
	if config.MinChunkSize < 0 {
		config.MinChunkSize = def.MinChunkSize
	}
	if config.Overlap < 0 || config.Overlap >= config.MaxChunkSize {
		config.Overlap = config.MaxChunkSize / 10
	}
	return &Chunker{config: config}
}

// ChunkPage splits one page into chunks: text blocks in reading order
// packed up to the maximum size, then one chunk per table.
//
// Example:
//
//	chunks := rag.NewChunker().ChunkPage(page)
//	data, err := rag.ToJSON(chunks)
func (c *Chunker) ChunkPage(page *view.Page) []Chunk {
	if page == nil {
		return nil
	}

	chunks := c.textChunks(page)

	if c.config.PreserveTables {
		for _, table := range page.Tables() {
			md := table.Markdown()
			if md == "" {
				continue
			}
			chunks = append(chunks, Chunk{
				PageID:  page.ImageID(),
				Type:    ChunkTable,
				Text:    strings.TrimRight(md, "\n"),
				Regions: []string{table.ID()},
			})
		}
	}

	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

// ChunkPages splits every page and renumbers the chunks globally.
func (c *Chunker) ChunkPages(pages []*view.Page) []Chunk {
	var out []Chunk
	for _, page := range pages {
		out = append(out, c.ChunkPage(page)...)
	}
	for i := range out {
		out[i].Index = i
	}
	return out
}

// orderedBlock is a layout block with its resolved reading order.
type orderedBlock struct {
	order int
	id    string
	text  string
}

// textChunks packs the reading ordered layout blocks into chunks,
// flushing at the size limit but never inside a block.
func (c *Chunker) textChunks(page *view.Page) []Chunk {
	var blocks []orderedBlock
	for _, r := range page.Layouts() {
		order, ok := r.ReadingOrder()
		if !ok {
			continue
		}
		text := strings.TrimSpace(r.Text())
		if text == "" {
			continue
		}
		blocks = append(blocks, orderedBlock{order: order, id: r.ID(), text: text})
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].order < blocks[j].order
	})
	if len(blocks) == 0 {
		return nil
	}

	var (
		chunks  []Chunk
		sb      strings.Builder
		regions []string
	)
	flush := func() {
		if len(regions) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			PageID:  page.ImageID(),
			Type:    ChunkText,
			Text:    sb.String(),
			Regions: regions,
		})
		sb.Reset()
		regions = nil
	}

	for _, block := range blocks {
		if len(regions) > 0 && utf8.RuneCountInString(sb.String())+1+utf8.RuneCountInString(block.text) > c.config.MaxChunkSize {
			tail := overlapTail(sb.String(), c.config.Overlap)
			flush()
			if tail != "" {
				sb.WriteString(tail)
			}
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(block.text)
		regions = append(regions, block.id)
	}
	flush()

	// A short trailing chunk reads better merged into its predecessor.
	if n := len(chunks); n >= 2 && chunks[n-1].Size() < c.config.MinChunkSize {
		prev, last := &chunks[n-2], chunks[n-1]
		prev.Text += "\n" + last.Text
		prev.Regions = append(prev.Regions, last.Regions...)
		chunks = chunks[:n-1]
	}
	return chunks
}

// overlapTail returns the last n characters of s, trimmed forward to the
// first word boundary so the overlap starts on a whole word.
func overlapTail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	tail := r[len(r)-n:]
	for i, ch := range tail {
		if ch == ' ' || ch == '\n' {
			return strings.TrimSpace(string(tail[i:]))
		}
	}
	return string(tail)
}
