package rag

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MarkdownOptions controls markdown export.
type MarkdownOptions struct {
	// IncludeMetadata prefixes every chunk with a comment naming its
	// index, page and type.
	IncludeMetadata bool
}

// DefaultMarkdownOptions returns markdown without metadata comments.
func DefaultMarkdownOptions() MarkdownOptions {
	return MarkdownOptions{}
}

// ToMarkdown renders chunks as markdown sections separated by
// horizontal rules. Table chunks are already markdown and pass through
// unchanged.
func ToMarkdown(chunks []Chunk, opts MarkdownOptions) string {
	var sb strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			sb.WriteString("\n\n---\n\n")
		}
		if opts.IncludeMetadata {
			fmt.Fprintf(&sb, "<!-- chunk %d | page %s | %s -->\n", chunk.Index, chunk.PageID, chunk.Type)
		}
		sb.WriteString(chunk.Text)
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToJSON renders chunks as an indented JSON array.
func ToJSON(chunks []Chunk) ([]byte, error) {
	if chunks == nil {
		chunks = []Chunk{}
	}
	return json.MarshalIndent(chunks, "", "  ")
}
