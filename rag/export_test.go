package rag

import (
	"encoding/json"
	"strings"
	"testing"
)

func exportChunks() []Chunk {
	return []Chunk{
		{Index: 0, PageID: "page-1", Type: ChunkText, Text: "First chunk.", Regions: []string{"b0"}},
		{Index: 1, PageID: "page-1", Type: ChunkTable, Text: "| Total | 42 |\n|---|---|", Regions: []string{"tab1"}},
	}
}

func TestToMarkdown(t *testing.T) {
	got := ToMarkdown(exportChunks(), DefaultMarkdownOptions())

	want := "First chunk.\n\n---\n\n| Total | 42 |\n|---|---|\n"
	if got != want {
		t.Errorf("ToMarkdown() = %q, want %q", got, want)
	}
}

func TestToMarkdownWithMetadata(t *testing.T) {
	got := ToMarkdown(exportChunks(), MarkdownOptions{IncludeMetadata: true})

	if !strings.Contains(got, "<!-- chunk 0 | page page-1 | text -->") {
		t.Errorf("missing text chunk metadata in %q", got)
	}
	if !strings.Contains(got, "<!-- chunk 1 | page page-1 | table -->") {
		t.Errorf("missing table chunk metadata in %q", got)
	}
}

func TestToMarkdownEmpty(t *testing.T) {
	if got := ToMarkdown(nil, DefaultMarkdownOptions()); got != "" {
		t.Errorf("ToMarkdown(nil) = %q, want empty", got)
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(exportChunks())
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var decoded []Chunk
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d chunks, want 2", len(decoded))
	}
	if decoded[1].Type != ChunkTable {
		t.Errorf("Type = %s, want %s", decoded[1].Type, ChunkTable)
	}
	if decoded[0].Regions[0] != "b0" {
		t.Errorf("Regions = %v, want [b0]", decoded[0].Regions)
	}
}

func TestToJSONEmpty(t *testing.T) {
	data, err := ToJSON(nil)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("ToJSON(nil) = %q, want []", got)
	}
}
