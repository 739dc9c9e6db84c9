package rag

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/view"
)

// ============================================================================
// Fixtures
// ============================================================================

// blockPage builds a page whose layout blocks carry the given texts, in
// reading order.
func blockPage(t *testing.T, fileName string, texts ...string) *view.Page {
	t.Helper()

	img := model.NewImage(fileName, "/scans/rag")
	for i, text := range texts {
		wordID := fmt.Sprintf("w%d", i)
		word := model.NewAnnotation(model.CategoryWord)
		word.AnnotationID = wordID
		word.DumpSubCategory(model.KeyCharacters, &model.SubCategory{
			Name:  model.KeyCharacters,
			Value: model.StringValue(text),
		})
		word.DumpSubCategory(model.KeyReadingOrder, &model.SubCategory{
			Name: model.KeyReadingOrder,
			ID:   0,
		})

		block := model.NewAnnotation(model.CategoryText)
		block.AnnotationID = fmt.Sprintf("b%d", i)
		block.DumpSubCategory(model.KeyReadingOrder, &model.SubCategory{
			Name: model.KeyReadingOrder,
			ID:   i,
		})
		block.AddRelationship(model.RelChild, wordID)

		for _, ann := range []*model.Annotation{word, block} {
			if err := img.Dump(ann); err != nil {
				t.Fatalf("Dump(%s): %v", ann.AnnotationID, err)
			}
		}
	}

	page, err := view.FromImage(img, view.DefaultConfig())
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	return page
}

// tablePage builds a page holding one table with a single Total/42 row.
func tablePage(t *testing.T) *view.Page {
	t.Helper()

	sub := model.NewImage("", "")
	sub.ImageID = "tab-img"

	newWord := func(id, chars string) *model.Annotation {
		word := model.NewAnnotation(model.CategoryWord)
		word.AnnotationID = id
		word.DumpSubCategory(model.KeyCharacters, &model.SubCategory{
			Name:  model.KeyCharacters,
			Value: model.StringValue(chars),
		})
		word.DumpSubCategory(model.KeyReadingOrder, &model.SubCategory{
			Name: model.KeyReadingOrder,
			ID:   0,
		})
		return word
	}
	newCell := func(id string, col int, wordID string) *model.Annotation {
		cell := model.NewAnnotation(model.CategoryCell)
		cell.AnnotationID = id
		cell.DumpSubCategory(model.KeyRowNumber, &model.SubCategory{Name: model.KeyRowNumber, ID: 1})
		cell.DumpSubCategory(model.KeyColumnNumber, &model.SubCategory{Name: model.KeyColumnNumber, ID: col})
		cell.AddRelationship(model.RelChild, wordID)
		return cell
	}

	for _, ann := range []*model.Annotation{
		newCell("c1", 1, "cw1"),
		newCell("c2", 2, "cw2"),
		newWord("cw1", "Total"),
		newWord("cw2", "42"),
	} {
		if err := sub.Dump(ann); err != nil {
			t.Fatalf("Dump(%s): %v", ann.AnnotationID, err)
		}
	}
	summary := model.NewAnnotation("summary")
	summary.AnnotationID = "tab-sum"
	summary.DumpSubCategory(model.KeyNumberOfRows, &model.SubCategory{Name: model.KeyNumberOfRows, ID: 1})
	summary.DumpSubCategory(model.KeyNumberOfColumns, &model.SubCategory{Name: model.KeyNumberOfColumns, ID: 2})
	sub.SetSummary(summary)

	table := model.NewAnnotation(model.CategoryTable)
	table.AnnotationID = "tab1"
	table.AddRelationship(model.RelChild, "c1")
	table.AddRelationship(model.RelChild, "c2")
	table.Image = sub

	img := model.NewImage("table_page.png", "/scans/rag")
	if err := img.Dump(table); err != nil {
		t.Fatalf("Dump(tab1): %v", err)
	}

	page, err := view.FromImage(img, view.DefaultConfig())
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	return page
}

// ============================================================================
// Text chunking
// ============================================================================

func TestChunkPageSingleChunk(t *testing.T) {
	page := blockPage(t, "p1.png", "First block.", "Second block.")

	chunks := NewChunker().ChunkPage(page)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}

	chunk := chunks[0]
	if chunk.Type != ChunkText {
		t.Errorf("Type = %s, want %s", chunk.Type, ChunkText)
	}
	if chunk.Index != 0 {
		t.Errorf("Index = %d, want 0", chunk.Index)
	}
	if chunk.PageID != page.ImageID() {
		t.Errorf("PageID = %s, want %s", chunk.PageID, page.ImageID())
	}
	if want := "First block.\nSecond block."; chunk.Text != want {
		t.Errorf("Text = %q, want %q", chunk.Text, want)
	}
	if len(chunk.Regions) != 2 || chunk.Regions[0] != "b0" || chunk.Regions[1] != "b1" {
		t.Errorf("Regions = %v, want [b0 b1]", chunk.Regions)
	}
}

func TestChunkPageSplitsAtBlockBoundary(t *testing.T) {
	page := blockPage(t, "p1.png", "alpha beta", "gamma delta", "epsilon")

	chunker := NewChunkerWithConfig(ChunkerConfig{
		MaxChunkSize: 12,
		MinChunkSize: 0,
		Overlap:      0,
	})
	chunks := chunker.ChunkPage(page)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	wants := []string{"alpha beta", "gamma delta", "epsilon"}
	for i, want := range wants {
		if chunks[i].Text != want {
			t.Errorf("chunk %d: Text = %q, want %q", i, chunks[i].Text, want)
		}
		if len(chunks[i].Regions) != 1 {
			t.Errorf("chunk %d: Regions = %v, want one region", i, chunks[i].Regions)
		}
	}
}

func TestChunkPageOversizedBlockStaysWhole(t *testing.T) {
	long := strings.Repeat("word ", 20)
	page := blockPage(t, "p1.png", strings.TrimSpace(long))

	chunker := NewChunkerWithConfig(ChunkerConfig{MaxChunkSize: 10, Overlap: 0})
	chunks := chunker.ChunkPage(page)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != strings.TrimSpace(long) {
		t.Errorf("oversized block was split: %q", chunks[0].Text)
	}
}

func TestChunkPageOverlap(t *testing.T) {
	page := blockPage(t, "p1.png", "one two three", "four five")

	chunker := NewChunkerWithConfig(ChunkerConfig{
		MaxChunkSize: 14,
		MinChunkSize: 0,
		Overlap:      6,
	})
	chunks := chunker.ChunkPage(page)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Text != "one two three" {
		t.Errorf("chunk 0: Text = %q, want %q", chunks[0].Text, "one two three")
	}
	if want := "three\nfour five"; chunks[1].Text != want {
		t.Errorf("chunk 1: Text = %q, want %q", chunks[1].Text, want)
	}
	// The overlap is context only, not a region claim.
	if len(chunks[1].Regions) != 1 || chunks[1].Regions[0] != "b1" {
		t.Errorf("chunk 1: Regions = %v, want [b1]", chunks[1].Regions)
	}
}

func TestChunkPageMergesShortTail(t *testing.T) {
	page := blockPage(t, "p1.png", "a long enough opening block", "tail")

	chunker := NewChunkerWithConfig(ChunkerConfig{
		MaxChunkSize: 28,
		MinChunkSize: 10,
		Overlap:      0,
	})
	chunks := chunker.ChunkPage(page)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if want := "a long enough opening block\ntail"; chunks[0].Text != want {
		t.Errorf("Text = %q, want %q", chunks[0].Text, want)
	}
	if len(chunks[0].Regions) != 2 {
		t.Errorf("Regions = %v, want both blocks", chunks[0].Regions)
	}
}

func TestChunkPageEmpty(t *testing.T) {
	page := blockPage(t, "p1.png")
	if chunks := NewChunker().ChunkPage(page); len(chunks) != 0 {
		t.Errorf("got %d chunks for an empty page, want 0", len(chunks))
	}
	if chunks := NewChunker().ChunkPage(nil); chunks != nil {
		t.Errorf("got %v for a nil page, want nil", chunks)
	}
}

// ============================================================================
// Tables
// ============================================================================

func TestChunkPageTable(t *testing.T) {
	page := tablePage(t)

	chunks := NewChunker().ChunkPage(page)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	chunk := chunks[0]
	if chunk.Type != ChunkTable {
		t.Errorf("Type = %s, want %s", chunk.Type, ChunkTable)
	}
	if !strings.HasPrefix(chunk.Text, "| Total | 42 |") {
		t.Errorf("Text = %q, want markdown table", chunk.Text)
	}
	if len(chunk.Regions) != 1 || chunk.Regions[0] != "tab1" {
		t.Errorf("Regions = %v, want [tab1]", chunk.Regions)
	}
}

func TestChunkPageTableDisabled(t *testing.T) {
	page := tablePage(t)

	chunker := NewChunkerWithConfig(ChunkerConfig{MaxChunkSize: 1000, PreserveTables: false})
	if chunks := chunker.ChunkPage(page); len(chunks) != 0 {
		t.Errorf("got %d chunks with tables disabled, want 0", len(chunks))
	}
}

// ============================================================================
// Multiple pages
// ============================================================================

func TestChunkPagesReindexes(t *testing.T) {
	first := blockPage(t, "p1.png", "page one text")
	second := blockPage(t, "p2.png", "page two text")

	chunks := NewChunker().ChunkPages([]*view.Page{first, second})
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d: Index = %d", i, chunk.Index)
		}
	}
	if chunks[0].PageID == chunks[1].PageID {
		t.Error("chunks from different pages share a page id")
	}
}
