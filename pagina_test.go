package pagina

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/tsawler/pagina/dataset"
	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/ocr"
)

// ============================================================================
// Fixtures
// ============================================================================

// invoiceImage builds a minimal single-block page: a title whose only
// word reads "Invoice".
func invoiceImage(t *testing.T) *model.Image {
	t.Helper()

	img := model.NewImage("invoice_1.png", "/scans/acme")
	img.SetBox(model.BoundingBox{Absolute: true, LRX: 1000, LRY: 800})

	word := model.NewAnnotation(model.CategoryWord)
	word.AnnotationID = "w1"
	word.Box = &model.BoundingBox{Absolute: true, ULX: 10, ULY: 10, LRX: 200, LRY: 40}
	word.DumpSubCategory(model.KeyCharacters, &model.SubCategory{
		Name:  model.KeyCharacters,
		Value: model.StringValue("Invoice"),
	})
	word.DumpSubCategory(model.KeyReadingOrder, &model.SubCategory{
		Name: model.KeyReadingOrder,
		ID:   0,
	})

	title := model.NewAnnotation(model.CategoryTitle)
	title.AnnotationID = "h1"
	title.Box = &model.BoundingBox{Absolute: true, ULX: 10, ULY: 10, LRX: 400, LRY: 50}
	title.DumpSubCategory(model.KeyReadingOrder, &model.SubCategory{
		Name: model.KeyReadingOrder,
		ID:   0,
	})
	title.AddRelationship(model.RelChild, "w1")

	for _, ann := range []*model.Annotation{word, title} {
		if err := img.Dump(ann); err != nil {
			t.Fatalf("Dump(%s): %v", ann.AnnotationID, err)
		}
	}
	return img
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	raster := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			raster.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, raster); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// ============================================================================
// Facade
// ============================================================================

func TestFromJSON(t *testing.T) {
	data, err := json.Marshal(invoiceImage(t))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	page, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got := page.Text(); got != "\nInvoice" {
		t.Errorf("Text() = %q, want %q", got, "\nInvoice")
	}
}

func TestFromJSONBadInput(t *testing.T) {
	if _, err := FromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed input, got nil")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"plain", "pages.jsonl"},
		{"compressed", "pages.jsonl.zst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := invoiceImage(t)
			path := filepath.Join(t.TempDir(), tt.file)
			if err := dataset.WriteAll(path, []*model.Image{img, img.Copy()}); err != nil {
				t.Fatalf("WriteAll: %v", err)
			}

			pages, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(pages) != 2 {
				t.Fatalf("Load returned %d pages, want 2", len(pages))
			}
			for i, page := range pages {
				if got := page.Text(); got != "\nInvoice" {
					t.Errorf("page %d: Text() = %q, want %q", i, got, "\nInvoice")
				}
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestPageFromImage(t *testing.T) {
	page, err := PageFromImage(invoiceImage(t))
	if err != nil {
		t.Fatalf("PageFromImage: %v", err)
	}
	if len(page.Words()) != 1 {
		t.Errorf("Words() returned %d words, want 1", len(page.Words()))
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must(42, nil) = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must with error did not panic")
		}
	}()
	Must(0, errors.New("boom"))
}

// ============================================================================
// OCR integration
// ============================================================================

func TestImageFromOCR(t *testing.T) {
	raster := testPNG(t, 200, 100)
	words := []ocr.Word{
		{Text: "Total", Box: model.BoundingBox{Absolute: true, ULX: 10, ULY: 10, LRX: 80, LRY: 30}, Confidence: 96},
		{Text: "42", Box: model.BoundingBox{Absolute: true, ULX: 90, ULY: 10, LRX: 120, LRY: 30}, Confidence: 88},
	}

	img, err := ImageFromOCR("scan.png", raster, words)
	if err != nil {
		t.Fatalf("ImageFromOCR: %v", err)
	}

	anns := img.Annotations()
	if len(anns) != 2 {
		t.Fatalf("got %d annotations, want 2", len(anns))
	}
	if anns[0].Score != 0.96 {
		t.Errorf("Score = %v, want 0.96", anns[0].Score)
	}
	if tag := anns[0].Tag(model.KeyCharacters); tag.Kind != model.TagContent || tag.Content.Text() != "Total" {
		t.Errorf("Tag(characters) = %+v, want content %q", tag, "Total")
	}

	width, height, ok := img.Size()
	if !ok || width != 200 || height != 100 {
		t.Errorf("Size() = (%v, %v, %v), want (200, 100, true)", width, height, ok)
	}

	page, err := PageFromImage(img)
	if err != nil {
		t.Fatalf("PageFromImage: %v", err)
	}
	if len(page.Words()) != 2 {
		t.Errorf("Words() returned %d words, want 2", len(page.Words()))
	}
}

func TestImageFromOCRDeterministic(t *testing.T) {
	words := []ocr.Word{
		{Text: "Total", Box: model.BoundingBox{Absolute: true, ULX: 10, ULY: 10, LRX: 80, LRY: 30}, Confidence: 96},
	}

	first, err := ImageFromOCR("scan.png", nil, words)
	if err != nil {
		t.Fatalf("ImageFromOCR: %v", err)
	}
	second, err := ImageFromOCR("scan.png", nil, words)
	if err != nil {
		t.Fatalf("ImageFromOCR: %v", err)
	}

	if first.ImageID != second.ImageID {
		t.Errorf("ImageID differs: %s vs %s", first.ImageID, second.ImageID)
	}
	firstAnns, secondAnns := first.Annotations(), second.Annotations()
	if firstAnns[0].AnnotationID != secondAnns[0].AnnotationID {
		t.Errorf("AnnotationID differs: %s vs %s", firstAnns[0].AnnotationID, secondAnns[0].AnnotationID)
	}
}

func TestImageFromOCRBadRaster(t *testing.T) {
	if _, err := ImageFromOCR("scan.png", []byte("not a png"), nil); err == nil {
		t.Error("expected error for undecodable raster, got nil")
	}
}
