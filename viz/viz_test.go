package viz

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/view"
)

func grayCanvas(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 200, G: 200, B: 200, A: 255}), image.Point{}, draw.Src)
	return img
}

func mustBox(t *testing.T, ulx, uly, lrx, lry float64) model.BoundingBox {
	t.Helper()
	box, err := model.NewBoundingBox(ulx, uly, lrx, lry, true)
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}
	return box
}

func TestDraw(t *testing.T) {
	src := grayCanvas(100, 80)
	box := mustBox(t, 10, 10, 50, 40)

	got, err := Draw(src, []model.BoundingBox{box}, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	red := color.RGBA{R: 255, A: 255}
	gray := color.RGBA{R: 200, G: 200, B: 200, A: 255}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"top edge", 10, 10, red},
		{"top edge right", 49, 11, red},
		{"left edge", 11, 30, red},
		{"bottom edge", 30, 39, red},
		{"interior untouched", 30, 25, gray},
		{"outside untouched", 70, 70, gray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := got.RGBAAt(tt.x, tt.y); c != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, c, tt.want)
			}
		})
	}

	// The source image is never written to.
	if c := src.RGBAAt(10, 10); c != gray {
		t.Errorf("source pixel (10,10) = %v, want %v", c, gray)
	}
}

func TestDrawLabel(t *testing.T) {
	src := grayCanvas(120, 80)
	box := mustBox(t, 10, 30, 100, 60)

	got, err := Draw(src, []model.BoundingBox{box}, []string{"title"}, DefaultConfig())
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// The label sits above the box on a white strip with black glyphs.
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}

	foundBg := false
	foundGlyph := false
	for y := 15; y < 30; y++ {
		for x := 9; x < 50; x++ {
			switch got.RGBAAt(x, y) {
			case white:
				foundBg = true
			case black:
				foundGlyph = true
			}
		}
	}
	if !foundBg {
		t.Error("no label background pixels above the box")
	}
	if !foundGlyph {
		t.Error("no label glyph pixels above the box")
	}
}

func TestDrawRelativeBoxRejected(t *testing.T) {
	src := grayCanvas(100, 80)
	box, err := model.NewBoundingBox(0.1, 0.1, 0.5, 0.5, false)
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}

	if _, err := Draw(src, []model.BoundingBox{box}, nil, DefaultConfig()); !errors.Is(err, model.ErrInvalidCoordinates) {
		t.Errorf("Draw error = %v, want ErrInvalidCoordinates", err)
	}
}

func TestDrawLabelCountMismatch(t *testing.T) {
	src := grayCanvas(100, 80)
	boxes := []model.BoundingBox{mustBox(t, 10, 10, 50, 40), mustBox(t, 20, 20, 60, 50)}

	if _, err := Draw(src, boxes, []string{"only one"}, DefaultConfig()); err == nil {
		t.Error("expected error for label count mismatch, got nil")
	}
}

func TestDrawNilSource(t *testing.T) {
	if _, err := Draw(nil, nil, nil, DefaultConfig()); !errors.Is(err, model.ErrNoRaster) {
		t.Errorf("Draw error = %v, want ErrNoRaster", err)
	}
}

func TestDrawPage(t *testing.T) {
	img := model.NewImage("page.png", "/tmp/docs")
	if err := img.SetRaster(grayCanvas(100, 80)); err != nil {
		t.Fatalf("SetRaster: %v", err)
	}

	word := model.NewAnnotation(model.CategoryWord).WithBox(mustBox(t, 20, 20, 60, 50))
	word.DumpSubCategory(model.KeyCharacters, &model.SubCategory{
		Name:  model.KeyCharacters,
		Value: model.StringValue("hello"),
	})
	if err := img.Dump(word); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	page, err := view.FromImage(img, view.DefaultConfig())
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}

	got, err := DrawPage(page, DefaultConfig())
	if err != nil {
		t.Fatalf("DrawPage: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 100, 80) {
		t.Errorf("bounds = %v, want (0,0)-(100,80)", got.Bounds())
	}
	red := color.RGBA{R: 255, A: 255}
	if c := got.RGBAAt(20, 20); c != red {
		t.Errorf("pixel (20,20) = %v, want %v", c, red)
	}
}

func TestDrawPageNoRaster(t *testing.T) {
	img := model.NewImage("page.png", "/tmp/docs")
	page, err := view.FromImage(img, view.DefaultConfig())
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}

	if _, err := DrawPage(page, DefaultConfig()); !errors.Is(err, model.ErrNoRaster) {
		t.Errorf("DrawPage error = %v, want ErrNoRaster", err)
	}
}
