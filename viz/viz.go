// Package viz renders annotation boxes and labels onto page rasters.
// It is meant for eyeballing page reconstructions during development.
package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/view"
)

// Config controls how boxes and labels are rendered.
type Config struct {
	BoxColor        color.Color
	LabelColor      color.Color
	LabelBackground color.Color
	Thickness       int
	DrawLabels      bool
}

// DefaultConfig returns red boxes two pixels thick with black-on-white
// labels.
func DefaultConfig() Config {
	return Config{
		BoxColor:        color.RGBA{R: 255, A: 255},
		LabelColor:      color.Black,
		LabelBackground: color.White,
		Thickness:       2,
		DrawLabels:      true,
	}
}

// Draw copies src and renders one rectangle per box onto the copy. When
// labels is non-empty it must have one entry per box; each label is
// printed near the top-left corner of its box. All boxes must carry
// absolute pixel coordinates.
func Draw(src image.Image, boxes []model.BoundingBox, labels []string, cfg Config) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no raster to draw on", model.ErrNoRaster)
	}
	if len(labels) != 0 && len(labels) != len(boxes) {
		return nil, fmt.Errorf("got %d labels for %d boxes", len(labels), len(boxes))
	}
	if cfg.Thickness <= 0 {
		cfg.Thickness = 1
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	for i, b := range boxes {
		if !b.Absolute {
			return nil, fmt.Errorf("box %d: %w: absolute pixel coordinates required", i, model.ErrInvalidCoordinates)
		}
		drawRect(dst, b, cfg.BoxColor, cfg.Thickness)
		if cfg.DrawLabels && len(labels) > 0 && labels[i] != "" {
			drawLabel(dst, b, labels[i], cfg)
		}
	}
	return dst, nil
}

// DrawPage renders every top-level region of a page onto its raster,
// labelled with the region category.
func DrawPage(page *view.Page, cfg Config) (*image.RGBA, error) {
	raster, err := page.Raster()
	if err != nil {
		return nil, err
	}

	var (
		boxes  []model.BoundingBox
		labels []string
	)
	for _, r := range page.Regions() {
		box, err := r.Box()
		if err != nil {
			continue
		}
		boxes = append(boxes, box)
		labels = append(labels, string(r.Category()))
	}
	return Draw(raster, boxes, labels, cfg)
}

// drawRect paints the four edges of b as filled strips, clipped to dst.
func drawRect(dst *image.RGBA, b model.BoundingBox, c color.Color, thickness int) {
	x0, y0 := int(b.ULX), int(b.ULY)
	x1, y1 := int(b.LRX), int(b.LRY)
	fill := image.NewUniform(c)

	strips := []image.Rectangle{
		image.Rect(x0, y0, x1, y0+thickness),
		image.Rect(x0, y1-thickness, x1, y1),
		image.Rect(x0, y0, x0+thickness, y1),
		image.Rect(x1-thickness, y0, x1, y1),
	}
	for _, s := range strips {
		s = s.Intersect(dst.Bounds())
		if !s.Empty() {
			draw.Draw(dst, s, fill, image.Point{}, draw.Src)
		}
	}
}

// drawLabel prints text just above the box, falling back to just inside
// it when the box touches the top of the image.
func drawLabel(dst *image.RGBA, b model.BoundingBox, text string, cfg Config) {
	face := basicfont.Face7x13

	x := int(b.ULX)
	y := int(b.ULY) - 3
	if y-face.Ascent < dst.Bounds().Min.Y {
		y = int(b.ULY) + face.Ascent + cfg.Thickness + 1
	}

	width := font.MeasureString(face, text).Ceil()
	bg := image.Rect(x-1, y-face.Ascent, x+width+1, y+face.Height-face.Ascent)
	bg = bg.Intersect(dst.Bounds())
	if !bg.Empty() {
		draw.Draw(dst, bg, image.NewUniform(cfg.LabelBackground), image.Point{}, draw.Src)
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(cfg.LabelColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
