package model

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SetRaster encodes the raster as PNG into the payload and sets the
// image's own box from the raster bounds.
func (img *Image) SetRaster(raster image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, raster); err != nil {
		return fmt.Errorf("encoding raster: %w", err)
	}
	bounds := raster.Bounds()
	img.payload = buf.Bytes()
	img.box = &BoundingBox{
		Absolute: true,
		LRX:      float64(bounds.Dx()),
		LRY:      float64(bounds.Dy()),
	}
	return nil
}

// SetRasterBytes stores already encoded raster bytes and sets the image's
// own box from the decoded dimensions. PNG, JPEG, GIF, TIFF, BMP and WebP
// are recognized.
func (img *Image) SetRasterBytes(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding raster config: %w", err)
	}
	img.payload = data
	img.box = &BoundingBox{
		Absolute: true,
		LRX:      float64(cfg.Width),
		LRY:      float64(cfg.Height),
	}
	return nil
}

// Raster decodes the payload back into an image, or returns ErrNoRaster
// when the image carries no pixel data.
func (img *Image) Raster() (image.Image, error) {
	if len(img.payload) == 0 {
		return nil, fmt.Errorf("%w: image %s", ErrNoRaster, img.ImageID)
	}
	raster, _, err := image.Decode(bytes.NewReader(img.payload))
	if err != nil {
		return nil, fmt.Errorf("decoding raster of image %s: %w", img.ImageID, err)
	}
	return raster, nil
}
