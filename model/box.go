package model

import (
	"fmt"
	"math"
)

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BoxMode selects the list form of a bounding box
type BoxMode int

const (
	// ModeXYXY is [ulx, uly, lrx, lry]
	ModeXYXY BoxMode = iota
	// ModeXYWH is [ulx, uly, width, height]
	ModeXYWH
)

func (m BoxMode) String() string {
	switch m {
	case ModeXYXY:
		return "xyxy"
	case ModeXYWH:
		return "xywh"
	default:
		return "unknown"
	}
}

// BoundingBox represents an axis-aligned rectangle over a page raster.
// Coordinates grow rightwards and downwards from the upper-left corner.
// Absolute boxes hold pixel coordinates; relative boxes hold coordinates
// normalized to [0,1] against some raster size.
type BoundingBox struct {
	Absolute bool    `json:"absolute_coords"`
	ULX      float64 `json:"ulx"`
	ULY      float64 `json:"uly"`
	LRX      float64 `json:"lrx"`
	LRY      float64 `json:"lry"`
}

// NewBoundingBox creates a bounding box from corner coordinates.
// Coordinates must be non-negative and the lower-right corner must not
// lie above or left of the upper-left corner.
func NewBoundingBox(ulx, uly, lrx, lry float64, absolute bool) (BoundingBox, error) {
	if ulx < 0 || uly < 0 || lrx < 0 || lry < 0 {
		return BoundingBox{}, fmt.Errorf("%w: negative coordinate in (%v, %v, %v, %v)", ErrInvalidCoordinates, ulx, uly, lrx, lry)
	}
	if lrx < ulx || lry < uly {
		return BoundingBox{}, fmt.Errorf("%w: lower-right (%v, %v) precedes upper-left (%v, %v)", ErrInvalidCoordinates, lrx, lry, ulx, uly)
	}
	return BoundingBox{Absolute: absolute, ULX: ulx, ULY: uly, LRX: lrx, LRY: lry}, nil
}

// Width returns the horizontal extent
func (b BoundingBox) Width() float64 {
	return b.LRX - b.ULX
}

// Height returns the vertical extent
func (b BoundingBox) Height() float64 {
	return b.LRY - b.ULY
}

// Area returns the area of the bounding box
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the center point
func (b BoundingBox) Center() Point {
	return Point{
		X: b.ULX + b.Width()/2,
		Y: b.ULY + b.Height()/2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.ULX && p.X <= b.LRX &&
		p.Y >= b.ULY && p.Y <= b.LRY
}

// Intersects checks if two bounding boxes intersect
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.LRX < other.ULX ||
		b.ULX > other.LRX ||
		b.LRY < other.ULY ||
		b.ULY > other.LRY)
}

// Intersection returns the intersection of two bounding boxes
func (b BoundingBox) Intersection(other BoundingBox) BoundingBox {
	if !b.Intersects(other) {
		return BoundingBox{Absolute: b.Absolute}
	}

	return BoundingBox{
		Absolute: b.Absolute,
		ULX:      math.Max(b.ULX, other.ULX),
		ULY:      math.Max(b.ULY, other.ULY),
		LRX:      math.Min(b.LRX, other.LRX),
		LRY:      math.Min(b.LRY, other.LRY),
	}
}

// Union returns the smallest box covering both bounding boxes
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		Absolute: b.Absolute,
		ULX:      math.Min(b.ULX, other.ULX),
		ULY:      math.Min(b.ULY, other.ULY),
		LRX:      math.Max(b.LRX, other.LRX),
		LRY:      math.Max(b.LRY, other.LRY),
	}
}

// IoU calculates the intersection over union with another box.
// Returns a value between 0 and 1.
func (b BoundingBox) IoU(other BoundingBox) float64 {
	if !b.Intersects(other) {
		return 0
	}

	inter := b.Intersection(other).Area()
	union := b.Area() + other.Area() - inter

	if union == 0 {
		return 0
	}

	return inter / union
}

// IsEmpty returns true if the bounding box has zero area
func (b BoundingBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// ToList returns the box coordinates in the given mode.
//
// Example:
//
//	box, _ := model.NewBoundingBox(10, 20, 110, 70, true)
//	coords, _ := box.ToList(model.ModeXYWH) // [10, 20, 100, 50]
func (b BoundingBox) ToList(mode BoxMode) ([]float64, error) {
	switch mode {
	case ModeXYXY:
		return []float64{b.ULX, b.ULY, b.LRX, b.LRY}, nil
	case ModeXYWH:
		return []float64{b.ULX, b.ULY, b.Width(), b.Height()}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
}

// Transform converts the box between relative and absolute coordinates
// against a raster of the given size. Converting in the direction the box
// already has returns the box unchanged. A conversion requires a positive
// raster size; otherwise ErrMissingReference is returned.
func (b BoundingBox) Transform(width, height float64, absolute bool) (BoundingBox, error) {
	if b.Absolute == absolute {
		return b, nil
	}
	if width <= 0 || height <= 0 {
		return BoundingBox{}, fmt.Errorf("%w: raster size (%v, %v) required for coordinate conversion", ErrMissingReference, width, height)
	}
	if absolute {
		return BoundingBox{
			Absolute: true,
			ULX:      b.ULX * width,
			ULY:      b.ULY * height,
			LRX:      b.LRX * width,
			LRY:      b.LRY * height,
		}, nil
	}
	return BoundingBox{
		Absolute: false,
		ULX:      b.ULX / width,
		ULY:      b.ULY / height,
		LRX:      b.LRX / width,
		LRY:      b.LRY / height,
	}, nil
}
