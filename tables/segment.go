// Package tables derives table structure from cell geometry. Cells are
// clustered into rows and columns by their top and left edges, numbered
// 1-based, and the resulting grid shape is recorded on the table
// sub-image summary.
package tables

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/pagina/model"
)

// Config holds configuration for table segmentation.
type Config struct {
	// AlignmentTolerance is the maximum distance in pixels between cell
	// edges clustered onto the same row or column anchor.
	AlignmentTolerance float64
}

// DefaultConfig returns a three pixel alignment tolerance.
func DefaultConfig() Config {
	return Config{AlignmentTolerance: 3}
}

// Segmenter numbers table cells from their box geometry.
type Segmenter struct {
	config Config
}

// NewSegmenter creates a segmenter with default configuration.
func NewSegmenter() *Segmenter {
	return &Segmenter{config: DefaultConfig()}
}

// NewSegmenterWithConfig creates a segmenter with custom configuration.
func NewSegmenterWithConfig(config Config) *Segmenter {
	return &Segmenter{config: config}
}

// Segment assigns row and column numbers and spans to every cell of the
// table's sub-image and records the row and column counts on the
// sub-image summary. Existing assignments are overwritten. Tables
// without cells are left untouched.
//
// Example:
//
//	if err := tables.NewSegmenter().Segment(tableAnn); err != nil {
//	    // handle error
//	}
func (s *Segmenter) Segment(table *model.Annotation) error {
	if table == nil {
		return fmt.Errorf("cannot segment a nil annotation")
	}
	sub := table.Image
	if sub == nil {
		return fmt.Errorf("table %s: %w: no sub-image to segment", table.AnnotationID, model.ErrMissingBaseImage)
	}

	cells := sub.GetAnnotation(func(a *model.Annotation) bool {
		return model.IsCellCategory(a.Category)
	})
	if len(cells) == 0 {
		return nil
	}

	boxes := make([]model.BoundingBox, len(cells))
	width, height, hasSize := sub.Size()
	for i, cell := range cells {
		if cell.Box == nil {
			return fmt.Errorf("cell %s: %w: box required for segmentation", cell.AnnotationID, model.ErrMissingReference)
		}
		box := *cell.Box
		if !box.Absolute {
			if !hasSize {
				return fmt.Errorf("cell %s: %w: relative box without raster size", cell.AnnotationID, model.ErrMissingReference)
			}
			resolved, err := box.Transform(width, height, true)
			if err != nil {
				return fmt.Errorf("cell %s: %w", cell.AnnotationID, err)
			}
			box = resolved
		}
		boxes[i] = box
	}

	rowAnchors := s.cluster(edgePositions(boxes, func(b model.BoundingBox) float64 { return b.ULY }))
	colAnchors := s.cluster(edgePositions(boxes, func(b model.BoundingBox) float64 { return b.ULX }))

	for i, cell := range cells {
		box := boxes[i]
		row := s.nearestAnchor(rowAnchors, box.ULY)
		col := s.nearestAnchor(colAnchors, box.ULX)
		rowSpan := s.spannedAnchors(rowAnchors, box.ULY, box.LRY)
		colSpan := s.spannedAnchors(colAnchors, box.ULX, box.LRX)

		cell.DumpSubCategory(model.KeyRowNumber, &model.SubCategory{Name: model.KeyRowNumber, ID: row})
		cell.DumpSubCategory(model.KeyColumnNumber, &model.SubCategory{Name: model.KeyColumnNumber, ID: col})
		cell.DumpSubCategory(model.KeyRowSpan, &model.SubCategory{Name: model.KeyRowSpan, ID: rowSpan})
		cell.DumpSubCategory(model.KeyColumnSpan, &model.SubCategory{Name: model.KeyColumnSpan, ID: colSpan})
	}

	summary := sub.Summary()
	if summary == nil {
		summary = model.NewAnnotation("summary")
		summary.AnnotationID = model.DeriveID(sub.ImageID, "summary")
		sub.SetSummary(summary)
	}
	summary.DumpSubCategory(model.KeyNumberOfRows, &model.SubCategory{Name: model.KeyNumberOfRows, ID: len(rowAnchors)})
	summary.DumpSubCategory(model.KeyNumberOfColumns, &model.SubCategory{Name: model.KeyNumberOfColumns, ID: len(colAnchors)})
	return nil
}

func edgePositions(boxes []model.BoundingBox, edge func(model.BoundingBox) float64) []float64 {
	positions := make([]float64, len(boxes))
	for i, b := range boxes {
		positions[i] = edge(b)
	}
	return positions
}

// cluster groups sorted positions into anchors: a position within the
// alignment tolerance of the group's first member joins the group, and
// each anchor is the group mean.
func (s *Segmenter) cluster(positions []float64) []float64 {
	sort.Float64s(positions)

	var anchors []float64
	start := 0
	for i := 1; i <= len(positions); i++ {
		if i < len(positions) && positions[i]-positions[start] <= s.config.AlignmentTolerance {
			continue
		}
		sum := 0.0
		for _, p := range positions[start:i] {
			sum += p
		}
		anchors = append(anchors, sum/float64(i-start))
		start = i
	}
	return anchors
}

// nearestAnchor returns the 1-based index of the anchor closest to pos.
func (s *Segmenter) nearestAnchor(anchors []float64, pos float64) int {
	best, bestDist := 1, math.Inf(1)
	for i, a := range anchors {
		if d := math.Abs(a - pos); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}

// spannedAnchors counts the anchors covered by the span from start to
// end, which is the row or column span of the cell.
func (s *Segmenter) spannedAnchors(anchors []float64, start, end float64) int {
	count := 0
	for _, a := range anchors {
		if a >= start-s.config.AlignmentTolerance && a < end-s.config.AlignmentTolerance {
			count++
		}
	}
	if count < 1 {
		return 1
	}
	return count
}
