// Package layout assigns reading order to annotation graphs. Order is
// derived from box geometry: annotations are grouped into horizontal
// bands and read band by band, left to right, top to bottom.
package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/pagina/model"
)

// Config holds configuration for reading order assignment.
type Config struct {
	// BandOverlap is the minimum fractional vertical overlap for two
	// boxes to share a band, measured against the smaller height.
	BandOverlap float64

	// TextContainer is the category whose instances carry the text.
	TextContainer model.CategoryName

	// Blocks are the categories ordered against each other at page
	// level. The words inside each block are ordered separately.
	Blocks []model.CategoryName
}

// DefaultConfig returns sensible defaults: words inside text, title and
// list blocks, with boxes overlapping by half their height sharing a
// band.
func DefaultConfig() Config {
	return Config{
		BandOverlap:   0.5,
		TextContainer: model.CategoryWord,
		Blocks: []model.CategoryName{
			model.CategoryText,
			model.CategoryTitle,
			model.CategoryList,
		},
	}
}

// Orderer assigns reading order sub-categories based on box geometry.
type Orderer struct {
	config Config
}

// NewOrderer creates an orderer with default configuration.
func NewOrderer() *Orderer {
	return &Orderer{config: DefaultConfig()}
}

// NewOrdererWithConfig creates an orderer with custom configuration.
func NewOrdererWithConfig(config Config) *Orderer {
	return &Orderer{config: config}
}

// Order assigns a reading order to every block annotation and to the
// text containers inside each block. Existing reading orders are
// overwritten, so ordering is safe to repeat. Annotations without a box
// are left unordered.
//
// Example:
//
//	if err := layout.NewOrderer().Order(img); err != nil {
//	    // handle error
//	}
//	page, err := view.FromImage(img, view.DefaultConfig())
func (o *Orderer) Order(img *model.Image) error {
	if img == nil {
		return fmt.Errorf("cannot order a nil image")
	}

	blocks := img.GetAnnotation(model.WithCategories(o.config.Blocks...))
	for _, block := range blocks {
		words := o.childContainers(img, block)
		if err := o.assign(img, words); err != nil {
			return fmt.Errorf("block %s: %w", block.AnnotationID, err)
		}
	}
	if err := o.assign(img, blocks); err != nil {
		return err
	}

	// Containers outside any block read as one flat sequence.
	if len(blocks) == 0 {
		free := img.GetAnnotation(model.WithCategories(o.config.TextContainer))
		if err := o.assign(img, free); err != nil {
			return err
		}
	}
	return nil
}

// childContainers resolves the child relationships of a block to its
// text container annotations.
func (o *Orderer) childContainers(img *model.Image, block *model.Annotation) []*model.Annotation {
	ids := block.Relationship(model.RelChild)
	if len(ids) == 0 {
		return nil
	}
	return img.GetAnnotation(model.WithIDs(ids...), model.WithCategories(o.config.TextContainer))
}

type orderEntry struct {
	ann *model.Annotation
	box model.BoundingBox
}

// assign writes ascending reading order indices onto anns, banded by
// vertical overlap and sorted left to right within each band.
func (o *Orderer) assign(img *model.Image, anns []*model.Annotation) error {
	width, height, hasSize := img.Size()

	var entries []orderEntry
	for _, ann := range anns {
		if ann.Box == nil {
			continue
		}
		box := *ann.Box
		if !box.Absolute {
			if !hasSize {
				return fmt.Errorf("annotation %s: %w: relative box without raster size", ann.AnnotationID, model.ErrMissingReference)
			}
			resolved, err := box.Transform(width, height, true)
			if err != nil {
				return fmt.Errorf("annotation %s: %w", ann.AnnotationID, err)
			}
			box = resolved
		}
		entries = append(entries, orderEntry{ann: ann, box: box})
	}
	if len(entries) == 0 {
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].box.ULY < entries[j].box.ULY
	})

	bands := o.band(entries)

	next := 0
	for _, band := range bands {
		sort.SliceStable(band, func(i, j int) bool {
			return band[i].box.ULX < band[j].box.ULX
		})
		for _, e := range band {
			e.ann.DumpSubCategory(model.KeyReadingOrder, &model.SubCategory{
				Name: model.KeyReadingOrder,
				ID:   next,
			})
			next++
		}
	}
	return nil
}

// band groups entries sorted by top edge into horizontal bands. An
// entry joins the current band when its vertical overlap with the band
// span reaches the configured fraction of the smaller height.
func (o *Orderer) band(entries []orderEntry) [][]orderEntry {
	var bands [][]orderEntry

	current := []orderEntry{entries[0]}
	top, bottom := entries[0].box.ULY, entries[0].box.LRY

	for _, e := range entries[1:] {
		overlap := math.Min(bottom, e.box.LRY) - math.Max(top, e.box.ULY)
		ref := math.Min(bottom-top, e.box.Height())
		if ref > 0 && overlap >= o.config.BandOverlap*ref {
			current = append(current, e)
			top = math.Min(top, e.box.ULY)
			bottom = math.Max(bottom, e.box.LRY)
			continue
		}
		bands = append(bands, current)
		current = []orderEntry{e}
		top, bottom = e.box.ULY, e.box.LRY
	}
	return append(bands, current)
}
