package view

import (
	"fmt"

	"github.com/tsawler/pagina/model"
)

// Region is the read-only interface over one annotation in page context.
// The implementations form a closed set: [Word], [Layout], [Cell] and
// [Table]. All of them share the same underlying record; what differs is
// how Words, Text and the table queries resolve.
type Region interface {
	// ID returns the annotation id.
	ID() string
	// Category returns the annotation category.
	Category() model.CategoryName
	// CategoryID returns the numeric category id.
	CategoryID() int
	// Score returns the detection confidence.
	Score() float64
	// Box resolves the region position in absolute page coordinates.
	Box() (model.BoundingBox, error)
	// Tag interprets the sub-category stored under name.
	Tag(name model.CategoryName) model.TagValue
	// ReadingOrder returns the region's position in the reading sequence.
	ReadingOrder() (int, bool)
	// Words returns the text container regions the region resolves to.
	Words() []Region
	// Text returns the region text in reading order.
	Text() string
	// Sub returns the materialized sub-structure page, or nil.
	Sub() *Page

	annotation() *model.Annotation
}

// base carries the state shared by every region view: the viewed
// annotation, the image it lives in, the page it was materialized into
// and, for composites, the sub-structure page.
type base struct {
	ann   *model.Annotation
	owner *model.Image
	page  *Page
	sub   *Page
}

func (b *base) ID() string {
	return b.ann.AnnotationID
}

func (b *base) Category() model.CategoryName {
	return b.ann.Category
}

func (b *base) CategoryID() int {
	return b.ann.CategoryID
}

func (b *base) Score() float64 {
	return b.ann.Score
}

func (b *base) Tag(name model.CategoryName) model.TagValue {
	return b.ann.Tag(name)
}

// ReadingOrder returns the reading position stored under the
// reading_order sub-category
func (b *base) ReadingOrder() (int, bool) {
	return b.tagID(model.KeyReadingOrder)
}

func (b *base) tagID(key model.CategoryName) (int, bool) {
	tag := b.ann.Tag(key)
	if tag.Kind != model.TagID {
		return 0, false
	}
	return tag.ID, true
}

// Box resolves the region position: the embedding recorded for the
// region's sub-image takes precedence over the annotation's own box, and
// relative coordinates are converted to absolute against the owning
// image size. With no box available anywhere the resolution fails with
// ErrMissingBaseImage.
func (b *base) Box() (model.BoundingBox, error) {
	var box *model.BoundingBox
	if b.ann.Image != nil {
		if emb, err := b.owner.GetEmbedding(b.ann.Image.ImageID); err == nil {
			box = &emb
		}
	}
	if box == nil {
		box = b.ann.Box
	}
	if box == nil {
		return model.BoundingBox{}, fmt.Errorf("%w: annotation %s", model.ErrMissingBaseImage, b.ann.AnnotationID)
	}
	width, height, _ := b.owner.Size()
	resolved, err := box.Transform(width, height, true)
	if err != nil {
		return model.BoundingBox{}, fmt.Errorf("annotation %s: %w", b.ann.AnnotationID, err)
	}
	return resolved, nil
}

func (b *base) Sub() *Page {
	return b.sub
}

func (b *base) annotation() *model.Annotation {
	return b.ann
}
