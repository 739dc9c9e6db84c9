package view

import (
	"fmt"

	"github.com/tsawler/pagina/model"
)

// Config controls how a page is reconstructed from an image graph. The
// same configuration applies to every nested sub-structure of the page.
type Config struct {
	// TextContainer is the category whose annotations carry the actual
	// text, usually word.
	TextContainer model.CategoryName
	// LayoutTypes are the categories accepted as layout blocks. An
	// annotation outside LayoutTypes and the fixed table, word and
	// cell categories fails reconstruction.
	LayoutTypes []model.CategoryName
}

// DefaultConfig returns the configuration for the built-in vocabulary:
// words as text containers, the common block categories plus the table
// sub-structure categories as layouts.
func DefaultConfig() Config {
	return Config{
		TextContainer: model.CategoryWord,
		LayoutTypes: []model.CategoryName{
			model.CategoryText,
			model.CategoryTitle,
			model.CategoryList,
			model.CategoryFigure,
			model.CategoryLine,
			model.CategoryRow,
			model.CategoryColumn,
		},
	}
}

func (c Config) isLayoutType(name model.CategoryName) bool {
	for _, t := range c.LayoutTypes {
		if t == name {
			return true
		}
	}
	return false
}

// newRegion wraps an annotation in its typed view. Tables and cell-like
// categories are fixed, the text container becomes a Word, configured
// layout types become Layouts; anything else fails with
// ErrUnknownCategory.
func newRegion(ann *model.Annotation, owner *model.Image, page *Page, sub *Page) (Region, error) {
	b := base{ann: ann, owner: owner, page: page, sub: sub}
	switch {
	case ann.Category == model.CategoryTable:
		return &Table{Layout{base: b}}, nil
	case model.IsCellCategory(ann.Category):
		return &Cell{Layout{base: b}}, nil
	case ann.Category == model.CategoryWord || ann.Category == page.cfg.TextContainer:
		return &Word{base: b}, nil
	case page.cfg.isLayoutType(ann.Category):
		return &Layout{base: b}, nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownCategory, ann.Category)
	}
}
