package view

import "github.com/tsawler/pagina/model"

// Cell is the region view over a table cell. It behaves like a [Layout]
// whose words live in the table's sub-structure, with grid coordinates
// on top.
type Cell struct {
	Layout
}

// RowNumber returns the 1-based row the cell is anchored in
func (c *Cell) RowNumber() (int, bool) {
	return c.tagID(model.KeyRowNumber)
}

// ColumnNumber returns the 1-based column the cell is anchored in
func (c *Cell) ColumnNumber() (int, bool) {
	return c.tagID(model.KeyColumnNumber)
}

// RowSpan returns the number of rows the cell covers
func (c *Cell) RowSpan() (int, bool) {
	return c.tagID(model.KeyRowSpan)
}

// ColumnSpan returns the number of columns the cell covers
func (c *Cell) ColumnSpan() (int, bool) {
	return c.tagID(model.KeyColumnSpan)
}

// IsHeader reports whether the cell is a header cell
func (c *Cell) IsHeader() bool {
	return c.ann.Category == model.CategoryHeader
}
