package view

import (
	"strings"

	"github.com/tsawler/pagina/model"
)

// cellCategories are the categories counted as table cells.
var cellCategories = []model.CategoryName{model.CategoryCell, model.CategoryHeader, model.CategoryBody}

// Table is the region view over a table annotation. Its cells, grid
// counts and HTML all come from the table's sub-structure page.
type Table struct {
	Layout
}

// Cells returns the cell regions of the table, resolved through the
// child relationship against the sub-structure page. A table without a
// materialized sub-structure has no cells.
func (t *Table) Cells() []Region {
	if t.sub == nil {
		return nil
	}
	ids := t.ann.Relationship(model.RelChild)
	if len(ids) == 0 {
		return nil
	}
	return t.sub.regionsMatching(ids, cellCategories...)
}

// HTML reconstructs the table markup: the stored token stream is copied,
// tokens equal to a cell's annotation id are replaced with that cell's
// text, and everything is joined. Tokens naming unknown ids stay
// untouched; the stored stream is never mutated.
//
// Example:
//
//	["<table>", "<tr>", "<td>", "cell-id-1", "</td>", "</tr>", "</table>"]
//
// renders as "<table><tr><td>Total</td></tr></table>" when the cell with
// that id reads "Total".
func (t *Table) HTML() string {
	tag := t.ann.Tag(model.KeyHTML)
	if tag.Kind != model.TagContent {
		return ""
	}
	tokens, ok := tag.Content.AsList()
	if !ok {
		// already assembled markup
		return tag.Content.Text()
	}

	cellText := make(map[string]string)
	for _, cell := range t.Cells() {
		cellText[cell.ID()] = cell.Text()
	}
	for i, token := range tokens {
		if text, ok := cellText[token]; ok {
			tokens[i] = text
		}
	}
	return strings.Join(tokens, "")
}

// Rows returns the row count recorded in the sub-structure summary
func (t *Table) Rows() (int, bool) {
	return t.summaryID(model.KeyNumberOfRows)
}

// Columns returns the column count recorded in the sub-structure summary
func (t *Table) Columns() (int, bool) {
	return t.summaryID(model.KeyNumberOfColumns)
}

func (t *Table) summaryID(key model.CategoryName) (int, bool) {
	if t.sub == nil || t.sub.summary == nil {
		return 0, false
	}
	tag := t.sub.summary.Tag(key)
	if tag.Kind != model.TagID {
		return 0, false
	}
	return tag.ID, true
}

// grid arranges the cell texts by their 1-based row and column numbers.
// The summary counts size the grid when present; otherwise the maximum
// cell coordinates do.
func (t *Table) grid() [][]string {
	cells := t.Cells()
	rows, okRows := t.Rows()
	cols, okCols := t.Columns()
	if !okRows || !okCols {
		for _, r := range cells {
			cell, ok := r.(*Cell)
			if !ok {
				continue
			}
			if rn, ok := cell.RowNumber(); ok && rn > rows {
				rows = rn
			}
			if cn, ok := cell.ColumnNumber(); ok && cn > cols {
				cols = cn
			}
		}
	}
	if rows <= 0 || cols <= 0 {
		return nil
	}

	g := make([][]string, rows)
	for i := range g {
		g[i] = make([]string, cols)
	}
	for _, r := range cells {
		cell, ok := r.(*Cell)
		if !ok {
			continue
		}
		rn, okRow := cell.RowNumber()
		cn, okCol := cell.ColumnNumber()
		if !okRow || !okCol || rn < 1 || cn < 1 || rn > rows || cn > cols {
			continue
		}
		g[rn-1][cn-1] = cell.Text()
	}
	return g
}

// CSV converts the table to CSV format
func (t *Table) CSV() string {
	var sb strings.Builder
	for _, row := range t.grid() {
		for j, text := range row {
			// Escape quotes and wrap in quotes if necessary
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Markdown converts the table to markdown format, first row as header
func (t *Table) Markdown() string {
	g := t.grid()
	if len(g) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header row
	for j, text := range g[0] {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(text, "\n", " "))
		sb.WriteString(" ")
		if j == len(g[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Separator
	for j := range g[0] {
		sb.WriteString("|---")
		if j == len(g[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Data rows
	for i := 1; i < len(g); i++ {
		for j, text := range g[i] {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(text, "\n", " "))
			sb.WriteString(" ")
			if j == len(g[i])-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
