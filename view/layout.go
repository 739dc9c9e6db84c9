package view

import (
	"sort"
	"strings"

	"github.com/tsawler/pagina/model"
)

// Layout is the region view over a floating text block: a paragraph,
// title, list or any other configured layout category.
type Layout struct {
	base
}

// Words resolves the block's child relationship ids against the owning
// image, keeping the page's text container category. A block whose own
// category is the text container resolves to itself. The result keeps
// the image's insertion order.
func (l *Layout) Words() []Region {
	if l.ann.Category == l.page.cfg.TextContainer {
		return []Region{l}
	}
	ids := l.ann.Relationship(model.RelChild)
	if len(ids) == 0 {
		return nil
	}
	return l.page.regionsMatching(ids, l.page.cfg.TextContainer)
}

// Text joins the texts of the block's words that carry a reading order,
// ascending, with single spaces. Words without a reading order are left
// out.
func (l *Layout) Text() string {
	return orderedText(l.Words(), " ")
}

// orderedText keeps the regions with a reading order, sorts them
// ascending and joins their texts with sep.
func orderedText(regions []Region, sep string) string {
	type entry struct {
		order int
		text  string
	}
	var entries []entry
	for _, r := range regions {
		order, ok := r.ReadingOrder()
		if !ok {
			continue
		}
		entries = append(entries, entry{order: order, text: r.Text()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.text
	}
	return strings.Join(parts, sep)
}
