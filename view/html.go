package view

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pagina/model"
)

// HTML renders the page as an HTML fragment: one element per region in
// detection order, paragraphs for layout block text, headings for
// titles, and the reconstructed table markup spliced in as parsed nodes.
// Regions without any text contribute nothing.
func (p *Page) HTML() (string, error) {
	article := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Article,
		Data:     "article",
		Attr:     []html.Attribute{{Key: "data-page", Val: p.ImageID()}},
	}

	for _, r := range p.regions {
		switch v := r.(type) {
		case *Table:
			frag := v.HTML()
			if frag == "" {
				continue
			}
			context := &html.Node{Type: html.ElementNode, DataAtom: atom.Table, Data: "table"}
			nodes, err := html.ParseFragment(strings.NewReader(frag), context)
			if err != nil {
				return "", fmt.Errorf("parsing markup of table %s: %w", v.ID(), err)
			}
			table := &html.Node{Type: html.ElementNode, DataAtom: atom.Table, Data: "table"}
			for _, n := range nodes {
				table.AppendChild(n)
			}
			article.AppendChild(table)
		case *Layout:
			text := v.Text()
			if text == "" {
				continue
			}
			name, a := "p", atom.P
			if v.Category() == model.CategoryTitle {
				name, a = "h2", atom.H2
			}
			el := &html.Node{Type: html.ElementNode, DataAtom: a, Data: name}
			el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
			article.AppendChild(el)
		}
	}

	var sb strings.Builder
	if err := html.Render(&sb, article); err != nil {
		return "", fmt.Errorf("rendering page %s: %w", p.ImageID(), err)
	}
	return sb.String(), nil
}
