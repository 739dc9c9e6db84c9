package view

import "github.com/tsawler/pagina/model"

// Word is the region view over a text container annotation. Its text is
// the characters container value.
type Word struct {
	base
}

// Text returns the stored characters, or the empty string
func (w *Word) Text() string {
	tag := w.ann.Tag(model.KeyCharacters)
	if tag.Kind != model.TagContent {
		return ""
	}
	return tag.Content.Text()
}

// Words returns the word itself
func (w *Word) Words() []Region {
	return []Region{w}
}

// TokenClass returns the token classification label, if any
func (w *Word) TokenClass() (model.CategoryName, bool) {
	tag := w.ann.Tag(model.KeyTokenClass)
	if tag.Kind != model.TagLabel {
		return "", false
	}
	return tag.Label, true
}

// TokenTag returns the BIO tagging label, if any
func (w *Word) TokenTag() (model.CategoryName, bool) {
	tag := w.ann.Tag(model.KeyTokenTag)
	if tag.Kind != model.TagLabel {
		return "", false
	}
	return tag.Label, true
}
