package model

import "encoding/json"

// SubCategory refines an annotation under a named key. A sub-category with
// a non-nil Value is a container: it stores content, such as a word's
// characters or a table's HTML token stream. One without a value carries
// either a re-labeled category name or a bare numeric id.
type SubCategory struct {
	Name  CategoryName `json:"category_name"`
	ID    int          `json:"category_id"`
	Score float64      `json:"score,omitempty"`
	Value *Value       `json:"value,omitempty"`
}

// Copy returns a deep copy of the sub-category
func (s *SubCategory) Copy() *SubCategory {
	if s == nil {
		return nil
	}
	return &SubCategory{
		Name:  s.Name,
		ID:    s.ID,
		Score: s.Score,
		Value: s.Value.Copy(),
	}
}

// TagKind discriminates the result of a sub-category tag lookup
type TagKind int

const (
	// TagNone means the sub-category is absent.
	TagNone TagKind = iota
	// TagLabel carries the re-labeled category name.
	TagLabel
	// TagContent carries a container value.
	TagContent
	// TagID carries the bare numeric category id.
	TagID
)

// TagValue is the typed result of a sub-category tag lookup. Exactly the
// field matching Kind is meaningful.
type TagValue struct {
	Kind    TagKind
	Label   CategoryName
	Content *Value
	ID      int
}

// Annotation is one node of the page graph: a categorized, optionally
// localized detection with named sub-categories, relationship id lists and,
// for composites such as tables, a nested Image describing sub-structure.
type Annotation struct {
	AnnotationID  string                        `json:"annotation_id"`
	Active        bool                          `json:"active"`
	Category      CategoryName                  `json:"category_name"`
	CategoryID    int                           `json:"category_id"`
	Score         float64                       `json:"score,omitempty"`
	Box           *BoundingBox                  `json:"bounding_box,omitempty"`
	SubCategories map[CategoryName]*SubCategory `json:"sub_categories,omitempty"`
	Relationships map[RelationshipKey][]string  `json:"relationships,omitempty"`
	Image         *Image                        `json:"image,omitempty"`
}

// NewAnnotation creates an active annotation of the given category
func NewAnnotation(category CategoryName) *Annotation {
	return &Annotation{
		Active:   true,
		Category: category,
	}
}

// WithBox sets the bounding box and returns the annotation
func (a *Annotation) WithBox(box BoundingBox) *Annotation {
	a.Box = &box
	return a
}

// WithScore sets the confidence score and returns the annotation
func (a *Annotation) WithScore(score float64) *Annotation {
	a.Score = score
	return a
}

// GetSubCategory returns the sub-category stored under name
func (a *Annotation) GetSubCategory(name CategoryName) (*SubCategory, bool) {
	sub, ok := a.SubCategories[name]
	if !ok || sub == nil {
		return nil, false
	}
	return sub, true
}

// DumpSubCategory stores a sub-category under name, replacing any
// previous entry
func (a *Annotation) DumpSubCategory(name CategoryName, sub *SubCategory) {
	if a.SubCategories == nil {
		a.SubCategories = make(map[CategoryName]*SubCategory)
	}
	a.SubCategories[name] = sub
}

// RemoveSubCategory deletes the sub-category stored under name
func (a *Annotation) RemoveSubCategory(name CategoryName) {
	delete(a.SubCategories, name)
}

// AddRelationship appends an annotation id to the relationship list under
// key. Ids already present are not added again; order is preserved.
func (a *Annotation) AddRelationship(key RelationshipKey, id string) {
	if a.Relationships == nil {
		a.Relationships = make(map[RelationshipKey][]string)
	}
	for _, existing := range a.Relationships[key] {
		if existing == id {
			return
		}
	}
	a.Relationships[key] = append(a.Relationships[key], id)
}

// Relationship returns a copy of the id list stored under key
func (a *Annotation) Relationship(key RelationshipKey) []string {
	ids := a.Relationships[key]
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Tag interprets the sub-category stored under name: absent yields TagNone,
// a sub-category re-labeled to a different category name yields that name,
// a container yields its value, anything else yields the numeric id.
//
// Example:
//
//	switch tag := ann.Tag(model.KeyReadingOrder); tag.Kind {
//	case model.TagID:
//		// tag.ID holds the position
//	case model.TagNone:
//		// not ordered
//	}
func (a *Annotation) Tag(name CategoryName) TagValue {
	sub, ok := a.GetSubCategory(name)
	if !ok {
		return TagValue{Kind: TagNone}
	}
	if sub.Name != "" && sub.Name != name {
		return TagValue{Kind: TagLabel, Label: sub.Name}
	}
	if sub.Value != nil {
		return TagValue{Kind: TagContent, Content: sub.Value}
	}
	return TagValue{Kind: TagID, ID: sub.ID}
}

// Copy returns a deep copy of the annotation. A nested image is copied
// recursively; raster payload bytes are shared between the copies.
func (a *Annotation) Copy() *Annotation {
	if a == nil {
		return nil
	}
	out := &Annotation{
		AnnotationID: a.AnnotationID,
		Active:       a.Active,
		Category:     a.Category,
		CategoryID:   a.CategoryID,
		Score:        a.Score,
	}
	if a.Box != nil {
		box := *a.Box
		out.Box = &box
	}
	if a.SubCategories != nil {
		out.SubCategories = make(map[CategoryName]*SubCategory, len(a.SubCategories))
		for name, sub := range a.SubCategories {
			out.SubCategories[name] = sub.Copy()
		}
	}
	if a.Relationships != nil {
		out.Relationships = make(map[RelationshipKey][]string, len(a.Relationships))
		for key, ids := range a.Relationships {
			copied := make([]string, len(ids))
			copy(copied, ids)
			out.Relationships[key] = copied
		}
	}
	if a.Image != nil {
		out.Image = a.Image.Copy()
	}
	return out
}

// UnmarshalJSON decodes an annotation, defaulting Active to true when the
// field is absent.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	type alias Annotation
	aux := alias{Active: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*a = Annotation(aux)
	return nil
}
