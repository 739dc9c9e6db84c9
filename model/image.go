package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Image is the container for one page (or one sub-structure, such as the
// inside of a table): identifying metadata, an optional raster payload,
// the annotation graph in insertion order, an embedding table recording
// where nested images sit inside this one, and an optional summary
// annotation holding page-level sub-categories.
type Image struct {
	ImageID    string
	FileName   string
	Location   string
	ExternalID string

	payload    []byte
	box        *BoundingBox
	anns       []*Annotation
	index      map[string]int
	embeddings map[string]BoundingBox
	summary    *Annotation
}

// NewImage creates an image container. When file name or location are
// given the image id is derived from them, so re-running a pipeline over
// the same inputs yields the same id; otherwise the id is random.
func NewImage(fileName, location string) *Image {
	id := NewID()
	if fileName != "" || location != "" {
		id = DeriveID(location, fileName)
	}
	return &Image{
		ImageID:  id,
		FileName: fileName,
		Location: location,
		index:    make(map[string]int),
	}
}

// Filter restricts an annotation query. Filters combine with AND.
type Filter func(*Annotation) bool

// WithCategories matches annotations whose category is one of names
func WithCategories(names ...CategoryName) Filter {
	return func(a *Annotation) bool {
		for _, name := range names {
			if a.Category == name {
				return true
			}
		}
		return false
	}
}

// WithIDs matches annotations whose id is one of ids
func WithIDs(ids ...string) Filter {
	return func(a *Annotation) bool {
		for _, id := range ids {
			if a.AnnotationID == id {
				return true
			}
		}
		return false
	}
}

// Dump appends an annotation to the image. An empty annotation id is
// filled in deterministically from the image id, the category, the box
// and the current position. Dumping an id already present fails with
// ErrDuplicateAnnotation.
func (img *Image) Dump(ann *Annotation) error {
	if ann == nil {
		return fmt.Errorf("cannot dump nil annotation")
	}
	if ann.AnnotationID == "" {
		ann.AnnotationID = img.deriveAnnotationID(ann)
	}
	if img.index == nil {
		img.index = make(map[string]int)
	}
	if _, ok := img.index[ann.AnnotationID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAnnotation, ann.AnnotationID)
	}
	img.index[ann.AnnotationID] = len(img.anns)
	img.anns = append(img.anns, ann)
	return nil
}

func (img *Image) deriveAnnotationID(ann *Annotation) string {
	parts := []string{img.ImageID, string(ann.Category), strconv.Itoa(len(img.anns))}
	if ann.Box != nil {
		parts = append(parts,
			strconv.FormatFloat(ann.Box.ULX, 'f', -1, 64),
			strconv.FormatFloat(ann.Box.ULY, 'f', -1, 64),
			strconv.FormatFloat(ann.Box.LRX, 'f', -1, 64),
			strconv.FormatFloat(ann.Box.LRY, 'f', -1, 64))
	}
	return DeriveID(parts...)
}

// GetAnnotation returns the active annotations matching all filters, in
// insertion order. No filters means all active annotations. Matching
// nothing yields an empty result, never an error.
func (img *Image) GetAnnotation(filters ...Filter) []*Annotation {
	var out []*Annotation
	for _, ann := range img.anns {
		if !ann.Active {
			continue
		}
		match := true
		for _, filter := range filters {
			if !filter(ann) {
				match = false
				break
			}
		}
		if match {
			out = append(out, ann)
		}
	}
	return out
}

// HasAnnotation reports whether an annotation id is present, active or not
func (img *Image) HasAnnotation(id string) bool {
	_, ok := img.index[id]
	return ok
}

// Annotations returns all annotations in insertion order, including
// inactive ones. The returned slice is a copy; the annotations are not.
func (img *Image) Annotations() []*Annotation {
	out := make([]*Annotation, len(img.anns))
	copy(out, img.anns)
	return out
}

// SetEmbedding records where the image with the given id sits inside
// this one
func (img *Image) SetEmbedding(imageID string, box BoundingBox) {
	if img.embeddings == nil {
		img.embeddings = make(map[string]BoundingBox)
	}
	img.embeddings[imageID] = box
}

// GetEmbedding returns the recorded position of the image with the given
// id inside this one, or ErrEmbeddingNotFound.
func (img *Image) GetEmbedding(imageID string) (BoundingBox, error) {
	box, ok := img.embeddings[imageID]
	if !ok {
		return BoundingBox{}, fmt.Errorf("%w: image %s", ErrEmbeddingNotFound, imageID)
	}
	return box, nil
}

// Embeddings returns a copy of the embedding table
func (img *Image) Embeddings() map[string]BoundingBox {
	out := make(map[string]BoundingBox, len(img.embeddings))
	for id, box := range img.embeddings {
		out[id] = box
	}
	return out
}

// SetBox sets the image's own bounding box
func (img *Image) SetBox(box BoundingBox) {
	img.box = &box
}

// Box returns the image's own bounding box, if set
func (img *Image) Box() (BoundingBox, bool) {
	if img.box == nil {
		return BoundingBox{}, false
	}
	return *img.box, true
}

// Size returns the raster width and height from the image's own box
func (img *Image) Size() (width, height float64, ok bool) {
	if img.box == nil {
		return 0, 0, false
	}
	return img.box.Width(), img.box.Height(), true
}

// SetSummary attaches the summary annotation carrying page-level
// sub-categories
func (img *Image) SetSummary(summary *Annotation) {
	img.summary = summary
}

// Summary returns the summary annotation, or nil
func (img *Image) Summary() *Annotation {
	return img.summary
}

// Payload returns the encoded raster bytes, or nil
func (img *Image) Payload() []byte {
	return img.payload
}

// Copy returns a deep copy of the image. Raster payload bytes are shared
// between the copies.
func (img *Image) Copy() *Image {
	out := &Image{
		ImageID:    img.ImageID,
		FileName:   img.FileName,
		Location:   img.Location,
		ExternalID: img.ExternalID,
		payload:    img.payload,
		index:      make(map[string]int, len(img.index)),
	}
	if img.box != nil {
		box := *img.box
		out.box = &box
	}
	if img.embeddings != nil {
		out.embeddings = make(map[string]BoundingBox, len(img.embeddings))
		for id, box := range img.embeddings {
			out.embeddings[id] = box
		}
	}
	for _, ann := range img.anns {
		copied := ann.Copy()
		out.index[copied.AnnotationID] = len(out.anns)
		out.anns = append(out.anns, copied)
	}
	out.summary = img.summary.Copy()
	return out
}

// imageJSON is the wire shape of a serialized image graph.
type imageJSON struct {
	ImageID     string                 `json:"image_id"`
	FileName    string                 `json:"file_name"`
	Location    string                 `json:"location,omitempty"`
	ExternalID  string                 `json:"external_id,omitempty"`
	Payload     []byte                 `json:"_image,omitempty"`
	Box         *BoundingBox           `json:"_bbox,omitempty"`
	Embeddings  map[string]BoundingBox `json:"embeddings,omitempty"`
	Annotations []*Annotation          `json:"annotations"`
	Summary     *Annotation            `json:"_summary,omitempty"`
}

// MarshalJSON encodes the image graph, raster payload as base64.
func (img *Image) MarshalJSON() ([]byte, error) {
	anns := img.anns
	if anns == nil {
		anns = []*Annotation{}
	}
	return json.Marshal(imageJSON{
		ImageID:     img.ImageID,
		FileName:    img.FileName,
		Location:    img.Location,
		ExternalID:  img.ExternalID,
		Payload:     img.payload,
		Box:         img.box,
		Embeddings:  img.embeddings,
		Annotations: anns,
		Summary:     img.summary,
	})
}

// UnmarshalJSON decodes an image graph, rebuilding the annotation index.
// Duplicate annotation ids in the input fail with ErrDuplicateAnnotation.
func (img *Image) UnmarshalJSON(data []byte) error {
	var aux imageJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*img = Image{
		ImageID:    aux.ImageID,
		FileName:   aux.FileName,
		Location:   aux.Location,
		ExternalID: aux.ExternalID,
		payload:    aux.Payload,
		box:        aux.Box,
		embeddings: aux.Embeddings,
		summary:    aux.Summary,
		index:      make(map[string]int, len(aux.Annotations)),
	}
	for _, ann := range aux.Annotations {
		if err := img.Dump(ann); err != nil {
			return fmt.Errorf("image %s: %w", img.ImageID, err)
		}
	}
	return nil
}
