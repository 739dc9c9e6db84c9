package view

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/tsawler/pagina/logger"
	"github.com/tsawler/pagina/model"
)

// Page is the materialized view over one image graph: every active
// annotation wrapped in its typed region, nested images recursively
// turned into sub-pages, and the summary copied alongside. Pages are
// read only; after construction they are safe for concurrent use.
type Page struct {
	cfg       Config
	img       *model.Image
	summary   *model.Annotation
	regions   []Region
	byID      map[string]Region
	subgraphs map[string]*Page
	warnings  []Warning
}

// FromImage materializes the typed views over an image graph. The image
// is never mutated; building the same page twice yields equal results.
//
// Construction fails on an annotation category no view accepts and on
// duplicate annotation ids. Defects that can be skipped, such as
// dangling relationship ids or a nested image closing a cycle, are
// collected as warnings instead.
func FromImage(img *model.Image, cfg Config) (*Page, error) {
	if img == nil {
		return nil, fmt.Errorf("cannot build a page from a nil image")
	}
	cfg.LayoutTypes = append([]model.CategoryName(nil), cfg.LayoutTypes...)
	return fromImage(img, cfg, map[string]bool{})
}

func fromImage(img *model.Image, cfg Config, ancestors map[string]bool) (*Page, error) {
	p := &Page{
		cfg:       cfg,
		img:       img,
		byID:      make(map[string]Region),
		subgraphs: make(map[string]*Page),
	}
	ancestors[img.ImageID] = true
	defer delete(ancestors, img.ImageID)

	for _, ann := range img.GetAnnotation() {
		var sub *Page
		if ann.Image != nil {
			if ancestors[ann.Image.ImageID] {
				p.warn(ann, model.ErrBrokenRelationship,
					fmt.Sprintf("nested image %s closes a cycle", ann.Image.ImageID))
			} else {
				var err error
				sub, err = fromImage(ann.Image, cfg, ancestors)
				if err != nil {
					return nil, err
				}
				p.warnings = append(p.warnings, sub.warnings...)
				p.subgraphs[ann.Image.ImageID] = sub
			}
		}

		region, err := newRegion(ann, img, p, sub)
		if err != nil {
			return nil, fmt.Errorf("annotation %s: %w", ann.AnnotationID, err)
		}
		if _, ok := p.byID[ann.AnnotationID]; ok {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicateAnnotation, ann.AnnotationID)
		}
		p.byID[ann.AnnotationID] = region
		p.regions = append(p.regions, region)
	}

	p.checkRelationships()

	if summary := img.Summary(); summary != nil {
		p.summary = summary.Copy()
	}
	return p, nil
}

// checkRelationships reports every relationship id that resolves to
// nothing. An id may live in the image itself or, for composites, in the
// annotation's nested image.
func (p *Page) checkRelationships() {
	for _, ann := range p.img.GetAnnotation() {
		keys := make([]model.RelationshipKey, 0, len(ann.Relationships))
		for key := range ann.Relationships {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		for _, key := range keys {
			for _, id := range ann.Relationships[key] {
				if p.img.HasAnnotation(id) {
					continue
				}
				if ann.Image != nil && ann.Image.HasAnnotation(id) {
					continue
				}
				p.warn(ann, model.ErrBrokenRelationship,
					fmt.Sprintf("%s id %s not present in image %s", key, id, p.img.ImageID))
			}
		}
	}
}

func (p *Page) warn(ann *model.Annotation, err error, detail string) {
	w := Warning{
		AnnotationID: ann.AnnotationID,
		Category:     ann.Category,
		Err:          err,
		Detail:       detail,
	}
	p.warnings = append(p.warnings, w)
	logger.L().Warn("page reconstruction",
		zap.String("annotation_id", w.AnnotationID),
		zap.String("category", string(w.Category)),
		zap.Error(err),
		zap.String("detail", detail))
}

// ============================================================================
// Shell accessors
// ============================================================================

// ImageID returns the id of the underlying image
func (p *Page) ImageID() string {
	return p.img.ImageID
}

// FileName returns the file name of the underlying image
func (p *Page) FileName() string {
	return p.img.FileName
}

// Location returns the storage location of the underlying image
func (p *Page) Location() string {
	return p.img.Location
}

// ExternalID returns the external id of the underlying image
func (p *Page) ExternalID() string {
	return p.img.ExternalID
}

// Size returns the page raster dimensions, when known
func (p *Page) Size() (width, height float64, ok bool) {
	return p.img.Size()
}

// Raster decodes the page raster
func (p *Page) Raster() (image.Image, error) {
	return p.img.Raster()
}

// Summary returns the copied summary annotation, or nil
func (p *Page) Summary() *model.Annotation {
	return p.summary
}

// Config returns the configuration the page was built with
func (p *Page) Config() Config {
	cfg := p.cfg
	cfg.LayoutTypes = append([]model.CategoryName(nil), p.cfg.LayoutTypes...)
	return cfg
}

// Warnings returns the defects collected during reconstruction,
// including those of nested sub-structures
func (p *Page) Warnings() []Warning {
	out := make([]Warning, len(p.warnings))
	copy(out, p.warnings)
	return out
}

// Subgraph returns the sub-page materialized for a nested image id
func (p *Page) Subgraph(imageID string) (*Page, bool) {
	sub, ok := p.subgraphs[imageID]
	return sub, ok
}

// ============================================================================
// Queries
// ============================================================================

// Region returns the view wrapping the annotation with the given id
func (p *Page) Region(id string) (Region, bool) {
	r, ok := p.byID[id]
	return r, ok
}

// Regions returns the views matching all filters, in insertion order.
// The filters are the same ones Image.GetAnnotation accepts.
func (p *Page) Regions(filters ...model.Filter) []Region {
	var out []Region
	for _, r := range p.regions {
		match := true
		for _, filter := range filters {
			if !filter(r.annotation()) {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}

// regionsMatching returns the regions with one of the given ids,
// restricted to categories when any are given, in insertion order.
func (p *Page) regionsMatching(ids []string, categories ...model.CategoryName) []Region {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	var out []Region
	for _, r := range p.regions {
		if !idSet[r.ID()] {
			continue
		}
		if len(categories) > 0 {
			found := false
			for _, c := range categories {
				if r.Category() == c {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Layouts returns the layout block views: every region whose category is
// a configured layout type, tables excluded.
func (p *Page) Layouts() []Region {
	var out []Region
	for _, r := range p.regions {
		if r.Category() == model.CategoryTable {
			continue
		}
		if p.cfg.isLayoutType(r.Category()) {
			out = append(out, r)
		}
	}
	return out
}

// Tables returns the table views in insertion order
func (p *Page) Tables() []*Table {
	var out []*Table
	for _, r := range p.regions {
		if t, ok := r.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Words returns the text container views in insertion order
func (p *Page) Words() []Region {
	var out []Region
	for _, r := range p.regions {
		if r.Category() == p.cfg.TextContainer {
			out = append(out, r)
		}
	}
	return out
}

// Text assembles the page text: every layout block carrying a reading
// order contributes a newline followed by its text, ascending.
func (p *Page) Text() string {
	type entry struct {
		order int
		text  string
	}
	var entries []entry
	for _, r := range p.Layouts() {
		order, ok := r.ReadingOrder()
		if !ok {
			continue
		}
		entries = append(entries, entry{order: order, text: r.Text()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString("\n")
		sb.WriteString(e.text)
	}
	return sb.String()
}

// Tag interprets a sub-category of the page summary
func (p *Page) Tag(name model.CategoryName) model.TagValue {
	if p.summary == nil {
		return model.TagValue{Kind: model.TagNone}
	}
	return p.summary.Tag(name)
}

// Language returns the language recorded in the page summary
func (p *Page) Language() (string, bool) {
	return p.summaryText(model.KeyLanguage)
}

// DocumentType returns the document type recorded in the page summary
func (p *Page) DocumentType() (string, bool) {
	return p.summaryText(model.KeyDocumentType)
}

func (p *Page) summaryText(key model.CategoryName) (string, bool) {
	if p.summary == nil {
		return "", false
	}
	switch tag := p.summary.Tag(key); tag.Kind {
	case model.TagContent:
		return tag.Content.Text(), true
	case model.TagLabel:
		return string(tag.Label), true
	default:
		return "", false
	}
}

// LanguageTag parses the recorded language into a BCP 47 tag
func (p *Page) LanguageTag() (language.Tag, error) {
	lang, ok := p.Language()
	if !ok {
		return language.Und, fmt.Errorf("no language recorded on page %s", p.ImageID())
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Und, fmt.Errorf("parsing language %q: %w", lang, err)
	}
	return tag, nil
}
