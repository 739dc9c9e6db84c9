package model

// CategoryName identifies a category of annotation or sub-category key.
// The constants below cover the built-in vocabulary; user-defined names
// are legal everywhere a CategoryName is accepted.
type CategoryName string

// Layout segment categories.
const (
	CategoryText   CategoryName = "text"
	CategoryTitle  CategoryName = "title"
	CategoryTable  CategoryName = "table"
	CategoryFigure CategoryName = "figure"
	CategoryList   CategoryName = "list"
	CategoryCell   CategoryName = "cell"
	CategoryRow    CategoryName = "row"
	CategoryColumn CategoryName = "column"
	CategoryLine   CategoryName = "line"
	CategoryWord   CategoryName = "word"
)

// Table cell refinements. Either may appear in place of CategoryCell.
const (
	CategoryHeader CategoryName = "header"
	CategoryBody   CategoryName = "body"
)

// Sub-category keys.
const (
	KeyCharacters      CategoryName = "characters"
	KeyBlock           CategoryName = "block"
	KeyTokenClass      CategoryName = "token_class"
	KeyTokenTag        CategoryName = "token_tag"
	KeyReadingOrder    CategoryName = "reading_order"
	KeyHTML            CategoryName = "html"
	KeyNumberOfRows    CategoryName = "number_of_rows"
	KeyNumberOfColumns CategoryName = "number_of_columns"
	KeyRowNumber       CategoryName = "row_number"
	KeyColumnNumber    CategoryName = "column_number"
	KeyRowSpan         CategoryName = "row_span"
	KeyColumnSpan      CategoryName = "column_span"
	KeyDocumentType    CategoryName = "document_type"
	KeyLanguage        CategoryName = "language"
)

// RelationshipKey names a relationship list on an annotation.
type RelationshipKey string

const (
	// RelChild links a composite annotation to its parts.
	RelChild RelationshipKey = "child"
	// RelReadingOrder links ordered text blocks.
	RelReadingOrder RelationshipKey = "reading_order"
)

// IsCellCategory reports whether the category counts as a table cell.
func IsCellCategory(name CategoryName) bool {
	switch name {
	case CategoryCell, CategoryHeader, CategoryBody:
		return true
	default:
		return false
	}
}
