package view

import (
	"fmt"
	"strings"

	"github.com/tsawler/pagina/model"
)

// Warning records a defect found while reconstructing a page, such as a
// relationship id that resolves to nothing or a nested image closing a
// cycle. Warnings never abort reconstruction; collect them from
// [Page.Warnings] and test the cause with errors.Is on Err.
type Warning struct {
	AnnotationID string
	Category     model.CategoryName
	Err          error
	Detail       string
}

func (w Warning) String() string {
	return fmt.Sprintf("annotation %s (%s): %v: %s", w.AnnotationID, w.Category, w.Err, w.Detail)
}

// FormatWarnings renders warnings one per line. Returns the empty string
// when there are none.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
