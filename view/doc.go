// Package view provides typed read-only views over annotation graphs.
//
// A [Page] is built from a [model.Image] with [FromImage]: every active
// annotation is wrapped in its region view, nested images become
// sub-pages, and the summary travels along as a copy. The view types
// form a closed set implementing [Region]:
//
//   - [Word] - a text container; its text is the characters value
//   - [Layout] - a floating block; resolves its words, assembles text
//   - [Cell] - a table cell with grid coordinates
//   - [Table] - a composite with cells, grid counts and HTML markup
//
// # Reconstruction
//
//	page, err := view.FromImage(img, view.DefaultConfig())
//	if err != nil {
//		// unknown category or duplicate annotation id
//	}
//	for _, w := range page.Warnings() {
//		// dangling relationship ids, cycles
//	}
//
// # Derived queries
//
// Text assembly follows the recorded reading order:
//
//	page.Text()              // layout blocks joined by newlines
//	page.Tables()[0].HTML()  // cell texts spliced into the markup
//
// Pages never mutate their source image and are safe for concurrent use
// once built.
package view
