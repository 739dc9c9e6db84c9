// Package model provides the serializable annotation graph for scanned
// document pages.
//
// This package defines the data structures every other package builds on:
// a page is an [Image] container holding [Annotation] nodes, and each
// annotation carries a category, an optional [BoundingBox], named
// [SubCategory] refinements and relationship id lists. Composite
// annotations such as tables hold a nested [Image] describing their own
// sub-structure, which makes the model recursive.
//
// # Building a graph
//
//	img := model.NewImage("page_1.png", "/scans/report")
//	word := model.NewAnnotation(model.CategoryWord).WithBox(box)
//	word.DumpSubCategory(model.KeyCharacters, &model.SubCategory{
//		Name:  model.KeyCharacters,
//		Value: model.StringValue("Total"),
//	})
//	err := img.Dump(word)
//
// # Queries
//
// [Image.GetAnnotation] filters active annotations with AND-combined
// [Filter] values:
//
//	words := img.GetAnnotation(model.WithCategories(model.CategoryWord))
//
// [Annotation.Tag] interprets a sub-category as a typed [TagValue]:
// absent, re-labeled name, container content, or bare numeric id.
//
// # Geometry
//
// [BoundingBox] values are immutable and either absolute (pixels) or
// relative (normalized to [0,1]). [BoundingBox.Transform] converts
// between the two against a raster size; [BoundingBox.ToList] renders
// the corner or corner-plus-size list forms.
//
// # Serialization
//
// Images marshal to a self-contained JSON document, raster payload as
// base64. Decoding an encoded image and encoding it again reproduces the
// same bytes, so graphs can round-trip through storage unchanged.
package model
