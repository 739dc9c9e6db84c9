package model

import "errors"

// Sentinel errors returned by the data model. Callers test with errors.Is;
// returned errors wrap these with the offending ids or values.
var (
	// ErrInvalidCoordinates indicates box corners that do not form a rectangle.
	ErrInvalidCoordinates = errors.New("invalid box coordinates")

	// ErrInvalidMode indicates an unknown box list mode.
	ErrInvalidMode = errors.New("invalid box mode")

	// ErrMissingReference indicates a coordinate conversion without a raster size.
	ErrMissingReference = errors.New("missing reference size")

	// ErrDuplicateAnnotation indicates a dump of an annotation id already present.
	ErrDuplicateAnnotation = errors.New("duplicate annotation id")

	// ErrEmbeddingNotFound indicates an embedding lookup for an unknown image id.
	ErrEmbeddingNotFound = errors.New("embedding not found")

	// ErrMissingBaseImage indicates a box resolution with no box available anywhere.
	ErrMissingBaseImage = errors.New("no base image box")

	// ErrUnknownCategory indicates an annotation category no view type accepts.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrBrokenRelationship indicates a relationship id that resolves to nothing.
	ErrBrokenRelationship = errors.New("broken relationship")

	// ErrNoRaster indicates raster access on an image without pixel data.
	ErrNoRaster = errors.New("no raster data")
)
