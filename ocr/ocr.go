// Package ocr extracts text and word boxes from page rasters.
//
// This package wraps the Tesseract OCR engine via gosseract and is
// compiled in only with the "ocr" build tag:
//
//	go build -tags ocr
//
// It requires Tesseract to be installed on the system. On macOS, install
// via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the tag every operation returns [ErrOCRNotEnabled], so callers
// can ship OCR-free builds that degrade cleanly.
package ocr

import (
	"errors"

	"github.com/tsawler/pagina/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Word is a single recognized word with its absolute pixel box.
type Word struct {
	Text       string
	Box        model.BoundingBox
	Confidence float64
}
