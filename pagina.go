// Package pagina models document pages as serializable annotation graphs
// and presents them through typed read-only views.
//
// Basic usage:
//
//	pages, err := pagina.Load("invoices.jsonl")
//	if err != nil {
//	    // handle error
//	}
//	for _, page := range pages {
//	    fmt.Println(page.Text())
//	}
//
// Graphs are built and queried through the model package, materialized
// into views through the view package, and streamed to disk through the
// dataset package. This package is thin wiring over those three.
package pagina

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tsawler/pagina/dataset"
	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/view"
)

// FromJSON decodes a single image graph and materializes its page view
// with the default configuration.
//
// Example:
//
//	page, err := pagina.FromJSON(data)
func FromJSON(data []byte) (*view.Page, error) {
	img := &model.Image{}
	if err := json.Unmarshal(data, img); err != nil {
		return nil, fmt.Errorf("decoding image graph: %w", err)
	}
	return view.FromImage(img, view.DefaultConfig())
}

// Load reads every image graph from a jsonlines dataset, plain or
// zstd-compressed, and materializes their page views with the default
// configuration. For custom view configurations use the dataset and
// view packages directly.
//
// Example:
//
//	pages, err := pagina.Load("invoices.jsonl.zst")
func Load(path string) ([]*view.Page, error) {
	images, err := dataset.ReadAll(path)
	if err != nil {
		return nil, err
	}
	return dataset.Pages(context.Background(), images, view.DefaultConfig(), 0)
}

// PageFromImage materializes the page view of an image graph with the
// default configuration.
func PageFromImage(img *model.Image) (*view.Page, error) {
	return view.FromImage(img, view.DefaultConfig())
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	pages := pagina.Must(pagina.Load("invoices.jsonl"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
