// integration.go turns OCR output into annotation graphs.
package pagina

import (
	"fmt"

	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/ocr"
)

// ImageFromOCR builds an image graph from OCR output: one word
// annotation per detected word, each carrying its text and a score
// normalized to [0, 1]. The raster, when given, is attached to the
// image and defines its pixel bounds. Annotation ids are derived
// deterministically, so the same input always yields the same graph.
//
// Example:
//
//	words, err := client.DetectWords(raster)
//	if err != nil {
//	    // handle error
//	}
//	img, err := pagina.ImageFromOCR("scan.png", raster, words)
func ImageFromOCR(fileName string, raster []byte, words []ocr.Word) (*model.Image, error) {
	img := model.NewImage(fileName, "")
	if len(raster) > 0 {
		if err := img.SetRasterBytes(raster); err != nil {
			return nil, fmt.Errorf("attaching raster: %w", err)
		}
	}

	for i, w := range words {
		score := w.Confidence / 100
		ann := model.NewAnnotation(model.CategoryWord).WithBox(w.Box).WithScore(score)
		ann.DumpSubCategory(model.KeyCharacters, &model.SubCategory{
			Name:  model.KeyCharacters,
			Value: model.StringValue(w.Text),
			Score: score,
		})
		if err := img.Dump(ann); err != nil {
			return nil, fmt.Errorf("word %d (%q): %w", i, w.Text, err)
		}
	}
	return img, nil
}
