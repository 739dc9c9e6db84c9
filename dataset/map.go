package dataset

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pagina/model"
	"github.com/tsawler/pagina/view"
)

// Mapper transforms one image graph into another. Returning nil drops
// the image from the output.
type Mapper func(*model.Image) (*model.Image, error)

// Map applies fn to every image in order.
//
// Example:
//
//	cleaned, err := dataset.Map(images, func(img *model.Image) (*model.Image, error) {
//	    if len(img.Annotations()) == 0 {
//	        return nil, nil
//	    }
//	    return img, nil
//	})
func Map(images []*model.Image, fn Mapper) ([]*model.Image, error) {
	out := make([]*model.Image, 0, len(images))
	for _, img := range images {
		mapped, err := fn(img)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", img.ImageID, err)
		}
		if mapped != nil {
			out = append(out, mapped)
		}
	}
	return out, nil
}

// MapConcurrent applies fn to every image using at most workers
// goroutines. Input order is preserved in the output. A workers value
// of zero or less means one worker per CPU.
func MapConcurrent(ctx context.Context, images []*model.Image, workers int, fn Mapper) ([]*model.Image, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]*model.Image, len(images))
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			mapped, err := fn(img)
			if err != nil {
				return fmt.Errorf("image %s: %w", img.ImageID, err)
			}
			results[i] = mapped
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*model.Image, 0, len(results))
	for _, img := range results {
		if img != nil {
			out = append(out, img)
		}
	}
	return out, nil
}

// Pages materializes a read-only page view for every image, using at
// most workers goroutines. Input order is preserved.
func Pages(ctx context.Context, images []*model.Image, cfg view.Config, workers int) ([]*view.Page, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	pages := make([]*view.Page, len(images))
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			page, err := view.FromImage(img, cfg)
			if err != nil {
				return fmt.Errorf("image %s: %w", img.ImageID, err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
