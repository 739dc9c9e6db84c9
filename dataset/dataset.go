// Package dataset streams annotation graphs as jsonlines: one image
// JSON document per line, optionally zstd-compressed. It also provides
// mapping helpers for transforming whole collections, sequentially or in
// parallel.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/schollz/progressbar/v3"

	"github.com/tsawler/pagina/logger"
	"github.com/tsawler/pagina/model"
)

// CompressedSuffix marks dataset files with zstd framing.
const CompressedSuffix = ".zst"

// Option adjusts how the convenience readers and writers behave.
type Option func(*options)

type options struct {
	progress bool
	label    string
}

// WithProgress renders a progress bar with the given label while a
// convenience reader or writer runs.
func WithProgress(label string) Option {
	return func(o *options) {
		o.progress = true
		o.label = label
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ============================================================================
// Writer
// ============================================================================

// Writer emits one image JSON document per line.
type Writer struct {
	file io.Closer
	zw   *zstd.Encoder
	bw   *bufio.Writer
	enc  *json.Encoder
	n    int
}

// NewWriter wraps w. With compress set, the stream is zstd-framed.
func NewWriter(w io.Writer, compress bool) (*Writer, error) {
	out := &Writer{}
	sink := w
	if compress {
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}
		out.zw = zw
		sink = zw
	}
	out.bw = bufio.NewWriter(sink)
	out.enc = json.NewEncoder(out.bw)
	return out, nil
}

// Create opens path for writing, compressing when the name ends in .zst
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating dataset %s: %w", path, err)
	}
	w, err := NewWriter(f, strings.HasSuffix(path, CompressedSuffix))
	if err != nil {
		f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

// Write appends one image graph to the stream
func (w *Writer) Write(img *model.Image) error {
	if img == nil {
		return errors.New("cannot write nil image")
	}
	if err := w.enc.Encode(img); err != nil {
		return fmt.Errorf("encoding image %s: %w", img.ImageID, err)
	}
	w.n++
	return nil
}

// Count returns the number of images written so far
func (w *Writer) Count() int {
	return w.n
}

// Close flushes the stream and closes the underlying file, if any
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("flushing dataset: %w", err)
	}
	if w.zw != nil {
		if err := w.zw.Close(); err != nil {
			return fmt.Errorf("closing zstd writer: %w", err)
		}
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// ============================================================================
// Reader
// ============================================================================

// Reader yields image graphs from a jsonlines stream.
type Reader struct {
	file io.Closer
	zr   *zstd.Decoder
	br   *bufio.Reader
	n    int
}

// NewReader wraps r. With compressed set, the stream is zstd-framed.
func NewReader(r io.Reader, compressed bool) (*Reader, error) {
	out := &Reader{}
	source := r
	if compressed {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		out.zr = zr
		source = zr
	}
	out.br = bufio.NewReader(source)
	return out, nil
}

// Open opens path for reading, decompressing when the name ends in .zst
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	r, err := NewReader(f, strings.HasSuffix(path, CompressedSuffix))
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// Next returns the next image graph, or io.EOF at the end of the stream.
// Blank lines are skipped.
func (r *Reader) Next() (*model.Image, error) {
	for {
		line, err := r.br.ReadBytes('\n')
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil, io.EOF
				}
				return nil, fmt.Errorf("reading dataset line: %w", err)
			}
			continue
		}
		img := &model.Image{}
		if uerr := json.Unmarshal(trimmed, img); uerr != nil {
			return nil, fmt.Errorf("decoding dataset line %d: %w", r.n+1, uerr)
		}
		r.n++
		return img, nil
	}
}

// Count returns the number of images read so far
func (r *Reader) Count() int {
	return r.n
}

// Close releases the decompressor and closes the underlying file, if any
func (r *Reader) Close() error {
	if r.zr != nil {
		r.zr.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ============================================================================
// Convenience
// ============================================================================

// WriteAll writes images to path, one JSON document per line
func WriteAll(path string, images []*model.Image, opts ...Option) error {
	o := applyOptions(opts)

	w, err := Create(path)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if o.progress {
		bar = progressbar.Default(int64(len(images)), o.label)
	}
	for _, img := range images {
		if err := w.Write(img); err != nil {
			w.Close()
			return err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	logger.S().Debugf("wrote %d images to %s", len(images), path)
	return nil
}

// ReadAll reads every image graph from path
func ReadAll(path string, opts ...Option) ([]*model.Image, error) {
	o := applyOptions(opts)

	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var bar *progressbar.ProgressBar
	if o.progress {
		bar = progressbar.Default(-1, o.label)
	}

	var out []*model.Image
	for {
		img, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, img)
		if bar != nil {
			bar.Add(1)
		}
	}
	logger.S().Debugf("read %d images from %s", len(out), path)
	return out, nil
}
