package format

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"RmBoard/internal/logging"
	"RmBoard/internal/state"
)

// DefaultExt is the file extension of page files.
const DefaultExt = ".rm"

// Loader reads and decodes the page files of one document directory.
type Loader struct {
	Root     string // Document directory
	NumPages int    // Page files 0..NumPages-1 must exist
	Ext      string // Page file extension, DefaultExt when empty
	Workers  int    // Pages decoded concurrently, at least 1

	// Decoder is shared by all pages; a fresh one is used when nil.
	Decoder *Decoder
}

// PagePath returns the path of page file i.
func (l *Loader) PagePath(i int) string {
	ext := l.Ext
	if ext == "" {
		ext = DefaultExt
	}
	return filepath.Join(l.Root, strconv.Itoa(i)+ext)
}

// DetectPages counts consecutive page files starting at 0.
func (l *Loader) DetectPages() int {
	n := 0
	for {
		if _, err := os.Stat(l.PagePath(n)); err != nil {
			return n
		}
		n++
	}
}

// Load decodes every page. Any failure aborts the whole load and no
// document is returned.
func (l *Loader) Load(ctx context.Context) (*state.Document, error) {
	if l.NumPages < 0 {
		return nil, fmt.Errorf("negative page count %d", l.NumPages)
	}
	workers := l.Workers
	if workers < 1 {
		workers = 1
	}

	dec := l.Decoder
	if dec == nil {
		dec = NewDecoder()
	}
	pages := make([]state.Page, l.NumPages)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < l.NumPages; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := l.loadPage(dec, i)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state.NewDocument(pages), nil
}

func (l *Loader) loadPage(dec *Decoder, i int) (state.Page, error) {
	path := l.PagePath(i)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state.Page{}, &DecodeError{Page: i, Offset: -1, Kind: ErrMissingFile, Msg: path, Err: err}
		}
		return state.Page{}, fmt.Errorf("read page %d: %w", i, err)
	}

	p, err := dec.DecodePage(i, data)
	if err != nil {
		return state.Page{}, err
	}
	layers, lines, points := p.Counts()
	logging.PageDecoded(i, layers, lines, points, "file", path, "bytes", len(data))
	return p, nil
}

// DocumentID parses the base name of a document directory as its UUID.
func DocumentID(root string) (uuid.UUID, bool) {
	id, err := uuid.Parse(filepath.Base(filepath.Clean(root)))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
