package export

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"RmBoard/internal/state"
)

// PDFOptions sets document metadata.
type PDFOptions struct {
	Title    string
	Subject  string
	Creator  string
	Compress bool
}

// PDFCanvas draws pages into a PDF file. The file is only created by Save.
type PDFCanvas struct {
	pdf  *gofpdf.Fpdf
	path string
	size PageSize
}

// NewPDFCanvas creates a canvas that saves to path.
func NewPDFCanvas(path string, size PageSize, opts PDFOptions) *PDFCanvas {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	p.SetAutoPageBreak(false, 0)
	p.SetCompression(opts.Compress)
	if opts.Title != "" {
		p.SetTitle(opts.Title, true)
	}
	if opts.Subject != "" {
		p.SetSubject(opts.Subject, true)
	}
	if opts.Creator != "" {
		p.SetCreator(opts.Creator, true)
	}
	return &PDFCanvas{pdf: p, path: path, size: size}
}

func (c *PDFCanvas) BeginPage() error {
	c.pdf.AddPage()
	return c.pdf.Error()
}

func (c *PDFCanvas) SetStrokeColor(r, g, b float64) {
	c.pdf.SetDrawColor(channel(r), channel(g), channel(b))
}

func (c *PDFCanvas) SetStrokeWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

// DrawSegment flips y since gofpdf measures from the top edge.
func (c *PDFCanvas) DrawSegment(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.size.Height-y1, x2, c.size.Height-y2)
}

func (c *PDFCanvas) EndPage() error {
	return c.pdf.Error()
}

// Save writes the PDF next to its destination and renames it into place.
func (c *PDFCanvas) Save() error {
	if err := c.pdf.Error(); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(c.path), ".rmboard-*.pdf")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := c.pdf.Output(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// PageCount returns the number of pages started so far.
func (c *PDFCanvas) PageCount() int {
	return c.pdf.PageCount()
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// ExportPDF renders doc into a PDF at path.
func ExportPDF(ctx context.Context, path string, doc *state.Document, size PageSize, opts PDFOptions) error {
	c := NewPDFCanvas(path, size, opts)
	if err := NewRenderer(c, size).Render(ctx, doc); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
