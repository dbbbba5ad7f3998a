package export

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"github.com/gogpu/gg"
)

// PNGCanvas rasterizes each page to <dir>/<index>.png.
type PNGCanvas struct {
	dir        string
	size       PageSize
	scale      float64 // pixels per point
	background RGB

	dc    *gg.Context
	page  int
	files []string
	err   error
}

// NewPNGCanvas creates a canvas whose pages are widthPx pixels wide.
func NewPNGCanvas(dir string, size PageSize, widthPx int, background RGB) *PNGCanvas {
	return &PNGCanvas{
		dir:        dir,
		size:       size,
		scale:      float64(widthPx) / size.Width,
		background: background,
		page:       -1,
	}
}

// Files returns the paths written so far.
func (c *PNGCanvas) Files() []string { return c.files }

func (c *PNGCanvas) BeginPage() error {
	if c.dc != nil {
		return errors.New("page already open")
	}
	c.page++
	w := int(math.Ceil(c.size.Width * c.scale))
	h := int(math.Ceil(c.size.Height * c.scale))
	c.dc = gg.NewContext(w, h)
	c.dc.ClearWithColor(gg.RGB(c.background.R, c.background.G, c.background.B))
	c.dc.SetLineCap(gg.LineCapRound)
	return nil
}

func (c *PNGCanvas) SetStrokeColor(r, g, b float64) {
	c.dc.SetRGB(r, g, b)
}

func (c *PNGCanvas) SetStrokeWidth(w float64) {
	c.dc.SetLineWidth(w * c.scale)
}

func (c *PNGCanvas) DrawSegment(x1, y1, x2, y2 float64) {
	c.dc.DrawLine(x1*c.scale, (c.size.Height-y1)*c.scale, x2*c.scale, (c.size.Height-y2)*c.scale)
	if err := c.dc.Stroke(); err != nil && c.err == nil {
		c.err = err
	}
}

func (c *PNGCanvas) EndPage() error {
	if c.dc == nil {
		return errors.New("no open page")
	}
	defer func() {
		c.dc.Close()
		c.dc = nil
	}()
	if c.err != nil {
		return fmt.Errorf("stroke: %w", c.err)
	}
	path := filepath.Join(c.dir, strconv.Itoa(c.page)+".png")
	if err := c.dc.SavePNG(path); err != nil {
		return err
	}
	c.files = append(c.files, path)
	return nil
}

// Save is a no-op; every page is written by EndPage.
func (c *PNGCanvas) Save() error {
	return c.err
}
