package ui

import (
	"errors"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"RmBoard/internal/export"
	"RmBoard/internal/state"
)

var (
	errPageOpen   = errors.New("page already open")
	errNoPage     = errors.New("no page open")
	errUnfinished = errors.New("last page was not ended")
)

type pageLines struct {
	lines  []*canvas.Line
	bounds state.Bounds
	inked  bool
}

// PageCanvas collects rendered pages as fyne line objects. Positions are in
// page units with the origin at the top-left, the way fyne measures.
type PageCanvas struct {
	size  export.PageSize
	pages []pageLines
	open  bool
	color color.NRGBA
	width float32
}

// NewPageCanvas creates an empty canvas for pages of the given size.
func NewPageCanvas(size export.PageSize) *PageCanvas {
	return &PageCanvas{size: size, color: color.NRGBA{A: 0xff}}
}

// Size returns the page size in points.
func (c *PageCanvas) Size() export.PageSize { return c.size }

// NumPages returns the number of finished or open pages.
func (c *PageCanvas) NumPages() int { return len(c.pages) }

// Lines returns the segments of page i in drawing order.
func (c *PageCanvas) Lines(i int) []*canvas.Line {
	if i < 0 || i >= len(c.pages) {
		return nil
	}
	return c.pages[i].lines
}

// Bounds returns the box around the ink of page i. Blank pages have none.
func (c *PageCanvas) Bounds(i int) (state.Bounds, bool) {
	if i < 0 || i >= len(c.pages) || !c.pages[i].inked {
		return state.Bounds{}, false
	}
	return c.pages[i].bounds, true
}

func (c *PageCanvas) BeginPage() error {
	if c.open {
		return errPageOpen
	}
	c.pages = append(c.pages, pageLines{})
	c.open = true
	return nil
}

func (c *PageCanvas) SetStrokeColor(r, g, b float64) {
	c.color = color.NRGBA{R: component(r), G: component(g), B: component(b), A: 0xff}
}

func (c *PageCanvas) SetStrokeWidth(w float64) {
	c.width = float32(w)
}

// DrawSegment is ignored outside BeginPage/EndPage.
func (c *PageCanvas) DrawSegment(x1, y1, x2, y2 float64) {
	if !c.open {
		return
	}
	h := c.size.Height
	l := canvas.NewLine(c.color)
	l.StrokeWidth = c.width
	l.Position1 = fyne.NewPos(float32(x1), float32(h-y1))
	l.Position2 = fyne.NewPos(float32(x2), float32(h-y2))

	p := &c.pages[len(c.pages)-1]
	p.lines = append(p.lines, l)
	seg := segmentBounds(l.Position1, l.Position2)
	if !p.inked {
		p.bounds, p.inked = seg, true
		return
	}
	p.bounds = p.bounds.Union(seg)
}

func (c *PageCanvas) EndPage() error {
	if !c.open {
		return errNoPage
	}
	c.open = false
	return nil
}

func (c *PageCanvas) Save() error {
	if c.open {
		return errUnfinished
	}
	return nil
}

func segmentBounds(a, b fyne.Position) state.Bounds {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return state.Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func component(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
