package state

import (
	"fmt"
	"strings"
)

// Device space is the native resolution of the capture format.
const (
	DeviceWidth  = 1404
	DeviceHeight = 1872
)

// ColorIndex selects an entry of the fixed stroke palette.
type ColorIndex uint32

const (
	ColorBlack ColorIndex = iota
	ColorGray
	ColorWhite
)

// NumColors is the size of the stroke palette.
const NumColors = 3

// Valid reports whether c names a palette entry.
func (c ColorIndex) Valid() bool { return c < NumColors }

func (c ColorIndex) String() string {
	switch c {
	case ColorBlack:
		return "black"
	case ColorGray:
		return "gray"
	case ColorWhite:
		return "white"
	}
	return fmt.Sprintf("color(%d)", uint32(c))
}

// Point is one sample of a stroke in device space.
type Point struct {
	X, Y      float32
	Speed     float32
	Direction float32
	Width     float32
	Pressure  float32
}

// Line is a single stroke.
type Line struct {
	BrushType uint32
	Color     ColorIndex
	Reserved  uint32 // raw header field, meaning unknown
	BrushSize float32
	Unknown   uint32 // raw header field, meaning unknown
	Points    []Point
}

// NumPoints returns the number of samples in the stroke.
func (l *Line) NumPoints() int { return len(l.Points) }

// Point returns the i-th sample.
func (l *Line) Point(i int) (Point, bool) {
	if i < 0 || i >= len(l.Points) {
		return Point{}, false
	}
	return l.Points[i], true
}

// Capabilities returns the per-point modifiers the line's brush uses.
func (l *Line) Capabilities() Capabilities {
	caps, _ := LookupBrush(l.BrushType)
	return caps
}

func (l *Line) String() string {
	return fmt.Sprintf("Line{brush=%d color=%s reserved=%d size=%g unknown=%d points=%d}",
		l.BrushType, l.Color, l.Reserved, l.BrushSize, l.Unknown, len(l.Points))
}

// Layer is a group of strokes painted in order.
type Layer struct {
	Lines []Line
}

// NumLines returns the number of strokes in the layer.
func (l *Layer) NumLines() int { return len(l.Lines) }

// Line returns the i-th stroke.
func (l *Layer) Line(i int) (*Line, bool) {
	if i < 0 || i >= len(l.Lines) {
		return nil, false
	}
	return &l.Lines[i], true
}

func (l *Layer) String() string {
	return fmt.Sprintf("Layer{lines=%d}", len(l.Lines))
}

// Page is the decoded content of one page file.
type Page struct {
	Version string
	Layers  []Layer
}

// NumLayers returns the number of layers on the page.
func (p *Page) NumLayers() int { return len(p.Layers) }

// Layer returns the i-th layer.
func (p *Page) Layer(i int) (*Layer, bool) {
	if i < 0 || i >= len(p.Layers) {
		return nil, false
	}
	return &p.Layers[i], true
}

// Counts returns the total number of layers, lines and points on the page.
func (p *Page) Counts() (layers, lines, points int) {
	layers = len(p.Layers)
	for i := range p.Layers {
		lines += len(p.Layers[i].Lines)
		for j := range p.Layers[i].Lines {
			points += len(p.Layers[i].Lines[j].Points)
		}
	}
	return layers, lines, points
}

func (p *Page) String() string {
	parts := make([]string, len(p.Layers))
	for i := range p.Layers {
		parts[i] = p.Layers[i].String()
	}
	return fmt.Sprintf("Page{layers=[%s]}", strings.Join(parts, " "))
}

// Document is an ordered, fixed-size sequence of pages.
type Document struct {
	pages []Page
}

// NewDocument takes ownership of pages. The page count never changes afterwards.
func NewDocument(pages []Page) *Document {
	return &Document{pages: pages}
}

// NumPages returns the page count.
func (d *Document) NumPages() int { return len(d.pages) }

// Page returns the i-th page.
func (d *Document) Page(i int) (*Page, bool) {
	if i < 0 || i >= len(d.pages) {
		return nil, false
	}
	return &d.pages[i], true
}

func (d *Document) String() string {
	return fmt.Sprintf("Document{pages=%d}", len(d.pages))
}
