package export

import (
	"context"
	"fmt"

	"RmBoard/internal/format"
	"RmBoard/internal/logging"
	"RmBoard/internal/state"
)

// Canvas is a paginated drawing surface. Coordinates are in page space with
// the origin at the bottom-left corner.
type Canvas interface {
	BeginPage() error
	SetStrokeColor(r, g, b float64)
	SetStrokeWidth(w float64)
	DrawSegment(x1, y1, x2, y2 float64)
	EndPage() error
	Save() error
}

// RGB is a stroke color with components in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

var palette = [state.NumColors]RGB{
	state.ColorBlack: {0, 0, 0},
	state.ColorGray:  {0.5, 0.5, 0.5},
	state.ColorWhite: {1, 1, 1},
}

// PaletteColor returns the stroke color of a palette index.
func PaletteColor(c state.ColorIndex) (RGB, bool) {
	if !c.Valid() {
		return RGB{}, false
	}
	return palette[c], true
}

// Renderer draws a document onto a Canvas, one canvas page per document page.
type Renderer struct {
	canvas Canvas
	mapper Mapper
}

// NewRenderer creates a Renderer for pages of the given size.
func NewRenderer(c Canvas, size PageSize) *Renderer {
	return &Renderer{canvas: c, mapper: NewMapper(size)}
}

// Render draws every page in document order, then saves the canvas.
// Nothing is saved if any page fails.
func (r *Renderer) Render(ctx context.Context, doc *state.Document) error {
	for i := 0; i < doc.NumPages(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, _ := doc.Page(i)
		if err := r.RenderPage(i, page); err != nil {
			return err
		}
	}
	if err := r.canvas.Save(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// RenderPage draws one page and finishes it.
func (r *Renderer) RenderPage(index int, page *state.Page) error {
	if err := r.canvas.BeginPage(); err != nil {
		return fmt.Errorf("begin page %d: %w", index, err)
	}
	strokes, segments := 0, 0
	for i := range page.Layers {
		for j := range page.Layers[i].Lines {
			n, err := r.drawLine(&page.Layers[i].Lines[j])
			if err != nil {
				return fmt.Errorf("page %d layer %d line %d: %w", index, i, j, err)
			}
			strokes++
			segments += n
		}
	}
	if err := r.canvas.EndPage(); err != nil {
		return fmt.Errorf("end page %d: %w", index, err)
	}
	logging.PageRendered(index, strokes, segments)
	return nil
}

func (r *Renderer) drawLine(l *state.Line) (int, error) {
	col, ok := PaletteColor(l.Color)
	if !ok {
		return 0, fmt.Errorf("%w: %d", format.ErrInvalidColorIndex, uint32(l.Color))
	}
	r.canvas.SetStrokeColor(col.R, col.G, col.B)
	r.canvas.SetStrokeWidth(r.mapper.MapWidth(float64(l.BrushSize)))

	n := 0
	for i := 1; i < len(l.Points); i++ {
		x1, y1 := r.mapper.MapPoint(l.Points[i-1])
		x2, y2 := r.mapper.MapPoint(l.Points[i])
		r.canvas.DrawSegment(x1, y1, x2, y2)
		n++
	}
	return n, nil
}
