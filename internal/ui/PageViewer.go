package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom    = 0.3
	maxZoom    = 8.0
	zoomStep   = 1.2
	fitPadding = 10
)

// PageViewer shows one page of a PageCanvas at a time. Dragging pans and
// the scroll wheel zooms.
type PageViewer struct {
	widget.BaseWidget
	pages *PageCanvas
	index int
	zoom  float32
	pan   fyne.Position // page units

	OnPageChanged func(index, total int)
}

var _ fyne.Widget = (*PageViewer)(nil)
var _ fyne.Draggable = (*PageViewer)(nil)
var _ fyne.Scrollable = (*PageViewer)(nil)

func NewPageViewer(pages *PageCanvas) *PageViewer {
	v := &PageViewer{pages: pages, zoom: 1}
	v.ExtendBaseWidget(v)
	return v
}

// Page returns the index of the visible page.
func (v *PageViewer) Page() int { return v.index }

// NumPages returns the number of pages available.
func (v *PageViewer) NumPages() int { return v.pages.NumPages() }

// Zoom returns the zoom factor relative to a fitted page.
func (v *PageViewer) Zoom() float32 { return v.zoom }

// SetPage shows page i and resets the view. It reports false for an index
// outside the document.
func (v *PageViewer) SetPage(i int) bool {
	if i < 0 || i >= v.pages.NumPages() {
		return false
	}
	v.index = i
	v.zoom, v.pan = 1, fyne.Position{}
	if v.OnPageChanged != nil {
		v.OnPageChanged(i, v.pages.NumPages())
	}
	v.Refresh()
	return true
}

func (v *PageViewer) Next() bool { return v.SetPage(v.index + 1) }
func (v *PageViewer) Prev() bool { return v.SetPage(v.index - 1) }

func (v *PageViewer) ZoomIn() {
	v.setZoom(v.zoom * zoomStep)
}

func (v *PageViewer) ZoomOut() {
	v.setZoom(v.zoom / zoomStep)
}

func (v *PageViewer) setZoom(z float32) {
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	v.zoom = z
	v.Refresh()
}

// ResetView fits the whole page.
func (v *PageViewer) ResetView() {
	v.zoom, v.pan = 1, fyne.Position{}
	v.Refresh()
}

// FitContent zooms onto the ink of the current page. Blank pages fall back
// to ResetView.
func (v *PageViewer) FitContent() {
	b, ok := v.pages.Bounds(v.index)
	if !ok {
		v.ResetView()
		return
	}
	b = b.Pad(fitPadding)
	size := v.pages.Size()
	zx := float32(size.Width) / b.Width
	zy := float32(size.Height) / b.Height
	v.pan = fyne.NewPos(float32(size.Width)/2-(b.X+b.Width/2), float32(size.Height)/2-(b.Y+b.Height/2))
	v.setZoom(min(zx, zy))
}

func (v *PageViewer) Dragged(e *fyne.DragEvent) {
	_, scale := v.transform(v.Size())
	if scale <= 0 {
		return
	}
	v.pan = v.pan.Add(fyne.NewPos(e.Dragged.DX/scale, e.Dragged.DY/scale))
	v.Refresh()
}

func (v *PageViewer) DragEnd() {}

func (v *PageViewer) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY > 0 {
		v.ZoomIn()
	} else if e.Scrolled.DY < 0 {
		v.ZoomOut()
	}
}

// transform returns where the page origin lands in a view of the given size
// and how many pixels one page unit covers.
func (v *PageViewer) transform(view fyne.Size) (fyne.Position, float32) {
	size := v.pages.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return fyne.Position{}, 0
	}
	scale := min(view.Width/float32(size.Width), view.Height/float32(size.Height)) * v.zoom
	origin := fyne.NewPos(
		(view.Width-float32(size.Width)*scale)/2+v.pan.X*scale,
		(view.Height-float32(size.Height)*scale)/2+v.pan.Y*scale,
	)
	return origin, scale
}

func (v *PageViewer) CreateRenderer() fyne.WidgetRenderer {
	r := &pageViewerRenderer{
		viewer:     v,
		background: canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255}),
		paper:      canvas.NewRectangle(color.White),
	}
	r.paper.StrokeColor = color.Gray{Y: 200}
	r.paper.StrokeWidth = 1
	return r
}

type pageViewerRenderer struct {
	viewer     *PageViewer
	background *canvas.Rectangle
	paper      *canvas.Rectangle
	lines      []fyne.CanvasObject
	size       fyne.Size
}

func (r *pageViewerRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
	r.rebuild()
}

func (r *pageViewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *pageViewerRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.viewer)
}

func (r *pageViewerRenderer) rebuild() {
	v := r.viewer
	origin, scale := v.transform(r.size)
	page := v.pages.Size()
	r.paper.Move(origin)
	r.paper.Resize(fyne.NewSize(float32(page.Width)*scale, float32(page.Height)*scale))

	src := v.pages.Lines(v.index)
	r.lines = r.lines[:0]
	for _, l := range src {
		seg := canvas.NewLine(l.StrokeColor)
		seg.StrokeWidth = max(l.StrokeWidth*scale, 1)
		seg.Position1 = origin.Add(fyne.NewPos(l.Position1.X*scale, l.Position1.Y*scale))
		seg.Position2 = origin.Add(fyne.NewPos(l.Position2.X*scale, l.Position2.Y*scale))
		r.lines = append(r.lines, seg)
	}
}

func (r *pageViewerRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(r.lines)+2)
	objects = append(objects, r.background, r.paper)
	return append(objects, r.lines...)
}

func (r *pageViewerRenderer) Destroy() {}
