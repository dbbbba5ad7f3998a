package state

// Bounds is an axis-aligned rectangle in device space.
type Bounds struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// MaxX returns the right edge.
func (b Bounds) MaxX() float32 { return b.X + b.Width }

// MaxY returns the bottom edge.
func (b Bounds) MaxY() float32 { return b.Y + b.Height }

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.X && x <= b.MaxX() && y >= b.Y && y <= b.MaxY()
}

// Overlaps reports whether two rectangles intersect.
func (b Bounds) Overlaps(o Bounds) bool {
	return !(b.MaxX() < o.X || o.MaxX() < b.X ||
		b.MaxY() < o.Y || o.MaxY() < b.Y)
}

// Union returns the smallest rectangle covering both.
func (b Bounds) Union(o Bounds) Bounds {
	minX := b.X
	if o.X < minX {
		minX = o.X
	}
	minY := b.Y
	if o.Y < minY {
		minY = o.Y
	}
	maxX := b.MaxX()
	if o.MaxX() > maxX {
		maxX = o.MaxX()
	}
	maxY := b.MaxY()
	if o.MaxY() > maxY {
		maxY = o.MaxY()
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Pad grows the rectangle by p on every side.
func (b Bounds) Pad(p float32) Bounds {
	return Bounds{X: b.X - p, Y: b.Y - p, Width: b.Width + 2*p, Height: b.Height + 2*p}
}

// InDevice reports whether b lies within the device canvas.
func (b Bounds) InDevice() bool {
	return b.X >= 0 && b.Y >= 0 && b.MaxX() <= DeviceWidth && b.MaxY() <= DeviceHeight
}

// LineBounds returns the bounding box of a stroke. Strokes without points
// have no bounds.
func LineBounds(l *Line) (Bounds, bool) {
	if len(l.Points) == 0 {
		return Bounds{}, false
	}
	minX, minY := l.Points[0].X, l.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range l.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// PageBounds returns the union of all stroke bounds on the page.
func PageBounds(p *Page) (Bounds, bool) {
	var (
		out   Bounds
		found bool
	)
	for i := range p.Layers {
		for j := range p.Layers[i].Lines {
			b, ok := LineBounds(&p.Layers[i].Lines[j])
			if !ok {
				continue
			}
			if !found {
				out, found = b, true
				continue
			}
			out = out.Union(b)
		}
	}
	return out, found
}
