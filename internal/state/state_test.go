package state

import "testing"

func TestColorIndex(t *testing.T) {
	tests := []struct {
		c     ColorIndex
		valid bool
		name  string
	}{
		{ColorBlack, true, "black"},
		{ColorGray, true, "gray"},
		{ColorWhite, true, "white"},
		{3, false, "color(3)"},
	}
	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.valid {
			t.Errorf("ColorIndex(%d).Valid() = %v, want %v", tt.c, got, tt.valid)
		}
		if got := tt.c.String(); got != tt.name {
			t.Errorf("ColorIndex(%d).String() = %q, want %q", tt.c, got, tt.name)
		}
	}
}

func TestLookupBrush(t *testing.T) {
	caps, ok := LookupBrush(15)
	if !ok {
		t.Fatal("brush 15 should be known")
	}
	if caps != (Capabilities{Width: true}) {
		t.Errorf("brush 15 caps = %v", caps)
	}

	caps, ok = LookupBrush(99)
	if ok {
		t.Error("brush 99 should be unknown")
	}
	if caps != WidthOnly {
		t.Errorf("unknown brush caps = %v, want %v", caps, WidthOnly)
	}
	if got := caps.String(); got != "{width}" {
		t.Errorf("String() = %q", got)
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := NewDocument([]Page{{
		Layers: []Layer{{
			Lines: []Line{{
				BrushType: 15,
				Points:    []Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
			}},
		}},
	}})

	if doc.NumPages() != 1 {
		t.Fatalf("NumPages() = %d", doc.NumPages())
	}
	if _, ok := doc.Page(1); ok {
		t.Error("Page(1) should be out of range")
	}
	page, _ := doc.Page(0)
	layer, ok := page.Layer(0)
	if !ok {
		t.Fatal("Layer(0) missing")
	}
	line, ok := layer.Line(0)
	if !ok {
		t.Fatal("Line(0) missing")
	}
	p, ok := line.Point(1)
	if !ok || p.X != 3 || p.Y != 4 {
		t.Errorf("Point(1) = %+v, %v", p, ok)
	}
	if _, ok := line.Point(-1); ok {
		t.Error("Point(-1) should be out of range")
	}
	if !line.Capabilities().Width {
		t.Error("brush 15 should use width")
	}

	layers, lines, points := page.Counts()
	if layers != 1 || lines != 1 || points != 2 {
		t.Errorf("Counts() = %d, %d, %d", layers, lines, points)
	}
}

func TestBounds(t *testing.T) {
	line := &Line{Points: []Point{{X: 10, Y: 20}, {X: 30, Y: 5}, {X: 15, Y: 40}}}
	b, ok := LineBounds(line)
	if !ok {
		t.Fatal("expected bounds")
	}
	want := Bounds{X: 10, Y: 5, Width: 20, Height: 35}
	if b != want {
		t.Errorf("LineBounds() = %+v, want %+v", b, want)
	}
	if !b.Contains(30, 40) || b.Contains(31, 40) {
		t.Error("Contains() edge handling wrong")
	}

	if _, ok := LineBounds(&Line{}); ok {
		t.Error("empty line should have no bounds")
	}

	u := b.Union(Bounds{X: 0, Y: 0, Width: 5, Height: 5})
	if u != (Bounds{X: 0, Y: 0, Width: 30, Height: 40}) {
		t.Errorf("Union() = %+v", u)
	}
	if !u.Overlaps(b) {
		t.Error("union should overlap its part")
	}
	if (Bounds{X: 100, Y: 100, Width: 1, Height: 1}).Overlaps(b) {
		t.Error("disjoint rectangles overlap")
	}
	if got := b.Pad(5); got != (Bounds{X: 5, Y: 0, Width: 30, Height: 45}) {
		t.Errorf("Pad() = %+v", got)
	}
	if !u.InDevice() || (Bounds{X: 1400, Width: 10}).InDevice() {
		t.Error("InDevice() wrong")
	}
}

func TestPageBounds(t *testing.T) {
	page := &Page{Layers: []Layer{
		{Lines: []Line{{}, {Points: []Point{{X: 1, Y: 1}}}}},
		{Lines: []Line{{Points: []Point{{X: 5, Y: 9}, {X: 7, Y: 3}}}}},
	}}
	b, ok := PageBounds(page)
	if !ok {
		t.Fatal("expected bounds")
	}
	if b != (Bounds{X: 1, Y: 1, Width: 6, Height: 8}) {
		t.Errorf("PageBounds() = %+v", b)
	}
	if _, ok := PageBounds(&Page{}); ok {
		t.Error("empty page should have no bounds")
	}
}

func TestClock(t *testing.T) {
	c := NewClock()
	if c.Site() == "" {
		t.Error("site id empty")
	}
	if got := c.Tick(); got != 1 {
		t.Errorf("Tick() = %d", got)
	}
	c.Update(10)
	c.Update(3)
	if got := c.Now(); got != 10 {
		t.Errorf("Now() = %d, want 10", got)
	}
	if got := c.Tick(); got != 11 {
		t.Errorf("Tick() = %d, want 11", got)
	}
}
