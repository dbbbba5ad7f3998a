package export

// Segment is a straight line between two page-space points.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Stroke is the draw state and segments emitted for one line.
type Stroke struct {
	Color    RGB       `json:"color"`
	Width    float64   `json:"width"`
	Segments []Segment `json:"segments"`
}

// RecordedPage holds the strokes drawn between BeginPage and EndPage.
type RecordedPage struct {
	Strokes []Stroke `json:"strokes"`
}

// NumSegments returns the number of segments on the page.
func (p *RecordedPage) NumSegments() int {
	n := 0
	for _, s := range p.Strokes {
		n += len(s.Segments)
	}
	return n
}

// Recorder is a Canvas that keeps the draw calls in memory.
// A new stroke starts at every SetStrokeColor call.
type Recorder struct {
	Pages []RecordedPage
	Saved bool

	color RGB
	width float64
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BeginPage() error {
	r.Pages = append(r.Pages, RecordedPage{})
	return nil
}

func (r *Recorder) current() *RecordedPage {
	if len(r.Pages) == 0 {
		r.Pages = append(r.Pages, RecordedPage{})
	}
	return &r.Pages[len(r.Pages)-1]
}

func (r *Recorder) SetStrokeColor(red, green, blue float64) {
	r.color = RGB{R: red, G: green, B: blue}
	p := r.current()
	p.Strokes = append(p.Strokes, Stroke{Color: r.color, Width: r.width})
}

func (r *Recorder) SetStrokeWidth(w float64) {
	r.width = w
	p := r.current()
	if n := len(p.Strokes); n > 0 && len(p.Strokes[n-1].Segments) == 0 {
		p.Strokes[n-1].Width = w
		return
	}
	p.Strokes = append(p.Strokes, Stroke{Color: r.color, Width: w})
}

func (r *Recorder) DrawSegment(x1, y1, x2, y2 float64) {
	p := r.current()
	if len(p.Strokes) == 0 {
		p.Strokes = append(p.Strokes, Stroke{Color: r.color, Width: r.width})
	}
	s := &p.Strokes[len(p.Strokes)-1]
	s.Segments = append(s.Segments, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2})
}

func (r *Recorder) EndPage() error {
	return nil
}

func (r *Recorder) Save() error {
	r.Saved = true
	return nil
}
