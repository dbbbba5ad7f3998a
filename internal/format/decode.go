package format

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"RmBoard/internal/logging"
	"RmBoard/internal/state"
)

// Page file magic. Each is followed by the uint32 layer count.
const (
	HeaderV5 = "reMarkable .lines file, version=5          "
	HeaderV3 = "reMarkable .lines file, version=3          "
)

// Encoded record widths in bytes.
const (
	HeaderSize     = len(HeaderV5)
	PageHeaderSize = HeaderSize + 4
	LayerSize      = 4
	LineHeaderSize = 24
	PointSize      = 24
)

var (
	pageHeader = []Field{Bytes(HeaderSize), Uint32}
	lineHeader = []Field{Uint32, Uint32, Uint32, Float32, Uint32, Uint32}
)

// Decoder turns page buffers into model pages. It is safe for concurrent use.
type Decoder struct {
	mu      sync.Mutex
	unknown map[uint32]bool
}

// NewDecoder creates a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{unknown: make(map[uint32]bool)}
}

// DecodePage decodes one page file. page is only used in errors and logs.
func (d *Decoder) DecodePage(page int, data []byte) (state.Page, error) {
	c := NewCursor(page, data)

	version, numLayers, err := readPageHeader(c)
	if err != nil {
		return state.Page{}, err
	}

	p := state.Page{
		Version: version,
		Layers:  make([]state.Layer, 0, capacity(numLayers, c.Remaining(), LayerSize)),
	}
	for i := uint32(0); i < numLayers; i++ {
		layer, err := d.readLayer(c)
		if err != nil {
			return state.Page{}, err
		}
		p.Layers = append(p.Layers, layer)
	}

	if n := c.Remaining(); n > 0 {
		logging.Debug("trailing bytes after last layer", "page", page, "bytes", n)
	}
	return p, nil
}

func readPageHeader(c *Cursor) (string, uint32, error) {
	start := c.Offset()
	v, err := c.ReadStruct(pageHeader...)
	if err != nil {
		return "", 0, err
	}
	magic := string(v[0].([]byte))
	if magic != HeaderV5 {
		msg := fmt.Sprintf("unexpected magic %q", magic)
		if magic == HeaderV3 {
			msg = "unsupported version 3"
		}
		return "", 0, &DecodeError{Page: c.Page(), Offset: start, Kind: ErrMalformedHeader, Msg: msg}
	}
	return strings.TrimRight(magic, " "), v[1].(uint32), nil
}

func (d *Decoder) readLayer(c *Cursor) (state.Layer, error) {
	numLines, err := c.ReadUint32()
	if err != nil {
		return state.Layer{}, err
	}
	layer := state.Layer{
		Lines: make([]state.Line, 0, capacity(numLines, c.Remaining(), LineHeaderSize)),
	}
	for i := uint32(0); i < numLines; i++ {
		line, err := d.readLine(c)
		if err != nil {
			return state.Layer{}, err
		}
		layer.Lines = append(layer.Lines, line)
	}
	return layer, nil
}

func (d *Decoder) readLine(c *Cursor) (state.Line, error) {
	start := c.Offset()
	v, err := c.ReadStruct(lineHeader...)
	if err != nil {
		return state.Line{}, err
	}
	line := state.Line{
		BrushType: v[0].(uint32),
		Color:     state.ColorIndex(v[1].(uint32)),
		Reserved:  v[2].(uint32),
		BrushSize: v[3].(float32),
		Unknown:   v[4].(uint32),
	}
	if !line.Color.Valid() {
		return state.Line{}, &DecodeError{
			Page:   c.Page(),
			Offset: start + 4,
			Kind:   ErrInvalidColorIndex,
			Msg:    fmt.Sprintf("color %d outside palette of %d", uint32(line.Color), state.NumColors),
		}
	}
	if _, ok := state.LookupBrush(line.BrushType); !ok {
		d.noteUnknownBrush(c.Page(), line.BrushType)
	}

	numPoints := v[5].(uint32)
	line.Points = make([]state.Point, 0, capacity(numPoints, c.Remaining(), PointSize))
	for i := uint32(0); i < numPoints; i++ {
		p, err := readPoint(c)
		if err != nil {
			return state.Line{}, err
		}
		line.Points = append(line.Points, p)
	}
	return line, nil
}

func readPoint(c *Cursor) (state.Point, error) {
	var f [6]float32
	for i := range f {
		v, err := c.ReadFloat32()
		if err != nil {
			return state.Point{}, err
		}
		f[i] = v
	}
	return state.Point{
		X:         f[0],
		Y:         f[1],
		Speed:     f[2],
		Direction: f[3],
		Width:     f[4],
		Pressure:  f[5],
	}, nil
}

func (d *Decoder) noteUnknownBrush(page int, code uint32) {
	d.mu.Lock()
	seen := d.unknown[code]
	d.unknown[code] = true
	d.mu.Unlock()
	if !seen {
		logging.Warn("unknown brush type, rendering width only", "page", page, "brush", code)
	}
}

// UnknownBrushes returns the brush codes seen without a capability entry,
// in ascending order.
func (d *Decoder) UnknownBrushes() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	codes := make([]uint32, 0, len(d.unknown))
	for code := range d.unknown {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// capacity bounds a preallocation by what the rest of the buffer could hold,
// so a corrupt count cannot trigger a huge allocation before the short read.
func capacity(count uint32, remaining, recordSize int) int {
	fit := remaining / recordSize
	if int64(count) < int64(fit) {
		return int(count)
	}
	return fit
}
