package format

import (
	"encoding/binary"
	"math"

	"RmBoard/internal/state"
)

// pageBytes encodes a page in the v5 layout for fixtures.
type pageBytes struct {
	buf []byte
}

func newPage(numLayers uint32) *pageBytes {
	b := &pageBytes{buf: []byte(HeaderV5)}
	return b.u32(numLayers)
}

func (b *pageBytes) u32(v uint32) *pageBytes {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

func (b *pageBytes) f32(v float32) *pageBytes {
	return b.u32(math.Float32bits(v))
}

func (b *pageBytes) layer(numLines uint32) *pageBytes {
	return b.u32(numLines)
}

func (b *pageBytes) line(brush, color uint32, size float32, points ...state.Point) *pageBytes {
	b.u32(brush).u32(color).u32(0).f32(size).u32(0).u32(uint32(len(points)))
	for _, p := range points {
		b.f32(p.X).f32(p.Y).f32(p.Speed).f32(p.Direction).f32(p.Width).f32(p.Pressure)
	}
	return b
}

func (b *pageBytes) bytes() []byte { return b.buf }

// samplePage has two layers: one with two strokes, one empty.
func samplePage() []byte {
	return newPage(2).
		layer(2).
		line(15, 0, 2.0,
			state.Point{X: 0, Y: 0, Speed: 1, Direction: 2, Width: 3, Pressure: 4},
			state.Point{X: 702, Y: 936},
			state.Point{X: 1404, Y: 1872}).
		line(15, 1, 4.5).
		layer(0).
		bytes()
}
