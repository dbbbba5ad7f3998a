package export

import (
	"fmt"
	"strconv"
	"strings"

	"RmBoard/internal/state"
)

// PageSize is a target page size in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Standard page sizes in points.
var (
	A4     = PageSize{Width: 595.2755905511812, Height: 841.8897637795277}
	A5     = PageSize{Width: 419.52755905511816, Height: 595.2755905511812}
	Letter = PageSize{Width: 612, Height: 792}
)

// ParsePageSize accepts a standard name (A4, A5, Letter) or "WxH" in points.
func ParsePageSize(s string) (PageSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a4":
		return A4, nil
	case "a5":
		return A5, nil
	case "letter":
		return Letter, nil
	}
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return PageSize{}, fmt.Errorf("unknown page size %q", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return PageSize{}, fmt.Errorf("page width %q: %w", w, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return PageSize{}, fmt.Errorf("page height %q: %w", h, err)
	}
	if width <= 0 || height <= 0 {
		return PageSize{}, fmt.Errorf("page size %q must be positive", s)
	}
	return PageSize{Width: width, Height: height}, nil
}

// Mapper converts device space into page space (origin bottom-left).
type Mapper struct {
	Width  float64
	Height float64
}

// NewMapper returns a Mapper for the given page size.
func NewMapper(size PageSize) Mapper {
	return Mapper{Width: size.Width, Height: size.Height}
}

// MapX scales a device x coordinate to the page width.
func (m Mapper) MapX(x float64) float64 {
	return x / state.DeviceWidth * m.Width
}

// MapY scales a device y coordinate to the page height and flips the axis.
func (m Mapper) MapY(y float64) float64 {
	return m.Height - y/state.DeviceHeight*m.Height
}

// MapWidth scales a brush size by the width ratio.
func (m Mapper) MapWidth(size float64) float64 {
	return size * (m.Width / state.DeviceWidth)
}

// MapPoint maps a stroke sample.
func (m Mapper) MapPoint(p state.Point) (x, y float64) {
	return m.MapX(float64(p.X)), m.MapY(float64(p.Y))
}
