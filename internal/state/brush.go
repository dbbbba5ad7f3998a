package state

import "strings"

// Capabilities is the set of per-point modifiers a brush declares as used.
type Capabilities struct {
	Pressure  bool
	Direction bool
	Speed     bool
	Width     bool
}

func (c Capabilities) String() string {
	var names []string
	if c.Pressure {
		names = append(names, "pressure")
	}
	if c.Direction {
		names = append(names, "direction")
	}
	if c.Speed {
		names = append(names, "speed")
	}
	if c.Width {
		names = append(names, "width")
	}
	return "{" + strings.Join(names, ",") + "}"
}

// WidthOnly is the rule set used for brushes without a table entry.
var WidthOnly = Capabilities{Width: true}

var brushTypes = map[uint32]Capabilities{
	15: {Width: true},
}

// LookupBrush returns the capability set of a brush type code. Unknown codes
// fall back to WidthOnly with ok == false.
func LookupBrush(code uint32) (caps Capabilities, ok bool) {
	caps, ok = brushTypes[code]
	if !ok {
		return WidthOnly, false
	}
	return caps, true
}
