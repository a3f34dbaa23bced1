package mathutil

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis selects a coordinate axis for mirroring, or none.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// ParseAxis converts a config string ("x", "y", "z", "none" or "") to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AxisNone, nil
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisNone, fmt.Errorf("mathutil: unknown axis %q", s)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "none"
}

// Mirror negates v on the given axis. AxisNone returns v unchanged.
func Mirror(v r3.Vec, axis Axis) r3.Vec {
	switch axis {
	case AxisX:
		v.X = -v.X
	case AxisY:
		v.Y = -v.Y
	case AxisZ:
		v.Z = -v.Z
	}
	return v
}

// Clamp01 clamps w to the valid influence range [0, 1].
func Clamp01(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
