package scrollscape

import "math"

// Vec3 is a 3D vector used for positions, Euler rotations, and scales
// throughout the API. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied component-wise by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Uniform returns a vector with all three components set to s.
func Uniform(s float64) Vec3 {
	return Vec3{s, s, s}
}

// Axis selects the rotation component a Spin integrates into.
type Axis uint8

const (
	AxisY Axis = iota // yaw (default)
	AxisX             // pitch
	AxisZ             // roll
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "y"
	}
}

// ParseAxis maps "x", "y" and "z" to an Axis. Anything else is AxisY.
func ParseAxis(s string) Axis {
	switch s {
	case "x", "X":
		return AxisX
	case "z", "Z":
		return AxisZ
	default:
		return AxisY
	}
}

// component returns a pointer to the rotation component selected by a.
func (a Axis) component(v *Vec3) *float64 {
	switch a {
	case AxisX:
		return &v.X
	case AxisZ:
		return &v.Z
	default:
		return &v.Y
	}
}

// clamp01 clamps v into [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
