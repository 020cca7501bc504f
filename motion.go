package scrollscape

import "math"

// PoseField selects which parts of a Pose a motion writes.
type PoseField uint8

const (
	PosePosition  PoseField = 1 << iota // full position
	PosePositionY                       // vertical component only
	PoseRotation
	PoseScale
	PoseEmissive
	PoseOpacity

	PoseAll = PosePosition | PoseRotation | PoseScale | PoseEmissive | PoseOpacity
)

// Pose is the per-tick output of a motion. Only the fields named in Fields
// are meaningful; Node.ApplyPose leaves the others untouched.
type Pose struct {
	Fields   PoseField
	Position Vec3
	Rotation Vec3
	Scale    Vec3
	Emissive float64
	Opacity  float64
}

// Motion computes a pose for one entity from the tick's timing.
type Motion interface {
	Pose(t Tick) Pose
}

// MotionFunc adapts a plain function to the Motion interface.
type MotionFunc func(t Tick) Pose

// Pose calls f(t).
func (f MotionFunc) Pose(t Tick) Pose { return f(t) }

// Orbit moves along a horizontal circle around Base. It is a pure function of
// elapsed time, so a resumed scene lands exactly where an uninterrupted one
// would. Callers give concurrent orbits distinct (Radius, Phase) pairs; nothing
// here detects overlap.
type Orbit struct {
	Base         Vec3
	Radius       float64
	AngularSpeed float64 // radians per second
	Phase        float64

	// Heading is added to the travel-facing yaw of -angle + π/2.
	Heading float64
	// Pitch is a fixed X rotation.
	Pitch float64

	// BobAmplitude and BobFrequency add a vertical bob of
	// BobAmplitude * sin(angle * BobFrequency).
	BobAmplitude float64
	BobFrequency float64
}

// Angle returns the orbit angle at the given elapsed time.
func (o Orbit) Angle(elapsed float64) float64 {
	return elapsed*o.AngularSpeed + o.Phase
}

// Pose implements Motion.
func (o Orbit) Pose(t Tick) Pose {
	angle := o.Angle(t.Elapsed)
	sin, cos := math.Sincos(angle)
	pos := Vec3{
		X: o.Base.X + o.Radius*cos,
		Y: o.Base.Y,
		Z: o.Base.Z + o.Radius*sin,
	}
	if o.BobAmplitude != 0 {
		pos.Y += o.BobAmplitude * math.Sin(angle*o.BobFrequency)
	}
	return Pose{
		Fields:   PosePosition | PoseRotation,
		Position: pos,
		Rotation: Vec3{X: o.Pitch, Y: -angle + math.Pi/2 + o.Heading},
	}
}

// Wave is a sinusoid of elapsed time: Base + Amplitude*sin(elapsed*Frequency + Phase).
// When Clamp is set the value never drops below Min.
type Wave struct {
	Base      float64
	Amplitude float64
	Frequency float64
	Phase     float64
	Min       float64
	Clamp     bool
}

// At evaluates the wave at the given elapsed time.
func (w Wave) At(elapsed float64) float64 {
	v := w.Base + w.Amplitude*math.Sin(elapsed*w.Frequency+w.Phase)
	if w.Clamp && v < w.Min {
		v = w.Min
	}
	return v
}

// Oscillation bobs a node vertically around BaseY and optionally drives
// emissive intensity, opacity and uniform scale from their own waves. Each
// signal is evaluated from elapsed time independently; none shares phase with
// another. Like Orbit it is a pure function of elapsed time.
type Oscillation struct {
	BaseY     float64
	Amplitude float64
	Frequency float64
	Phase     float64

	Emissive *Wave
	Opacity  *Wave
	Scale    *Wave
}

// Pose implements Motion.
func (o Oscillation) Pose(t Tick) Pose {
	p := Pose{
		Fields:   PosePositionY,
		Position: Vec3{Y: o.BaseY + o.Amplitude*math.Sin(t.Elapsed*o.Frequency+o.Phase)},
	}
	if o.Emissive != nil {
		p.Fields |= PoseEmissive
		p.Emissive = o.Emissive.At(t.Elapsed)
	}
	if o.Opacity != nil {
		p.Fields |= PoseOpacity
		p.Opacity = o.Opacity.At(t.Elapsed)
	}
	if o.Scale != nil {
		p.Fields |= PoseScale
		p.Scale = Uniform(o.Scale.At(t.Elapsed))
	}
	return p
}

// Spin integrates a rotation about one axis: every tick adds Delta*Rate to an
// accumulated angle. Because it sums deltas, the angle after total time T does
// not depend on how T was split into ticks, but it also cannot be recomputed
// from elapsed time alone. Use a *Spin; the accumulated angle is its own state.
type Spin struct {
	Axis Axis
	Rate float64 // radians per second

	// Orientation supplies the rotation components Spin does not drive.
	Orientation Vec3

	angle float64
}

// NewSpin creates a spin about axis at rate radians per second.
func NewSpin(axis Axis, rate float64) *Spin {
	return &Spin{Axis: axis, Rate: rate}
}

// Angle returns the accumulated angle, wrapped into [0, 2π).
func (s *Spin) Angle() float64 {
	return s.angle
}

// Pose implements Motion. It advances the accumulated angle by t.Delta.
func (s *Spin) Pose(t Tick) Pose {
	if s.Rate != 0 && t.Delta > 0 {
		s.angle = wrapAngle(s.angle + t.Delta*s.Rate)
	}
	rot := s.Orientation
	*s.Axis.component(&rot) += s.angle
	return Pose{Fields: PoseRotation, Rotation: rot}
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
