package scrollscape

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollSource supplies the normalized scroll fraction, nominally in [0, 1].
// The resolver clamps whatever it returns.
type ScrollSource interface {
	Offset() float64
}

// ScrollFunc adapts a plain function to ScrollSource.
type ScrollFunc func() float64

// Offset calls f().
func (f ScrollFunc) Offset() float64 { return f() }

// StaticScroll is a fixed scroll offset.
type StaticScroll float64

// Offset returns s.
func (s StaticScroll) Offset() float64 { return float64(s) }

// TickUpdater is implemented by scroll sources that need a tick to advance
// their own state. Scene.SetScroll attaches them at StageInput.
type TickUpdater interface {
	Update(t Tick)
}

const (
	// DefaultScrollPages is the number of viewport heights the scroll range spans.
	DefaultScrollPages = 3
	// DefaultScrollDamping is the time constant, in seconds, of scroll smoothing.
	DefaultScrollDamping = 0.3

	scrollSnapEpsilon = 1e-5
)

// ScrollControls is a damped scroll provider. Wheel or programmatic input
// moves a target offset; the visible offset approaches it exponentially each
// tick. Both are always within [0, 1].
type ScrollControls struct {
	// Pages is the scroll range measured in viewport heights.
	Pages float64
	// Damping is the smoothing time constant in seconds. Zero snaps.
	Damping float64

	offset float64
	target float64
	tween  *gween.Tween
}

// NewScrollControls creates scroll controls with the given page count and
// damping time constant.
func NewScrollControls(pages, damping float64) *ScrollControls {
	return &ScrollControls{Pages: pages, Damping: damping}
}

// Offset implements ScrollSource.
func (s *ScrollControls) Offset() float64 {
	return s.offset
}

// Target returns the offset the controls are moving toward.
func (s *ScrollControls) Target() float64 {
	return s.target
}

// SetTarget moves the target offset, cancelling any ScrollTo animation.
func (s *ScrollControls) SetTarget(offset float64) {
	s.tween = nil
	s.target = clamp01(offset)
}

// Jump sets both the target and the visible offset, skipping damping.
func (s *ScrollControls) Jump(offset float64) {
	s.tween = nil
	s.target = clamp01(offset)
	s.offset = s.target
}

// ScrollBy moves the target by a pixel distance, given the viewport height in
// pixels. The full range covers (Pages-1) viewport heights. No-op when the
// range is empty.
func (s *ScrollControls) ScrollBy(pixels, viewportHeight float64) {
	span := (s.Pages - 1) * viewportHeight
	if !(span > 0) || !isFinite(pixels) {
		return
	}
	s.SetTarget(s.target + pixels/span)
}

// ScrollTo animates the target to offset over duration seconds.
func (s *ScrollControls) ScrollTo(offset float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	s.tween = gween.New(float32(s.target), float32(clamp01(offset)), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (s *ScrollControls) Scrolling() bool {
	return s.tween != nil
}

// Update advances any ScrollTo animation and moves the visible offset toward
// the target. Implements TickUpdater.
func (s *ScrollControls) Update(t Tick) {
	if s.tween != nil {
		val, done := s.tween.Update(float32(t.Delta))
		s.target = clamp01(float64(val))
		if done {
			s.tween = nil
		}
	}

	if s.Damping <= 0 {
		s.offset = s.target
		return
	}
	k := 1 - math.Exp(-t.Delta/s.Damping)
	s.offset += (s.target - s.offset) * k
	if math.Abs(s.target-s.offset) < scrollSnapEpsilon {
		s.offset = s.target
	}
	s.offset = clamp01(s.offset)
}
