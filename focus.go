package scrollscape

import (
	"fmt"
	"math"
)

// DefaultOvershoot is the factor by which the scroll ratio is stretched before
// indexing. With K > 1 the last landmark is reached before the scroll range
// ends, leaving a dead zone at the tail where focus no longer changes.
const DefaultOvershoot = 1.1

// ResolveIndex maps a scroll ratio to a landmark index for n landmarks:
// min(n-1, floor(clamp(ratio, 0, 1) * n * overshoot)). Exact fractional
// boundaries resolve to the lower index. Returns -1 when n is zero.
func ResolveIndex(ratio float64, n int, overshoot float64) int {
	if n <= 0 {
		return -1
	}
	raw := math.Floor(clamp01(ratio) * float64(n) * overshoot)
	if raw >= float64(n-1) {
		return n - 1
	}
	return int(raw)
}

// IndexOffset returns the smallest scroll ratio that resolves to index i.
func IndexOffset(i, n int, overshoot float64) float64 {
	if n <= 0 || i <= 0 {
		return 0
	}
	if i > n-1 {
		i = n - 1
	}
	r := float64(i) / (float64(n) * overshoot)
	// Division may land a hair to either side of the boundary.
	for ResolveIndex(r, n, overshoot) < i && r < 1 {
		r = math.Nextafter(r, 1)
	}
	for r > 0 && ResolveIndex(math.Nextafter(r, 0), n, overshoot) >= i {
		r = math.Nextafter(r, 0)
	}
	return clamp01(r)
}

// FocusState is the resolver's current selection. Active is false until the
// first index has been resolved, and stays false for an empty registry.
type FocusState struct {
	Index    int
	Landmark Landmark
	Active   bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithOvershoot sets the overshoot factor. Panics if k is below 1 or not
// finite.
func WithOvershoot(k float64) ResolverOption {
	if !isFinite(k) || k < 1 {
		panic(fmt.Sprintf("scrollscape: overshoot must be a finite value >= 1, got %v", k))
	}
	return func(r *Resolver) {
		r.overshoot = k
	}
}

// Resolver turns scroll samples into an edge-triggered landmark selection.
// Every evaluation recomputes the index, but state changes and the
// subscriber fires only when the index differs from the stored one.
type Resolver struct {
	registry  *Registry
	overshoot float64
	state     FocusState

	subscriber func(Landmark)

	// changed is the scene's hook for logging, metrics, highlight and ECS
	// delivery. It runs after the subscriber.
	changed func(prev int, next FocusState, t Tick)
}

// NewResolver creates a resolver over registry. A nil or empty registry
// yields an inert resolver.
func NewResolver(registry *Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry:  registry,
		overshoot: DefaultOvershoot,
		state:     FocusState{Index: -1},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the landmarks the resolver indexes into.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Overshoot returns the overshoot factor.
func (r *Resolver) Overshoot() float64 {
	return r.overshoot
}

// State returns the current focus state.
func (r *Resolver) State() FocusState {
	return r.state
}

// OnFocusChange sets the single subscriber, replacing any previous one. The
// replaced subscriber receives no further calls. Pass nil to clear.
func (r *Resolver) OnFocusChange(fn func(Landmark)) {
	r.subscriber = fn
}

// Resolve evaluates one scroll sample and reports whether focus changed. On a
// change the subscriber is called synchronously before Resolve returns.
func (r *Resolver) Resolve(ratio float64) bool {
	return r.resolve(ratio, Tick{})
}

func (r *Resolver) resolve(ratio float64, t Tick) bool {
	n := r.registry.Len()
	if n == 0 {
		return false
	}
	idx := ResolveIndex(ratio, n, r.overshoot)
	if idx == r.state.Index {
		return false
	}
	prev := r.state.Index
	r.state = FocusState{Index: idx, Landmark: r.registry.At(idx), Active: true}

	if r.subscriber != nil {
		r.subscriber(r.state.Landmark)
	}
	if r.changed != nil {
		r.changed(prev, r.state, t)
	}
	return true
}
