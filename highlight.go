package scrollscape

import "github.com/tanema/gween/ease"

// Default highlight tuning.
const (
	DefaultHighlightPeak     = 1.0
	DefaultHighlightRest     = 0.12
	DefaultHighlightDuration = 0.45
)

// Highlighter glows the marker node of the focused landmark. On every focus
// change it tweens the new marker's emissive up to Peak and the previous
// marker's back down to Rest.
type Highlighter struct {
	Peak     float64
	Rest     float64
	Duration float32
	Ease     ease.TweenFunc

	markers map[string]*Node
	active  map[*Node]*TweenGroup
}

// NewHighlighter creates a highlighter with default tuning.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		Peak:     DefaultHighlightPeak,
		Rest:     DefaultHighlightRest,
		Duration: DefaultHighlightDuration,
		Ease:     ease.OutCubic,
		markers:  make(map[string]*Node),
		active:   make(map[*Node]*TweenGroup),
	}
}

// Bind associates a landmark ID with its marker node. Binding nil removes the
// association.
func (h *Highlighter) Bind(id string, marker *Node) {
	if marker == nil {
		delete(h.markers, id)
		return
	}
	h.markers[id] = marker
}

// Marker returns the node bound to id.
func (h *Highlighter) Marker(id string) (*Node, bool) {
	n, ok := h.markers[id]
	return n, ok
}

// Animating returns the number of markers with a tween in flight.
func (h *Highlighter) Animating() int {
	return len(h.active)
}

// focus starts the fade-out of prevID's marker and the glow of nextID's.
// Either ID may be empty.
func (h *Highlighter) focus(prevID, nextID string) {
	if n, ok := h.markers[prevID]; ok && prevID != nextID {
		h.start(n, h.Rest)
	}
	if n, ok := h.markers[nextID]; ok {
		h.start(n, h.Peak)
	}
}

// start replaces any in-flight tween on n with one heading to value.
func (h *Highlighter) start(n *Node, value float64) {
	if n.IsDisposed() {
		return
	}
	fn := h.Ease
	if fn == nil {
		fn = ease.Linear
	}
	h.active[n] = TweenEmissive(n, value, h.Duration, fn)
}

// Update advances in-flight tweens by the tick's delta and drops finished ones.
func (h *Highlighter) Update(t Tick) {
	for n, g := range h.active {
		g.Update(float32(t.Delta))
		if g.Done {
			delete(h.active, n)
		}
	}
}
