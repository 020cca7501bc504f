package scrollscape

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// EventStore is the interface for optional ECS integration.
// When set on a Scene, focus changes are forwarded to the store after the
// subscriber has run.
type EventStore interface {
	EmitFocus(event FocusEvent)
}

// FocusEvent carries a focus transition for the ECS bridge.
type FocusEvent struct {
	Index    int
	Previous int // -1 on the first transition
	Landmark Landmark
	Elapsed  float64
	Frame    uint64
}

// SceneOption configures a Scene.
type SceneOption func(*sceneConfig)

type sceneConfig struct {
	logger zerolog.Logger
	meter  metric.Meter
}

// WithLogger sets the scene's logger. The default discards everything.
func WithLogger(l zerolog.Logger) SceneOption {
	return func(c *sceneConfig) { c.logger = l }
}

// WithMeter sets the meter used for scene instruments. The default is the
// global OTel meter, which records nothing until a provider is installed.
func WithMeter(m metric.Meter) SceneOption {
	return func(c *sceneConfig) { c.meter = m }
}

// Scene is the top-level object that owns the node tree, the frame clock,
// motion entities and focus resolution. The host calls Tick once per frame.
type Scene struct {
	root   *Node
	clock  *Clock
	logger zerolog.Logger
	store  EventStore
	debug  bool

	id      int64
	metrics sceneMetrics

	// Scroll
	scroll       ScrollSource
	scrollHandle *Handle
	injectQueue  []float64
	injected     bool
	injectValue  float64
	sample       float64

	// Focus
	resolver    *Resolver
	focusHandle *Handle
	focusFn     func(Landmark)
	focusID     string // survives SetLandmarks so the old marker fades

	entities    []*Entity
	entityCount atomic.Int64
	highlight *Highlighter
	tweens    []*TweenGroup

	runner *ScriptRunner
}

// NewScene creates a new scene with a pre-created root node and no landmarks.
func NewScene(opts ...SceneOption) *Scene {
	cfg := sceneConfig{logger: zerolog.Nop(), meter: meter()}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Scene{
		root:      NewNode("root"),
		clock:     NewClock(),
		logger:    cfg.logger,
		highlight: NewHighlighter(),
		resolver:  NewResolver(nil),
		id:        sceneSeq.Add(1),
	}

	sm, err := newSceneMetrics(cfg.meter, s.id, &s.entityCount)
	if err != nil {
		s.logger.Warn().Err(err).Msg("metrics disabled")
		sm = noopSceneMetrics()
	}
	s.metrics = sm

	s.clock.OnClamp = func(raw float64) {
		s.metrics.recordClamp()
		s.logger.Debug().Float64("delta", raw).Msg("clamped tick delta")
	}
	s.clock.Register(StageInput, s.input)
	s.clock.Register(StagePresent, s.present)
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Clock returns the scene's frame clock. Hosts may register their own
// callbacks on it.
func (s *Scene) Clock() *Clock {
	return s.clock
}

// ID returns the number that tells this scene's metric series apart from
// other scenes on the same meter provider.
func (s *Scene) ID() int64 {
	return s.id
}

// Close releases the scene's metric callback so a discarded scene is no
// longer observed. The scene can still tick afterwards. Calling Close again
// is a no-op.
func (s *Scene) Close() error {
	if err := s.metrics.unregister(); err != nil {
		return fmt.Errorf("unregister scene metrics: %w", err)
	}
	return nil
}

// Logger returns the scene's logger.
func (s *Scene) Logger() zerolog.Logger {
	return s.logger
}

// Tick delivers one frame: scroll input, then motion entities, then focus
// resolution, then presentation tweens. Negative or non-finite delta is
// clamped to zero before anything sees it.
func (s *Scene) Tick(elapsed, delta float64) Tick {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	t := s.clock.Tick(elapsed, delta)
	s.metrics.recordTick()
	if s.debug {
		s.debugLog(debugStats{
			tick:      t,
			tickTime:  time.Since(t0),
			entities:  len(s.entities),
			callbacks: s.clock.Len(),
			tweens:    len(s.tweens) + s.highlight.Animating(),
		})
	}
	return t
}

// Advance ticks the scene by delta seconds using the clock's own elapsed time.
func (s *Scene) Advance(delta float64) Tick {
	return s.Tick(s.clock.Elapsed()+clampDelta(delta), delta)
}

// --- Entities ---

// Attach binds motion to node and starts ticking it at StageMotion. Entities
// run in attach order. Panics if node or motion is nil.
func (s *Scene) Attach(node *Node, motion Motion) *Entity {
	if node == nil {
		panic("scrollscape: cannot attach nil node")
	}
	if motion == nil {
		panic("scrollscape: cannot attach nil motion")
	}
	e := &Entity{node: node, motion: motion, onDetach: s.removeEntity}
	e.handle = s.clock.Register(StageMotion, e.update)
	s.entities = append(s.entities, e)
	s.entityCount.Add(1)
	return e
}

// Entities returns the attached entities. The returned slice MUST NOT be
// mutated.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

func (s *Scene) removeEntity(e *Entity) {
	for i, c := range s.entities {
		if c == e {
			copy(s.entities[i:], s.entities[i+1:])
			s.entities[len(s.entities)-1] = nil
			s.entities = s.entities[:len(s.entities)-1]
			s.entityCount.Add(-1)
			return
		}
	}
}

// AddTween runs g every tick at StagePresent until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.tweens = append(s.tweens, g)
}

// --- Scroll ---

// SetScroll sets the scroll source the resolver samples. Sources that
// implement TickUpdater (such as *ScrollControls) are advanced at StageInput.
// Passing nil reads as offset 0.
func (s *Scene) SetScroll(src ScrollSource) {
	s.scrollHandle.Detach()
	s.scrollHandle = nil
	s.scroll = src
	if u, ok := src.(TickUpdater); ok {
		s.scrollHandle = s.clock.Register(StageInput, u.Update)
	}
}

// Scroll returns the current scroll source.
func (s *Scene) Scroll() ScrollSource {
	return s.scroll
}

// ScrollSample returns the scroll value the resolver used on the latest tick.
func (s *Scene) ScrollSample() float64 {
	return s.sample
}

// --- Focus ---

// SetLandmarks installs a new registry and attaches a fresh resolver at
// StageFocus. The current subscriber carries over and the first tick after
// this call publishes the resolved landmark, and the marker that was glowing
// under the old registry fades. A nil or empty registry leaves focus inert.
func (s *Scene) SetLandmarks(registry *Registry, opts ...ResolverOption) {
	s.focusHandle.Detach()
	s.resolver = NewResolver(registry, opts...)
	s.resolver.OnFocusChange(s.focusFn)
	s.resolver.changed = s.focusChanged
	s.focusHandle = s.clock.Register(StageFocus, s.resolveFocus)
	s.logger.Info().
		Int("landmarks", registry.Len()).
		Float64("overshoot", s.resolver.Overshoot()).
		Msg("landmarks registered")
}

// DetachFocus stops focus resolution. The current state is kept. Calling it
// again is a no-op.
func (s *Scene) DetachFocus() {
	s.focusHandle.Detach()
}

// Landmarks returns the registry the scene resolves against.
func (s *Scene) Landmarks() *Registry {
	return s.resolver.Registry()
}

// LandmarkOffset returns the smallest scroll offset that focuses the landmark
// at index i under the current overshoot.
func (s *Scene) LandmarkOffset(i int) float64 {
	return IndexOffset(i, s.resolver.Registry().Len(), s.resolver.Overshoot())
}

// OnFocusChange sets the single focus subscriber, replacing any previous one.
// It is called synchronously within the tick that changes focus.
func (s *Scene) OnFocusChange(fn func(Landmark)) {
	s.focusFn = fn
	s.resolver.OnFocusChange(fn)
}

// Focus returns the current focus state.
func (s *Scene) Focus() FocusState {
	return s.resolver.State()
}

// BindLandmark associates a landmark ID with a marker node the highlighter
// glows while that landmark has focus.
func (s *Scene) BindLandmark(id string, marker *Node) {
	s.highlight.Bind(id, marker)
}

// Highlighter returns the scene's focus highlighter for tuning.
func (s *Scene) Highlighter() *Highlighter {
	return s.highlight
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EventStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick timing
// stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// --- Tick stages ---

// input consumes one injected scroll sample per tick and advances the script
// runner.
func (s *Scene) input(t Tick) {
	if s.runner != nil {
		s.runner.step(s)
	}
	s.injected = false
	if len(s.injectQueue) == 0 {
		return
	}
	v := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if sc, ok := s.scroll.(*ScrollControls); ok {
		sc.Jump(v)
		return
	}
	s.injected = true
	s.injectValue = v
}

// resolveFocus reads exactly one scroll sample and resolves it.
func (s *Scene) resolveFocus(t Tick) {
	switch {
	case s.injected:
		s.sample = s.injectValue
	case s.scroll != nil:
		s.sample = s.scroll.Offset()
	default:
		s.sample = 0
	}
	s.resolver.resolve(s.sample, t)
}

func (s *Scene) focusChanged(prev int, next FocusState, t Tick) {
	s.metrics.recordFocus(next.Landmark.ID)
	s.logger.Info().
		Int("index", next.Index).
		Int("previous", prev).
		Str("landmark", next.Landmark.ID).
		Float64("elapsed", t.Elapsed).
		Msg("focus changed")

	s.highlight.focus(s.focusID, next.Landmark.ID)
	s.focusID = next.Landmark.ID

	if s.store != nil {
		s.store.EmitFocus(FocusEvent{
			Index:    next.Index,
			Previous: prev,
			Landmark: next.Landmark,
			Elapsed:  t.Elapsed,
			Frame:    t.Frame,
		})
	}
}

// present advances highlight tweens and user tweens.
func (s *Scene) present(t Tick) {
	s.highlight.Update(t)
	if len(s.tweens) == 0 {
		return
	}
	dt := float32(t.Delta)
	j := 0
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			s.tweens[j] = g
			j++
		}
	}
	for k := j; k < len(s.tweens); k++ {
		s.tweens[k] = nil
	}
	s.tweens = s.tweens[:j]
}
