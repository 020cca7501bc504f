package scrollscape

// Tick carries the timing of one frame. Elapsed is seconds since the clock's
// first tick and never decreases; Delta is seconds since the previous tick and
// is never negative or non-finite.
type Tick struct {
	Elapsed float64
	Delta   float64
	Frame   uint64
}

// Stage orders groups of callbacks within a tick. Stages run in ascending
// order; callbacks within a stage run in registration order.
type Stage uint8

const (
	StageInput   Stage = iota // scroll smoothing and injected samples
	StageMotion               // motion generators
	StageFocus                // focus resolution and publishing
	StagePresent              // tweens reacting to focus changes
	numStages
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageMotion:
		return "motion"
	case StageFocus:
		return "focus"
	case StagePresent:
		return "present"
	default:
		return "unknown"
	}
}

// Handle is a registration on a Clock. Detach it to stop receiving ticks.
type Handle struct {
	clock    *Clock
	stage    Stage
	fn       func(Tick)
	detached bool
}

// Detach removes the callback from its clock. Once Detach returns the callback
// is never invoked again, including later in a tick that is currently running.
// Detaching twice is a no-op.
func (h *Handle) Detach() {
	if h == nil || h.detached {
		return
	}
	h.detached = true
	h.fn = nil
	h.clock.live--
	h.clock.dirty = true
	if !h.clock.ticking {
		h.clock.compact()
	}
}

// Detached reports whether Detach has been called.
func (h *Handle) Detached() bool {
	return h == nil || h.detached
}

// Stage returns the stage the handle was registered at.
func (h *Handle) Stage() Stage {
	return h.stage
}

// Clock distributes host-driven ticks to registered callbacks. It owns no loop:
// the host calls Tick (or Advance) once per frame. Not safe for concurrent use;
// the engine is single-threaded.
type Clock struct {
	stages  [numStages][]*Handle
	elapsed float64
	frame   uint64
	started bool
	ticking bool
	dirty   bool
	live    int

	// OnClamp, when set, is called with the raw host value whenever a tick's
	// delta had to be clamped to zero.
	OnClamp func(raw float64)
}

// NewClock creates an empty clock.
func NewClock() *Clock {
	return &Clock{}
}

// Register adds fn at the given stage. Registrations made during a tick take
// effect from the next tick. Panics if fn is nil or stage is out of range.
func (c *Clock) Register(stage Stage, fn func(Tick)) *Handle {
	if fn == nil {
		panic("scrollscape: cannot register nil tick callback")
	}
	if stage >= numStages {
		panic("scrollscape: invalid clock stage")
	}
	h := &Handle{clock: c, stage: stage, fn: fn}
	c.stages[stage] = append(c.stages[stage], h)
	c.live++
	return h
}

// Len returns the number of attached callbacks.
func (c *Clock) Len() int {
	return c.live
}

// Elapsed returns the elapsed time of the most recent tick.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Frame returns the number of ticks delivered so far.
func (c *Clock) Frame() uint64 {
	return c.frame
}

// Tick delivers one frame to every attached callback, synchronously and to
// completion, before returning.
//
// A negative or non-finite delta is clamped to 0. An elapsed value that is
// non-finite or smaller than the previous tick's is replaced by the previous
// elapsed plus delta, so Elapsed stays monotonic.
func (c *Clock) Tick(elapsed, delta float64) Tick {
	if c.ticking {
		panic("scrollscape: Clock.Tick called from within a tick")
	}

	if d := clampDelta(delta); d != delta {
		if c.OnClamp != nil {
			c.OnClamp(delta)
		}
		delta = d
	}
	if !c.started {
		if !isFinite(elapsed) || elapsed < 0 {
			elapsed = delta
		}
		c.started = true
	} else if !isFinite(elapsed) || elapsed < c.elapsed {
		elapsed = c.elapsed + delta
	}

	c.elapsed = elapsed
	c.frame++
	t := Tick{Elapsed: elapsed, Delta: delta, Frame: c.frame}

	c.ticking = true
	for s := range c.stages {
		handles := c.stages[s]
		// Registrations appended during this tick start on the next one.
		n := len(handles)
		for i := 0; i < n; i++ {
			h := handles[i]
			if h.detached {
				continue
			}
			h.fn(t)
		}
	}
	c.ticking = false

	if c.dirty {
		c.compact()
	}
	return t
}

// Advance ticks the clock by delta seconds, deriving elapsed from the clock's
// own accumulated time. Useful for hosts that only know the frame delta.
func (c *Clock) Advance(delta float64) Tick {
	return c.Tick(c.elapsed+clampDelta(delta), delta)
}

// clampDelta maps a negative or non-finite delta to 0.
func clampDelta(d float64) float64 {
	if !isFinite(d) || d < 0 {
		return 0
	}
	return d
}

// compact drops detached handles. Uses copy+nil to avoid retaining dangling
// pointers in the backing arrays.
func (c *Clock) compact() {
	for s := range c.stages {
		handles := c.stages[s]
		j := 0
		for _, h := range handles {
			if !h.detached {
				handles[j] = h
				j++
			}
		}
		for k := j; k < len(handles); k++ {
			handles[k] = nil
		}
		c.stages[s] = handles[:j]
	}
	c.dirty = false
}
