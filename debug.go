package scrollscape

import "time"

// debugStats holds per-tick timing and bookkeeping counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	tick      Tick
	tickTime  time.Duration
	entities  int
	callbacks int
	tweens    int
}

// debugLog writes tick stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug().
		Uint64("frame", stats.tick.Frame).
		Float64("elapsed", stats.tick.Elapsed).
		Float64("delta", stats.tick.Delta).
		Dur("tick", stats.tickTime).
		Int("entities", stats.entities).
		Int("callbacks", stats.callbacks).
		Int("tweens", stats.tweens).
		Float64("scroll", s.sample).
		Int("focus", s.resolver.State().Index).
		Msg("tick stats")
}

// Snapshot is a point-in-time view of the scene for logging and tests.
type Snapshot struct {
	Frame    uint64
	Elapsed  float64
	Scroll   float64
	Focus    FocusState
	Entities []EntitySnapshot
}

// EntitySnapshot is one entity's node name and last written pose.
type EntitySnapshot struct {
	Name string
	Pose Pose
}

// Snapshot captures the current focus and every attached entity's last pose.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:    s.clock.Frame(),
		Elapsed:  s.clock.Elapsed(),
		Scroll:   s.sample,
		Focus:    s.resolver.State(),
		Entities: make([]EntitySnapshot, len(s.entities)),
	}
	for i, e := range s.entities {
		snap.Entities[i] = EntitySnapshot{Name: e.node.Name, Pose: e.last}
	}
	return snap
}

// logSnapshot writes a labelled snapshot at info level.
func (s *Scene) logSnapshot(label string) {
	snap := s.Snapshot()
	ev := s.logger.Info().
		Str("label", label).
		Uint64("frame", snap.Frame).
		Float64("elapsed", snap.Elapsed).
		Float64("scroll", snap.Scroll).
		Int("focus", snap.Focus.Index)
	if snap.Focus.Active {
		ev = ev.Str("landmark", snap.Focus.Landmark.ID)
	}
	ev.Msg("snapshot")
	for _, es := range snap.Entities {
		s.logger.Debug().
			Str("label", label).
			Str("entity", es.Name).
			Floats64("position", []float64{es.Pose.Position.X, es.Pose.Position.Y, es.Pose.Position.Z}).
			Floats64("rotation", []float64{es.Pose.Rotation.X, es.Pose.Rotation.Y, es.Pose.Rotation.Z}).
			Msg("entity pose")
	}
}
