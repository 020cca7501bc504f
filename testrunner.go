package scrollscape

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// ErrNoSteps is returned by LoadScript for a script without steps.
var ErrNoSteps = errors.New("no steps")

// scriptStep represents a single action in a scroll script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Offset   float64 `json:"offset,omitempty"`
	From     float64 `json:"from,omitempty"`
	To       float64 `json:"to,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Duration float32 `json:"duration,omitempty"`
}

// script is the top-level JSON structure for a scroll script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"scroll":   true,
	"sweep":    true,
	"scrollTo": true,
	"wait":     true,
	"snapshot": true,
}

// ScriptRunner sequences scroll input and snapshots across ticks for
// headless runs and automated checks. Attach to a Scene via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON scroll script and returns a ScriptRunner ready
// to be attached to a Scene via SetScriptRunner.
//
//	{"steps": [
//	  {"action": "scroll", "offset": 0.5},
//	  {"action": "sweep", "from": 0.5, "to": 1, "frames": 30},
//	  {"action": "scrollTo", "offset": 0.2, "duration": 1.5},
//	  {"action": "wait", "frames": 10},
//	  {"action": "snapshot", "label": "end"}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse scroll script: %w", ErrNoSteps)
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse scroll script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the scene. The runner advances
// at the start of every tick, before injected scroll samples are consumed.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called from the scene's input stage.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections and scroll animations to drain.
	if len(s.injectQueue) > 0 {
		return
	}
	if sc, ok := s.scroll.(*ScrollControls); ok && sc.Scrolling() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		s.logSnapshot(st.Label)
	case "scroll":
		s.InjectScroll(st.Offset)
	case "sweep":
		s.InjectScrollSweep(st.From, st.To, st.Frames)
	case "scrollTo":
		if sc, ok := s.scroll.(*ScrollControls); ok {
			sc.ScrollTo(st.Offset, st.Duration, ease.InOutCubic)
		} else {
			s.InjectScroll(st.Offset)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		if sc, ok := s.scroll.(*ScrollControls); !ok || !sc.Scrolling() {
			r.done = true
		}
	}
}
