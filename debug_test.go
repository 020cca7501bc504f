package scrollscape

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSnapshot(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 3))
	s.SetScroll(StaticScroll(0.5))
	car := NewNode("car")
	s.Attach(car, Orbit{Radius: 2, AngularSpeed: 1})
	s.Attach(NewNode("pool"), Oscillation{BaseY: 1})

	s.Advance(0.25)
	s.Advance(0.25)

	snap := s.Snapshot()
	if snap.Frame != 2 || snap.Elapsed != 0.5 {
		t.Errorf("frame/elapsed = %d/%v, want 2/0.5", snap.Frame, snap.Elapsed)
	}
	if snap.Scroll != 0.5 {
		t.Errorf("Scroll = %v, want 0.5", snap.Scroll)
	}
	if !snap.Focus.Active || snap.Focus.Landmark.ID != "lm1" {
		t.Errorf("Focus = %+v, want lm1", snap.Focus)
	}
	if len(snap.Entities) != 2 {
		t.Fatalf("Entities = %d, want 2", len(snap.Entities))
	}
	if snap.Entities[0].Name != "car" || snap.Entities[0].Pose.Position != car.Position {
		t.Errorf("entity 0 = %+v", snap.Entities[0])
	}
	if snap.Entities[1].Pose.Position.Y != 1 {
		t.Errorf("entity 1 Y = %v, want 1", snap.Entities[1].Pose.Position.Y)
	}
}

func TestLogSnapshot(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	s.SetLandmarks(MustRegistry(Landmark{ID: "dam"}))
	s.Attach(NewNode("turbine"), NewSpin(AxisY, 1))
	s.Advance(0.1)
	buf.Reset()

	s.logSnapshot("check")

	out := buf.String()
	for _, want := range []string{
		`"message":"snapshot"`,
		`"label":"check"`,
		`"landmark":"dam"`,
		`"entity":"turbine"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s: %s", want, out)
		}
	}
}

func TestDebugLogSilentWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	s.Advance(0.1)
	if strings.Contains(buf.String(), "tick stats") {
		t.Error("tick stats logged with debug mode off")
	}
}
