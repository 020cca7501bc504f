package scrollscape

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil {
		t.Fatal("root should not be nil")
	}
	if s.Root().Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.Root().Name, "root")
	}
	if s.Landmarks().Len() != 0 {
		t.Error("new scene should have no landmarks")
	}
	if s.Focus().Active {
		t.Error("new scene should have no focus")
	}
}

func TestSceneSetEntityStore(t *testing.T) {
	s := NewScene()
	s.SetEntityStore(nil) // should not panic
	if s.store != nil {
		t.Error("store should be nil")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug {
		t.Error("debug should be false")
	}
}

// --- Entities ---

func TestAttachWritesEachTick(t *testing.T) {
	s := NewScene()
	n := NewNode("car")
	s.Root().AddChild(n)
	o := Orbit{Radius: 3, AngularSpeed: 1}
	e := s.Attach(n, o)

	for i := 1; i <= 5; i++ {
		s.Advance(0.1)
		want := o.Pose(Tick{Elapsed: float64(i) * 0.1})
		assertVec(t, "position", n.Position, want.Position)
	}
	if e.Ticks() != 5 {
		t.Errorf("Ticks = %d, want 5", e.Ticks())
	}
	if e.Node() != n || e.Motion() == nil {
		t.Error("accessors should return attach arguments")
	}
}

func TestAttachNilPanics(t *testing.T) {
	s := NewScene()
	for name, fn := range map[string]func(){
		"node":   func() { s.Attach(nil, Oscillation{}) },
		"motion": func() { s.Attach(NewNode("n"), nil) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("nil %s did not panic", name)
				}
			}()
			fn()
		}()
	}
}

func TestEntitiesRunInAttachOrder(t *testing.T) {
	s := NewScene()
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		s.Attach(NewNode(name), MotionFunc(func(Tick) Pose {
			order = append(order, name)
			return Pose{}
		}))
	}
	s.Advance(0.1)
	if strings.Join(order, "") != "abc" {
		t.Errorf("order = %v", order)
	}
}

func TestDetachedSpinHoldsPose(t *testing.T) {
	s := NewScene()
	n := NewNode("turbine")
	spin := s.Attach(n, NewSpin(AxisY, 4))
	bob := NewNode("pool")
	s.Attach(bob, Oscillation{Amplitude: 1, Frequency: 2})

	for i := 0; i < 20; i++ {
		s.Advance(1.0 / 60)
	}
	spin.Detach()
	frozen := n.Rotation
	ticks := spin.Ticks()

	for i := 0; i < 50; i++ {
		s.Advance(1.0 / 60)
	}
	if n.Rotation != frozen {
		t.Errorf("rotation changed after detach: %v -> %v", frozen, n.Rotation)
	}
	if spin.Ticks() != ticks {
		t.Errorf("detached entity ticked: %d -> %d", ticks, spin.Ticks())
	}
	if !spin.Detached() {
		t.Error("Detached() should be true")
	}
	if len(s.Entities()) != 1 {
		t.Errorf("Entities = %d, want 1", len(s.Entities()))
	}

	spin.Detach() // idempotent
	if len(s.Entities()) != 1 {
		t.Error("second Detach changed the entity list")
	}
}

func TestDetachFromAnotherEntityMidTick(t *testing.T) {
	s := NewScene()
	victim := NewNode("victim")
	var ve *Entity
	s.Attach(NewNode("killer"), MotionFunc(func(Tick) Pose {
		ve.Detach()
		return Pose{}
	}))
	ve = s.Attach(victim, Orbit{Radius: 1, AngularSpeed: 1})

	s.Advance(0.5)
	if victim.Position != (Vec3{}) {
		t.Errorf("entity detached earlier in the tick still wrote: %v", victim.Position)
	}
}

func TestDisposedNodeDetachesEntity(t *testing.T) {
	s := NewScene()
	n := NewNode("temp")
	s.Root().AddChild(n)
	e := s.Attach(n, Oscillation{Amplitude: 1, Frequency: 1})

	s.Advance(0.1)
	n.Dispose()
	s.Advance(0.1)

	if !e.Detached() {
		t.Error("entity should detach when its node is disposed")
	}
	if len(s.Entities()) != 0 {
		t.Errorf("Entities = %d, want 0", len(s.Entities()))
	}
}

// --- Focus ---

func TestSceneFocusScenario(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 5))
	var ratio float64
	s.SetScroll(ScrollFunc(func() float64 { return ratio }))

	var got []int
	s.OnFocusChange(func(lm Landmark) {
		i, _ := s.Landmarks().Lookup(lm.ID)
		got = append(got, i)
	})

	for _, r := range []float64{0, 0.5, 0.95, 1.0} {
		ratio = r
		s.Advance(1.0 / 60)
	}
	if fmt.Sprint(got) != "[0 2 4]" {
		t.Errorf("got %v, want [0 2 4]", got)
	}
}

func TestSceneEmptyRegistryNeverFires(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(MustRegistry())
	s.SetScroll(ScrollFunc(func() float64 { return 0.5 }))
	s.OnFocusChange(func(Landmark) { t.Fatal("subscriber called") })
	for i := 0; i < 100; i++ {
		s.Advance(1.0 / 60)
	}
	if s.Focus().Active {
		t.Error("focus should stay inactive")
	}
}

func TestSceneSamplesScrollOncePerTick(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 3))
	reads := 0
	s.SetScroll(ScrollFunc(func() float64 {
		reads++
		return 0.4
	}))
	for i := 0; i < 10; i++ {
		s.Advance(0.1)
	}
	if reads != 10 {
		t.Errorf("reads = %d, want 10", reads)
	}
	if s.ScrollSample() != 0.4 {
		t.Errorf("ScrollSample = %v, want 0.4", s.ScrollSample())
	}
}

func TestSceneNoScrollSourceReadsZero(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 3))
	s.Advance(0.1)
	if s.Focus().Index != 0 {
		t.Errorf("Index = %d, want 0", s.Focus().Index)
	}
}

func TestSceneMotionRunsBeforeFocus(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 2))
	n := NewNode("mover")
	s.Attach(n, MotionFunc(func(tk Tick) Pose {
		return Pose{Fields: PosePosition, Position: Vec3{X: tk.Elapsed}}
	}))

	var seen float64
	s.OnFocusChange(func(Landmark) { seen = n.Position.X })
	s.Tick(2.5, 0.1)
	if seen != 2.5 {
		t.Errorf("subscriber saw X = %v, want this tick's pose 2.5", seen)
	}
}

func TestSceneSetLandmarksKeepsSubscriber(t *testing.T) {
	s := NewScene()
	var got []string
	s.OnFocusChange(func(lm Landmark) { got = append(got, lm.ID) })

	s.SetLandmarks(MustRegistry(Landmark{ID: "a"}, Landmark{ID: "b"}))
	s.Advance(0.1)
	s.SetLandmarks(MustRegistry(Landmark{ID: "x"}, Landmark{ID: "y"}))
	s.Advance(0.1)
	s.Advance(0.1)

	if fmt.Sprint(got) != "[a x]" {
		t.Errorf("got %v, want [a x]", got)
	}
}

func TestSceneDetachFocus(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 3))
	var ratio float64
	s.SetScroll(ScrollFunc(func() float64 { return ratio }))
	calls := 0
	s.OnFocusChange(func(Landmark) { calls++ })

	s.Advance(0.1)
	s.DetachFocus()
	s.DetachFocus()
	ratio = 1
	s.Advance(0.1)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Focus().Index != 0 {
		t.Errorf("Index = %d, want state kept at 0", s.Focus().Index)
	}
}

func TestSceneScrollControlsDriveFocus(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 5))
	sc := NewScrollControls(3, 0.1)
	s.SetScroll(sc)
	if s.Scroll() != sc {
		t.Fatal("Scroll() should return the source")
	}

	sc.SetTarget(1)
	for i := 0; i < 120; i++ {
		s.Advance(1.0 / 60)
	}
	if s.Focus().Index != 4 {
		t.Errorf("Index = %d, want 4", s.Focus().Index)
	}

	// Replacing the source detaches the old updater.
	s.SetScroll(StaticScroll(0))
	sc.SetTarget(0)
	s.Advance(1.0 / 60)
	if sc.Offset() != 1 {
		t.Errorf("old controls still updated: %v", sc.Offset())
	}
	if s.Focus().Index != 0 {
		t.Errorf("Index = %d, want 0", s.Focus().Index)
	}
}

func TestSceneLandmarkOffset(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 5), WithOvershoot(1))
	if got := s.LandmarkOffset(2); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("LandmarkOffset(2) = %v, want 0.4", got)
	}
}

// recordingStore captures focus events.
type recordingStore struct {
	events []FocusEvent
}

func (r *recordingStore) EmitFocus(e FocusEvent) {
	r.events = append(r.events, e)
}

func TestSceneForwardsFocusToStore(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(testRegistry(t, 3))
	var ratio float64
	s.SetScroll(ScrollFunc(func() float64 { return ratio }))
	store := &recordingStore{}
	s.SetEntityStore(store)

	s.Advance(0.1)
	ratio = 1
	s.Advance(0.1)

	if len(store.events) != 2 {
		t.Fatalf("events = %d, want 2", len(store.events))
	}
	first, second := store.events[0], store.events[1]
	if first.Index != 0 || first.Previous != -1 || first.Landmark.ID != "lm0" || first.Frame != 1 {
		t.Errorf("first = %+v", first)
	}
	if second.Index != 2 || second.Previous != 0 || math.Abs(second.Elapsed-0.2) > 1e-12 {
		t.Errorf("second = %+v", second)
	}
}

func TestSceneLogsFocusChanges(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene(WithLogger(zerolog.New(&buf)))
	s.SetLandmarks(MustRegistry(Landmark{ID: "dam"}, Landmark{ID: "bridge"}))
	s.SetScroll(StaticScroll(1))
	s.Advance(0.1)

	out := buf.String()
	if !strings.Contains(out, `"message":"landmarks registered"`) {
		t.Errorf("missing registration log: %s", out)
	}
	if !strings.Contains(out, `"message":"focus changed"`) || !strings.Contains(out, `"landmark":"bridge"`) {
		t.Errorf("missing focus log: %s", out)
	}
}

func TestSceneDebugLogsTickStats(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	s.SetDebugMode(true)
	s.Tick(0, math.NaN())

	out := buf.String()
	if !strings.Contains(out, `"message":"clamped tick delta"`) {
		t.Errorf("missing clamp log: %s", out)
	}
	if !strings.Contains(out, `"message":"tick stats"`) {
		t.Errorf("missing tick stats: %s", out)
	}
}

// --- Highlight ---

func TestSceneHighlightsFocusedMarker(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(MustRegistry(Landmark{ID: "dam"}, Landmark{ID: "bridge"}))
	var ratio float64
	s.SetScroll(ScrollFunc(func() float64 { return ratio }))

	dam := NewNode("marker-dam")
	bridge := NewNode("marker-bridge")
	s.BindLandmark("dam", dam)
	s.BindLandmark("bridge", bridge)
	h := s.Highlighter()

	s.Advance(0.1)
	if dam.Emissive <= 0 {
		t.Errorf("dam marker should start glowing, Emissive = %v", dam.Emissive)
	}
	for i := 0; i < 10; i++ {
		s.Advance(0.1)
	}
	if math.Abs(dam.Emissive-h.Peak) > 0.01 {
		t.Errorf("dam Emissive = %v, want %v", dam.Emissive, h.Peak)
	}
	if h.Animating() != 0 {
		t.Errorf("Animating = %d, want 0", h.Animating())
	}

	ratio = 1
	for i := 0; i < 10; i++ {
		s.Advance(0.1)
	}
	if math.Abs(dam.Emissive-h.Rest) > 0.01 {
		t.Errorf("dam Emissive = %v, want %v", dam.Emissive, h.Rest)
	}
	if math.Abs(bridge.Emissive-h.Peak) > 0.01 {
		t.Errorf("bridge Emissive = %v, want %v", bridge.Emissive, h.Peak)
	}
}

func TestSetLandmarksFadesPreviousMarker(t *testing.T) {
	s := NewScene()
	s.SetLandmarks(MustRegistry(Landmark{ID: "dam"}))
	dam := NewNode("marker-dam")
	bridge := NewNode("marker-bridge")
	s.BindLandmark("dam", dam)
	s.BindLandmark("bridge", bridge)
	h := s.Highlighter()

	for i := 0; i < 10; i++ {
		s.Advance(0.1)
	}
	if math.Abs(dam.Emissive-h.Peak) > 0.01 {
		t.Fatalf("dam Emissive = %v, want %v", dam.Emissive, h.Peak)
	}

	s.SetLandmarks(MustRegistry(Landmark{ID: "bridge"}))
	for i := 0; i < 10; i++ {
		s.Advance(0.1)
	}
	if math.Abs(dam.Emissive-h.Rest) > 0.01 {
		t.Errorf("dam Emissive = %v after registry swap, want %v", dam.Emissive, h.Rest)
	}
	if math.Abs(bridge.Emissive-h.Peak) > 0.01 {
		t.Errorf("bridge Emissive = %v, want %v", bridge.Emissive, h.Peak)
	}
}

func TestHighlighterBind(t *testing.T) {
	h := NewHighlighter()
	n := NewNode("m")
	h.Bind("a", n)
	if got, ok := h.Marker("a"); !ok || got != n {
		t.Error("Marker should return the bound node")
	}
	h.Bind("a", nil)
	if _, ok := h.Marker("a"); ok {
		t.Error("binding nil should remove the marker")
	}

	// Unknown ids and disposed markers are ignored.
	gone := NewNode("gone")
	gone.Dispose()
	h.Bind("gone", gone)
	h.focus("missing", "gone")
	if h.Animating() != 0 {
		t.Errorf("Animating = %d, want 0", h.Animating())
	}
}
