package scrollscape

import (
	"fmt"
	"math"
	"testing"
)

func testRegistry(t *testing.T, n int) *Registry {
	t.Helper()
	lms := make([]Landmark, n)
	for i := range lms {
		lms[i] = Landmark{ID: fmt.Sprintf("lm%d", i), Title: fmt.Sprintf("Landmark %d", i)}
	}
	r, err := NewRegistry(lms...)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestResolveIndexBounds(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for _, k := range []float64{1, DefaultOvershoot, 1.5, 3} {
			for i := 0; i <= 1000; i++ {
				r := float64(i) / 1000
				idx := ResolveIndex(r, n, k)
				if idx < 0 || idx > n-1 {
					t.Fatalf("ResolveIndex(%v, %d, %v) = %d out of range", r, n, k, idx)
				}
			}
		}
	}
}

func TestResolveIndexMonotonic(t *testing.T) {
	for n := 1; n <= 12; n++ {
		prev := 0
		for i := 0; i <= 1000; i++ {
			idx := ResolveIndex(float64(i)/1000, n, DefaultOvershoot)
			if idx < prev {
				t.Fatalf("n=%d: index dropped from %d to %d at ratio %v", n, prev, idx, float64(i)/1000)
			}
			prev = idx
		}
	}
}

func TestResolveIndexEmptyRegistry(t *testing.T) {
	if got := ResolveIndex(0.5, 0, DefaultOvershoot); got != -1 {
		t.Errorf("ResolveIndex with n=0 = %d, want -1", got)
	}
}

func TestResolveIndexClampsRatio(t *testing.T) {
	tests := []struct {
		ratio float64
		want  int
	}{
		{-0.5, 0},
		{math.NaN(), 0},
		{math.Inf(-1), 0},
		{1.7, 4},
		{math.Inf(1), 4},
	}
	for _, tt := range tests {
		if got := ResolveIndex(tt.ratio, 5, DefaultOvershoot); got != tt.want {
			t.Errorf("ResolveIndex(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}

func TestResolveIndexFloorAtBoundary(t *testing.T) {
	// With K=1 and n=4, ratio 0.25 lands exactly on the 1/2 boundary.
	if got := ResolveIndex(0.25, 4, 1); got != 1 {
		t.Errorf("ResolveIndex(0.25, 4, 1) = %d, want 1", got)
	}
	if got := ResolveIndex(math.Nextafter(0.25, 0), 4, 1); got != 0 {
		t.Errorf("just below boundary = %d, want 0", got)
	}
}

func TestOvershootReachesLastBeforeEnd(t *testing.T) {
	if got := ResolveIndex(0.727, 5, DefaultOvershoot); got != 3 {
		t.Errorf("ResolveIndex(0.727) = %d, want 3", got)
	}
	for r := 0.728; r <= 1.0; r += 0.001 {
		if got := ResolveIndex(r, 5, DefaultOvershoot); got != 4 {
			t.Fatalf("ResolveIndex(%v) = %d, want 4", r, got)
		}
	}
}

func TestIndexOffsetIsSmallestRatio(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for i := 0; i < n; i++ {
			r := IndexOffset(i, n, DefaultOvershoot)
			if got := ResolveIndex(r, n, DefaultOvershoot); got != i {
				t.Errorf("n=%d: IndexOffset(%d)=%v resolves to %d", n, i, r, got)
			}
			if i > 0 {
				below := math.Nextafter(r, 0)
				if got := ResolveIndex(below, n, DefaultOvershoot); got != i-1 {
					t.Errorf("n=%d i=%d: just below offset resolves to %d, want %d", n, i, got, i-1)
				}
			}
		}
	}
	if got := IndexOffset(3, 0, DefaultOvershoot); got != 0 {
		t.Errorf("empty registry offset = %v, want 0", got)
	}
}

func TestResolverFirstEvaluationFires(t *testing.T) {
	r := NewResolver(testRegistry(t, 3))
	if r.State().Active || r.State().Index != -1 {
		t.Fatalf("initial state = %+v", r.State())
	}

	var got []string
	r.OnFocusChange(func(lm Landmark) { got = append(got, lm.ID) })

	if !r.Resolve(0) {
		t.Fatal("first evaluation should fire")
	}
	if len(got) != 1 || got[0] != "lm0" {
		t.Errorf("got %v, want [lm0]", got)
	}
	st := r.State()
	if !st.Active || st.Index != 0 || st.Landmark.ID != "lm0" {
		t.Errorf("state = %+v", st)
	}
}

func TestResolverEdgeTriggered(t *testing.T) {
	r := NewResolver(testRegistry(t, 5))
	calls := 0
	r.OnFocusChange(func(Landmark) { calls++ })

	for i := 0; i < 100; i++ {
		r.Resolve(0.3)
	}
	if calls != 1 {
		t.Errorf("calls = %d over constant input, want 1", calls)
	}

	// Small moves inside the same index range do not fire.
	r.Resolve(0.31)
	r.Resolve(0.29)
	if calls != 1 {
		t.Errorf("calls = %d after same-index moves, want 1", calls)
	}
}

func TestResolverFiveLandmarkSequence(t *testing.T) {
	r := NewResolver(testRegistry(t, 5))
	var got []int
	r.OnFocusChange(func(lm Landmark) {
		i, _ := r.Registry().Lookup(lm.ID)
		got = append(got, i)
	})

	fired := []bool{}
	for _, ratio := range []float64{0, 0.5, 0.95, 1.0} {
		fired = append(fired, r.Resolve(ratio))
	}

	want := []int{0, 2, 4}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("indices = %v, want %v", got, want)
	}
	if fmt.Sprint(fired) != fmt.Sprint([]bool{true, true, true, false}) {
		t.Errorf("fired = %v", fired)
	}
}

func TestResolverLargeJumpSkipsIntermediate(t *testing.T) {
	r := NewResolver(testRegistry(t, 5))
	var got []string
	r.OnFocusChange(func(lm Landmark) { got = append(got, lm.ID) })

	r.Resolve(0)
	r.Resolve(1)
	if fmt.Sprint(got) != "[lm0 lm4]" {
		t.Errorf("got %v, want [lm0 lm4]", got)
	}
}

func TestResolverReverseScroll(t *testing.T) {
	r := NewResolver(testRegistry(t, 4))
	var got []int
	r.OnFocusChange(func(lm Landmark) {
		i, _ := r.Registry().Lookup(lm.ID)
		got = append(got, i)
	})
	for i := 1000; i >= 0; i-- {
		r.Resolve(float64(i) / 1000)
	}
	if fmt.Sprint(got) != "[3 2 1 0]" {
		t.Errorf("got %v, want [3 2 1 0]", got)
	}
}

func TestResolverEmptyRegistryInert(t *testing.T) {
	for _, reg := range []*Registry{nil, MustRegistry()} {
		r := NewResolver(reg)
		r.OnFocusChange(func(Landmark) { t.Fatal("subscriber called for empty registry") })
		for i := 0; i < 100; i++ {
			if r.Resolve(float64(i) / 100) {
				t.Fatal("Resolve reported a change")
			}
		}
		if r.State().Active || r.State().Index != -1 {
			t.Errorf("state = %+v, want inactive", r.State())
		}
	}
}

func TestResolverSubscriberReplaced(t *testing.T) {
	r := NewResolver(testRegistry(t, 3))
	first, second := 0, 0
	r.OnFocusChange(func(Landmark) { first++ })
	r.Resolve(0)
	r.OnFocusChange(func(Landmark) { second++ })
	r.Resolve(1)

	if first != 1 || second != 1 {
		t.Errorf("first = %d, second = %d, want 1 and 1", first, second)
	}

	r.OnFocusChange(nil)
	r.Resolve(0) // no subscriber, still updates state
	if r.State().Index != 0 {
		t.Errorf("Index = %d, want 0", r.State().Index)
	}
}

func TestResolverNoSubscriberStillTracksState(t *testing.T) {
	r := NewResolver(testRegistry(t, 5))
	r.Resolve(0.5)
	if r.State().Index != 2 {
		t.Errorf("Index = %d, want 2", r.State().Index)
	}
}

func TestWithOvershoot(t *testing.T) {
	r := NewResolver(testRegistry(t, 4), WithOvershoot(1))
	if r.Overshoot() != 1 {
		t.Errorf("Overshoot = %v, want 1", r.Overshoot())
	}
	r.Resolve(0.99)
	if r.State().Index != 3 {
		t.Errorf("Index = %d, want 3", r.State().Index)
	}
	if NewResolver(nil).Overshoot() != DefaultOvershoot {
		t.Error("default overshoot not applied")
	}
}

func TestWithOvershootPanicsOnInvalid(t *testing.T) {
	for _, k := range []float64{0.9, 0, -1, math.NaN(), math.Inf(1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithOvershoot(%v) did not panic", k)
				}
			}()
			WithOvershoot(k)
		}()
	}
}
