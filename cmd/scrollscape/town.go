package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phanxgames/scrollscape"
	"github.com/phanxgames/scrollscape/internal/config"
)

// Town float, approximating a gentle hover of the whole model.
const (
	floatAmplitude = 0.15
	floatFrequency = 2.0
)

// sprite is a node the host draws as a colored square.
type sprite struct {
	node *scrollscape.Node
	size float64
}

// town is the demo scene built from config.
type town struct {
	scene   *scrollscape.Scene
	scroll  *scrollscape.ScrollControls
	sprites []sprite
}

// buildTown creates the scene, landmarks, markers and animated entities.
func buildTown(cfg *config.Config, opts ...scrollscape.SceneOption) (*town, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("build town: %w", err)
	}

	scene := scrollscape.NewScene(opts...)
	scene.SetDebugMode(cfg.Debug)
	scene.SetLandmarks(registry, scrollscape.WithOvershoot(cfg.Focus.Overshoot))

	scroll := scrollscape.NewScrollControls(cfg.Scroll.Pages, cfg.Scroll.Damping)
	scene.SetScroll(scroll)

	t := &town{scene: scene, scroll: scroll}

	// All town geometry hangs off one floating container.
	ground := scrollscape.NewNode("town")
	scene.Root().AddChild(ground)
	scene.Attach(ground, scrollscape.Oscillation{Amplitude: floatAmplitude, Frequency: floatFrequency})

	add := func(name string, pos []float64, size float64, hex string) (*scrollscape.Node, error) {
		c, err := parseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("build town: %s: %w", name, err)
		}
		n := scrollscape.NewNodeAt(name, config.Vec(pos))
		n.Color = c
		ground.AddChild(n)
		t.sprites = append(t.sprites, sprite{node: n, size: size})
		return n, nil
	}

	for _, m := range cfg.Town.Markers {
		n, err := add("marker-"+m.Landmark, m.Position, m.Size, m.Color)
		if err != nil {
			return nil, err
		}
		n.Emissive = scene.Highlighter().Rest
		scene.BindLandmark(m.Landmark, n)
	}
	for _, o := range cfg.Town.Orbits {
		n, err := add(o.Name, o.Base, o.Size, o.Color)
		if err != nil {
			return nil, err
		}
		scene.Attach(n, o.Orbit())
	}
	for _, o := range cfg.Town.Oscillators {
		n, err := add(o.Name, o.Position, o.Size, o.Color)
		if err != nil {
			return nil, err
		}
		scene.Attach(n, o.Oscillation())
	}
	for _, s := range cfg.Town.Spinners {
		n, err := add(s.Name, s.Position, s.Size, s.Color)
		if err != nil {
			return nil, err
		}
		scene.Attach(n, s.Spin())
	}
	return t, nil
}

// parseHexColor parses "#rrggbb" or "#rgb". An empty string is white.
func parseHexColor(s string) (scrollscape.Color, error) {
	if s == "" {
		return scrollscape.ColorWhite, nil
	}
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return scrollscape.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return scrollscape.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return scrollscape.Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, nil
}

// Isometric projection basis for a camera on the (1, 1, 1) diagonal.
var (
	isoRight = scrollscape.Vec3{X: 1 / math.Sqrt2, Z: -1 / math.Sqrt2}
	isoUp    = scrollscape.Vec3{X: -1 / math.Sqrt(6), Y: 2 / math.Sqrt(6), Z: -1 / math.Sqrt(6)}
	isoView  = scrollscape.Vec3{X: 1 / math.Sqrt(3), Y: 1 / math.Sqrt(3), Z: 1 / math.Sqrt(3)}
)

func dot(a, b scrollscape.Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// project maps a world position to screen space and a depth where larger is
// nearer the camera.
func project(p scrollscape.Vec3, cx, cy, scale float64) (x, y, depth float64) {
	return cx + dot(p, isoRight)*scale, cy - dot(p, isoUp)*scale, dot(p, isoView)
}
