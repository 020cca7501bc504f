package scrollscape

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenEmissive, TweenOpacity, TweenYaw) and either call Update(dt) yourself
// or hand it to Scene.AddTween. The group writes values straight into the
// node. If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	dirty  bool
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.dirty && g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that animates node.Position to the given
// target over the specified duration using the easing function.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node, dirty: true}
	g.tweens[0] = gween.New(float32(node.Position.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.Position.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.Position.Z), float32(to.Z), duration, fn)
	g.fields[0] = &node.Position.X
	g.fields[1] = &node.Position.Y
	g.fields[2] = &node.Position.Z
	return g
}

// TweenScale creates a TweenGroup that animates node.Scale to the given
// target over the specified duration using the easing function.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node, dirty: true}
	g.tweens[0] = gween.New(float32(node.Scale.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.Scale.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.Scale.Z), float32(to.Z), duration, fn)
	g.fields[0] = &node.Scale.X
	g.fields[1] = &node.Scale.Y
	g.fields[2] = &node.Scale.Z
	return g
}

// TweenYaw creates a TweenGroup that animates node.Rotation.Y to the target
// value over the specified duration using the easing function.
func TweenYaw(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node, dirty: true}
	g.tweens[0] = gween.New(float32(node.Rotation.Y), float32(to), duration, fn)
	g.fields[0] = &node.Rotation.Y
	return g
}

// TweenEmissive creates a TweenGroup that animates node.Emissive to the target
// value over the specified duration using the easing function.
func TweenEmissive(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Emissive), float32(to), duration, fn)
	g.fields[0] = &node.Emissive
	return g
}

// TweenOpacity creates a TweenGroup that animates node.Opacity to the target
// value over the specified duration using the easing function.
func TweenOpacity(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Opacity), float32(to), duration, fn)
	g.fields[0] = &node.Opacity
	return g
}
