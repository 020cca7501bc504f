package main

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/scrollscape"
	"github.com/tanema/gween/ease"
)

const (
	wheelStep      = 120.0 // pixels per wheel notch
	keyScrollSpeed = 0.35  // offset per second while an arrow key is held
	worldScale     = 22.0  // pixels per world unit
	pixelsPerSize  = 14.0
	overlayWrap    = 72
	statsInterval  = 0.5 // seconds between overlay stats refreshes
)

var (
	clearColor = color.RGBA{0x07, 0x11, 0x1d, 0xff}
	groundTint = color.RGBA{0x0b, 0x17, 0x27, 0xff}
)

// whitePixel is a 1x1 white image scaled and tinted to draw every sprite.
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

// game adapts the town to ebiten.Game. Each Update delivers exactly one
// scrollscape tick of 1/TPS seconds.
type game struct {
	town   *town
	width  int
	height int

	focused  scrollscape.Landmark
	hasFocus bool

	statsAge float64
	stats    string

	order []int
}

func newGame(t *town, width, height int) *game {
	g := &game{town: t, width: width, height: height}
	t.scene.OnFocusChange(func(lm scrollscape.Landmark) {
		g.focused = lm
		g.hasFocus = true
	})
	return g
}

func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	sc := g.town.scroll

	if _, dy := ebiten.Wheel(); dy != 0 {
		sc.ScrollBy(-dy*wheelStep, float64(g.height))
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		sc.SetTarget(sc.Target() + keyScrollSpeed*dt)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		sc.SetTarget(sc.Target() - keyScrollSpeed*dt)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		sc.ScrollTo(0, 1.2, ease.InOutCubic)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		sc.ScrollTo(1, 1.2, ease.InOutCubic)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.jumpLandmark(inpututil.IsKeyJustPressed(ebiten.KeyPageDown))
	}

	g.town.scene.Advance(dt)

	g.statsAge += dt
	if g.statsAge >= statsInterval || g.stats == "" {
		g.statsAge = 0
		g.stats = fmt.Sprintf("FPS: %.1f  TPS: %.1f  scroll: %.3f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.town.scene.ScrollSample())
	}
	return nil
}

// jumpLandmark animates the scroll to the start of the next or previous
// landmark's range.
func (g *game) jumpLandmark(forward bool) {
	scene := g.town.scene
	n := scene.Landmarks().Len()
	if n == 0 {
		return
	}
	idx := scene.Focus().Index
	if forward {
		idx++
	} else {
		idx--
	}
	idx = max(0, min(n-1, idx))
	g.town.scroll.ScrollTo(scene.LandmarkOffset(idx), 0.8, ease.OutCubic)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)

	cx := float64(g.width) / 2
	cy := float64(g.height) * 0.55

	// Ground plate.
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(g.width)*0.7, float64(g.height)*0.35)
	op.GeoM.Translate(cx-float64(g.width)*0.35, cy-float64(g.height)*0.1)
	op.ColorScale.ScaleWithColor(groundTint)
	screen.DrawImage(whitePixel, &op)

	// Painter's order: far to near.
	sprites := g.town.sprites
	depths := make([]float64, len(sprites))
	g.order = g.order[:0]
	for i, s := range sprites {
		_, _, depths[i] = project(s.node.WorldPosition(), cx, cy, worldScale)
		g.order = append(g.order, i)
	}
	sort.SliceStable(g.order, func(a, b int) bool {
		return depths[g.order[a]] < depths[g.order[b]]
	})

	for _, i := range g.order {
		n := sprites[i].node
		if !n.Visible || n.IsDisposed() {
			continue
		}
		x, y, _ := project(n.WorldPosition(), cx, cy, worldScale)
		side := sprites[i].size * pixelsPerSize * n.Scale.Y * (1 + 0.5*n.Emissive)
		glow := 0.75 + 0.5*n.Emissive

		op.GeoM.Reset()
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(side, side)
		op.GeoM.Rotate(-n.Rotation.Y)
		op.GeoM.Translate(x, y)
		op.ColorScale.Reset()
		op.ColorScale.Scale(
			float32(math.Min(1, n.Color.R*glow)),
			float32(math.Min(1, n.Color.G*glow)),
			float32(math.Min(1, n.Color.B*glow)),
			1,
		)
		op.ColorScale.ScaleAlpha(float32(n.Opacity))
		screen.DrawImage(whitePixel, &op)
	}

	g.drawOverlay(screen)
}

// drawOverlay prints the focused landmark, a scroll bar and frame stats.
func (g *game) drawOverlay(screen *ebiten.Image) {
	y := 8
	if g.hasFocus {
		ebitenutil.DebugPrintAt(screen, "FEATURED FOCUS", 12, y)
		y += 16
		ebitenutil.DebugPrintAt(screen, g.focused.Title, 12, y)
		y += 20
		for _, line := range wrap(g.focused.Highlight, overlayWrap) {
			ebitenutil.DebugPrintAt(screen, line, 12, y)
			y += 14
		}
	}

	// Scroll bar along the right edge.
	barH := float64(g.height) - 40
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(4, barH)
	op.GeoM.Translate(float64(g.width)-16, 20)
	op.ColorScale.ScaleWithColor(color.RGBA{0x30, 0x40, 0x55, 0xff})
	screen.DrawImage(whitePixel, &op)

	op.GeoM.Reset()
	op.GeoM.Scale(8, 8)
	op.GeoM.Translate(float64(g.width)-18, 16+barH*g.town.scroll.Offset())
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(color.RGBA{0x6b, 0xc4, 0xff, 0xff})
	screen.DrawImage(whitePixel, &op)

	ebitenutil.DebugPrintAt(screen, g.stats, 12, g.height-20)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// wrap splits s into lines of at most width characters on word boundaries.
func wrap(s string, width int) []string {
	var lines []string
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		if b.Len() > 0 && b.Len()+1+len(word) > width {
			lines = append(lines, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}
