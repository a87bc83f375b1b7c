package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kyra-dean/rosette/internal/particle"
	"github.com/kyra-dean/rosette/internal/scene"
)

var background = rl.NewColor(10, 10, 10, 255)

// groupColors mirrors the export palette. Groups beyond it wrap around.
var groupColors = []rl.Color{
	rl.NewColor(232, 197, 71, 255),  // #e8c547
	rl.NewColor(79, 176, 198, 255),  // #4fb0c6
	rl.NewColor(201, 79, 109, 255),  // #c94f6d
	rl.NewColor(123, 182, 97, 255),  // #7bb661
	rl.NewColor(155, 107, 201, 255), // #9b6bc9
	rl.NewColor(217, 142, 74, 255),  // #d98e4a
}

func groupColor(group int) rl.Color {
	return groupColors[((group%len(groupColors))+len(groupColors))%len(groupColors)]
}

func statusShortfall(placed, requested int) string {
	return fmt.Sprintf("placed %d of %d wheels before running out of room", placed, requested)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	for _, c := range a.scene.Connectors() {
		from := rl.NewVector2(float32(c.From.X), float32(c.From.Y))
		to := rl.NewVector2(float32(c.To.X), float32(c.To.Y))
		rl.DrawLineEx(from, to, 1, rl.Fade(groupColor(c.ColorGroup), 0.35))
	}

	wheels := a.scene.Wheels()
	for i := range wheels {
		if !wheels[i].Dispersed {
			drawWheel(&wheels[i])
		}
	}

	for _, p := range a.scene.Particles() {
		drawParticle(&p, wheels)
	}

	rl.DrawText("click: disperse   space: restore   r: regenerate   p: pause", 12, int32(rl.GetScreenHeight())-24, 10, rl.Gray)
	if a.status != "" {
		rl.DrawText(a.status, 12, 12, 10, rl.LightGray)
	}

	rl.EndDrawing()
}

func drawWheel(w *scene.Wheel) {
	color := rl.Fade(groupColor(w.ColorGroup), float32(w.FadeAlpha))
	center := rl.NewVector2(float32(w.Center.X), float32(w.Center.Y))
	r := w.CurrentRadius

	rl.DrawRing(center, float32(r)-1, float32(r)+1, 0, 360, 0, color)

	for i := 0; i < particle.SpokesPerWheel; i++ {
		angle := 2 * math.Pi * float64(i) / particle.SpokesPerWheel
		inner := rl.NewVector2(
			float32(w.Center.X+math.Cos(angle)*r*0.25),
			float32(w.Center.Y+math.Sin(angle)*r*0.25),
		)
		outer := rl.NewVector2(
			float32(w.Center.X+math.Cos(angle)*r*0.78),
			float32(w.Center.Y+math.Sin(angle)*r*0.78),
		)
		rl.DrawLineEx(inner, outer, 1, color)
	}

	for i := 0; i < particle.DotsPerWheel; i++ {
		angle := 2 * math.Pi * float64(i) / particle.DotsPerWheel
		dot := rl.NewVector2(
			float32(w.Center.X+math.Cos(angle)*r*0.88),
			float32(w.Center.Y+math.Sin(angle)*r*0.88),
		)
		rl.DrawCircleV(dot, 2, color)
	}
}

func drawParticle(p *particle.Particle, wheels []scene.Wheel) {
	group := 0
	if int(p.Owner) >= 0 && int(p.Owner) < len(wheels) {
		group = wheels[p.Owner].ColorGroup
	}
	color := rl.Fade(groupColor(group), float32(p.Alpha/255))

	switch p.Kind {
	case particle.Spoke:
		// A detached spoke keeps spinning about its own midpoint.
		half := p.Size / 2
		dx, dy := math.Cos(p.Rot)*half, math.Sin(p.Rot)*half
		from := rl.NewVector2(float32(p.Pos.X-dx), float32(p.Pos.Y-dy))
		to := rl.NewVector2(float32(p.Pos.X+dx), float32(p.Pos.Y+dy))
		rl.DrawLineEx(from, to, 1, color)
	case particle.Dot:
		rl.DrawCircleV(rl.NewVector2(float32(p.Pos.X), float32(p.Pos.Y)), float32(p.Size), color)
	}
}
