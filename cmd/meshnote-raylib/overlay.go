package main

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/pkg/geometry"
)

const (
	labelFontSize = 16
	labelPadding  = 3
)

var labelBackground = rl.NewColor(0, 0, 0, 180)

func toColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// project maps p to the screen; ok is false behind the camera
func (app *App) project(p geometry.Vector3) (rl.Vector2, bool) {
	if !app.Camera.inFront(p) {
		return rl.Vector2{}, false
	}
	return rl.GetWorldToScreen(toRaylib(p), app.Camera.camera), true
}

// drawOverlay draws the annotation overlay in screen space after the 3D pass,
// so markers and labels stay readable on top of the surface
func (app *App) drawOverlay() {
	o := app.overlay

	for _, f := range o.Fills {
		app.drawFill(f)
	}
	for _, s := range o.Segments {
		a, okA := app.project(s.Start)
		b, okB := app.project(s.End)
		if okA && okB {
			rl.DrawLineEx(a, b, measurement.LineThickness, toColor(s.Color))
		}
	}
	for _, m := range o.Markers {
		p, ok := app.project(m.Position)
		if !ok {
			continue
		}
		if m.Preview {
			rl.DrawCircleLines(int32(p.X), int32(p.Y), measurement.MarkerRadius+2, toColor(m.Color))
			continue
		}
		rl.DrawCircle(int32(p.X), int32(p.Y), measurement.MarkerRadius, toColor(m.Color))
	}
	for _, l := range o.Labels {
		if p, ok := app.project(l.Anchor); ok {
			app.drawLabel(l.Text, p, toColor(l.Color))
		}
	}
}

// drawFill draws a translucent polygon as a triangle fan. DrawTriangle culls
// by winding, so each triangle is submitted in both orders.
func (app *App) drawFill(f measurement.Fill) {
	points := make([]rl.Vector2, 0, len(f.Points))
	for _, p := range f.Points {
		sp, ok := app.project(p)
		if !ok {
			return
		}
		points = append(points, sp)
	}
	c := toColor(f.Color)
	for i := 1; i+1 < len(points); i++ {
		rl.DrawTriangle(points[0], points[i], points[i+1], c)
		rl.DrawTriangle(points[0], points[i+1], points[i], c)
	}
}

// drawLabel centers text above the anchor on a dark box
func (app *App) drawLabel(text string, anchor rl.Vector2, c rl.Color) {
	size := rl.MeasureTextEx(app.UI.font, text, labelFontSize, 1)
	pos := rl.Vector2{
		X: anchor.X - size.X/2,
		Y: anchor.Y - measurement.MarkerRadius - labelPadding*2 - size.Y,
	}
	box := rl.Rectangle{
		X:      pos.X - labelPadding,
		Y:      pos.Y - labelPadding,
		Width:  size.X + labelPadding*2,
		Height: size.Y + labelPadding*2,
	}
	rl.DrawRectangleRec(box, labelBackground)
	c.A = 255
	rl.DrawTextEx(app.UI.font, text, pos, labelFontSize, 1, c)
}
