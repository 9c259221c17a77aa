package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/version"
)

const (
	lineHeight = float32(20)
	fontSize16 = float32(16)
	fontSize14 = float32(14)
	fontSize12 = float32(12)
)

// panel writes lines top-down in the left column
type panel struct {
	font rl.Font
	y    float32
}

func (p *panel) heading(text string) {
	rl.DrawTextEx(p.font, text, rl.Vector2{X: 10, Y: p.y}, fontSize16, 1, rl.Yellow)
	p.y += lineHeight
}

func (p *panel) line(c rl.Color, format string, args ...any) {
	rl.DrawTextEx(p.font, fmt.Sprintf("  "+format, args...), rl.Vector2{X: 10, Y: p.y}, fontSize14, 1, c)
	p.y += lineHeight
}

func (p *panel) gap() {
	p.y += lineHeight
}

func (app *App) drawUI() {
	p := &panel{font: app.UI.font, y: 10}
	result := app.Model.result

	p.heading("Model:")
	p.line(rl.White, "Name: %s", app.Model.model.Name)
	p.line(rl.White, "Triangles: %d", result.TriangleCount)
	p.line(rl.White, "Surface Area: %s", measurement.FormatArea(result.SurfaceArea))
	p.line(rl.White, "Size: %.2f × %.2f × %.2f", result.Dimensions.X, result.Dimensions.Y, result.Dimensions.Z)
	if result.OpenEdges > 0 {
		p.line(rl.Orange, "Open edges: %d", result.OpenEdges)
	}
	p.gap()

	p.heading("Annotate:")
	p.line(rl.White, "Mode: %s", app.session.Mode())
	p.line(toColor(app.session.DrawColor()), "Color: %s", annotation.FormatColor(app.session.DrawColor()))
	p.line(rl.White, "Snap to vertices: %s", onOff(app.View.snap))
	p.line(rl.White, "Light: %.1f", app.View.light.Intensity)
	p.gap()

	if r := app.report; r != nil {
		p.heading("Measurements:")
		p.line(rl.Green, "Points: %d", len(r.Points))
		for i, l := range r.Lines {
			p.line(rl.Green, "Line %d: %s", i+1, measurement.FormatLength(l.Length))
		}
		for i, poly := range r.Polygons {
			p.line(rl.Green, "Polygon %d: %s", i+1, measurement.FormatArea(poly.Area))
		}
		if r.InProgress > 0 {
			p.line(rl.Orange, "Drawing %s: %d point(s)", r.Mode, r.InProgress)
		}
		p.gap()
	}

	p.heading("Controls:")
	p.line(rl.LightGray, "Click: Pick | Double-click/Enter: Finish")
	p.line(rl.LightGray, "Esc: Discard shape | Tab: Mode | C: Color")
	p.line(rl.LightGray, "S: Snap | +/-: Light | W: Wireframe | F: Fill")
	p.line(rl.LightGray, "Drag: Rotate | Shift+Drag: Pan | Wheel: Zoom")
	p.line(rl.LightGray, "Home: Reset | T: Top | B: Bottom | 1-4: Sides")

	bottomY := float32(rl.GetScreenHeight()) - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("FPS: %d", rl.GetFPS()), rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
