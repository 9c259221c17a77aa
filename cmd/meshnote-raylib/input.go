package main

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/colornames"

	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/picker"
	"github.com/philipparndt/meshnote/pkg/viewer"
)

const (
	// clickSlop is how far in pixels the mouse may travel during a click
	clickSlop        = 5.0
	doubleClickDelay = 0.35 // seconds
	lightStep        = 0.1
)

// palette is cycled with C
var palette = []color.NRGBA{
	annotation.DefaultDrawColor,
	color.NRGBA(colornames.Lime),
	color.NRGBA(colornames.Dodgerblue),
	color.NRGBA(colornames.Yellow),
	color.NRGBA(colornames.Magenta),
	color.NRGBA(colornames.Cyan),
}

// clickTracker turns consecutive clicks into double clicks
type clickTracker struct {
	last    float64
	lastPos rl.Vector2
	armed   bool
}

// register records a click at now and reports whether it completes a
// double click
func (t *clickTracker) register(now float64, pos rl.Vector2) bool {
	if t.armed && now-t.last <= doubleClickDelay && rl.Vector2Distance(pos, t.lastPos) < clickSlop {
		t.armed = false
		return true
	}
	t.armed = true
	t.last = now
	t.lastPos = pos
	return false
}

// nextMode cycles point, line, polygon
func nextMode(m annotation.Mode) annotation.Mode {
	for i, candidate := range annotation.Modes {
		if candidate == m {
			return annotation.Modes[(i+1)%len(annotation.Modes)]
		}
	}
	return annotation.ModePoint
}

func toPickerRay(r rl.Ray) picker.Ray {
	return picker.NewRay(fromRaylib(r.Position), fromRaylib(r.Direction))
}

// stepLight changes the intensity by delta, clamped to the valid range
func stepLight(l viewer.Light, delta float64) viewer.Light {
	l.Intensity = math.Round((l.Intensity+delta)*10) / 10
	l.Intensity = math.Min(math.Max(l.Intensity, 0), viewer.MaxLightIntensity)
	return l
}

func (app *App) handleInput() {
	app.handleKeys()

	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Input.mouseDownPos = mouse
		app.Input.mouseMoved = false
		app.Input.isPanning = shift
	}

	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Input.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.Input.mouseMoved = true
			app.Camera.pan(delta)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if math.Abs(float64(delta.X)) > 1 || math.Abs(float64(delta.Y)) > 1 {
			app.Input.mouseMoved = true
		}
		if delta.X != 0 || delta.Y != 0 {
			app.Camera.rotate(delta)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.Camera.zoom(wheel)
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		drag := rl.Vector2Distance(app.Input.mouseDownPos, mouse)
		if !app.Input.mouseMoved && !app.Input.isPanning && drag < clickSlop {
			app.click(mouse)
		}
		app.Input.isPanning = false
	}

	dragging := rl.IsMouseButtonDown(rl.MouseLeftButton) || rl.IsMouseButtonDown(rl.MouseMiddleButton)
	switch {
	case !onScreen(mouse):
		app.session.PointerLeave()
	case !dragging:
		ray := toPickerRay(rl.GetMouseRay(mouse, app.Camera.camera))
		if !app.session.HoverRay(app.Model.picker, ray) {
			app.session.PointerLeave()
		}
	}
}

// click picks under the cursor; the second click of a double click ends the
// line or polygon instead of adding a point
func (app *App) click(pos rl.Vector2) {
	if app.Input.clicks.register(rl.GetTime(), pos) {
		app.session.Finalize()
		return
	}
	ray := toPickerRay(rl.GetMouseRay(pos, app.Camera.camera))
	app.session.PickRay(app.Model.picker, ray)
}

func (app *App) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		app.session.CancelInProgress()
	case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeyKpEnter):
		app.session.Finalize()
	case rl.IsKeyPressed(rl.KeyTab):
		app.session.SetMode(nextMode(app.session.Mode()))
	case rl.IsKeyPressed(rl.KeyC):
		app.View.paletteIndex = (app.View.paletteIndex + 1) % len(palette)
		app.session.SetDrawColor(palette[app.View.paletteIndex])
	case rl.IsKeyPressed(rl.KeyS):
		app.View.snap = !app.View.snap
		app.applySnap()
	case rl.IsKeyPressed(rl.KeyW):
		app.View.showWireframe = !app.View.showWireframe
	case rl.IsKeyPressed(rl.KeyF):
		app.View.showFilled = !app.View.showFilled
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		app.setLight(stepLight(app.View.light, lightStep))
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		app.setLight(stepLight(app.View.light, -lightStep))
	}

	// Camera view presets
	switch {
	case rl.IsKeyPressed(rl.KeyHome):
		app.Camera.reset()
	case rl.IsKeyPressed(rl.KeyT):
		app.Camera.setView(math.Pi/2, 0)
	case rl.IsKeyPressed(rl.KeyB):
		app.Camera.setView(-math.Pi/2, 0)
	case rl.IsKeyPressed(rl.KeyOne):
		app.Camera.setView(0, 0)
	case rl.IsKeyPressed(rl.KeyTwo):
		app.Camera.setView(0, math.Pi)
	case rl.IsKeyPressed(rl.KeyThree):
		app.Camera.setView(0, -math.Pi/2)
	case rl.IsKeyPressed(rl.KeyFour):
		app.Camera.setView(0, math.Pi/2)
	}
}

func (app *App) setLight(l viewer.Light) {
	if err := l.Validate(); err != nil {
		app.logger.Warnf("%v", err)
		return
	}
	if l == app.View.light {
		return
	}
	app.View.light = l
	app.rebuildMesh()
}

func onScreen(pos rl.Vector2) bool {
	return pos.X >= 0 && pos.Y >= 0 &&
		pos.X < float32(rl.GetScreenWidth()) && pos.Y < float32(rl.GetScreenHeight())
}
