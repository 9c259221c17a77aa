package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/meshnote/internal/loader"
	"github.com/philipparndt/meshnote/internal/logging"
	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/pkg/analysis"
	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/picker"
	"github.com/philipparndt/meshnote/pkg/stl"
	"github.com/philipparndt/meshnote/pkg/viewer"
	"github.com/philipparndt/meshnote/pkg/watcher"
)

type App struct {
	logger  logging.Logger
	session *annotation.Session
	// overlay and report are rebuilt from session snapshots
	overlay     measurement.Overlay
	report      *analysis.AnnotationReport
	unsubscribe func()

	Camera CameraState
	Model  ModelData
	View   ViewSettings
	Input  InputState
	Reload ReloadState
	UI     UIState
}

// CameraState holds the orbit camera
type CameraState struct {
	camera      rl.Camera3D
	distance    float32
	angleX      float32
	angleY      float32
	target      rl.Vector3 // can be panned away from center
	center      rl.Vector3
	defaultDist float32
}

// ModelData holds the loaded surface and its GPU mesh
type ModelData struct {
	source   *loader.Source
	model    *stl.Model
	result   *analysis.ModelResult
	picker   *picker.MeshPicker
	mesh     rl.Mesh
	material rl.Material
	uploaded bool
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	light         viewer.Light
	snap          bool
	paletteIndex  int
}

// InputState holds mouse tracking between frames
type InputState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
	clicks       clickTracker
}

// ReloadState holds the file watcher feeding model reloads
type ReloadState struct {
	watcher *watcher.FileWatcher
	changes chan string
}

// UIState holds UI resources
type UIState struct {
	font rl.Font
}
