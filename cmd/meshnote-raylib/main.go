package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/philipparndt/meshnote/internal/loader"
	"github.com/philipparndt/meshnote/internal/logging"
	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/pkg/analysis"
	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/picker"
	"github.com/philipparndt/meshnote/pkg/viewer"
	"github.com/philipparndt/meshnote/pkg/watcher"
	"github.com/philipparndt/meshnote/version"
)

// fontRunes are rasterized into the label font atlas
const fontRunes = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!@#$%^&*()_+-=[]{}|;:',.<>?/\\`~\"# ²°±×"

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: meshnote-raylib [-debug] <file.stl|file.scad>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	logger := logging.NewDefaultLogger("meshnote-raylib", *debug)
	src, err := loader.Load(context.Background(), flag.Arg(0), logger)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint) // before InitWindow
	rl.InitWindow(1400, 900, "meshnote "+version.GetVersion())
	rl.SetTargetFPS(60)
	// Escape discards the shape being drawn instead of closing the window
	rl.SetExitKey(0)

	app := &App{
		logger: logger,
		View: ViewSettings{
			showFilled: true,
			light:      viewer.DefaultLight,
		},
	}
	app.UI.font = rl.LoadFontFromMemory(".ttf", goregular.TTF, 64, []rune(fontRunes))
	app.Model.material = rl.LoadMaterialDefault()

	app.setModel(src)
	app.Camera.frame(app.Model.model.BoundingBox())

	if err := app.startWatching(); err != nil {
		logger.Warnf("auto-reload unavailable: %v", err)
	} else {
		defer app.Reload.watcher.Close()
	}

	for !rl.WindowShouldClose() {
		app.pollReload()
		app.handleInput()
		app.Camera.update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		if app.View.showFilled {
			rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
		}
		if app.View.showWireframe || !app.View.showFilled {
			app.drawWireframe()
		}
		rl.EndMode3D()

		app.drawOverlay()
		app.drawUI()

		rl.EndDrawing()
	}

	if app.unsubscribe != nil {
		app.unsubscribe()
	}
	app.unloadMesh()
	rl.UnloadFont(app.UI.font)
	rl.CloseWindow()
}

// setModel installs a freshly loaded source. Annotations belong to the
// surface they were picked on, so a new session starts that keeps the mode
// and draw color of the previous one.
func (app *App) setModel(src *loader.Source) {
	opts := []annotation.Option{annotation.WithLogger(app.logger)}
	if app.session != nil {
		opts = append(opts,
			annotation.WithMode(app.session.Mode()),
			annotation.WithDrawColor(app.session.DrawColor()))
	}
	if app.unsubscribe != nil {
		app.unsubscribe()
	}

	app.Model.source = src
	app.Model.model = src.Model
	app.Model.result = analysis.AnalyzeModel(src.Model)
	app.Model.picker = picker.NewMeshPicker(src.Model)
	app.rebuildMesh()

	app.session = annotation.NewSession(opts...)
	app.applySnap()
	app.unsubscribe = app.session.Subscribe(app.onSnapshot)
	app.onSnapshot(app.session.Snapshot())
}

func (app *App) onSnapshot(s annotation.Snapshot) {
	app.overlay = measurement.Build(s)
	app.report = analysis.SummarizeAnnotations(s)
}

// snapRadiusFactor scales the model diagonal into the vertex snap radius
const snapRadiusFactor = 0.01

func (app *App) applySnap() {
	if !app.View.snap {
		app.session.SetSnapper(nil)
		return
	}
	radius := app.Model.model.BoundingBox().Diagonal() * snapRadiusFactor
	app.session.SetSnapper(analysis.NewVertexSnapper(app.Model.model, radius))
}

func (app *App) startWatching() error {
	fw, err := watcher.NewFileWatcher(200*time.Millisecond, app.logger)
	if err != nil {
		return err
	}
	app.Reload.watcher = fw
	app.Reload.changes = make(chan string, 1)
	if err := fw.Watch(app.Model.source.Files, app.notifyChange); err != nil {
		fw.Close()
		app.Reload.watcher = nil
		return err
	}
	fw.Start()
	return nil
}

// notifyChange runs on the watcher goroutine; raylib calls stay on the
// main thread
func (app *App) notifyChange(path string) {
	select {
	case app.Reload.changes <- path:
	default:
	}
}

func (app *App) pollReload() {
	if app.Reload.changes == nil {
		return
	}
	select {
	case path := <-app.Reload.changes:
		app.logger.Infof("%s changed, reloading", path)
		src, err := loader.Load(context.Background(), app.Model.source.Path, app.logger)
		if err != nil {
			app.logger.Errorf("reload failed: %v", err)
			return
		}
		app.setModel(src)
		// OpenSCAD sources may have gained includes
		if err := app.Reload.watcher.Watch(src.Files, app.notifyChange); err != nil {
			app.logger.Warnf("%v", err)
		}
	default:
	}
}
