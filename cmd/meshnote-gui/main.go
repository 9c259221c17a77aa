package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/meshnote/internal/loader"
	"github.com/philipparndt/meshnote/internal/logging"
	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/pkg/analysis"
	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/stl"
	"github.com/philipparndt/meshnote/pkg/viewer"
	"github.com/philipparndt/meshnote/version"
)

type App struct {
	window   fyne.Window
	logger   logging.Logger
	model    *stl.Model
	session  *annotation.Session
	renderer *viewer.ModelRenderer
	light    viewer.Light
	snap     bool

	modelInfoLabel  *widget.Label
	reportLabel     *widget.Label
	colorEntry      *widget.Entry
	modeGroup       *widget.RadioGroup
	lightSlider     *widget.Slider
	lightColorEntry *widget.Entry
	lightValueLabel *widget.Label
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	a := app.New()
	w := a.NewWindow("meshnote " + version.GetVersion())

	appInstance := &App{
		window: w,
		logger: logging.NewDefaultLogger("meshnote-gui", *debug),
		light:  viewer.DefaultLight,
	}

	if flag.NArg() > 0 {
		appInstance.loadFile(flag.Arg(0))
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to meshnote")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open File' to load an STL or OpenSCAD model")

	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	src, err := loader.Load(context.Background(), filename, a.logger)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load %s: %w", filename, err), a.window)
		return
	}
	model := src.Model
	a.logger.Infof("loaded %s: %d triangles", filename, model.TriangleCount())

	// Annotations belong to the surface they were picked on
	if a.renderer != nil {
		a.renderer.Close()
	}
	drawColor := annotation.DefaultDrawColor
	mode := annotation.ModePoint
	if a.session != nil {
		drawColor = a.session.DrawColor()
		mode = a.session.Mode()
	}

	a.model = model
	a.session = annotation.NewSession(
		annotation.WithMode(mode),
		annotation.WithDrawColor(drawColor),
		annotation.WithLogger(a.logger),
	)
	a.setupMainUI()
}

func (a *App) setupMainUI() {
	a.renderer = viewer.NewModelRenderer(a.model, a.session, a.logger)
	if err := a.renderer.SetLight(a.light); err != nil {
		a.logger.Warnf("%v", err)
	}

	modes := make([]string, len(annotation.Modes))
	for i, m := range annotation.Modes {
		modes[i] = m.String()
	}
	a.modeGroup = widget.NewRadioGroup(modes, func(selected string) {
		if err := a.session.Configure(annotation.Config{Mode: selected}); err != nil {
			dialog.ShowError(err, a.window)
		}
	})
	a.modeGroup.Horizontal = true
	a.modeGroup.Required = true
	a.modeGroup.SetSelected(a.session.Mode().String())

	a.colorEntry = widget.NewEntry()
	a.colorEntry.SetText(annotation.FormatColor(a.session.DrawColor()))
	a.colorEntry.SetPlaceHolder("#ff0000 or orange")
	a.colorEntry.OnSubmitted = func(text string) {
		if err := a.session.Configure(annotation.Config{DrawColor: text}); err != nil {
			dialog.ShowError(err, a.window)
			a.colorEntry.SetText(annotation.FormatColor(a.session.DrawColor()))
		}
	}

	a.lightValueLabel = widget.NewLabel("")
	a.lightSlider = widget.NewSlider(0, viewer.MaxLightIntensity)
	a.lightSlider.Step = 0.1
	a.lightSlider.SetValue(a.light.Intensity)
	a.lightSlider.OnChanged = func(value float64) {
		a.applyLight(viewer.Light{Intensity: value, Color: a.light.Color})
	}
	a.lightColorEntry = widget.NewEntry()
	a.lightColorEntry.SetText(annotation.FormatColor(a.light.Color))
	a.lightColorEntry.OnSubmitted = func(text string) {
		c, err := annotation.ParseColor(text)
		if err != nil {
			dialog.ShowError(err, a.window)
			a.lightColorEntry.SetText(annotation.FormatColor(a.light.Color))
			return
		}
		a.applyLight(viewer.Light{Intensity: a.light.Intensity, Color: c})
	}
	a.updateLightLabel()

	result := analysis.AnalyzeModel(a.model)
	a.modelInfoLabel = widget.NewLabel(fmt.Sprintf(
		"Model: %s\nTriangles: %d\nSurface Area: %.2f\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		a.model.Name,
		result.TriangleCount,
		result.SurfaceArea,
		result.Dimensions.X,
		result.Dimensions.Y,
		result.Dimensions.Z,
	))

	a.reportLabel = widget.NewLabel("")
	a.reportLabel.Wrapping = fyne.TextWrapWord
	a.session.Subscribe(a.updateReport)
	a.updateReport(a.session.Snapshot())

	snapCheck := widget.NewCheck("Snap to vertices", func(on bool) {
		a.snap = on
		a.applySnap()
	})
	snapCheck.SetChecked(a.snap)
	a.applySnap()

	discardButton := widget.NewButton("Discard in-progress", func() {
		a.session.CancelInProgress()
	})
	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click on the surface to pick points\n" +
			"• Double-click or Enter to finish a line or polygon\n" +
			"• Escape discards the shape being drawn\n" +
			"• Drag to rotate the view, scroll to zoom",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		a.modelInfoLabel,
		widget.NewSeparator(),
		widget.NewLabel("Mode:"),
		a.modeGroup,
		widget.NewLabel("Draw color:"),
		a.colorEntry,
		snapCheck,
		widget.NewSeparator(),
		a.lightValueLabel,
		a.lightSlider,
		widget.NewLabel("Light color:"),
		a.lightColorEntry,
		widget.NewSeparator(),
		widget.NewLabel("Measurements:"),
		a.reportLabel,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		discardButton,
		openButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.renderer, // center
	)

	a.window.SetContent(content)
	a.window.Canvas().Focus(a.renderer)
}

// snapRadiusFactor scales the model diagonal into the vertex snap radius
const snapRadiusFactor = 0.01

func (a *App) applySnap() {
	if !a.snap {
		a.session.SetSnapper(nil)
		return
	}
	radius := a.model.BoundingBox().Diagonal() * snapRadiusFactor
	a.session.SetSnapper(analysis.NewVertexSnapper(a.model, radius))
}

func (a *App) applyLight(l viewer.Light) {
	if err := a.renderer.SetLight(l); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.light = l
	a.updateLightLabel()
}

func (a *App) updateLightLabel() {
	a.lightValueLabel.SetText(fmt.Sprintf("Light intensity: %.1f", a.light.Intensity))
}

func (a *App) updateReport(s annotation.Snapshot) {
	var buf bytes.Buffer
	report := analysis.SummarizeAnnotations(s)

	fmt.Fprintf(&buf, "Points: %d\n", len(report.Points))
	for i, l := range report.Lines {
		fmt.Fprintf(&buf, "Line %d: %s\n", i+1, measurement.FormatLength(l.Length))
	}
	for i, p := range report.Polygons {
		fmt.Fprintf(&buf, "Polygon %d: %s\n", i+1, measurement.FormatArea(p.Area))
	}
	if report.InProgress > 0 {
		fmt.Fprintf(&buf, "Drawing %s: %d point(s)\n", report.Mode, report.InProgress)
	}
	a.reportLabel.SetText(buf.String())
}
