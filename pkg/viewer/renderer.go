package viewer

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/meshnote/internal/logging"
	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/picker"
	"github.com/philipparndt/meshnote/pkg/stl"
)

// ModelRenderer is a fyne widget showing a shaded model with the
// annotations of a session. Taps pick, double taps finalize, dragging
// orbits and scrolling zooms. Escape discards the shape being drawn.
type ModelRenderer struct {
	widget.BaseWidget

	model   *stl.Model
	picker  picker.Picker
	session *annotation.Session
	logger  logging.Logger
	raster  *canvas.Raster

	// mu guards what the raster generator reads
	mu      sync.Mutex
	camera  Camera
	overlay measurement.Overlay
	light   Light

	unsubscribe func()
}

var (
	_ fyne.Tappable       = (*ModelRenderer)(nil)
	_ fyne.DoubleTappable = (*ModelRenderer)(nil)
	_ fyne.Draggable      = (*ModelRenderer)(nil)
	_ fyne.Scrollable     = (*ModelRenderer)(nil)
	_ fyne.Focusable      = (*ModelRenderer)(nil)
	_ desktop.Hoverable   = (*ModelRenderer)(nil)
)

// NewModelRenderer creates a viewer for model that feeds session
func NewModelRenderer(model *stl.Model, session *annotation.Session, logger logging.Logger) *ModelRenderer {
	r := &ModelRenderer{
		model:   model,
		picker:  picker.NewMeshPicker(model),
		session: session,
		logger:  logging.OrNop(logger),
		camera:  *NewCamera(model.BoundingBox()),
		overlay: measurement.Build(session.Snapshot()),
		light:   DefaultLight,
	}
	r.raster = canvas.NewRaster(r.draw)
	r.raster.SetMinSize(fyne.NewSize(400, 400))
	r.unsubscribe = session.Subscribe(r.sessionChanged)
	r.ExtendBaseWidget(r)
	return r
}

// CreateRenderer creates the renderer for the widget
func (r *ModelRenderer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(r.raster)
}

// Close detaches the widget from the session
func (r *ModelRenderer) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// Camera returns a copy of the current camera
func (r *ModelRenderer) Camera() Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.camera
}

// SetLight changes the directional light and redraws
func (r *ModelRenderer) SetLight(l Light) error {
	if err := l.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.light = l
	r.mu.Unlock()
	r.raster.Refresh()
	return nil
}

// Light returns the current directional light
func (r *ModelRenderer) Light() Light {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.light
}

func (r *ModelRenderer) draw(w, h int) image.Image {
	r.mu.Lock()
	camera := r.camera
	overlay := r.overlay
	light := r.light
	r.mu.Unlock()

	return RenderImage(r.model, overlay, &camera, w, h, WithLight(light))
}

func (r *ModelRenderer) sessionChanged(s annotation.Snapshot) {
	r.mu.Lock()
	r.overlay = measurement.Build(s)
	r.mu.Unlock()
	r.raster.Refresh()
}

// rayAt returns the pick ray under a widget position. Unprojection works
// in normalized coordinates, so device scaling does not matter.
func (r *ModelRenderer) rayAt(pos fyne.Position) picker.Ray {
	size := r.Size()
	camera := r.Camera()
	return camera.Unproject(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
}

// Tapped picks the surface under the pointer
func (r *ModelRenderer) Tapped(event *fyne.PointEvent) {
	r.requestFocus()
	if !r.session.PickRay(r.picker, r.rayAt(event.Position)) {
		r.logger.Debugf("tap at %v missed the model", event.Position)
	}
}

// DoubleTapped finalizes the line or polygon being drawn
func (r *ModelRenderer) DoubleTapped(*fyne.PointEvent) {
	r.session.Finalize()
}

// MouseIn starts the hover preview
func (r *ModelRenderer) MouseIn(event *desktop.MouseEvent) {
	r.session.HoverRay(r.picker, r.rayAt(event.Position))
}

// MouseMoved updates the hover preview
func (r *ModelRenderer) MouseMoved(event *desktop.MouseEvent) {
	r.session.HoverRay(r.picker, r.rayAt(event.Position))
}

// MouseOut clears the hover preview
func (r *ModelRenderer) MouseOut() {
	r.session.PointerLeave()
}

// Dragged handles mouse drag events for rotation
func (r *ModelRenderer) Dragged(event *fyne.DragEvent) {
	r.mu.Lock()
	r.camera.Rotate(float64(-event.Dragged.DY)*0.01, float64(event.Dragged.DX)*0.01)
	r.mu.Unlock()
	r.raster.Refresh()
}

// DragEnd handles the end of a drag event
func (r *ModelRenderer) DragEnd() {}

// Scrolled handles scroll events for zooming
func (r *ModelRenderer) Scrolled(event *fyne.ScrollEvent) {
	r.mu.Lock()
	r.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	r.mu.Unlock()
	r.raster.Refresh()
}

// FocusGained is part of fyne.Focusable
func (r *ModelRenderer) FocusGained() {}

// FocusLost is part of fyne.Focusable
func (r *ModelRenderer) FocusLost() {}

// TypedRune is part of fyne.Focusable
func (r *ModelRenderer) TypedRune(rune) {}

// TypedKey maps Escape to discarding and Enter to finalizing
func (r *ModelRenderer) TypedKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyEscape:
		r.session.CancelInProgress()
	case fyne.KeyReturn, fyne.KeyEnter:
		r.session.Finalize()
	}
}

func (r *ModelRenderer) requestFocus() {
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(r); c != nil {
			c.Focus(r)
		}
	}
}
