// Package annotation implements the measurement session: the state machine
// that turns surface picks into point, line and polygon annotations.
//
// A Session is owned by a single event loop and is not safe for concurrent
// use. Every mutation happens synchronously and observers are notified before
// the mutating call returns.
package annotation

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"

	"github.com/philipparndt/meshnote/internal/logging"
	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/picker"
)

// Config is the user-facing mode and color selection. Empty fields are left
// unchanged by Configure.
type Config struct {
	Mode      string `yaml:"mode,omitempty"`
	DrawColor string `yaml:"drawColor,omitempty"`
}

// Option configures a new Session
type Option func(*Session)

// WithMode sets the initial mode
func WithMode(m Mode) Option {
	return func(s *Session) { s.mode = m }
}

// WithDrawColor sets the initial draw color
func WithDrawColor(c color.NRGBA) Option {
	return func(s *Session) { s.drawColor = c }
}

// WithLogger sets the logger used for debug traces of ignored events
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = logging.OrNop(l) }
}

// WithIDGenerator replaces uuid.New, mainly for deterministic tests
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Session) { s.newID = gen }
}

// WithDegeneratePolygonRejection makes Finalize ignore polygons whose points
// are collinear or coincident instead of storing a zero-area polygon
func WithDegeneratePolygonRejection(reject bool) Option {
	return func(s *Session) { s.rejectDegenerate = reject }
}

// Snapper moves a surface hit onto a nearby feature, such as a mesh vertex
type Snapper interface {
	Snap(p geometry.Vector3) geometry.Vector3
}

// WithSnapper applies sn to every point resolved through PickRay and
// HoverRay. Points passed to Pick directly are taken as they are.
func WithSnapper(sn Snapper) Option {
	return func(s *Session) { s.snapper = sn }
}

// Session holds the annotation state of one viewing session
type Session struct {
	mode      Mode
	drawColor color.NRGBA

	points   []PointAnnotation
	lines    []LineAnnotation
	polygons []PolygonAnnotation

	currentLine    []geometry.Vector3
	currentPolygon []geometry.Vector3
	preview        *geometry.Vector3

	observers      []observer
	nextObserverID int

	logger           logging.Logger
	newID            func() uuid.UUID
	rejectDegenerate bool
	snapper          Snapper
}

type observer struct {
	id int
	fn func(Snapshot)
}

// NewSession creates an empty session in point mode drawing in red
func NewSession(opts ...Option) *Session {
	s := &Session{
		mode:      ModePoint,
		drawColor: DefaultDrawColor,
		logger:    logging.NewNopLogger(),
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the active mode
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches the active mode. Switching to a different mode discards
// the in-progress primitive and the preview point; there is no way to resume
// a shape after leaving its mode.
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	if dropped := len(s.activeBuffer()); dropped > 0 {
		s.logger.Debugf("mode %s -> %s discards %d in-progress point(s)", s.mode, m, dropped)
	}
	s.currentLine = nil
	s.currentPolygon = nil
	s.preview = nil
	s.mode = m
	s.changed()
}

// DrawColor returns the color new annotations are created with
func (s *Session) DrawColor() color.NRGBA {
	return s.drawColor
}

// SetDrawColor changes the color of annotations created from now on
func (s *Session) SetDrawColor(c color.NRGBA) {
	if c == s.drawColor {
		return
	}
	s.drawColor = c
	s.changed()
}

// Configure applies a mode and color selection. Nothing is changed when
// either value is invalid.
func (s *Session) Configure(cfg Config) error {
	mode := s.mode
	if cfg.Mode != "" {
		m, err := ParseMode(cfg.Mode)
		if err != nil {
			return fmt.Errorf("configure mode: %w", err)
		}
		mode = m
	}

	drawColor := s.drawColor
	if cfg.DrawColor != "" {
		c, err := ParseColor(cfg.DrawColor)
		if err != nil {
			return fmt.Errorf("configure draw color: %w", err)
		}
		drawColor = c
	}

	s.SetMode(mode)
	s.SetDrawColor(drawColor)
	return nil
}

// Pick handles a surface point picked by the user. In point mode the point
// becomes an annotation immediately; in line and polygon mode it is appended
// to the primitive being drawn.
func (s *Session) Pick(p geometry.Vector3) {
	switch s.mode {
	case ModePoint:
		s.points = append(s.points, PointAnnotation{
			ID:       s.newID(),
			Position: p,
			Color:    s.drawColor,
		})
	case ModeLine:
		s.currentLine = append(s.currentLine, p)
	case ModePolygon:
		s.currentPolygon = append(s.currentPolygon, p)
	}
	s.changed()
}

// PickRay resolves ray with sp and picks the hit point. A miss is ignored.
func (s *Session) PickRay(sp picker.Picker, ray picker.Ray) bool {
	hit, ok := sp.Pick(ray)
	if !ok {
		s.logger.Debugf("pick missed the surface")
		return false
	}
	s.Pick(s.snap(hit.Point))
	return true
}

// SetSnapper replaces the snapper used for surface picks; nil disables
// snapping
func (s *Session) SetSnapper(sn Snapper) {
	s.snapper = sn
}

func (s *Session) snap(p geometry.Vector3) geometry.Vector3 {
	if s.snapper == nil {
		return p
	}
	return s.snapper.Snap(p)
}

// Finalize closes the line or polygon being drawn. It is a no-op, keeping the
// points already picked, when too few points exist or in point mode.
func (s *Session) Finalize() bool {
	buffer := s.activeBuffer()
	if s.mode == ModePoint || len(buffer) < s.mode.minPoints() {
		s.logger.Debugf("finalize ignored: %s has %d point(s)", s.mode, len(buffer))
		return false
	}

	switch s.mode {
	case ModeLine:
		s.lines = append(s.lines, LineAnnotation{
			ID:     s.newID(),
			Points: clonePoints(buffer),
			Color:  s.drawColor,
		})
		s.currentLine = nil
	case ModePolygon:
		if s.rejectDegenerate {
			if _, err := geometry.PolygonAreaChecked(buffer); err != nil {
				s.logger.Debugf("finalize ignored: %v", err)
				return false
			}
		}
		s.polygons = append(s.polygons, PolygonAnnotation{
			ID:     s.newID(),
			Points: clonePoints(buffer),
			Color:  s.drawColor,
		})
		s.currentPolygon = nil
	}
	s.preview = nil
	s.changed()
	return true
}

// CancelInProgress discards the primitive being drawn and the preview
func (s *Session) CancelInProgress() {
	if len(s.activeBuffer()) == 0 && s.preview == nil {
		return
	}
	s.currentLine = nil
	s.currentPolygon = nil
	s.preview = nil
	s.changed()
}

// PointerMove sets the preview point drawn as a rubber band from the last
// picked point
func (s *Session) PointerMove(p geometry.Vector3) {
	if s.preview != nil && *s.preview == p {
		return
	}
	s.preview = &p
	s.changed()
}

// PointerLeave clears the preview point
func (s *Session) PointerLeave() {
	if s.preview == nil {
		return
	}
	s.preview = nil
	s.changed()
}

// HoverRay updates the preview from a picker ray; a miss clears it
func (s *Session) HoverRay(sp picker.Picker, ray picker.Ray) bool {
	hit, ok := sp.Pick(ray)
	if !ok {
		s.PointerLeave()
		return false
	}
	s.PointerMove(s.snap(hit.Point))
	return true
}

// Points returns a copy of the finalized point annotations
func (s *Session) Points() []PointAnnotation {
	return append([]PointAnnotation(nil), s.points...)
}

// Lines returns a copy of the finalized line annotations
func (s *Session) Lines() []LineAnnotation {
	out := make([]LineAnnotation, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.clone()
	}
	return out
}

// Polygons returns a copy of the finalized polygon annotations
func (s *Session) Polygons() []PolygonAnnotation {
	out := make([]PolygonAnnotation, len(s.polygons))
	for i, p := range s.polygons {
		out[i] = p.clone()
	}
	return out
}

// InProgress returns a copy of the points of the primitive being drawn
func (s *Session) InProgress() []geometry.Vector3 {
	return clonePoints(s.activeBuffer())
}

// Preview returns the preview point, if any
func (s *Session) Preview() (geometry.Vector3, bool) {
	if s.preview == nil {
		return geometry.Vector3{}, false
	}
	return *s.preview, true
}

// Snapshot returns a copy of the complete state
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:       s.mode,
		DrawColor:  s.drawColor,
		Points:     s.Points(),
		Lines:      s.Lines(),
		Polygons:   s.Polygons(),
		InProgress: s.InProgress(),
	}
	if s.preview != nil {
		p := *s.preview
		snap.Preview = &p
	}
	return snap
}

// Subscribe registers fn to be called with a fresh snapshot after every
// change. The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	id := s.nextObserverID
	s.nextObserverID++
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) activeBuffer() []geometry.Vector3 {
	switch s.mode {
	case ModeLine:
		return s.currentLine
	case ModePolygon:
		return s.currentPolygon
	default:
		return nil
	}
}

// changed checks the buffer invariant and notifies observers
func (s *Session) changed() {
	s.checkInvariants()
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, o := range append([]observer(nil), s.observers...) {
		o.fn(snap)
	}
}

func (s *Session) checkInvariants() {
	if len(s.currentLine) > 0 && len(s.currentPolygon) > 0 {
		panic(fmt.Sprintf("annotation: line (%d) and polygon (%d) buffers both in progress",
			len(s.currentLine), len(s.currentPolygon)))
	}
	if len(s.currentLine) > 0 && s.mode != ModeLine {
		panic(fmt.Sprintf("annotation: line buffer in progress in %s mode", s.mode))
	}
	if len(s.currentPolygon) > 0 && s.mode != ModePolygon {
		panic(fmt.Sprintf("annotation: polygon buffer in progress in %s mode", s.mode))
	}
}
