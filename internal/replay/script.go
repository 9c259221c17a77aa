// Package replay drives an annotation session from a YAML event script, the
// headless counterpart of the interactive viewer.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/meshnote/internal/logging"
	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/picker"
)

var (
	// ErrInvalidEvent is returned for events with zero or several actions
	ErrInvalidEvent = errors.New("invalid event")
	// ErrNoPicker is returned when a pickRay event runs without a picker
	ErrNoPicker = errors.New("pickRay event requires a model")
)

// Vec is a point written as a three element YAML sequence
type Vec [3]float64

// Vector converts v to a geometry vector
func (v Vec) Vector() geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

// RayEvent casts a ray at the model
type RayEvent struct {
	Origin    Vec `yaml:"origin"`
	Direction Vec `yaml:"direction"`
}

// Event is one user interaction. Exactly one field is set.
type Event struct {
	Pick     *Vec      `yaml:"pick,omitempty"`
	PickRay  *RayEvent `yaml:"pickRay,omitempty"`
	Move     *Vec      `yaml:"move,omitempty"`
	HoverRay *RayEvent `yaml:"hoverRay,omitempty"`
	Leave    bool      `yaml:"leave,omitempty"`
	Finalize bool      `yaml:"finalize,omitempty"`
	Cancel   bool      `yaml:"cancel,omitempty"`
	Mode     string    `yaml:"mode,omitempty"`
	Color    string    `yaml:"color,omitempty"`
}

// Script is a session configuration followed by events
type Script struct {
	annotation.Config `yaml:",inline"`
	Events            []Event `yaml:"events"`
}

// Parse decodes and validates a script
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	for i, e := range s.Events {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return &s, nil
}

// Load reads and parses a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (e Event) actions() int {
	n := 0
	for _, set := range []bool{
		e.Pick != nil, e.PickRay != nil, e.Move != nil, e.HoverRay != nil,
		e.Leave, e.Finalize, e.Cancel, e.Mode != "", e.Color != "",
	} {
		if set {
			n++
		}
	}
	return n
}

func (e Event) validate() error {
	if n := e.actions(); n != 1 {
		return fmt.Errorf("%w: %d actions, want exactly one", ErrInvalidEvent, n)
	}
	if e.Mode != "" {
		if _, err := annotation.ParseMode(e.Mode); err != nil {
			return err
		}
	}
	if e.Color != "" {
		if _, err := annotation.ParseColor(e.Color); err != nil {
			return err
		}
	}
	return nil
}

// Run applies the script header and then every event to session. sp may be
// nil when the script uses no ray events. Cancelling ctx stops the replay
// between events.
func (s *Script) Run(ctx context.Context, session *annotation.Session, sp picker.Picker, logger logging.Logger) error {
	logger = logging.OrNop(logger)

	if err := session.Configure(s.Config); err != nil {
		return err
	}

	for i, e := range s.Events {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("replay stopped before event %d: %w", i, err)
		}
		if err := e.apply(session, sp, logger); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	logger.Debugf("replayed %d event(s)", len(s.Events))
	return nil
}

func (e Event) apply(session *annotation.Session, sp picker.Picker, logger logging.Logger) error {
	if err := e.validate(); err != nil {
		return err
	}

	switch {
	case e.Pick != nil:
		session.Pick(e.Pick.Vector())
	case e.PickRay != nil:
		if sp == nil {
			return ErrNoPicker
		}
		if !session.PickRay(sp, e.PickRay.ray()) {
			logger.Debugf("ray from %v missed the model", *e.PickRay)
		}
	case e.Move != nil:
		session.PointerMove(e.Move.Vector())
	case e.HoverRay != nil:
		if sp == nil {
			return ErrNoPicker
		}
		session.HoverRay(sp, e.HoverRay.ray())
	case e.Leave:
		session.PointerLeave()
	case e.Finalize:
		if !session.Finalize() {
			logger.Debugf("finalize ignored in %s mode", session.Mode())
		}
	case e.Cancel:
		session.CancelInProgress()
	case e.Mode != "":
		return session.Configure(annotation.Config{Mode: e.Mode})
	case e.Color != "":
		return session.Configure(annotation.Config{DrawColor: e.Color})
	}
	return nil
}

func (r RayEvent) ray() picker.Ray {
	return picker.NewRay(r.Origin.Vector(), r.Direction.Vector())
}
