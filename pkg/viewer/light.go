package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// MaxLightIntensity is the upper bound accepted for Light.Intensity
const MaxLightIntensity = 5.0

// ambientLevel is the constant share of the surface color lit regardless of
// the directional light
const ambientLevel = 0.25

// ErrInvalidLight is returned for light settings outside the supported range
var ErrInvalidLight = errors.New("invalid light")

// Light is the directional light placed at the eye
type Light struct {
	Intensity float64
	Color     color.NRGBA
}

// DefaultLight is a white light at intensity 1
var DefaultLight = Light{Intensity: 1, Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

// Validate checks that the intensity lies in [0, MaxLightIntensity]
func (l Light) Validate() error {
	if math.IsNaN(l.Intensity) || l.Intensity < 0 || l.Intensity > MaxLightIntensity {
		return fmt.Errorf("%w: intensity %v outside [0, %v]", ErrInvalidLight, l.Intensity, MaxLightIntensity)
	}
	return nil
}

// Shade lights c with the ambient term plus the directional light hitting
// a facet at the given |n·l|
func (l Light) Shade(c color.RGBA, facing float64) color.RGBA {
	direct := (1 - ambientLevel) * l.Intensity * facing
	channel := func(v, light uint8) uint8 {
		lit := float64(v) * (ambientLevel + direct*float64(light)/255)
		return uint8(math.Min(lit, 255))
	}
	return color.RGBA{
		R: channel(c.R, l.Color.R),
		G: channel(c.G, l.Color.G),
		B: channel(c.B, l.Color.B),
		A: c.A,
	}
}

// RenderOption adjusts how RenderImage draws a scene
type RenderOption func(*renderSettings)

type renderSettings struct {
	light Light
}

// WithLight replaces DefaultLight
func WithLight(l Light) RenderOption {
	return func(s *renderSettings) {
		s.light = l
	}
}
