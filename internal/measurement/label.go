package measurement

import (
	"fmt"
	"image/color"

	"github.com/philipparndt/meshnote/pkg/geometry"
)

// Label is a metric text attached to a world position
type Label struct {
	Text   string
	Anchor geometry.Vector3
	Color  color.NRGBA
}

// FormatLength formats a polyline length in model units, shown as meters
func FormatLength(length float64) string {
	return fmt.Sprintf("%.2f m", length)
}

// FormatArea formats a polygon area in square model units
func FormatArea(area float64) string {
	return fmt.Sprintf("%.2f m²", area)
}
