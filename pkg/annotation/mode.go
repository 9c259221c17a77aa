package annotation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name is not point, line or polygon
var ErrUnknownMode = errors.New("unknown annotation mode")

// Mode selects how picks are routed
type Mode int

const (
	ModePoint Mode = iota
	ModeLine
	ModePolygon
)

// Modes lists all modes in display order
var Modes = []Mode{ModePoint, ModeLine, ModePolygon}

func (m Mode) String() string {
	switch m {
	case ModePoint:
		return "point"
	case ModeLine:
		return "line"
	case ModePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses point, line or polygon (case-insensitive)
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return ModePoint, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// minPoints is the number of points a primitive needs to be finalized
func (m Mode) minPoints() int {
	switch m {
	case ModeLine:
		return 2
	case ModePolygon:
		return 3
	default:
		return 1
	}
}
