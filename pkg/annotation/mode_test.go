package annotation

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	m, err := ParseMode("  LINE ")
	require.NoError(t, err)
	assert.Equal(t, ModeLine, m)

	_, err = ParseMode("circle")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestModeYAML(t *testing.T) {
	var doc struct {
		Mode Mode `yaml:"mode"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("mode: polygon\n"), &doc))
	assert.Equal(t, ModePolygon, doc.Mode)

	assert.Error(t, yaml.Unmarshal([]byte("mode: hexagon\n"), &doc))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}},
		{"#0f0", color.NRGBA{G: 255, A: 255}},
		{"#0000ff80", color.NRGBA{B: 255, A: 128}},
		{"orange", color.NRGBA{R: 255, G: 165, A: 255}},
		{" Red ", color.NRGBA{R: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "#12", "#gggggg", "ultraviolet"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}

func TestFormatColor(t *testing.T) {
	assert.Equal(t, "#ff8000", FormatColor(color.NRGBA{R: 255, G: 128, A: 255}))
	assert.Equal(t, "#ff800080", FormatColor(color.NRGBA{R: 255, G: 128, A: 128}))
}

func TestParseColorKeepsStraightAlpha(t *testing.T) {
	c, err := ParseColor("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.A)

	// the color model premultiplies on conversion
	r, _, _, a := c.RGBA()
	assert.LessOrEqual(t, r, a)
	assert.Equal(t, "#ff000080", FormatColor(c))
}
