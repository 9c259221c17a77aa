package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/stl"
)

var (
	backgroundColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	surfaceColor    = color.RGBA{R: 190, G: 195, B: 205, A: 255}
	labelBackground = color.NRGBA{R: 20, G: 20, B: 20, A: 220}
)

const (
	labelPadding  = 3
	labelFontSize = 13
)

var (
	labelFontOnce sync.Once
	labelFont     *opentype.Font
)

// newLabelFace returns a face covering the metric labels, superscripts
// included. Faces hold glyph buffers, so every render gets its own.
func newLabelFace() font.Face {
	labelFontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			labelFont = f
		}
	})
	if labelFont != nil {
		face, err := opentype.NewFace(labelFont, &opentype.FaceOptions{
			Size:    labelFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// RenderImage draws the shaded model with the overlay on top
func RenderImage(model *stl.Model, overlay measurement.Overlay, camera *Camera, width, height int, opts ...RenderOption) *image.RGBA {
	settings := renderSettings{light: DefaultLight}
	for _, opt := range opts {
		opt(&settings)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] =
			backgroundColor.R, backgroundColor.G, backgroundColor.B, backgroundColor.A
	}
	if width <= 0 || height <= 0 {
		return img
	}

	p := projector{camera: camera, width: float64(width), height: float64(height)}
	if model != nil {
		drawModel(img, model, p, settings.light)
	}
	drawOverlay(img, overlay, p)
	return img
}

// WritePNG encodes img to path
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

type projector struct {
	camera        *Camera
	width, height float64
}

func (p projector) project(v geometry.Vector3) (screenVertex, bool) {
	x, y, z := p.camera.Project(v, p.width, p.height)
	return screenVertex{X: x, Y: y, Z: z}, z > p.camera.Near()
}

func drawModel(img *image.RGBA, model *stl.Model, p projector, light Light) {
	zbuffer := make([]float64, len(img.Pix)/4)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	eye := p.camera.Position()
	for _, tri := range model.Triangles {
		var screen [3]screenVertex
		visible := true
		for i, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			sv, ok := p.project(v)
			if !ok {
				visible = false
				break
			}
			screen[i] = sv
		}
		if !visible {
			continue
		}

		// Two-sided Lambert shading with the light at the eye
		normal := tri.CalculateNormal()
		toEye := eye.Sub(tri.Center()).Normalize()
		fillTriangleWithDepth(img, zbuffer, screen, light.Shade(surfaceColor, math.Abs(normal.Dot(toEye))))
	}
}

func drawOverlay(img *image.RGBA, o measurement.Overlay, p projector) {
	for _, fill := range o.Fills {
		screen := make([]screenVertex, 0, len(fill.Points))
		for _, v := range fill.Points {
			if sv, ok := p.project(v); ok {
				screen = append(screen, sv)
			}
		}
		if len(screen) != len(fill.Points) {
			continue
		}
		// Fan triangulation; exact for the convex outlines picked on a surface
		for i := 1; i+1 < len(screen); i++ {
			blendTriangle(img, [3]screenVertex{screen[0], screen[i], screen[i+1]}, fill.Color)
		}
	}

	for _, seg := range o.Segments {
		a, okA := p.project(seg.Start)
		b, okB := p.project(seg.End)
		if !okA || !okB {
			continue
		}
		drawLine(img, round(a.X), round(a.Y), round(b.X), round(b.Y), measurement.LineThickness, seg.Color)
	}

	for _, m := range o.Markers {
		sv, ok := p.project(m.Position)
		if !ok {
			continue
		}
		if m.Preview {
			drawRing(img, round(sv.X), round(sv.Y), measurement.MarkerRadius+2, m.Color)
			continue
		}
		fillDisc(img, round(sv.X), round(sv.Y), measurement.MarkerRadius, m.Color)
	}

	if len(o.Labels) == 0 {
		return
	}
	face := newLabelFace()
	defer face.Close()
	for _, l := range o.Labels {
		if sv, ok := p.project(l.Anchor); ok {
			drawLabel(img, face, l.Text, round(sv.X), round(sv.Y), l.Color)
		}
	}
}

// drawLabel draws text centered above (x, y) on a dark box
func drawLabel(img *image.RGBA, face font.Face, text string, x, y int, col color.NRGBA) {
	textWidth := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	textHeight := metrics.Height.Ceil()

	left := x - textWidth/2
	baseline := y - measurement.MarkerRadius - labelPadding*2 - (textHeight - ascent)

	box := image.Rect(left-labelPadding, baseline-ascent-labelPadding,
		left+textWidth+labelPadding, baseline+(textHeight-ascent)+labelPadding)
	for py := box.Min.Y; py < box.Max.Y; py++ {
		for px := box.Min.X; px < box.Max.X; px++ {
			blendPixel(img, px, py, labelBackground)
		}
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: col.R, G: col.G, B: col.B, A: 0xff}),
		Face: face,
		Dot:  fixed.P(left, baseline),
	}
	d.DrawString(text)
}

func round(v float64) int {
	return int(math.Round(v))
}
