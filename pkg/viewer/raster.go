package viewer

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// screenVertex is a projected vertex: pixel position plus view depth
type screenVertex struct {
	X, Y, Z float64
}

// scanTriangle walks the pixels covered by a triangle row by row, calling
// plot with the interpolated depth
func scanTriangle(bounds image.Rectangle, tri [3]screenVertex, plot func(x, y int, z float64)) {
	// Sort vertices by Y coordinate (top to bottom)
	sort.Slice(tri[:], func(i, j int) bool { return tri[i].Y < tri[j].Y })
	a, b, c := tri[0], tri[1], tri[2]

	yStart := int(math.Max(float64(bounds.Min.Y), math.Ceil(a.Y)))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), math.Floor(c.Y)))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// Long edge a-c always spans the row; the short edge depends on the half
		xl, zl, ok := edgeAt(a, c, fy)
		if !ok {
			continue
		}
		var xr, zr float64
		if fy < b.Y {
			xr, zr, ok = edgeAt(a, b, fy)
		} else {
			xr, zr, ok = edgeAt(b, c, fy)
		}
		if !ok {
			continue
		}
		if xl > xr {
			xl, xr = xr, xl
			zl, zr = zr, zl
		}

		xStart := int(math.Max(float64(bounds.Min.X), math.Ceil(xl)))
		xEnd := int(math.Min(float64(bounds.Max.X-1), math.Floor(xr)))
		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if xr != xl {
				t = (float64(x) - xl) / (xr - xl)
			}
			plot(x, y, zl+t*(zr-zl))
		}
	}
}

func edgeAt(p, q screenVertex, y float64) (x, z float64, ok bool) {
	if p.Y == q.Y {
		if y != p.Y {
			return 0, 0, false
		}
		return p.X, p.Z, true
	}
	t := (y - p.Y) / (q.Y - p.Y)
	if t < 0 || t > 1 {
		return 0, 0, false
	}
	return p.X + t*(q.X-p.X), p.Z + t*(q.Z-p.Z), true
}

// fillTriangleWithDepth fills a triangle with depth testing
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, tri [3]screenVertex, col color.RGBA) {
	bounds := img.Bounds()
	width := bounds.Dx()
	scanTriangle(bounds, tri, func(x, y int, z float64) {
		// Depth test - draw if closer (smaller z)
		idx := (y-bounds.Min.Y)*width + (x - bounds.Min.X)
		if z < zbuffer[idx] {
			zbuffer[idx] = z
			img.SetRGBA(x, y, col)
		}
	})
}

// blendTriangle composites a straight-alpha color over a triangle
func blendTriangle(img *image.RGBA, tri [3]screenVertex, col color.NRGBA) {
	scanTriangle(img.Bounds(), tri, func(x, y int, _ float64) {
		blendPixel(img, x, y, col)
	})
}

// blendPixel composites a straight-alpha color over one pixel
func blendPixel(img *image.RGBA, x, y int, col color.NRGBA) {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return
	}
	if col.A == 0xff {
		img.SetRGBA(x, y, color.RGBA(col))
		return
	}
	dst := img.RGBAAt(x, y)
	a := float64(col.A) / 255
	mix := func(s, d uint8) uint8 {
		return uint8(float64(s)*a + float64(d)*(1-a) + 0.5)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: mix(col.R, dst.R),
		G: mix(col.G, dst.G),
		B: mix(col.B, dst.B),
		A: 0xff,
	})
}

// drawLine draws a line on an image using Bresenham's algorithm. Thickness
// above one stamps a square brush at every step.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, thickness int, col color.NRGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	lo := -(thickness - 1) / 2
	hi := thickness / 2
	err := dx - dy

	for {
		for oy := lo; oy <= hi; oy++ {
			for ox := lo; ox <= hi; ox++ {
				blendPixel(img, x1+ox, y1+oy, col)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillDisc draws a filled circle
func fillDisc(img *image.RGBA, cx, cy, radius int, col color.NRGBA) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				blendPixel(img, cx+x, cy+y, col)
			}
		}
	}
}

// drawRing draws a one pixel circle outline
func drawRing(img *image.RGBA, cx, cy, radius int, col color.NRGBA) {
	inner := (radius - 1) * (radius - 1)
	outer := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if d := x*x + y*y; d <= outer && d > inner {
				blendPixel(img, cx+x, cy+y, col)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
