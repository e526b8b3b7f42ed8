package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// maxPixels bounds the raster size; larger trees should use dot or svg.
const maxPixels = 1 << 26

// pngRenderer rasterises the scene with the 7x13 bitmap font.
type pngRenderer struct{}

func (pngRenderer) Render(w io.Writer, s *Scene) error {
	g := measure(s)
	if g.width*g.height > maxPixels {
		return fmt.Errorf("tree needs a %dx%d image, limit is %d pixels; use dot or svg", g.width, g.height, maxPixels)
	}

	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	z := vector.NewRasterizer(g.width, g.height)
	z.DrawOp = draw.Over

	for _, e := range s.Edges {
		x0, y0 := g.center(s, e[0])
		_, hh0 := g.box(s.Items[e[0]].Label)
		x1, y1 := g.center(s, e[1])
		_, hh1 := g.box(s.Items[e[1]].Label)
		stroke(z, x0, y0+hh0, x1, y1-hh1)
	}

	for i, it := range s.Items {
		if it.Shape != Box {
			continue
		}
		x, y := g.center(s, i)
		hw, hh := g.box(it.Label)
		stroke(z, x-hw, y-hh, x+hw, y-hh)
		stroke(z, x+hw, y-hh, x+hw, y+hh)
		stroke(z, x+hw, y+hh, x-hw, y+hh)
		stroke(z, x-hw, y+hh, x-hw, y-hh)
	}
	z.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})

	d := &font.Drawer{Dst: img, Src: image.Black, Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	for i, it := range s.Items {
		x, y := g.center(s, i)
		lines := strings.Split(it.Label, "\n")
		top := y - float64(len(lines)*lineHeight)/2
		for j, line := range lines {
			lx := int(x) - textWidth(line)/2
			ly := int(top) + j*lineHeight + ascent
			d.Dot = fixed.P(lx, ly)
			d.DrawString(line)
		}
	}

	return png.Encode(w, img)
}

// stroke adds a one pixel wide segment to the rasteriser as a thin quad.
func stroke(z *vector.Rasterizer, x0, y0, x1, y1 float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*0.5, dx/l*0.5

	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
}
