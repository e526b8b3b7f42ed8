package render

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var face = basicfont.Face7x13

const (
	lineHeight = 13
	padding    = 6
	margin     = 20
)

// geometry converts scene coordinates to pixels. Both the SVG and the PNG
// writer use it with the 7x13 bitmap font metrics so the two agree.
type geometry struct {
	colW, rowH    float64
	width, height int
	captionW      float64
}

func measure(s *Scene) geometry {
	widest := 0
	for _, it := range s.Items[1:] {
		if w := textWidth(it.Label); w > widest {
			widest = w
		}
	}
	captionW := 0
	for _, line := range strings.Split(s.Items[0].Label, "\n") {
		if w := textWidth(line); w > captionW {
			captionW = w
		}
	}

	g := geometry{
		colW:     float64(widest + 4*padding),
		rowH:     float64(4 * lineHeight),
		captionW: float64(captionW),
	}
	treeW := g.colW * float64(s.Cols)
	if g.captionW > treeW {
		treeW = g.captionW
	}
	g.width = int(treeW) + 2*margin
	g.height = int(g.rowH*float64(s.Rows)) + 2*margin
	return g
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// center returns the pixel centre of an item. The caption is centred
// over the whole forest.
func (g geometry) center(s *Scene, i int) (x, y float64) {
	it := s.Items[i]
	if i == 0 {
		return float64(g.width) / 2, margin + g.rowH/2
	}
	offset := (float64(g.width) - 2*margin - g.colW*float64(s.Cols)) / 2
	x = margin + offset + it.Col*g.colW + g.colW/2
	y = margin + float64(it.Row)*g.rowH + g.rowH/2
	return x, y
}

// box returns the half extents of the frame drawn around a label.
func (g geometry) box(label string) (hw, hh float64) {
	lines := strings.Split(label, "\n")
	w := 0
	for _, l := range lines {
		if lw := textWidth(l); lw > w {
			w = lw
		}
	}
	return float64(w)/2 + padding, float64(len(lines)*lineHeight)/2 + padding/2
}
