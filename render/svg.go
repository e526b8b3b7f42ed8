package render

import (
	"encoding/xml"
	"io"
	"strings"
)

// svgRenderer writes a standalone SVG document.
type svgRenderer struct{}

func (svgRenderer) Render(w io.Writer, s *Scene) error {
	g := measure(s)
	pr := &printer{w: w}

	pr.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" font-family="monospace" font-size="%d">`+"\n",
		g.width, g.height, lineHeight)
	pr.printf(`<rect width="100%%" height="100%%" fill="white"/>` + "\n")

	for _, e := range s.Edges {
		x0, y0 := g.center(s, e[0])
		_, hh0 := g.box(s.Items[e[0]].Label)
		x1, y1 := g.center(s, e[1])
		_, hh1 := g.box(s.Items[e[1]].Label)
		pr.printf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", x0, y0+hh0, x1, y1-hh1)
	}

	for i, it := range s.Items {
		x, y := g.center(s, i)
		hw, hh := g.box(it.Label)
		if it.Shape == Box {
			pr.printf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="white" stroke="black"/>`+"\n",
				x-hw, y-hh, 2*hw, 2*hh)
		}
		lines := strings.Split(it.Label, "\n")
		top := y - float64(len(lines)*lineHeight)/2
		for j, line := range lines {
			var esc strings.Builder
			if err := xml.EscapeText(&esc, []byte(line)); err != nil {
				return err
			}
			pr.printf(`<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="hanging">%s</text>`+"\n",
				x, top+float64(j*lineHeight), esc.String())
		}
	}

	pr.printf("</svg>\n")
	return pr.err
}
