package render

import (
	"fmt"
	"io"
	"strconv"
)

// dotRenderer writes Graphviz source.
type dotRenderer struct{}

func (dotRenderer) Render(w io.Writer, s *Scene) error {
	pr := &printer{w: w}
	pr.printf("// RePair Parse Tree\n")
	pr.printf("digraph {\n")
	pr.printf("\trankdir=TB splines=line\n")
	pr.printf("\tnode [fontname=helvetica shape=box style=rounded]\n")
	pr.printf("\tedge [arrowhead=none]\n")

	for i, it := range s.Items {
		pr.printf("\t%s [label=%s shape=%s]\n", dotID(i), strconv.Quote(it.Label), dotShape(it.Shape))
	}
	for _, e := range s.Edges {
		pr.printf("\t%s -> %s\n", dotID(e[0]), dotID(e[1]))
	}
	pr.printf("}\n")
	return pr.err
}

func dotID(i int) string {
	if i == 0 {
		return "root"
	}
	return fmt.Sprintf("node%d", i-1)
}

func dotShape(sh Shape) string {
	switch sh {
	case Box:
		return "box"
	case Plain:
		return "plaintext"
	}
	return "none"
}

type printer struct {
	w   io.Writer
	err error
}

func (pr *printer) printf(format string, args ...interface{}) {
	if pr.err != nil {
		return
	}
	_, pr.err = fmt.Fprintf(pr.w, format, args...)
}
