package render

import (
	"strconv"
	"strings"

	"repairtree/grammar"
	"repairtree/tree"
)

// Shape of a drawn node.
type Shape uint8

const (
	Box   Shape = iota // non-terminal
	Plain              // terminal
	None               // the sequence caption
)

// Item is a positioned node. Col is fractional for parents centred over
// their children; Row 0 holds the caption.
type Item struct {
	Label string
	Shape Shape
	Col   float64
	Row   int
}

// Scene is a laid-out forest: item 0 is the caption listing the
// top-level sequence, every forest root hangs off it.
type Scene struct {
	Items []Item
	Edges [][2]int // parent, child
	Cols  int      // number of leaf columns
	Rows  int
}

// Layout places the forest: leaves on consecutive columns in order,
// non-terminals centred over their first and last child, one row per
// depth level.
func Layout(forest []*tree.Node) *Scene {
	labels := make([]string, len(forest))
	for i, n := range forest {
		labels[i] = n.Symbol().Label()
	}

	s := &Scene{
		Items: []Item{{
			Label: "Compressed Sequence\n(" + strings.Join(labels, " ") + ")",
			Shape: None,
		}},
		Rows: 1,
	}

	type span struct{ first, last int }
	children := []span{{-1, -1}}
	parents := []int{0}

	tree.Walk(forest, func(n *tree.Node, depth int) bool {
		idx := len(s.Items)
		item := Item{Label: label(n), Shape: Box, Row: depth + 1}
		if n.IsTerminal() {
			item.Shape = Plain
		}
		if len(n.Children) == 0 {
			item.Col = float64(s.Cols)
			s.Cols++
		}
		s.Items = append(s.Items, item)
		children = append(children, span{-1, -1})
		if depth+2 > s.Rows {
			s.Rows = depth + 2
		}

		parent := parents[depth]
		s.Edges = append(s.Edges, [2]int{parent, idx})
		if children[parent].first < 0 {
			children[parent].first = idx
		}
		children[parent].last = idx

		parents = append(parents[:depth+1], idx)
		return true
	})

	// Children always follow their parent in pre-order.
	for i := len(s.Items) - 1; i >= 0; i-- {
		c := children[i]
		if c.first >= 0 {
			s.Items[i].Col = (s.Items[c.first].Col + s.Items[c.last].Col) / 2
		}
	}
	return s
}

func label(n *tree.Node) string {
	if n.IsTerminal() {
		return grammar.T(n.Label).Label()
	}
	return strconv.Itoa(n.Label)
}
