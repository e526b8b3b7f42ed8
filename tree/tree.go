package tree

import (
	"repairtree/grammar"
)

// Node is one occurrence of a symbol in the expanded parse tree. Every
// occurrence of a rule gets its own Node and its own children.
type Node struct {
	Kind     grammar.Kind
	Label    int // terminal value or rule id
	Children []*Node
}

func (n *Node) IsTerminal() bool { return n.Kind == grammar.Terminal }

// Symbol returns the grammar symbol this node instantiates.
func (n *Node) Symbol() grammar.Symbol {
	return grammar.Symbol{Kind: n.Kind, Value: n.Label}
}

func newNode(s grammar.Symbol) *Node {
	return &Node{Kind: s.Kind, Label: s.Value}
}

type frame struct {
	node *Node
	rhs  []grammar.Symbol
	next int
}

// Build expands g into a forest with one tree per top-level symbol, in
// sequence order. It uses an explicit stack, so nesting depth is bounded
// by memory rather than the goroutine stack. The grammar must come from
// grammar.New, which has already rejected dangling references and cycles.
func Build(g *grammar.Grammar) []*Node {
	seq := g.Sequence()
	forest := make([]*Node, 0, len(seq))
	for _, s := range seq {
		forest = append(forest, expand(g, s))
	}
	return forest
}

func expand(g *grammar.Grammar, s grammar.Symbol) *Node {
	root := newNode(s)
	if s.IsTerminal() {
		return root
	}

	stack := []frame{{node: root, rhs: rhs(g, s.Value)}}
	root.Children = make([]*Node, 0, len(stack[0].rhs))

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next == len(f.rhs) {
			stack = stack[:len(stack)-1]
			continue
		}

		c := f.rhs[f.next]
		f.next++
		child := newNode(c)
		f.node.Children = append(f.node.Children, child)

		if c.IsNonTerminal() {
			body := rhs(g, c.Value)
			child.Children = make([]*Node, 0, len(body))
			stack = append(stack, frame{node: child, rhs: body})
		}
	}
	return root
}

func rhs(g *grammar.Grammar, id int) []grammar.Symbol {
	r, _ := g.Rule(id)
	return r.RHS
}
