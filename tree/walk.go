package tree

type visit struct {
	n     *Node
	depth int
}

// Walk calls fn for every node of the forest in pre-order, left to
// right, with the node's depth (roots are at depth 0). Returning false
// from fn skips the node's children.
func Walk(forest []*Node, fn func(n *Node, depth int) bool) {
	stack := make([]visit, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, visit{forest[i], 0})
	}

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(v.n, v.depth) {
			continue
		}
		for i := len(v.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, visit{v.n.Children[i], v.depth + 1})
		}
	}
}

// Leaves returns the terminal labels in depth-first, left-to-right order.
// For a forest built from a grammar this is the original input.
func Leaves(forest []*Node) []int {
	var out []int
	Walk(forest, func(n *Node, _ int) bool {
		if n.IsTerminal() {
			out = append(out, n.Label)
		}
		return true
	})
	return out
}

// Count returns the number of nodes in the forest.
func Count(forest []*Node) int {
	n := 0
	Walk(forest, func(*Node, int) bool {
		n++
		return true
	})
	return n
}

// Height returns the depth of the deepest node, or -1 for an empty
// forest.
func Height(forest []*Node) int {
	h := -1
	Walk(forest, func(_ *Node, depth int) bool {
		if depth > h {
			h = depth
		}
		return true
	})
	return h
}
