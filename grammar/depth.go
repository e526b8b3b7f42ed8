package grammar

// DepthStats summarises the shape of the parse-tree forest.
type DepthStats struct {
	Max     int     // deepest leaf below a top-level symbol
	AvgLeaf float64 // mean leaf depth
	Leaves  uint64  // number of leaves, the original input length
}

// Depth computes the forest depth statistics from the per-rule heights
// and leaf depth sums gathered during validation.
func (g *Grammar) Depth() DepthStats {
	var st DepthStats
	var sum uint64

	for _, s := range g.sequence {
		if h := g.Height(s); h > st.Max {
			st.Max = h
		}
		if s.IsNonTerminal() {
			e, _ := g.rules.Get(s.Value)
			sum += e.leaves
		}
	}

	st.Leaves = g.total
	if st.Leaves > 0 {
		st.AvgLeaf = float64(sum) / float64(st.Leaves)
	}
	return st
}

// Heights returns the height of every rule in definition order.
func (g *Grammar) Heights() []float64 {
	out := make([]float64, 0, g.rules.Len())
	for pair := g.rules.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, float64(pair.Value.height))
	}
	return out
}
