package grammar

import (
	"bufio"
	"fmt"
	"io"
)

// At returns the terminal at position pos of the original input by
// descending the expansion lengths, without building any tree.
func (g *Grammar) At(pos uint64) (Symbol, error) {
	if pos >= g.total {
		return Symbol{}, fmt.Errorf("position %d out of range [0,%d)", pos, g.total)
	}

	seq := g.sequence
	for {
		descended := false
		for _, s := range seq {
			n := g.Len(s)
			if pos >= n {
				pos -= n
				continue
			}
			if s.IsTerminal() {
				return s, nil
			}
			seq = g.rhs(s.Value)
			descended = true
			break
		}
		if !descended {
			return Symbol{}, fmt.Errorf("position %d not reachable", pos)
		}
	}
}

type spanItem struct {
	s     Symbol
	start uint64
}

// Span resolves the copy-phrase [off, off+n) of the expansion of ref into
// literal symbols. Symbols that lie completely inside the span are kept
// as they are (non-terminals stay non-terminals), symbols overlapping a
// border are split into their right-hand sides until the border falls
// between symbols. Expanding the result yields exactly the n terminals of
// the span.
func (g *Grammar) Span(ref []Symbol, off, n uint64) ([]Symbol, error) {
	var total uint64
	for _, s := range ref {
		total += g.Len(s)
	}
	if off > total || n > total-off {
		return nil, fmt.Errorf("span [%d,%d) exceeds reference length %d", off, off+n, total)
	}
	end := off + n

	stack := make([]spanItem, 0, len(ref))
	pos := total
	for i := len(ref) - 1; i >= 0; i-- {
		pos -= g.Len(ref[i])
		stack = append(stack, spanItem{s: ref[i], start: pos})
	}

	var out []Symbol
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		l := g.Len(it.s)
		if it.start+l <= off || it.start >= end {
			continue
		}
		if it.start >= off && it.start+l <= end {
			out = append(out, it.s)
			continue
		}

		rhs := g.rhs(it.s.Value)
		pos := it.start + l
		for i := len(rhs) - 1; i >= 0; i-- {
			pos -= g.Len(rhs[i])
			stack = append(stack, spanItem{s: rhs[i], start: pos})
		}
	}
	return out, nil
}

// Expand writes the original input, the concatenation of all terminals
// in order, to w.
func (g *Grammar) Expand(w io.Writer) error {
	bw := bufio.NewWriter(w)

	stack := make([]Symbol, 0, len(g.sequence))
	for i := len(g.sequence) - 1; i >= 0; i-- {
		stack = append(stack, g.sequence[i])
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.IsNonTerminal() {
			rhs := g.rhs(s.Value)
			for i := len(rhs) - 1; i >= 0; i-- {
				stack = append(stack, rhs[i])
			}
			continue
		}
		if s.Value < 0 || s.Value > 0xff {
			return fmt.Errorf("terminal %d does not fit in a byte", s.Value)
		}
		if err := bw.WriteByte(byte(s.Value)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
