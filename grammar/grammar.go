package grammar

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	white uint8 = iota
	grey
	black
)

type entry struct {
	rule   Rule
	state  uint8
	length uint64 // number of terminals in the expansion
	height int    // 1 + max child height, terminals have height 0
	leaves uint64 // sum of leaf depths below the rule
	uses   int
}

// Grammar is a validated, read-only RePair grammar: the rules in
// definition order and the top-level sequence.
type Grammar struct {
	rules    *orderedmap.OrderedMap[int, *entry]
	sequence []Symbol
	alpha    int
	alphabet []int
	total    uint64
}

// New validates rules and sequence and returns the grammar. alpha is the
// number of terminal codes the compressor used; alphabet maps a terminal
// code to its original value and may be nil when codes are the values.
//
// Duplicate rule ids, references to rules that do not exist and cycles
// in the rule graph are reported as *MalformedInputError before anything
// tries to expand the grammar.
func New(alpha int, alphabet []int, rules []Rule, sequence []Symbol) (*Grammar, error) {
	g := &Grammar{
		rules:    orderedmap.New[int, *entry](),
		sequence: sequence,
		alpha:    alpha,
		alphabet: alphabet,
	}

	for _, r := range rules {
		if _, dup := g.rules.Get(r.ID); dup {
			return nil, Malformed("rules", r.ID, "defined twice")
		}
		g.rules.Set(r.ID, &entry{rule: r})
	}

	for pair := g.rules.Oldest(); pair != nil; pair = pair.Next() {
		if err := g.visit(pair.Value); err != nil {
			return nil, err
		}
	}

	for i, s := range sequence {
		if s.IsTerminal() {
			g.total++
			continue
		}
		e, ok := g.rules.Get(s.Value)
		if !ok {
			return nil, Malformed("sequence", NoRule, "position %d references undefined rule %d", i, s.Value)
		}
		e.uses++
		g.total += e.length
	}

	return g, nil
}

type frame struct {
	e    *entry
	next int
}

// visit walks the rules reachable from e with an explicit stack. A grey
// rule met again is on the current path, i.e. a cycle. Lengths, heights
// and leaf depth sums are filled in post-order.
func (g *Grammar) visit(e *entry) error {
	if e.state == black {
		return nil
	}
	e.state = grey
	stack := []frame{{e: e}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next == len(f.e.rule.RHS) {
			g.finish(f.e)
			stack = stack[:len(stack)-1]
			continue
		}

		s := f.e.rule.RHS[f.next]
		f.next++
		if s.IsTerminal() {
			continue
		}

		c, ok := g.rules.Get(s.Value)
		if !ok {
			return Malformed("rules", f.e.rule.ID, "references undefined rule %d", s.Value)
		}
		c.uses++
		switch c.state {
		case grey:
			return Malformed("rules", f.e.rule.ID, "cycle through rule %d", s.Value)
		case white:
			c.state = grey
			stack = append(stack, frame{e: c})
		}
	}
	return nil
}

func (g *Grammar) finish(e *entry) {
	height := 0
	for _, s := range e.rule.RHS {
		if s.IsTerminal() {
			e.length++
			e.leaves++
			continue
		}
		c, _ := g.rules.Get(s.Value)
		e.length += c.length
		e.leaves += c.leaves + c.length
		if c.height > height {
			height = c.height
		}
	}
	e.height = height + 1
	e.state = black
}

// Alpha is the number of terminal codes declared by the rules file.
func (g *Grammar) Alpha() int { return g.alpha }

// Alphabet maps terminal codes to original values. Nil when the codes
// are the values.
func (g *Grammar) Alphabet() []int { return g.alphabet }

// Sequence is the top-level sequence.
func (g *Grammar) Sequence() []Symbol { return g.sequence }

// NumRules returns the number of non-terminal rules.
func (g *Grammar) NumRules() int { return g.rules.Len() }

// Rule looks up the rule with the given id.
func (g *Grammar) Rule(id int) (Rule, bool) {
	e, ok := g.rules.Get(id)
	if !ok {
		return Rule{}, false
	}
	return e.rule, true
}

// Rules returns the rules in definition order.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, 0, g.rules.Len())
	for pair := g.rules.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value.rule)
	}
	return out
}

// Uses counts the occurrences of rule id across all right-hand sides and
// the top-level sequence.
func (g *Grammar) Uses(id int) int {
	if e, ok := g.rules.Get(id); ok {
		return e.uses
	}
	return 0
}

// Len is the number of terminals s expands to.
func (g *Grammar) Len(s Symbol) uint64 {
	if s.IsTerminal() {
		return 1
	}
	if e, ok := g.rules.Get(s.Value); ok {
		return e.length
	}
	return 0
}

// Height is the height of the parse tree rooted at s.
func (g *Grammar) Height(s Symbol) int {
	if s.IsTerminal() {
		return 0
	}
	if e, ok := g.rules.Get(s.Value); ok {
		return e.height
	}
	return 0
}

// ExpandedLen is the length of the original input.
func (g *Grammar) ExpandedLen() uint64 { return g.total }

func (g *Grammar) rhs(id int) []Symbol {
	e, _ := g.rules.Get(id)
	return e.rule.RHS
}
