package grammar

import (
	"fmt"
	"io"
)

type prettyPrinter struct {
	w   io.Writer
	err error
}

func (pr *prettyPrinter) printf(format string, args ...interface{}) {
	if pr.err != nil {
		return
	}
	_, pr.err = fmt.Fprintf(pr.w, format, args...)
}

func (pr *prettyPrinter) print(rhs []Symbol) {
	for _, s := range rhs {
		pr.printf(" %s", s.Label())
	}
	pr.printf("\n")
}

// Dump writes the terminal table and every rule as
//
//	id (Nx)	-> sym sym
//
// where N is the number of times the rule is used.
func (g *Grammar) Dump(w io.Writer) error {
	pr := prettyPrinter{w: w}

	pr.printf("--- Parsed Grammar Rules ---\n")

	if g.alphabet != nil {
		pr.printf("\nFound %d terminal symbols.\n", len(g.alphabet))
		for code, v := range g.alphabet {
			pr.printf("    %d -> %s\n", code, T(v).Label())
		}
	}

	pr.printf("\nFound %d non-terminal rules:\n", g.rules.Len())
	for pair := g.rules.Oldest(); pair != nil; pair = pair.Next() {
		pr.printf("    %d (%dx)\t->", pair.Key, pair.Value.uses)
		pr.print(pair.Value.rule.RHS)
	}

	pr.printf("\nTotal symbols in grammar: %d\n", g.alpha+g.rules.Len())
	return pr.err
}

// DumpSequence writes the top-level sequence on one line followed by its
// length.
func (g *Grammar) DumpSequence(w io.Writer) error {
	pr := prettyPrinter{w: w}
	pr.printf("--- Loaded Compressed Sequence ---\n")
	pr.printf("[")
	for _, s := range g.sequence {
		pr.printf(" %s", s.Label())
	}
	pr.printf(" ]\nSequence contains %d symbols.\n", len(g.sequence))
	return pr.err
}
