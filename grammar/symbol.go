package grammar

import (
	"fmt"
	"strconv"
	"unicode"
)

// Kind tells terminals and non-terminals apart.
type Kind uint8

const (
	Terminal Kind = iota
	NonTerminal
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case NonTerminal:
		return "nonterminal"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Symbol is one element of a right-hand side or of the top-level
// sequence. For terminals Value is the original alphabet value (after any
// remapping done by the compressor has been inverted), for non-terminals
// it is the rule id.
type Symbol struct {
	Kind  Kind
	Value int
}

// T returns the terminal symbol for alphabet value v.
func T(v int) Symbol { return Symbol{Kind: Terminal, Value: v} }

// N returns a reference to rule id.
func N(id int) Symbol { return Symbol{Kind: NonTerminal, Value: id} }

func (s Symbol) IsTerminal() bool    { return s.Kind == Terminal }
func (s Symbol) IsNonTerminal() bool { return s.Kind == NonTerminal }

// Label is the human readable form used by dumps and renderers:
// printable ASCII terminals are quoted, other byte values are shown as
// byte(N), non-terminals by their rule id.
func (s Symbol) Label() string {
	if s.IsNonTerminal() {
		return strconv.Itoa(s.Value)
	}
	return string(appendTerminal(nil, s.Value))
}

func (s Symbol) String() string {
	if s.IsNonTerminal() {
		return "R" + strconv.Itoa(s.Value)
	}
	return s.Label()
}

func appendTerminal(b []byte, v int) []byte {
	switch {
	case v < 0 || v > 0xff:
		return append(b, fmt.Sprintf("sym(%d)", v)...)
	case v < 0x80 && unicode.IsPrint(rune(v)):
		b = append(b, '\'')
		b = append(b, byte(v))
		return append(b, '\'')
	default:
		return append(b, fmt.Sprintf("byte(%d)", v)...)
	}
}

// Rule is a production: ID -> RHS.
type Rule struct {
	ID  int
	RHS []Symbol
}
