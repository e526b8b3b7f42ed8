package format

import (
	"bytes"
	"math/bits"

	"github.com/icza/bitio"

	"repairtree/grammar"
)

// wordReader reads the little-endian 32-bit words both file kinds are
// made of. Errors are sticky: once a read fails every later read returns
// zero and err reports the first failure.
type wordReader struct {
	r      *bitio.Reader
	source string
}

func newWordReader(data []byte, source string) *wordReader {
	return &wordReader{r: bitio.NewReader(bytes.NewReader(data)), source: source}
}

func (w *wordReader) u32() uint32 {
	return bits.ReverseBytes32(uint32(w.r.TryReadBits(32)))
}

func (w *wordReader) u8() byte {
	return w.r.TryReadByte()
}

func (w *wordReader) err() error {
	if w.r.TryError == nil {
		return nil
	}
	return grammar.Malformed(w.source, grammar.NoRule, "truncated record: %v", w.r.TryError)
}

// table resolves symbol ids from the files into grammar symbols. Ids
// below alpha are terminal codes, the next rules ids are non-terminals.
type table struct {
	alpha    int
	rules    int
	alphabet []int
}

func (t *table) symbol(id uint32) (grammar.Symbol, bool) {
	v := int(id)
	switch {
	case v < t.alpha:
		if t.alphabet != nil {
			return grammar.T(t.alphabet[v]), true
		}
		return grammar.T(v), true
	case v < t.alpha+t.rules:
		return grammar.N(v), true
	}
	return grammar.Symbol{}, false
}

const (
	wordSize = 4
	pairSize = 2 * wordSize
)

// readPairs reads the binary rule records that follow the header. Record
// i defines rule alpha+i.
func readPairs(w *wordReader, t *table) ([]grammar.Rule, error) {
	rules := make([]grammar.Rule, t.rules)
	for i := range rules {
		id := t.alpha + i
		left, right := w.u32(), w.u32()
		if err := w.err(); err != nil {
			return nil, err
		}

		l, ok := t.symbol(left)
		if !ok {
			return nil, grammar.Malformed("rules", id, "left symbol %d out of range (alphabet %d, %d rules)", left, t.alpha, t.rules)
		}
		r, ok := t.symbol(right)
		if !ok {
			return nil, grammar.Malformed("rules", id, "right symbol %d out of range (alphabet %d, %d rules)", right, t.alpha, t.rules)
		}
		rules[i] = grammar.Rule{ID: id, RHS: []grammar.Symbol{l, r}}
	}
	return rules, nil
}

// readSequence decodes a sequence file: a flat array of symbol ids.
func readSequence(data []byte, t *table) ([]grammar.Symbol, error) {
	if len(data)%wordSize != 0 {
		return nil, grammar.Malformed("sequence", grammar.NoRule,
			"%d bytes is not a whole number of %d-byte symbols", len(data), wordSize)
	}

	w := newWordReader(data, "sequence")
	seq := make([]grammar.Symbol, len(data)/wordSize)
	for i := range seq {
		id := w.u32()
		if err := w.err(); err != nil {
			return nil, err
		}
		s, ok := t.symbol(id)
		if !ok {
			return nil, grammar.Malformed("sequence", grammar.NoRule,
				"position %d: symbol %d out of range (alphabet %d, %d rules)", i, id, t.alpha, t.rules)
		}
		seq[i] = s
	}
	return seq, nil
}
