package format

import (
	"repairtree/grammar"
)

// pfpDecoder reads the BigRePair layout, which has no character map:
//
//	u32 alpha | (u32 left, u32 right)*
//
// Terminal codes are the original symbol values.
type pfpDecoder struct{}

func (pfpDecoder) Decode(sequence, rules []byte) (*grammar.Grammar, error) {
	if len(rules) < wordSize {
		return nil, grammar.Malformed("rules", grammar.NoRule,
			"%d bytes is too short for the alphabet size", len(rules))
	}

	body := len(rules) - wordSize
	if body%pairSize != 0 {
		return nil, grammar.Malformed("rules", grammar.NoRule,
			"%d trailing bytes after %d rule records", body%pairSize, body/pairSize)
	}

	w := newWordReader(rules, "rules")
	t := &table{alpha: int(w.u32()), rules: body / pairSize}
	return decodeWith(w, t, sequence)
}
