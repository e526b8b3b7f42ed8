package format

import (
	"repairtree/grammar"
)

// charMapDecoder reads the layout shared by RePair and RLZ-RePair:
//
//	u32 alpha | alpha bytes character map | (u32 left, u32 right)*
//
// Terminal code i stands for the byte map[i] of the original input.
type charMapDecoder struct{}

func (charMapDecoder) Decode(sequence, rules []byte) (*grammar.Grammar, error) {
	if len(rules) < wordSize {
		return nil, grammar.Malformed("rules", grammar.NoRule,
			"%d bytes is too short for the alphabet size", len(rules))
	}

	w := newWordReader(rules, "rules")
	alpha := int(w.u32())
	if alpha > len(rules)-wordSize {
		return nil, grammar.Malformed("rules", grammar.NoRule,
			"character map of %d bytes truncated, %d bytes left", alpha, len(rules)-wordSize)
	}

	alphabet := make([]int, alpha)
	for i := range alphabet {
		alphabet[i] = int(w.u8())
	}
	if err := w.err(); err != nil {
		return nil, err
	}

	body := len(rules) - wordSize - alpha
	if body%pairSize != 0 {
		return nil, grammar.Malformed("rules", grammar.NoRule,
			"%d trailing bytes after %d rule records", body%pairSize, body/pairSize)
	}

	t := &table{alpha: alpha, rules: body / pairSize, alphabet: alphabet}
	return decodeWith(w, t, sequence)
}

func decodeWith(w *wordReader, t *table, sequence []byte) (*grammar.Grammar, error) {
	rs, err := readPairs(w, t)
	if err != nil {
		return nil, err
	}
	seq, err := readSequence(sequence, t)
	if err != nil {
		return nil, err
	}
	return grammar.New(t.alpha, t.alphabet, rs, seq)
}
