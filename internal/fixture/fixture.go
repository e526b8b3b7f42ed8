// Package fixture builds RePair grammar files in memory for tests. It
// implements the textbook RePair loop (replace the most frequent digram
// until none repeats) and writes the result in each program's layout.
package fixture

import (
	"encoding/binary"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Grammar is a compressed input in file terms: terminal codes below
// Alpha, rule alpha+i is Rules[i].
type Grammar struct {
	Alpha    int
	Alphabet []byte // character map, nil when codes are byte values
	Rules    [][2]int
	Sequence []int
}

type digram struct{ one, two int }

// RePair compresses input the way RePair does: the alphabet is reduced to
// the distinct input bytes in ascending order and stored as a character
// map.
func RePair(input []byte) Grammar {
	seen := make(map[byte]bool)
	for _, b := range input {
		seen[b] = true
	}
	alphabet := make([]byte, 0, len(seen))
	for b := range seen {
		alphabet = append(alphabet, b)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })

	code := make(map[byte]int, len(alphabet))
	for i, b := range alphabet {
		code[b] = i
	}
	seq := make([]int, len(input))
	for i, b := range input {
		seq[i] = code[b]
	}

	g := Grammar{Alpha: len(alphabet), Alphabet: alphabet}
	g.Rules, g.Sequence = compress(seq, g.Alpha)
	return g
}

// BigRePair compresses input over the full byte alphabet with terminal
// codes equal to the byte values.
func BigRePair(input []byte) Grammar {
	seq := make([]int, len(input))
	for i, b := range input {
		seq[i] = int(b)
	}
	g := Grammar{Alpha: 256}
	g.Rules, g.Sequence = compress(seq, g.Alpha)
	return g
}

func compress(seq []int, next int) ([][2]int, []int) {
	var rules [][2]int
	for {
		table := orderedmap.New[digram, int]()
		for i := 0; i+1 < len(seq); i++ {
			d := digram{seq[i], seq[i+1]}
			n, _ := table.Get(d)
			table.Set(d, n+1)
		}

		var best digram
		count := 1
		for pair := table.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value > count {
				best, count = pair.Key, pair.Value
			}
		}
		if count < 2 {
			return rules, seq
		}

		rules = append(rules, [2]int{best.one, best.two})
		out := make([]int, 0, len(seq))
		for i := 0; i < len(seq); {
			if i+1 < len(seq) && seq[i] == best.one && seq[i+1] == best.two {
				out = append(out, next)
				i += 2
				continue
			}
			out = append(out, seq[i])
			i++
		}
		seq = out
		next++
	}
}

// Files encodes g as a sequence file and a rules file. The rules file
// carries the character map when g has one.
func (g Grammar) Files() (sequence, rules []byte) {
	ids := make([]uint32, len(g.Sequence))
	for i, s := range g.Sequence {
		ids[i] = uint32(s)
	}
	pairs := make([][2]uint32, len(g.Rules))
	for i, r := range g.Rules {
		pairs[i] = [2]uint32{uint32(r[0]), uint32(r[1])}
	}
	return Words(ids...), RulesFile(uint32(g.Alpha), g.Alphabet, pairs...)
}

// Words encodes ids as little-endian 32-bit words.
func Words(ids ...uint32) []byte {
	b := make([]byte, 0, 4*len(ids))
	for _, id := range ids {
		b = binary.LittleEndian.AppendUint32(b, id)
	}
	return b
}

// RulesFile lays out a rules file: alpha, the optional character map and
// the rule pairs.
func RulesFile(alpha uint32, charMap []byte, pairs ...[2]uint32) []byte {
	b := Words(alpha)
	b = append(b, charMap...)
	for _, p := range pairs {
		b = append(b, Words(p[0], p[1])...)
	}
	return b
}
