package format

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"repairtree/grammar"
	"repairtree/internal/fixture"
)

var inputs = []string{
	"",
	"a",
	"abcab",
	"abracadabra abracadabra",
	"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	"to be or not to be, that is the question\n\x00\xff\x7f",
}

func TestRoundTrip(t *testing.T) {
	variants := []struct {
		program  Program
		compress func([]byte) fixture.Grammar
	}{
		{Repair, fixture.RePair},
		{RLZRepair, fixture.RePair},
		{BigRepair, fixture.BigRePair},
	}

	for _, v := range variants {
		for _, in := range inputs {
			t.Run(v.program.String(), func(t *testing.T) {
				seq, rules := v.compress([]byte(in)).Files()
				g, err := Decode(v.program, seq, rules)
				if err != nil {
					t.Fatalf("Decode(%q): %v", in, err)
				}

				var buf bytes.Buffer
				if err := g.Expand(&buf); err != nil {
					t.Fatalf("Expand: %v", err)
				}
				if buf.String() != in {
					t.Errorf("Expand() = %q, want %q", buf.String(), in)
				}
				if g.ExpandedLen() != uint64(len(in)) {
					t.Errorf("ExpandedLen() = %d, want %d", g.ExpandedLen(), len(in))
				}
			})
		}
	}
}

func TestDecodeRepair(t *testing.T) {
	rules := fixture.RulesFile(3, []byte("xyz"), [2]uint32{0, 1}, [2]uint32{3, 2})
	seq := fixture.Words(4, 3)

	g, err := Decode(Repair, seq, rules)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	r3, ok := g.Rule(3)
	if !ok {
		t.Fatal("rule 3 missing")
	}
	if want := []grammar.Symbol{grammar.T('x'), grammar.T('y')}; !equal(r3.RHS, want) {
		t.Errorf("rule 3 = %v, want %v", r3.RHS, want)
	}
	r4, _ := g.Rule(4)
	if want := []grammar.Symbol{grammar.N(3), grammar.T('z')}; !equal(r4.RHS, want) {
		t.Errorf("rule 4 = %v, want %v", r4.RHS, want)
	}
	if want := []grammar.Symbol{grammar.N(4), grammar.N(3)}; !equal(g.Sequence(), want) {
		t.Errorf("sequence = %v, want %v", g.Sequence(), want)
	}
	if g.Alpha() != 3 || len(g.Alphabet()) != 3 {
		t.Errorf("Alpha() = %d, len(Alphabet()) = %d, want 3 and 3", g.Alpha(), len(g.Alphabet()))
	}
}

func TestDecodeBigRepair(t *testing.T) {
	rules := fixture.RulesFile(256, nil, [2]uint32{'a', 'b'}, [2]uint32{256, 'c'})
	seq := fixture.Words(257, 256)

	g, err := Decode(BigRepair, seq, rules)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var buf bytes.Buffer
	if err := g.Expand(&buf); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if buf.String() != "abcab" {
		t.Errorf("Expand() = %q, want %q", buf.String(), "abcab")
	}
	if g.Alphabet() != nil {
		t.Errorf("Alphabet() = %v, want nil", g.Alphabet())
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		program Program
		seq     []byte
		rules   []byte
		source  string
	}{
		{
			name:    "rules too short",
			program: Repair,
			rules:   []byte{1, 0},
			source:  "rules",
		},
		{
			name:    "character map truncated",
			program: Repair,
			rules:   append(fixture.Words(5), 'a', 'b'),
			source:  "rules",
		},
		{
			name:    "partial rule record",
			program: RLZRepair,
			rules:   append(fixture.RulesFile(2, []byte("ab"), [2]uint32{0, 1}), 0, 0, 0, 0),
			source:  "rules",
		},
		{
			name:    "partial rule record bigrepair",
			program: BigRepair,
			rules:   append(fixture.RulesFile(256, nil, [2]uint32{'a', 'b'}), 9),
			source:  "rules",
		},
		{
			name:    "rule symbol out of range",
			program: Repair,
			rules:   fixture.RulesFile(2, []byte("ab"), [2]uint32{0, 7}),
			seq:     fixture.Words(2),
			source:  "rules",
		},
		{
			name:    "self reference",
			program: Repair,
			rules:   fixture.RulesFile(2, []byte("ab"), [2]uint32{2, 1}),
			seq:     fixture.Words(2),
			source:  "rules",
		},
		{
			name:    "mutual reference",
			program: BigRepair,
			rules:   fixture.RulesFile(256, nil, [2]uint32{257, 'a'}, [2]uint32{'b', 256}),
			seq:     fixture.Words(256),
			source:  "rules",
		},
		{
			name:    "sequence ends mid-record",
			program: Repair,
			rules:   fixture.RulesFile(2, []byte("ab"), [2]uint32{0, 1}),
			seq:     append(fixture.Words(2), 1, 0),
			source:  "sequence",
		},
		{
			name:    "sequence symbol out of range",
			program: BigRepair,
			rules:   fixture.RulesFile(256, nil, [2]uint32{'a', 'b'}),
			seq:     fixture.Words(256, 300),
			source:  "sequence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.program, tt.seq, tt.rules)
			var merr *grammar.MalformedInputError
			if !errors.As(err, &merr) {
				t.Fatalf("Decode() error = %v, want *grammar.MalformedInputError", err)
			}
			if merr.Source != tt.source {
				t.Errorf("Source = %q, want %q", merr.Source, tt.source)
			}
		})
	}
}

func TestUnsupportedProgram(t *testing.T) {
	p, err := ParseProgram("rerepair")
	if err != nil {
		t.Fatalf("ParseProgram(rerepair): %v", err)
	}
	_, err = Decode(p, fixture.Words(), fixture.RulesFile(256, nil))
	var uerr *UnsupportedProgramError
	if !errors.As(err, &uerr) {
		t.Fatalf("Decode(rerepair) error = %v, want *UnsupportedProgramError", err)
	}
	if uerr.Name != "rerepair" {
		t.Errorf("Name = %q, want %q", uerr.Name, "rerepair")
	}

	if _, err := ParseProgram("gzip"); !errors.As(err, &uerr) {
		t.Errorf("ParseProgram(gzip) error = %v, want *UnsupportedProgramError", err)
	}
}

func TestParseProgram(t *testing.T) {
	for _, p := range Programs() {
		got, err := ParseProgram(p.String())
		if err != nil {
			t.Errorf("ParseProgram(%q): %v", p, err)
		}
		if got != p {
			t.Errorf("ParseProgram(%q) = %v, want %v", p, got, p)
		}
	}
}

func TestDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	seqPath := filepath.Join(dir, "input.C")
	rulesPath := filepath.Join(dir, "input.R")

	seq, rules := fixture.RePair([]byte("mississippi")).Files()
	writeFile(t, seqPath, seq)
	writeFile(t, rulesPath, rules)

	t.Run("ok", func(t *testing.T) {
		g, err := DecodeFiles(Repair, seqPath, rulesPath)
		if err != nil {
			t.Fatalf("DecodeFiles: %v", err)
		}
		if g.ExpandedLen() != 11 {
			t.Errorf("ExpandedLen() = %d, want 11", g.ExpandedLen())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := DecodeFiles(Repair, filepath.Join(dir, "nope.C"), rulesPath)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("DecodeFiles() error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("malformed names the file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.C")
		writeFile(t, bad, []byte{1, 2, 3})
		_, err := DecodeFiles(Repair, bad, rulesPath)
		var merr *grammar.MalformedInputError
		if !errors.As(err, &merr) {
			t.Fatalf("DecodeFiles() error = %v, want *grammar.MalformedInputError", err)
		}
		if merr.Source != bad {
			t.Errorf("Source = %q, want %q", merr.Source, bad)
		}
	})

	t.Run("unsupported opens nothing", func(t *testing.T) {
		_, err := DecodeFiles(ReRepair, filepath.Join(dir, "nope.C"), filepath.Join(dir, "nope.R"))
		var uerr *UnsupportedProgramError
		if !errors.As(err, &uerr) {
			t.Errorf("DecodeFiles() error = %v, want *UnsupportedProgramError", err)
		}
	})
}

func FuzzDecode(f *testing.F) {
	seq, rules := fixture.RePair([]byte("abracadabra")).Files()
	f.Add(seq, rules)
	seq, rules = fixture.BigRePair([]byte("abracadabra")).Files()
	f.Add(seq, rules)

	f.Fuzz(func(t *testing.T, seq, rules []byte) {
		for _, p := range []Program{Repair, BigRepair} {
			g, err := Decode(p, seq, rules)
			if err != nil {
				continue
			}
			if uint64(len(g.Sequence())) > g.ExpandedLen() && g.NumRules() == 0 {
				t.Errorf("%v: %d top-level symbols expand to %d", p, len(g.Sequence()), g.ExpandedLen())
			}
		}
	})
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func equal(a, b []grammar.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
