package format

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"repairtree/grammar"
)

// Decoder turns the contents of a sequence file and a rules file into a
// grammar.
type Decoder interface {
	Decode(sequence, rules []byte) (*grammar.Grammar, error)
}

var decoders = map[Program]Decoder{
	Repair:    charMapDecoder{},
	RLZRepair: charMapDecoder{},
	BigRepair: pfpDecoder{},
}

// Lookup returns the decoder for p. ReRepair is a known program without a
// decoder yet.
func Lookup(p Program) (Decoder, error) {
	d, ok := decoders[p]
	if !ok {
		return nil, &UnsupportedProgramError{Name: p.String()}
	}
	return d, nil
}

// Decode decodes in-memory file contents.
func Decode(p Program, sequence, rules []byte) (*grammar.Grammar, error) {
	d, err := Lookup(p)
	if err != nil {
		return nil, err
	}
	return d.Decode(sequence, rules)
}

// DecodeFiles reads both files fully and decodes them. A
// *grammar.MalformedInputError names the offending file in Source.
func DecodeFiles(p Program, sequencePath, rulesPath string) (*grammar.Grammar, error) {
	d, err := Lookup(p)
	if err != nil {
		return nil, err
	}

	rules, err := readFile(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	sequence, err := readFile(sequencePath)
	if err != nil {
		return nil, fmt.Errorf("read sequence file: %w", err)
	}

	log.WithFields(log.Fields{
		"program":  p,
		"rules":    len(rules),
		"sequence": len(sequence),
	}).Debug("decoding grammar files")

	g, err := d.Decode(sequence, rules)
	if err != nil {
		var merr *grammar.MalformedInputError
		if errors.As(err, &merr) {
			switch merr.Source {
			case "rules":
				merr.Source = rulesPath
			case "sequence":
				merr.Source = sequencePath
			}
		}
		return nil, fmt.Errorf("decode %s grammar: %w", p, err)
	}

	log.WithFields(log.Fields{
		"program":  p,
		"alpha":    g.Alpha(),
		"rules":    g.NumRules(),
		"sequence": len(g.Sequence()),
	}).Info("grammar loaded")
	return g, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
