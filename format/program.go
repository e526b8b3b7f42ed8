package format

import "fmt"

// Program names the compressor that produced a grammar.
type Program uint8

const (
	Repair Program = iota
	RLZRepair
	BigRepair
	ReRepair
)

var programNames = [...]string{
	Repair:    "repair",
	RLZRepair: "rlz-repair",
	BigRepair: "bigrepair",
	ReRepair:  "rerepair",
}

func (p Program) String() string {
	if int(p) < len(programNames) {
		return programNames[p]
	}
	return fmt.Sprintf("Program(%d)", uint8(p))
}

// Programs lists every selector accepted by ParseProgram.
func Programs() []Program {
	return []Program{Repair, RLZRepair, BigRepair, ReRepair}
}

// ParseProgram maps a selector string to its Program.
func ParseProgram(name string) (Program, error) {
	for i, n := range programNames {
		if n == name {
			return Program(i), nil
		}
	}
	return 0, &UnsupportedProgramError{Name: name}
}

// UnsupportedProgramError is returned for selectors that name no known
// compressor, and for known compressors without a decoder.
type UnsupportedProgramError struct {
	Name string
}

func (e *UnsupportedProgramError) Error() string {
	return fmt.Sprintf("unsupported program %q", e.Name)
}
