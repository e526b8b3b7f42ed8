package grammar

import "fmt"

// NoRule marks a MalformedInputError not tied to a single rule.
const NoRule = -1

// MalformedInputError reports a structural violation in a decoded grammar
// or in the files it was decoded from: truncated records, length markers
// that disagree with the stream, out of range or dangling references, and
// cycles.
type MalformedInputError struct {
	Source string // "rules", "sequence" or a file path
	Rule   int    // offending rule id or NoRule
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Rule == NoRule {
		return fmt.Sprintf("malformed %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("malformed %s: rule %d: %s", e.Source, e.Rule, e.Reason)
}

// Malformed builds a *MalformedInputError with a formatted reason.
func Malformed(source string, rule int, format string, args ...interface{}) *MalformedInputError {
	return &MalformedInputError{
		Source: source,
		Rule:   rule,
		Reason: fmt.Sprintf(format, args...),
	}
}
