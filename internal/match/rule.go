package match

import (
	"fmt"
	"reflect"
)

// Rule is the coercion applied to one field pair.
type Rule int

const (
	// Skip leaves the destination field untouched.
	Skip Rule = iota
	// DirectCopy assigns the source value, widening numbers and lifting pointers.
	DirectCopy
	// Stringify writes the string form of the source value.
	Stringify
	// RecurseScalar converts a nested struct or map into the destination type.
	RecurseScalar
	// RecurseSequence converts every element of a slice into the destination element type.
	RecurseSequence
	// StringifySequence writes a slice holding the string form of every source element.
	StringifySequence
)

const (
	RuleSkip              = "skip"
	RuleDirectCopy        = "copy"
	RuleStringify         = "stringify"
	RuleRecurseScalar     = "recurse"
	RuleRecurseSequence   = "recurse_sequence"
	RuleStringifySequence = "stringify_sequence"
)

// String returns a human-readable name for the rule.
func (r Rule) String() string {
	switch r {
	case Skip:
		return RuleSkip
	case DirectCopy:
		return RuleDirectCopy
	case Stringify:
		return RuleStringify
	case RecurseScalar:
		return RuleRecurseScalar
	case RecurseSequence:
		return RuleRecurseSequence
	case StringifySequence:
		return RuleStringifySequence
	default:
		return "unknown"
	}
}

// Gated reports whether the rule only runs when structure-mismatch adaptation is on.
func (r Rule) Gated() bool {
	return r == RecurseScalar || r == RecurseSequence || r == StringifySequence
}

// Decision is the outcome of planning one field pair.
type Decision struct {
	Rule Rule
	// Target is the type to produce: the nested destination type for RecurseScalar,
	// the element type for the sequence rules and the string type for Stringify.
	Target reflect.Type
	// Sequence is the slice type the sequence rules build.
	Sequence reflect.Type
	// Reason explains a Skip.
	Reason string
}

// String returns a short description, e.g. "recurse_sequence([]person.Address)".
func (d Decision) String() string {
	switch {
	case d.Rule == Skip && d.Reason != "":
		return fmt.Sprintf("%s(%s)", d.Rule, d.Reason)
	case d.Sequence != nil:
		return fmt.Sprintf("%s(%s)", d.Rule, d.Sequence)
	case d.Target != nil:
		return fmt.Sprintf("%s(%s)", d.Rule, d.Target)
	default:
		return d.Rule.String()
	}
}

func skip(format string, args ...any) Decision {
	return Decision{Rule: Skip, Reason: fmt.Sprintf(format, args...)}
}
