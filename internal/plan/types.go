package plan

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/diagnostic"
	"github.com/muzin/chameleon/internal/match"
)

var (
	// ErrUnsupportedType is returned for a side that is neither struct-like nor map-like.
	ErrUnsupportedType = errors.New("type is neither a struct nor a string-keyed map")
	// ErrUnsupportedPair is returned for map to map pairs.
	ErrUnsupportedPair = errors.New("map to map conversion is not supported")
)

// Strategy tells how the two sides of a pair are walked.
type Strategy int

const (
	EntityToEntity Strategy = iota
	EntityToMap
	MapToEntity
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case EntityToEntity:
		return "entity_to_entity"
	case EntityToMap:
		return "entity_to_map"
	case MapToEntity:
		return "map_to_entity"
	default:
		return "unknown"
	}
}

// Reader reads one field (or map entry) from a source value.
type Reader interface {
	Read(v reflect.Value) (reflect.Value, bool)
	String() string
}

// Writer writes one field (or map entry) of a destination value.
type Writer interface {
	Write(v reflect.Value, x reflect.Value) bool
	String() string
}

var (
	_ Reader = (*analyze.Accessor)(nil)
	_ Writer = (*analyze.Accessor)(nil)
	_ Reader = analyze.MapKey{}
	_ Writer = analyze.MapKey{}
)

// Step copies one field. It is immutable once built and holds no scratch state, so a
// Procedure can be executed concurrently.
type Step struct {
	// Name is the matching key shared by both sides.
	Name string
	// Rule decides how the value is carried over.
	Rule match.Rule
	// Source reads the value.
	Source Reader
	// Dest writes the value.
	Dest Writer
	// From is the declared source type (the map element type for map sources).
	From reflect.Type
	// To is the type the writer accepts.
	To reflect.Type
	// Target is the type to produce for Stringify and the recursion rules (see
	// match.Decision).
	Target reflect.Type
	// Sequence is the slice type the sequence rules build.
	Sequence reflect.Type
	// KeepAbsent leaves the destination untouched when the source value is missing
	// or nil, whatever the SkipNull flag says.
	KeepAbsent bool
}

// String returns e.g. "Address: GetAddress() -> SetAddress() recurse(*person.AddressView)".
func (s *Step) String() string {
	d := match.Decision{Rule: s.Rule, Target: s.Target, Sequence: s.Sequence}

	return fmt.Sprintf("%s: %s -> %s %s", s.Name, s.Source, s.Dest, d)
}

// Procedure is the ordered list of steps that converts a Source value into a Dest value.
type Procedure struct {
	Source      reflect.Type
	Dest        reflect.Type
	Strategy    Strategy
	Steps       []Step
	Diagnostics diagnostic.Diagnostics
}

// Pair returns "Source->Dest".
func (p *Procedure) Pair() string {
	return PairName(p.Source, p.Dest)
}

// PairName renders an ordered type pair.
func PairName(src, dst reflect.Type) string {
	return analyze.TypeString(src) + "->" + analyze.TypeString(dst)
}

// String lists the steps followed by the skip diagnostics.
func (p *Procedure) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", p.Pair(), p.Strategy)

	for i := range p.Steps {
		fmt.Fprintf(&b, "  %s\n", p.Steps[i].String())
	}

	for _, d := range p.Diagnostics.All() {
		fmt.Fprintf(&b, "  # %s: %s\n", d.FieldPath, d.Message)
	}

	return b.String()
}
