package chameleon

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/plan"
)

var (
	// ErrDerivation marks every failure to derive a procedure for a type pair.
	ErrDerivation = errors.New("derivation failed")
	// ErrUnsupportedType is the cause of a derivation failure when a side is neither a
	// struct nor a string-keyed map.
	ErrUnsupportedType = plan.ErrUnsupportedType
	// ErrUnsupportedPair is the cause of a derivation failure for map to map pairs.
	ErrUnsupportedPair = plan.ErrUnsupportedPair
	// ErrMissingEnvironment is returned when no environment exists for a pair even
	// after adapting it.
	ErrMissingEnvironment = errors.New("environment of structure conversion not found")
	// ErrInstantiation is returned when a destination value cannot be created or
	// written into.
	ErrInstantiation = errors.New("cannot instantiate destination")
	// ErrElementType is returned by batch transforms when an element's type differs
	// from the type of the first element.
	ErrElementType = errors.New("element type differs from the first element")
)

// DerivationError reports which pair failed to derive. It matches ErrDerivation and
// its cause with errors.Is.
type DerivationError struct {
	Source reflect.Type
	Dest   reflect.Type
	Err    error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive %s: %v", plan.PairName(e.Source, e.Dest), e.Err)
}

func (e *DerivationError) Unwrap() []error {
	return []error{ErrDerivation, e.Err}
}

func instantiationError(t reflect.Type, reason string) error {
	return fmt.Errorf("%w %s: %s", ErrInstantiation, analyze.TypeString(t), reason)
}
