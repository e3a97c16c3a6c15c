package match

import (
	"reflect"

	"github.com/muzin/chameleon/internal/analyze"
)

var (
	stringType      = reflect.TypeFor[string]()
	stringSliceType = reflect.TypeFor[[]string]()
	stringPtrType   = reflect.TypeFor[*string]()
)

// Plan decides the rule for copying a value declared as from into a destination
// declared as to. Rules are evaluated in order:
//
//  1. both sides are slices: identical (assignable) slices are copied, a string
//     element type stringifies every element, another built-in element type is
//     skipped, and a user-defined element type recurses element by element;
//  2. assignable types are copied;
//  3. a string destination receives the string form of the source;
//  4. a user-defined struct or map destination recurses into the nested value;
//  5. anything else is skipped.
func Plan(from, to reflect.Type) Decision {
	if from == nil || to == nil {
		return skip("missing type")
	}

	if analyze.IsSequence(from) && analyze.IsSequence(to) {
		return planSequence(from, to)
	}

	switch {
	case Assignable(from, to):
		return Decision{Rule: DirectCopy}
	case analyze.IsStringLike(to):
		return Decision{Rule: Stringify, Target: to}
	case analyze.IsUserDefined(to):
		if !recursible(from, to) {
			return skip("cannot convert %s into %s", from, to)
		}

		return Decision{Rule: RecurseScalar, Target: to}
	default:
		return skip("%s is not assignable to %s", from, to)
	}
}

func planSequence(from, to reflect.Type) Decision {
	elem := to.Elem()

	switch {
	case from.AssignableTo(to):
		return Decision{Rule: DirectCopy}
	case analyze.IsStringLike(elem):
		return Decision{Rule: StringifySequence, Target: elem, Sequence: to}
	case analyze.IsBuiltin(elem):
		return skip("element %s is not assignable to %s", from.Elem(), elem)
	case !recursible(from.Elem(), elem):
		return skip("cannot convert element %s into %s", from.Elem(), elem)
	default:
		return Decision{Rule: RecurseSequence, Target: elem, Sequence: to}
	}
}

// recursible reports whether a value declared as from can be handed to a nested
// conversion into to. The source has to be a struct, a string-keyed map or an
// interface holding one; map to map is not a supported pair.
func recursible(from, to reflect.Type) bool {
	base := analyze.Base(from)

	switch {
	case base.Kind() == reflect.Interface:
		return true
	case analyze.IsMapLike(base):
		return !analyze.IsMapLike(to)
	default:
		return analyze.IsStructLike(base)
	}
}

// PlanToMap decides the rule for storing a value declared as from in the map type m.
// A map whose element type is not the empty interface behaves like a struct field of
// that element type. Otherwise the map accepts any value: strings are stringified,
// built-in values are copied, and user-defined structs (and slices of them) become
// nested maps of type m.
func PlanToMap(from, m reflect.Type) Decision {
	m = analyze.Base(m)
	elem := m.Elem()

	if elem.Kind() != reflect.Interface || elem.NumMethod() > 0 {
		return Plan(from, elem)
	}

	if analyze.IsSequence(from) {
		item := from.Elem()

		switch {
		case analyze.IsStringLike(item):
			seq := stringSliceType
			if item.Kind() == reflect.Pointer {
				seq = reflect.SliceOf(stringPtrType)
			}

			return Decision{Rule: StringifySequence, Target: seq.Elem(), Sequence: seq}
		case analyze.IsBuiltin(item) || analyze.IsMapLike(item):
			return Decision{Rule: DirectCopy}
		default:
			return Decision{Rule: RecurseSequence, Target: m, Sequence: reflect.SliceOf(m)}
		}
	}

	switch {
	case analyze.IsStringLike(from):
		if from.Kind() == reflect.Pointer {
			return Decision{Rule: Stringify, Target: stringPtrType}
		}

		return Decision{Rule: Stringify, Target: stringType}
	case analyze.IsBuiltin(from) || analyze.IsMapLike(from):
		return Decision{Rule: DirectCopy}
	default:
		return Decision{Rule: RecurseScalar, Target: m}
	}
}

// PlanFromMap decides the rule for filling a destination declared as to from an entry
// of a map whose element type is elem. With an empty-interface element the stored
// type is only known at run time: built-in destinations are copied after a runtime
// type check, and user-defined destinations recurse assuming the stored value is a
// nested map.
func PlanFromMap(elem, to reflect.Type) Decision {
	if elem.Kind() != reflect.Interface || elem.NumMethod() > 0 {
		return Plan(elem, to)
	}

	if analyze.IsSequence(to) {
		item := to.Elem()

		switch {
		case analyze.IsStringLike(item):
			return Decision{Rule: StringifySequence, Target: item, Sequence: to}
		case analyze.IsBuiltin(item):
			return Decision{Rule: DirectCopy}
		default:
			return Decision{Rule: RecurseSequence, Target: item, Sequence: to}
		}
	}

	switch {
	case analyze.IsStringLike(to):
		return Decision{Rule: Stringify, Target: to}
	case analyze.IsBuiltin(to):
		return Decision{Rule: DirectCopy}
	default:
		return Decision{Rule: RecurseScalar, Target: to}
	}
}
