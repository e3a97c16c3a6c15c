// Package apply executes derived procedures.
package apply

import (
	"reflect"

	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/match"
	"github.com/muzin/chameleon/internal/plan"
	"github.com/muzin/chameleon/primitive"
)

// Flags are the per-call switches of a transform.
type Flags struct {
	// AdaptMismatch enables the recursion rules and StringifySequence.
	AdaptMismatch bool
	// SkipNull leaves the destination untouched when the source value is absent.
	SkipNull bool
}

// Converter converts a nested value into a fresh value of type to. The registry
// implements it, so nested pairs are derived and cached like top-level ones.
type Converter interface {
	Convert(src reflect.Value, to reflect.Type, flags Flags) (reflect.Value, error)
}

// Run executes p, reading from src and writing into dst. src must be an addressable
// struct or a map value of p.Source; dst must be an addressable struct or a non-nil
// map value of p.Dest. Run keeps no state between calls.
func Run(p *plan.Procedure, src, dst reflect.Value, flags Flags, conv Converter) error {
	for i := range p.Steps {
		if err := runStep(&p.Steps[i], src, dst, flags, conv); err != nil {
			return err
		}
	}

	return nil
}

func runStep(s *plan.Step, src, dst reflect.Value, flags Flags, conv Converter) error {
	if s.Rule == match.Skip || (s.Rule.Gated() && !flags.AdaptMismatch) {
		return nil
	}

	v, ok := s.Source.Read(src)
	if ok && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	if !ok || match.IsAbsent(v) {
		if !flags.SkipNull && !s.Rule.Gated() && !s.KeepAbsent {
			s.Dest.Write(dst, reflect.Zero(s.To))
		}

		return nil
	}

	var (
		out reflect.Value
		err error
	)

	switch s.Rule {
	case match.DirectCopy:
		out = v
	case match.Stringify:
		out = stringValue(primitive.Stringify(v), s.Target)
	case match.StringifySequence:
		out, ok = stringifySequence(v, s.Sequence)
		if !ok {
			return nil
		}
	case match.RecurseScalar:
		out, ok, err = recurse(v, s.Target, flags, conv)
		if err != nil || !ok {
			return err
		}
	case match.RecurseSequence:
		out, ok, err = recurseSequence(v, s.Sequence, s.Target, flags, conv)
		if err != nil || !ok {
			return err
		}
	}

	x, ok := match.Coerce(out, s.To)
	if !ok {
		// Runtime type check of map entries: incompatible values are skipped.
		return nil
	}

	s.Dest.Write(dst, x)

	return nil
}

// stringValue returns str as a value of the string-like type t (named strings and
// *string included).
func stringValue(str string, t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Pointer {
		p := reflect.New(t.Elem())
		p.Elem().SetString(str)

		return p
	}

	return reflect.ValueOf(str).Convert(t)
}

func stringifySequence(v reflect.Value, seq reflect.Type) (reflect.Value, bool) {
	if v.Kind() != reflect.Slice {
		return reflect.Value{}, false
	}

	elem := seq.Elem()
	out := reflect.MakeSlice(seq, v.Len(), v.Len())

	for i := range v.Len() {
		item := v.Index(i)
		if match.IsAbsent(item) {
			continue
		}

		out.Index(i).Set(stringValue(primitive.Stringify(item), elem))
	}

	return out, true
}

// recurse converts one nested value into target. A value that already fits target is
// used as is; a value that is neither a struct nor a map (or a map headed for another
// map) cannot be converted and is skipped.
func recurse(v reflect.Value, target reflect.Type, flags Flags, conv Converter) (reflect.Value, bool, error) {
	if x, ok := match.Coerce(v, target); ok {
		return x, true, nil
	}

	if !convertible(v.Type(), target) {
		return reflect.Value{}, false, nil
	}

	out, err := conv.Convert(v, target, flags)
	if err != nil {
		return reflect.Value{}, false, err
	}

	return out, true, nil
}

func convertible(from, to reflect.Type) bool {
	fromMap := analyze.IsMapLike(from)
	if fromMap && analyze.IsMapLike(to) {
		return false
	}

	return fromMap || analyze.IsStructLike(from)
}

// recurseSequence converts every element of the slice v into elem and collects the
// results into a slice of type seq. Absent elements become zero elements.
func recurseSequence(
	v reflect.Value,
	seq, elem reflect.Type,
	flags Flags,
	conv Converter,
) (reflect.Value, bool, error) {
	if v.Kind() != reflect.Slice {
		return reflect.Value{}, false, nil
	}

	out := reflect.MakeSlice(seq, v.Len(), v.Len())

	for i := range v.Len() {
		item := v.Index(i)
		if item.Kind() == reflect.Interface && !item.IsNil() {
			item = item.Elem()
		}

		if match.IsAbsent(item) {
			continue
		}

		x, ok, err := recurse(item, elem, flags, conv)
		if err != nil {
			return reflect.Value{}, false, err
		}

		if !ok {
			continue
		}

		if x, ok = match.Coerce(x, seq.Elem()); ok {
			out.Index(i).Set(x)
		}
	}

	return out, true, nil
}
