package chameleon

import (
	"fmt"
	"reflect"

	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/apply"
	"github.com/muzin/chameleon/internal/plan"
)

// Environment converts values of one type into values of another. It is immutable
// and safe for concurrent use; Readapt replaces it with a new one rather than
// changing it.
type Environment struct {
	source    reflect.Type
	dest      reflect.Type
	procedure *plan.Procedure
	registry  *Chameleon
}

// Source returns the source type (pointers stripped).
func (e *Environment) Source() reflect.Type {
	return e.source
}

// Dest returns the destination type (pointers stripped).
func (e *Environment) Dest() reflect.Type {
	return e.dest
}

// Strategy names how the pair is walked: entity_to_entity, entity_to_map or
// map_to_entity.
func (e *Environment) Strategy() string {
	return e.procedure.Strategy.String()
}

// Fields returns the names of the fields the environment copies, in order.
func (e *Environment) Fields() []string {
	names := make([]string, 0, len(e.procedure.Steps))
	for _, s := range e.procedure.Steps {
		names = append(names, s.Name)
	}

	return names
}

// Skipped returns one line per field left out of the conversion, with the reason.
func (e *Environment) Skipped() []string {
	all := e.procedure.Diagnostics.All()

	out := make([]string, 0, len(all))
	for _, d := range all {
		out = append(out, d.FieldPath+": "+d.Message)
	}

	return out
}

// String lists the steps and the skipped fields.
func (e *Environment) String() string {
	return e.procedure.String()
}

// Transform converts src into dst, which must be a non-nil pointer to the
// destination type (or a non-nil map of it). The registry defaults apply to flags
// not set by opts.
func (e *Environment) Transform(src, dst any, opts ...TransformOption) error {
	sv, ok := sourceValue(reflect.ValueOf(src))
	if !ok {
		return nil
	}

	dv, ok, err := destValue(reflect.ValueOf(dst))
	if err != nil || !ok {
		return err
	}

	if sv.Type() != e.source || dv.Type() != e.dest {
		return fmt.Errorf("%w: environment %s cannot convert %s",
			ErrMissingEnvironment, plan.PairName(e.source, e.dest), plan.PairName(sv.Type(), dv.Type()))
	}

	return e.run(sv, dv, e.registry.flags(opts))
}

func (e *Environment) run(src, dst reflect.Value, flags Flags) error {
	e.registry.metrics.recordTransform(e.Strategy())

	return apply.Run(e.procedure, src, dst, flags, converter{c: e.registry})
}

// converter lets nested values go through the registry, so nested pairs are derived
// once and cached like top-level ones.
type converter struct {
	c *Chameleon
}

func (cv converter) Convert(src reflect.Value, to reflect.Type, flags Flags) (reflect.Value, error) {
	out, target, err := newInstance(to)
	if err != nil {
		return reflect.Value{}, err
	}

	sv, ok := sourceValue(src)
	if !ok {
		return out, nil
	}

	if err := cv.c.transform(sv, target, flags); err != nil {
		return reflect.Value{}, err
	}

	return out, nil
}

// newInstance creates a zero value of t for a conversion to fill. out has type t;
// target is the addressable struct or the map out refers to.
func newInstance(t reflect.Type) (out, target reflect.Value, err error) {
	if t == nil {
		return out, target, instantiationError(t, "nil type")
	}

	depth, base := analyze.PtrDepthAndBase(t)

	switch {
	case base.Kind() == reflect.Struct:
		p := reflect.New(base)
		target, out = p.Elem(), p.Elem()
	case analyze.IsMapLike(base):
		target = reflect.MakeMap(base)
		out = target
	default:
		return out, target, instantiationError(t, "not a struct or a string-keyed map")
	}

	for range depth {
		if out.CanAddr() {
			out = out.Addr()

			continue
		}

		p := reflect.New(out.Type())
		p.Elem().Set(out)
		out = p
	}

	return out, target, nil
}

// sourceValue dereferences v down to a struct or map. The boolean is false when v
// is absent. Structs are copied when not addressable, as method readers need an
// addressable receiver.
func sourceValue(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	switch {
	case !v.IsValid():
		return reflect.Value{}, false
	case v.Kind() == reflect.Map && v.IsNil():
		return reflect.Value{}, false
	case v.Kind() == reflect.Struct && !v.CanAddr():
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)

		return cp, true
	default:
		return v, true
	}
}

// destValue dereferences v down to the struct or map to write into. Nil maps and
// inner pointers are allocated; a nil outer pointer or map is absent.
func destValue(v reflect.Value) (reflect.Value, bool, error) {
	if !v.IsValid() {
		return reflect.Value{}, false, nil
	}

	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return reflect.Value{}, false, nil
		}

		return v, true, nil
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Value{}, false, nil
		}
	default:
		return reflect.Value{}, false, instantiationError(v.Type(), "destination must be a pointer or a map")
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}

		v = v.Elem()
	}

	if v.Kind() == reflect.Map && v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}

	return v, true, nil
}
