package chameleon

import (
	"fmt"
	"reflect"

	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/match"
)

// Transform copies the fields of src into dst, adapting the pair first if needed.
// dst must be a non-nil pointer to a struct or map, or a non-nil map. A nil src or
// dst is a no-op.
func (c *Chameleon) Transform(src, dst any, opts ...TransformOption) error {
	sv, ok := sourceValue(reflect.ValueOf(src))
	if !ok {
		return nil
	}

	dv, ok, err := destValue(reflect.ValueOf(dst))
	if err != nil || !ok {
		return err
	}

	return c.transform(sv, dv, c.flags(opts))
}

// TransformTo converts src into a new value of dstType, which may be a struct, a
// string-keyed map, or a pointer to either. A nil src yields a zero instance.
func (c *Chameleon) TransformTo(src any, dstType reflect.Type, opts ...TransformOption) (any, error) {
	out, target, err := newInstance(dstType)
	if err != nil {
		return nil, err
	}

	sv, ok := sourceValue(reflect.ValueOf(src))
	if !ok {
		return out.Interface(), nil
	}

	if err := c.transform(sv, target, c.flags(opts)); err != nil {
		return nil, err
	}

	return out.Interface(), nil
}

// To converts src into a new T.
func To[T any](c *Chameleon, src any, opts ...TransformOption) (T, error) {
	var zero T

	v, err := c.TransformTo(src, reflect.TypeFor[T](), opts...)
	if err != nil {
		return zero, err
	}

	out, _ := v.(T)

	return out, nil
}

// TransformSlice converts every element of the slice src into a new value of
// dstType and returns them as a slice of dstType, in input order. The environment
// is resolved once, from the first non-nil element; nil elements yield zero
// instances. An element of another type stops the batch: the elements converted
// so far are returned together with ErrElementType.
func (c *Chameleon) TransformSlice(src any, dstType reflect.Type, opts ...TransformOption) (any, error) {
	if dstType == nil {
		return nil, instantiationError(dstType, "nil type")
	}

	sv := reflect.ValueOf(src)
	for sv.IsValid() && sv.Kind() == reflect.Pointer && !sv.IsNil() {
		sv = sv.Elem()
	}

	out := reflect.MakeSlice(reflect.SliceOf(dstType), 0, 0)

	if match.IsAbsent(sv) {
		return out.Interface(), nil
	}

	if sv.Kind() != reflect.Slice && sv.Kind() != reflect.Array {
		return out.Interface(), fmt.Errorf("%w: %s is not a slice", ErrUnsupportedType, sv.Type())
	}

	out = reflect.MakeSlice(reflect.SliceOf(dstType), 0, sv.Len())
	flags := c.flags(opts)

	var env *Environment

	for i := range sv.Len() {
		inst, target, err := newInstance(dstType)
		if err != nil {
			return out.Interface(), err
		}

		item, ok := sourceValue(sv.Index(i))
		if ok {
			if env == nil {
				if env, err = c.environment(item.Type(), target.Type()); err != nil {
					return out.Interface(), err
				}
			}

			if item.Type() != env.source {
				return out.Interface(), fmt.Errorf("%w: element %d is %s, want %s",
					ErrElementType, i, analyze.TypeString(item.Type()), analyze.TypeString(env.source))
			}

			if err := env.run(item, target, flags); err != nil {
				return out.Interface(), err
			}
		}

		out = reflect.Append(out, inst)
	}

	return out.Interface(), nil
}

// ToSlice converts every element of the slice src into a new T.
func ToSlice[T any](c *Chameleon, src any, opts ...TransformOption) ([]T, error) {
	v, err := c.TransformSlice(src, reflect.TypeFor[T](), opts...)
	out, _ := v.([]T)

	return out, err
}

func (c *Chameleon) transform(src, dst reflect.Value, flags Flags) error {
	env, err := c.environment(src.Type(), dst.Type())
	if err != nil {
		return err
	}

	return env.run(src, dst, flags)
}

// environment returns the environment of (src, dst), adapting the pair when it is
// not cached yet.
func (c *Chameleon) environment(src, dst reflect.Type) (*Environment, error) {
	if env, ok := c.lookup(src, dst); ok {
		c.metrics.recordHit()

		return env, nil
	}

	if err := c.Adapt(src, dst); err != nil {
		return nil, err
	}

	env, ok := c.lookup(src, dst)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnvironment, analyze.TypeString(src)+"->"+analyze.TypeString(dst))
	}

	return env, nil
}
