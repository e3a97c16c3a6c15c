package match

import (
	"reflect"

	"github.com/muzin/chameleon/primitive"
)

// Assignable reports whether a value of type from can be copied into type to without
// any recursion: plain Go assignability, lossless numeric widening, and taking the
// address of or dereferencing one pointer level on either side.
func Assignable(from, to reflect.Type) bool {
	if from == nil || to == nil {
		return false
	}

	if assignableOrWidening(from, to) {
		return true
	}

	// *T -> T (dereference when not nil)
	if from.Kind() == reflect.Pointer && to.Kind() != reflect.Pointer {
		return assignableOrWidening(from.Elem(), to)
	}

	// T -> *T (take address of a copy)
	if from.Kind() != reflect.Pointer && to.Kind() == reflect.Pointer {
		return assignableOrWidening(from, to.Elem())
	}

	// *T -> *U for widenable T, U
	if from.Kind() == reflect.Pointer && to.Kind() == reflect.Pointer {
		return primitive.IsSafeWidening(from.Elem(), to.Elem())
	}

	return false
}

func assignableOrWidening(from, to reflect.Type) bool {
	return from.AssignableTo(to) || primitive.IsSafeWidening(from, to)
}

// Coerce turns v into a value assignable to type to, following the same rules as
// Assignable. Interface values are unwrapped to their dynamic value first, and slices
// are coerced element by element so that a []any read from a map can fill a []int.
// The boolean is false when no such conversion exists, or when v is a nil pointer that
// would have to be dereferenced.
func Coerce(v reflect.Value, to reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() || to == nil {
		return reflect.Value{}, false
	}

	from := v.Type()
	if from.AssignableTo(to) {
		return v, true
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		return Coerce(v.Elem(), to)
	}

	if primitive.IsSafeWidening(from, to) {
		return v.Convert(to), true
	}

	switch {
	case v.Kind() == reflect.Pointer && to.Kind() != reflect.Pointer:
		if v.IsNil() {
			return reflect.Value{}, false
		}

		return Coerce(v.Elem(), to)
	case to.Kind() == reflect.Pointer:
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Zero(to), true
			}

			v = v.Elem()
		}

		inner, ok := Coerce(v, to.Elem())
		if !ok {
			return reflect.Value{}, false
		}

		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(inner)

		return ptr, true
	case v.Kind() == reflect.Slice && to.Kind() == reflect.Slice:
		return coerceSlice(v, to)
	}

	return reflect.Value{}, false
}

func coerceSlice(v reflect.Value, to reflect.Type) (reflect.Value, bool) {
	if v.IsNil() {
		return reflect.Zero(to), true
	}

	out := reflect.MakeSlice(to, v.Len(), v.Len())
	for i := range v.Len() {
		item := v.Index(i)
		if isNilValue(item) {
			continue
		}

		x, ok := Coerce(item, to.Elem())
		if !ok {
			return reflect.Value{}, false
		}

		out.Index(i).Set(x)
	}

	return out, true
}

// IsAbsent reports whether v carries no value: invalid, or a nil pointer, map, slice,
// interface, func or channel.
func IsAbsent(v reflect.Value) bool {
	return !v.IsValid() || isNilValue(v)
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
