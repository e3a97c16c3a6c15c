package primitive

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Stringify renders v the way a destination string field receives it: numbers in
// decimal, booleans as true/false, time.Time as RFC3339Nano, time.Duration as 2h45m,
// anything implementing fmt.Stringer through its String method, everything else
// through fmt. Pointers and interfaces are dereferenced first; an invalid or nil value
// renders as the empty string.
func Stringify(v reflect.Value) string {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return ""
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return ""
	}

	switch FromReflectType(v.Type()) {
	case KindTime:
		return v.Interface().(time.Time).Format(time.RFC3339Nano)
	case KindDuration:
		return time.Duration(v.Int()).String()
	case KindPrimitiveEnum:
		if s, ok := stringer(v); ok {
			return s
		}
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	}

	if s, ok := stringer(v); ok {
		return s
	}

	if v.CanInterface() {
		return fmt.Sprint(v.Interface())
	}

	return v.String()
}

func stringer(v reflect.Value) (string, bool) {
	if !v.CanInterface() {
		return "", false
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}

	if v.CanAddr() {
		if s, ok := v.Addr().Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
	}

	return "", false
}
