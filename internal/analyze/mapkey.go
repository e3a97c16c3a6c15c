package analyze

import "reflect"

// MapKey reads and writes one key of a string-keyed map value.
type MapKey struct {
	Key string
}

// String returns the key in index notation.
func (k MapKey) String() string {
	return "[" + k.Key + "]"
}

// Read returns the value stored under the key. Interface values are unwrapped to their
// dynamic value. The boolean is false for a missing key or a nil map.
func (k MapKey) Read(m reflect.Value) (reflect.Value, bool) {
	if m.Kind() != reflect.Map || m.IsNil() {
		return reflect.Value{}, false
	}

	v := m.MapIndex(reflect.ValueOf(k.Key).Convert(m.Type().Key()))
	if !v.IsValid() {
		return reflect.Value{}, false
	}

	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	return v, true
}

// Write puts x under the key. x must be assignable to the map element type.
func (k MapKey) Write(m reflect.Value, x reflect.Value) bool {
	if m.Kind() != reflect.Map || m.IsNil() {
		return false
	}

	m.SetMapIndex(reflect.ValueOf(k.Key).Convert(m.Type().Key()), x)

	return true
}
