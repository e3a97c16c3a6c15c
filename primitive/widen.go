package primitive

import "reflect"

// ConversionPair is an ordered (from, to) pair of scalar kinds.
type ConversionPair struct {
	From, To KindEnum
}

var safeNumberPairs = map[ConversionPair]struct{}{
	{KindInt, KindInt}:   {}, // int can be any wide from 32 upto 64
	{KindInt, KindInt64}: {},

	{KindInt8, KindInt}:     {}, // int8 can be safely converted to any signed int
	{KindInt8, KindInt8}:    {},
	{KindInt8, KindInt16}:   {},
	{KindInt8, KindInt32}:   {},
	{KindInt8, KindInt64}:   {},
	{KindInt8, KindFloat32}: {},
	{KindInt8, KindFloat64}: {},

	{KindInt16, KindInt}:     {},
	{KindInt16, KindInt16}:   {},
	{KindInt16, KindInt32}:   {},
	{KindInt16, KindInt64}:   {},
	{KindInt16, KindFloat32}: {},
	{KindInt16, KindFloat64}: {},

	{KindInt32, KindInt}:     {},
	{KindInt32, KindInt32}:   {},
	{KindInt32, KindInt64}:   {},
	{KindInt32, KindFloat64}: {}, // int32 is wider than float32 mantissa

	{KindInt64, KindInt64}: {},

	{KindUint, KindUint}:   {},
	{KindUint, KindUint64}: {},

	{KindUint8, KindUint}:    {},
	{KindUint8, KindUint8}:   {},
	{KindUint8, KindUint16}:  {},
	{KindUint8, KindUint32}:  {},
	{KindUint8, KindUint64}:  {},
	{KindUint8, KindInt}:     {},
	{KindUint8, KindInt16}:   {},
	{KindUint8, KindInt32}:   {},
	{KindUint8, KindInt64}:   {},
	{KindUint8, KindFloat32}: {},
	{KindUint8, KindFloat64}: {},

	{KindUint16, KindUint}:    {},
	{KindUint16, KindUint16}:  {},
	{KindUint16, KindUint32}:  {},
	{KindUint16, KindUint64}:  {},
	{KindUint16, KindInt}:     {},
	{KindUint16, KindInt32}:   {},
	{KindUint16, KindInt64}:   {},
	{KindUint16, KindFloat32}: {},
	{KindUint16, KindFloat64}: {},

	{KindUint32, KindUint32}:  {},
	{KindUint32, KindUint64}:  {},
	{KindUint32, KindInt64}:   {}, // only int64 is wide enough to hold uint32
	{KindUint32, KindFloat64}: {},

	{KindUint64, KindUint64}: {},

	{KindFloat32, KindFloat32}: {},
	{KindFloat32, KindFloat64}: {},

	{KindFloat64, KindFloat64}: {},
}

// IsSafeNumber reports whether converting a from-kind number into a to-kind number
// never loses precision.
func IsSafeNumber(from, to KindEnum) bool {
	_, ok := safeNumberPairs[ConversionPair{from, to}]

	return ok
}

// IsSafeWidening reports whether a value of type from can be converted into type to
// without loss. Only unnamed numeric types take part; named types (enums) must match
// exactly.
func IsSafeWidening(from, to reflect.Type) bool {
	fromKind, toKind := FromReflectType(from), FromReflectType(to)
	if !fromKind.IsNumber() || !toKind.IsNumber() {
		return false
	}

	return IsSafeNumber(fromKind, toKind)
}
