// Package chameleon converts values between independently declared struct and map
// types by matching fields of the same name.
//
// The first conversion of a type pair derives a procedure for both directions and
// caches it; later conversions only execute the cached procedure:
//
//	reg := chameleon.New()
//
//	var view PersonView
//	if err := reg.Transform(&person, &view); err != nil {
//		return err
//	}
//
//	m, err := chameleon.To[map[string]any](reg, &person, chameleon.AdaptMismatch(true))
//
// Fields are read through Get<Name>/Is<Name>/<Name> methods or exported fields and
// written through Set<Name> methods or exported fields. Values are copied when
// assignable (numbers widen losslessly, pointers are taken or dereferenced) and
// stringified when the destination is a string. Nested structs, maps and slices of
// a different type are converted recursively only when AdaptMismatch is on.
package chameleon
