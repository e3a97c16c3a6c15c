package analyze

import "reflect"

const (
	getPrefix = "Get"
	isPrefix  = "Is"
	setPrefix = "Set"
)

// AccessorKind tells how an Accessor reaches its field.
type AccessorKind int

const (
	AccessorField  AccessorKind = iota // direct access to an exported field
	AccessorMethod                     // Get<Name>/Is<Name>/<Name> reader or Set<Name> writer
)

// String returns a human-readable accessor kind.
func (k AccessorKind) String() string {
	switch k {
	case AccessorField:
		return "field"
	case AccessorMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Accessor reads or writes one struct field. Readers report the type they return,
// writers the type they accept.
type Accessor struct {
	Kind   AccessorKind
	Name   string       // Field or method name
	Type   reflect.Type // Reader result type or writer parameter type
	index  []int
	method reflect.Method
	// recv is the embedding path to the struct the method is promoted from. Every
	// embedded pointer on it must be non-nil before the method is called.
	recv []int
}

// String returns a readable accessor signature.
func (a *Accessor) String() string {
	if a.Kind == AccessorMethod {
		return a.Name + "()"
	}

	return a.Name
}

// resolveReader finds the reader of sf on the struct whose pointer type is ptr. Methods
// come first: Get<Name>, then Is<Name> for bool fields, then <Name> for unexported
// fields (the usual Go getter), each returning exactly the declared type. Exported
// fields fall back to direct access.
func resolveReader(ptr reflect.Type, sf reflect.StructField, index []int) *Accessor {
	name := ExportedName(sf.Name)

	candidates := []string{getPrefix + name}
	if sf.Type.Kind() == reflect.Bool {
		candidates = append(candidates, isPrefix+name)
	}

	if !sf.IsExported() {
		candidates = append(candidates, name)
	}

	for _, candidate := range candidates {
		m, ok := ptr.MethodByName(candidate)
		if !ok || m.Type.NumIn() != 1 || m.Type.NumOut() != 1 || m.Type.Out(0) != sf.Type {
			continue
		}

		return &Accessor{
			Kind:   AccessorMethod,
			Name:   candidate,
			Type:   sf.Type,
			method: m,
			recv:   promotionPath(ptr.Elem(), index, candidate),
		}
	}

	if sf.IsExported() {
		return &Accessor{Kind: AccessorField, Name: sf.Name, Type: sf.Type, index: index}
	}

	return nil
}

// resolveWriter finds Set<Name> taking exactly the declared field type, falling back
// to direct access for exported fields.
func resolveWriter(ptr reflect.Type, sf reflect.StructField, index []int) *Accessor {
	candidate := setPrefix + ExportedName(sf.Name)

	if m, ok := ptr.MethodByName(candidate); ok && m.Type.NumIn() == 2 && m.Type.In(1) == sf.Type {
		return &Accessor{
			Kind:   AccessorMethod,
			Name:   candidate,
			Type:   sf.Type,
			method: m,
			recv:   promotionPath(ptr.Elem(), index, candidate),
		}
	}

	if sf.IsExported() {
		return &Accessor{Kind: AccessorField, Name: sf.Name, Type: sf.Type, index: index}
	}

	return nil
}

// promotionPath returns the prefix of index that leads to the deepest embedded struct
// on the way to the field whose pointer method set has method. A method found there
// is either declared by that struct or promoted through it.
func promotionPath(root reflect.Type, index []int, method string) []int {
	t, deepest := root, 0

	for i, x := range index[:len(index)-1] {
		t = Base(t.Field(x).Type)
		if _, ok := reflect.PointerTo(t).MethodByName(method); ok {
			deepest = i + 1
		}
	}

	return append([]int(nil), index[:deepest]...)
}

// reachable reports whether every embedded pointer on path is set, allocating nil
// ones when alloc is on and the pointer is settable.
func reachable(v reflect.Value, path []int, alloc bool) bool {
	for _, x := range path {
		v = v.Field(x)
		if v.Kind() != reflect.Pointer {
			continue
		}

		if v.IsNil() {
			if !alloc || !v.CanSet() {
				return false
			}

			v.Set(reflect.New(v.Type().Elem()))
		}

		v = v.Elem()
	}

	return true
}

// Read returns the field value of the addressable struct value v. The boolean is
// false when the field is unreachable, i.e. it sits behind a nil embedded pointer.
func (a *Accessor) Read(v reflect.Value) (reflect.Value, bool) {
	if a.Kind == AccessorMethod {
		if !reachable(v, a.recv, false) {
			return reflect.Value{}, false
		}

		return a.method.Func.Call([]reflect.Value{v.Addr()})[0], true
	}

	field, err := v.FieldByIndexErr(a.index)
	if err != nil {
		return reflect.Value{}, false
	}

	return field, true
}

// Write stores x (already of the accessor type) into the addressable struct value v,
// allocating nil embedded pointers on the way. It reports whether the value was stored.
func (a *Accessor) Write(v reflect.Value, x reflect.Value) bool {
	if a.Kind == AccessorMethod {
		if !reachable(v, a.recv, true) {
			return false
		}

		a.method.Func.Call([]reflect.Value{v.Addr(), x})

		return true
	}

	field, ok := fieldForWrite(v, a.index)
	if !ok || !field.CanSet() {
		return false
	}

	field.Set(x)

	return true
}

func fieldForWrite(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}

				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = v.Field(x)
	}

	return v, true
}
