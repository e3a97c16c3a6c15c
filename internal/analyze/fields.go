package analyze

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// FieldInfo describes one mappable field of a struct type.
type FieldInfo struct {
	Name     string       // Matching key: the field name with its first letter upper-cased
	Type     reflect.Type // Declared type
	Index    []int        // Index path from the root struct (through embedded structs)
	Sequence bool         // Whether the declared type is a slice
	ElemType reflect.Type // Element type when Sequence is set
	Reader   *Accessor    // nil when the field cannot be read
	Writer   *Accessor    // nil when the field cannot be written
}

// Readable reports whether the field has a reader.
func (f *FieldInfo) Readable() bool {
	return f.Reader != nil
}

// Writable reports whether the field has a writer.
func (f *FieldInfo) Writable() bool {
	return f.Writer != nil
}

// ExportedName returns name with its first letter upper-cased.
func ExportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

type embedded struct {
	typ   reflect.Type
	index []int
}

// Fields enumerates the fields of a struct type t (pointers are stripped) in
// declaration order, descending into embedded structs breadth-first. A name seen at a
// shallower depth shadows the same name deeper down; among fields at the same depth
// the first declared wins. Every field has its reader and writer resolved; fields with
// neither are dropped.
func Fields(t reflect.Type) []FieldInfo {
	t = Base(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	ptr := reflect.PointerTo(t)
	seen := make(map[string]bool)
	visited := map[reflect.Type]bool{t: true}
	queue := []embedded{{typ: t}}

	var fields []FieldInfo

	for len(queue) > 0 {
		level := queue
		queue = nil

		var found []FieldInfo

		for _, e := range level {
			for i := range e.typ.NumField() {
				sf := e.typ.Field(i)
				index := append(append([]int(nil), e.index...), i)

				if sf.Anonymous {
					if inner := Base(sf.Type); inner.Kind() == reflect.Struct && !IsStdlib(inner) {
						if !visited[inner] {
							visited[inner] = true
							queue = append(queue, embedded{typ: inner, index: index})
						}

						continue
					}
				}

				name := ExportedName(sf.Name)
				if seen[name] {
					continue
				}

				seen[name] = true

				field := FieldInfo{Name: name, Type: sf.Type, Index: index}
				if IsSequence(sf.Type) {
					field.Sequence = true
					field.ElemType = sf.Type.Elem()
				}

				field.Reader = resolveReader(ptr, sf, index)
				field.Writer = resolveWriter(ptr, sf, index)

				if field.Reader == nil && field.Writer == nil {
					continue
				}

				found = append(found, field)
			}
		}

		fields = append(fields, found...)
	}

	return fields
}

// ByName indexes fields by their matching key.
func ByName(fields []FieldInfo) map[string]*FieldInfo {
	out := make(map[string]*FieldInfo, len(fields))
	for i := range fields {
		out[fields[i].Name] = &fields[i]
	}

	return out
}
