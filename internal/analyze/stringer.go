package analyze

import (
	"reflect"
	"strings"
)

// TypePath builds a readable path string for a field.
// Examples:
//   - "Order" for a root type
//   - "Order.Items" for a field
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// RootPath creates a TypePath rooted at the short name of t.
func RootPath(t reflect.Type) *TypePath {
	t = Base(t)
	if t == nil {
		return NewTypePath("<nil>")
	}

	if t.Name() != "" {
		return NewTypePath(t.Name())
	}

	return NewTypePath(t.String())
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}
