package analyze

import (
	"reflect"
	"runtime/debug"
	"strings"
	"sync"
)

// Base strips every pointer level from t.
func Base(t reflect.Type) reflect.Type {
	_, base := PtrDepthAndBase(t)

	return base
}

// PtrDepthAndBase returns the pointer depth and the final base type.
func PtrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base != nil && base.Kind() == reflect.Pointer {
		depth++
		base = base.Elem()
	}

	return
}

// IsStructLike reports whether t (or what it points to) is a struct.
func IsStructLike(t reflect.Type) bool {
	return t != nil && Base(t).Kind() == reflect.Struct
}

// IsMapLike reports whether t (or what it points to) is a string-keyed map.
func IsMapLike(t reflect.Type) bool {
	if t == nil {
		return false
	}

	t = Base(t)

	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// IsSequence reports whether t is a slice. Arrays are not sequences.
func IsSequence(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Slice
}

// IsStringLike reports whether t is a string kind, or a single pointer to one.
func IsStringLike(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.String
}

// IsUserDefined reports whether t names a structured type the mapper can recurse
// into: a struct, or a named string-keyed map, declared outside the standard library.
// Unnamed maps such as map[string]any are built-in.
func IsUserDefined(t reflect.Type) bool {
	if t == nil {
		return false
	}

	base := Base(t)
	switch {
	case base.Kind() == reflect.Struct:
		return !IsStdlib(base)
	case IsMapLike(base):
		return base.Name() != "" && !IsStdlib(base)
	default:
		return false
	}
}

// IsBuiltin is the complement of IsUserDefined.
func IsBuiltin(t reflect.Type) bool {
	return !IsUserDefined(t)
}

var (
	modulesOnce sync.Once
	modules     []string
)

func knownModules() []string {
	modulesOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}

		if info.Main.Path != "" {
			modules = append(modules, info.Main.Path)
		}

		for _, dep := range info.Deps {
			modules = append(modules, dep.Path)
		}
	})

	return modules
}

// IsStdlib reports whether t is declared in the standard library. A package path
// belongs to the standard library when its first element has no dot, it is not the
// main package, and it is not under any module of the running binary.
func IsStdlib(t reflect.Type) bool {
	pkg := t.PkgPath()
	if pkg == "" || pkg == "main" {
		return false
	}

	first, _, _ := strings.Cut(pkg, "/")
	if strings.Contains(first, ".") {
		return false
	}

	for _, mod := range knownModules() {
		if pkg == mod || strings.HasPrefix(pkg, mod+"/") {
			return false
		}
	}

	return true
}

// TypeString returns a short readable name for t, e.g. "person.Person" or "[]*Item".
func TypeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
