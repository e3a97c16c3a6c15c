// Package pair describes which types should be adapted to each other ahead of time.
//
// A Pair names a main type and the types related to it. Selectors hand pairs to the
// registry's bulk registration; how they discover them (struct tags, a config file, a
// hand-written list) is up to the caller.
package pair

import (
	"context"
	"reflect"
)

// Pair relates a main type to one or more other types.
type Pair interface {
	Main() reflect.Type
	Related() []reflect.Type
}

type one struct {
	main, other reflect.Type
}

func (p one) Main() reflect.Type {
	return p.main
}

func (p one) Related() []reflect.Type {
	return []reflect.Type{p.other}
}

func (p one) String() string {
	return p.main.String() + "<->" + p.other.String()
}

// One relates main to exactly one other type.
func One(main, other reflect.Type) Pair {
	return one{main: main, other: other}
}

// Of is One for static types.
func Of[A, B any]() Pair {
	return One(reflect.TypeFor[A](), reflect.TypeFor[B]())
}

type multi struct {
	main    reflect.Type
	related []reflect.Type
}

func (p multi) Main() reflect.Type {
	return p.main
}

func (p multi) Related() []reflect.Type {
	return p.related
}

// Multi relates main to every type in related.
func Multi(main reflect.Type, related ...reflect.Type) Pair {
	return multi{main: main, related: append([]reflect.Type(nil), related...)}
}

// Selector supplies pairs for bulk registration.
type Selector interface {
	Select(ctx context.Context) ([]Pair, error)
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(ctx context.Context) ([]Pair, error)

func (f SelectorFunc) Select(ctx context.Context) ([]Pair, error) {
	return f(ctx)
}

// Static returns a selector that always yields pairs.
func Static(pairs ...Pair) Selector {
	pairs = append([]Pair(nil), pairs...)

	return SelectorFunc(func(context.Context) ([]Pair, error) {
		return pairs, nil
	})
}
