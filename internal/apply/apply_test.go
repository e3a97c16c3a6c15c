package apply

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/plan"
)

type (
	inner struct {
		P string
	}

	innerView struct {
		P string
	}

	source struct {
		N      int32
		Count  int
		Name   *string
		Inner  *inner
		Items  []inner
		Labels []*int
	}

	dest struct {
		N      int64
		Count  string
		Name   *string
		Inner  *innerView
		Items  []innerView
		Labels []*string
	}
)

// converter derives and runs procedures without caching.
type converter struct {
	calls int
	fail  error
}

func (c *converter) Convert(src reflect.Value, to reflect.Type, flags Flags) (reflect.Value, error) {
	c.calls++

	if c.fail != nil {
		return reflect.Value{}, c.fail
	}

	p, err := plan.Build(src.Type(), to)
	if err != nil {
		return reflect.Value{}, err
	}

	in := reflect.New(analyze.Base(src.Type())).Elem()
	in.Set(reflect.Indirect(src))

	base := analyze.Base(to)

	var out reflect.Value
	if base.Kind() == reflect.Map {
		out = reflect.MakeMap(base)
	} else {
		out = reflect.New(base).Elem()
	}

	if err := Run(p, in, out, flags, c); err != nil {
		return reflect.Value{}, err
	}

	if to.Kind() == reflect.Pointer {
		return out.Addr(), nil
	}

	return out, nil
}

func run(t *testing.T, src, dst any, flags Flags, conv Converter) {
	t.Helper()

	sv := reflect.ValueOf(src).Elem()
	dv := reflect.ValueOf(dst)
	if dv.Kind() == reflect.Pointer {
		dv = dv.Elem()
	}

	p, err := plan.Build(sv.Type(), dv.Type())
	require.NoError(t, err)
	require.NoError(t, Run(p, sv, dv, flags, conv))
}

func ptr[T any](v T) *T {
	return &v
}

func sample() *source {
	return &source{
		N:      7,
		Count:  12,
		Name:   ptr("sirius"),
		Inner:  &inner{P: "x"},
		Items:  []inner{{P: "a"}, {P: "b"}},
		Labels: []*int{ptr(1), nil, ptr(3)},
	}
}

func TestRun_EntityToEntity(t *testing.T) {
	t.Run("Should copy and stringify without recursion by default", func(t *testing.T) {
		conv := &converter{}
		var d dest

		run(t, sample(), &d, Flags{}, conv)

		assert.Equal(t, int64(7), d.N)
		assert.Equal(t, "12", d.Count)
		require.NotNil(t, d.Name)
		assert.Equal(t, "sirius", *d.Name)
		assert.Nil(t, d.Inner)
		assert.Nil(t, d.Items)
		assert.Nil(t, d.Labels)
		assert.Zero(t, conv.calls)
	})

	t.Run("Should recurse when mismatch adaptation is on", func(t *testing.T) {
		conv := &converter{}
		var d dest

		run(t, sample(), &d, Flags{AdaptMismatch: true}, conv)

		want := dest{
			N:      7,
			Count:  "12",
			Name:   ptr("sirius"),
			Inner:  &innerView{P: "x"},
			Items:  []innerView{{P: "a"}, {P: "b"}},
			Labels: []*string{ptr("1"), nil, ptr("3")},
		}
		if diff := cmp.Diff(want, d); diff != "" {
			t.Errorf("Run() mismatch (-want +got):\n%s", diff)
		}

		assert.Equal(t, 3, conv.calls)
	})

	t.Run("Should write zero values for absent sources unless skipNull", func(t *testing.T) {
		d := dest{Name: ptr("keep"), Inner: &innerView{P: "keep"}}

		run(t, &source{}, &d, Flags{AdaptMismatch: true, SkipNull: true}, &converter{})
		assert.Equal(t, "keep", *d.Name)
		assert.Equal(t, "keep", d.Inner.P)

		run(t, &source{}, &d, Flags{AdaptMismatch: true}, &converter{})
		assert.Nil(t, d.Name)
		assert.Equal(t, "keep", d.Inner.P, "recursion rules never write absent values")
	})

	t.Run("Should propagate conversion errors", func(t *testing.T) {
		boom := errors.New("boom")
		p, err := plan.Build(reflect.TypeFor[source](), reflect.TypeFor[dest]())
		require.NoError(t, err)

		var d dest
		err = Run(p, reflect.ValueOf(sample()).Elem(), reflect.ValueOf(&d).Elem(), Flags{AdaptMismatch: true}, &converter{fail: boom})
		require.ErrorIs(t, err, boom)
	})
}

func TestRun_EntityToMap(t *testing.T) {
	m := map[string]any{}

	run(t, sample(), m, Flags{AdaptMismatch: true}, &converter{})

	assert.Equal(t, int32(7), m["N"])
	assert.Equal(t, 12, m["Count"])
	assert.Equal(t, "sirius", *m["Name"].(*string))
	assert.Equal(t, map[string]any{"P": "x"}, m["Inner"])
	assert.Equal(t, []map[string]any{{"P": "a"}, {"P": "b"}}, m["Items"])
	assert.Equal(t, []*int{ptr(1), nil, ptr(3)}, m["Labels"])
}

func TestRun_MapToEntity(t *testing.T) {
	t.Run("Should convert nested maps and check entry types", func(t *testing.T) {
		m := map[string]any{
			"N":      int32(5),
			"Count":  99,
			"Name":   "vega",
			"Inner":  map[string]any{"P": "y"},
			"Items":  []any{map[string]any{"P": "c"}, nil},
			"Labels": []any{"a", 2},
		}
		var d dest

		run(t, &m, &d, Flags{AdaptMismatch: true}, &converter{})

		want := dest{
			N:      5,
			Count:  "99",
			Name:   ptr("vega"),
			Inner:  &innerView{P: "y"},
			Items:  []innerView{{P: "c"}, {}},
			Labels: []*string{ptr("a"), ptr("2")},
		}
		if diff := cmp.Diff(want, d); diff != "" {
			t.Errorf("Run() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Should skip entries of an incompatible type", func(t *testing.T) {
		m := map[string]any{"N": "not a number"}
		d := dest{N: 3}

		run(t, &m, &d, Flags{SkipNull: true}, &converter{})

		assert.Equal(t, int64(3), d.N)
	})

	t.Run("Should keep destination fields of missing entries", func(t *testing.T) {
		m := map[string]any{}
		d := dest{N: 3, Count: "x", Name: ptr("kept")}

		run(t, &m, &d, Flags{}, &converter{})

		assert.Equal(t, int64(3), d.N)
		assert.Equal(t, "x", d.Count)
		assert.Equal(t, ptr("kept"), d.Name)
	})

	t.Run("Should keep destination fields of nil entries", func(t *testing.T) {
		m := map[string]any{"N": nil, "Count": nil, "Inner": nil}
		d := dest{N: 3, Count: "x", Inner: &innerView{P: "in"}}

		run(t, &m, &d, Flags{AdaptMismatch: true}, &converter{})

		assert.Equal(t, int64(3), d.N)
		assert.Equal(t, "x", d.Count)
		assert.Equal(t, &innerView{P: "in"}, d.Inner)
	})
}
