package chameleon_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzin/chameleon"
)

var joined = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func newPerson() *Person {
	p := &Person{
		Tags:     []string{"math", "engines"},
		Address:  &Address{City: "London", Zip: 12345},
		JoinedAt: joined,
	}
	p.SetName(ptr("Ada"))
	p.SetAge(36)
	p.SetActive(true)

	return p
}

func TestTransform(t *testing.T) {
	t.Run("Should copy matching fields through accessors", func(t *testing.T) {
		c := chameleon.New()

		var view PersonView
		require.NoError(t, c.Transform(newPerson(), &view))

		require.NotNil(t, view.Name)
		assert.Equal(t, "Ada", *view.Name)
		assert.Equal(t, int64(36), view.Age)
		assert.True(t, view.Active)
		assert.Equal(t, []string{"math", "engines"}, view.Tags)
		assert.Equal(t, joined, view.JoinedAt)
		assert.Nil(t, view.Address, "nested recursion is off by default")
	})

	t.Run("Should write back through setters", func(t *testing.T) {
		c := chameleon.New()

		var p Person
		require.NoError(t, c.Transform(&PersonView{Name: ptr("Grace"), Age: 85, Active: true}, &p))

		require.NotNil(t, p.GetName())
		assert.Equal(t, "Grace", *p.GetName())
		assert.True(t, p.IsActive())
		assert.Zero(t, p.GetAge(), "int64 does not narrow to int")
	})

	t.Run("Should leave unmatched destination fields untouched", func(t *testing.T) {
		c := chameleon.New()

		b := B{X: 1, Y: 5}
		require.NoError(t, c.Transform(&A{X: 7}, &b))
		assert.Equal(t, B{X: 7, Y: 5}, b)

		var a A
		require.NoError(t, c.Transform(&b, &a))
		assert.Equal(t, A{X: 7}, a)
	})

	t.Run("Should stringify numbers into string fields", func(t *testing.T) {
		c := chameleon.New()

		var out CounterText
		require.NoError(t, c.Transform(&Counter{N: 42}, &out))
		assert.Equal(t, "42", out.N)

		back := Counter{N: 9}
		require.NoError(t, c.Transform(&out, &back))
		assert.Equal(t, 9, back.N, "strings are never parsed")
	})

	t.Run("Should recurse into nested values only when adapting mismatches", func(t *testing.T) {
		c := chameleon.New()
		src := &Outer{Inner: AInner{P: "in"}, List: []AInner{{P: "a"}, {P: "b"}}}

		var off OuterView
		require.NoError(t, c.Transform(src, &off))
		assert.Nil(t, off.Inner)
		assert.Nil(t, off.List)

		var on OuterView
		require.NoError(t, c.Transform(src, &on, chameleon.AdaptMismatch(true)))
		require.NotNil(t, on.Inner)
		assert.Equal(t, "in", on.Inner.P)
		assert.Equal(t, []BInner{{P: "a"}, {P: "b"}}, on.List)

		_, ok := c.Environment(reflect.TypeFor[AInner](), reflect.TypeFor[BInner]())
		assert.True(t, ok, "nested pairs are cached too")
	})

	t.Run("Should keep absent nested values out of recursion", func(t *testing.T) {
		c := chameleon.New()

		out := Outer{Inner: AInner{P: "old"}}
		require.NoError(t, c.Transform(&OuterView{}, &out, chameleon.AdaptMismatch(true)))
		assert.Equal(t, "old", out.Inner.P)
	})

	t.Run("Should write zero values for absent sources unless skipping nulls", func(t *testing.T) {
		c := chameleon.New()

		view := PersonView{Name: ptr("kept"), Tags: []string{"kept"}}
		require.NoError(t, c.Transform(&Person{}, &view, chameleon.SkipNull(true)))
		require.NotNil(t, view.Name)
		assert.Equal(t, "kept", *view.Name)
		assert.Equal(t, []string{"kept"}, view.Tags)

		require.NoError(t, c.Transform(&Person{}, &view))
		assert.Nil(t, view.Name)
		assert.Nil(t, view.Tags)
	})

	t.Run("Should pass over promoted accessors behind nil embedded pointers", func(t *testing.T) {
		c := chameleon.New()

		var skipped TaggedView
		assert.NotPanics(t, func() {
			require.NoError(t, c.Transform(&Tagged{Name: "x"}, &skipped, chameleon.SkipNull(true)))
		})
		assert.Equal(t, "x", skipped.Name)
		assert.Nil(t, skipped.Meta)

		var zeroed TaggedView
		assert.NotPanics(t, func() {
			require.NoError(t, c.Transform(&Tagged{Name: "y"}, &zeroed))
		})
		assert.Equal(t, "y", zeroed.Name)
		require.NotNil(t, zeroed.Meta, "the setter target is allocated")
		assert.Empty(t, zeroed.GetNote())

		var copied TaggedView
		require.NoError(t, c.Transform(&Tagged{Meta: &Meta{note: "n"}, Name: "z"}, &copied))
		require.NotNil(t, copied.Meta)
		assert.Equal(t, "n", copied.GetNote())
	})

	t.Run("Should treat nil arguments as no-ops", func(t *testing.T) {
		c := chameleon.New()

		var out B
		require.NoError(t, c.Transform(nil, &out))
		require.NoError(t, c.Transform((*A)(nil), &out))
		require.NoError(t, c.Transform(&A{X: 1}, nil))
		require.NoError(t, c.Transform(&A{X: 1}, (*B)(nil)))
		assert.Equal(t, B{}, out)
		assert.Equal(t, int64(0), c.Stats().Derivations)
	})

	t.Run("Should allocate nested destination pointers", func(t *testing.T) {
		c := chameleon.New()

		var out *B
		require.NoError(t, c.Transform(&A{X: 3}, &out))
		require.NotNil(t, out)
		assert.Equal(t, 3, out.X)
	})

	t.Run("Should reject destinations that are not pointers", func(t *testing.T) {
		c := chameleon.New()

		err := c.Transform(&A{X: 1}, B{})
		assert.ErrorIs(t, err, chameleon.ErrInstantiation)
	})
}

func TestTransformMaps(t *testing.T) {
	t.Run("Should flatten an entity into a map", func(t *testing.T) {
		c := chameleon.New()

		m := map[string]any{}
		require.NoError(t, c.Transform(newPerson(), m, chameleon.AdaptMismatch(true)))

		want := map[string]any{
			"Name":     ptr("Ada"),
			"Age":      36,
			"Active":   true,
			"Tags":     []string{"math", "engines"},
			"Address":  map[string]any{"City": "London", "Zip": int32(12345)},
			"JoinedAt": joined,
		}
		assert.Empty(t, cmp.Diff(want, m))
	})

	t.Run("Should round trip through a map", func(t *testing.T) {
		c := chameleon.New()
		src := newPerson()

		m, err := chameleon.To[map[string]any](c, src, chameleon.AdaptMismatch(true))
		require.NoError(t, err)

		back, err := chameleon.To[*Person](c, m, chameleon.AdaptMismatch(true))
		require.NoError(t, err)

		assert.Empty(t, cmp.Diff(src, back, cmp.AllowUnexported(Person{})))
	})

	t.Run("Should fill an entity from loosely typed entries", func(t *testing.T) {
		c := chameleon.New()

		m := map[string]any{
			"Name":    "Linus",
			"Age":     int32(54),
			"Tags":    []any{"kernel", 7},
			"Address": map[string]any{"City": "Portland", "Zip": 97201},
			"Active":  "yes",
		}

		view, err := chameleon.To[PersonView](c, m, chameleon.AdaptMismatch(true))
		require.NoError(t, err)

		require.NotNil(t, view.Name)
		assert.Equal(t, "Linus", *view.Name)
		assert.Equal(t, int64(54), view.Age)
		assert.Equal(t, []string{"kernel", "7"}, view.Tags)
		assert.Equal(t, &AddressView{City: "Portland", Zip: "97201"}, view.Address)
		assert.False(t, view.Active, "an incompatible entry is skipped")
	})

	t.Run("Should keep destination fields that the map lacks", func(t *testing.T) {
		c := chameleon.New()

		b := B{X: 1, Y: 5}
		require.NoError(t, c.Transform(map[string]any{"X": 7}, &b))
		assert.Equal(t, B{X: 7, Y: 5}, b)

		require.NoError(t, c.Transform(map[string]any{"X": nil, "Y": 6}, &b))
		assert.Equal(t, B{X: 7, Y: 6}, b, "a nil entry is passed over")

		p := newPerson()
		require.NoError(t, c.Transform(map[string]any{"Age": 40}, p))
		require.NotNil(t, p.GetName())
		assert.Equal(t, "Ada", *p.GetName(), "string targets are kept too")
		assert.Equal(t, 40, p.GetAge())
		assert.True(t, p.IsActive())
		assert.Equal(t, joined, p.JoinedAt)
		assert.Equal(t, []string{"math", "engines"}, p.Tags)
	})

	t.Run("Should write into a nil map behind a pointer", func(t *testing.T) {
		c := chameleon.New()

		var m map[string]any
		require.NoError(t, c.Transform(&Counter{N: 1}, &m))
		assert.Equal(t, map[string]any{"N": 1}, m)
	})
}

func TestTransformTo(t *testing.T) {
	t.Run("Should create the destination value", func(t *testing.T) {
		c := chameleon.New()

		v, err := c.TransformTo(&Counter{N: 8}, reflect.TypeFor[*CounterText]())
		require.NoError(t, err)
		assert.Equal(t, &CounterText{N: "8"}, v)

		out, err := chameleon.To[CounterText](c, Counter{N: 9})
		require.NoError(t, err)
		assert.Equal(t, CounterText{N: "9"}, out)
	})

	t.Run("Should return a zero instance for a nil source", func(t *testing.T) {
		c := chameleon.New()

		out, err := chameleon.To[*CounterText](c, nil)
		require.NoError(t, err)
		assert.Equal(t, &CounterText{}, out)
	})

	t.Run("Should refuse destinations it cannot instantiate", func(t *testing.T) {
		c := chameleon.New()

		_, err := c.TransformTo(&Counter{N: 1}, reflect.TypeFor[int]())
		assert.ErrorIs(t, err, chameleon.ErrInstantiation)

		_, err = c.TransformTo(&Counter{N: 1}, reflect.TypeFor[any]())
		assert.ErrorIs(t, err, chameleon.ErrInstantiation)

		_, err = c.TransformTo(&Counter{N: 1}, nil)
		assert.ErrorIs(t, err, chameleon.ErrInstantiation)
	})

	t.Run("Should report derivation failures", func(t *testing.T) {
		c := chameleon.New()

		_, err := chameleon.To[map[string]string](c, map[string]any{"a": 1})
		assert.ErrorIs(t, err, chameleon.ErrUnsupportedPair)
	})
}

func TestTransformSlice(t *testing.T) {
	t.Run("Should convert every element in order with one derivation", func(t *testing.T) {
		c := chameleon.New()

		out, err := chameleon.ToSlice[CounterText](c, []Counter{{N: 1}, {N: 2}, {N: 3}})
		require.NoError(t, err)
		assert.Equal(t, []CounterText{{N: "1"}, {N: "2"}, {N: "3"}}, out)
		assert.Equal(t, int64(1), c.Stats().Derivations)
	})

	t.Run("Should yield zero instances for nil elements", func(t *testing.T) {
		c := chameleon.New()

		out, err := chameleon.ToSlice[*CounterText](c, []*Counter{nil, {N: 2}, nil})
		require.NoError(t, err)
		assert.Equal(t, []*CounterText{{}, {N: "2"}, {}}, out)
	})

	t.Run("Should return an empty slice for an absent input", func(t *testing.T) {
		c := chameleon.New()

		out, err := chameleon.ToSlice[CounterText](c, nil)
		require.NoError(t, err)
		assert.Empty(t, out)

		out, err = chameleon.ToSlice[CounterText](c, []Counter{})
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Should stop at an element of another type", func(t *testing.T) {
		c := chameleon.New()

		out, err := chameleon.ToSlice[CounterText](c, []any{Counter{N: 1}, &Counter{N: 2}, A{X: 3}, Counter{N: 4}})
		require.ErrorIs(t, err, chameleon.ErrElementType)
		assert.Equal(t, []CounterText{{N: "1"}, {N: "2"}}, out)
	})

	t.Run("Should reject inputs that are not slices", func(t *testing.T) {
		c := chameleon.New()

		_, err := c.TransformSlice(Counter{N: 1}, reflect.TypeFor[CounterText]())
		assert.ErrorIs(t, err, chameleon.ErrUnsupportedType)
	})

	t.Run("Should accept a pointer to a slice", func(t *testing.T) {
		c := chameleon.New()
		src := []Counter{{N: 5}}

		v, err := c.TransformSlice(&src, reflect.TypeFor[map[string]any]())
		require.NoError(t, err)
		assert.Equal(t, []map[string]any{{"N": 5}}, v)
	})
}
