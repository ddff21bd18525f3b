package class_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"class-composer/class"
)

func mixedBase(t *testing.T) (*class.Class, *class.Trait) {
	t.Helper()

	A := mustClass(t, class.Spec{
		Name: "A",
		Constructor: func(c *class.Call, _ ...any) (any, error) {
			c.Self.Set("f", 1)
			return nil, nil
		},
		Members: class.Members{"m": echo},
	})

	T := mustTrait(t, class.Spec{
		Name: "T",
		Members: class.Members{
			"tm": returns("mix"),
			"m":  suffix(" mixed"),
		},
	})

	return A, T
}

func TestApplyTraitToBaseClass(t *testing.T) {
	t.Parallel()

	A, T := mixedBase(t)

	applied, err := T.Apply(A)
	require.NoError(t, err)

	decorated, err := A.Decorate(T)
	require.NoError(t, err)

	inherited := mustClass(t, class.Spec{
		Base:    []class.Layer{A, T},
		Members: class.Members{"m": suffix(" in B")},
	})

	cases := []struct {
		name string
		cls  *class.Class
		want string
	}{
		{name: "trait applied to class", cls: applied.(*class.Class), want: "x mixed"},
		{name: "class decorated with trait", cls: decorated, want: "x mixed"},
		{name: "trait in base list", cls: inherited, want: "x mixed in B"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := mustNew(t, tc.cls)
			assert.Equal(t, 1, field(t, b, "f"))
			assert.Equal(t, "mix", call(t, b, "tm"))
			assert.Equal(t, tc.want, call(t, b, "m", "x"))
			assert.True(t, tc.cls.Composes(A))
			assert.True(t, tc.cls.Composes(T))
		})
	}
}

func TestStackedTraitsCallSuperTwice(t *testing.T) {
	t.Parallel()

	A, T := mixedBase(t)

	T2 := mustTrait(t, class.Spec{Members: class.Members{
		"tm": func(c *class.Call, _ ...any) (any, error) {
			first, err := c.Super()
			if err != nil {
				return nil, err
			}

			second, err := c.Super()
			if err != nil {
				return nil, err
			}

			return first.(string) + second.(string), nil
		},
	}})

	B, err := A.Decorate(T, T2)
	require.NoError(t, err)
	assert.Equal(t, "mixmix", call(t, mustNew(t, B), "tm"))
}

func TestTraitAsClassDecorator(t *testing.T) {
	t.Parallel()

	_, T := mixedBase(t)

	A := mustClass(t, class.Spec{
		Decorators: []class.Layer{T},
		Members:    class.Members{"m": echo},
	})

	a := mustNew(t, A)
	assert.Equal(t, "v mixed", call(t, a, "m", "v"))
	assert.Equal(t, "mix", call(t, a, "tm"))
	assert.Same(t, A, A.Table().Constructor())
}

func TestTraitInTrait(t *testing.T) {
	t.Parallel()

	trait1 := mustTrait(t, class.Spec{Name: "trait1", Members: class.Members{
		"bar": true,
		"foo": returns(1),
	}})

	trait2 := mustTrait(t, class.Spec{
		Name: "trait2",
		Base: []class.Layer{trait1},
		Members: class.Members{
			"bar": false,
			"foo": double,
		},
	})

	direct := mustClass(t, class.Spec{
		Base:    []class.Layer{trait2},
		Members: class.Members{"foo": double},
	})

	bar, ok := direct.Table().Get("bar")
	require.True(t, ok)
	assert.Equal(t, false, bar)
	assert.Equal(t, 4, call(t, mustNew(t, direct), "foo"))

	applied, err := trait2.Apply(trait1)
	require.NoError(t, err)

	oneThenTwo, err := trait1.Decorate(trait2)
	require.NoError(t, err)

	twoThenOne, err := trait2.Decorate(trait1)
	require.NoError(t, err)

	cases := []struct {
		name  string
		trait *class.Trait
		want  int
	}{
		{name: "trait2 applied to trait1", trait: applied.(*class.Trait), want: 2},
		{name: "trait1 decorated with trait2", trait: oneThenTwo, want: 2},
		{name: "trait2 decorated with trait1", trait: twoThenOne, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cls := mustClass(t, class.Spec{Base: []class.Layer{tc.trait}})
			assert.Equal(t, tc.want, call(t, mustNew(t, cls), "foo"))
		})
	}
}

func TestApplyTraitToTable(t *testing.T) {
	t.Parallel()

	_, T := mixedBase(t)

	base := class.NewTable(nil)
	base.Set("m", echo)

	out, err := T.ApplyTable(base)
	require.NoError(t, err)

	assert.True(t, out.Sealed())
	assert.False(t, base.Sealed())
	assert.Same(t, base, out.Parent())
	assert.Equal(t, T.ID(), out.Origin("m"))
	assert.Equal(t, T.ID(), out.Origin("tm"))
	assert.True(t, out.Composes(T.ID()))

	fn, ok := out.Method("m")
	require.True(t, ok)

	v, err := fn(&class.Call{Name: "m"}, "q")
	require.NoError(t, err)
	assert.Equal(t, "q mixed", v)
}

func TestApplyTraitToInstance(t *testing.T) {
	t.Parallel()

	A, T := mixedBase(t)

	a := mustNew(t, A)
	a.Set("g", 2)

	v, err := T.Apply(a)
	require.NoError(t, err)

	extended := v.(*class.Instance)
	assert.NotSame(t, a, extended)
	assert.Equal(t, 1, field(t, extended, "f"))
	assert.Equal(t, 2, field(t, extended, "g"))
	assert.Equal(t, "x mixed", call(t, extended, "m", "x"))
	assert.True(t, extended.Is(T))
	assert.False(t, a.Is(T))

	_, err = T.Apply(extended)
	require.ErrorIs(t, err, class.ErrConfiguration)

	own := mustClass(t, class.Spec{Base: []class.Layer{T}})
	_, err = T.Apply(mustNew(t, own))
	require.ErrorIs(t, err, class.ErrConfiguration)
}

func TestApplyTraitToUnsupported(t *testing.T) {
	t.Parallel()

	_, T := mixedBase(t)

	_, err := T.Apply(42)
	require.ErrorIs(t, err, class.ErrConfiguration)
}

func TestDefineTraitErrors(t *testing.T) {
	t.Parallel()

	A := mustClass(t, class.Spec{Name: "A"})

	cases := map[string]class.Spec{
		"constructor field":  {Constructor: returns(nil)},
		"constructor member": {Members: class.Members{class.ConstructorName: returns(nil)}},
		"class base":         {Base: []class.Layer{A}},
		"nil base":           {Base: []class.Layer{nil}},
	}

	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := class.DefineTrait(spec)

			var cfgErr *class.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "anonymous trait", cfgErr.Subject)
		})
	}
}

func TestTraitKeepsTargetConstructor(t *testing.T) {
	t.Parallel()

	A, T := mixedBase(t)

	B, err := A.Decorate(T)
	require.NoError(t, err)

	assert.Same(t, B, B.Table().Constructor())
	assert.Equal(t, 1, field(t, mustNew(t, B), "f"), "constructor is forwarded to A")
}

func TestTraitAccessors(t *testing.T) {
	t.Parallel()

	_, T := mixedBase(t)

	members := T.Members()
	members["extra"] = 1

	assert.NotContains(t, T.Members(), "extra")
	assert.Equal(t, []string{"m", "tm"}, T.Members().Names())
	assert.Empty(t, T.Base())
	assert.Equal(t, class.KindTrait, T.Kind())
	assert.Equal(t, "T", T.String())

	anon := mustTrait(t, class.Spec{})
	assert.Regexp(t, `^trait#[0-9a-f]{8}$`, anon.String())
}
