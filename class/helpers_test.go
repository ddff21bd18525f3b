package class_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"class-composer/class"
)

func mustClass(t *testing.T, spec class.Spec) *class.Class {
	t.Helper()

	c, err := class.DefineClass(spec)
	require.NoError(t, err)

	return c
}

func mustTrait(t *testing.T, spec class.Spec) *class.Trait {
	t.Helper()

	tr, err := class.DefineTrait(spec)
	require.NoError(t, err)

	return tr
}

func mustNew(t *testing.T, c *class.Class, args ...any) *class.Instance {
	t.Helper()

	inst, err := c.New(args...)
	require.NoError(t, err)

	return inst
}

func call(t *testing.T, inst *class.Instance, name string, args ...any) any {
	t.Helper()

	v, err := inst.Call(name, args...)
	require.NoError(t, err)

	return v
}

func field(t *testing.T, inst *class.Instance, name string) any {
	t.Helper()

	v, ok := inst.Get(name)
	require.True(t, ok, "field %q is missing", name)

	return v
}

// returns builds a method that returns v.
func returns(v any) class.Func {
	return func(*class.Call, ...any) (any, error) {
		return v, nil
	}
}

// echo returns its first argument.
func echo(_ *class.Call, args ...any) (any, error) {
	return args[0], nil
}

// suffix builds a method returning the shadowed result followed by s.
func suffix(s string) class.Func {
	return func(c *class.Call, args ...any) (any, error) {
		v, err := c.Super(args...)
		if err != nil {
			return nil, err
		}

		return v.(string) + s, nil
	}
}

// double builds a method returning twice the shadowed integer result.
func double(c *class.Call, args ...any) (any, error) {
	v, err := c.Super(args...)
	if err != nil {
		return nil, err
	}

	return v.(int) * 2, nil
}
