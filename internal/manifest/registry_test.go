package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"class-composer/class"
)

func TestRegistry_Strict(t *testing.T) {
	t.Parallel()

	reg := strictRegistry()

	assert.False(t, reg.Lenient())
	assert.Equal(t, []string{"echo"}, reg.MethodNames())
	assert.Equal(t, []string{"suppress"}, reg.DecoratorNames())
	assert.Equal(t, []string{"stamp"}, reg.TransformNames())

	_, ok := reg.Method("missing")
	assert.False(t, ok)

	_, ok = reg.Decorator("missing")
	assert.False(t, ok)

	_, ok = reg.Transform("missing")
	assert.False(t, ok)

	fn, ok := reg.Method("echo")
	require.True(t, ok)

	v, err := fn(&class.Call{}, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestRegistry_Lenient(t *testing.T) {
	t.Parallel()

	reg := NewLenientRegistry()
	assert.True(t, reg.Lenient())

	fn, ok := reg.Method("anything")
	require.True(t, ok)

	_, err := fn(&class.Call{Name: "anything"})
	require.ErrorIs(t, err, class.ErrAbstractCall)

	d, ok := reg.Decorator("shout")
	require.True(t, ok)
	assert.Equal(t, "shout", d.Name())

	again, _ := reg.Decorator("shout")
	assert.Same(t, d, again, "stand-ins are created once per name")
	assert.False(t, reg.HasDecorator("shout"))

	tr, ok := reg.Transform("tidy")
	require.True(t, ok)

	table := class.NewTable(nil)
	out, err := tr(table)
	require.NoError(t, err)
	assert.Nil(t, out)
}
