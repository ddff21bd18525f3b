package class_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"class-composer/class"
)

func TestInstanceFields(t *testing.T) {
	t.Parallel()

	A := mustClass(t, class.Spec{Members: class.Members{"f": 1, "m": returns(1)}})
	a := mustNew(t, A)

	assert.Same(t, A, a.Class())
	assert.Empty(t, a.Fields())
	assert.Equal(t, 1, field(t, a, "f"))

	a.Set("f", 2)
	assert.Equal(t, 2, field(t, a, "f"), "fields shadow class members")

	v, _ := A.Table().Get("f")
	assert.Equal(t, 1, v)

	fields := a.Fields()
	fields["f"] = 3
	assert.Equal(t, map[string]any{"f": 2}, a.Fields(), spew.Sdump(a.Fields()))
}

func TestInstanceCallErrors(t *testing.T) {
	t.Parallel()

	A := mustClass(t, class.Spec{Name: "A", Members: class.Members{"f": 1}})
	a := mustNew(t, A)

	_, err := a.Call("missing")
	require.ErrorIs(t, err, class.ErrUnknownMember)
	assert.EqualError(t, err, "A.missing: unknown member")

	_, err = a.Call("f")
	require.ErrorIs(t, err, class.ErrNotCallable)

	_, err = a.New("f")
	require.ErrorIs(t, err, class.ErrNotCallable)

	_, err = a.New("missing")
	require.ErrorIs(t, err, class.ErrUnknownMember)
}

func TestInstanceFieldMethod(t *testing.T) {
	t.Parallel()

	A := mustClass(t, class.Spec{})
	a := mustNew(t, A)
	a.Set("hook", class.Func(echo))

	assert.Equal(t, "x", call(t, a, "hook", "x"))
}

func TestConcurrentSuperChains(t *testing.T) {
	t.Parallel()

	A := mustClass(t, class.Spec{Members: class.Members{
		"m": func(c *class.Call, args ...any) (any, error) {
			return fmt.Sprintf("A(%v)", args[0]), nil
		},
	}})
	B := mustClass(t, class.Spec{Base: []class.Layer{A}, Members: class.Members{"m": suffix("B")}})
	C := mustClass(t, class.Spec{Base: []class.Layer{B}, Members: class.Members{"m": suffix("C")}})

	shared := mustNew(t, C)

	const workers = 16

	var wg sync.WaitGroup

	results := make([]any, workers)
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			target := shared
			if i%2 == 1 {
				own, err := C.New()
				if err != nil {
					errs[i] = err
					return
				}

				target = own
			}

			target.Set(fmt.Sprintf("seen%d", i), true)
			results[i], errs[i] = target.Call("m", i)
		}()
	}

	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("A(%d)BC", i), results[i])
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	cases := map[class.Kind]string{
		class.KindClass:     "KindClass",
		class.KindTrait:     "KindTrait",
		class.KindDecorator: "KindDecorator",
		class.KindTransform: "KindTransform",
		class.Kind(0):       "Kind(0)",
	}

	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}

	assert.Equal(t, 5, class.KindTotal)
}
