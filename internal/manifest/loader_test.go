package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *File {
	t.Helper()

	f, err := Parse([]byte(src))
	require.NoError(t, err)

	return f
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	f := parse(t, `
proxies:
  - name: AProxy
    of: A
  - name: BProxy
    methods: m
    field: _b
`)

	assert.Equal(t, CurrentVersion, f.Version)
	require.Len(t, f.Proxies, 2)
	assert.Equal(t, "_real", f.Proxies[0].Field)
	assert.Equal(t, "_b", f.Proxies[1].Field)
	assert.Equal(t, StringOrArray{"m"}, f.Proxies[1].Methods)
}

func TestParse_Members(t *testing.T) {
	t.Parallel()

	f := parse(t, `
classes:
  - name: A
    base: Base
    constructor: aInit
    members:
      f: 1
      label: text
      config: {method: x, other: y}
      wrapped: {value: {method: x}}
      m: {method: aM}
      area: {abstract: true}
      N:
        class:
          base: [Mix]
          members:
            m: {method: nM}
    member_decorators:
      m: quiet
      area: [quiet, loud]
`)

	require.Len(t, f.Classes, 1)
	c := f.Classes[0]

	assert.Equal(t, StringOrArray{"Base"}, c.Base)
	assert.Equal(t, "aInit", c.Constructor)

	assert.Equal(t, MemberDef{Kind: MemberData, Value: 1}, c.Members["f"])
	assert.Equal(t, MemberDef{Kind: MemberData, Value: "text"}, c.Members["label"])
	assert.Equal(t, MemberData, c.Members["config"].Kind, "a mapping with more than one key is data")
	assert.Equal(t, MemberDef{Kind: MemberData, Value: map[string]any{"method": "x"}}, c.Members["wrapped"])
	assert.Equal(t, MemberDef{Kind: MemberMethod, Method: "aM"}, c.Members["m"])
	assert.Equal(t, MemberDef{Kind: MemberAbstract}, c.Members["area"])

	nested := c.Members["N"]
	require.Equal(t, MemberClass, nested.Kind)
	require.NotNil(t, nested.Class)
	assert.Equal(t, StringOrArray{"Mix"}, nested.Class.Base)
	assert.Equal(t, "nM", nested.Class.Members["m"].Method)

	assert.Equal(t, StringOrArray{"quiet"}, c.MemberDecorators["m"])
	assert.Equal(t, StringOrArray{"quiet", "loud"}, c.MemberDecorators["area"])
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"invalid yaml":      "classes: [",
		"abstract false":    "classes:\n  - name: A\n    members:\n      m: {abstract: false}\n",
		"method not string": "classes:\n  - name: A\n    members:\n      m: {method: [a, b]}\n",
		"base mapping":      "classes:\n  - name: A\n    base: {a: b}\n",
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to parse manifest YAML")
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	f := parse(t, `
traits:
  - name: Mix
    base: Other
    members:
      tm: {method: mixTm}
      area: {abstract: true}
      N: {class: {members: {m: {method: nM}}}}
      limit: 3
      ref: {value: {class: Other}}
`)

	data, err := Marshal(f)
	require.NoError(t, err)

	again := parse(t, string(data))
	assert.Equal(t, f, again)
	assert.Contains(t, string(data), "base: Other")
	assert.Equal(t, MemberDef{Kind: MemberData, Value: map[string]any{"class": "Other"}}, again.Traits[0].Members["ref"])
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")

	f := &File{
		Classes: []ClassDef{{
			Name:    "A",
			Members: map[string]MemberDef{"m": {Kind: MemberMethod, Method: "aM"}},
		}},
	}
	require.NoError(t, WriteFile(f, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A", loaded.Classes[0].Name)
	assert.Equal(t, "aM", loaded.Classes[0].Members["m"].Method)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
