package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validManifest = `
traits:
  - name: Mix
    members:
      tm: {method: mixTm}
classes:
  - name: A
    constructor: aInit
    members:
      f: 1
      m: {method: aM}
  - name: B
    base: [A, Mix]
    member_decorators:
      m: [shout]
`

func writeManifest(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	return path
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer

	code := run(args, &stdout, &stderr, false)

	return code, stdout.String(), stderr.String()
}

func TestCheck(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, validManifest)

	code, out, _ := execute("check", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "0 error(s), 1 warning(s)")
	assert.Contains(t, out, "warning: [class B] m: [inherited_member_decorator]")
	assert.Contains(t, out, "info: [class A] m: [external_method]")

	code, out, _ = execute("check", "-q", path)
	assert.Equal(t, 0, code)
	assert.NotContains(t, out, "warning:")
}

func TestCheck_Errors(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
classes:
  - name: A
traits:
  - name: T
    base: [A]
`)

	code, out, _ := execute("check", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "error: [trait T] base[0]: [trait_extends_class]")
}

func TestCheck_Color(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "version: \"7\"\n")

	var stdout, stderr bytes.Buffer

	code := run([]string{"check", path}, &stdout, &stderr, true)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "\x1b[31merror\x1b[0m")

	stdout.Reset()
	run([]string{"check", "-no-color", path}, &stdout, &stderr, true)
	assert.NotContains(t, stdout.String(), "\x1b[")
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, validManifest)

	code, out, errOut := execute("describe", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "trait Mix\n")
	assert.Contains(t, out, "class B\n")
	assert.Regexp(t, `(?m)^  f\s+data\s+A$`, out)
	assert.Regexp(t, `(?m)^  tm\s+method\s+Mix$`, out)

	code, out, _ = execute("describe", "-dump", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "manifest.Description")
}

func TestUsage(t *testing.T) {
	t.Parallel()

	code, _, errOut := execute()
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "usage: class-composer")

	code, _, errOut = execute("frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "frobnicate"`)

	code, out, _ := execute("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Commands:")

	code, _, errOut = execute("check")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "expected exactly one manifest path")

	code, _, errOut = execute("describe", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "failed to read manifest")
}
