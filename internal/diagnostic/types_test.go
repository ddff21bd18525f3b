package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning("unused", "member decorator targets inherited member", "class A", "m")
	d.AddInfo("note", "constructor forwarded", "class A", "")
	assert.True(t, d.IsValid())

	d.AddError("unknown_reference", `unknown layer "Mix"`, "class B", "base[1]")
	d.Suggest("Mixin")
	d.AddError("duplicate_name", `duplicate name "B"`, "", "")

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{"unknown_reference", "duplicate_name"}, d.Codes())
	assert.Len(t, d.All(), 4)
	assert.Equal(t, DiagnosticError, d.All()[0].Severity)
	assert.Equal(t, DiagnosticInfo, d.All()[3].Severity)

	assert.EqualError(t, d.Error(),
		`[class B] base[1]: [unknown_reference] unknown layer "Mix" (did you mean Mixin?); `+
			`[duplicate_name] duplicate name "B"`)
}

func TestDiagnosticsMerge(t *testing.T) {
	t.Parallel()

	var a, b Diagnostics

	a.AddError("x", "first", "", "")
	b.AddError("y", "second", "", "")
	b.AddWarning("z", "third", "", "")

	a.Merge(b)
	assert.Equal(t, []string{"x", "y"}, a.Codes())
	assert.Len(t, a.Warnings, 1)
}

func TestSuggestWithoutErrors(t *testing.T) {
	t.Parallel()

	var d Diagnostics

	d.Suggest("anything")
	assert.True(t, d.IsValid())
}

func TestSeverityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
