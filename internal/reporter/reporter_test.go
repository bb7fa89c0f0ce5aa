package reporter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdcook/tlox/internal/reporter"
)

func TestStaticSetsHadStaticErrorAndWritesLine(t *testing.T) {
	var out bytes.Buffer
	rep := reporter.New(&out, false)

	rep.Static(3, "at end", "Expect ';'.")

	assert.True(t, rep.HadStaticError())
	assert.False(t, rep.HadRuntimeError())
	assert.Equal(t, "[line 3] Error at 'at end': Expect ';'.\n", out.String())
}

func TestStaticWithNoWhereOmitsTheAtClause(t *testing.T) {
	var out bytes.Buffer
	rep := reporter.New(&out, false)

	rep.Static(5, "", "Unterminated string.")

	assert.Equal(t, "[line 5] Error: Unterminated string.\n", out.String())
}

func TestRuntimeSetsHadRuntimeErrorAndWritesLine(t *testing.T) {
	var out bytes.Buffer
	rep := reporter.New(&out, false)

	rep.Runtime("Undefined variable 'x'.", 7)

	assert.True(t, rep.HadRuntimeError())
	assert.False(t, rep.HadStaticError())
	assert.Contains(t, out.String(), "Undefined variable 'x'.")
	assert.Contains(t, out.String(), "[line 7]")
}

func TestResetClearsBothFlags(t *testing.T) {
	var out bytes.Buffer
	rep := reporter.New(&out, false)

	rep.Static(1, "", "bad")
	rep.Runtime("bad", 1)
	rep.Reset()

	assert.False(t, rep.HadStaticError())
	assert.False(t, rep.HadRuntimeError())
}

func TestPlainOutputHasNoAnsiEscapesWhenColorDisabled(t *testing.T) {
	var out bytes.Buffer
	rep := reporter.New(&out, false)

	rep.Static(1, "", "oops")

	assert.NotContains(t, out.String(), "\x1b[")
}
