package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdcook/tlox/internal/maincmd"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.lox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunSucceedsOnAWellFormedProgram(t *testing.T) {
	path := writeSource(t, `print 1 + 2;`)
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	c := &maincmd.Cmd{}
	code := c.Run(context.Background(), stdio, []string{path})

	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "3\n", out.String())
}

func TestRunReturnsExitStaticOnAParseError(t *testing.T) {
	path := writeSource(t, `var = 1;`)
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	c := &maincmd.Cmd{}
	code := c.Run(context.Background(), stdio, []string{path})

	assert.Equal(t, maincmd.ExitStatic, code)
}

func TestRunReturnsExitRuntimeOnARuntimeError(t *testing.T) {
	path := writeSource(t, `print "foo" + 1;`)
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	c := &maincmd.Cmd{}
	code := c.Run(context.Background(), stdio, []string{path})

	assert.Equal(t, maincmd.ExitRuntime, code)
}

func TestRunReturnsExitUsageWhenTheFileIsMissing(t *testing.T) {
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	c := &maincmd.Cmd{}
	code := c.Run(context.Background(), stdio, []string{filepath.Join(t.TempDir(), "nope.lox")})

	assert.Equal(t, maincmd.ExitUsage, code)
}

func TestTokenizePrintsOneTokenPerLine(t *testing.T) {
	path := writeSource(t, `1 + 2;`)
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	c := &maincmd.Cmd{}
	code := c.Tokenize(context.Background(), stdio, []string{path})

	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, 5, bytes.Count(out.Bytes(), []byte("\n"))) // 1, +, 2, ;, EOF
}

func TestParseReturnsExitStaticOnASyntaxError(t *testing.T) {
	path := writeSource(t, `1 + ;`)
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	c := &maincmd.Cmd{}
	code := c.Parse(context.Background(), stdio, []string{path})

	assert.Equal(t, maincmd.ExitStatic, code)
}

func TestResolveReportsScopeDepths(t *testing.T) {
	path := writeSource(t, `
fun outer() {
  var x = 1;
  fun inner() { print x; }
  inner();
}
`)
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	c := &maincmd.Cmd{}
	code := c.Resolve(context.Background(), stdio, []string{path})

	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "-> depth")
}

func TestValidateRequiresExactlyOnePathForACommand(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"run"})
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one file path is required")
}

func TestValidateRejectsAnUnknownCommand(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"frobnicate", "x.lox"})
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestValidateAllowsBareInvocationForTheRepl(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs(nil)
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsReplAsAnExplicitCommandName(t *testing.T) {
	// Repl is dispatched only via bare invocation, never by name.
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"repl", "x.lox"})
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
