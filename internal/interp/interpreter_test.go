package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdcook/tlox/internal/interp"
	"github.com/sdcook/tlox/internal/lexer"
	"github.com/sdcook/tlox/internal/parser"
	"github.com/sdcook/tlox/internal/resolver"
)

// run lexes, parses, resolves, and interprets src, returning everything
// printed to stdout and the first runtime error (if any). It requires
// the static phases to succeed, since runtime behavior is this file's
// concern, not static diagnostics (covered in their own packages).
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	return runWithDepth(t, src, 0)
}

func runWithDepth(t *testing.T, src string, maxCallDepth int) (string, error) {
	t.Helper()
	toks, lexErrs := lexer.New([]byte(src)).Scan()
	require.Empty(t, lexErrs)
	stmts, parseErrs := parser.New(toks).Parse()
	require.Empty(t, parseErrs)
	locals, resolveErrs := resolver.Resolve(stmts)
	require.Empty(t, resolveErrs)

	var out bytes.Buffer
	it := interp.New(locals, &out, maxCallDepth)
	err := it.Interpret(stmts)
	return out.String(), err
}

func TestArithmeticAndComparison(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3; print 10 / 4; print 2 < 3; print 3 <= 3; print 3 > 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n2.5\ntrue\ntrue\nfalse\n", out)
}

func TestPlusConcatenatesStrings(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestPlusRejectsMixedOperandTypes(t *testing.T) {
	_, err := run(t, `print "foo" + 1;`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Operands must be two numbers or two strings.", rerr.Message)
}

func TestSubtractRejectsNonNumbers(t *testing.T) {
	_, err := run(t, `print "foo" - 1;`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Operands must be numbers.", rerr.Message)
}

func TestEqualityAcrossTypesIsFalseNotAnError(t *testing.T) {
	out, err := run(t, `print 1 == "1"; print nil == false; print nil == nil;`)
	require.NoError(t, err)
	assert.Equal(t, "false\nfalse\ntrue\n", out)
}

func TestTruthiness(t *testing.T) {
	out, err := run(t, `
if (0) print "zero is truthy"; else print "zero is falsy";
if ("") print "empty string is truthy"; else print "empty string is falsy";
if (nil) print "nil is truthy"; else print "nil is falsy";
if (false) print "false is truthy"; else print "false is falsy";
`)
	require.NoError(t, err)
	assert.Equal(t, "zero is truthy\nempty string is truthy\nnil is falsy\nfalse is falsy\n", out)
}

func TestVariableShadowingAndClosureCapture(t *testing.T) {
	out, err := run(t, `
var x = "global";
fun outer() {
  var x = "local";
  fun inner() {
    print x;
  }
  inner();
}
outer();
print x;
`)
	require.NoError(t, err)
	assert.Equal(t, "local\nglobal\n", out)
}

func TestClosureCapturesVariableByReference(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    print count;
  }
  return increment;
}
var counter = makeCounter();
counter();
counter();
counter();
`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestForLoopDesugarsWithFreshScopePerSpec(t *testing.T) {
	out, err := run(t, `
for (var i = 0; i < 3; i = i + 1) {
  print i;
}
`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestFunctionArityMismatchIsARuntimeError(t *testing.T) {
	_, err := run(t, `
fun add(a, b) { return a + b; }
add(1);
`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Expected 2 arguments but got 1.", rerr.Message)
}

func TestCallingANonCallableIsARuntimeError(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Can only call functions and classes.", rerr.Message)
}

func TestClassFieldsAndMethods(t *testing.T) {
	out, err := run(t, `
class Cake {
  taste() {
    print "The " + this.flavor + " cake is delicious!";
  }
}
var cake = Cake();
cake.flavor = "German chocolate";
cake.taste();
`)
	require.NoError(t, err)
	assert.Equal(t, "The German chocolate cake is delicious!\n", out)
}

func TestUndefinedPropertyIsARuntimeError(t *testing.T) {
	_, err := run(t, `class C {} var c = C(); print c.nope;`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Undefined property 'nope'.", rerr.Message)
}

func TestFieldShadowsMethodOfSameName(t *testing.T) {
	out, err := run(t, `
class C {
  greet() { return "method"; }
}
var c = C();
c.greet = "field";
print c.greet;
`)
	require.NoError(t, err)
	assert.Equal(t, "field\n", out)
}

func TestInitializerAlwaysReturnsThisEvenWithBareReturn(t *testing.T) {
	out, err := run(t, `
class Box {
  init(v) {
    this.v = v;
    return;
  }
}
var b = Box(42);
print b.v;
`)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestSuperCallsSuperclassMethodWithSubclassThisBound(t *testing.T) {
	out, err := run(t, `
class Pastry {
  cook() {
    print "Baking a " + this.name + ".";
  }
}
class Cake < Pastry {
  cook() {
    super.cook();
    print "Adding frosting.";
  }
}
var c = Cake();
c.name = "cake";
c.cook();
`)
	require.NoError(t, err)
	assert.Equal(t, "Baking a cake.\nAdding frosting.\n", out)
}

func TestSuperclassMustBeAClass(t *testing.T) {
	_, err := run(t, `var NotAClass = 1; class C < NotAClass {}`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Superclass must be a class.", rerr.Message)
}

func TestNativeClockReturnsANumber(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestRecursionDeeperThanMaxCallDepthIsAStackOverflowRuntimeError(t *testing.T) {
	_, err := runWithDepth(t, `
fun recurse(n) {
  return recurse(n + 1);
}
recurse(0);
`, 50)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Stack overflow.", rerr.Message)
}

func TestMaxCallDepthZeroDisablesTheGuard(t *testing.T) {
	// a small, bounded recursion must still run fine when the guard is off.
	out, err := run(t, `
fun sum(n) {
  if (n <= 0) return 0;
  return n + sum(n - 1);
}
print sum(5);
`)
	require.NoError(t, err)
	assert.Equal(t, "15\n", out)
}

func TestUninitializedVarDefaultsToNil(t *testing.T) {
	out, err := run(t, `var a; print a;`)
	require.NoError(t, err)
	assert.Equal(t, "nil\n", out)
}

func TestAssignToUndefinedGlobalIsARuntimeError(t *testing.T) {
	_, err := run(t, `x = 1;`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Undefined variable 'x'.", rerr.Message)
}

func TestSetOnNonInstanceIsARuntimeError(t *testing.T) {
	_, err := run(t, `var a = 1; a.field = 2;`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Only instances have fields.", rerr.Message)
}
