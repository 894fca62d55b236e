package vm

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatter/lumen/compiler"
)

// captureStdout runs fn with os.Stdout redirected, returning everything
// written to it. OP_PRINT writes through fmt.Println directly to
// os.Stdout (spec.md §4.3), so end-to-end tests observe program output
// this way rather than through a VM-level writer abstraction.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = orig

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func run(t *testing.T, source string) string {
	t.Helper()
	return captureStdout(t, func() {
		fn, err := compiler.New().Compile(source)
		require.NoError(t, err)
		err = New().Interpret(fn)
		require.NoError(t, err)
	})
}

func lines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestEndToEndArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, []string{"2.5"}, lines(run(t, "print 1 + 2 * 3 / 4;")))
}

func TestEndToEndGlobalVariables(t *testing.T) {
	assert.Equal(t, []string{"3"}, lines(run(t, "var a = 1; var b = 2; print a + b;")))
}

func TestEndToEndIfElse(t *testing.T) {
	assert.Equal(t, []string{"t"}, lines(run(t, `if (1 < 2) { print "t"; } else { print "f"; }`)))
}

func TestEndToEndWhileLoop(t *testing.T) {
	assert.Equal(t, []string{"0", "1", "2"},
		lines(run(t, "var x = 0; while (x < 3) { print x; x = x + 1; }")))
}

func TestEndToEndClosureOutlivesCreatingFrame(t *testing.T) {
	source := `
fun counter() {
  var c = 0;
  fun tick() {
    c = c + 1;
    return c;
  }
  return tick;
}
var t = counter();
print t();
print t();
print t();
`
	assert.Equal(t, []string{"1", "2", "3"}, lines(run(t, source)))
}

func TestEndToEndFunctionCallWithArguments(t *testing.T) {
	assert.Equal(t, []string{"5"}, lines(run(t, "fun f(a, b) { return a + b; } print f(2, 3);")))
}

func TestEndToEndSelfInitializerIsACompileError(t *testing.T) {
	_, err := compiler.New().Compile("var a = a;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "own initializer")
}

func TestRuntimeErrorArityMismatch(t *testing.T) {
	fn, err := compiler.New().Compile("fun f(a, b) { return a + b; } f(1);")
	require.NoError(t, err)
	err = New().Interpret(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 arguments but got 1")
}

func TestRuntimeErrorNegateNonNumber(t *testing.T) {
	fn, err := compiler.New().Compile(`print -"x";`)
	require.NoError(t, err)
	err = New().Interpret(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operand must be a number")
}

func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	out := run(t, `
fun sideEffect() { print "evaluated"; return true; }
print false and sideEffect();
`)
	assert.Equal(t, []string{"false"}, lines(out))
}

func TestShortCircuitOrDoesNotEvaluateRight(t *testing.T) {
	out := run(t, `
fun sideEffect() { print "evaluated"; return true; }
print true or sideEffect();
`)
	assert.Equal(t, []string{"true"}, lines(out))
}

func TestClosureIdentitySharedUpvalue(t *testing.T) {
	source := `
fun pair() {
  var shared = 0;
  fun set(v) { shared = v; }
  fun get() { return shared; }
  set(42);
  return get();
}
print pair();
`
	assert.Equal(t, []string{"42"}, lines(run(t, source)))
}

func TestNativeClockLenType(t *testing.T) {
	out := run(t, `
print len("hello");
print type(1);
print type("x");
print type(nil);
print type(true);
`)
	assert.Equal(t, []string{"5", "number", "string", "nil", "bool"}, lines(out))
}
