package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/drapego/internal/layup"
)

func testDatums(names ...string) map[string]layup.Datum {
	datums := make(map[string]layup.Datum, len(names))
	for _, name := range names {
		datums[name] = layup.Datum{Base: "x", Values: []layup.Knot{{X: 0, Y: 0}}}
	}
	return datums
}

func TestCompileAndEvalSum(t *testing.T) {
	compiled, err := Compile("t1 + t2", testDatums("t1", "t2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, compiled.Datums())

	out, err := compiled.Eval(map[string][]float64{
		"t1": {0.001, 0.002, 0.003},
		"t2": {0.1, 0.2, 0.3},
	}, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.101, 0.202, 0.303}, out, 1e-12)
}

func TestEvalOperatorPrecedenceAndParentheses(t *testing.T) {
	compiled, err := Compile("a + b * 2", testDatums("a", "b"))
	require.NoError(t, err)
	out, err := compiled.Eval(map[string][]float64{"a": {1}, "b": {3}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, out)

	compiled, err = Compile("(a + b) * 2", testDatums("a", "b"))
	require.NoError(t, err)
	out, err = compiled.Eval(map[string][]float64{"a": {1}, "b": {3}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{8}, out)
}

func TestEvalUnaryMinusAndDivision(t *testing.T) {
	compiled, err := Compile("-a / 2", testDatums("a"))
	require.NoError(t, err)

	out, err := compiled.Eval(map[string][]float64{"a": {4, -6}}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, 3}, out)
}

func TestEvalDivideByZeroFails(t *testing.T) {
	compiled, err := Compile("a / b", testDatums("a", "b"))
	require.NoError(t, err)

	_, err = compiled.Eval(map[string][]float64{"a": {1}, "b": {0}}, 1)
	require.Error(t, err)

	var exprErr *layup.ExpressionError
	require.ErrorAs(t, err, &exprErr)
	assert.Equal(t, "a / b", exprErr.Expr)
}

func TestCompileUnresolvedIdentifierFails(t *testing.T) {
	_, err := Compile("t1 + mystery", testDatums("t1"))
	require.Error(t, err)

	var exprErr *layup.ExpressionError
	require.ErrorAs(t, err, &exprErr)
	assert.Contains(t, exprErr.Reason, "mystery")
}

func TestCompileRejectsNonArithmeticConstructs(t *testing.T) {
	datums := testDatums("a", "b")

	cases := []struct {
		name string
		src  string
	}{
		{"function call", "max(a, b)"},
		{"conditional", "a > b ? a : b"},
		{"comparison", "a > b"},
		{"logical", "a && b"},
		{"string literal", `"hello"`},
		{"list", "[a, b]"},
		{"index", "a[0]"},
		{"attribute traversal", "a.b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.src, datums)
			require.Error(t, err)

			var exprErr *layup.ExpressionError
			assert.ErrorAs(t, err, &exprErr)
		})
	}
}

func TestCompileRejectsMalformedSource(t *testing.T) {
	_, err := Compile("a +", testDatums("a"))
	require.Error(t, err)

	var exprErr *layup.ExpressionError
	assert.ErrorAs(t, err, &exprErr)
}

func TestEvalLengthMismatchFails(t *testing.T) {
	compiled, err := Compile("a * 2", testDatums("a"))
	require.NoError(t, err)

	_, err = compiled.Eval(map[string][]float64{"a": {1, 2}}, 3)
	require.Error(t, err)
}
