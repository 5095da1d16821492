// Package expr compiles and evaluates thickness expressions: restricted
// arithmetic over declared datum names, applied elementwise to per-cell
// arrays. The expression language is the HCL expression syntax narrowed to
// numeric literals, bare identifiers, +, -, *, / and parentheses; anything
// else is rejected at compile time, so configuration text can never reach
// a general-purpose evaluator.
package expr

import (
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/drapego/internal/layup"
	"github.com/zclconf/go-cty/cty"
)

// Expr is a compiled thickness expression, safe to evaluate elementwise.
type Expr struct {
	src    string
	expr   hclsyntax.Expression
	datums []string
}

// Compile parses src and verifies that it is purely arithmetic and that
// every identifier names a declared datum. The returned Expr is immutable
// and reusable.
func Compile(src string, datums map[string]layup.Datum) (*Expr, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(src), "thickness", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, &layup.ExpressionError{Expr: src, Reason: diags.Error()}
	}

	if err := checkArithmetic(src, parsed); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var names []string
	for _, traversal := range parsed.Variables() {
		name := traversal.RootName()
		if _, ok := datums[name]; !ok {
			return nil, &layup.ExpressionError{
				Expr:   src,
				Reason: fmt.Sprintf("unresolved identifier %q: no datum with that name", name),
			}
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names) // deterministic field resolution order

	return &Expr{src: src, expr: parsed, datums: names}, nil
}

// Source returns the original expression text.
func (e *Expr) Source() string { return e.src }

// Datums returns the datum names the expression references, sorted.
func (e *Expr) Datums() []string {
	out := make([]string, len(e.datums))
	copy(out, e.datums)
	return out
}

// Eval evaluates the expression elementwise over n cells. vars must hold a
// length-n array for every name in Datums.
func (e *Expr) Eval(vars map[string][]float64, n int) ([]float64, error) {
	for _, name := range e.datums {
		if len(vars[name]) != n {
			return nil, &layup.ExpressionError{
				Expr:   e.src,
				Reason: fmt.Sprintf("datum %q resolved to %d values, expected %d", name, len(vars[name]), n),
			}
		}
	}

	cells := make(map[string]cty.Value, len(e.datums))
	evalCtx := &hcl.EvalContext{Variables: cells}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, name := range e.datums {
			cells[name] = cty.NumberFloatVal(vars[name][i])
		}
		v, diags := e.expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, &layup.ExpressionError{Expr: e.src, Reason: diags.Error()}
		}
		if !v.Type().Equals(cty.Number) {
			return nil, &layup.ExpressionError{Expr: e.src, Reason: "result is not a number"}
		}
		f, _ := v.AsBigFloat().Float64()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, &layup.ExpressionError{
				Expr:   e.src,
				Reason: fmt.Sprintf("result is not finite at cell %d (division by zero?)", i),
			}
		}
		out[i] = f
	}
	return out, nil
}

// checkArithmetic walks the syntax tree and rejects every construct
// outside the restricted arithmetic subset.
func checkArithmetic(src string, e hclsyntax.Expression) error {
	switch node := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		if !node.Val.Type().Equals(cty.Number) {
			return &layup.ExpressionError{Expr: src, Reason: "only numeric literals are allowed"}
		}
		return nil
	case *hclsyntax.ScopeTraversalExpr:
		if len(node.Traversal) != 1 {
			return &layup.ExpressionError{Expr: src, Reason: "identifiers must be bare datum names"}
		}
		return nil
	case *hclsyntax.ParenthesesExpr:
		return checkArithmetic(src, node.Expression)
	case *hclsyntax.UnaryOpExpr:
		if node.Op != hclsyntax.OpNegate {
			return &layup.ExpressionError{Expr: src, Reason: "only unary minus is allowed"}
		}
		return checkArithmetic(src, node.Val)
	case *hclsyntax.BinaryOpExpr:
		switch node.Op {
		case hclsyntax.OpAdd, hclsyntax.OpSubtract, hclsyntax.OpMultiply, hclsyntax.OpDivide:
			// allowed
		default:
			return &layup.ExpressionError{Expr: src, Reason: "only +, -, * and / operators are allowed"}
		}
		if err := checkArithmetic(src, node.LHS); err != nil {
			return err
		}
		return checkArithmetic(src, node.RHS)
	default:
		return &layup.ExpressionError{Expr: src, Reason: fmt.Sprintf("construct %T is not arithmetic", e)}
	}
}
