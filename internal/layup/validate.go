package layup

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Validate checks the structural integrity of the configuration and
// normalizes thickness specifications: an expression whose source is
// exactly the name of a declared datum is narrowed to the datum kind, so
// the engine never routes a bare datum reference through the expression
// evaluator. Reference resolution against the material registry and the
// cell table happens later, in the engine.
func (c *Config) Validate() error {
	if len(c.Plies) == 0 {
		return &ValidationError{Msg: "config declares no plies"}
	}

	for name, d := range c.Datums {
		if name == "" {
			return &ValidationError{Msg: "datum with empty name"}
		}
		if d.Base == "" {
			return &ValidationError{Msg: fmt.Sprintf("datum %q: base field is empty", name)}
		}
		if len(d.Values) == 0 {
			return &ValidationError{Msg: fmt.Sprintf("datum %q: no knot values", name)}
		}
		for i, k := range d.Values {
			if !isFinite(k.X) || !isFinite(k.Y) {
				return &ValidationError{Msg: fmt.Sprintf("datum %q: knot %d is not finite", name, i)}
			}
		}
	}

	for i := range c.Plies {
		if err := c.validatePly(i); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validatePly(i int) error {
	p := &c.Plies[i]
	where := fmt.Sprintf("ply %d (key %d)", i, p.Key)

	if p.Material == "" {
		return &ValidationError{Msg: where + ": material is empty"}
	}
	if p.Parent == "" {
		return &ValidationError{Msg: where + ": parent group is empty"}
	}
	if !isFinite(p.Angle) {
		return &ValidationError{Msg: where + ": angle is not finite"}
	}

	for j, cond := range p.Conditions {
		if cond.Field == "" {
			return &ValidationError{Msg: fmt.Sprintf("%s: condition %d: field is empty", where, j)}
		}
		switch cond.Op {
		case OpInRange:
			if cond.Operand.Kind != OperandRange {
				return &ValidationError{Msg: fmt.Sprintf("%s: condition %d: operator %q requires a [min, max] operand", where, j, cond.Op)}
			}
			if cond.Operand.Min > cond.Operand.Max {
				return &ValidationError{Msg: fmt.Sprintf("%s: condition %d: range min exceeds max", where, j)}
			}
		case OpGreaterThan:
			switch cond.Operand.Kind {
			case OperandLiteral:
				// ok
			case OperandDatum:
				if cond.Operand.Datum == "" {
					return &ValidationError{Msg: fmt.Sprintf("%s: condition %d: datum operand with empty name", where, j)}
				}
			default:
				return &ValidationError{Msg: fmt.Sprintf("%s: condition %d: operator %q requires a literal or datum operand", where, j, cond.Op)}
			}
		default:
			return &ValidationError{Msg: fmt.Sprintf("%s: condition %d: unknown operator %q", where, j, cond.Op)}
		}
	}

	switch p.Thickness.Kind {
	case ThicknessConstant:
		if !isFinite(p.Thickness.Constant) {
			return &ValidationError{Msg: where + ": thickness is not finite"}
		}
	case ThicknessDatum:
		if _, ok := c.Datums[p.Thickness.Ref]; !ok {
			return NewReferenceError(RefDatum, p.Thickness.Ref)
		}
	case ThicknessExpression:
		src := strings.TrimSpace(p.Thickness.Ref)
		if src == "" {
			return &ValidationError{Msg: where + ": thickness expression is empty"}
		}
		if _, ok := c.Datums[src]; ok && isIdentifier(src) {
			p.Thickness = Thickness{Kind: ThicknessDatum, Ref: src}
		}
	default:
		return &ValidationError{Msg: where + ": unknown thickness kind"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// isIdentifier reports whether s is a single bare identifier, i.e. a datum
// name rather than an arithmetic expression.
func isIdentifier(s string) bool {
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || r == '-') {
			continue
		}
		return false
	}
	return s != ""
}
