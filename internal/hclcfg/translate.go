package hclcfg

import (
	"fmt"

	"github.com/vk/drapego/internal/layup"
	"github.com/vk/drapego/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

func translateDatum(raw *schema.Datum) (layup.Datum, error) {
	knots := make([]layup.Knot, len(raw.Values))
	for i, pair := range raw.Values {
		if len(pair) != 2 {
			return layup.Datum{}, &layup.ValidationError{
				Msg: fmt.Sprintf("datum %q: knot %d must be an [x, y] pair, got %d values", raw.Name, i, len(pair)),
			}
		}
		knots[i] = layup.Knot{X: pair[0], Y: pair[1]}
	}
	return layup.Datum{Base: raw.Base, Values: knots}, nil
}

func translatePly(raw *schema.Ply) (layup.Ply, error) {
	thickness, err := translateThickness(raw)
	if err != nil {
		return layup.Ply{}, err
	}

	conditions := make([]layup.Condition, len(raw.Conditions))
	for i, rawCond := range raw.Conditions {
		cond, err := translateCondition(raw.Name, i, rawCond)
		if err != nil {
			return layup.Ply{}, err
		}
		conditions[i] = cond
	}

	return layup.Ply{
		Material:   raw.Material,
		Angle:      raw.Angle,
		Thickness:  thickness,
		Parent:     raw.Parent,
		Conditions: conditions,
		Key:        raw.Key,
	}, nil
}

// translateThickness narrows the raw cty value: a number is a constant, a
// string is a datum name or arithmetic expression (split during model
// validation).
func translateThickness(raw *schema.Ply) (layup.Thickness, error) {
	switch raw.Thickness.Type() {
	case cty.Number:
		f, _ := raw.Thickness.AsBigFloat().Float64()
		return layup.ConstantThickness(f), nil
	case cty.String:
		return layup.ExpressionThickness(raw.Thickness.AsString()), nil
	default:
		return layup.Thickness{}, &layup.ValidationError{
			Msg: fmt.Sprintf("ply %q: thickness must be a number or a string, got %s", raw.Name, raw.Thickness.Type().FriendlyName()),
		}
	}
}

func translateCondition(plyName string, i int, raw *schema.Condition) (layup.Condition, error) {
	set := 0
	var operand layup.Operand
	if raw.Value != nil {
		set++
		operand = layup.LiteralOperand(*raw.Value)
	}
	if len(raw.Range) > 0 {
		set++
		if len(raw.Range) != 2 {
			return layup.Condition{}, &layup.ValidationError{
				Msg: fmt.Sprintf("ply %q: condition %d: range must be [min, max], got %d values", plyName, i, len(raw.Range)),
			}
		}
		operand = layup.RangeOperand(raw.Range[0], raw.Range[1])
	}
	if raw.Datum != nil {
		set++
		operand = layup.DatumOperand(*raw.Datum)
	}
	if set != 1 {
		return layup.Condition{}, &layup.ValidationError{
			Msg: fmt.Sprintf("ply %q: condition %d: exactly one of value, range, or datum must be set", plyName, i),
		}
	}

	return layup.Condition{
		Field:   raw.Field,
		Op:      layup.Operator(raw.Operator),
		Operand: operand,
	}, nil
}
