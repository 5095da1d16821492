package engine

import (
	"github.com/vk/drapego/internal/field"
	"github.com/vk/drapego/internal/interp"
	"github.com/vk/drapego/internal/layup"
)

// evalMask combines a ply's conditions by conjunction into a per-cell
// boolean mask. An empty condition list selects every cell. The table is
// read-only throughout.
func (e *Engine) evalMask(ply *layup.Ply, table *field.Table) ([]bool, error) {
	mask := make([]bool, table.Len())
	for i := range mask {
		mask[i] = true
	}

	for _, cond := range ply.Conditions {
		values, err := table.Float(cond.Field)
		if err != nil {
			return nil, err
		}

		switch cond.Op {
		case layup.OpInRange:
			min, max := cond.Operand.Min, cond.Operand.Max
			for i, v := range values {
				if v < min || v > max {
					mask[i] = false
				}
			}
		case layup.OpGreaterThan:
			limits, err := e.greaterThanLimits(cond, table)
			if err != nil {
				return nil, err
			}
			for i, v := range values {
				if v <= limits[i] {
					mask[i] = false
				}
			}
		}
	}
	return mask, nil
}

// greaterThanLimits resolves the right-hand side of a ">" condition to a
// per-cell array: a broadcast literal, or a datum interpolated over its
// own base field (which may differ from the condition's field).
func (e *Engine) greaterThanLimits(cond layup.Condition, table *field.Table) ([]float64, error) {
	if cond.Operand.Kind == layup.OperandLiteral {
		limits := make([]float64, table.Len())
		for i := range limits {
			limits[i] = cond.Operand.Literal
		}
		return limits, nil
	}

	datum, ok := e.cfg.Datums[cond.Operand.Datum]
	if !ok {
		return nil, layup.NewReferenceError(layup.RefDatum, cond.Operand.Datum)
	}
	base, err := table.Float(datum.Base)
	if err != nil {
		return nil, err
	}
	return interp.Interpolate(base, datum.Values)
}
