package engine

import (
	"github.com/vk/drapego/internal/expr"
	"github.com/vk/drapego/internal/field"
	"github.com/vk/drapego/internal/interp"
	"github.com/vk/drapego/internal/layup"
)

// resolveThickness turns a ply's thickness specification into a per-cell
// array: constant broadcast, datum interpolation, or elementwise
// evaluation of a compiled expression.
func (e *Engine) resolveThickness(ply *layup.Ply, compiled *expr.Expr, table *field.Table) ([]float64, error) {
	n := table.Len()

	switch ply.Thickness.Kind {
	case layup.ThicknessConstant:
		out := make([]float64, n)
		for i := range out {
			out[i] = ply.Thickness.Constant
		}
		return out, nil

	case layup.ThicknessDatum:
		datum, ok := e.cfg.Datums[ply.Thickness.Ref]
		if !ok {
			return nil, layup.NewReferenceError(layup.RefDatum, ply.Thickness.Ref)
		}
		base, err := table.Float(datum.Base)
		if err != nil {
			return nil, err
		}
		return interp.Interpolate(base, datum.Values)

	default:
		vars := make(map[string][]float64, len(compiled.Datums()))
		for _, name := range compiled.Datums() {
			datum := e.cfg.Datums[name]
			base, err := table.Float(datum.Base)
			if err != nil {
				return nil, err
			}
			values, err := interp.Interpolate(base, datum.Values)
			if err != nil {
				return nil, err
			}
			vars[name] = values
		}
		return compiled.Eval(vars, n)
	}
}
