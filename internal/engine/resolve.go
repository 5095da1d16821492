package engine

import (
	"fmt"
	"sort"

	"github.com/vk/drapego/internal/expr"
	"github.com/vk/drapego/internal/field"
	"github.com/vk/drapego/internal/layup"
)

// validateMaterials checks every ply's material against the registry and
// aborts with the full list of missing names before any per-ply work.
func (e *Engine) validateMaterials() error {
	seen := make(map[string]struct{})
	var missing []string
	for i := range e.cfg.Plies {
		name := e.cfg.Plies[i].Material
		if _, ok := e.registry.Lookup(name); ok {
			continue
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return layup.NewReferenceError(layup.RefMaterial, missing...)
	}
	return nil
}

// resolveFields collects the union of fields the run will read, verifying
// along the way that every datum named by a condition operand or thickness
// is declared, and compiling thickness expressions once per ply. A field
// absent from the table aborts the run.
func (e *Engine) resolveFields(table *field.Table) error {
	required := make(map[string]struct{})
	e.compiled = make([]*expr.Expr, len(e.cfg.Plies))

	for i := range e.cfg.Plies {
		ply := &e.cfg.Plies[i]

		for _, cond := range ply.Conditions {
			required[cond.Field] = struct{}{}
			if cond.Operand.Kind != layup.OperandDatum {
				continue
			}
			datum, ok := e.cfg.Datums[cond.Operand.Datum]
			if !ok {
				return fmt.Errorf("ply key %d: %w", ply.Key, layup.NewReferenceError(layup.RefDatum, cond.Operand.Datum))
			}
			required[datum.Base] = struct{}{}
		}

		switch ply.Thickness.Kind {
		case layup.ThicknessDatum:
			datum, ok := e.cfg.Datums[ply.Thickness.Ref]
			if !ok {
				return fmt.Errorf("ply key %d: %w", ply.Key, layup.NewReferenceError(layup.RefDatum, ply.Thickness.Ref))
			}
			required[datum.Base] = struct{}{}
		case layup.ThicknessExpression:
			compiled, err := expr.Compile(ply.Thickness.Ref, e.cfg.Datums)
			if err != nil {
				return fmt.Errorf("ply key %d: %w", ply.Key, err)
			}
			e.compiled[i] = compiled
			for _, name := range compiled.Datums() {
				required[e.cfg.Datums[name].Base] = struct{}{}
			}
		}
	}

	fields := make([]string, 0, len(required))
	for name := range required {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	for _, name := range fields {
		if !table.Has(name) {
			return &layup.DataAvailabilityError{Field: name}
		}
	}
	return nil
}

// canonicalOrder returns ply indices sorted by ascending key; the stable
// sort keeps definition order as the tie-break. Sequence numbers embedded
// in output array names are 1-based positions in this order.
func canonicalOrder(plies []layup.Ply) []int {
	order := make([]int, len(plies))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return plies[order[a]].Key < plies[order[b]].Key
	})
	return order
}
