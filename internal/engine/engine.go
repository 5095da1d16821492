// Package engine assigns plies to mesh cells: it validates references,
// orders plies, evaluates each ply's mask and thickness, and accumulates
// the per-cell layer and summary arrays onto a new cell table.
package engine

import (
	"context"
	"fmt"

	"github.com/vk/drapego/internal/ctxlog"
	"github.com/vk/drapego/internal/expr"
	"github.com/vk/drapego/internal/field"
	"github.com/vk/drapego/internal/layup"
	"github.com/vk/drapego/internal/matdb"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the per-ply evaluation concurrency used when no
// explicit worker count is configured.
const DefaultWorkers = 4

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of concurrent per-ply evaluation workers.
// Values below one fall back to DefaultWorkers.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// Engine evaluates a layup configuration against a cell table. It holds
// only immutable inputs; a single Engine is safe for repeated runs.
type Engine struct {
	cfg      *layup.Config
	registry *matdb.Registry
	workers  int

	// compiled holds one compiled thickness expression per ply index, nil
	// for constant and datum thicknesses. Populated during reference
	// resolution, read-only afterwards.
	compiled []*expr.Expr
}

// New creates an engine over a validated configuration and a material
// registry.
func New(cfg *layup.Config, registry *matdb.Registry, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, registry: registry, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// plyResult is the outcome of one ply's evaluation: all arrays are already
// masked (sentinel -1 material, zero angle and thickness outside the mask).
type plyResult struct {
	mask      []bool
	material  []int64
	angle     []float64
	thickness []float64
}

// Run drapes the configured plies onto the cells of table and returns a
// new table: the input columns plus three arrays per ply and the
// total_thickness, n_plies, and per-parent thickness accumulators. The
// input table is never mutated and the output is all-or-nothing: any
// failure returns a nil table.
func (e *Engine) Run(ctx context.Context, table *field.Table) (*field.Table, error) {
	logger := ctxlog.FromContext(ctx)

	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := e.validateMaterials(); err != nil {
		return nil, err
	}
	if err := e.resolveFields(table); err != nil {
		return nil, err
	}

	order := canonicalOrder(e.cfg.Plies)
	logger.Debug("Plies ordered.", "count", len(order))

	results, err := e.evaluateAll(ctx, table, order)
	if err != nil {
		return nil, err
	}

	out, err := e.merge(table, order, results)
	if err != nil {
		return nil, err
	}
	logger.Info("Draping complete.", "plies", len(order), "cells", table.Len())
	return out, nil
}

// evaluateAll runs the per-ply evaluations over a bounded worker pool.
// Each task reads only immutable inputs and writes its own slot of the
// results slice, so no coordination is needed until the join. The first
// failure cancels the group and is surfaced annotated with the ply key.
func (e *Engine) evaluateAll(ctx context.Context, table *field.Table, order []int) ([]*plyResult, error) {
	results := make([]*plyResult, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for pos, idx := range order {
		pos, idx := pos, idx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ply := &e.cfg.Plies[idx]
			res, err := e.evaluatePly(ply, e.compiled[idx], table)
			if err != nil {
				return fmt.Errorf("ply key %d: %w", ply.Key, err)
			}
			results[pos] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// merge writes the per-ply arrays and accumulators onto a clone of the
// input table, strictly in canonical order so naming and accumulation are
// deterministic regardless of worker scheduling.
func (e *Engine) merge(table *field.Table, order []int, results []*plyResult) (*field.Table, error) {
	n := table.Len()
	out := table.Clone()

	total := make([]float64, n)
	counts := make([]int64, n)
	parents := make(map[string][]float64)
	var parentOrder []string

	for pos, idx := range order {
		ply := &e.cfg.Plies[idx]
		res := results[pos]

		prefix := fmt.Sprintf("ply_%06d_%s_%d", pos+1, ply.Parent, ply.Key)
		if err := out.AddInt(prefix+"_material", res.material); err != nil {
			return nil, err
		}
		if err := out.AddFloat(prefix+"_angle", res.angle); err != nil {
			return nil, err
		}
		if err := out.AddFloat(prefix+"_thickness", res.thickness); err != nil {
			return nil, err
		}

		sum, ok := parents[ply.Parent]
		if !ok {
			sum = make([]float64, n)
			parents[ply.Parent] = sum
			parentOrder = append(parentOrder, ply.Parent)
		}
		for i, selected := range res.mask {
			if selected {
				total[i] += res.thickness[i]
				counts[i]++
				sum[i] += res.thickness[i]
			}
		}
	}

	if err := out.AddFloat("total_thickness", total); err != nil {
		return nil, err
	}
	if err := out.AddInt("n_plies", counts); err != nil {
		return nil, err
	}
	for _, parent := range parentOrder {
		if err := out.AddFloat(parent+"_thickness", parents[parent]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// evaluatePly computes the masked output arrays for a single ply.
func (e *Engine) evaluatePly(ply *layup.Ply, compiled *expr.Expr, table *field.Table) (*plyResult, error) {
	mask, err := e.evalMask(ply, table)
	if err != nil {
		return nil, err
	}
	resolved, err := e.resolveThickness(ply, compiled, table)
	if err != nil {
		return nil, err
	}

	matID, ok := e.registry.Lookup(ply.Material)
	if !ok {
		// Unreachable after validateMaterials; kept as a guard.
		return nil, layup.NewReferenceError(layup.RefMaterial, ply.Material)
	}

	n := table.Len()
	res := &plyResult{
		mask:      mask,
		material:  make([]int64, n),
		angle:     make([]float64, n),
		thickness: make([]float64, n),
	}
	for i, selected := range mask {
		if selected {
			res.material[i] = int64(matID)
			res.angle[i] = ply.Angle
			res.thickness[i] = resolved[i]
		} else {
			res.material[i] = -1
		}
	}
	return res, nil
}
