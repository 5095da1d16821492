// Package yamlcfg is the YAML implementation of the layup.Loader
// interface, accepting the layup schema used by earlier tooling: a
// `datums` map and a `plies` list with structured conditions.
package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/drapego/internal/ctxlog"
	"github.com/vk/drapego/internal/layup"
	"gopkg.in/yaml.v3"
)

// Loader loads layup configuration from a .yaml file.
type Loader struct{}

// NewLoader creates a new YAML layup loader.
func NewLoader() *Loader {
	return &Loader{}
}

type rawRoot struct {
	Datums map[string]rawDatum `yaml:"datums"`
	Plies  []rawPly            `yaml:"plies"`
}

type rawDatum struct {
	Base   string      `yaml:"base"`
	Values [][]float64 `yaml:"values"`
}

type rawCondition struct {
	Field    string    `yaml:"field"`
	Operator string    `yaml:"operator"`
	Operand  yaml.Node `yaml:"operand"`
}

type rawPly struct {
	Mat        string         `yaml:"mat"`
	Angle      float64        `yaml:"angle"`
	Thickness  yaml.Node      `yaml:"thickness"`
	Parent     string         `yaml:"parent"`
	Conditions []rawCondition `yaml:"conditions"`
	Key        int            `yaml:"key"`
}

// Load parses a single YAML layup file into a validated layup model.
func (l *Loader) Load(ctx context.Context, path string) (*layup.Config, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layup file %s: %w", path, err)
	}

	var root rawRoot
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode layup file %s: %w", path, err)
	}

	cfg := &layup.Config{Datums: make(map[string]layup.Datum, len(root.Datums))}
	for name, raw := range root.Datums {
		datum, err := translateDatum(name, raw)
		if err != nil {
			return nil, err
		}
		cfg.Datums[name] = datum
	}
	for i, raw := range root.Plies {
		ply, err := translatePly(i, raw)
		if err != nil {
			return nil, err
		}
		cfg.Plies = append(cfg.Plies, ply)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Layup configuration loaded.", "datums", len(cfg.Datums), "plies", len(cfg.Plies))
	return cfg, nil
}

func translateDatum(name string, raw rawDatum) (layup.Datum, error) {
	knots := make([]layup.Knot, len(raw.Values))
	for i, pair := range raw.Values {
		if len(pair) != 2 {
			return layup.Datum{}, &layup.ValidationError{
				Msg: fmt.Sprintf("datum %q: knot %d must be an [x, y] pair, got %d values", name, i, len(pair)),
			}
		}
		knots[i] = layup.Knot{X: pair[0], Y: pair[1]}
	}
	return layup.Datum{Base: raw.Base, Values: knots}, nil
}

func translatePly(i int, raw rawPly) (layup.Ply, error) {
	thickness, err := translateThickness(i, raw.Thickness)
	if err != nil {
		return layup.Ply{}, err
	}

	conditions := make([]layup.Condition, len(raw.Conditions))
	for j, rawCond := range raw.Conditions {
		cond, err := translateCondition(i, j, rawCond)
		if err != nil {
			return layup.Ply{}, err
		}
		conditions[j] = cond
	}

	return layup.Ply{
		Material:   raw.Mat,
		Angle:      raw.Angle,
		Thickness:  thickness,
		Parent:     raw.Parent,
		Conditions: conditions,
		Key:        raw.Key,
	}, nil
}

// translateThickness accepts a YAML scalar that is either a number
// (constant thickness) or a string (datum name or arithmetic expression).
func translateThickness(ply int, node yaml.Node) (layup.Thickness, error) {
	if node.IsZero() {
		return layup.Thickness{}, &layup.ValidationError{
			Msg: fmt.Sprintf("ply %d: thickness is missing", ply),
		}
	}
	var f float64
	if err := node.Decode(&f); err == nil {
		return layup.ConstantThickness(f), nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		return layup.ExpressionThickness(s), nil
	}
	return layup.Thickness{}, &layup.ValidationError{
		Msg: fmt.Sprintf("ply %d: thickness must be a number or a string", ply),
	}
}

// translateCondition resolves the loosely typed operand into its tagged
// variant: number, [min, max] pair, or datum name.
func translateCondition(ply, i int, raw rawCondition) (layup.Condition, error) {
	if raw.Operand.IsZero() {
		return layup.Condition{}, &layup.ValidationError{
			Msg: fmt.Sprintf("ply %d: condition %d: operand is missing", ply, i),
		}
	}

	var operand layup.Operand

	var f float64
	var pair []float64
	var s string
	switch {
	case raw.Operand.Decode(&f) == nil:
		operand = layup.LiteralOperand(f)
	case raw.Operand.Decode(&pair) == nil:
		if len(pair) != 2 {
			return layup.Condition{}, &layup.ValidationError{
				Msg: fmt.Sprintf("ply %d: condition %d: operand list must be [min, max], got %d values", ply, i, len(pair)),
			}
		}
		operand = layup.RangeOperand(pair[0], pair[1])
	case raw.Operand.Decode(&s) == nil:
		operand = layup.DatumOperand(s)
	default:
		return layup.Condition{}, &layup.ValidationError{
			Msg: fmt.Sprintf("ply %d: condition %d: operand must be a number, [min, max], or datum name", ply, i),
		}
	}

	return layup.Condition{
		Field:   raw.Field,
		Op:      layup.Operator(raw.Operator),
		Operand: operand,
	}, nil
}
