package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/drapego/internal/layup"
)

func writeLayup(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTranslatesOriginalSchema(t *testing.T) {
	path := writeLayup(t, `
datums:
  te_offset:
    base: r
    values:
      - [0, 0.001]
      - [1, 0.002]
plies:
  - mat: carbon
    angle: 0
    thickness: 0.001
    parent: plate
    key: 100
    conditions:
      - field: x
        operator: in_range
        operand: [0, 1]
      - field: distance_from_te
        operator: ">"
        operand: te_offset
`)

	cfg, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, cfg.Plies, 1)
	ply := cfg.Plies[0]
	assert.Equal(t, "carbon", ply.Material)
	assert.Equal(t, "plate", ply.Parent)
	assert.Equal(t, 100, ply.Key)
	assert.Equal(t, layup.ConstantThickness(0.001), ply.Thickness)

	require.Len(t, ply.Conditions, 2)
	assert.Equal(t, layup.RangeOperand(0, 1), ply.Conditions[0].Operand)
	assert.Equal(t, layup.DatumOperand("te_offset"), ply.Conditions[1].Operand)

	datum, ok := cfg.Datums["te_offset"]
	require.True(t, ok)
	assert.Equal(t, "r", datum.Base)
	assert.Equal(t, []layup.Knot{{X: 0, Y: 0.001}, {X: 1, Y: 0.002}}, datum.Values)
}

func TestLoadLiteralOperandAndExpressionThickness(t *testing.T) {
	path := writeLayup(t, `
datums:
  t1:
    base: x
    values: [[0, 0.001], [1, 0.002]]
  t2:
    base: x
    values: [[0, 0.1], [1, 0.2]]
plies:
  - mat: carbon
    angle: 90
    thickness: t1 + t2
    parent: web
    key: 5
    conditions:
      - field: x
        operator: ">"
        operand: 0.5
`)

	cfg, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	ply := cfg.Plies[0]
	assert.Equal(t, layup.LiteralOperand(0.5), ply.Conditions[0].Operand)
	assert.Equal(t, layup.ThicknessExpression, ply.Thickness.Kind)
	assert.Equal(t, "t1 + t2", ply.Thickness.Ref)
}

func TestLoadDatumNameThicknessNarrowsToDatumKind(t *testing.T) {
	path := writeLayup(t, `
datums:
  taper:
    base: r
    values: [[0, 0.002], [1, 0.001]]
plies:
  - mat: carbon
    angle: 0
    thickness: taper
    parent: shell
    key: 1
    conditions: []
`)

	cfg, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, layup.ThicknessDatum, cfg.Plies[0].Thickness.Kind)
	assert.Equal(t, "taper", cfg.Plies[0].Thickness.Ref)
}

func TestLoadRejectsMalformedOperand(t *testing.T) {
	path := writeLayup(t, `
plies:
  - mat: carbon
    angle: 0
    thickness: 0.001
    parent: shell
    key: 1
    conditions:
      - field: x
        operator: in_range
        operand: [0, 1, 2]
`)

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)

	var validationErr *layup.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestLoadRejectsUnknownOperatorThroughValidation(t *testing.T) {
	path := writeLayup(t, `
plies:
  - mat: carbon
    angle: 0
    thickness: 0.001
    parent: shell
    key: 1
    conditions:
      - field: x
        operator: "<"
        operand: 1
`)

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operator")
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
