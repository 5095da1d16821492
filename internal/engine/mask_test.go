package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/drapego/internal/field"
	"github.com/vk/drapego/internal/layup"
	"github.com/vk/drapego/internal/matdb"
)

func maskEngine(cfg *layup.Config) *Engine {
	return New(cfg, matdb.FromMap(map[string]int{"carbon": 1}))
}

func TestEvalMaskInRangeIsInclusiveAtBothBounds(t *testing.T) {
	table := field.NewTable(5)
	require.NoError(t, table.AddFloat("x", []float64{-0.001, 0, 0.5, 1, 1.001}))

	ply := &layup.Ply{Conditions: []layup.Condition{
		{Field: "x", Op: layup.OpInRange, Operand: layup.RangeOperand(0, 1)},
	}}

	mask, err := maskEngine(&layup.Config{}).evalMask(ply, table)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true, true, false}, mask)
}

func TestEvalMaskGreaterThanLiteralIsStrict(t *testing.T) {
	table := field.NewTable(3)
	require.NoError(t, table.AddFloat("x", []float64{0.9, 1.0, 1.1}))

	ply := &layup.Ply{Conditions: []layup.Condition{
		{Field: "x", Op: layup.OpGreaterThan, Operand: layup.LiteralOperand(1.0)},
	}}

	mask, err := maskEngine(&layup.Config{}).evalMask(ply, table)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true}, mask)
}

func TestEvalMaskConditionsCombineByConjunction(t *testing.T) {
	table := field.NewTable(4)
	require.NoError(t, table.AddFloat("x", []float64{0.5, 0.5, 2.0, 2.0}))
	require.NoError(t, table.AddFloat("y", []float64{0.5, 2.0, 0.5, 2.0}))

	ply := &layup.Ply{Conditions: []layup.Condition{
		{Field: "x", Op: layup.OpInRange, Operand: layup.RangeOperand(0, 1)},
		{Field: "y", Op: layup.OpInRange, Operand: layup.RangeOperand(0, 1)},
	}}

	mask, err := maskEngine(&layup.Config{}).evalMask(ply, table)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, false}, mask)
}

func TestEvalMaskEmptyConditionsSelectsEverything(t *testing.T) {
	table := field.NewTable(2)
	require.NoError(t, table.AddFloat("x", []float64{1, 2}))

	mask, err := maskEngine(&layup.Config{}).evalMask(&layup.Ply{}, table)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, mask)
}

func TestEvalMaskDoesNotMutateTable(t *testing.T) {
	table := field.NewTable(2)
	require.NoError(t, table.AddFloat("x", []float64{0.25, 0.75}))

	ply := &layup.Ply{Conditions: []layup.Condition{
		{Field: "x", Op: layup.OpInRange, Operand: layup.RangeOperand(0, 0.5)},
	}}

	_, err := maskEngine(&layup.Config{}).evalMask(ply, table)
	require.NoError(t, err)

	values, err := table.Float("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.75}, values)
	assert.Equal(t, []string{"x"}, table.Names())
}
