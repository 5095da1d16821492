// Package layup holds the validated, format-agnostic model of a laminate
// layup configuration: tapering datums, conditions, and the ordered ply
// list. Loaders (HCL, YAML) translate their raw schemas into this model;
// the engine consumes it read-only.
package layup

import "context"

// Operator identifies a per-cell condition predicate.
type Operator string

const (
	// OpInRange selects cells whose field value lies inside an inclusive
	// [min, max] interval.
	OpInRange Operator = "in_range"
	// OpGreaterThan selects cells whose field value exceeds a literal or
	// an interpolated datum profile.
	OpGreaterThan Operator = ">"
)

// Knot is a single (x, y) control point of a datum profile.
type Knot struct {
	X float64
	Y float64
}

// Datum is a named 1-D tapering profile: piecewise-linear (x, y) knots
// evaluated against a base field of the cell table.
type Datum struct {
	Base   string
	Values []Knot
}

// OperandKind discriminates the condition operand variant.
type OperandKind int

const (
	// OperandLiteral is a plain numeric comparison value.
	OperandLiteral OperandKind = iota
	// OperandRange is an inclusive [min, max] interval.
	OperandRange
	// OperandDatum references a datum profile by name; the profile is
	// interpolated over its own base field before comparison.
	OperandDatum
)

// Operand is the tagged operand of a condition. Exactly one variant is
// populated, selected by Kind. Loaders resolve the variant once at load
// time so evaluation never re-inspects raw configuration values.
type Operand struct {
	Kind    OperandKind
	Literal float64
	Min     float64
	Max     float64
	Datum   string
}

// LiteralOperand returns an Operand carrying a plain numeric value.
func LiteralOperand(v float64) Operand {
	return Operand{Kind: OperandLiteral, Literal: v}
}

// RangeOperand returns an Operand carrying an inclusive interval.
func RangeOperand(min, max float64) Operand {
	return Operand{Kind: OperandRange, Min: min, Max: max}
}

// DatumOperand returns an Operand referencing a datum profile by name.
func DatumOperand(name string) Operand {
	return Operand{Kind: OperandDatum, Datum: name}
}

// Condition is a single per-cell predicate. A ply's conditions are
// combined by conjunction; an empty condition list matches every cell.
type Condition struct {
	Field   string
	Op      Operator
	Operand Operand
}

// ThicknessKind discriminates the thickness specification variant.
type ThicknessKind int

const (
	// ThicknessConstant broadcasts a single value to every cell.
	ThicknessConstant ThicknessKind = iota
	// ThicknessDatum interpolates a named datum over its base field.
	ThicknessDatum
	// ThicknessExpression evaluates a restricted arithmetic expression
	// over declared datum names, elementwise.
	ThicknessExpression
)

// Thickness is the tagged thickness specification of a ply. For the datum
// and expression kinds, Ref holds the datum name or the expression source.
type Thickness struct {
	Kind     ThicknessKind
	Constant float64
	Ref      string
}

// ConstantThickness returns a Thickness broadcasting a single value.
func ConstantThickness(v float64) Thickness {
	return Thickness{Kind: ThicknessConstant, Constant: v}
}

// ExpressionThickness returns a Thickness evaluated from source text.
// Validate narrows it to the datum kind when the source is exactly the
// name of a declared datum.
func ExpressionThickness(src string) Thickness {
	return Thickness{Kind: ThicknessExpression, Ref: src}
}

// Ply is one layer of material applied to the subset of cells selected by
// its conditions. Key is the primary sort criterion for stacking order;
// definition order breaks ties.
type Ply struct {
	Material   string
	Angle      float64
	Thickness  Thickness
	Parent     string
	Conditions []Condition
	Key        int
}

// Config is the complete layup definition: the datum map plus the plies in
// definition order. It is immutable once validated.
type Config struct {
	Datums map[string]Datum
	Plies  []Ply
}

// Loader loads a layup configuration from a path. Implementations exist
// for the HCL and YAML formats; both produce the same validated model.
type Loader interface {
	Load(ctx context.Context, path string) (*Config, error)
}
