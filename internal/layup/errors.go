package layup

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed ply, datum, or material schema. It
// is raised before any evaluation work starts.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "invalid layup config: " + e.Msg
}

// RefKind names the namespace a dangling reference points into.
type RefKind string

const (
	RefDatum    RefKind = "datum"
	RefMaterial RefKind = "material"
	RefField    RefKind = "field"
)

// ReferenceError reports one or more names that do not resolve in their
// namespace: a condition or thickness naming an undeclared datum, or a ply
// naming a material absent from the registry.
type ReferenceError struct {
	Kind  RefKind
	Names []string
}

func (e *ReferenceError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("unknown %s %q", e.Kind, e.Names[0])
	}
	return fmt.Sprintf("unknown %ss: %s", e.Kind, strings.Join(e.Names, ", "))
}

// NewReferenceError builds a ReferenceError for the given names.
func NewReferenceError(kind RefKind, names ...string) *ReferenceError {
	return &ReferenceError{Kind: kind, Names: names}
}

// ExpressionError reports a thickness expression that failed to parse,
// used a non-arithmetic construct, or referenced an unresolved identifier.
type ExpressionError struct {
	Expr   string
	Reason string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("invalid thickness expression %q: %s", e.Expr, e.Reason)
}

// DataAvailabilityError reports a required field missing from the cell
// table.
type DataAvailabilityError struct {
	Field string
}

func (e *DataAvailabilityError) Error() string {
	return fmt.Sprintf("required field %q not present in cell table", e.Field)
}
