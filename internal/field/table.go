// Package field provides the per-cell scalar table the engine reads and
// augments. Columns are named, equally sized, and either float or integer
// valued. The mesh collaborator is responsible for delivering cell-aligned
// data; this package never touches mesh geometry.
package field

import (
	"fmt"

	"github.com/vk/drapego/internal/layup"
)

// Kind discriminates the column value type.
type Kind int

const (
	Float Kind = iota
	Int
)

// Column is a single named data column. Exactly one of Floats or Ints is
// populated, selected by Kind.
type Column struct {
	Kind   Kind
	Floats []float64
	Ints   []int64
}

// Table is an ordered collection of equally sized columns over N cells.
type Table struct {
	n     int
	names []string
	cols  map[string]Column
}

// NewTable creates an empty table for n cells.
func NewTable(n int) *Table {
	return &Table{n: n, cols: make(map[string]Column)}
}

// Len returns the cell count N.
func (t *Table) Len() int { return t.n }

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the raw column and whether it exists.
func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.cols[name]
	return c, ok
}

// Float returns the float column with the given name. A missing column is
// a DataAvailabilityError; an integer column is a type error.
func (t *Table) Float(name string) ([]float64, error) {
	c, ok := t.cols[name]
	if !ok {
		return nil, &layup.DataAvailabilityError{Field: name}
	}
	if c.Kind != Float {
		return nil, fmt.Errorf("column %q is not float valued", name)
	}
	return c.Floats, nil
}

// AddFloat appends a float column. The name must be unused and the slice
// length must match the table's cell count.
func (t *Table) AddFloat(name string, vals []float64) error {
	if err := t.check(name, len(vals)); err != nil {
		return err
	}
	t.names = append(t.names, name)
	t.cols[name] = Column{Kind: Float, Floats: vals}
	return nil
}

// AddInt appends an integer column under the same rules as AddFloat.
func (t *Table) AddInt(name string, vals []int64) error {
	if err := t.check(name, len(vals)); err != nil {
		return err
	}
	t.names = append(t.names, name)
	t.cols[name] = Column{Kind: Int, Ints: vals}
	return nil
}

func (t *Table) check(name string, length int) error {
	if name == "" {
		return fmt.Errorf("column name is empty")
	}
	if _, ok := t.cols[name]; ok {
		return fmt.Errorf("column %q already exists", name)
	}
	if length != t.n {
		return fmt.Errorf("column %q has %d values, table holds %d cells", name, length, t.n)
	}
	return nil
}

// Clone returns a new table sharing the value slices but with independent
// name and column bookkeeping, so columns added to the clone never appear
// on the original.
func (t *Table) Clone() *Table {
	out := &Table{
		n:     t.n,
		names: make([]string, len(t.names)),
		cols:  make(map[string]Column, len(t.cols)),
	}
	copy(out.names, t.names)
	for name, c := range t.cols {
		out.cols[name] = c
	}
	return out
}
