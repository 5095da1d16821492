// Package matdb loads the material database and exposes it as a read-only
// name to id registry.
package matdb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Material is a single material database entry. Only the id participates
// in draping; mechanical properties belong to downstream analysis tools.
type Material struct {
	ID int `json:"id"`
}

// Registry maps material names to integer ids. It is immutable after
// construction.
type Registry struct {
	mats map[string]Material
}

// Load reads a JSON material database file of the form
// {"carbon": {"id": 1}, ...}.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open material database: %w", err)
	}
	defer f.Close()

	reg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse material database %s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes a JSON material database from a stream.
func Parse(r io.Reader) (*Registry, error) {
	// Entries may carry extra properties (density, moduli); only the id
	// matters here, the rest is passed through to analysis tools untouched.
	var mats map[string]Material
	if err := json.NewDecoder(r).Decode(&mats); err != nil {
		return nil, err
	}
	return &Registry{mats: mats}, nil
}

// FromMap builds a registry from a plain name to id map. Intended for
// tests and programmatic use.
func FromMap(ids map[string]int) *Registry {
	mats := make(map[string]Material, len(ids))
	for name, id := range ids {
		mats[name] = Material{ID: id}
	}
	return &Registry{mats: mats}
}

// Lookup returns the id for a material name and whether it exists.
func (r *Registry) Lookup(name string) (int, bool) {
	m, ok := r.mats[name]
	return m.ID, ok
}

// Names returns all material names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.mats))
	for name := range r.mats {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of materials.
func (r *Registry) Len() int { return len(r.mats) }
