// Package schema holds the raw, gohcl-decodable structures of the HCL
// layup format. The hclcfg loader translates these into the validated
// layup model; nothing else should depend on this package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Datum represents a `datum "name" { ... }` block: a named tapering
// profile of (x, y) knot pairs over a base field.
type Datum struct {
	Name   string      `hcl:"name,label"`
	Base   string      `hcl:"base"`
	Values [][]float64 `hcl:"values"`
}

// Condition represents a `condition { ... }` block inside a ply. Exactly
// one of Value, Range, or Datum must be set; the loader enforces this.
type Condition struct {
	Field    string    `hcl:"field"`
	Operator string    `hcl:"operator"`
	Value    *float64  `hcl:"value,optional"`
	Range    []float64 `hcl:"range,optional"`
	Datum    *string   `hcl:"datum,optional"`
}

// Ply represents a `ply "name" { ... }` block. Thickness is captured as a
// raw cty value because the format accepts either a number or a string
// (datum name or arithmetic expression).
type Ply struct {
	Name       string       `hcl:"name,label"`
	Material   string       `hcl:"material"`
	Angle      float64      `hcl:"angle"`
	Thickness  cty.Value    `hcl:"thickness"`
	Parent     string       `hcl:"parent"`
	Key        int          `hcl:"key"`
	Conditions []*Condition `hcl:"condition,block"`
}

// Root represents the top-level structure of a layup file.
type Root struct {
	Datums []*Datum `hcl:"datum,block"`
	Plies  []*Ply   `hcl:"ply,block"`
	Remain hcl.Body `hcl:",remain"`
}
