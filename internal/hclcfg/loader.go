// Package hclcfg is the HCL implementation of the layup.Loader interface.
package hclcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/drapego/internal/ctxlog"
	"github.com/vk/drapego/internal/layup"
	"github.com/vk/drapego/internal/schema"
)

// Loader loads layup configuration from .hcl files.
type Loader struct{}

// NewLoader creates a new HCL layup loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the given path, a single .hcl file or a directory walked in
// lexical order, and translates the blocks into a validated layup model.
// Ply definition order follows file order, then block order within a file.
func (l *Loader) Load(ctx context.Context, path string) (*layup.Config, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findHCLFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found at %s", path)
	}
	logger.Debug("Discovered layup files.", "count", len(files))

	cfg := &layup.Config{Datums: make(map[string]layup.Datum)}
	plyNames := make(map[string]struct{})
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse layup file %s: %w", file, diags)
		}

		var root schema.Root
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode layup file %s: %w", file, diags)
		}

		for _, rawDatum := range root.Datums {
			if _, dup := cfg.Datums[rawDatum.Name]; dup {
				return nil, &layup.ValidationError{Msg: fmt.Sprintf("duplicate datum %q in %s", rawDatum.Name, file)}
			}
			datum, err := translateDatum(rawDatum)
			if err != nil {
				return nil, err
			}
			cfg.Datums[rawDatum.Name] = datum
		}
		for _, rawPly := range root.Plies {
			if _, dup := plyNames[rawPly.Name]; dup {
				return nil, &layup.ValidationError{Msg: fmt.Sprintf("duplicate ply %q in %s", rawPly.Name, file)}
			}
			plyNames[rawPly.Name] = struct{}{}
			ply, err := translatePly(rawPly)
			if err != nil {
				return nil, err
			}
			cfg.Plies = append(cfg.Plies, ply)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Layup configuration loaded.", "datums", len(cfg.Datums), "plies", len(cfg.Plies))
	return cfg, nil
}

// findHCLFiles returns the .hcl files under path, a file or a directory.
func findHCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".hcl" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
