package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/drapego/internal/ctxlog"
	"github.com/vk/drapego/internal/engine"
	"github.com/vk/drapego/internal/field"
	"github.com/vk/drapego/internal/matdb"
)

// Run executes the full draping pipeline: load the layup config and the
// material database, read the cell table, run the engine, and write the
// augmented table to the output path.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	cfg, err := a.loader.Load(ctx, a.config.LayupPath)
	if err != nil {
		return fmt.Errorf("failed to load layup configuration: %w", err)
	}
	a.logger.Debug("Layup configuration loaded.", "plies", len(cfg.Plies), "datums", len(cfg.Datums))

	registry, err := matdb.Load(a.config.MaterialsPath)
	if err != nil {
		return err
	}
	a.logger.Debug("Material database loaded.", "materials", registry.Len())

	table, err := a.readFields()
	if err != nil {
		return err
	}
	a.logger.Debug("Cell table loaded.", "cells", table.Len(), "fields", len(table.Names()))

	eng := engine.New(cfg, registry, engine.WithWorkers(a.config.Workers))
	out, err := eng.Run(ctx, table)
	if err != nil {
		return fmt.Errorf("draping failed: %w", err)
	}

	if err := a.writeFields(out); err != nil {
		return err
	}
	a.logger.Info("Output written.", "path", a.config.OutputPath, "columns", len(out.Names()))
	return nil
}

func (a *App) readFields() (*field.Table, error) {
	f, err := os.Open(a.config.FieldsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cell fields: %w", err)
	}
	defer f.Close()

	table, err := field.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read cell fields %s: %w", a.config.FieldsPath, err)
	}
	return table, nil
}

func (a *App) writeFields(table *field.Table) error {
	f, err := os.Create(a.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := field.WriteCSV(f, table); err != nil {
		return fmt.Errorf("failed to write output %s: %w", a.config.OutputPath, err)
	}
	return nil
}
