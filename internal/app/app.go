// Package app is the composition root: it wires the configured loader,
// the material registry, the cell table IO, and the draping engine into a
// single run.
package app

import (
	"io"
	"log/slog"

	"github.com/vk/drapego/internal/layup"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader layup.Loader
}

// NewApp is the constructor for the main application. The loader is
// injected so the binary can pick the format (HCL, YAML) by file
// extension while the app stays format-agnostic.
func NewApp(outW io.Writer, config *Config, loader layup.Loader) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: config,
		loader: loader,
	}
}
