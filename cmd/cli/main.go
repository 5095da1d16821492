package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/drapego/internal/app"
	"github.com/vk/drapego/internal/cli"
	"github.com/vk/drapego/internal/hclcfg"
	"github.com/vk/drapego/internal/layup"
	"github.com/vk/drapego/internal/yamlcfg"
)

// main is the entrypoint for the drapego application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader, err := newLoader(appConfig.LayupPath)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	drapegoApp := app.NewApp(outW, appConfig, loader)
	return drapegoApp.Run(context.Background())
}

// newLoader picks the configuration loader by file extension. Directories
// are assumed to hold .hcl files.
func newLoader(path string) (layup.Loader, error) {
	switch filepath.Ext(path) {
	case ".hcl", "":
		return hclcfg.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlcfg.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported layup format %q: expected .hcl, .yaml, or .yml", filepath.Ext(path))
	}
}
