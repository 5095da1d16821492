package app

import (
	"fmt"

	"github.com/vk/drapego/internal/engine"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LayupPath     string
	MaterialsPath string
	FieldsPath    string
	OutputPath    string
	LogFormat     string
	LogLevel      string
	Workers       int
}

// NewConfig validates a Config and applies defaults.
func NewConfig(c Config) (*Config, error) {
	if c.LayupPath == "" {
		return nil, fmt.Errorf("layup config path is required")
	}
	if c.MaterialsPath == "" {
		return nil, fmt.Errorf("material database path is required")
	}
	if c.FieldsPath == "" {
		return nil, fmt.Errorf("cell fields path is required")
	}
	if c.OutputPath == "" {
		c.OutputPath = "draped.csv"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Workers <= 0 {
		c.Workers = engine.DefaultWorkers
	}
	return &c, nil
}
