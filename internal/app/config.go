package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Files      []string // explicit module files to bundle
	Complete   bool     // bundle the whole source directory instead
	ConfigPath string   // layout file (hcl)
	SourceDir  string   // optional override of the layout's source directory

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if !cfg.Complete && len(cfg.Files) == 0 {
		return nil, errors.New("either --complete or at least one module file is required")
	}

	return &cfg, nil
}
