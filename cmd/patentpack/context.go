package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/JPK85/patentpack/internal/config"
	"github.com/JPK85/patentpack/internal/logging"
)

// globalOptions carries the persistent flags and the config/logger they
// resolve to once PersistentPreRunE has run.
type globalOptions struct {
	configPath   string
	logLevel     string
	outputFormat string

	cfg *config.Config
	log logging.Logger
}

// init loads configuration and constructs the logger shared by every
// subcommand. A config load failure is returned as-is and stops the
// command; defaults are only applied by config.Load itself to fields the
// file and environment leave unset.
func (o *globalOptions) init(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = strings.ToLower(o.logLevel)
	}
	o.cfg = cfg

	logCfg := logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return err
	}
	o.log = logger
	return nil
}
