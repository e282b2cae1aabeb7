package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/devicedetector/pkg/config"
)

// Version is set at build time.
var Version = "dev"

type rootFlags struct {
	envFiles  []string
	rulesDir  string
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "uadetect",
		Short: "Classify user-agent strings into browsers and portable media players",
		Long: `uadetect matches user-agent strings against ordered rule-sets and reports
the browser (name, version, rendering engine) and the portable media player
(brand, model) they identify.

Rules and catalogs are embedded; --rules points at a directory holding
replacements with the same file names.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringSliceVar(&flags.envFiles, "env-file", nil, "env files to load, later files override earlier ones (default .env when present)")
	pf.StringVar(&flags.rulesDir, "rules", "", "rules directory (default embedded rules)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: json, text")

	cmd.AddCommand(
		newClassifyCmd(flags),
		newValidateCmd(flags),
		newServeCmd(flags),
	)
	return cmd
}

// loadConfig reads the configuration and applies the flags set on cmd.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.envFiles...)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("rules") {
		cfg.RulesDir = f.rulesDir
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if changed("watch") {
		cfg.WatchRules, _ = cmd.Flags().GetBool("watch")
	}
	if changed("addr") {
		cfg.HTTPAddr, _ = cmd.Flags().GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
