package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/devicedetector/pkg/useragent"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a rules directory loads",
		Long: `Load every rule-set and catalog and build both classifiers, reporting all
problems at once: missing files, invalid patterns, names missing from a
catalog and unknown engines.

Without --rules the embedded rules are checked.

Examples:
  uadetect validate --rules ./rules`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			fsys := useragent.Fixtures()
			source := "embedded rules"
			if cfg.RulesDir != "" {
				fsys = os.DirFS(cfg.RulesDir)
				source = cfg.RulesDir
			}
			if err := useragent.ValidateFixtures(fsys); err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}

			browser, err := useragent.NewBrowserClassifier(fsys)
			if err != nil {
				return err
			}
			player, err := useragent.NewPortableMediaPlayerClassifier(fsys)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d browser rules, %d portable media player rules)\n",
				source, browser.RuleCount(), player.RuleCount())
			return nil
		},
	}
}
