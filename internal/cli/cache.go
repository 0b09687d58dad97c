package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimforge/internal/pipeline"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the report cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached reports",
	Long:  `Remove every cached report from memory and from the cache directory (cache.dir).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Clear even when caching is switched off for this run
		cfg.Cache.Enabled = true

		if err := pipeline.NewPipeline(cfg, logger).ClearCache(); err != nil {
			return err
		}
		if cfg.Cache.Dir != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared cache: %s\n", cfg.Cache.Dir)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared cache")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
