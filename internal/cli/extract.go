package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimforge/internal/extract"
	"github.com/ppiankov/claimforge/internal/model"
	"github.com/ppiankov/claimforge/internal/pipeline"
)

var extractText string

// extraction is the JSON shape printed by the extract command
type extraction struct {
	Source      string            `json:"source"`
	Language    model.Language    `json:"language"`
	Parts       model.ParsedParts `json:"parts"`
	Known       []string          `json:"known_features"`
	Distinctive []string          `json:"distinctive_features"`
}

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file|url|-]",
	Short: "Show the parts and feature phrases found in a description",
	Long: `Extract runs only the section extractor and feature splitter and prints
the result as JSON. Use it to see why a generated claim looks the way it does.

Example:
  claimforge extract invention.txt
  claimforge extract -l en --text "Title: Lamp. Known features: base, shade."`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyHTTPFlags(cmd, cfg)

		out := extraction{Source: "text", Language: cfg.Generation.Language}
		text := extractText
		if text == "" {
			if len(args) == 1 && args[0] != "-" {
				src, err := pipeline.NewPipeline(cfg, logger).Load(ctx, args[0])
				if err != nil {
					return fmt.Errorf("extract failed: %w", err)
				}
				out.Source = src.Name
				text = src.Text
			} else {
				out.Source = "stdin"
				if text, err = readStdin(cmd, len(args) == 1); err != nil {
					return err
				}
			}
		}

		out.Parts = extract.Sections(text, out.Language)
		out.Known = nonNil(extract.Features(out.Parts.Known, out.Language))
		out.Distinctive = nonNil(extract.Features(out.Parts.Distinctive, out.Language))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractText, "text", "t", "", "description text (instead of a file or URL)")
	extractCmd.Flags().Duration("timeout", defaultTimeout, "overall timeout")
	addHTTPFlags(extractCmd)
}

// nonNil keeps empty feature lists as [] in JSON output
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
