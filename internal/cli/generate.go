package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/claimforge/internal/model"
	"github.com/ppiankov/claimforge/internal/pipeline"
)

var (
	outJSON  string
	outMD    string
	noFooter bool
	genText  string
	genParts model.ParsedParts
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate [file|url|-]",
	Aliases: []string{"gen"},
	Short:   "Generate an independent claim from an invention description",
	Long: `Generate reads an invention description and drafts the first claim:
- Locate the title, known features, distinctive features and effect
- Split features into phrases and drop phrases that repeat earlier ones
- Assemble the claim with the standard connectives
- Validate the claim structure and score the result

The description can be a file, an http(s) URL, "-" or piped stdin, or
inline text via --text. Parts can also be given directly, skipping extraction.

Example:
  claimforge generate invention.txt
  claimforge generate https://example.com/invention --json claim.json --md claim.md
  claimforge generate --text "Насос, включающий корпус..." --variants 3
  claimforge generate -l en --name "Water purifier" --known "housing, filter" \
      --distinctive "UV emitter" --effect "disinfects water"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Input flags
	generateCmd.Flags().StringVarP(&genText, "text", "t", "", "description text (instead of a file or URL)")
	generateCmd.Flags().StringVar(&genParts.Name, "name", "", "invention title (skips extraction)")
	generateCmd.Flags().StringVar(&genParts.Known, "known", "", "known features (skips extraction)")
	generateCmd.Flags().StringVar(&genParts.Distinctive, "distinctive", "", "distinctive features (skips extraction)")
	generateCmd.Flags().StringVar(&genParts.Effect, "effect", "", "technical effect (skips extraction)")

	// Output flags
	generateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	generateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	generateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	generateCmd.Flags().Duration("timeout", defaultTimeout, "overall timeout")
	addHTTPFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := contextWithTimeout(cmd)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyHTTPFlags(cmd, cfg)
	if noFooter {
		cfg.Output.IncludeFooter = false
	}

	p := pipeline.NewPipeline(cfg, logger)

	report, err := buildReport(ctx, cmd, p, args)
	if err != nil {
		return err
	}

	logger.Info("claim generated",
		zap.String("source", report.Source),
		zap.Int("index", report.Score.Index),
		zap.Bool("valid", report.Validation.Valid),
		zap.Bool("cached", report.Cached),
	)

	if err := p.RenderReport(cmd.OutOrStdout(), report, outJSON, outMD, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// buildReport picks the input mode: explicit parts, inline text, a source
// argument, or stdin
func buildReport(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, args []string) (*model.Report, error) {
	if !genParts.IsEmpty() {
		return p.RunParts("flags", genParts), nil
	}

	if genText != "" {
		return p.Run(ctx, "text", genText)
	}

	if len(args) == 1 && args[0] != "-" {
		report, err := p.Process(ctx, args[0])
		if err != nil {
			return nil, fmt.Errorf("generate failed: %w", err)
		}
		return report, nil
	}

	text, err := readStdin(cmd, len(args) == 1)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, "stdin", text)
}

// readStdin reads the description from the command input. Without an
// explicit "-" an interactive terminal is rejected instead of blocking.
func readStdin(cmd *cobra.Command, explicit bool) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !explicit {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", errors.New("no description: pass a file, URL, --text or pipe text to stdin")
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("no description: stdin is empty")
	}
	return text, nil
}
