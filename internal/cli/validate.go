package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimforge/internal/morph"
	"github.com/ppiankov/claimforge/internal/validate"
)

var validateText string

// errInvalidClaims makes validate exit non-zero without repeating the issues
var errInvalidClaims = errors.New("claim set is invalid")

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Check the structure of a claim set",
	Long: `Validate checks a claim set, one claim per line with optional numbering:
- The first claim is independent and references no other claim
- The first claim has a title, known features, distinctive features and effect
- The first claim does not repeat a feature phrase
- Every further claim references a preceding claim

Exits with a non-zero status when any check fails.

Example:
  claimforge validate claims.txt
  claimforge validate -l en --text "1. Lamp, including base, distinguished in that LED, provides light."`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		text := validateText
		if text == "" {
			if len(args) == 1 && args[0] != "-" {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read claims: %w", err)
				}
				text = string(data)
			} else if text, err = readStdin(cmd, len(args) == 1); err != nil {
				return err
			}
		}

		result := validate.NewValidator(cfg.Generation.Language, morph.NewSnowball()).Validate(text)

		out := cmd.OutOrStdout()
		if result.Valid {
			fmt.Fprintf(out, "✓ %d claim(s) valid\n", result.Claims)
			return nil
		}
		for _, e := range result.Errors {
			fmt.Fprintf(out, "✗ %s\n", e)
		}
		return errInvalidClaims
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateText, "text", "t", "", "claim text (instead of a file)")
}
