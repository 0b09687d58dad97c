package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/claimforge/internal/model"
)

// headings holds the localised labels of the terminal summary
type headings struct {
	claims  string
	variant string // %d variant number
	invalid string
}

var summaryHeadings = map[model.Language]headings{
	model.LanguageRU: {
		claims:  "Сгенерированные формулы:",
		variant: "Вариант %d:",
		invalid: "Замечания:",
	},
	model.LanguageEN: {
		claims:  "Generated claims:",
		variant: "Variant %d:",
		invalid: "Issues:",
	},
}

// Renderer writes reports as JSON, Markdown and terminal summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the report as Markdown
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// Markdown formats the report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	subject := report.Subject
	if subject == "" {
		subject = "Untitled invention"
	}
	fmt.Fprintf(&b, "# Claim Report: %s\n\n", subject)
	if report.Source != "" {
		fmt.Fprintf(&b, "**Source:** %s  \n", report.Source)
	}
	fmt.Fprintf(&b, "**Generated:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "**Options:** style=%s, variants=%d, language=%s\n\n",
		report.Options.Style, report.Options.Variants, report.Options.Language)

	b.WriteString("## Claims\n\n")
	claims := report.Result.Claims()
	if len(claims) == 1 {
		fmt.Fprintf(&b, "%s\n\n", claims[0])
	} else {
		for i, c := range claims {
			fmt.Fprintf(&b, "%d. %s\n", i+1, c)
		}
		b.WriteString("\n")
	}
	if report.Result.Narrow != report.Result.Wide {
		fmt.Fprintf(&b, "**Narrow (features as written):** %s\n\n", report.Result.Narrow)
	}

	b.WriteString("## Extracted Parts\n\n")
	b.WriteString("| Part | Text |\n")
	b.WriteString("|------|------|\n")
	parts := report.Result.Parts
	for _, row := range [][2]string{
		{"Name", parts.Name},
		{"Known features", parts.Known},
		{"Distinctive features", parts.Distinctive},
		{"Effect", parts.Effect},
	} {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], markdownCell(row[1]))
	}
	fmt.Fprintf(&b, "\nDuplicate rate: %.1f%% (%d phrases removed)\n\n",
		report.Result.DuplicateRate, report.Result.Removed)

	b.WriteString("## Validation\n\n")
	if report.Validation.Valid {
		b.WriteString("✓ Claim structure is valid\n\n")
	} else {
		for _, e := range report.Validation.Errors {
			fmt.Fprintf(&b, "- ✗ %s\n", e)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Score: %d/100 (%s confidence)\n\n", report.Score.Index, report.Score.Confidence)
	for _, s := range report.Score.Signals {
		fmt.Fprintf(&b, "- **%s** [%s]: %s\n", s.Type, s.Severity, s.Description)
	}

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString("*Generated by claimforge. Claims are drafts built from heuristics and must be reviewed before filing.*\n")
	}

	return b.String()
}

// RenderSummary prints the claims and a short diagnostic line. The score
// breakdown is printed only when verbose is set.
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report, verbose bool) {
	h, ok := summaryHeadings[report.Options.Language]
	if !ok {
		h = summaryHeadings[model.LanguageRU]
	}

	fmt.Fprintln(w, h.claims)
	claims := report.Result.Claims()
	if len(claims) == 1 {
		fmt.Fprintln(w, claims[0])
	} else {
		for i, c := range claims {
			fmt.Fprintln(w)
			fmt.Fprintf(w, h.variant+"\n", i+1)
			fmt.Fprintln(w, c)
		}
	}

	if !report.Validation.Valid && len(report.Validation.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, h.invalid)
		for _, e := range report.Validation.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}

	if verbose {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Index: %d/100 (%s)\n", report.Score.Index, report.Score.Confidence)
		for _, s := range report.Score.Signals {
			fmt.Fprintf(w, "  [%s] %s\n", s.Severity, s.Description)
		}
	}
}

// markdownCell escapes pipes and line breaks inside a table cell
func markdownCell(s string) string {
	if s == "" {
		return "—"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// writeFile writes data to path, creating parent directories
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
