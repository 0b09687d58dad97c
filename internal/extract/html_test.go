package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/claimforge/internal/model"
)

func TestParsePage(t *testing.T) {
	page, err := ParsePage(`
	<html>
	<head><title>Water purifier</title><style>p { color: red }</style></head>
	<body>
		<h1>Invention disclosure</h1>
		<p>Known features: housing, filter</p>
		<div>Distinctive features: <b>equipped with</b> UV emitter</div>
		<script>var effect = "Effect: nothing";</script>
		<p>Effect: disinfects water</p>
	</body>
	</html>`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Title != "Water purifier" {
		t.Errorf("Expected title 'Water purifier', got %q", page.Title)
	}
	if strings.Contains(page.Text, "nothing") || strings.Contains(page.Text, "color") {
		t.Errorf("Expected scripts and styles to be skipped, got %q", page.Text)
	}

	lines := strings.Split(page.Text, "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d: %q", len(lines), page.Text)
	}
	if lines[2] != "Distinctive features: equipped with UV emitter" {
		t.Errorf("Unexpected line: %q", lines[2])
	}

	parts := Sections(page.Text, model.LanguageEN)
	if parts.Effect != "disinfects water" {
		t.Errorf("Expected effect from page text, got %q", parts.Effect)
	}
}

func TestParsePage_TitleFallsBackToHeading(t *testing.T) {
	page, err := ParsePage(`<html><body><h1>Heat  exchanger</h1><p>text</p></body></html>`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page.Title != "Heat exchanger" {
		t.Errorf("Expected heading as title, got %q", page.Title)
	}
}
