package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/claimforge/internal/cache"
	"github.com/ppiankov/claimforge/internal/model"
)

const pumpDescription = `Название: Система охлаждения двигателя.
Известные признаки: насос, радиатор, вентилятор.
Отличительные признаки: датчик температуры, регулирование скоростью вентилятора.
Технический результат: обеспечивает стабильную температуру без перегрева.`

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func TestPipeline_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pump.txt")
	if err := os.WriteFile(path, []byte(pumpDescription), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(testConfig(t), nil)
	src, err := p.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if src.Name != path {
		t.Errorf("Expected name %s, got %s", path, src.Name)
	}
	if src.Text != pumpDescription {
		t.Errorf("Expected file contents, got %q", src.Text)
	}
}

func TestPipeline_LoadMissingFile(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)
	if _, err := p.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestPipeline_LoadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, `<html><head><title>Насос</title><script>var x = 1;</script></head><body>
<p>Название: Насосная станция</p>
<p>Известные признаки: насос, радиатор</p>
</body></html>`)
	}))
	defer server.Close()

	p := NewPipeline(testConfig(t), nil)
	src, err := p.Load(context.Background(), server.URL+"/inventions/pump")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if src.Title != "Насос" {
		t.Errorf("Expected page title, got %q", src.Title)
	}
	if !strings.Contains(src.Text, "Название: Насосная станция\nИзвестные признаки: насос, радиатор") {
		t.Errorf("Expected labelled lines in visible text, got %q", src.Text)
	}
	if strings.Contains(src.Text, "var x") {
		t.Error("Expected scripts to be skipped")
	}
}

func TestPipeline_LoadPlainTextURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprint(w, pumpDescription)
	}))
	defer server.Close()

	p := NewPipeline(testConfig(t), nil)
	src, err := p.Load(context.Background(), server.URL+"/pump.txt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if src.Text != pumpDescription {
		t.Errorf("Expected plain text body, got %q", src.Text)
	}
	if src.Title != "pump" {
		t.Errorf("Expected slug title, got %q", src.Title)
	}
}

func TestPipeline_Run(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)

	report, err := p.Run(context.Background(), "pump.txt", pumpDescription)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Subject != "Система охлаждения двигателя." {
		t.Errorf("Unexpected subject: %q", report.Subject)
	}
	if report.Source != "pump.txt" {
		t.Errorf("Unexpected source: %q", report.Source)
	}
	if !strings.HasPrefix(report.Result.Wide, "Система охлаждения двигателя, включающий насос, радиатор, вентилятор") {
		t.Errorf("Unexpected wide claim: %q", report.Result.Wide)
	}
	if !report.Validation.Valid {
		t.Errorf("Expected generated claim to validate, got %v", report.Validation.Errors)
	}
	if report.Score.Index != 100 {
		t.Errorf("Expected index 100, got %d", report.Score.Index)
	}
	if report.Cached {
		t.Error("Expected first run not to be cached")
	}
}

func TestPipeline_RunCached(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)
	ctx := context.Background()

	first, err := p.Run(ctx, "a.txt", pumpDescription)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	second, err := p.Run(ctx, "b.txt", pumpDescription)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !second.Cached {
		t.Error("Expected second run to be served from cache")
	}
	if second.Source != "b.txt" {
		t.Errorf("Expected cached report to carry the new source, got %s", second.Source)
	}
	if second.Result.Wide != first.Result.Wide {
		t.Errorf("Cached claim differs: %q vs %q", second.Result.Wide, first.Result.Wide)
	}
}

func TestPipeline_RunDiscardsUnreadableEntry(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)
	key := cache.Key(pumpDescription, p.config.Generation.Normalize())
	if err := p.cache.Set(key, []byte("{not json"), 0); err != nil {
		t.Fatal(err)
	}

	report, err := p.Run(context.Background(), "a.txt", pumpDescription)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Cached {
		t.Error("Expected unreadable entry to be regenerated")
	}

	data, found := p.cache.Get(key)
	if !found {
		t.Fatal("Expected regenerated report to be cached")
	}
	if !json.Valid(data) {
		t.Errorf("Expected cached entry to be replaced, got %q", data)
	}
}

func TestPipeline_ClearCache(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)
	ctx := context.Background()

	if _, err := p.Run(ctx, "a.txt", pumpDescription); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := p.ClearCache(); err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}

	report, err := p.Run(ctx, "a.txt", pumpDescription)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Cached {
		t.Error("Expected a fresh report after ClearCache")
	}

	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	if err := NewPipeline(cfg, nil).ClearCache(); err != nil {
		t.Errorf("Expected no-op for disabled cache, got %v", err)
	}
}

func TestPipeline_RunCacheDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg, nil)

	for i := 0; i < 2; i++ {
		report, err := p.Run(context.Background(), "a.txt", pumpDescription)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if report.Cached {
			t.Error("Expected no caching when disabled")
		}
	}
}

func TestPipeline_RunCanceled(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Run(ctx, "a.txt", pumpDescription); err == nil {
		t.Error("Expected error for canceled context")
	}
}

func TestPipeline_RunParts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generation.Language = model.LanguageEN
	p := NewPipeline(cfg, nil)

	report := p.RunParts("flags", model.ParsedParts{
		Name:        "Water purifier",
		Known:       "housing, filter",
		Distinctive: "UV emitter",
		Effect:      "disinfects water",
	})

	want := "Water purifier, including housing, filter, distinguished in that UV emitter, provides disinfects water."
	if report.Result.Wide != want {
		t.Errorf("Expected %q, got %q", want, report.Result.Wide)
	}
	if !report.Validation.Valid {
		t.Errorf("Expected valid claim, got %v", report.Validation.Errors)
	}
}

func TestPipeline_ProcessFallsBackToTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, `<html><head><title>Lamp</title></head><body></body></html>`)
	}))
	defer server.Close()

	p := NewPipeline(testConfig(t), nil)
	report, err := p.Process(context.Background(), server.URL+"/lamp")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if report.Subject != "Lamp" {
		t.Errorf("Expected subject from page title, got %q", report.Subject)
	}
	if report.Result.Wide != "" {
		t.Errorf("Expected empty claim for empty page, got %q", report.Result.Wide)
	}
}

func TestRenderer_JSONAndMarkdown(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)
	report, err := p.Run(context.Background(), "pump.txt", pumpDescription)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out", "pump.json")
	mdPath := filepath.Join(dir, "out", "pump.md")

	r := NewRenderer(true)
	if err := r.RenderJSON(report, jsonPath); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
	if err := r.RenderMarkdown(report, mdPath); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded.Result.Wide != report.Result.Wide {
		t.Errorf("JSON claim mismatch: %q", decoded.Result.Wide)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Claim Report: Система охлаждения двигателя.", "## Claims", report.Result.Wide, "Generated by claimforge"} {
		if !strings.Contains(string(md), want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestRenderer_Summary(t *testing.T) {
	report := &model.Report{
		Options: model.GenerateOptions{Style: model.StyleCompact, Variants: 2, Language: model.LanguageRU},
		Result: model.ClaimResult{
			Wide:      "Насос, включающий корпус.",
			Variants:  []string{"Насос, включающий корпус, ротор.", "Насос, включающий ротор, корпус."},
			Requested: 2,
		},
		Validation: model.Validation{Valid: true, Claims: 1},
	}

	var buf bytes.Buffer
	NewRenderer(false).RenderSummary(&buf, report, false)
	out := buf.String()

	for _, want := range []string{"Сгенерированные формулы:", "Вариант 1:", "Вариант 2:", "Насос, включающий ротор, корпус."} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Index:") {
		t.Error("Expected score breakdown only in verbose mode")
	}
}

func TestRenderer_SummarySingleEnglish(t *testing.T) {
	report := &model.Report{
		Options:    model.GenerateOptions{Language: model.LanguageEN},
		Result:     model.ClaimResult{Wide: "Lamp.", Requested: 1},
		Validation: model.Validation{Errors: []string{"The first claim has no known features"}, Claims: 1},
		Score:      model.Score{Index: 35, Confidence: "low"},
	}

	var buf bytes.Buffer
	NewRenderer(false).RenderSummary(&buf, report, true)
	out := buf.String()

	for _, want := range []string{"Generated claims:\nLamp.\n", "Issues:", "Index: 35/100 (low)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Variant") {
		t.Error("Expected no variant headings for a single claim")
	}
}
