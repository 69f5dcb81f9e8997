// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate drives one invocation end to end: preview accounting, or
// the live run from template to written document.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anilsoylu/ContentForge/internal/cost"
	"github.com/anilsoylu/ContentForge/internal/llm"
	"github.com/anilsoylu/ContentForge/internal/orchestrator"
	"github.com/anilsoylu/ContentForge/internal/prompt"
	"github.com/anilsoylu/ContentForge/internal/render"
	"github.com/anilsoylu/ContentForge/internal/retry"
	"github.com/anilsoylu/ContentForge/pkg/types"
)

// DefaultOutputDir is where finished documents land unless overridden.
const DefaultOutputDir = "content"

// Options holds the run knobs resolved by the CLI.
type Options struct {
	OutputDir   string
	Concurrency int
	Policy      retry.Policy

	// MaxCostUSD aborts the run before any request when the estimate
	// exceeds it; 0 disables the gate.
	MaxCostUSD float64
}

// Summary is the user-facing outcome of a live run.
type Summary struct {
	Report      *types.RunReport
	Path        string
	TargetWords int
	WordCount   int
}

// Preview prints the document structure and cost estimate without making
// any API call.
func Preview(w io.Writer, cfg *types.ContentConfig) error {
	est, err := cost.ForConfig(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "PREVIEW MODE (no API calls will be made)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STRUCTURE:")
	fmt.Fprintf(w, "   <h1>%s</h1>\n", cfg.Title)
	fmt.Fprintf(w, "   intro: ~%d words\n", cfg.IntroWords)
	for _, section := range cfg.Sections {
		fmt.Fprintf(w, "   section: %s (~%d words)\n", section.Heading, section.Words)
	}
	if cfg.Table.Wanted() {
		headers := make([]string, len(cfg.Table.Columns))
		for i, col := range cfg.Table.Columns {
			headers[i] = col.Header
		}
		fmt.Fprintf(w, "   table: %d rows, %d columns (%s)\n", cfg.Table.Rows, len(cfg.Table.Columns), strings.Join(headers, ", "))
	}
	fmt.Fprintf(w, "   conclusion: ~%d words\n", cfg.ConclusionWords)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ESTIMATES:")
	fmt.Fprintf(w, "   Total words:    ~%d\n", cfg.TotalWords())
	fmt.Fprintf(w, "   API calls:      %d\n", est.JobCount)
	fmt.Fprintf(w, "   Tokens:         ~%d in / ~%d out\n", est.InputTokens, est.OutputTokens)
	fmt.Fprintf(w, "   Model:          %s\n", cfg.Model)
	fmt.Fprintf(w, "   Output format:  %s\n", cfg.Output)
	fmt.Fprintf(w, "   Language:       %s\n", cfg.Language)
	fmt.Fprintf(w, "   Estimated cost: ~$%.4f\n", est.USD)
	return nil
}

// Run executes the live generation: cost gate, job build, concurrent
// generation, assembly, and file write. The summary always carries the run
// report; Path is empty when no document was written (zero successes).
// A run with failed jobs still returns the summary so the caller can
// decide what the exit status should be.
func Run(ctx context.Context, w io.Writer, cfg *types.ContentConfig, transport llm.Transport, opts Options) (*Summary, error) {
	est, err := cost.ForConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := cost.CheckCeiling(est, opts.MaxCostUSD); err != nil {
		return nil, err
	}

	jobs, err := prompt.BuildJobs(cfg)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "Starting %d API calls (concurrency %d)...\n", len(jobs), effectiveConcurrency(opts.Concurrency))

	orch := orchestrator.New(transport, opts.Policy, opts.Concurrency)
	orch.Progress = w
	report, err := orch.Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Report: report, TargetWords: cfg.TotalWords()}
	if report.Succeeded() == 0 {
		return summary, fmt.Errorf("all %d generation jobs failed", len(jobs))
	}

	doc, err := render.Document(cfg, report)
	if err != nil {
		return summary, err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	path, err := save(doc, outputDir, cfg.Output)
	if err != nil {
		return summary, err
	}

	summary.Path = path
	summary.WordCount = len(strings.Fields(doc))
	return summary, nil
}

func effectiveConcurrency(c int) int {
	if c <= 0 {
		return orchestrator.DefaultConcurrency
	}
	return c
}

// save writes the document under dir with a timestamped filename.
func save(doc, dir string, format types.OutputFormat) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	ext := "html"
	if format == types.OutputMarkdown {
		ext = "md"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%s", time.Now().Format("2006-01-02-15-04"), ext))

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}
	return path, nil
}
