// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"

	"github.com/anilsoylu/ContentForge/pkg/types"
)

// fragments groups the run's results by document position.
type fragments struct {
	intro      types.JobResult
	sections   []types.JobResult
	table      *types.JobResult
	conclusion types.JobResult
}

// collect pulls one result per declared fragment out of the report. A job
// with no result (possible only on a violated orchestrator contract) is
// treated as failed so rendering still produces a document.
func collect(cfg *types.ContentConfig, report *types.RunReport) fragments {
	frags := fragments{
		intro:      lookup(report, "intro"),
		conclusion: lookup(report, "conclusion"),
	}
	for i := range cfg.Sections {
		frags.sections = append(frags.sections, lookup(report, types.SectionJobID(i)))
	}
	if cfg.Table.Wanted() {
		res := lookup(report, "table")
		frags.table = &res
	}
	return frags
}

func lookup(report *types.RunReport, id types.JobID) types.JobResult {
	if res, ok := report.Results[id]; ok {
		return res
	}
	return types.JobResult{ID: id, Err: fmt.Errorf("no result for job %q", id)}
}

// bodyOrPlaceholder renders a successful fragment with renderBody, or emits
// an explicit placeholder comment for a failed one. The comment form is
// valid in both HTML and Markdown output.
func bodyOrPlaceholder(res types.JobResult, renderBody func(string) string) string {
	if !res.OK() {
		return fmt.Sprintf("<!-- fragment %q failed: %v -->", res.ID, res.Err)
	}
	return renderBody(res.Text)
}

// Document assembles the final document for the configured output format.
// Sections always appear in the order the template declares them.
func Document(cfg *types.ContentConfig, report *types.RunReport) (string, error) {
	frags := collect(cfg, report)
	switch cfg.Output {
	case types.OutputMarkdown:
		return markdownDocument(cfg, frags), nil
	case types.OutputHTML:
		return htmlDocument(cfg, frags)
	default:
		return "", fmt.Errorf("unknown output format %q", cfg.Output)
	}
}
