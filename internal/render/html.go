// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/anilsoylu/ContentForge/pkg/types"
)

// markdown converts body text built by TextToMarkdown; keyword bolding
// becomes <strong> and bullet lists become <ul>.
var markdown = goldmark.New()

// TextToHTML converts plain model output to HTML paragraphs and lists with
// the given keywords bolded.
func TextToHTML(text string, keywords []string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(TextToMarkdown(text, keywords)), &buf); err != nil {
		return "", fmt.Errorf("converting body to HTML: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// TableHTML renders parsed rows as a styled HTML table.
func TableHTML(rows []types.TableRow, columns []types.TableColumn) string {
	if len(rows) == 0 || len(columns) == 0 {
		return ""
	}

	lines := []string{
		`<table class="table table-striped">`,
		"  <thead>",
		"    <tr>",
	}
	for _, col := range columns {
		lines = append(lines, "      <th>"+html.EscapeString(col.Header)+"</th>")
	}
	lines = append(lines, "    </tr>", "  </thead>", "  <tbody>")

	for _, row := range rows {
		lines = append(lines, "    <tr>")
		for _, col := range columns {
			lines = append(lines, "      <td>"+html.EscapeString(cellValue(row, col))+"</td>")
		}
		lines = append(lines, "    </tr>")
	}
	lines = append(lines, "  </tbody>", "</table>")

	return strings.Join(lines, "\n")
}

// htmlDocument assembles the full HTML fragment in template order.
func htmlDocument(cfg *types.ContentConfig, frags fragments) (string, error) {
	keywords := cfg.SEO.AllKeywords()

	body := func(res types.JobResult) string {
		return bodyOrPlaceholder(res, func(text string) string {
			converted, err := TextToHTML(text, keywords)
			if err != nil {
				return fmt.Sprintf("<!-- fragment %q failed: %v -->", res.ID, err)
			}
			return converted
		})
	}

	lines := []string{
		"<h1>" + html.EscapeString(cfg.Title) + "</h1>",
		"",
		`<div class="intro">`,
		body(frags.intro),
		"</div>",
		"",
	}

	for i, section := range cfg.Sections {
		lines = append(lines,
			"<section>",
			"<h2>"+html.EscapeString(section.Heading)+"</h2>",
			body(frags.sections[i]),
			"</section>",
			"",
		)
	}

	if frags.table != nil {
		lines = append(lines,
			`<div class="comparison-table">`,
			"<h2>"+tableHeading+"</h2>",
			bodyOrPlaceholder(*frags.table, func(text string) string {
				return TableHTML(ParseTableRows(CleanFences(text), cfg.Table.Columns), cfg.Table.Columns)
			}),
			"</div>",
			"",
		)
	}

	lines = append(lines,
		`<div class="conclusion">`,
		"<h2>"+conclusionHeading+"</h2>",
		body(frags.conclusion),
		"</div>",
	)

	return strings.Join(lines, "\n"), nil
}
