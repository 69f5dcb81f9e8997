// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/anilsoylu/ContentForge/pkg/types"
)

const (
	tableHeading      = "Comparison"
	conclusionHeading = "Conclusion"
)

// TableMarkdown renders parsed rows as a Markdown pipe table.
func TableMarkdown(rows []types.TableRow, columns []types.TableColumn) string {
	if len(rows) == 0 || len(columns) == 0 {
		return ""
	}

	var lines []string

	headers := make([]string, len(columns))
	separators := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
		separators[i] = "---"
	}
	lines = append(lines, "| "+strings.Join(headers, " | ")+" |")
	lines = append(lines, "| "+strings.Join(separators, " | ")+" |")

	for _, row := range rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = cellValue(row, col)
		}
		lines = append(lines, "| "+strings.Join(values, " | ")+" |")
	}

	return strings.Join(lines, "\n")
}

// markdownDocument assembles the full Markdown document in template order.
func markdownDocument(cfg *types.ContentConfig, frags fragments) string {
	keywords := cfg.SEO.AllKeywords()

	lines := []string{
		"# " + cfg.Title,
		"",
		bodyOrPlaceholder(frags.intro, func(text string) string {
			return TextToMarkdown(text, keywords)
		}),
		"",
	}

	for i, section := range cfg.Sections {
		lines = append(lines,
			"## "+section.Heading,
			"",
			bodyOrPlaceholder(frags.sections[i], func(text string) string {
				return TextToMarkdown(text, keywords)
			}),
			"",
		)
	}

	if frags.table != nil {
		lines = append(lines,
			"## "+tableHeading,
			"",
			bodyOrPlaceholder(*frags.table, func(text string) string {
				return TableMarkdown(ParseTableRows(CleanFences(text), cfg.Table.Columns), cfg.Table.Columns)
			}),
			"",
		)
	}

	lines = append(lines,
		"## "+conclusionHeading,
		"",
		bodyOrPlaceholder(frags.conclusion, func(text string) string {
			return TextToMarkdown(text, keywords)
		}),
	)

	return strings.Join(lines, "\n")
}
