// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilsoylu/ContentForge/pkg/types"
)

var testColumns = []types.TableColumn{
	{Name: "item", Header: "Item"},
	{Name: "value", Header: "Value"},
	{Name: "rating", Header: "Rating", Type: types.ColumnStars},
}

func TestCleanFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "a | b | 3", want: "a | b | 3"},
		{name: "fenced block", in: "```\na | b | 3\n```", want: "a | b | 3"},
		{name: "language fence", in: "```html\n<p>x</p>\n```", want: "<p>x</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanFences(tt.in))
		})
	}
}

func TestParseTableRows(t *testing.T) {
	raw := `
[ITEM_1] | $120 | 4
[ITEM_2] | $90 | 5 | extra ignored

not a table line
[ITEM_3] | $200
`
	rows := ParseTableRows(raw, testColumns)

	// The two-cell line and the prose line are dropped.
	require.Len(t, rows, 2)
	assert.Equal(t, "[ITEM_1]", rows[0].Get("item"))
	assert.Equal(t, "$120", rows[0].Get("value"))
	assert.Equal(t, "4", rows[0].Get("rating"))
	assert.Equal(t, "5", rows[1].Get("rating"))
}

func TestStars(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "3", want: "⭐⭐⭐"},
		{in: " 5 ", want: "⭐⭐⭐⭐⭐"},
		{in: "0", want: "⭐"},
		{in: "9", want: "⭐⭐⭐⭐⭐"},
		{in: "great", want: "great"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.in), "input %q", tt.in)
	}
}

func TestHighlightPreservesCase(t *testing.T) {
	got := Highlight("Espresso machines. An espresso machine is nice.", []string{"espresso machine"}, "**", "**")
	assert.Equal(t, "**Espresso machine**s. An **espresso machine** is nice.", got)
}

func TestTextToMarkdown(t *testing.T) {
	in := "First paragraph about espresso.\n\n• tip one\n• tip two\n\nClosing thought."
	got := TextToMarkdown(in, []string{"espresso"})

	want := "First paragraph about **espresso**.\n\n- tip one\n- tip two\n\nClosing thought."
	assert.Equal(t, want, got)
}

func TestTableMarkdown(t *testing.T) {
	rows := ParseTableRows("[ITEM_1] | $120 | 4", testColumns)
	got := TableMarkdown(rows, testColumns)

	want := strings.Join([]string{
		"| Item | Value | Rating |",
		"| --- | --- | --- |",
		"| [ITEM_1] | $120 | ⭐⭐⭐⭐ |",
	}, "\n")
	assert.Equal(t, want, got)

	assert.Empty(t, TableMarkdown(nil, testColumns))
}

func TestTableHTML(t *testing.T) {
	rows := ParseTableRows("[ITEM_1] | $120 | 4", testColumns)
	got := TableHTML(rows, testColumns)

	assert.Contains(t, got, `<table class="table table-striped">`)
	assert.Contains(t, got, "<th>Rating</th>")
	assert.Contains(t, got, "<td>⭐⭐⭐⭐</td>")
}

func TestTextToHTML(t *testing.T) {
	got, err := TextToHTML("A paragraph about espresso.\n\n• tip one\n• tip two", []string{"espresso"})
	require.NoError(t, err)

	assert.Contains(t, got, "<p>A paragraph about <strong>espresso</strong>.</p>")
	assert.Contains(t, got, "<li>tip one</li>")
}

// reportFor builds a run report for cfg with one successful result per job,
// inserted in reverse document order to prove assembly ignores completion order.
func reportFor(cfg *types.ContentConfig, texts map[types.JobID]string) *types.RunReport {
	report := &types.RunReport{
		Results: make(map[types.JobID]types.JobResult),
		Status:  types.RunSucceeded,
	}
	ids := []types.JobID{"conclusion", "table", "intro"}
	for i := len(cfg.Sections) - 1; i >= 0; i-- {
		ids = append(ids, types.SectionJobID(i))
	}
	for _, id := range ids {
		text, ok := texts[id]
		if !ok {
			continue
		}
		report.JobIDs = append(report.JobIDs, id)
		report.Results[id] = types.JobResult{ID: id, Text: text}
	}
	return report
}

func docConfig(format types.OutputFormat) *types.ContentConfig {
	return &types.ContentConfig{
		Title:           "Best Espresso Machines",
		IntroWords:      60,
		ConclusionWords: 50,
		Sections: []types.SectionSpec{
			{Heading: "Choosing", Words: 100},
			{Heading: "Budget Picks", Words: 100},
			{Heading: "Maintenance", Words: 100},
		},
		Table: types.TableSpec{
			Enabled: true,
			Rows:    1,
			Columns: testColumns,
		},
		SEO:      types.SEOConfig{PrimaryKeyword: "espresso"},
		Output:   format,
		Language: "English",
	}
}

func successTexts() map[types.JobID]string {
	return map[types.JobID]string{
		"intro":      "Intro text.",
		"section_0":  "Choosing body.",
		"section_1":  "Budget body.",
		"section_2":  "Maintenance body.",
		"table":      "[ITEM_1] | $120 | 4",
		"conclusion": "Conclusion text.",
	}
}

func TestDocumentMarkdownOrder(t *testing.T) {
	cfg := docConfig(types.OutputMarkdown)

	doc, err := Document(cfg, reportFor(cfg, successTexts()))
	require.NoError(t, err)

	// Declared order: title, intro, sections, table, conclusion, regardless
	// of the reversed result insertion order.
	positions := []string{
		"# Best Espresso Machines",
		"Intro text.",
		"## Choosing",
		"## Budget Picks",
		"## Maintenance",
		"## Comparison",
		"| [ITEM_1] | $120 | ⭐⭐⭐⭐ |",
		"## Conclusion",
		"Conclusion text.",
	}
	last := -1
	for _, want := range positions {
		idx := strings.Index(doc, want)
		require.GreaterOrEqual(t, idx, 0, "missing %q", want)
		assert.Greater(t, idx, last, "%q out of order", want)
		last = idx
	}
}

func TestDocumentHTMLOrder(t *testing.T) {
	cfg := docConfig(types.OutputHTML)

	doc, err := Document(cfg, reportFor(cfg, successTexts()))
	require.NoError(t, err)

	positions := []string{
		"<h1>Best Espresso Machines</h1>",
		`<div class="intro">`,
		"<h2>Choosing</h2>",
		"<h2>Budget Picks</h2>",
		"<h2>Maintenance</h2>",
		`<div class="comparison-table">`,
		`<div class="conclusion">`,
	}
	last := -1
	for _, want := range positions {
		idx := strings.Index(doc, want)
		require.GreaterOrEqual(t, idx, 0, "missing %q", want)
		assert.Greater(t, idx, last, "%q out of order", want)
		last = idx
	}
}

func TestDocumentFailedSectionPlaceholder(t *testing.T) {
	cfg := docConfig(types.OutputMarkdown)
	report := reportFor(cfg, successTexts())
	report.Results["section_1"] = types.JobResult{
		ID:  "section_1",
		Err: errors.New("gave up after 3 attempts"),
	}
	report.Status = types.RunFailed

	doc, err := Document(cfg, report)
	require.NoError(t, err)

	assert.Contains(t, doc, `<!-- fragment "section_1" failed:`)
	assert.NotContains(t, doc, "Budget body.")
	// Surviving fragments still render in place.
	assert.Contains(t, doc, "Choosing body.")
	assert.Contains(t, doc, "Maintenance body.")
}
