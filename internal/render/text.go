// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render assembles generated fragments into the final document.
// Rendering is identity-driven: fragments are looked up in the run report
// by job id and emitted in the order the template declares, never in
// completion order.
package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/anilsoylu/ContentForge/pkg/types"
)

// fencePattern matches Markdown code fences some models wrap output in.
var fencePattern = regexp.MustCompile("```\\w*\\s*")

// CleanFences strips Markdown code fences from model output.
func CleanFences(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}

// ParseTableRows parses pipe-separated model output into rows keyed by
// column name. Lines without enough cells for the declared columns are
// dropped; extra trailing cells are ignored.
func ParseTableRows(raw string, columns []types.TableColumn) []types.TableRow {
	var rows []types.TableRow
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < len(columns) {
			continue
		}
		values := make(map[string]string, len(columns))
		for i, col := range columns {
			values[col.Name] = strings.TrimSpace(parts[i])
		}
		rows = append(rows, types.TableRow{Values: values})
	}
	return rows
}

// Stars renders a 1-5 rating as star characters, clamping out-of-range
// numbers. Non-numeric values pass through unchanged.
func Stars(value string) string {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return value
	}
	if n < 1 {
		n = 1
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("⭐", n)
}

// cellValue applies column-type rendering to one cell.
func cellValue(row types.TableRow, col types.TableColumn) string {
	value := row.Get(col.Name)
	if col.Type == types.ColumnStars {
		value = Stars(value)
	}
	return value
}

// Highlight bolds the given keywords in text using the wrap markers,
// case-insensitively and preserving the original casing.
func Highlight(text string, keywords []string, openTag, closeTag string) string {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(kw))
		text = pattern.ReplaceAllStringFunc(text, func(m string) string {
			return openTag + m + closeTag
		})
	}
	return text
}

// textBlocks splits plain model output into paragraph and bullet-list
// blocks. Lines starting with a bullet marker open a list; blank lines
// separate paragraphs.
type textBlock struct {
	list  bool
	lines []string
}

func splitBlocks(text string) []textBlock {
	var blocks []textBlock
	var para []string
	var list []string

	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, textBlock{lines: para})
			para = nil
		}
	}
	flushList := func() {
		if len(list) > 0 {
			blocks = append(blocks, textBlock{list: true, lines: list})
			list = nil
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flushPara()
			flushList()
			continue
		}
		if item, ok := bulletItem(line); ok {
			flushPara()
			list = append(list, item)
		} else {
			flushList()
			para = append(para, line)
		}
	}
	flushPara()
	flushList()
	return blocks
}

// bulletItem reports whether line is a bullet item and returns its content.
func bulletItem(line string) (string, bool) {
	for _, marker := range []string{"• ", "- ", "* "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimPrefix(line, marker), true
		}
	}
	return "", false
}

// TextToMarkdown converts plain model output to Markdown paragraphs and
// lists, bolding the given keywords.
func TextToMarkdown(text string, keywords []string) string {
	blocks := splitBlocks(text)
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.list {
			items := make([]string, len(b.lines))
			for i, item := range b.lines {
				items[i] = "- " + item
			}
			parts = append(parts, strings.Join(items, "\n"))
		} else {
			parts = append(parts, strings.Join(b.lines, " "))
		}
	}
	return Highlight(strings.Join(parts, "\n\n"), keywords, "**", "**")
}
