// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders the generation prompts and builds the job set for
// one run. Every template appends an explicit language instruction so the
// model never falls back to English by accident.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/anilsoylu/ContentForge/pkg/types"
)

// DefaultSystemPrompt is the writer persona sent with every request unless
// the template overrides it.
const DefaultSystemPrompt = `You are an experienced SEO content writer. You create content that meets Google E-E-A-T standards and provides value to readers.

CORE PRINCIPLES:
- Every sentence should provide concrete value to the reader
- Avoid filler phrases ("as everyone knows", "undoubtedly", "it goes without saying")
- Include concrete examples, numerical data, and practical tips
- Use natural keyword placement, avoid keyword stuffing
- Avoid exaggerated claims ("the best", "absolutely", "must")

FORMAT RULES:
- Only produce content in the requested format
- Do not add explanations, comments, or meta information
- Do not use HTML tags (unless specified otherwise)`

var introTmpl = template.Must(template.New("intro").Parse(`Write an INTRODUCTION paragraph for a blog post about "{{.Title}}".

HOOK STRATEGY (choose one):
- Start with a surprising statistic or fact
- Describe a problem the reader faces
- Ask a curiosity-provoking question

CONTENT REQUIREMENTS:
- Approximately {{.Words}} words
- Explain what the article is about and what value it provides to the reader
- Topics to be covered: {{.Topics}}{{if .PrimaryKeyword}}
- Use the primary keyword ({{.PrimaryKeyword}}) naturally in the first 2 sentences{{end}}{{if .Audience}}
- Target audience: {{.Audience}}{{end}}

AVOID:
- Cliché openings like "In this article"
- Filler phrases like "Nowadays", "In recent years"
- Exaggerated promises

IMPORTANT: Write plain text only. Do not use HTML tags.

LANGUAGE: Write the content in {{.Language}}.`))

var sectionTmpl = template.Must(template.New("section").Parse(`Write original content about "{{.Heading}}".

MAIN TITLE: {{.Title}}
SECTION: {{.Number}}/{{.Total}}
PERSPECTIVE: {{.Perspective}}
TONE: {{.Tone}}

CONTENT REQUIREMENTS:
- Approximately {{.Words}} words
- At least 1 concrete example or numerical data
- At least 2 practical, actionable tips
- For bullet lists use: "• "{{if .PrimaryKeyword}}
- Primary keyword ({{.PrimaryKeyword}}): Use naturally once in this section{{end}}{{if .RelatedKeywords}}
- Related keywords (use naturally): {{.RelatedKeywords}}{{end}}
- Use placeholders: {{.PlaceholderHint}}

AVOID:{{if .PreviousTopics}}
- DO NOT REPEAT (already covered): {{.PreviousTopics}}{{end}}
- DO NOT REPEAT MAIN TITLE: Don't use "{{.Title}}" within the section
- Generic phrases: "quality service", "reliable platform", "professional team"
- Exaggerated claims: "the best", "absolutely", "must", "guaranteed"
- Filler sentences: "as everyone knows", "undoubtedly"

IMPORTANT: Write plain text only. Do not use HTML tags.

LANGUAGE: Write the content in {{.Language}}.`))

var tableTmpl = template.Must(template.New("table").Parse(`Provide {{.Rows}} item information for the topic "{{.Title}}".

FORMAT: One item per line, separated by pipe (|).
COLUMNS: {{.ColumnNames}}

RULES:
{{- range .PlaceholderRules}}
{{.}}
{{- end}}
- Use numbers 1-5 for rating column

EXAMPLE OUTPUT:
{{.ExampleRow}}

Write ONLY {{.Rows}} lines of data, nothing else.

LANGUAGE: Write the content in {{.Language}}.`))

var conclusionTmpl = template.Must(template.New("conclusion").Parse(`Write a CONCLUSION paragraph for an article about "{{.Title}}".

TOPICS COVERED IN THE ARTICLE: {{.Topics}}

CONTENT REQUIREMENTS:
- Approximately {{.Words}} words
- Summarize main points in 1-2 sentences (synthesis, not repetition)
- Suggest a concrete next step for the reader (CTA)
- End with a positive but realistic tone{{if .PrimaryKeyword}}
- Use the primary keyword ({{.PrimaryKeyword}}) once more{{end}}

AVOID:
- Starting with "In conclusion"
- Repeating exactly what was said in the article
- Exaggerated promises

IMPORTANT: Write plain text only. Do not use HTML tags.

LANGUAGE: Write the content in {{.Language}}.`))

// sectionPerspectives gives each section position a distinct angle so
// parallel sections do not converge on the same content.
var sectionPerspectives = []string{
	"Basic information and first steps for beginners",
	"Practical comparison and evaluation criteria",
	"Advanced tips and maximum benefit strategies",
	"Common mistakes and how to avoid them",
	"Future trends and things to watch out for",
}

const fallbackPerspective = "In-depth analysis and concrete examples"

var toneDescriptions = map[string]string{
	"informative":    "Informative and objective",
	"conversational": "Friendly and conversational",
	"professional":   "Professional and formal",
}

// BuildJobs renders every prompt for the template and returns the job list
// in document order: intro, sections as declared, table (when wanted), then
// conclusion. Completion order is up to the orchestrator; only job identity
// matters downstream.
func BuildJobs(cfg *types.ContentConfig) ([]types.GenerationJob, error) {
	system := cfg.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt
	}
	headings := cfg.Headings()

	jobs := make([]types.GenerationJob, 0, cfg.JobCount())

	introPrompt, err := Intro(cfg, headings)
	if err != nil {
		return nil, err
	}
	jobs = append(jobs, types.GenerationJob{
		ID: "intro", Kind: types.KindIntro, System: system, Prompt: introPrompt,
	})

	for i, section := range cfg.Sections {
		sectionPrompt, err := Section(cfg, i)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, types.GenerationJob{
			ID:           types.SectionJobID(i),
			Kind:         types.KindSection,
			SectionIndex: i,
			Heading:      section.Heading,
			System:       system,
			Prompt:       sectionPrompt,
		})
	}

	if cfg.Table.Wanted() {
		tablePrompt, err := Table(cfg)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, types.GenerationJob{
			ID: "table", Kind: types.KindTable, System: system, Prompt: tablePrompt,
		})
	}

	conclusionPrompt, err := Conclusion(cfg, headings)
	if err != nil {
		return nil, err
	}
	jobs = append(jobs, types.GenerationJob{
		ID: "conclusion", Kind: types.KindConclusion, System: system, Prompt: conclusionPrompt,
	})

	return jobs, nil
}

// Intro renders the introduction prompt. Only the first three headings are
// previewed so the hook stays short.
func Intro(cfg *types.ContentConfig, headings []string) (string, error) {
	preview := headings
	if len(preview) > 3 {
		preview = preview[:3]
	}
	return render(introTmpl, map[string]any{
		"Title":          cfg.Title,
		"Words":          cfg.IntroWords,
		"Topics":         strings.Join(preview, ", "),
		"PrimaryKeyword": cfg.SEO.PrimaryKeyword,
		"Audience":       cfg.SEO.TargetAudience,
		"Language":       cfg.Language,
	})
}

// Section renders the prompt for the section at position i.
func Section(cfg *types.ContentConfig, i int) (string, error) {
	section := cfg.Sections[i]
	headings := cfg.Headings()

	perspective := fallbackPerspective
	if i < len(sectionPerspectives) {
		perspective = sectionPerspectives[i]
	}

	tone, ok := toneDescriptions[cfg.SEO.Tone]
	if !ok {
		tone = toneDescriptions["informative"]
	}

	// Secondary keywords only apply where they overlap the heading.
	var related []string
	lowerHeading := strings.ToLower(section.Heading)
	for _, kw := range cfg.SEO.SecondaryKeywords {
		if strings.Contains(lowerHeading, strings.ToLower(kw)) {
			related = append(related, kw)
		}
	}

	return render(sectionTmpl, map[string]any{
		"Title":           cfg.Title,
		"Heading":         section.Heading,
		"Words":           section.Words,
		"Number":          i + 1,
		"Total":           len(cfg.Sections),
		"Perspective":     perspective,
		"Tone":            tone,
		"PrimaryKeyword":  cfg.SEO.PrimaryKeyword,
		"RelatedKeywords": strings.Join(related, ", "),
		"PreviousTopics":  strings.Join(headings[:i], ", "),
		"PlaceholderHint": fmt.Sprintf("[%s_NAME], [%s_VALUE]", cfg.Placeholders.ItemPrefix, cfg.Placeholders.ValuePrefix),
		"Language":        cfg.Language,
	})
}

// Table renders the comparison-table prompt, asking for pipe-separated rows
// matching the declared columns.
func Table(cfg *types.ContentConfig) (string, error) {
	names := make([]string, len(cfg.Table.Columns))
	var rules []string
	example := make([]string, len(cfg.Table.Columns))
	for i, col := range cfg.Table.Columns {
		names[i] = col.Name
		switch {
		case col.Placeholder != "":
			rules = append(rules, fmt.Sprintf("- For %s use [%s_1], [%s_2]... placeholders", col.Header, col.Placeholder, col.Placeholder))
			example[i] = fmt.Sprintf("[%s_1]", col.Placeholder)
		case col.Type == types.ColumnStars:
			example[i] = "4"
		default:
			example[i] = "example"
		}
	}

	return render(tableTmpl, map[string]any{
		"Title":            cfg.Title,
		"Rows":             cfg.Table.Rows,
		"ColumnNames":      strings.Join(names, " | "),
		"PlaceholderRules": rules,
		"ExampleRow":       strings.Join(example, " | "),
		"Language":         cfg.Language,
	})
}

// Conclusion renders the conclusion prompt.
func Conclusion(cfg *types.ContentConfig, headings []string) (string, error) {
	return render(conclusionTmpl, map[string]any{
		"Title":          cfg.Title,
		"Words":          cfg.ConclusionWords,
		"Topics":         strings.Join(headings, ", "),
		"PrimaryKeyword": cfg.SEO.PrimaryKeyword,
		"Language":       cfg.Language,
	})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
