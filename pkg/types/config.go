package types

// OutputFormat selects the rendered document format.
type OutputFormat string

const (
	OutputHTML     OutputFormat = "html"
	OutputMarkdown OutputFormat = "md"
)

// ColumnType identifies how a table column value is rendered.
type ColumnType string

const (
	ColumnText  ColumnType = "text"
	ColumnStars ColumnType = "stars"
)

// SEOConfig holds the keyword and tone settings applied to every prompt.
type SEOConfig struct {
	// PrimaryKeyword is the main keyword woven into intro, sections, and conclusion.
	PrimaryKeyword string `json:"primary_keyword" yaml:"primary_keyword" validate:"required"`

	// SecondaryKeywords are supporting keywords, used when they match a section heading.
	SecondaryKeywords []string `json:"secondary_keywords" yaml:"secondary_keywords"`

	// KeywordDensity is the target keyword density in percent (0 < d <= 100).
	KeywordDensity float64 `json:"keyword_density" yaml:"keyword_density" validate:"gt=0,lte=100"`

	// Tone selects the writing voice: informative, conversational, or professional.
	Tone string `json:"tone" yaml:"tone"`

	// TargetAudience optionally describes who the article is written for.
	TargetAudience string `json:"target_audience,omitempty" yaml:"target_audience,omitempty"`
}

// AllKeywords returns the primary keyword followed by the secondary keywords.
// Used by the renderers for highlighting.
func (s SEOConfig) AllKeywords() []string {
	var keywords []string
	if s.PrimaryKeyword != "" {
		keywords = append(keywords, s.PrimaryKeyword)
	}
	return append(keywords, s.SecondaryKeywords...)
}

// SectionSpec declares one body section. Section identity is its position
// in the declared sections list; output preserves that order.
type SectionSpec struct {
	Heading string `json:"heading" yaml:"heading" validate:"required"`

	// Words is the target word count for the section body.
	Words int `json:"words" yaml:"words" validate:"gt=0"`
}

// TableColumn declares one column of the comparison table.
type TableColumn struct {
	// Name is the machine name used to key parsed row values.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Header is the rendered column header.
	Header string `json:"header" yaml:"header" validate:"required"`

	// Placeholder, when set, instructs the model to emit [PLACEHOLDER_n]
	// tokens instead of real values for this column.
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	// Type selects rendering: plain text or a 1-5 star rating.
	Type ColumnType `json:"type" yaml:"type" validate:"oneof=text stars"`
}

// TableSpec declares the optional comparison table.
type TableSpec struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Rows is the number of data rows requested from the model.
	Rows int `json:"rows" yaml:"rows" validate:"gte=0"`

	Columns []TableColumn `json:"columns" yaml:"columns" validate:"dive"`
}

// Wanted reports whether the table contributes a generation job.
func (t TableSpec) Wanted() bool {
	return t.Enabled && t.Rows > 0 && len(t.Columns) > 0
}

// PlaceholderConfig holds the prefixes for placeholder tokens the model is
// asked to emit in place of concrete item names and values.
type PlaceholderConfig struct {
	ItemPrefix  string `json:"item_prefix" yaml:"item_prefix"`
	ValuePrefix string `json:"value_prefix" yaml:"value_prefix"`
}

// SiteConfig holds publishing-site metadata sent as request attribution.
type SiteConfig struct {
	Name   string `json:"name" yaml:"name"`
	URL    string `json:"url" yaml:"url"`
	Author string `json:"author" yaml:"author"`
}

// ContentConfig is the immutable article template loaded from YAML. One
// ContentConfig describes one generation run.
type ContentConfig struct {
	Title string `json:"title" yaml:"title" validate:"required"`

	// IntroWords and ConclusionWords are target word counts for the
	// boilerplate paragraphs.
	IntroWords      int `json:"intro_words" yaml:"intro_words" validate:"gt=0"`
	ConclusionWords int `json:"conclusion_words" yaml:"conclusion_words" validate:"gt=0"`

	Sections []SectionSpec `json:"sections" yaml:"sections" validate:"required,min=1,dive"`

	Table TableSpec `json:"table" yaml:"table"`

	// Model is the OpenRouter model identifier (e.g. "openai/gpt-4o-mini").
	Model string `json:"model" yaml:"model" validate:"required"`

	SEO          SEOConfig         `json:"seo" yaml:"seo"`
	Site         SiteConfig        `json:"site" yaml:"site"`
	Placeholders PlaceholderConfig `json:"placeholders" yaml:"placeholders"`

	// SystemPrompt optionally overrides the default system prompt.
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`

	// Output selects the document format: html or md.
	Output OutputFormat `json:"output" yaml:"output" validate:"oneof=html md"`

	// Language is the language the content is written in.
	Language string `json:"language" yaml:"language" validate:"required"`
}

// Headings returns the declared section headings in order.
func (c ContentConfig) Headings() []string {
	headings := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		headings[i] = s.Heading
	}
	return headings
}

// TotalWords returns the target word count across intro, sections, and conclusion.
func (c ContentConfig) TotalWords() int {
	total := c.IntroWords + c.ConclusionWords
	for _, s := range c.Sections {
		total += s.Words
	}
	return total
}

// JobCount returns the number of generation jobs one run submits:
// intro + conclusion + one per section + the table when wanted.
func (c ContentConfig) JobCount() int {
	count := 2 + len(c.Sections)
	if c.Table.Wanted() {
		count++
	}
	return count
}
