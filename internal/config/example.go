// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"fmt"
	"os"
)

// exampleTemplate is the starter template written by --init. It mirrors the
// defaults applied by Load so a fresh template round-trips unchanged.
const exampleTemplate = `site:
  name: MySite
  url: https://example.com
  author: Content Team

title: Example Title - Write Your Own Topic

intro_words: 60
conclusion_words: 50

seo:
  primary_keyword: main keyword
  secondary_keywords:
    - secondary keyword 1
    - secondary keyword 2
  keyword_density: 2.0
  tone: informative
  target_audience: Define your target audience

sections:
  - heading: First Section Heading
    words: 120
  - heading: Second Section Heading
    words: 120
  - heading: Third Section Heading
    words: 100

table:
  enabled: true
  rows: 5
  columns:
    - name: item
      header: Item
      placeholder: ITEM
    - name: value
      header: Value
      placeholder: VALUE
    - name: feature
      header: Feature
      placeholder: FEATURE
    - name: rating
      header: Rating
      placeholder: RATING
      type: stars

model: openai/gpt-4o-mini
output: html
language: English

placeholders:
  item_prefix: ITEM
  value_prefix: VALUE
`

// WriteExample writes the starter template to path. It refuses to overwrite
// an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing %s", path)
	}
	if err := os.WriteFile(path, []byte(exampleTemplate), 0o644); err != nil {
		return fmt.Errorf("writing example template: %w", err)
	}
	return nil
}
