// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads and validates article templates from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"

	"github.com/anilsoylu/ContentForge/pkg/types"
)

// Defaults applied to fields the template omits. Matches the example
// template written by WriteExample.
const (
	DefaultModel           = "openai/gpt-4o-mini"
	DefaultIntroWords      = 60
	DefaultConclusionWords = 50
	DefaultLanguage        = "English"
	defaultTone            = "informative"
	defaultDensity         = 2.0
)

// ConfigError describes a malformed or invalid template. All load failures
// surface as *ConfigError so the CLI can fail fast before any job is built.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("config %s: %s", e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a YAML article template, applies defaults, and validates it.
// On any failure the returned error is a *ConfigError.
func Load(path string) (*types.ContentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigError{Path: path, Reason: "file not found", Err: err}
		}
		return nil, &ConfigError{Path: path, Reason: "reading template", Err: err}
	}

	var cfg types.ContentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Reason: "parsing YAML", Err: err}
	}

	applyDefaults(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, &ConfigError{Path: path, Reason: describeFields(verrs)}
		}
		return nil, &ConfigError{Path: path, Reason: "validation", Err: err}
	}

	return &cfg, nil
}

// applyDefaults fills omitted optional fields. Declared values are never
// overwritten, so an out-of-range declaration still fails validation.
func applyDefaults(cfg *types.ContentConfig) {
	if cfg.IntroWords == 0 {
		cfg.IntroWords = DefaultIntroWords
	}
	if cfg.ConclusionWords == 0 {
		cfg.ConclusionWords = DefaultConclusionWords
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Output == "" {
		cfg.Output = types.OutputHTML
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.SEO.Tone == "" {
		cfg.SEO.Tone = defaultTone
	}
	if cfg.SEO.KeywordDensity == 0 {
		cfg.SEO.KeywordDensity = defaultDensity
	}
	if cfg.Placeholders.ItemPrefix == "" {
		cfg.Placeholders.ItemPrefix = "ITEM"
	}
	if cfg.Placeholders.ValuePrefix == "" {
		cfg.Placeholders.ValuePrefix = "VALUE"
	}
	for i := range cfg.Sections {
		if cfg.Sections[i].Words == 0 {
			cfg.Sections[i].Words = 100
		}
	}
	for i := range cfg.Table.Columns {
		if cfg.Table.Columns[i].Type == "" {
			cfg.Table.Columns[i].Type = types.ColumnText
		}
	}
}

// describeFields renders validator failures as one readable reason string.
func describeFields(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "min":
			msgs = append(msgs, fmt.Sprintf("missing required field %s", fieldPath(fe)))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fieldPath(fe), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fieldPath(fe), fe.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fieldPath(fe), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fieldPath(fe), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fieldPath(fe), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// fieldPath strips the root struct name from the validator namespace:
// "ContentConfig.SEO.KeywordDensity" -> "seo.keyword_density" is not worth
// a tag lookup; the struct path is clear enough for an error message.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
