// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cost estimates token usage and API spend for a run before any
// request is sent. Estimates are deterministic: the same template always
// produces the same numbers.
package cost

import (
	"fmt"

	"github.com/anilsoylu/ContentForge/pkg/types"
)

// Token estimation constants. Output tokens scale with the template's
// target word counts; input tokens use a fixed average prompt size.
const (
	tokensPerWord       = 1.4
	inputTokensPerCall  = 350
	tableTokensPerCell  = 8
	tableTokensPerRowID = 4
)

// Pricing holds per-token USD prices for one model.
type Pricing struct {
	InputPerToken  float64
	OutputPerToken float64
}

// pricing is the per-model cost table, keyed by OpenRouter model identifier.
var pricing = map[string]Pricing{
	"openai/gpt-4o":           {InputPerToken: 2.50 / 1e6, OutputPerToken: 10.00 / 1e6},
	"openai/gpt-4o-mini":      {InputPerToken: 0.15 / 1e6, OutputPerToken: 0.60 / 1e6},
	"openai/gpt-oss-20b:free": {InputPerToken: 0, OutputPerToken: 0},
}

// UnsupportedModelError reports a model identifier absent from the cost table.
type UnsupportedModelError struct {
	Model string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model %q: no pricing entry", e.Model)
}

// Estimate is the pre-flight accounting for one run.
type Estimate struct {
	JobCount     int
	InputTokens  int
	OutputTokens int
	USD          float64
}

// ForConfig computes the estimate for a template. The returned error is a
// *UnsupportedModelError when the model has no pricing entry.
func ForConfig(cfg *types.ContentConfig) (Estimate, error) {
	p, ok := pricing[cfg.Model]
	if !ok {
		return Estimate{}, &UnsupportedModelError{Model: cfg.Model}
	}

	est := Estimate{JobCount: cfg.JobCount()}
	est.InputTokens = est.JobCount * inputTokensPerCall

	words := cfg.TotalWords()
	est.OutputTokens = int(float64(words) * tokensPerWord)
	if cfg.Table.Wanted() {
		est.OutputTokens += cfg.Table.Rows * (len(cfg.Table.Columns)*tableTokensPerCell + tableTokensPerRowID)
	}

	est.USD = float64(est.InputTokens)*p.InputPerToken + float64(est.OutputTokens)*p.OutputPerToken
	return est, nil
}

// CheckCeiling enforces an optional hard spend limit. A maxUSD of 0 or less
// disables the gate.
func CheckCeiling(est Estimate, maxUSD float64) error {
	if maxUSD > 0 && est.USD > maxUSD {
		return fmt.Errorf("estimated cost $%.4f exceeds ceiling $%.4f", est.USD, maxUSD)
	}
	return nil
}

// Models returns the model identifiers present in the cost table.
func Models() []string {
	ids := make([]string, 0, len(pricing))
	for id := range pricing {
		ids = append(ids, id)
	}
	return ids
}
