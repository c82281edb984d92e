// Package news fetches recent news for a ticker and computes
// relevance-weighted sentiment scores per item and in aggregate.
package news

import (
	"fmt"
)

// defaultRelevance is assumed when an item carries no usable per-ticker
// relevance and we fall back to its overall sentiment score.
const defaultRelevance = 0.5

// SourceError indicates the news source itself failed: transport error,
// HTTP failure, or an upstream-reported error. Distinct from NoNewsError.
type SourceError struct {
	Ticker string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("news source failed for %s: %v", e.Ticker, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NoNewsError indicates the source responded normally but had no news
// items for the ticker.
type NoNewsError struct {
	Ticker string
}

func (e *NoNewsError) Error() string {
	return fmt.Sprintf("no news found for %s", e.Ticker)
}
