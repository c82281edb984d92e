// Package sentiment scores free text polarity with a VADER lexicon
// analyzer. Scores are compound values in [-1, 1].
package sentiment

import (
	"github.com/jonreiter/govader"
)

// Analyzer wraps the VADER sentiment analyzer. Construct once and
// inject; the underlying lexicon is read-only after construction.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates an Analyzer with the default English lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		vader: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Compound returns the normalized compound polarity score for the text.
// Empty or neutral text scores 0.
func (a *Analyzer) Compound(text string) float64 {
	if text == "" {
		return 0
	}
	return a.vader.PolarityScores(text).Compound
}
