// Package summary converts a price history into numeric trend
// statistics and a short natural-language summary, optionally polished
// by a generative paraphraser.
package summary

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
)

// paraphraseMaxTokens bounds the paraphrased summary length.
const paraphraseMaxTokens = 100

// Error indicates the underlying price series could not be used.
type Error struct {
	Ticker string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summary failed for %s: %v", e.Ticker, e.Err)
	}
	return fmt.Sprintf("summary failed for %s: no price series", e.Ticker)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// TrendStats are the numeric statistics the summary sentence is built from.
// Values are unrounded; rounding to 2 decimals happens at formatting time.
type TrendStats struct {
	Ticker         string    `json:"ticker"`
	StartPrice     float64   `json:"start_price"`
	EndPrice       float64   `json:"end_price"`
	ChangePercent  float64   `json:"change_percent"`
	Trend          string    `json:"trend"` // "upward" or "downward"
	MaxClose       float64   `json:"max_close"`
	MaxDate        time.Time `json:"max_date"`
	MinClose       float64   `json:"min_close"`
	MinDate        time.Time `json:"min_date"`
	AvgDailyChange float64   `json:"avg_daily_change"` // mean absolute day-over-day percent change
}

// TrendSummary pairs the statistics with the summary sentence.
type TrendSummary struct {
	Stats TrendStats `json:"stats"`
	Text  string     `json:"text"`
}

// Service builds trend summaries. The generator is optional; when nil or
// failing, the deterministic sentence is returned unchanged.
type Service struct {
	generator interfaces.TextGenerator
	logger    arbor.ILogger
}

// NewService creates a summary service.
func NewService(generator interfaces.TextGenerator, logger arbor.ILogger) *Service {
	return &Service{
		generator: generator,
		logger:    logger,
	}
}

// Summarize computes trend statistics over the series and renders the
// summary sentence, paraphrased when a generator is available.
func (s *Service) Summarize(ctx context.Context, series *models.PriceSeries) (*TrendSummary, error) {
	trendStats, err := ComputeStats(series)
	if err != nil {
		return nil, err
	}

	sentence := renderSentence(trendStats)
	text := s.paraphrase(ctx, sentence)

	return &TrendSummary{
		Stats: trendStats,
		Text:  text,
	}, nil
}

// ComputeStats derives the numeric trend statistics from a series.
// Fails with *Error when the series is missing or empty.
func ComputeStats(series *models.PriceSeries) (TrendStats, error) {
	if series == nil || series.Len() == 0 {
		ticker := ""
		if series != nil {
			ticker = series.Ticker
		}
		return TrendStats{}, &Error{Ticker: ticker}
	}

	first, _ := series.First()
	last, _ := series.Last()

	result := TrendStats{
		Ticker:     series.Ticker,
		StartPrice: first.Close,
		EndPrice:   last.Close,
		MaxClose:   first.Close,
		MaxDate:    first.Date,
		MinClose:   first.Close,
		MinDate:    first.Date,
	}

	if first.Close != 0 {
		result.ChangePercent = (last.Close - first.Close) / first.Close * 100
	}
	// Zero change counts as upward.
	if result.ChangePercent >= 0 {
		result.Trend = "upward"
	} else {
		result.Trend = "downward"
	}

	var dailyChanges []float64
	for i, p := range series.Points {
		if p.Close > result.MaxClose {
			result.MaxClose = p.Close
			result.MaxDate = p.Date
		}
		if p.Close < result.MinClose {
			result.MinClose = p.Close
			result.MinDate = p.Date
		}
		if i > 0 && series.Points[i-1].Close != 0 {
			change := (p.Close - series.Points[i-1].Close) / series.Points[i-1].Close * 100
			dailyChanges = append(dailyChanges, math.Abs(change))
		}
	}

	if len(dailyChanges) > 0 {
		mean, err := stats.Mean(dailyChanges)
		if err != nil {
			return TrendStats{}, &Error{Ticker: series.Ticker, Err: err}
		}
		result.AvgDailyChange = mean
	}

	return result, nil
}

// renderSentence formats the deterministic summary sentence. Prices and
// percentages are rounded to 2 decimals here, at presentation time.
func renderSentence(st TrendStats) string {
	return fmt.Sprintf(
		"%s stock trend summary: Start price: $%.2f, End price: $%.2f, Change: %.2f%% (%s). "+
			"Highest: $%.2f on %s, Lowest: $%.2f on %s. "+
			"Average daily fluctuation: %.2f%%.",
		st.Ticker,
		st.StartPrice, st.EndPrice, st.ChangePercent, st.Trend,
		st.MaxClose, st.MaxDate.Format("2006-01-02"),
		st.MinClose, st.MinDate.Format("2006-01-02"),
		st.AvgDailyChange,
	)
}

// paraphrase asks the generator to polish the sentence with deterministic
// decoding, truncated at the last sentence boundary. Any failure falls
// back to the deterministic sentence unchanged.
func (s *Service) paraphrase(ctx context.Context, sentence string) string {
	if s.generator == nil {
		return sentence
	}

	zero := float32(0)
	polished, err := s.generator.Generate(ctx, interfaces.GenerateRequest{
		System: "Rewrite the given stock trend summary as fluent prose. " +
			"Keep every number and date exactly as given. Do not add any information.",
		Prompt:          sentence,
		Temperature:     &zero,
		MaxOutputTokens: paraphraseMaxTokens,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Paraphraser unavailable, using deterministic summary")
		return sentence
	}

	polished = truncateAtSentence(strings.TrimSpace(polished))
	if polished == "" {
		return sentence
	}
	return polished
}

// truncateAtSentence cuts the text at its last period so a token-capped
// generation never ends mid-sentence.
func truncateAtSentence(text string) string {
	idx := strings.LastIndex(text, ".")
	if idx < 0 {
		return ""
	}
	return text[:idx+1]
}
