package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	lastReq  interfaces.GenerateRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req interfaces.GenerateRequest) (string, error) {
	f.lastReq = req
	return f.response, f.err
}

func (f *fakeGenerator) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeGenerator) Close() error                          { return nil }

func seriesFromCloses(ticker string, closes ...float64) *models.PriceSeries {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return &models.PriceSeries{Ticker: ticker, Points: points}
}

func TestComputeStats(t *testing.T) {
	series := seriesFromCloses("AAPL", 100.00, 110.00, 95.00, 120.00)

	st, err := ComputeStats(series)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", st.Ticker)
	assert.Equal(t, 100.00, st.StartPrice)
	assert.Equal(t, 120.00, st.EndPrice)
	assert.InDelta(t, 20.00, st.ChangePercent, 1e-9)
	assert.Equal(t, "upward", st.Trend)

	assert.Equal(t, 120.00, st.MaxClose)
	assert.Equal(t, series.Points[3].Date, st.MaxDate)
	assert.Equal(t, 95.00, st.MinClose)
	assert.Equal(t, series.Points[2].Date, st.MinDate)

	// |10%| + |-13.636..%| + |26.315..%| averaged
	want := (10.0 + 1500.0/110.0 + 2500.0/95.0) / 3
	assert.InDelta(t, want, st.AvgDailyChange, 1e-9)
}

func TestComputeStats_TrendLabel(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   string
	}{
		{"rising", []float64{100, 120}, "upward"},
		{"falling", []float64{120, 100}, "downward"},
		{"flat defaults to upward", []float64{100, 100}, "upward"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := ComputeStats(seriesFromCloses("TEST", tt.closes...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, st.Trend)
		})
	}
}

func TestSummarize_DeterministicSentence(t *testing.T) {
	service := NewService(nil, arbor.NewLogger())
	series := seriesFromCloses("AAPL", 100.00, 120.00)

	result, err := service.Summarize(context.Background(), series)
	require.NoError(t, err)

	assert.Contains(t, result.Text, "AAPL stock trend summary")
	assert.Contains(t, result.Text, "Start price: $100.00")
	assert.Contains(t, result.Text, "End price: $120.00")
	assert.Contains(t, result.Text, "Change: 20.00% (upward)")
}

func TestSummarize_ParaphraserFailureFallsBack(t *testing.T) {
	generator := &fakeGenerator{err: fmt.Errorf("model unavailable")}
	service := NewService(generator, arbor.NewLogger())
	series := seriesFromCloses("AAPL", 100.00, 120.00)

	result, err := service.Summarize(context.Background(), series)
	require.NoError(t, err)

	// Fallback keeps the deterministic sentence, numbers intact.
	assert.Contains(t, result.Text, "Start price: $100.00")
	assert.Contains(t, result.Text, "Change: 20.00% (upward)")
}

func TestSummarize_ParaphraseIsDeterministicAndBounded(t *testing.T) {
	generator := &fakeGenerator{response: "AAPL rose 20.00% over the year. Partial trailing fragment"}
	service := NewService(generator, arbor.NewLogger())
	series := seriesFromCloses("AAPL", 100.00, 120.00)

	result, err := service.Summarize(context.Background(), series)
	require.NoError(t, err)

	// Truncated at the last sentence boundary.
	assert.Equal(t, "AAPL rose 20.00% over the year.", result.Text)

	// Deterministic decoding: temperature pinned to zero, output capped.
	require.NotNil(t, generator.lastReq.Temperature)
	assert.Equal(t, float32(0), *generator.lastReq.Temperature)
	assert.Equal(t, int32(paraphraseMaxTokens), generator.lastReq.MaxOutputTokens)
}

func TestSummarize_NoSentenceBoundaryFallsBack(t *testing.T) {
	generator := &fakeGenerator{response: "no terminal punctuation at all"}
	service := NewService(generator, arbor.NewLogger())
	series := seriesFromCloses("AAPL", 100.00, 120.00)

	result, err := service.Summarize(context.Background(), series)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "AAPL stock trend summary")
}

func TestSummarize_MissingSeries(t *testing.T) {
	service := NewService(nil, arbor.NewLogger())

	for _, series := range []*models.PriceSeries{nil, {Ticker: "AAPL"}} {
		_, err := service.Summarize(context.Background(), series)
		require.Error(t, err)

		var summaryErr *Error
		assert.True(t, errors.As(err, &summaryErr))
	}
}
