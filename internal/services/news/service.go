package news

import (
	"context"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/alphavantage"
	"github.com/ternarybob/finsight/internal/common"
	"github.com/ternarybob/finsight/internal/models"
)

// feedSource is the slice of the Alpha Vantage client the service uses.
// An interface so tests can substitute canned feeds.
type feedSource interface {
	GetNewsSentiment(ctx context.Context, ticker string, opts ...alphavantage.QueryOption) (*alphavantage.NewsSentimentResponse, error)
}

// Service scores ticker news sentiment from the Alpha Vantage feed.
type Service struct {
	source  feedSource
	logger  arbor.ILogger
	limit   int
	timeout time.Duration
}

// NewService creates a news sentiment service. limit caps the batch
// size; zero or negative uses the client default.
func NewService(source feedSource, logger arbor.ILogger, limit int, timeout time.Duration) *Service {
	if limit <= 0 {
		limit = alphavantage.DefaultNewsLimit
	}
	if timeout <= 0 {
		timeout = alphavantage.DefaultTimeout
	}
	return &Service{
		source:  source,
		logger:  logger,
		limit:   limit,
		timeout: timeout,
	}
}

// Score fetches the news feed for the ticker and resolves a sentiment
// and relevance score per item, preserving upstream order and truncating
// to the configured limit. An empty feed fails with *NoNewsError; a
// source failure fails with *SourceError.
func (s *Service) Score(ctx context.Context, ticker string) (*models.NewsBatch, error) {
	symbol, err := common.NormalizeTicker(ticker)
	if err != nil {
		return nil, &SourceError{Ticker: ticker, Err: err}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.source.GetNewsSentiment(fetchCtx, symbol, alphavantage.WithLimit(s.limit))
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", symbol).Msg("News feed request failed")
		return nil, &SourceError{Ticker: symbol, Err: err}
	}

	if len(resp.Feed) == 0 {
		return nil, &NoNewsError{Ticker: symbol}
	}

	batch := &models.NewsBatch{Ticker: symbol}
	for _, item := range resp.Feed {
		if len(batch.Items) >= s.limit {
			break
		}
		score, relevance := resolveScores(item, symbol)
		batch.Items = append(batch.Items, models.NewsItem{
			Title:     item.Title,
			URL:       item.URL,
			Sentiment: score,
			Relevance: relevance,
		})
	}

	weighted, _ := batch.WeightedSentiment()
	s.logger.Debug().
		Str("ticker", symbol).
		Int("items", len(batch.Items)).
		Float64("weighted_sentiment", weighted).
		Msg("News batch scored")

	return batch, nil
}

// resolveScores picks the per-ticker sentiment pair when the item
// carries a positive relevance score for the queried ticker; otherwise
// it falls back to the overall sentiment score with defaultRelevance.
func resolveScores(item alphavantage.FeedItem, ticker string) (sentiment, relevance float64) {
	for _, ts := range item.TickerSentiment {
		if !strings.EqualFold(ts.Ticker, ticker) {
			continue
		}
		if r := ts.Relevance(); r > 0 {
			return ts.Sentiment(), r
		}
		break
	}
	return item.OverallSentimentScore, defaultRelevance
}
