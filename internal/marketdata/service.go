package marketdata

import (
	"context"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/common"
	"github.com/ternarybob/finsight/internal/models"
)

// DefaultTimeout bounds a single history fetch.
const DefaultTimeout = 15 * time.Second

// barSource fetches daily close points for a symbol over a date range.
// Swappable so tests can substitute canned data.
type barSource func(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error)

// Service fetches daily price history.
type Service struct {
	logger  arbor.ILogger
	timeout time.Duration
	fetch   barSource
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(timeout time.Duration) ServiceOption {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// withBarSource substitutes the upstream fetch. Test hook.
func withBarSource(fetch barSource) ServiceOption {
	return func(s *Service) {
		s.fetch = fetch
	}
}

// NewService creates a market data service backed by Yahoo Finance.
func NewService(logger arbor.ILogger, opts ...ServiceOption) *Service {
	s := &Service{
		logger:  logger,
		timeout: DefaultTimeout,
		fetch:   yahooBars,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// History returns the daily closing price series for the ticker over the
// look-back window, ascending by date. Every failure mode maps to
// *DataUnavailableError so callers can treat it uniformly as "no data".
func (s *Service) History(ctx context.Context, ticker string, window Window) (*models.PriceSeries, error) {
	symbol, err := common.NormalizeTicker(ticker)
	if err != nil {
		return nil, &DataUnavailableError{Ticker: ticker, Err: err}
	}

	lookback, err := window.lookback()
	if err != nil {
		return nil, &DataUnavailableError{Ticker: symbol, Err: err}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	end := time.Now().UTC()
	start := end.Add(-lookback)

	points, err := s.fetch(fetchCtx, symbol, start, end)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", symbol).Str("window", string(window)).Msg("Price history fetch failed")
		return nil, &DataUnavailableError{Ticker: symbol, Err: err}
	}
	if len(points) == 0 {
		return nil, &DataUnavailableError{Ticker: symbol}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	s.logger.Debug().
		Str("ticker", symbol).
		Str("window", string(window)).
		Int("points", len(points)).
		Msg("Price history fetched")

	return &models.PriceSeries{
		Ticker: symbol,
		Points: points,
	}, nil
}

// yahooBars pulls daily bars from the Yahoo Finance chart endpoint.
func yahooBars(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	params.Context = &ctx

	iter := chart.Get(params)

	var points []models.PricePoint
	for iter.Next() {
		bar := iter.Bar()
		closePrice, _ := bar.Close.Float64()
		points = append(points, models.PricePoint{
			Date:  time.Unix(int64(bar.Timestamp), 0).UTC(),
			Close: closePrice,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
