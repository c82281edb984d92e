// Package alphavantage provides a client for the Alpha Vantage market
// intelligence API. This package centralizes the NEWS_SENTIMENT endpoint
// interactions for the application.
package alphavantage

import (
	"fmt"
	"time"
)

// QueryOption represents an optional parameter for API queries.
type QueryOption func(*queryParams)

// queryParams holds optional query parameters.
type queryParams struct {
	Limit int
	From  time.Time
	To    time.Time
}

// WithLimit sets the maximum number of feed items to request.
func WithLimit(limit int) QueryOption {
	return func(p *queryParams) {
		p.Limit = limit
	}
}

// WithTimeRange restricts the feed to articles published in the range.
func WithTimeRange(from, to time.Time) QueryOption {
	return func(p *queryParams) {
		p.From = from
		p.To = to
	}
}

// APIError represents an error from the Alpha Vantage API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Alpha Vantage rate limit exceeded, retry after %v", e.RetryAfter)
}
