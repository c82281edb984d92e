// Package marketdata retrieves historical daily closing prices for a
// ticker over a fixed look-back window, backed by the Yahoo Finance
// chart API.
package marketdata

import (
	"fmt"
	"time"
)

// Window is the supported look-back period for a history query.
type Window string

const (
	Window1Month  Window = "1mo"
	Window6Months Window = "6mo"
	Window1Year   Window = "1y"
)

// lookback returns the duration covered by the window.
func (w Window) lookback() (time.Duration, error) {
	switch w {
	case Window1Month:
		return 31 * 24 * time.Hour, nil
	case Window6Months:
		return 183 * 24 * time.Hour, nil
	case Window1Year:
		return 365 * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("unsupported look-back window %q", string(w))
}

// DataUnavailableError is returned when no usable price data exists for
// a ticker: unknown symbol, empty upstream result, or a source failure.
// Callers treat it as "no data" rather than a fatal condition.
type DataUnavailableError struct {
	Ticker string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no price data available for %s: %v", e.Ticker, e.Err)
	}
	return fmt.Sprintf("no price data available for %s", e.Ticker)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}
