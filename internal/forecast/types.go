// Package forecast fits an autoregressive integrated model to recent
// daily closes and projects a fixed 30-business-day price forecast.
package forecast

import (
	"fmt"
	"time"
)

const (
	// arOrder is the number of autoregressive lags (ARIMA p).
	arOrder = 5

	// MinPoints is the minimum series length that supports a fit.
	MinPoints = 10
)

// Error is returned when a series cannot support a meaningful forecast:
// too short, degenerate, or a failed model fit.
type Error struct {
	Ticker string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forecast failed for %s: %s: %v", e.Ticker, e.Reason, e.Err)
	}
	return fmt.Sprintf("forecast failed for %s: %s", e.Ticker, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// nextBusinessDay returns the next weekday after t. Exchange holidays
// are not modelled; the horizon is stepped Monday through Friday.
func nextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
