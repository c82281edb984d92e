// Package models defines the data structures shared across the
// analysis services: price history, forecasts, news sentiment,
// chat turns and user records.
package models

import (
	"time"
)

// PricePoint is a single day's closing price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily closes for one ticker,
// ascending by date. A series is immutable once fetched.
type PriceSeries struct {
	Ticker string       `json:"ticker"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of points in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// First returns the earliest point. The boolean is false for an empty series.
func (s *PriceSeries) First() (PricePoint, bool) {
	if s.Len() == 0 {
		return PricePoint{}, false
	}
	return s.Points[0], true
}

// Last returns the most recent point. The boolean is false for an empty series.
func (s *PriceSeries) Last() (PricePoint, bool) {
	if s.Len() == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Closes returns the closing prices in date order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// ForecastPoint is a single projected price on a future business day.
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Forecast is a fixed-horizon price projection. Points are spaced by
// business day, strictly ascending, exactly ForecastHorizon entries
// beyond the last historical date.
type Forecast struct {
	Ticker string          `json:"ticker"`
	Points []ForecastPoint `json:"points"`
	Final  float64         `json:"final"`
}

// ForecastHorizon is the number of business days every forecast projects.
const ForecastHorizon = 30
