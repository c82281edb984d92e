package forecast

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/models"
	"gonum.org/v1/gonum/mat"
)

// Forecaster projects daily closing prices with an ARIMA(5,1,0)-style
// model: the close series is differenced once and an AR(5) with
// intercept is fitted to the differences by least squares. Point
// forecasts only; no confidence intervals.
type Forecaster struct {
	logger arbor.ILogger
}

// NewForecaster creates a Forecaster.
func NewForecaster(logger arbor.ILogger) *Forecaster {
	return &Forecaster{logger: logger}
}

// Project fits the model and forecasts models.ForecastHorizon business
// days past the last historical date. Series shorter than MinPoints or
// with zero close variance fail with *Error rather than producing a
// meaningless extrapolation.
func (f *Forecaster) Project(series *models.PriceSeries) (*models.Forecast, error) {
	if series == nil || series.Len() == 0 {
		return nil, &Error{Ticker: "", Reason: "empty price series"}
	}
	if series.Len() < MinPoints {
		return nil, &Error{Ticker: series.Ticker, Reason: "not enough data points to fit the model"}
	}

	closes := series.Closes()
	variance, err := stats.Variance(closes)
	if err != nil {
		return nil, &Error{Ticker: series.Ticker, Reason: "series statistics unavailable", Err: err}
	}
	if variance == 0 {
		return nil, &Error{Ticker: series.Ticker, Reason: "constant price series"}
	}

	// First difference.
	diffs := make([]float64, len(closes)-1)
	for i := range diffs {
		diffs[i] = closes[i+1] - closes[i]
	}

	coef, err := fitAR(diffs)
	if err != nil {
		return nil, &Error{Ticker: series.Ticker, Reason: "model fit failed", Err: err}
	}

	// Seed the lag buffer with the most recent differences, newest first.
	recent := make([]float64, arOrder)
	for i := 0; i < arOrder; i++ {
		recent[i] = diffs[len(diffs)-1-i]
	}

	last, _ := series.Last()
	price := last.Close
	date := last.Date

	points := make([]models.ForecastPoint, 0, models.ForecastHorizon)
	for step := 0; step < models.ForecastHorizon; step++ {
		next := coef[0]
		for j := 0; j < arOrder; j++ {
			next += coef[j+1] * recent[j]
		}
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return nil, &Error{Ticker: series.Ticker, Reason: "model produced a non-finite forecast"}
		}

		price += next
		date = nextBusinessDay(date)
		points = append(points, models.ForecastPoint{Date: date, Price: price})

		copy(recent[1:], recent[:arOrder-1])
		recent[0] = next
	}

	f.logger.Debug().
		Str("ticker", series.Ticker).
		Int("history_points", series.Len()).
		Float64("final", points[len(points)-1].Price).
		Msg("Forecast projected")

	return &models.Forecast{
		Ticker: series.Ticker,
		Points: points,
		Final:  points[len(points)-1].Price,
	}, nil
}

// fitAR estimates intercept plus arOrder lag coefficients for the
// differenced series by least squares. Returns [c, phi1..phi5].
func fitAR(diffs []float64) ([]float64, error) {
	rows := len(diffs) - arOrder
	cols := arOrder + 1

	x := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)
	for t := arOrder; t < len(diffs); t++ {
		row := t - arOrder
		x.Set(row, 0, 1)
		for j := 1; j <= arOrder; j++ {
			x.Set(row, j, diffs[t-j])
		}
		y.SetVec(row, diffs[t])
	}

	var solution mat.VecDense
	if err := solution.SolveVec(x, y); err != nil {
		return nil, err
	}

	coef := make([]float64, cols)
	for i := range coef {
		coef[i] = solution.AtVec(i)
		if math.IsNaN(coef[i]) || math.IsInf(coef[i], 0) {
			return nil, fmt.Errorf("non-finite model coefficient")
		}
	}
	return coef, nil
}
