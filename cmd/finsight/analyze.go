package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/ternarybob/finsight/internal/app"
	"github.com/ternarybob/finsight/internal/marketdata"
)

// runAnalyze fetches price history for a ticker, summarizes the trend
// and projects the next 30 business days. Summary and forecast fail
// independently; a usable history is the only hard requirement.
func runAnalyze(application *app.App, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	window := fs.String("window", string(marketdata.Window6Months), "Look-back window: 1mo, 6mo or 1y")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: finsight analyze [-window 1mo|6mo|1y] <ticker>")
	}
	ticker := fs.Arg(0)

	ctx := context.Background()

	series, err := application.MarketService.History(ctx, ticker, marketdata.Window(*window))
	if err != nil {
		var unavailable *marketdata.DataUnavailableError
		if errors.As(err, &unavailable) {
			fmt.Printf("No price data is available for %q. Check the ticker symbol and try again.\n", ticker)
			return nil
		}
		return err
	}

	first, _ := series.First()
	last, _ := series.Last()
	fmt.Printf("%s: %d trading days from %s to %s\n",
		series.Ticker, series.Len(),
		first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))

	if result, err := application.SummaryService.Summarize(ctx, series); err != nil {
		fmt.Printf("\nTrend summary unavailable: %v\n", err)
	} else {
		fmt.Printf("\n%s\n", result.Text)
	}

	if projection, err := application.Forecaster.Project(series); err != nil {
		fmt.Printf("\nForecast unavailable: %v\n", err)
	} else {
		fmt.Printf("\nProjected close in %d business days (%s): $%.2f\n",
			len(projection.Points),
			projection.Points[len(projection.Points)-1].Date.Format("2006-01-02"),
			projection.Final)
	}

	return nil
}
