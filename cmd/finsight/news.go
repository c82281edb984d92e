package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/finsight/internal/app"
	"github.com/ternarybob/finsight/internal/services/news"
)

// runNews scores recent news sentiment for a ticker and prints the
// weighted aggregate plus any notably positive articles.
func runNews(application *app.App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: finsight news <ticker>")
	}
	ticker := args[0]

	batch, err := application.NewsService.Score(context.Background(), ticker)
	if err != nil {
		var noNews *news.NoNewsError
		if errors.As(err, &noNews) {
			fmt.Printf("No recent news found for %q.\n", ticker)
			return nil
		}
		return err
	}

	fmt.Printf("%s: %d scored articles\n", batch.Ticker, len(batch.Items))
	if score, ok := batch.WeightedSentiment(); ok {
		fmt.Printf("Relevance-weighted sentiment: %+.3f\n", score)
	} else {
		fmt.Println("Relevance-weighted sentiment: undefined (no relevant articles)")
	}

	notable := batch.NotableItems()
	if len(notable) == 0 {
		fmt.Println("No notably positive articles.")
		return nil
	}

	fmt.Printf("\nNotably positive articles:\n")
	for _, item := range notable {
		fmt.Printf("  %+.2f (relevance %.2f)  %s\n    %s\n", item.Sentiment, item.Relevance, item.Title, item.URL)
	}

	return nil
}
