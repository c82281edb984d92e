package alphavantage

import (
	"strconv"
)

// NewsSentimentResponse is the NEWS_SENTIMENT endpoint payload.
// Error conditions still arrive with HTTP 200; the non-feed fields carry
// the upstream's message in that case.
type NewsSentimentResponse struct {
	Items        string     `json:"items"`
	Feed         []FeedItem `json:"feed"`
	ErrorMessage string     `json:"Error Message"`
	Note         string     `json:"Note"`
	Information  string     `json:"Information"`
}

// UpstreamMessage returns the error/notice text embedded in a 200
// response, empty when the payload is a normal feed.
func (r *NewsSentimentResponse) UpstreamMessage() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	case r.Information != "":
		return r.Information
	}
	return ""
}

// FeedItem is a single news article with its sentiment annotations.
type FeedItem struct {
	Title                 string            `json:"title"`
	URL                   string            `json:"url"`
	TimePublished         string            `json:"time_published"`
	Summary               string            `json:"summary"`
	Source                string            `json:"source"`
	OverallSentimentScore float64           `json:"overall_sentiment_score"`
	OverallSentimentLabel string            `json:"overall_sentiment_label"`
	TickerSentiment       []TickerSentiment `json:"ticker_sentiment"`
}

// TickerSentiment carries the per-ticker scores for one article.
// Alpha Vantage encodes these numbers as JSON strings.
type TickerSentiment struct {
	Ticker         string `json:"ticker"`
	RelevanceScore string `json:"relevance_score"`
	SentimentScore string `json:"ticker_sentiment_score"`
	SentimentLabel string `json:"ticker_sentiment_label"`
}

// Relevance parses the string-encoded relevance score. Malformed values
// parse as zero, which downstream treats as "not relevant".
func (t TickerSentiment) Relevance() float64 {
	return parseScore(t.RelevanceScore)
}

// Sentiment parses the string-encoded sentiment score.
func (t TickerSentiment) Sentiment() float64 {
	return parseScore(t.SentimentScore)
}

func parseScore(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
