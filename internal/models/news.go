package models

// Thresholds for flagging a news item as notably positive for display.
const (
	// NotableSentimentMin is the minimum sentiment score for a notable item.
	NotableSentimentMin = 0.1

	// NotableRelevanceMin is the minimum relevance score for a notable item.
	NotableRelevanceMin = 0.5
)

// NewsItem is a single scored news article for a ticker.
// Sentiment is roughly in [-1, 1], Relevance in [0, 1].
type NewsItem struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Sentiment float64 `json:"sentiment"`
	Relevance float64 `json:"relevance"`
}

// Notable reports whether the item is a notable positive for display.
func (n NewsItem) Notable() bool {
	return n.Sentiment > NotableSentimentMin && n.Relevance > NotableRelevanceMin
}

// NewsBatch is the scored news set for one ticker, in upstream order.
type NewsBatch struct {
	Ticker string     `json:"ticker"`
	Items  []NewsItem `json:"items"`
}

// WeightedSentiment returns the relevance-weighted sentiment score across
// the batch: sum(sentiment*relevance) / sum(relevance). The boolean is
// false when the batch is empty or total relevance is zero, in which case
// the score is undefined.
func (b *NewsBatch) WeightedSentiment() (float64, bool) {
	if b == nil || len(b.Items) == 0 {
		return 0, false
	}
	var weighted, total float64
	for _, item := range b.Items {
		weighted += item.Sentiment * item.Relevance
		total += item.Relevance
	}
	if total <= 0 {
		return 0, false
	}
	return weighted / total, true
}

// NotableItems returns the items classified as notable positives,
// preserving batch order.
func (b *NewsBatch) NotableItems() []NewsItem {
	var notable []NewsItem
	for _, item := range b.Items {
		if item.Notable() {
			notable = append(notable, item)
		}
	}
	return notable
}
