package domain

// Action represents the side of a journal entry (Buy or Sell).
type Action string

const (
	Buy  Action = "Buy"
	Sell Action = "Sell"
)

// IsValid reports whether the action is one of the two known sides.
func (a Action) IsValid() bool {
	return a == Buy || a == Sell
}

// Sentiment is the categorical market mood captured in a snapshot.
type Sentiment string

const (
	SentimentVeryPositive Sentiment = "Very Positive"
	SentimentPositive     Sentiment = "Positive"
	SentimentNeutral      Sentiment = "Neutral"
	SentimentNegative     Sentiment = "Negative"
	SentimentVeryNegative Sentiment = "Very Negative"
)

// Behavior tag vocabularies. A trade's tag must belong to the set for its
// action; the two sets are fixed and distinct per side.
var (
	buyTags = []string{
		"Momentum Chaser",
		"Trend Continuation",
		"Dip Buyer",
		"Recovery Hope",
		"News Reaction",
		"Policy Reaction",
		"Fundamentals Believer",
		"Report Driven",
		"Revenge Trader",
		"Averaging Down",
		"Crowd Follower",
		"Earnings Play",
	}
	sellTags = []string{
		"Target Reached",
		"Quick Profit Taker",
		"Panic Seller",
		"Delayed Stop Loss",
		"Trend Break Detected",
		"Momentum Fader",
		"Anxiety Exit",
		"Regret Avoidance",
	}
)

// BehaviorTags returns the tag vocabulary for the given action.
// The returned slice is a copy and safe to modify.
func BehaviorTags(a Action) []string {
	var src []string
	switch a {
	case Buy:
		src = buyTags
	case Sell:
		src = sellTags
	default:
		return nil
	}
	tags := make([]string, len(src))
	copy(tags, src)
	return tags
}

// IsValidBehaviorTag reports whether tag belongs to the vocabulary for the action.
func IsValidBehaviorTag(a Action, tag string) bool {
	for _, t := range BehaviorTags(a) {
		if t == tag {
			return true
		}
	}
	return false
}
