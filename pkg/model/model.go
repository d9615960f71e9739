package model

// ReviewAnalysis is the structured result extracted from one customer review.
type ReviewAnalysis struct {
	OverallSentiment string           `json:"overall_sentiment" yaml:"overall_sentiment" description:"The overall sentiment of the review, e.g., positive, negative, neutral."`
	Insights         []InsightEntry   `json:"insights" yaml:"insights" description:"List of key insights extracted from the review."`
	ActionableItems  []ActionableItem `json:"actionable_items" yaml:"actionable_items" description:"List of actionable items or suggestions for improvement."`
}

// InsightEntry is a key phrase from the review and the sentiment expressed about it.
type InsightEntry struct {
	Phrase    string `json:"phrase" yaml:"phrase" description:"A key phrase extracted from the review that holds significant insight."`
	Sentiment string `json:"sentiment" yaml:"sentiment" description:"The sentiment expressed regarding the key phrase, e.g., positive, negative, neutral."`
}

// ActionableItem is a suggested improvement and how urgent it is.
type ActionableItem struct {
	Action     string `json:"action" yaml:"action" description:"A suggested action or area for improvement identified from the review."`
	Importance string `json:"importance" yaml:"importance" description:"The level of importance or urgency of the action, e.g., high, medium, low."`
}

// Normalized returns a copy whose sequences are never nil, so they
// serialize as empty lists instead of null.
func (a ReviewAnalysis) Normalized() ReviewAnalysis {
	out := ReviewAnalysis{
		OverallSentiment: a.OverallSentiment,
		Insights:         make([]InsightEntry, len(a.Insights)),
		ActionableItems:  make([]ActionableItem, len(a.ActionableItems)),
	}
	copy(out.Insights, a.Insights)
	copy(out.ActionableItems, a.ActionableItems)
	return out
}
