package prompts

import "fmt"

// BuildReviewPrompt embeds the review text unchanged in the analysis
// instruction. The JSON layout is spelled out as well, so the reply shape
// is described even where a provider cannot enforce a schema.
func BuildReviewPrompt(reviewText string) string {
	return fmt.Sprintf(`Analyze the following customer review for sentiment, key insights, and actionable items: %s

Respond in JSON format with this structure:
{
  "overall_sentiment": "overall sentiment of the review, e.g. positive, negative, neutral",
  "insights": [
    {
      "phrase": "key phrase from the review that holds significant insight",
      "sentiment": "sentiment expressed about the phrase, e.g. positive, negative, neutral"
    }
  ],
  "actionable_items": [
    {
      "action": "suggested action or area for improvement",
      "importance": "importance or urgency of the action, e.g. high, medium, low"
    }
  ]
}

Use empty lists when there are no insights or actionable items. Respond with the JSON object only.`, reviewText)
}
