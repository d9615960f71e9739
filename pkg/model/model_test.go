package model

import (
	"testing"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized_NilSequencesBecomeEmpty(t *testing.T) {
	got := ReviewAnalysis{OverallSentiment: "neutral"}.Normalized()

	require.NotNil(t, got.Insights)
	require.NotNil(t, got.ActionableItems)
	assert.Empty(t, got.Insights)
	assert.Empty(t, got.ActionableItems)
	assert.Equal(t, "neutral", got.OverallSentiment)
}

func TestNormalized_CopiesSequences(t *testing.T) {
	orig := ReviewAnalysis{
		OverallSentiment: "mixed",
		Insights:         []InsightEntry{{Phrase: "fast setup", Sentiment: "positive"}},
		ActionableItems:  []ActionableItem{{Action: "improve the manual", Importance: "high"}},
	}

	got := orig.Normalized()
	got.Insights[0].Phrase = "changed"

	assert.Equal(t, "fast setup", orig.Insights[0].Phrase)
	assert.Equal(t, orig.ActionableItems, got.ActionableItems)
}

func TestReviewAnalysisSchema(t *testing.T) {
	def, err := ReviewAnalysisSchema()
	require.NoError(t, err)

	assert.Equal(t, jsonschema.Object, def.Type)
	assert.ElementsMatch(t, []string{"overall_sentiment", "insights", "actionable_items"}, def.Required)

	insights, ok := def.Properties["insights"]
	require.True(t, ok)
	assert.Equal(t, jsonschema.Array, insights.Type)
	require.NotNil(t, insights.Items)
	assert.ElementsMatch(t, []string{"phrase", "sentiment"}, insights.Items.Required)

	items, ok := def.Properties["actionable_items"]
	require.True(t, ok)
	require.NotNil(t, items.Items)
	assert.ElementsMatch(t, []string{"action", "importance"}, items.Items.Required)
	assert.Contains(t, items.Items.Properties["importance"].Description, "urgency")
}

func TestReviewAnalysisSchema_Cached(t *testing.T) {
	first, err := ReviewAnalysisSchema()
	require.NoError(t, err)
	second, err := ReviewAnalysisSchema()
	require.NoError(t, err)

	assert.Same(t, first, second)
}
