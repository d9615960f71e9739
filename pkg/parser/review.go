package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/helmcode/review-insights/pkg/model"
)

// SchemaError reports a model response that does not fit ReviewAnalysis.
type SchemaError struct {
	Field  string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("response does not match review analysis schema: %s", e.Reason)
	}
	return fmt.Sprintf("response does not match review analysis schema: %s: %s", e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

type rawAnalysis struct {
	OverallSentiment *string         `json:"overall_sentiment"`
	Insights         json.RawMessage `json:"insights"`
	ActionableItems  json.RawMessage `json:"actionable_items"`
}

type rawInsight struct {
	Phrase    *string `json:"phrase"`
	Sentiment *string `json:"sentiment"`
}

type rawActionableItem struct {
	Action     *string `json:"action"`
	Importance *string `json:"importance"`
}

var nullJSON = []byte("null")

// ParseReviewAnalysis decodes a model reply into a ReviewAnalysis.
//
// overall_sentiment is required. The two lists may be omitted, in which
// case they decode as empty, but they may not be null. Every entry needs
// all of its fields, and phrase and action must be non-empty.
func ParseReviewAnalysis(raw string) (*model.ReviewAnalysis, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, &SchemaError{Reason: "empty response"}
	}

	var doc rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &SchemaError{Reason: "invalid JSON object", Err: err}
	}

	if doc.OverallSentiment == nil {
		return nil, &SchemaError{Field: "overall_sentiment", Reason: "missing"}
	}

	analysis := &model.ReviewAnalysis{
		OverallSentiment: *doc.OverallSentiment,
		Insights:         []model.InsightEntry{},
		ActionableItems:  []model.ActionableItem{},
	}

	var insights []rawInsight
	if err := decodeList(doc.Insights, "insights", &insights); err != nil {
		return nil, err
	}
	for i, in := range insights {
		field := fmt.Sprintf("insights[%d]", i)
		if in.Phrase == nil {
			return nil, &SchemaError{Field: field + ".phrase", Reason: "missing"}
		}
		if strings.TrimSpace(*in.Phrase) == "" {
			return nil, &SchemaError{Field: field + ".phrase", Reason: "empty"}
		}
		if in.Sentiment == nil {
			return nil, &SchemaError{Field: field + ".sentiment", Reason: "missing"}
		}
		analysis.Insights = append(analysis.Insights, model.InsightEntry{
			Phrase:    *in.Phrase,
			Sentiment: *in.Sentiment,
		})
	}

	var items []rawActionableItem
	if err := decodeList(doc.ActionableItems, "actionable_items", &items); err != nil {
		return nil, err
	}
	for i, it := range items {
		field := fmt.Sprintf("actionable_items[%d]", i)
		if it.Action == nil {
			return nil, &SchemaError{Field: field + ".action", Reason: "missing"}
		}
		if strings.TrimSpace(*it.Action) == "" {
			return nil, &SchemaError{Field: field + ".action", Reason: "empty"}
		}
		if it.Importance == nil {
			return nil, &SchemaError{Field: field + ".importance", Reason: "missing"}
		}
		analysis.ActionableItems = append(analysis.ActionableItems, model.ActionableItem{
			Action:     *it.Action,
			Importance: *it.Importance,
		})
	}

	return analysis, nil
}

// decodeList leaves dst untouched when the field was omitted.
func decodeList(data json.RawMessage, field string, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(data), nullJSON) {
		return &SchemaError{Field: field, Reason: "must be a list, got null"}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &SchemaError{Field: field, Reason: "must be a list of objects", Err: err}
	}
	return nil
}

var fenceRe = regexp.MustCompile("```[a-zA-Z]*\n|```")

// extractJSON removes markdown code fences and any prose around the
// outermost JSON object.
func extractJSON(text string) string {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}
