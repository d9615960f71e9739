package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/helmcode/review-insights/pkg/llm"
	"github.com/helmcode/review-insights/pkg/model"
	"github.com/helmcode/review-insights/pkg/parser"
	"github.com/helmcode/review-insights/pkg/prompts"
	log "github.com/sirupsen/logrus"
)

// ErrEmptyReview is returned for review text that is empty or only whitespace.
var ErrEmptyReview = errors.New("review text is empty")

type Analyzer struct {
	llm llm.LLM
}

func NewWithLLM(l llm.LLM) *Analyzer {
	return &Analyzer{llm: l}
}

// AnalyzeReview sends the review to the model once and decodes the reply.
// It fails with a *parser.SchemaError when the reply does not conform.
func (a *Analyzer) AnalyzeReview(ctx context.Context, reviewText string) (*model.ReviewAnalysis, error) {
	if strings.TrimSpace(reviewText) == "" {
		return nil, ErrEmptyReview
	}

	schema, err := model.ReviewAnalysisSchema()
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"provider":     a.llm.Name(),
		"model":        a.llm.GetModel(),
		"review_bytes": len(reviewText),
	}).Debug("Sending review for analysis")

	rawResp, err := a.llm.Chat(ctx, llm.Request{
		Prompt:     prompts.BuildReviewPrompt(reviewText),
		SchemaName: model.ReviewAnalysisSchemaName,
		Schema:     schema,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM chat: %w", err)
	}

	analysis, err := parser.ParseReviewAnalysis(rawResp)
	if err != nil {
		log.WithError(err).Debugf("Rejected model response: %s", rawResp)
		return nil, err
	}
	return analysis, nil
}
