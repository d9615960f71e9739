package model

import (
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// ReviewAnalysisSchemaName is the name the schema is registered under in
// structured completion requests.
const ReviewAnalysisSchemaName = "review_analysis"

var (
	schemaOnce sync.Once
	schemaDef  *jsonschema.Definition
	schemaErr  error
)

// ReviewAnalysisSchema returns the JSON schema describing ReviewAnalysis.
// Every field is required and no additional properties are allowed, which
// is what strict structured output expects.
func ReviewAnalysisSchema() (*jsonschema.Definition, error) {
	schemaOnce.Do(func() {
		schemaDef, schemaErr = jsonschema.GenerateSchemaForType(ReviewAnalysis{})
		if schemaErr != nil {
			schemaErr = fmt.Errorf("generate review analysis schema: %w", schemaErr)
		}
	})
	return schemaDef, schemaErr
}
