package merger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"alfredoptarigan/hr-screening/internal/models"
)

const resumeSchemaJSON = `{
  "type": "object",
  "required": ["match_score", "skills_matched", "skills_missing", "experience_match",
               "education_match", "key_strengths", "improvement_areas", "recommendation"],
  "properties": {
    "match_score": {"type": "integer", "minimum": 0, "maximum": 100},
    "skills_matched": {"type": "array", "items": {"type": "string"}},
    "skills_missing": {"type": "array", "items": {"type": "string"}},
    "experience_match": {"type": "boolean"},
    "education_match": {"type": "boolean"},
    "key_strengths": {"type": "array", "items": {"type": "string"}},
    "improvement_areas": {"type": "array", "items": {"type": "string"}},
    "recommendation": {"type": "string", "minLength": 1}
  }
}`

const sentimentSchemaJSON = `{
  "type": "object",
  "required": ["sentiment_score", "interpretation", "attrition_risk", "key_concerns", "positive_factors",
               "satisfaction_areas", "engagement_recommendations", "summary"],
  "properties": {
    "sentiment_score": {"type": "number", "minimum": -1, "maximum": 1},
    "interpretation": {"enum": ["Very Positive", "Positive", "Neutral", "Negative", "Very Negative"]},
    "attrition_risk": {"enum": ["Low", "Medium", "High"]},
    "key_concerns": {"type": "array", "items": {"type": "string"}},
    "positive_factors": {"type": "array", "items": {"type": "string"}},
    "satisfaction_areas": {
      "type": "object",
      "additionalProperties": {"type": "integer", "minimum": 1, "maximum": 10}
    },
    "engagement_recommendations": {
      "type": "array",
      "minItems": 3,
      "items": {"type": "string", "minLength": 1}
    },
    "summary": {"type": "string", "minLength": 1}
  }
}`

var (
	resumeSchema    = mustCompile("resume.json", resumeSchemaJSON)
	sentimentSchema = mustCompile("sentiment.json", sentimentSchemaJSON)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return compiled
}

// ValidateResume reports whether r carries every required field in range.
func ValidateResume(r models.ResumeMatchResult) error {
	return validate(resumeSchema, r)
}

// ValidateSentiment reports whether r carries every required field in range.
func ValidateSentiment(r models.SentimentResult) error {
	return validate(sentimentSchema, r)
}

func validate(schema *jsonschema.Schema, result any) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}
