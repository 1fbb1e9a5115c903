package merger

import (
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/normalizer"
)

// Source tells the caller where the headline score came from.
type Source string

const (
	SourceModel Source = "model"
	SourceLocal Source = "local-heuristic"
)

const minEngagementRecommendations = 3

// LocalSentiment is the signal computed without the model.
type LocalSentiment struct {
	Score    float64
	Keywords []string
}

// FallbackEngagementRecommendations is used when the model gave nothing usable.
var FallbackEngagementRecommendations = []string{
	"Consider conducting a follow-up interview to gather more specific feedback.",
	"Implement regular check-ins to maintain communication channels.",
	"Review team dynamics and management practices.",
}

var (
	positivePool = []string{
		"Continue reinforcing positive workplace culture",
		"Consider implementing a formal recognition program",
		"Maintain current management practices that are working well",
	}
	neutralPool = []string{
		"Schedule regular feedback sessions to address potential concerns",
		"Evaluate team communication processes for improvement opportunities",
		"Consider workplace satisfaction surveys to identify specific areas for enhancement",
	}
	negativePool = []string{
		"Conduct one-on-one meetings to address specific concerns",
		"Review management practices and team dynamics",
		"Develop an action plan to address identified issues",
		"Consider implementing additional support resources",
	}
)

// Sentiment produces a complete SentimentResult from a model outcome and
// the local lexicon score. It cannot fail.
func Sentiment(primary normalizer.Outcome, local LocalSentiment) (models.SentimentResult, Source) {
	if !primary.OK() {
		return fallbackSentiment(local), SourceLocal
	}

	record := primary.Record
	source := SourceModel

	score, ok := number(record["sentiment_score"])
	if !ok {
		score = local.Score
		source = SourceLocal
	}
	score = clampSentiment(score)

	satisfaction, ok := areas(record["satisfaction_areas"])
	if !ok {
		satisfaction = map[string]int{}
	}

	recommendations, _ := stringList(record["engagement_recommendations"])

	result := models.SentimentResult{
		SentimentScore:            score,
		Interpretation:            Interpret(score),
		AttritionRisk:             attritionRisk(record["attrition_risk"]),
		KeyConcerns:               listOr(record["key_concerns"], local.Keywords),
		PositiveFactors:           listOr(record["positive_factors"], nil),
		SatisfactionAreas:         satisfaction,
		EngagementRecommendations: topUp(recommendations, recommendationPool(score), minEngagementRecommendations),
	}
	result.Summary = textOr(record["summary"], defaultSummary(result))

	return result, source
}

func fallbackSentiment(local LocalSentiment) models.SentimentResult {
	score := clampSentiment(local.Score)
	result := models.SentimentResult{
		SentimentScore:            score,
		Interpretation:            Interpret(score),
		AttritionRisk:             models.AttritionMedium,
		KeyConcerns:               append([]string{}, local.Keywords...),
		PositiveFactors:           []string{},
		SatisfactionAreas:         map[string]int{},
		EngagementRecommendations: append([]string{}, FallbackEngagementRecommendations...),
	}
	result.Summary = defaultSummary(result)
	return result
}

// Interpret maps a sentiment score to its label.
func Interpret(score float64) string {
	switch {
	case score >= 0.7:
		return "Very Positive"
	case score >= 0.3:
		return "Positive"
	case score >= -0.3:
		return "Neutral"
	case score >= -0.7:
		return "Negative"
	default:
		return "Very Negative"
	}
}

func clampSentiment(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return clamp(score, -1, 1)
}

func attritionRisk(v any) models.AttritionRisk {
	s, _ := text(v)
	switch strings.ToLower(s) {
	case "low":
		return models.AttritionLow
	case "high":
		return models.AttritionHigh
	default:
		return models.AttritionMedium
	}
}

func recommendationPool(score float64) []string {
	switch {
	case score >= 0.3:
		return positivePool
	case score >= -0.3:
		return neutralPool
	default:
		return negativePool
	}
}

// topUp appends pool entries not already present until list has min items.
func topUp(list, pool []string, min int) []string {
	result := make([]string, 0, min)
	seen := make(map[string]bool, len(list)+len(pool))
	for _, item := range list {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, item)
	}

	for _, item := range pool {
		if len(result) >= min {
			break
		}
		if key := strings.ToLower(item); !seen[key] {
			seen[key] = true
			result = append(result, item)
		}
	}
	return result
}

func defaultSummary(r models.SentimentResult) string {
	return fmt.Sprintf("Feedback reads as %s overall (score %.2f) with %s attrition risk.",
		strings.ToLower(r.Interpretation), r.SentimentScore, strings.ToLower(string(r.AttritionRisk)))
}
