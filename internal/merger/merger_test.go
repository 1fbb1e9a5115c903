package merger

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/normalizer"
)

func serviceFailure() normalizer.Outcome {
	return normalizer.FromServiceError(&models.ServiceError{
		Kind:  models.ServiceErrorQuota,
		Op:    "generate text",
		Cause: errors.New("429 resource exhausted"),
	})
}

func TestSentiment_UsesModelRecord(t *testing.T) {
	primary := normalizer.Parse(`{
		"sentiment_score": "0.45",
		"attrition_risk": "low",
		"key_concerns": ["workload"],
		"positive_factors": "supportive manager",
		"satisfaction_areas": {"work_life_balance": 4, "compensation": "12", "growth": "n/a"},
		"engagement_recommendations": ["Rebalance sprint workload"],
		"summary": "Mostly positive with workload pressure."
	}`)

	got, source := Sentiment(primary, LocalSentiment{Score: -0.9, Keywords: []string{"ignored"}})

	assert.Equal(t, SourceModel, source)
	assert.InDelta(t, 0.45, got.SentimentScore, 1e-9)
	assert.Equal(t, "Positive", got.Interpretation)
	assert.Equal(t, models.AttritionLow, got.AttritionRisk)
	assert.Equal(t, []string{"workload"}, got.KeyConcerns)
	assert.Equal(t, []string{"supportive manager"}, got.PositiveFactors)
	assert.Equal(t, map[string]int{"work_life_balance": 4, "compensation": 10}, got.SatisfactionAreas)
	assert.Equal(t, []string{
		"Rebalance sprint workload",
		"Continue reinforcing positive workplace culture",
		"Consider implementing a formal recognition program",
	}, got.EngagementRecommendations)
	assert.Equal(t, "Mostly positive with workload pressure.", got.Summary)
	require.NoError(t, ValidateSentiment(got))
}

func TestSentiment_MissingScoreUsesLocalHeuristic(t *testing.T) {
	primary := normalizer.Parse(`{"attrition_risk": "EXTREME", "engagement_recommendations": []}`)

	got, source := Sentiment(primary, LocalSentiment{Score: -0.55, Keywords: []string{"overtime", "burnout"}})

	assert.Equal(t, SourceLocal, source)
	assert.InDelta(t, -0.55, got.SentimentScore, 1e-9)
	assert.Equal(t, "Negative", got.Interpretation)
	assert.Equal(t, models.AttritionMedium, got.AttritionRisk)
	assert.Equal(t, []string{"overtime", "burnout"}, got.KeyConcerns)
	assert.Empty(t, got.PositiveFactors)
	assert.NotNil(t, got.PositiveFactors)
	assert.Equal(t, []string{
		"Conduct one-on-one meetings to address specific concerns",
		"Review management practices and team dynamics",
		"Develop an action plan to address identified issues",
	}, got.EngagementRecommendations)
	assert.NotEmpty(t, got.Summary)
	require.NoError(t, ValidateSentiment(got))
}

func TestSentiment_FailuresUseFullDefaultShape(t *testing.T) {
	tests := []struct {
		name    string
		primary normalizer.Outcome
	}{
		{name: "parse error", primary: normalizer.Parse("Sorry, I cannot help with that.")},
		{name: "service error", primary: serviceFailure()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := Sentiment(tt.primary, LocalSentiment{Score: 0.1, Keywords: []string{"team"}})

			assert.Equal(t, SourceLocal, source)
			assert.InDelta(t, 0.1, got.SentimentScore, 1e-9)
			assert.Equal(t, "Neutral", got.Interpretation)
			assert.Equal(t, models.AttritionMedium, got.AttritionRisk)
			assert.Equal(t, []string{"team"}, got.KeyConcerns)
			assert.Equal(t, FallbackEngagementRecommendations, got.EngagementRecommendations)
			require.NoError(t, ValidateSentiment(got))
		})
	}
}

func TestSentiment_ClampsAndDeduplicates(t *testing.T) {
	primary := normalizer.Parse(`{"sentiment_score": 3.5, "engagement_recommendations": ["A", "a", "B", "C"]}`)

	got, _ := Sentiment(primary, LocalSentiment{})

	assert.Equal(t, 1.0, got.SentimentScore)
	assert.Equal(t, "Very Positive", got.Interpretation)
	assert.Equal(t, []string{"A", "B", "C"}, got.EngagementRecommendations)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.8, "Very Positive"},
		{0.7, "Very Positive"},
		{0.3, "Positive"},
		{0, "Neutral"},
		{-0.3, "Neutral"},
		{-0.5, "Negative"},
		{-0.7, "Negative"},
		{-0.9, "Very Negative"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Interpret(tt.score), "score %v", tt.score)
	}
}

func TestResume_UsesModelRecord(t *testing.T) {
	primary := normalizer.Parse("```json\n" + `{
		"match_score": "87.6%",
		"skills_matched": ["Go", "PostgreSQL", 42],
		"skills_missing": [],
		"experience_match": "yes",
		"education_match": false,
		"key_strengths": ["Distributed systems"],
		"improvement_areas": ["Frontend"],
		"recommendation": "Interview"
	}` + "\n```")

	got, source := Resume(primary)

	assert.Equal(t, SourceModel, source)
	assert.Equal(t, 88, got.MatchScore)
	assert.Equal(t, []string{"Go", "PostgreSQL", "42"}, got.SkillsMatched)
	assert.Empty(t, got.SkillsMissing)
	assert.True(t, got.ExperienceMatch)
	assert.False(t, got.EducationMatch)
	assert.Equal(t, "Interview", got.Recommendation)
	require.NoError(t, ValidateResume(got))
}

func TestResume_DerivesMissingScore(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		source Source
	}{
		{
			name:   "from skill lists",
			raw:    `{"skills_matched": ["Go", "SQL"], "skills_missing": ["Kafka"]}`,
			want:   67,
			source: SourceLocal,
		},
		{
			name:   "no skills",
			raw:    `{"recommendation": "n/a"}`,
			want:   DefaultMatchScore,
			source: SourceLocal,
		},
		{
			name:   "score out of range",
			raw:    `{"match_score": 140}`,
			want:   100,
			source: SourceModel,
		},
		{
			name:   "malformed output",
			raw:    "The candidate looks great!",
			want:   DefaultMatchScore,
			source: SourceLocal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := Resume(normalizer.Parse(tt.raw))

			assert.Equal(t, tt.want, got.MatchScore)
			assert.Equal(t, tt.source, source)
			assert.NotEmpty(t, got.Recommendation)
			require.NoError(t, ValidateResume(got))
		})
	}
}

func TestResume_ServiceError(t *testing.T) {
	got, source := Resume(serviceFailure())

	assert.Equal(t, SourceLocal, source)
	assert.Equal(t, DefaultMatchScore, got.MatchScore)
	assert.Equal(t, DefaultResumeRecommendation, got.Recommendation)
	require.NoError(t, ValidateResume(got))
}

func TestDeriveMatchScore(t *testing.T) {
	assert.Equal(t, 50, DeriveMatchScore(0, 0))
	assert.Equal(t, 100, DeriveMatchScore(4, 0))
	assert.Equal(t, 0, DeriveMatchScore(0, 3))
	assert.Equal(t, 33, DeriveMatchScore(1, 2))
}

func TestValidate_RejectsIncompleteResults(t *testing.T) {
	assert.Error(t, ValidateSentiment(models.SentimentResult{}))
	assert.Error(t, ValidateResume(models.ResumeMatchResult{}))

	result := fallbackSentiment(LocalSentiment{})
	result.EngagementRecommendations = result.EngagementRecommendations[:2]
	assert.Error(t, ValidateSentiment(result))
}

func TestMerge_RoundTripStaysComplete(t *testing.T) {
	sentimentInputs := []normalizer.Outcome{
		normalizer.Parse(`{"sentiment_score": -0.2, "key_concerns": ["pay"], "satisfaction_areas": {"pay": 2}}`),
		normalizer.Parse("garbage"),
		serviceFailure(),
	}
	for _, primary := range sentimentInputs {
		first, _ := Sentiment(primary, LocalSentiment{Score: 0.4, Keywords: []string{"pay"}})
		require.NoError(t, ValidateSentiment(first))

		data, err := json.Marshal(first)
		require.NoError(t, err)
		second, _ := Sentiment(normalizer.Parse(string(data)), LocalSentiment{Score: -1})

		require.NoError(t, ValidateSentiment(second))
		assert.Equal(t, first, second)
	}

	resumeInputs := []normalizer.Outcome{
		normalizer.Parse(`{"skills_matched": ["Go"], "skills_missing": ["Rust", "Kafka"]}`),
		normalizer.Parse("no json here"),
		serviceFailure(),
	}
	for _, primary := range resumeInputs {
		first, _ := Resume(primary)
		require.NoError(t, ValidateResume(first))

		data, err := json.Marshal(first)
		require.NoError(t, err)
		second, _ := Resume(normalizer.Parse(string(data)))

		require.NoError(t, ValidateResume(second))
		assert.Equal(t, first, second)
	}
}
