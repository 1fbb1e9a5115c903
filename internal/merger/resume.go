package merger

import (
	"math"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/normalizer"
)

const (
	DefaultMatchScore           = 50
	DefaultResumeRecommendation = "Manual review recommended: the automated analysis did not return a complete assessment."
)

// Resume produces a complete ResumeMatchResult. Without a usable score the
// match score is derived from the skill lists.
func Resume(primary normalizer.Outcome) (models.ResumeMatchResult, Source) {
	result := models.ResumeMatchResult{
		SkillsMatched:    []string{},
		SkillsMissing:    []string{},
		KeyStrengths:     []string{},
		ImprovementAreas: []string{},
		Recommendation:   DefaultResumeRecommendation,
	}

	if !primary.OK() {
		result.MatchScore = DeriveMatchScore(0, 0)
		return result, SourceLocal
	}

	record := primary.Record
	result.SkillsMatched = listOr(record["skills_matched"], result.SkillsMatched)
	result.SkillsMissing = listOr(record["skills_missing"], result.SkillsMissing)
	result.ExperienceMatch = flagOr(record["experience_match"], false)
	result.EducationMatch = flagOr(record["education_match"], false)
	result.KeyStrengths = listOr(record["key_strengths"], result.KeyStrengths)
	result.ImprovementAreas = listOr(record["improvement_areas"], result.ImprovementAreas)
	result.Recommendation = textOr(record["recommendation"], DefaultResumeRecommendation)

	if score, ok := number(record["match_score"]); ok {
		result.MatchScore = int(math.Round(clamp(score, 0, 100)))
		return result, SourceModel
	}

	result.MatchScore = DeriveMatchScore(len(result.SkillsMatched), len(result.SkillsMissing))
	return result, SourceLocal
}

// DeriveMatchScore is round(100*matched/(matched+missing)), or
// DefaultMatchScore when there is nothing to compare.
func DeriveMatchScore(matched, missing int) int {
	total := matched + missing
	if total <= 0 {
		return DefaultMatchScore
	}
	return int(math.Round(100 * float64(matched) / float64(total)))
}
