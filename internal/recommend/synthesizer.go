package recommend

import (
	"fmt"
	"strings"

	"alfredoptarigan/hr-screening/internal/models"
)

const (
	strongMatch   = "Strong candidate match. Proceed to interview stage with standard process."
	goodMatch     = "Good candidate match. Consider a technical assessment before interview."
	moderateMatch = "Moderate candidate match. Consider a preliminary screening call to assess potential."
	lowMatch      = "Low match score. Consider other candidates or explore if candidate has transferable skills not captured in the analysis."

	experienceGap  = "Experience gap detected. If proceeding with candidate, prepare specific questions about relevant projects and practical applications."
	despiteGaps    = "Candidate shows strong potential despite gaps. Consider assessing cultural fit and growth mindset."
	closingNote    = "Review candidate's communication skills and problem-solving approach during interview."
	minimumOutputs = 3
	maxListedSkill = 3
)

// CriticalSkills are called out separately when missing.
var CriticalSkills = []string{"Business Analysis", "Project Management", "Leadership"}

// Synthesize turns a screening result into ordered follow-up actions. Rules
// fire in a fixed order and the list is never empty.
func Synthesize(result models.ResumeMatchResult) []string {
	recommendations := []string{tier(result.MatchScore)}

	if !result.ExperienceMatch {
		recommendations = append(recommendations, experienceGap)
	}

	critical, other := splitCritical(result.SkillsMissing)
	if len(critical) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Missing critical skills: %s. Consider assessing adaptability and learning capacity.",
			strings.Join(critical, ", ")))
	}
	if len(other) > 0 {
		if len(other) > maxListedSkill {
			other = other[:maxListedSkill]
		}
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider technical assessment focused on: %s.", strings.Join(other, ", ")))
	}

	if result.MatchScore >= 70 && (!result.ExperienceMatch || len(result.SkillsMissing) > 0) {
		recommendations = append(recommendations, despiteGaps)
	}

	if len(recommendations) < minimumOutputs {
		recommendations = append(recommendations, closingNote)
	}

	return recommendations
}

func tier(score int) string {
	switch {
	case score >= 85:
		return strongMatch
	case score >= 70:
		return goodMatch
	case score >= 50:
		return moderateMatch
	default:
		return lowMatch
	}
}

func splitCritical(missing []string) (critical, other []string) {
	for _, skill := range missing {
		if isCritical(skill) {
			critical = append(critical, skill)
		} else {
			other = append(other, skill)
		}
	}
	return critical, other
}

func isCritical(skill string) bool {
	for _, c := range CriticalSkills {
		if strings.EqualFold(strings.TrimSpace(skill), c) {
			return true
		}
	}
	return false
}
