package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const truncationMarker = "... [truncated]"

type PromptBuilder struct {
	maxInputChars int
}

func NewPromptBuilder(maxInputChars int) *PromptBuilder {
	if maxInputChars <= 0 {
		maxInputChars = 30000
	}
	return &PromptBuilder{maxInputChars: maxInputChars}
}

// BuildResumeScreeningPrompt creates prompt for matching a resume to a job description
func (pb *PromptBuilder) BuildResumeScreeningPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert HR recruiter screening a resume against a job description.

JOB DESCRIPTION:
%s

RESUME:
%s

Compare the resume with the job description. Identify which required skills the candidate has and
which are missing, and judge whether their experience and education fit the role.

Return ONLY a JSON object in the following format:
{
  "match_score": <integer 0-100>,
  "skills_matched": ["<skill>", ...],
  "skills_missing": ["<skill>", ...],
  "experience_match": <true|false>,
  "education_match": <true|false>,
  "key_strengths": ["<strength>", ...],
  "improvement_areas": ["<area>", ...],
  "recommendation": "<one or two sentences on whether to proceed>"
}

Base every judgement on evidence from the resume.`,
		pb.truncate(jobDescription), pb.truncate(resumeText))
}

// BuildSentimentPrompt creates prompt for employee feedback analysis
func (pb *PromptBuilder) BuildSentimentPrompt(feedback string) string {
	return fmt.Sprintf(`You are an experienced HR analyst reviewing employee feedback.

EMPLOYEE FEEDBACK:
%s

Assess the overall sentiment, the risk that this employee leaves, and what drives their satisfaction.

Return ONLY a JSON object in the following format:
{
  "sentiment_score": <number from -1.0 (very negative) to 1.0 (very positive)>,
  "attrition_risk": "<Low|Medium|High>",
  "key_concerns": ["<concern>", ...],
  "positive_factors": ["<factor>", ...],
  "satisfaction_areas": {"<category>": <integer 1-10>, ...},
  "engagement_recommendations": ["<action>", ...],
  "summary": "<two or three sentence summary>"
}

Always provide at least 3 engagement_recommendations.`,
		pb.truncate(feedback))
}

// truncate caps input at maxInputChars runes and marks the cut.
func (pb *PromptBuilder) truncate(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= pb.maxInputChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:pb.maxInputChars]) + truncationMarker
}
