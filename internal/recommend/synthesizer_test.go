package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/hr-screening/internal/models"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name   string
		result models.ResumeMatchResult
		want   []string
	}{
		{
			name:   "strong match without gaps",
			result: models.ResumeMatchResult{MatchScore: 90, ExperienceMatch: true, SkillsMissing: []string{}},
			want:   []string{strongMatch, closingNote},
		},
		{
			name:   "good match with experience gap",
			result: models.ResumeMatchResult{MatchScore: 75},
			want:   []string{goodMatch, experienceGap, despiteGaps},
		},
		{
			name: "critical and technical skills missing",
			result: models.ResumeMatchResult{
				MatchScore:      72,
				ExperienceMatch: true,
				SkillsMissing:   []string{"Kafka", "leadership", "Rust", "Terraform", "GraphQL", "Project Management"},
			},
			want: []string{
				goodMatch,
				"Missing critical skills: leadership, Project Management. Consider assessing adaptability and learning capacity.",
				"Consider technical assessment focused on: Kafka, Rust, Terraform.",
				despiteGaps,
			},
		},
		{
			name:   "moderate match with technical gap",
			result: models.ResumeMatchResult{MatchScore: 50, ExperienceMatch: true, SkillsMissing: []string{"Docker"}},
			want:   []string{moderateMatch, "Consider technical assessment focused on: Docker.", closingNote},
		},
		{
			name:   "low match everything missing",
			result: models.ResumeMatchResult{MatchScore: 20, SkillsMissing: []string{"Business Analysis"}},
			want: []string{
				lowMatch,
				experienceGap,
				"Missing critical skills: Business Analysis. Consider assessing adaptability and learning capacity.",
			},
		},
		{
			name:   "tier boundary 85",
			result: models.ResumeMatchResult{MatchScore: 85, ExperienceMatch: true},
			want:   []string{strongMatch, closingNote},
		},
		{
			name:   "tier boundary 49",
			result: models.ResumeMatchResult{MatchScore: 49, ExperienceMatch: true},
			want:   []string{lowMatch, closingNote},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synthesize(tt.result)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	result := models.ResumeMatchResult{MatchScore: 66, SkillsMissing: []string{"SQL", "Leadership"}}
	assert.Equal(t, Synthesize(result), Synthesize(result))
}
