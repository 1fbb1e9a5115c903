package models

type AttritionRisk string

const (
	AttritionLow    AttritionRisk = "Low"
	AttritionMedium AttritionRisk = "Medium"
	AttritionHigh   AttritionRisk = "High"
)

// ResumeMatchResult is the schema-complete outcome of screening a resume.
type ResumeMatchResult struct {
	MatchScore       int      `json:"match_score"`
	SkillsMatched    []string `json:"skills_matched"`
	SkillsMissing    []string `json:"skills_missing"`
	ExperienceMatch  bool     `json:"experience_match"`
	EducationMatch   bool     `json:"education_match"`
	KeyStrengths     []string `json:"key_strengths"`
	ImprovementAreas []string `json:"improvement_areas"`
	Recommendation   string   `json:"recommendation"`
}

// SentimentResult is the schema-complete outcome of analyzing feedback.
type SentimentResult struct {
	SentimentScore            float64        `json:"sentiment_score"`
	Interpretation            string         `json:"interpretation"`
	AttritionRisk             AttritionRisk  `json:"attrition_risk"`
	KeyConcerns               []string       `json:"key_concerns"`
	PositiveFactors           []string       `json:"positive_factors"`
	SatisfactionAreas         map[string]int `json:"satisfaction_areas"`
	EngagementRecommendations []string       `json:"engagement_recommendations"`
	Summary                   string         `json:"summary"`
}

type ScreeningResponse struct {
	ID string `json:"id,omitempty"`
	ResumeMatchResult
	FileName           string   `json:"file_name"`
	ResumeTextPreview  string   `json:"resume_text_preview"`
	Recommendations    []string `json:"recommendations"`
	ExtractionMethod   string   `json:"extraction_method"`
	ExtractionStrategy string   `json:"extraction_strategy"`
	AnalysisSource     string   `json:"analysis_source"`
	Status             string   `json:"status"`
}

type FeedbackResponse struct {
	ID string `json:"id,omitempty"`
	SentimentResult
	Recommendations  string   `json:"recommendations"`
	TextLength       int      `json:"text_length"`
	WordCount        int      `json:"word_count"`
	LexiconSentiment float64  `json:"lexicon_sentiment"`
	Keywords         []string `json:"keywords"`
	AnalysisSource   string   `json:"analysis_source"`
	Status           string   `json:"status"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type SimilarResult struct {
	ID      string  `json:"id"`
	DocType string  `json:"doc_type"`
	Score   float32 `json:"score"`
	Text    string  `json:"text"`
}
