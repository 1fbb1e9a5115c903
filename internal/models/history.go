package models

import (
	"time"

	"github.com/google/uuid"
)

type IndexStatus string

const (
	IndexQueued  IndexStatus = "queued"
	IndexIndexed IndexStatus = "indexed"
	IndexFailed  IndexStatus = "failed"
)

type Screening struct {
	ID               uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileName         string      `gorm:"type:text" json:"file_name"`
	JobDescription   string      `gorm:"type:text" json:"job_description"`
	ResumeText       string      `gorm:"type:text" json:"-"`
	ExtractionMethod string      `gorm:"type:text" json:"extraction_method"`
	MatchScore       int         `gorm:"not null" json:"match_score"`
	AnalysisSource   string      `gorm:"type:text" json:"analysis_source"`
	Result           string      `gorm:"type:jsonb" json:"result"`
	IndexStatus      IndexStatus `gorm:"not null;default:'queued'" json:"index_status"`
	IndexError       *string     `gorm:"type:text" json:"index_error,omitempty"`
	CreatedAt        time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Screening) TableName() string {
	return "screenings"
}

type FeedbackAnalysis struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FeedbackText   string      `gorm:"type:text" json:"feedback_text"`
	SentimentScore float64     `gorm:"not null" json:"sentiment_score"`
	Interpretation string      `gorm:"type:text" json:"interpretation"`
	AttritionRisk  string      `gorm:"type:text" json:"attrition_risk"`
	AnalysisSource string      `gorm:"type:text" json:"analysis_source"`
	Result         string      `gorm:"type:jsonb" json:"result"`
	IndexStatus    IndexStatus `gorm:"not null;default:'queued'" json:"index_status"`
	IndexError     *string     `gorm:"type:text" json:"index_error,omitempty"`
	CreatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (FeedbackAnalysis) TableName() string {
	return "feedback_analyses"
}

// HistoryKind names the two kinds of stored analyses.
type HistoryKind string

const (
	HistoryResume   HistoryKind = "resume"
	HistoryFeedback HistoryKind = "feedback"
)

type IndexJob struct {
	Kind HistoryKind
	ID   uuid.UUID
}
