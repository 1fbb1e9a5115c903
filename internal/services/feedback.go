package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/hr-screening/internal/merger"
	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/normalizer"
	"alfredoptarigan/hr-screening/internal/repositories"
	"alfredoptarigan/hr-screening/internal/sentiment"
)

const localKeywordCount = 5

type FeedbackService interface {
	Analyze(ctx context.Context, feedback string) (*models.FeedbackResponse, error)
}

type feedbackService struct {
	analyzer      sentiment.Analyzer
	geminiService GeminiService
	promptBuilder *PromptBuilder
	repo          repositories.FeedbackRepository
	indexer       Indexer
}

// NewFeedbackService wires the sentiment pipeline. repo and indexer may be
// nil when history is disabled.
func NewFeedbackService(
	analyzer sentiment.Analyzer,
	geminiService GeminiService,
	promptBuilder *PromptBuilder,
	repo repositories.FeedbackRepository,
	indexer Indexer,
) FeedbackService {
	return &feedbackService{
		analyzer:      analyzer,
		geminiService: geminiService,
		promptBuilder: promptBuilder,
		repo:          repo,
		indexer:       indexer,
	}
}

// Analyze implements FeedbackService. Model failures of any kind fall back
// to the local lexicon score, so only invalid input is an error.
func (f *feedbackService) Analyze(ctx context.Context, feedback string) (*models.FeedbackResponse, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, models.NewValidationError("feedback", "Employee feedback is required")
	}

	local := merger.LocalSentiment{
		Score:    f.analyzer.Score(feedback),
		Keywords: f.analyzer.Keywords(feedback, localKeywordCount),
	}

	log.Println("🤖 Analyzing feedback with Gemini...")
	var outcome normalizer.Outcome
	raw, err := f.geminiService.GenerateText(ctx, f.promptBuilder.BuildSentimentPrompt(feedback))
	if err != nil {
		log.Printf("⚠️  Gemini unavailable, using local sentiment: %v\n", err)
		outcome = normalizer.FromServiceError(err)
	} else {
		outcome = normalizer.Parse(raw)
		if !outcome.OK() {
			log.Printf("⚠️  Could not parse sentiment reply: %v\n", outcome.Err)
		}
	}

	result, source := merger.Sentiment(outcome, local)
	if err := merger.ValidateSentiment(result); err != nil {
		log.Printf("⚠️  Incomplete sentiment result: %v\n", err)
	}
	stats := sentiment.TextStats(feedback)

	response := &models.FeedbackResponse{
		SentimentResult:  result,
		Recommendations:  bullets(result.EngagementRecommendations),
		TextLength:       stats.Characters,
		WordCount:        stats.Words,
		LexiconSentiment: local.Score,
		Keywords:         local.Keywords,
		AnalysisSource:   string(source),
		Status:           "success",
	}
	if response.Keywords == nil {
		response.Keywords = []string{}
	}

	f.persist(feedback, response)

	log.Printf("✅ Feedback analyzed: %s (%.2f, %s)\n", result.Interpretation, result.SentimentScore, source)
	return response, nil
}

func (f *feedbackService) persist(feedback string, response *models.FeedbackResponse) {
	if f.repo == nil {
		return
	}

	resultJSON, err := json.Marshal(response.SentimentResult)
	if err != nil {
		log.Printf("⚠️  Failed to encode sentiment result: %v\n", err)
		return
	}

	analysis := &models.FeedbackAnalysis{
		ID:             uuid.New(),
		FeedbackText:   feedback,
		SentimentScore: response.SentimentScore,
		Interpretation: response.Interpretation,
		AttritionRisk:  string(response.AttritionRisk),
		AnalysisSource: response.AnalysisSource,
		Result:         string(resultJSON),
		IndexStatus:    models.IndexQueued,
	}

	if err := f.repo.Create(analysis); err != nil {
		log.Printf("⚠️  Failed to save feedback analysis: %v\n", err)
		return
	}
	response.ID = analysis.ID.String()

	if f.indexer != nil {
		f.indexer.Enqueue(models.IndexJob{Kind: models.HistoryFeedback, ID: analysis.ID})
	}
}

func bullets(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "\n• " + strings.Join(items, "\n• ")
}
