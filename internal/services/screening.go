package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"alfredoptarigan/hr-screening/internal/extraction"
	"alfredoptarigan/hr-screening/internal/merger"
	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/normalizer"
	"alfredoptarigan/hr-screening/internal/recommend"
	"alfredoptarigan/hr-screening/internal/repositories"
)

const previewLength = 200

type ScreeningService interface {
	Screen(ctx context.Context, doc models.SourceDocument, jobDescription string) (*models.ScreeningResponse, error)
}

type screeningService struct {
	cascade       extraction.Cascade
	geminiService GeminiService
	promptBuilder *PromptBuilder
	repo          repositories.ScreeningRepository
	indexer       Indexer
}

// NewScreeningService wires the screening pipeline. repo and indexer may be
// nil when history is disabled.
func NewScreeningService(
	cascade extraction.Cascade,
	geminiService GeminiService,
	promptBuilder *PromptBuilder,
	repo repositories.ScreeningRepository,
	indexer Indexer,
) ScreeningService {
	return &screeningService{
		cascade:       cascade,
		geminiService: geminiService,
		promptBuilder: promptBuilder,
		repo:          repo,
		indexer:       indexer,
	}
}

// Screen implements ScreeningService. Extraction and model transport
// failures are returned; a reply that cannot be parsed is not an error.
func (s *screeningService) Screen(ctx context.Context, doc models.SourceDocument, jobDescription string) (*models.ScreeningResponse, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return nil, models.NewValidationError("job_description", "Job description is required")
	}

	log.Printf("📄 Extracting text from %s...\n", doc.FileName)
	extracted, err := s.cascade.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	log.Println("🤖 Screening resume with Gemini...")
	prompt := s.promptBuilder.BuildResumeScreeningPrompt(extracted.Text, jobDescription)
	raw, err := s.geminiService.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	outcome := normalizer.Parse(raw)
	if !outcome.OK() {
		log.Printf("⚠️  Could not parse screening reply: %v\n", outcome.Err)
	}

	result, source := merger.Resume(outcome)
	if err := merger.ValidateResume(result); err != nil {
		log.Printf("⚠️  Incomplete screening result for %s: %v\n", doc.FileName, err)
	}

	response := &models.ScreeningResponse{
		ResumeMatchResult:  result,
		FileName:           doc.FileName,
		ResumeTextPreview:  preview(extracted.Text, previewLength),
		Recommendations:    recommend.Synthesize(result),
		ExtractionMethod:   string(extracted.Provenance),
		ExtractionStrategy: extracted.Strategy,
		AnalysisSource:     string(source),
		Status:             "success",
	}

	s.persist(doc, jobDescription, extracted, response)

	log.Printf("✅ Screened %s: match score %d (%s)\n", doc.FileName, result.MatchScore, source)
	return response, nil
}

// persist stores the screening and queues it for indexing. Failures are
// logged; the caller still gets its result.
func (s *screeningService) persist(doc models.SourceDocument, jobDescription string, extracted *models.ExtractedText, response *models.ScreeningResponse) {
	if s.repo == nil {
		return
	}

	resultJSON, err := json.Marshal(response.ResumeMatchResult)
	if err != nil {
		log.Printf("⚠️  Failed to encode screening result: %v\n", err)
		return
	}

	screening := &models.Screening{
		ID:               uuid.New(),
		FileName:         doc.FileName,
		JobDescription:   jobDescription,
		ResumeText:       extracted.Text,
		ExtractionMethod: string(extracted.Provenance),
		MatchScore:       response.MatchScore,
		AnalysisSource:   response.AnalysisSource,
		Result:           string(resultJSON),
		IndexStatus:      models.IndexQueued,
	}

	if err := s.repo.Create(screening); err != nil {
		log.Printf("⚠️  Failed to save screening: %v\n", err)
		return
	}
	response.ID = screening.ID.String()

	if s.indexer != nil {
		s.indexer.Enqueue(models.IndexJob{Kind: models.HistoryResume, ID: screening.ID})
	}
}

// preview returns at most limit characters of text, ending in "..." when
// the text was cut.
func preview(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-3]) + "..."
}
