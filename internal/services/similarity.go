package services

import (
	"context"
	"fmt"
	"strings"

	"alfredoptarigan/hr-screening/internal/models"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 50
)

type SimilarityService interface {
	FindSimilar(ctx context.Context, query string, kind models.HistoryKind, limit int) ([]models.SimilarResult, error)
}

type similarityService struct {
	geminiService GeminiService
	qdrantService QdrantService
}

func NewSimilarityService(geminiService GeminiService, qdrantService QdrantService) SimilarityService {
	return &similarityService{
		geminiService: geminiService,
		qdrantService: qdrantService,
	}
}

// FindSimilar implements SimilarityService. Several chunks of one analysis
// may match; only the best scoring chunk per analysis is returned.
func (s *similarityService) FindSimilar(ctx context.Context, query string, kind models.HistoryKind, limit int) ([]models.SimilarResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("q", "Search query is required")
	}
	if kind != "" && kind != models.HistoryResume && kind != models.HistoryFeedback {
		return nil, models.NewValidationError("type", "Search type must be resume or feedback")
	}
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.qdrantService.SearchSimilar(ctx, embedding, string(kind), limit*3)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar analyses: %w", err)
	}

	results := make([]models.SimilarResult, 0, limit)
	seen := make(map[string]bool)
	for _, hit := range hits {
		if seen[hit.ID] {
			continue
		}
		seen[hit.ID] = true

		results = append(results, models.SimilarResult{
			ID:      hit.ID,
			DocType: hit.DocType,
			Score:   hit.Score,
			Text:    hit.Text,
		})
		if len(results) == limit {
			break
		}
	}

	return results, nil
}
