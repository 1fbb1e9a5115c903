package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/repositories"
)

type fakeGemini struct {
	mu        sync.Mutex
	text      string
	err       error
	embedding []float32
	embedErr  error
	prompts   []string
	embedded  []string
}

func (g *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func (g *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.embedded = append(g.embedded, text)
	if g.embedErr != nil {
		return nil, g.embedErr
	}
	return g.embedding, nil
}

func (g *fakeGemini) GenerateEmbeddingWithRetry(ctx context.Context, text string, maxRetries int, initialDelay time.Duration) ([]float32, error) {
	return withRetry(ctx, maxRetries, initialDelay, func() ([]float32, error) {
		return g.GenerateEmbedding(ctx, text)
	})
}

func (g *fakeGemini) embedCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.embedded)
}

type fakeCascade struct {
	result *models.ExtractedText
	err    error
}

func (c *fakeCascade) Extract(ctx context.Context, doc models.SourceDocument) (*models.ExtractedText, error) {
	return c.result, c.err
}

func (c *fakeCascade) Supports(ext string) bool { return true }

func (c *fakeCascade) SupportedExtensions() []string { return []string{".pdf", ".docx", ".txt"} }

type fakeScreeningRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*models.Screening
	createErr error
	findErr   error
}

func newFakeScreeningRepo() *fakeScreeningRepo {
	return &fakeScreeningRepo{rows: make(map[uuid.UUID]*models.Screening)}
}

func (r *fakeScreeningRepo) Create(s *models.Screening) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *s
	r.rows[s.ID] = &copied
	return nil
}

func (r *fakeScreeningRepo) FindByID(id uuid.UUID) (*models.Screening, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("screening %s: %w", id, repositories.ErrNotFound)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeScreeningRepo) List(limit int) ([]models.Screening, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Screening
	for _, s := range r.rows {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeScreeningRepo) FindPendingIndex(limit int) ([]models.Screening, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Screening
	for _, s := range r.rows {
		if s.IndexStatus == models.IndexQueued {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeScreeningRepo) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.IndexStatus = status
	s.IndexError = indexErr
	return nil
}

func (r *fakeScreeningRepo) status(id uuid.UUID) models.IndexStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id].IndexStatus
}

type fakeFeedbackRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.FeedbackAnalysis
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{rows: make(map[uuid.UUID]*models.FeedbackAnalysis)}
}

func (r *fakeFeedbackRepo) Create(a *models.FeedbackAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *a
	r.rows[a.ID] = &copied
	return nil
}

func (r *fakeFeedbackRepo) FindByID(id uuid.UUID) (*models.FeedbackAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("feedback %s: %w", id, repositories.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (r *fakeFeedbackRepo) List(limit int) ([]models.FeedbackAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FeedbackAnalysis
	for _, a := range r.rows {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) FindPendingIndex(limit int) ([]models.FeedbackAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FeedbackAnalysis
	for _, a := range r.rows {
		if a.IndexStatus == models.IndexQueued {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.IndexStatus = status
	a.IndexError = indexErr
	return nil
}

func (r *fakeFeedbackRepo) status(id uuid.UUID) models.IndexStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id].IndexStatus
}

type fakeIndexer struct {
	mu   sync.Mutex
	jobs []models.IndexJob
}

func (i *fakeIndexer) Start(ctx context.Context) {}

func (i *fakeIndexer) Stop() {}

func (i *fakeIndexer) Enqueue(job models.IndexJob) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.jobs = append(i.jobs, job)
}

type fakeQdrant struct {
	mu        sync.Mutex
	chunks    []IndexedChunk
	deleted   []string
	upsertErr error
	results   []SearchResult
	searched  string
	limit     int
}

func (q *fakeQdrant) InitCollection(ctx context.Context) error { return nil }

func (q *fakeQdrant) UpsertChunk(ctx context.Context, chunk IndexedChunk, embedding []float32) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.upsertErr != nil {
		return q.upsertErr
	}
	q.chunks = append(q.chunks, chunk)
	return nil
}

func (q *fakeQdrant) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.searched = docType
	q.limit = limit
	return q.results, nil
}

func (q *fakeQdrant) DeleteDocument(ctx context.Context, docID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deleted = append(q.deleted, docID)
	return nil
}

type fakeAnalyzer struct {
	score    float64
	keywords []string
}

func (a *fakeAnalyzer) Score(text string) float64 { return a.score }

func (a *fakeAnalyzer) Keywords(text string, n int) []string { return a.keywords }
