package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hr-screening/internal/config"
	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/repositories"
)

func newTestIndexer(screenings *fakeScreeningRepo, feedback *fakeFeedbackRepo, gemini *fakeGemini, qdrant *fakeQdrant) *indexer {
	return NewIndexer(screenings, feedback, gemini, qdrant, NewTextChunker(50, 10), config.WorkerConfig{
		Concurrency:      1,
		RetryMaxAttempts: 1,
		PollInterval:     time.Hour,
	}).(*indexer)
}

func seedScreening(repo *fakeScreeningRepo, text string) uuid.UUID {
	id := uuid.New()
	repo.Create(&models.Screening{ID: id, ResumeText: text, IndexStatus: models.IndexQueued})
	return id
}

func TestIndexer_ProcessMarksIndexed(t *testing.T) {
	screenings := newFakeScreeningRepo()
	qdrant := &fakeQdrant{}
	gemini := &fakeGemini{embedding: []float32{0.1, 0.2}}
	w := newTestIndexer(screenings, newFakeFeedbackRepo(), gemini, qdrant)

	id := seedScreening(screenings, strings.Repeat("experienced go engineer ", 10))
	err := w.process(context.Background(), models.IndexJob{Kind: models.HistoryResume, ID: id})
	require.NoError(t, err)

	assert.Equal(t, models.IndexIndexed, screenings.status(id))
	assert.Equal(t, []string{id.String()}, qdrant.deleted)
	require.Greater(t, len(qdrant.chunks), 1)
	for i, chunk := range qdrant.chunks {
		assert.Equal(t, id.String(), chunk.DocID)
		assert.Equal(t, "resume", chunk.DocType)
		assert.Equal(t, i, chunk.ChunkIndex)
	}
	assert.Len(t, gemini.embedded, len(qdrant.chunks))
}

func TestIndexer_ProcessMarksFailed(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	gemini := &fakeGemini{embedErr: errors.New("quota exceeded")}
	w := newTestIndexer(newFakeScreeningRepo(), feedback, gemini, &fakeQdrant{})

	id := uuid.New()
	feedback.Create(&models.FeedbackAnalysis{ID: id, FeedbackText: "the team is great", IndexStatus: models.IndexQueued})

	err := w.process(context.Background(), models.IndexJob{Kind: models.HistoryFeedback, ID: id})
	require.Error(t, err)

	stored, _ := feedback.FindByID(id)
	assert.Equal(t, models.IndexFailed, stored.IndexStatus)
	require.NotNil(t, stored.IndexError)
	assert.Contains(t, *stored.IndexError, "quota exceeded")
}

func TestIndexer_ProcessMissingRow(t *testing.T) {
	w := newTestIndexer(newFakeScreeningRepo(), newFakeFeedbackRepo(), &fakeGemini{}, &fakeQdrant{})

	err := w.process(context.Background(), models.IndexJob{Kind: models.HistoryResume, ID: uuid.New()})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestIndexer_ProcessLoadFailureLeavesQueue(t *testing.T) {
	screenings := newFakeScreeningRepo()
	qdrant := &fakeQdrant{}
	w := newTestIndexer(screenings, newFakeFeedbackRepo(), &fakeGemini{}, qdrant)
	id := seedScreening(screenings, "resume")
	screenings.findErr = errors.New("connection reset")

	err := w.process(context.Background(), models.IndexJob{Kind: models.HistoryResume, ID: id})
	require.Error(t, err)

	assert.Equal(t, models.IndexFailed, screenings.status(id))
	pending, _ := screenings.FindPendingIndex(10)
	assert.Empty(t, pending)
	assert.Empty(t, qdrant.chunks)
}

func TestIndexer_EnqueueDeduplicates(t *testing.T) {
	w := newTestIndexer(newFakeScreeningRepo(), newFakeFeedbackRepo(), &fakeGemini{}, &fakeQdrant{})
	job := models.IndexJob{Kind: models.HistoryResume, ID: uuid.New()}

	w.Enqueue(job)
	w.Enqueue(job)

	assert.Len(t, w.jobQueue, 1)
}

func TestIndexer_StartProcessesQueuedJobs(t *testing.T) {
	screenings := newFakeScreeningRepo()
	w := newTestIndexer(screenings, newFakeFeedbackRepo(), &fakeGemini{embedding: []float32{1}}, &fakeQdrant{})
	id := seedScreening(screenings, "short resume")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	w.Enqueue(models.IndexJob{Kind: models.HistoryResume, ID: id})

	assert.Eventually(t, func() bool {
		return screenings.status(id) == models.IndexIndexed
	}, 2*time.Second, 10*time.Millisecond)

	w.Stop()
	w.Stop()
}

func TestIndexer_CancelInterruptsRetryBackoff(t *testing.T) {
	screenings := newFakeScreeningRepo()
	gemini := &fakeGemini{embedErr: errors.New("503 unavailable")}
	w := NewIndexer(screenings, newFakeFeedbackRepo(), gemini, &fakeQdrant{}, NewTextChunker(50, 10), config.WorkerConfig{
		Concurrency:       1,
		RetryMaxAttempts:  3,
		RetryInitialDelay: time.Hour,
		PollInterval:      time.Hour,
	})
	id := seedScreening(screenings, "resume")

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	w.Enqueue(models.IndexJob{Kind: models.HistoryResume, ID: id})
	require.Eventually(t, func() bool { return gemini.embedCalls() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked on a worker waiting out its retry delay")
	}
	assert.Equal(t, models.IndexFailed, screenings.status(id))
}

func TestIndexer_EnqueuePendingPicksUpQueuedRows(t *testing.T) {
	screenings := newFakeScreeningRepo()
	feedback := newFakeFeedbackRepo()
	w := newTestIndexer(screenings, feedback, &fakeGemini{}, &fakeQdrant{})

	seedScreening(screenings, "resume")
	feedback.Create(&models.FeedbackAnalysis{ID: uuid.New(), IndexStatus: models.IndexQueued})
	feedback.Create(&models.FeedbackAnalysis{ID: uuid.New(), IndexStatus: models.IndexIndexed})

	w.enqueuePending()

	assert.Len(t, w.jobQueue, 2)
}
