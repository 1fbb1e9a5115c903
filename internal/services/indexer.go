package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"alfredoptarigan/hr-screening/internal/config"
	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/repositories"
)

const pendingBatchSize = 10

type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job models.IndexJob)
}

type indexer struct {
	screeningRepo repositories.ScreeningRepository
	feedbackRepo  repositories.FeedbackRepository
	geminiService GeminiService
	qdrantService QdrantService
	chunker       TextChunker
	cfg           config.WorkerConfig

	jobQueue chan models.IndexJob
	inFlight sync.Map
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewIndexer(
	screeningRepo repositories.ScreeningRepository,
	feedbackRepo repositories.FeedbackRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	chunker TextChunker,
	cfg config.WorkerConfig,
) Indexer {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}

	return &indexer{
		screeningRepo: screeningRepo,
		feedbackRepo:  feedbackRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		chunker:       chunker,
		cfg:           cfg,
		jobQueue:      make(chan models.IndexJob, 100),
		stopChan:      make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting indexer with %d concurrent workers\n", w.cfg.Concurrency)

	for i := 0; i < w.cfg.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPending(ctx)

	log.Println("✅ Indexer started successfully")
}

// Stop implements Indexer. It is safe to call more than once.
func (w *indexer) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping indexer...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Indexer stopped")
	})
}

// Enqueue implements Indexer. It never blocks the request path: a full
// queue leaves the row queued for the poller.
func (w *indexer) Enqueue(job models.IndexJob) {
	if _, loaded := w.inFlight.LoadOrStore(job.ID, struct{}{}); loaded {
		return
	}

	select {
	case <-w.stopChan:
		w.inFlight.Delete(job.ID)
		log.Printf("⚠️  Indexer stopped, cannot enqueue %s %s\n", job.Kind, job.ID)
	case w.jobQueue <- job:
		log.Printf("📥 Index job %s %s enqueued\n", job.Kind, job.ID)
	default:
		w.inFlight.Delete(job.ID)
		log.Printf("⚠️  Index queue full, %s %s left for the poller\n", job.Kind, job.ID)
	}
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Indexer #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case job := <-w.jobQueue:
			log.Printf("👷 Indexer #%d processing %s %s\n", workerID, job.Kind, job.ID)
			if err := w.process(ctx, job); err != nil {
				log.Printf("❌ Indexer #%d failed %s %s: %v\n", workerID, job.Kind, job.ID, err)
			} else {
				log.Printf("✅ Indexer #%d indexed %s %s\n", workerID, job.Kind, job.ID)
			}
			w.inFlight.Delete(job.ID)
		}
	}
}

func (w *indexer) process(ctx context.Context, job models.IndexJob) error {
	text, err := w.loadText(job)
	if errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if err != nil {
		// a queued row would be re-polled on every tick
		msg := fmt.Sprintf("failed to load text: %v", err)
		if updateErr := w.updateStatus(job, models.IndexFailed, &msg); updateErr != nil {
			log.Printf("⚠️  Could not mark %s %s failed: %v\n", job.Kind, job.ID, updateErr)
		}
		return err
	}

	indexErr := w.index(ctx, job, text)

	status := models.IndexIndexed
	var message *string
	if indexErr != nil {
		status = models.IndexFailed
		msg := indexErr.Error()
		message = &msg
	}

	if err := w.updateStatus(job, status, message); err != nil {
		return fmt.Errorf("failed to update index status: %w", err)
	}

	return indexErr
}

func (w *indexer) loadText(job models.IndexJob) (string, error) {
	switch job.Kind {
	case models.HistoryResume:
		screening, err := w.screeningRepo.FindByID(job.ID)
		if err != nil {
			return "", err
		}
		return screening.ResumeText, nil
	case models.HistoryFeedback:
		feedback, err := w.feedbackRepo.FindByID(job.ID)
		if err != nil {
			return "", err
		}
		return feedback.FeedbackText, nil
	default:
		return "", fmt.Errorf("unknown history kind %q", job.Kind)
	}
}

func (w *indexer) index(ctx context.Context, job models.IndexJob, text string) error {
	chunks := w.chunker.Chunk(text)
	if len(chunks) == 0 {
		return errors.New("nothing to index")
	}

	docID := job.ID.String()
	if err := w.qdrantService.DeleteDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to clear previous points: %w", err)
	}

	for i, chunk := range chunks {
		embedding, err := w.geminiService.GenerateEmbeddingWithRetry(ctx, chunk, w.cfg.RetryMaxAttempts, w.cfg.RetryInitialDelay)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		err = w.qdrantService.UpsertChunk(ctx, IndexedChunk{
			DocID:      docID,
			DocType:    string(job.Kind),
			ChunkIndex: i,
			Text:       chunk,
		}, embedding)
		if err != nil {
			return fmt.Errorf("failed to store chunk %d: %w", i, err)
		}
	}

	return nil
}

func (w *indexer) updateStatus(job models.IndexJob, status models.IndexStatus, message *string) error {
	if job.Kind == models.HistoryFeedback {
		return w.feedbackRepo.UpdateIndexStatus(job.ID, status, message)
	}
	return w.screeningRepo.UpdateIndexStatus(job.ID, status, message)
}

func (w *indexer) pollPending(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting pending index poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending index poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.enqueuePending()
		}
	}
}

func (w *indexer) enqueuePending() {
	var jobs []models.IndexJob

	screenings, err := w.screeningRepo.FindPendingIndex(pendingBatchSize)
	if err != nil {
		log.Printf("⚠️  Failed to fetch pending screenings: %v\n", err)
	}
	for _, s := range screenings {
		jobs = append(jobs, models.IndexJob{Kind: models.HistoryResume, ID: s.ID})
	}

	feedback, err := w.feedbackRepo.FindPendingIndex(pendingBatchSize)
	if err != nil {
		log.Printf("⚠️  Failed to fetch pending feedback: %v\n", err)
	}
	for _, f := range feedback {
		jobs = append(jobs, models.IndexJob{Kind: models.HistoryFeedback, ID: f.ID})
	}

	if len(jobs) > 0 {
		log.Printf("📋 Found %d pending index jobs\n", len(jobs))
	}

	for _, job := range jobs {
		w.Enqueue(job)
	}
}
