package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/hr-screening/internal/config"
	"alfredoptarigan/hr-screening/internal/models"
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddingWithRetry(ctx context.Context, text string, maxRetries int, initialDelay time.Duration) ([]float32, error)
}

type geminiService struct {
	client          *genai.Client
	modelName       string
	embedModel      string
	temperature     float32
	topP            float32
	maxOutputTokens int32
}

func NewGeminiService(cfg config.GeminiConfig) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:          client,
		modelName:       cfg.Model,
		embedModel:      cfg.EmbedModel,
		temperature:     cfg.Temperature,
		topP:            cfg.TopP,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// GenerateText implements GeminiService. Failures come back as
// *models.ServiceError.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		TopP:             genai.Ptr(g.topP),
		MaxOutputTokens:  g.maxOutputTokens,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", classifyGeminiError("generate text", err)
	}

	if resp == nil {
		return "", &models.ServiceError{
			Kind:  models.ServiceErrorTransport,
			Op:    "generate text",
			Cause: errors.New("nil response"),
		}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		// Blocked or empty candidates still go through the normalizer,
		// which reports them as malformed output.
		log.Println("⚠️  Gemini returned no text content")
	}

	return text, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// The embedding model accepts roughly 10k tokens.
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, classifyGeminiError("generate embedding", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, &models.ServiceError{
			Kind:  models.ServiceErrorTransport,
			Op:    "generate embedding",
			Cause: errors.New("empty embedding result"),
		}
	}

	return result.Embeddings[0].Values, nil
}

// GenerateEmbeddingWithRetry implements GeminiService. Auth failures are
// not retried; other failures back off exponentially from initialDelay.
func (g *geminiService) GenerateEmbeddingWithRetry(ctx context.Context, text string, maxRetries int, initialDelay time.Duration) ([]float32, error) {
	return withRetry(ctx, maxRetries, initialDelay, func() ([]float32, error) {
		return g.GenerateEmbedding(ctx, text)
	})
}

func withRetry[T any](ctx context.Context, maxRetries int, initialDelay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := initialDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		var serviceErr *models.ServiceError
		if errors.As(err, &serviceErr) && serviceErr.Kind == models.ServiceErrorAuth {
			return zero, err
		}

		if attempt == maxRetries {
			break
		}

		log.Printf("⚠️  Attempt %d failed: %v. Retrying in %s...\n", attempt, err, delay)
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return zero, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

func classifyGeminiError(op string, err error) *models.ServiceError {
	kind := models.ServiceErrorTransport

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			kind = models.ServiceErrorAuth
		case http.StatusTooManyRequests:
			kind = models.ServiceErrorQuota
		}
	}

	return &models.ServiceError{Kind: kind, Op: op, Cause: err}
}
