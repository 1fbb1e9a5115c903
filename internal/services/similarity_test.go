package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hr-screening/internal/models"
)

func TestFindSimilar_BestChunkPerAnalysis(t *testing.T) {
	qdrant := &fakeQdrant{results: []SearchResult{
		{ID: "a", DocType: "resume", Score: 0.9, Text: "go engineer"},
		{ID: "a", DocType: "resume", Score: 0.8, Text: "sql"},
		{ID: "b", DocType: "resume", Score: 0.7, Text: "python"},
		{ID: "c", DocType: "resume", Score: 0.6, Text: "java"},
	}}
	svc := NewSimilarityService(&fakeGemini{embedding: []float32{1}}, qdrant)

	results, err := svc.FindSimilar(context.Background(), "golang", models.HistoryResume, 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "go engineer", results[0].Text)
	assert.Equal(t, "b", results[1].ID)
	assert.Equal(t, "resume", qdrant.searched)
	assert.Equal(t, 6, qdrant.limit)
}

func TestFindSimilar_Validation(t *testing.T) {
	svc := NewSimilarityService(&fakeGemini{}, &fakeQdrant{})

	tests := []struct {
		name  string
		query string
		kind  models.HistoryKind
		field string
	}{
		{"blank query", " ", "", "q"},
		{"unknown type", "go", "invoice", "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FindSimilar(context.Background(), tt.query, tt.kind, 5)
			var vErr *models.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestFindSimilar_DefaultLimit(t *testing.T) {
	qdrant := &fakeQdrant{}
	svc := NewSimilarityService(&fakeGemini{embedding: []float32{1}}, qdrant)

	results, err := svc.FindSimilar(context.Background(), "go", "", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, defaultSimilarLimit*3, qdrant.limit)
	assert.Equal(t, "", qdrant.searched)
}
