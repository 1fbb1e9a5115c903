package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

const defaultQdrantGRPCPort = 6334

// payload keys stored with every point
const (
	payloadDocID      = "doc_id"
	payloadDocType    = "doc_type"
	payloadChunkIndex = "chunk_index"
	payloadText       = "text"
)

type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertChunk(ctx context.Context, chunk IndexedChunk, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error)
	DeleteDocument(ctx context.Context, docID string) error
}

// IndexedChunk is one embedded slice of a stored analysis.
type IndexedChunk struct {
	DocID      string
	DocType    string
	ChunkIndex int
	Text       string
}

type SearchResult struct {
	ID         string
	Score      float32
	Text       string
	DocType    string
	ChunkIndex int
}

type qdrantService struct {
	client     *qdrant.Client
	collection string
	vectorSize uint64
}

// NewQdrantService connects over gRPC. An explicit port in rawURL wins;
// otherwise the gRPC default is used even when the URL names the REST port.
func NewQdrantService(rawURL, apiKey, collection string, vectorSize uint64) (QdrantService, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	port := defaultQdrantGRPCPort
	if p := parsed.Port(); p != "" && p != "6333" {
		if port, err = strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("invalid Qdrant port %q: %w", p, err)
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:     client,
		collection: collection,
		vectorSize: vectorSize,
	}, nil
}

// InitCollection implements QdrantService. It creates the collection and
// keyword indexes on the fields search and delete filter on.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists\n", q.collection)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	for _, field := range []string{payloadDocID, payloadDocType} {
		_, err := q.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: q.collection,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		})
		if err != nil {
			return fmt.Errorf("failed to index payload field %s: %w", field, err)
		}
	}

	log.Printf("✅ Qdrant collection '%s' created (%d dims)\n", q.collection, q.vectorSize)
	return nil
}

// UpsertChunk implements QdrantService. Point ids are derived from doc id
// and chunk index so re-indexing overwrites instead of duplicating.
func (q *qdrantService) UpsertChunk(ctx context.Context, chunk IndexedChunk, embedding []float32) error {
	pointID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s#%d", chunk.DocID, chunk.ChunkIndex)))

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewID(pointID.String()),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				payloadDocID:      chunk.DocID,
				payloadDocType:    chunk.DocType,
				payloadChunkIndex: chunk.ChunkIndex,
				payloadText:       chunk.Text,
			}),
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert chunk %d of %s: %w", chunk.ChunkIndex, chunk.DocID, err)
	}

	return nil
}

// SearchSimilar implements QdrantService. An empty docType searches every kind.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	query := &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if docType != "" {
		query.Filter = matchFilter(payloadDocType, docType)
	}

	points, err := q.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		payload := point.GetPayload()
		results = append(results, SearchResult{
			ID:         payload[payloadDocID].GetStringValue(),
			Score:      point.GetScore(),
			Text:       payload[payloadText].GetStringValue(),
			DocType:    payload[payloadDocType].GetStringValue(),
			ChunkIndex: int(payload[payloadChunkIndex].GetIntegerValue()),
		})
	}

	return results, nil
}

// DeleteDocument implements QdrantService.
func (q *qdrantService) DeleteDocument(ctx context.Context, docID string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collection,
		Points:         qdrant.NewPointsSelectorFilter(matchFilter(payloadDocID, docID)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete points of %s: %w", docID, err)
	}

	return nil
}

func matchFilter(field, value string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{qdrant.NewMatch(field, value)},
	}
}
