package contract

import (
	"context"

	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentChunk wraps DocumentChunk with its similarity score
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar runs pgvector cosine search over one founder's chunks.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, founderId string) ([]*entity.DocumentChunk, error)
	// SearchSimilarWithScore additionally filters by a similarity threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, founderId string, threshold float64) ([]*ScoredDocumentChunk, error)
}
