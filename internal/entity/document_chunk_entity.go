package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded slice of a document. Rows are written by the
// embed consumer after vectors are computed, so a chunk always has a vector.
type DocumentChunk struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	FounderId      string
	ChunkIndex     int
	Content        string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
