package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"

	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/internal/repository/specification"
	"vc-copilot-be/internal/repository/unitofwork"
	"vc-copilot-be/pkg/embedding"
)

const (
	// availabilityTTL bounds staleness of the has-documents cache. Uploads
	// overwrite the entry directly, so the TTL only covers external writes.
	availabilityTTL = 30 * time.Second

	defaultQueryLimit   = 5
	similarityThreshold = 0.3
)

// Chunk is one retrieved document excerpt with its similarity score.
type Chunk struct {
	Content    string
	Similarity float64
}

// EventPublisher publishes embed jobs onto the in-process pipeline.
// Satisfied by service.IPublisherService.
type EventPublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// IndexRequest is one document to ingest. Content is the extracted text.
type IndexRequest struct {
	FounderID string
	Filename  string
	SizeBytes int64
	PageCount int
	Content   string
}

// Store is the document side of the advisor: existence checks that drive
// session mode, similarity retrieval for grounded replies, and append-only
// ingestion that hands embedding off to the async consumer.
type IStore interface {
	HasAnyDocuments(ctx context.Context, founderID string) (bool, error)
	Query(ctx context.Context, founderID, queryText string, limit int) ([]Chunk, error)
	Index(ctx context.Context, req IndexRequest) (*entity.Document, error)
	CombinedContent(ctx context.Context, founderID string) (string, error)
}

type store struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
	publisher  EventPublisher
	cache      *gocache.Cache
	log        logger.ILogger
}

func NewStore(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.EmbeddingProvider,
	publisher EventPublisher,
	log logger.ILogger,
) IStore {
	return &store{
		uowFactory: uowFactory,
		embedder:   embedder,
		publisher:  publisher,
		cache:      gocache.New(availabilityTTL, 2*availabilityTTL),
		log:        log,
	}
}

func availabilityKey(founderID string) string {
	return "hasdocs:" + founderID
}

func (s *store) HasAnyDocuments(ctx context.Context, founderID string) (bool, error) {
	if v, ok := s.cache.Get(availabilityKey(founderID)); ok {
		return v.(bool), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	exists, err := uow.DocumentRepository().ExistsForFounder(ctx, founderID)
	if err != nil {
		return false, fmt.Errorf("document existence check: %w", err)
	}

	s.cache.Set(availabilityKey(founderID), exists, gocache.DefaultExpiration)
	return exists, nil
}

func (s *store) Query(ctx context.Context, founderID, queryText string, limit int) ([]Chunk, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	res, err := s.embedder.Generate(queryText, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(
		ctx, res.Embedding.Values, limit, founderID, similarityThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	chunks := make([]Chunk, len(scored))
	for i, sc := range scored {
		chunks[i] = Chunk{Content: sc.Chunk.Content, Similarity: sc.Similarity}
	}
	return chunks, nil
}

// Index writes the document row, flips the availability cache, then publishes
// the embed job. The document is queryable for existence immediately; vectors
// arrive when the consumer finishes.
func (s *store) Index(ctx context.Context, req IndexRequest) (*entity.Document, error) {
	doc := &entity.Document{
		Id:        uuid.New(),
		FounderId: req.FounderID,
		Filename:  req.Filename,
		SizeBytes: req.SizeBytes,
		PageCount: req.PageCount,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.cache.Set(availabilityKey(req.FounderID), true, gocache.DefaultExpiration)

	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: doc.Id})
	if err != nil {
		return nil, fmt.Errorf("marshal embed message: %w", err)
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		// The document row is committed; embedding can be replayed later.
		s.log.Error("DocStore", "Failed to publish embed job", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	s.log.Info("DocStore", "Indexed document", map[string]interface{}{
		"document_id": doc.Id.String(),
		"founder_id":  req.FounderID,
		"filename":    req.Filename,
		"pages":       req.PageCount,
	})
	return doc, nil
}

// CombinedContent joins every document's extracted text for rubric analysis.
func (s *store) CombinedContent(ctx context.Context, founderID string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByFounderId{FounderId: founderID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return "", fmt.Errorf("load documents: %w", err)
	}

	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, "\n\n"), nil
}
