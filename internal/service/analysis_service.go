package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"

	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/internal/repository/unitofwork"
	"vc-copilot-be/pkg/analysis"
	"vc-copilot-be/pkg/docstore"
	"vc-copilot-be/pkg/persona"
)

// ErrNoDocuments marks an analysis request for a founder with nothing uploaded.
var ErrNoDocuments = errors.New("no documents uploaded")

const analysisCacheTTL = 10 * time.Minute

type IAnalysisService interface {
	Analyze(ctx context.Context, founderID string) (*dto.AnalysisResponse, error)
	// Invalidate drops cached results after a new upload.
	Invalidate(founderID string)
}

type analysisService struct {
	docs       docstore.IStore
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	log        logger.ILogger
}

func NewAnalysisService(
	docs docstore.IStore,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		docs:       docs,
		uowFactory: uowFactory,
		cache:      gocache.New(analysisCacheTTL, 2*analysisCacheTTL),
		log:        log,
	}
}

func cacheKey(founderID string) string {
	return "analysis:" + founderID
}

// Analyze runs the rubric for every persona over the founder's combined
// document text, stores the reports, and caches the response.
func (s *analysisService) Analyze(ctx context.Context, founderID string) (*dto.AnalysisResponse, error) {
	if v, ok := s.cache.Get(cacheKey(founderID)); ok {
		return v.(*dto.AnalysisResponse), nil
	}

	hasDocs, err := s.docs.HasAnyDocuments(ctx, founderID)
	if err != nil {
		return nil, err
	}
	if !hasDocs {
		return nil, fmt.Errorf("%w for founder %s", ErrNoDocuments, founderID)
	}

	content, err := s.docs.CombinedContent(ctx, founderID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnalysisResponse{
		FounderId:   founderID,
		GeneratedAt: time.Now(),
		Reports:     make(map[string]analysis.Result, len(persona.All())),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	for _, p := range persona.All() {
		result := analysis.AnalyzeGaps(content, p)
		resp.Reports[p.String()] = result

		raw, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal analysis result: %w", err)
		}
		report := &entity.AnalysisReport{
			Id:        uuid.New(),
			FounderId: founderID,
			Persona:   p.String(),
			Result:    raw,
			CreatedAt: time.Now(),
		}
		if err := uow.AnalysisReportRepository().Create(ctx, report); err != nil {
			// Reports are an audit trail; the response does not depend on them.
			s.log.Error("AnalysisService", "Failed to store analysis report", map[string]interface{}{
				"founder_id": founderID,
				"persona":    p.String(),
				"error":      err.Error(),
			})
		}
	}

	s.cache.Set(cacheKey(founderID), resp, gocache.DefaultExpiration)

	s.log.Info("AnalysisService", "Generated rubric analysis", map[string]interface{}{
		"founder_id": founderID,
		"personas":   len(resp.Reports),
	})
	return resp, nil
}

func (s *analysisService) Invalidate(founderID string) {
	s.cache.Delete(cacheKey(founderID))
}
