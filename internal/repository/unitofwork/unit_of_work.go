package unitofwork

import (
	"context"

	"vc-copilot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	AnalysisReportRepository() contract.AnalysisReportRepository
}
