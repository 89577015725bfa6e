package contract

import (
	"context"

	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/repository/specification"
)

type AnalysisReportRepository interface {
	Create(ctx context.Context, report *entity.AnalysisReport) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisReport, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisReport, error)
}
