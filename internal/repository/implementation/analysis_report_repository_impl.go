package implementation

import (
	"context"
	"errors"

	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/mapper"
	"vc-copilot-be/internal/model"
	"vc-copilot-be/internal/repository/contract"
	"vc-copilot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AnalysisReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalysisReportMapper
}

func NewAnalysisReportRepository(db *gorm.DB) contract.AnalysisReportRepository {
	return &AnalysisReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalysisReportMapper(),
	}
}

func (r *AnalysisReportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AnalysisReportRepositoryImpl) Create(ctx context.Context, report *entity.AnalysisReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *AnalysisReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisReport, error) {
	var m model.AnalysisReport
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AnalysisReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisReport, error) {
	var models []*model.AnalysisReport
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
