package mapper

import (
	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/model"

	"gorm.io/datatypes"
)

type AnalysisReportMapper struct{}

func NewAnalysisReportMapper() *AnalysisReportMapper {
	return &AnalysisReportMapper{}
}

func (m *AnalysisReportMapper) ToEntity(r *model.AnalysisReport) *entity.AnalysisReport {
	if r == nil {
		return nil
	}
	return &entity.AnalysisReport{
		Id:        r.Id,
		FounderId: r.FounderId,
		Persona:   r.Persona,
		Result:    []byte(r.Result),
		CreatedAt: r.CreatedAt,
	}
}

func (m *AnalysisReportMapper) ToModel(r *entity.AnalysisReport) *model.AnalysisReport {
	if r == nil {
		return nil
	}
	return &model.AnalysisReport{
		Id:        r.Id,
		FounderId: r.FounderId,
		Persona:   r.Persona,
		Result:    datatypes.JSON(r.Result),
		CreatedAt: r.CreatedAt,
	}
}

func (m *AnalysisReportMapper) ToEntities(reports []*model.AnalysisReport) []*entity.AnalysisReport {
	entities := make([]*entity.AnalysisReport, len(reports))
	for i, r := range reports {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
