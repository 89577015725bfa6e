package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AnalysisReport struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FounderId string         `gorm:"type:varchar(255);not null;index"`
	Persona   string         `gorm:"type:varchar(64);not null"`
	Result    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (AnalysisReport) TableName() string {
	return "analysis_reports"
}
