package entity

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisReport is one stored rubric-analysis run for a founder+persona.
// Result holds the serialized analysis payload as produced by pkg/analysis.
type AnalysisReport struct {
	Id        uuid.UUID
	FounderId string
	Persona   string
	Result    []byte
	CreatedAt time.Time
}
