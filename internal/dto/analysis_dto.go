package dto

import (
	"time"

	"vc-copilot-be/pkg/analysis"
)

type AnalysisResponse struct {
	FounderId   string                     `json:"founder_id"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Reports     map[string]analysis.Result `json:"reports"` // keyed by persona
}
