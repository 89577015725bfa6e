package dto

import (
	"time"

	"github.com/google/uuid"

	"vc-copilot-be/pkg/analysis"
)

type UploadDocumentResponse struct {
	Id         uuid.UUID                  `json:"id"`
	Filename   string                     `json:"filename"`
	SizeBytes  int64                      `json:"size_bytes"`
	PageCount  int                        `json:"page_count"`
	TextLength int                        `json:"text_length"`
	UploadedAt time.Time                  `json:"uploaded_at"`
	Analysis   map[string]analysis.Result `json:"analysis"` // keyed by persona
}

// PublishEmbedDocumentMessage is the embed-pipeline job payload.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
