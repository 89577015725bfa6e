package dto

import "time"

// NotificationMessage is an ephemeral push payload; nothing is persisted.
type NotificationMessage struct {
	Type      string                 `json:"type"` // e.g. "ANALYSIS_READY"
	FounderId string                 `json:"founder_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
