package dto

import "time"

type SendChatRequest struct {
	FounderId string `json:"founder_id" validate:"required,max=255"`
	Persona   string `json:"persona" validate:"required"`
	Message   string `json:"message" validate:"required,max=4000"`
	// IsReturning asks for a welcome-back reply summarizing prior context.
	IsReturning bool `json:"is_returning"`
}

type SendChatResponse struct {
	Reply            string    `json:"reply"`
	Persona          string    `json:"persona"`
	Mode             string    `json:"mode"` // "PLAIN" | "GROUNDED"
	SessionCreatedAt time.Time `json:"session_created_at"`
	Turns            int       `json:"turns"`
}

type ResetChatResponse struct {
	FounderId       string `json:"founder_id"`
	Persona         string `json:"persona,omitempty"`
	SessionsCleared int    `json:"sessions_cleared"`
}
