package dto

import "time"

type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type MagicLinkResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ExchangeCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type ExchangeCodeResponse struct {
	Token     string    `json:"token"`
	FounderId string    `json:"founder_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
