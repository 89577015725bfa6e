package responder

import "errors"

var (
	// ErrUpstreamConfig means no LLM provider is usable, typically a missing
	// API key. Surfaces as HTTP 500 with guidance to check configuration.
	ErrUpstreamConfig = errors.New("llm provider is not configured")

	// ErrGenerationTimeout means the upstream model did not answer within the
	// per-request deadline. Surfaces as HTTP 504.
	ErrGenerationTimeout = errors.New("llm generation timed out")

	// ErrGenerationFailure wraps any other upstream failure. Surfaces as 502.
	ErrGenerationFailure = errors.New("llm generation failed")
)
