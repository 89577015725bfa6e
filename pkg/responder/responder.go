package responder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vc-copilot-be/internal/constant"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/pkg/llm"
	"vc-copilot-be/pkg/persona"
	"vc-copilot-be/pkg/session"
)

// DefaultTimeout bounds one generation round-trip.
const DefaultTimeout = 30 * time.Second

// Request carries everything one reply generation needs. ContextSnippets are
// the retrieved document excerpts; empty outside grounded mode.
type Request struct {
	Persona         persona.Persona
	History         []session.Turn
	UserMessage     string
	ContextSnippets []string
	Grounded        bool
}

// IResponder generates one persona reply per call.
type IResponder interface {
	Respond(ctx context.Context, req Request) (string, error)
}

type responder struct {
	provider llm.LLMProvider
	timeout  time.Duration
	log      logger.ILogger
}

// New builds a responder over an LLM provider. provider may be nil when the
// upstream is unconfigured; every Respond then fails with ErrUpstreamConfig
// instead of crashing boot. timeout <= 0 uses DefaultTimeout.
func New(provider llm.LLMProvider, timeout time.Duration, log logger.ILogger) IResponder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &responder{provider: provider, timeout: timeout, log: log}
}

func (r *responder) Respond(ctx context.Context, req Request) (string, error) {
	if r.provider == nil {
		return "", ErrUpstreamConfig
	}

	cfg := persona.GetConfig(req.Persona)
	if cfg.Model == "" {
		return "", fmt.Errorf("%w: unknown persona %q", ErrUpstreamConfig, req.Persona)
	}

	messages := buildMessages(cfg, req)

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	started := time.Now()
	reply, err := r.provider.Chat(callCtx, messages,
		llm.WithModel(cfg.Model),
		llm.WithMaxTokens(cfg.MaxTokens),
		llm.WithTemperature(cfg.Temperature),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			r.log.Warn("Responder", "Generation timed out", map[string]interface{}{
				"persona": req.Persona.String(),
				"model":   cfg.Model,
				"elapsed": time.Since(started).String(),
			})
			return "", fmt.Errorf("%w after %s: %v", ErrGenerationTimeout, r.timeout, err)
		}
		r.log.Error("Responder", "Generation failed", map[string]interface{}{
			"persona": req.Persona.String(),
			"model":   cfg.Model,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}

	reply = StripCitations(reply)
	if strings.TrimSpace(reply) == "" {
		// The model returned nothing usable. The founder still gets a turn
		// back, and the apology is recorded in memory like any other reply.
		return constant.FallbackApologyReplyV1, nil
	}
	return reply, nil
}

// buildMessages assembles the provider payload: one system message carrying
// the persona prompt, the mode suffix and any document context, then the
// rolling history, then the new user message.
func buildMessages(cfg persona.Config, req Request) []llm.Message {
	var sys strings.Builder
	sys.WriteString(cfg.SystemPrompt)
	if req.Grounded {
		sys.WriteString("\n\n")
		sys.WriteString(constant.GroundedPromptSuffixV1)
		if len(req.ContextSnippets) > 0 {
			sys.WriteString("\n\nExcerpts from the founder's uploaded documents:\n\n")
			sys.WriteString(strings.Join(req.ContextSnippets, "\n\n---\n\n"))
		}
	} else {
		sys.WriteString("\n\n")
		sys.WriteString(constant.PlainPromptSuffixV1)
	}

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: sys.String()})
	for _, turn := range req.History {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Text})
	}
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: req.UserMessage})
	return messages
}
