package service

import (
	"context"
	"errors"
	"fmt"

	"vc-copilot-be/internal/constant"
	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/pkg/docstore"
	"vc-copilot-be/pkg/persona"
	"vc-copilot-be/pkg/responder"
	"vc-copilot-be/pkg/session"
)

// ErrInvalidPersona marks a request for a persona outside the closed set.
var ErrInvalidPersona = errors.New("invalid persona")

const retrievalLimit = 5

type IChatService interface {
	SendChat(ctx context.Context, req dto.SendChatRequest) (*dto.SendChatResponse, error)
	Reset(ctx context.Context, founderID string, personaRaw string) (*dto.ResetChatResponse, error)
}

type chatService struct {
	registry  *session.Registry
	responder responder.IResponder
	docs      docstore.IStore
	log       logger.ILogger
}

func NewChatService(
	registry *session.Registry,
	resp responder.IResponder,
	docs docstore.IStore,
	log logger.ILogger,
) IChatService {
	return &chatService{
		registry:  registry,
		responder: resp,
		docs:      docs,
		log:       log,
	}
}

func (s *chatService) SendChat(ctx context.Context, req dto.SendChatRequest) (*dto.SendChatResponse, error) {
	p, err := persona.Parse(req.Persona)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPersona, err)
	}

	sess, err := s.registry.GetOrCreate(ctx, req.FounderId, p)
	if err != nil {
		return nil, err
	}

	// Mode and CreatedAt are immutable after creation; memory is not, so the
	// copy goes through the registry lock.
	mode := sess.Mode
	createdAt := sess.CreatedAt
	history := s.registry.History(req.FounderId, p)

	grounded := mode == session.ModeGrounded
	var snippets []string
	if grounded {
		chunks, err := s.docs.Query(ctx, req.FounderId, req.Message, retrievalLimit)
		if err != nil {
			// Generation still proceeds; a degraded answer beats a dead chat.
			s.log.Warn("ChatService", "Retrieval failed, answering without document context", map[string]interface{}{
				"founder_id": req.FounderId,
				"error":      err.Error(),
			})
		} else {
			snippets = make([]string, len(chunks))
			for i, c := range chunks {
				snippets[i] = c.Content
			}
		}
	}

	// Returning founders get a synthetic welcome-back prompt instead of their
	// message; it is never recorded as a conversation turn.
	outgoing := req.Message
	welcomeBack := req.IsReturning && len(history) > 0
	if welcomeBack {
		outgoing = constant.WelcomeBackPromptV1
	}

	reply, err := s.responder.Respond(ctx, responder.Request{
		Persona:         p,
		History:         history,
		UserMessage:     outgoing,
		ContextSnippets: snippets,
		Grounded:        grounded,
	})
	if err != nil {
		return nil, err
	}

	if welcomeBack {
		s.registry.Record(req.FounderId, p,
			session.Turn{Role: constant.ChatMessageRoleAssistant, Text: reply})
	} else {
		s.registry.Record(req.FounderId, p,
			session.Turn{Role: constant.ChatMessageRoleUser, Text: req.Message},
			session.Turn{Role: constant.ChatMessageRoleAssistant, Text: reply})
	}

	recorded := 2
	if welcomeBack {
		recorded = 1
	}
	return &dto.SendChatResponse{
		Reply:            reply,
		Persona:          p.String(),
		Mode:             string(mode),
		SessionCreatedAt: createdAt,
		Turns:            len(history) + recorded,
	}, nil
}

func (s *chatService) Reset(ctx context.Context, founderID string, personaRaw string) (*dto.ResetChatResponse, error) {
	var pp *persona.Persona
	if personaRaw != "" {
		p, err := persona.Parse(personaRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPersona, err)
		}
		pp = &p
	}

	cleared := s.registry.Reset(founderID, pp)

	resp := &dto.ResetChatResponse{
		FounderId:       founderID,
		SessionsCleared: cleared,
	}
	if pp != nil {
		resp.Persona = pp.String()
	}
	return resp, nil
}
