package responder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc-copilot-be/internal/constant"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/pkg/llm"
	"vc-copilot-be/pkg/persona"
	"vc-copilot-be/pkg/session"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

type fakeProvider struct {
	reply    string
	err      error
	delay    time.Duration
	lastMsgs []llm.Message
	lastOpts llm.Options
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastMsgs = history
	opts := llm.Options{}
	for _, o := range options {
		o(&opts)
	}
	f.lastOpts = opts

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func TestRespondUsesPersonaModelAndLimits(t *testing.T) {
	fake := &fakeProvider{reply: "Tighten the deck to twelve slides."}
	r := New(fake, 0, nopLogger{})

	reply, err := r.Respond(context.Background(), Request{
		Persona:     persona.SharkVC,
		UserMessage: "Any feedback on our pitch?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tighten the deck to twelve slides.", reply)

	cfg := persona.GetConfig(persona.SharkVC)
	assert.Equal(t, cfg.Model, fake.lastOpts.Model)
	assert.Equal(t, cfg.MaxTokens, fake.lastOpts.MaxTokens)
	assert.InDelta(t, cfg.Temperature, fake.lastOpts.Temperature, 0.001)
}

func TestRespondBuildsSystemHistoryUserOrder(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	r := New(fake, 0, nopLogger{})

	_, err := r.Respond(context.Background(), Request{
		Persona: persona.ProductPM,
		History: []session.Turn{
			{Role: constant.ChatMessageRoleUser, Text: "earlier question"},
			{Role: constant.ChatMessageRoleAssistant, Text: "earlier answer"},
		},
		UserMessage: "new question",
	})
	require.NoError(t, err)

	require.Len(t, fake.lastMsgs, 4)
	assert.Equal(t, constant.ChatMessageRoleSystem, fake.lastMsgs[0].Role)
	assert.Equal(t, "earlier question", fake.lastMsgs[1].Content)
	assert.Equal(t, "earlier answer", fake.lastMsgs[2].Content)
	assert.Equal(t, "new question", fake.lastMsgs[3].Content)
}

func TestRespondGroundedIncludesDocumentExcerpts(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	r := New(fake, 0, nopLogger{})

	_, err := r.Respond(context.Background(), Request{
		Persona:         persona.SharkVC,
		UserMessage:     "How does our traction look?",
		ContextSnippets: []string{"MRR reached $42k in June", "Churn fell to 2.1%"},
		Grounded:        true,
	})
	require.NoError(t, err)

	sys := fake.lastMsgs[0].Content
	assert.Contains(t, sys, "MRR reached $42k in June")
	assert.Contains(t, sys, "Churn fell to 2.1%")
	assert.Contains(t, sys, strings.TrimSpace(constant.GroundedPromptSuffixV1))
}

func TestRespondPlainOmitsDocumentInstructions(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	r := New(fake, 0, nopLogger{})

	_, err := r.Respond(context.Background(), Request{
		Persona:     persona.SharkVC,
		UserMessage: "What do seed investors look for?",
	})
	require.NoError(t, err)

	sys := fake.lastMsgs[0].Content
	assert.Contains(t, sys, strings.TrimSpace(constant.PlainPromptSuffixV1))
	assert.NotContains(t, sys, strings.TrimSpace(constant.GroundedPromptSuffixV1))
}

func TestRespondStripsCitationsFromReply(t *testing.T) {
	fake := &fakeProvider{reply: "Median seed dilution is 20%[1][2]. Plan for it. [3]"}
	r := New(fake, 0, nopLogger{})

	reply, err := r.Respond(context.Background(), Request{
		Persona:     persona.SharkVC,
		UserMessage: "How much dilution is normal?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Median seed dilution is 20%. Plan for it.", reply)
}

func TestRespondEmptyReplyFallsBackToApology(t *testing.T) {
	fake := &fakeProvider{reply: "  [1] "}
	r := New(fake, 0, nopLogger{})

	reply, err := r.Respond(context.Background(), Request{
		Persona:     persona.ProductPM,
		UserMessage: "thoughts?",
	})
	require.NoError(t, err)
	assert.Equal(t, constant.FallbackApologyReplyV1, reply)
}

func TestRespondTimeoutMapsToGenerationTimeout(t *testing.T) {
	fake := &fakeProvider{reply: "late", delay: 200 * time.Millisecond}
	r := New(fake, 20*time.Millisecond, nopLogger{})

	_, err := r.Respond(context.Background(), Request{
		Persona:     persona.SharkVC,
		UserMessage: "hello",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationTimeout))
}

func TestRespondUpstreamErrorMapsToGenerationFailure(t *testing.T) {
	fake := &fakeProvider{err: errors.New("status 429")}
	r := New(fake, 0, nopLogger{})

	_, err := r.Respond(context.Background(), Request{
		Persona:     persona.SharkVC,
		UserMessage: "hello",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailure))
}

func TestRespondNilProviderIsConfigError(t *testing.T) {
	r := New(nil, 0, nopLogger{})

	_, err := r.Respond(context.Background(), Request{
		Persona:     persona.SharkVC,
		UserMessage: "hello",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamConfig))
}
