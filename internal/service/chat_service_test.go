package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc-copilot-be/internal/constant"
	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/pkg/docstore"
	"vc-copilot-be/pkg/persona"
	"vc-copilot-be/pkg/responder"
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

type fakeStore struct {
	hasDocs  bool
	docsErr  error
	chunks   []docstore.Chunk
	queryErr error
	content  string

	lastQuery string
}

func (f *fakeStore) HasAnyDocuments(ctx context.Context, founderID string) (bool, error) {
	return f.hasDocs, f.docsErr
}

func (f *fakeStore) Query(ctx context.Context, founderID, queryText string, limit int) ([]docstore.Chunk, error) {
	f.lastQuery = queryText
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.chunks, nil
}

func (f *fakeStore) Index(ctx context.Context, req docstore.IndexRequest) (*entity.Document, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) CombinedContent(ctx context.Context, founderID string) (string, error) {
	return f.content, nil
}

type fakeResponder struct {
	reply   string
	err     error
	lastReq responder.Request
	calls   int
}

func (f *fakeResponder) Respond(ctx context.Context, req responder.Request) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newChatFixture(store *fakeStore, resp *fakeResponder) IChatService {
	registry := session.NewRegistry(store, 0, nopLogger{})
	return NewChatService(registry, resp, store, nopLogger{})
}

func TestSendChatPlainMode(t *testing.T) {
	store := &fakeStore{hasDocs: false}
	resp := &fakeResponder{reply: "Hello founder."}
	svc := newChatFixture(store, resp)

	res, err := svc.SendChat(context.Background(), dto.SendChatRequest{
		FounderId: "alice@example.com",
		Persona:   "Shark VC",
		Message:   "How do I price my seed round?",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello founder.", res.Reply)
	assert.Equal(t, "PLAIN", res.Mode)
	assert.Equal(t, "Shark VC", res.Persona)
	assert.Equal(t, 2, res.Turns)

	assert.False(t, resp.lastReq.Grounded)
	assert.Empty(t, resp.lastReq.ContextSnippets)
	assert.Equal(t, "How do I price my seed round?", resp.lastReq.UserMessage)
}

func TestSendChatGroundedUsesRetrievedChunks(t *testing.T) {
	store := &fakeStore{
		hasDocs: true,
		chunks: []docstore.Chunk{
			{Content: "We have 40 paying customers.", Similarity: 0.9},
			{Content: "MRR grew 20% month over month.", Similarity: 0.8},
		},
	}
	resp := &fakeResponder{reply: "Strong traction."}
	svc := newChatFixture(store, resp)

	res, err := svc.SendChat(context.Background(), dto.SendChatRequest{
		FounderId: "alice@example.com",
		Persona:   "Shark VC",
		Message:   "What do you think of our traction?",
	})
	require.NoError(t, err)

	assert.Equal(t, "GROUNDED", res.Mode)
	assert.True(t, resp.lastReq.Grounded)
	assert.Equal(t, "What do you think of our traction?", store.lastQuery)
	require.Len(t, resp.lastReq.ContextSnippets, 2)
	assert.Equal(t, "We have 40 paying customers.", resp.lastReq.ContextSnippets[0])
}

func TestSendChatRetrievalFailureStillAnswers(t *testing.T) {
	store := &fakeStore{hasDocs: true, queryErr: errors.New("pg down")}
	resp := &fakeResponder{reply: "Answer without context."}
	svc := newChatFixture(store, resp)

	res, err := svc.SendChat(context.Background(), dto.SendChatRequest{
		FounderId: "alice@example.com",
		Persona:   "Product Manager",
		Message:   "Prioritize my roadmap",
	})
	require.NoError(t, err)

	assert.Equal(t, "Answer without context.", res.Reply)
	assert.True(t, resp.lastReq.Grounded)
	assert.Empty(t, resp.lastReq.ContextSnippets)
}

func TestSendChatInvalidPersona(t *testing.T) {
	svc := newChatFixture(&fakeStore{}, &fakeResponder{reply: "x"})

	_, err := svc.SendChat(context.Background(), dto.SendChatRequest{
		FounderId: "alice@example.com",
		Persona:   "Astrologer",
		Message:   "hi",
	})
	assert.ErrorIs(t, err, ErrInvalidPersona)
}

func TestSendChatHistoryAccumulates(t *testing.T) {
	store := &fakeStore{}
	resp := &fakeResponder{reply: "reply"}
	svc := newChatFixture(store, resp)

	ctx := context.Background()
	req := dto.SendChatRequest{FounderId: "alice@example.com", Persona: "Shark VC", Message: "first"}

	res, err := svc.SendChat(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Turns)

	req.Message = "second"
	res, err = svc.SendChat(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Turns)

	// The second call sees the first exchange as history.
	require.Len(t, resp.lastReq.History, 2)
	assert.Equal(t, "first", resp.lastReq.History[0].Text)
	assert.Equal(t, "reply", resp.lastReq.History[1].Text)
}

func TestSendChatWelcomeBack(t *testing.T) {
	store := &fakeStore{}
	resp := &fakeResponder{reply: "first reply"}
	svc := newChatFixture(store, resp)

	ctx := context.Background()
	_, err := svc.SendChat(ctx, dto.SendChatRequest{
		FounderId: "alice@example.com", Persona: "Shark VC", Message: "first",
	})
	require.NoError(t, err)

	resp.reply = "Welcome back! We were discussing pricing."
	res, err := svc.SendChat(ctx, dto.SendChatRequest{
		FounderId:   "alice@example.com",
		Persona:     "Shark VC",
		Message:     "ignored",
		IsReturning: true,
	})
	require.NoError(t, err)

	// The synthetic prompt replaces the user message and only the reply counts.
	assert.Equal(t, constant.WelcomeBackPromptV1, resp.lastReq.UserMessage)
	assert.Equal(t, 3, res.Turns)

	res, err = svc.SendChat(ctx, dto.SendChatRequest{
		FounderId: "alice@example.com", Persona: "Shark VC", Message: "third",
	})
	require.NoError(t, err)
	require.Len(t, resp.lastReq.History, 3)
	assert.Equal(t, "Welcome back! We were discussing pricing.", resp.lastReq.History[2].Text)
	assert.Equal(t, constant.ChatMessageRoleAssistant, resp.lastReq.History[2].Role)
}

func TestSendChatWelcomeBackFirstContact(t *testing.T) {
	store := &fakeStore{}
	resp := &fakeResponder{reply: "reply"}
	svc := newChatFixture(store, resp)

	// With no prior history the flag is ignored.
	res, err := svc.SendChat(context.Background(), dto.SendChatRequest{
		FounderId:   "alice@example.com",
		Persona:     "Shark VC",
		Message:     "hello",
		IsReturning: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello", resp.lastReq.UserMessage)
	assert.Equal(t, 2, res.Turns)
}

func TestSendChatResponderErrorPropagates(t *testing.T) {
	resp := &fakeResponder{err: responder.ErrGenerationTimeout}
	svc := newChatFixture(&fakeStore{}, resp)

	_, err := svc.SendChat(context.Background(), dto.SendChatRequest{
		FounderId: "alice@example.com", Persona: "Shark VC", Message: "hi",
	})
	assert.ErrorIs(t, err, responder.ErrGenerationTimeout)
}

func TestResetAllPersonas(t *testing.T) {
	store := &fakeStore{}
	resp := &fakeResponder{reply: "r"}
	svc := newChatFixture(store, resp)

	ctx := context.Background()
	for _, p := range persona.All() {
		_, err := svc.SendChat(ctx, dto.SendChatRequest{
			FounderId: "alice@example.com", Persona: p.String(), Message: "hi",
		})
		require.NoError(t, err)
	}

	res, err := svc.Reset(ctx, "alice@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.SessionsCleared)
	assert.Empty(t, res.Persona)
}

func TestResetSinglePersona(t *testing.T) {
	store := &fakeStore{}
	resp := &fakeResponder{reply: "r"}
	svc := newChatFixture(store, resp)

	ctx := context.Background()
	_, err := svc.SendChat(ctx, dto.SendChatRequest{
		FounderId: "alice@example.com", Persona: "Shark VC", Message: "hi",
	})
	require.NoError(t, err)

	res, err := svc.Reset(ctx, "alice@example.com", "Shark VC")
	require.NoError(t, err)
	assert.Equal(t, 1, res.SessionsCleared)
	assert.Equal(t, "Shark VC", res.Persona)

	_, err = svc.Reset(ctx, "alice@example.com", "Fortune Teller")
	assert.ErrorIs(t, err, ErrInvalidPersona)
}
