package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc-copilot-be/internal/constant"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/pkg/persona"
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

type fakeDocs struct {
	mu      sync.Mutex
	hasDocs map[string]bool
	err     error
	calls   int
}

func (f *fakeDocs) HasAnyDocuments(ctx context.Context, founderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.hasDocs[founderID], nil
}

func newTestRegistry(docs *fakeDocs) *Registry {
	return NewRegistry(docs, DefaultTokenBudget, nopLogger{})
}

func TestGetOrCreatePicksModeFromDocumentAvailability(t *testing.T) {
	docs := &fakeDocs{hasDocs: map[string]bool{"f-grounded": true}}
	r := newTestRegistry(docs)
	ctx := context.Background()

	plain, err := r.GetOrCreate(ctx, "f-plain", persona.SharkVC)
	require.NoError(t, err)
	assert.Equal(t, ModePlain, plain.Mode)

	grounded, err := r.GetOrCreate(ctx, "f-grounded", persona.SharkVC)
	require.NoError(t, err)
	assert.Equal(t, ModeGrounded, grounded.Mode)
}

func TestGetOrCreateReturnsSameSessionPerKey(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	a, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	b, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := r.GetOrCreate(ctx, "f1", persona.ProductPM)
	require.NoError(t, err)
	assert.NotSame(t, a, c, "personas are independent sessions")
	assert.Equal(t, 2, r.Len())
}

func TestGetOrCreateConcurrentSingleInstance(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	const n = 32
	results := make([]*Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := r.GetOrCreate(ctx, "f-race", persona.SharkVC)
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 1, r.Len())
}

func TestGetOrCreatePropagatesAvailabilityError(t *testing.T) {
	docs := &fakeDocs{err: context.DeadlineExceeded}
	r := newTestRegistry(docs)

	_, err := r.GetOrCreate(context.Background(), "f1", persona.SharkVC)
	require.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestUploadUpgradesPlainSessionWithMemoryCarryover(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	s, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	require.Equal(t, ModePlain, s.Mode)
	s.Memory.Append(constant.ChatMessageRoleUser, "what do you think of our deck?")
	s.Memory.Append(constant.ChatMessageRoleAssistant, "upload it and I'll tell you")

	// Upload lands: docs now exist and the plain session is detached.
	docs.mu.Lock()
	docs.hasDocs = map[string]bool{"f1": true}
	docs.mu.Unlock()
	r.OnDocumentsUploaded("f1")
	assert.Equal(t, 0, r.Len())

	next, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	assert.Equal(t, ModeGrounded, next.Mode)
	assert.Equal(t, 2, next.Memory.Len(), "history survives the upgrade")
}

func TestUploadLeavesGroundedSessionsAlone(t *testing.T) {
	docs := &fakeDocs{hasDocs: map[string]bool{"f1": true}}
	r := newTestRegistry(docs)
	ctx := context.Background()

	s, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	require.Equal(t, ModeGrounded, s.Mode)

	r.OnDocumentsUploaded("f1")

	again, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestUploadOnlyTouchesOwnFounder(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	mine, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	other, err := r.GetOrCreate(ctx, "f2", persona.SharkVC)
	require.NoError(t, err)

	r.OnDocumentsUploaded("f1")

	assert.Equal(t, 1, r.Len())
	stillOther, err := r.GetOrCreate(ctx, "f2", persona.SharkVC)
	require.NoError(t, err)
	assert.Same(t, other, stillOther)
	_ = mine
}

func TestResetWipesSessionAndCarryover(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	s, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	s.Memory.Append(constant.ChatMessageRoleUser, "remember this")

	// Detach into carryover, then reset before the founder chats again.
	r.OnDocumentsUploaded("f1")
	removed := r.Reset("f1", nil)
	assert.Equal(t, 0, removed, "session was already detached")

	docs.mu.Lock()
	docs.hasDocs = map[string]bool{"f1": true}
	docs.mu.Unlock()
	fresh, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Memory.Len(), "reset drops carried-over memory")
}

func TestResetSinglePersona(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	_, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)
	_, err = r.GetOrCreate(ctx, "f1", persona.ProductPM)
	require.NoError(t, err)

	p := persona.SharkVC
	removed := r.Reset("f1", &p)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, r.Len())
}

func TestSweepExpiresIdleSessionsAndCarryover(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	_, err := r.GetOrCreate(ctx, "f-idle", persona.SharkVC)
	require.NoError(t, err)
	_, err = r.GetOrCreate(ctx, "f-carry", persona.SharkVC)
	require.NoError(t, err)
	r.OnDocumentsUploaded("f-carry")

	removed := r.Sweep(time.Now().Add(DefaultIdleTimeout+time.Second), DefaultIdleTimeout)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, r.Len())

	// The orphaned carryover entry is gone too: a new session starts empty.
	s, err := r.GetOrCreate(ctx, "f-carry", persona.SharkVC)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Memory.Len())
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	_, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)

	r.Touch("f1", persona.SharkVC)
	removed := r.Sweep(time.Now().Add(time.Minute), 2*time.Minute)
	assert.Equal(t, 0, removed)
}

func TestHistoryMissingSession(t *testing.T) {
	r := newTestRegistry(&fakeDocs{})
	assert.Nil(t, r.History("nobody", persona.SharkVC))
}

func TestHistoryConcurrentWithRecord(t *testing.T) {
	docs := &fakeDocs{}
	r := newTestRegistry(docs)
	ctx := context.Background()

	_, err := r.GetOrCreate(ctx, "f1", persona.SharkVC)
	require.NoError(t, err)

	const exchanges = 100
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < exchanges; i++ {
			r.Record("f1", persona.SharkVC,
				Turn{Role: "user", Text: "q"},
				Turn{Role: "assistant", Text: "a"})
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < exchanges; i++ {
			// Both turns of an exchange are recorded under one lock, so a
			// copy may never observe half an exchange.
			turns := r.History("f1", persona.SharkVC)
			assert.Equal(t, 0, len(turns)%2)
		}
	}()

	wg.Wait()

	turns := r.History("f1", persona.SharkVC)
	assert.Len(t, turns, 2*exchanges)
}
