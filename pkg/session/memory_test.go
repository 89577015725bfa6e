package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vc-copilot-be/internal/constant"
)

func TestMemoryAppendAndSnapshot(t *testing.T) {
	m := NewMemory(DefaultTokenBudget)

	m.Append(constant.ChatMessageRoleUser, "What traction do investors expect at seed?")
	m.Append(constant.ChatMessageRoleAssistant, "Roughly 10k MRR or strong weekly growth.")

	turns := m.Snapshot()
	assert.Len(t, turns, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, turns[0].Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, turns[1].Role)
}

func TestMemorySnapshotIsDetached(t *testing.T) {
	m := NewMemory(DefaultTokenBudget)
	m.Append(constant.ChatMessageRoleUser, "hello")

	snap := m.Snapshot()
	snap[0].Text = "mutated"
	m.Append(constant.ChatMessageRoleAssistant, "hi there")

	fresh := m.Snapshot()
	assert.Equal(t, "hello", fresh[0].Text)
	assert.Len(t, snap, 1)
}

func TestMemoryEvictsOldestFirstWhenOverBudget(t *testing.T) {
	// Budget of 100 tokens with ~26-token turns holds at most three.
	m := NewMemory(100)
	long := strings.Repeat("abcd ", 20)

	m.Append(constant.ChatMessageRoleUser, "first "+long)
	m.Append(constant.ChatMessageRoleAssistant, "second "+long)
	m.Append(constant.ChatMessageRoleUser, "third "+long)
	m.Append(constant.ChatMessageRoleAssistant, "fourth "+long)

	turns := m.Snapshot()
	for _, turn := range turns {
		assert.False(t, strings.HasPrefix(turn.Text, "first"), "oldest turn should have been evicted")
	}
	assert.True(t, strings.HasPrefix(turns[len(turns)-1].Text, "fourth"), "newest turn must survive")
}

func TestMemoryKeepsNewestTurnEvenWhenOversized(t *testing.T) {
	m := NewMemory(10)
	huge := strings.Repeat("x", 4000)

	m.Append(constant.ChatMessageRoleUser, "small")
	m.Append(constant.ChatMessageRoleAssistant, huge)

	turns := m.Snapshot()
	assert.Len(t, turns, 1)
	assert.Equal(t, huge, turns[0].Text)
}

func TestNewMemoryFromTurnsAppliesBudget(t *testing.T) {
	long := strings.Repeat("word ", 100) // ~126 tokens per turn
	seed := []Turn{
		{Role: constant.ChatMessageRoleUser, Text: "old " + long},
		{Role: constant.ChatMessageRoleAssistant, Text: "mid " + long},
		{Role: constant.ChatMessageRoleUser, Text: "new " + long},
	}

	m := NewMemoryFromTurns(200, seed)
	turns := m.Snapshot()
	assert.NotEmpty(t, turns)
	assert.True(t, strings.HasPrefix(turns[len(turns)-1].Text, "new"))
	for _, turn := range turns {
		assert.False(t, strings.HasPrefix(turn.Text, "old"))
	}
}

func TestNewMemoryDefaultsBudget(t *testing.T) {
	m := NewMemory(0)
	m.Append(constant.ChatMessageRoleUser, "anything")
	assert.Equal(t, 1, m.Len())
}
