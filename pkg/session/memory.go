package session

// Turn is one utterance in a conversation.
type Turn struct {
	Role string `json:"role"` // "user" | "assistant"
	Text string `json:"text"`
}

// DefaultTokenBudget bounds how much history a session memory retains.
const DefaultTokenBudget = 1500

// Memory is an ordered, token-bounded conversation log. When the budget is
// exceeded the oldest turns are evicted first, preserving recency.
//
// Memory is not safe for concurrent use on its own; the Registry serializes
// access per session key and interleaved appends from parallel requests on one
// key are accepted as best-effort.
type Memory struct {
	turns  []Turn
	budget int
}

// NewMemory creates an empty memory with the given token budget.
// A budget <= 0 falls back to DefaultTokenBudget.
func NewMemory(budget int) *Memory {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	return &Memory{budget: budget}
}

// NewMemoryFromTurns seeds a memory at construction time, e.g. from a
// carryover snapshot. The seed is evicted down to budget like any append.
func NewMemoryFromTurns(budget int, turns []Turn) *Memory {
	m := NewMemory(budget)
	m.turns = append(m.turns, turns...)
	m.evict()
	return m
}

// estimateTokens approximates token usage from character count.
// Four characters per token is the usual heuristic for English prose.
func estimateTokens(text string) int {
	return len(text)/4 + 1
}

// Append adds a turn and evicts from the oldest end until under budget.
func (m *Memory) Append(role, text string) {
	m.turns = append(m.turns, Turn{Role: role, Text: text})
	m.evict()
}

func (m *Memory) evict() {
	total := 0
	for _, t := range m.turns {
		total += estimateTokens(t.Text)
	}
	for total > m.budget && len(m.turns) > 1 {
		total -= estimateTokens(m.turns[0].Text)
		m.turns = m.turns[1:]
	}
}

// Snapshot returns a detached copy of the turns. Mutating the copy never
// affects the live memory; this is what carryover and responders consume.
func (m *Memory) Snapshot() []Turn {
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of retained turns.
func (m *Memory) Len() int {
	return len(m.turns)
}
