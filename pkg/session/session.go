package session

import (
	"time"

	"vc-copilot-be/pkg/persona"
)

// Mode says whether replies are grounded in the founder's documents.
type Mode string

const (
	// ModePlain generates without document retrieval.
	ModePlain Mode = "PLAIN"
	// ModeGrounded retrieves from the founder's uploaded documents per message.
	ModeGrounded Mode = "GROUNDED"
)

// Key identifies one conversation: a founder talking to one persona.
type Key struct {
	FounderID string
	Persona   persona.Persona
}

// Session is the live in-memory state for one key.
//
// Mode is derived from document availability at creation time and only ever
// flips Plain -> Grounded, by destroy-and-recreate with memory carryover.
// LastActivity is owned by the Registry and guarded by its lock.
type Session struct {
	Key          Key
	Mode         Mode
	Memory       *Memory
	CreatedAt    time.Time
	lastActivity time.Time
}

// LastActivity reports the last time this session served a request.
// Only meaningful while the Registry lock is held; exposed for the sweeper.
func (s *Session) LastActivity() time.Time {
	return s.lastActivity
}
