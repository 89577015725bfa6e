package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBaseEventStampsTimestamp(t *testing.T) {
	before := time.Now()
	evt := NewBaseEvent("ANALYSIS_READY", map[string]interface{}{"founder_id": "f1"})
	after := time.Now()

	assert.Equal(t, "ANALYSIS_READY", evt.EventType())
	assert.Equal(t, "f1", evt.Payload()["founder_id"])
	assert.False(t, evt.Timestamp().Before(before))
	assert.False(t, evt.Timestamp().After(after))
}
