package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short deck", DefaultChunkSize, DefaultChunkOverlap)
	assert.Equal(t, []string{"short deck"}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 25)
	chunks := SplitText(text, 10, 4)

	assert.True(t, len(chunks) > 1)
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-4:]
		assert.True(t, strings.HasPrefix(chunks[i], tail))
	}
}

func TestSplitTextInvalidSizesFallBackToDefaults(t *testing.T) {
	text := strings.Repeat("b", DefaultChunkSize+100)
	chunks := SplitText(text, 0, -1)

	assert.True(t, len(chunks) > 1)
	assert.Len(t, chunks[0], DefaultChunkSize)
}

func TestSplitTextOverlapAtLeastChunkSize(t *testing.T) {
	text := strings.Repeat("c", 30)
	chunks := SplitText(text, 10, 10)

	// Step falls back to the chunk size, so the split still terminates.
	assert.Equal(t, []string{
		strings.Repeat("c", 10),
		strings.Repeat("c", 10),
		strings.Repeat("c", 10),
	}, chunks)
}
