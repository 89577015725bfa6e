package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vc-copilot-be/pkg/session"
)

type stubReaderAt struct{}

func (stubReaderAt) ReadAt(p []byte, off int64) (int, error) { return 0, nil }

func newDocumentFixture(store *fakeStore) IDocumentService {
	registry := session.NewRegistry(store, 0, nopLogger{})
	analysisSvc, _ := newAnalysisFixture(store)
	return NewDocumentService(store, registry, analysisSvc, nil, nopLogger{})
}

func TestUploadRejectsNonPdf(t *testing.T) {
	svc := newDocumentFixture(&fakeStore{})

	_, err := svc.Upload(context.Background(), "alice@example.com", "notes.txt", 100, stubReaderAt{})
	assert.ErrorIs(t, err, ErrInvalidFile)

	_, err = svc.Upload(context.Background(), "alice@example.com", "deck", 100, stubReaderAt{})
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newDocumentFixture(&fakeStore{})

	_, err := svc.Upload(context.Background(), "alice@example.com", "deck.pdf", MaxUploadBytes+1, stubReaderAt{})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"deck.pdf":             "deck.pdf",
		"../../etc/passwd.pdf": "passwd.pdf",
		`C:\decks\pitch.pdf`:   "pitch.pdf",
		"my deck (v2).pdf":     "my_deck__v2_.pdf",
		"":                     "document.pdf",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeFilename(in), "input %q", in)
	}

	long := strings.Repeat("a", 300) + ".pdf"
	assert.LessOrEqual(t, len(sanitizeFilename(long)), 255)
}
