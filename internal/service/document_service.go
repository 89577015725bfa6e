package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/pkg/docstore"
	"vc-copilot-be/pkg/events"
	pktNats "vc-copilot-be/pkg/nats"
	"vc-copilot-be/pkg/pdfx"
	"vc-copilot-be/pkg/session"
)

var (
	// ErrInvalidFile covers non-PDF uploads and PDFs with no extractable text.
	ErrInvalidFile = errors.New("invalid document file")
	// ErrFileTooLarge marks uploads above MaxUploadBytes.
	ErrFileTooLarge = errors.New("file too large")
)

// MaxUploadBytes caps one upload at 10MB.
const MaxUploadBytes = 10 << 20

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type IDocumentService interface {
	Upload(ctx context.Context, founderID, filename string, size int64, file io.ReaderAt) (*dto.UploadDocumentResponse, error)
}

type documentService struct {
	docs           docstore.IStore
	registry       *session.Registry
	analysis       IAnalysisService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewDocumentService(
	docs docstore.IStore,
	registry *session.Registry,
	analysisSvc IAnalysisService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		docs:           docs,
		registry:       registry,
		analysis:       analysisSvc,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// sanitizeFilename strips any path component and unsafe characters; the name
// is stored for display only.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(name) > 255 {
		name = name[len(name)-255:]
	}
	if name == "" || name == "." {
		name = "document.pdf"
	}
	return name
}

func (s *documentService) Upload(ctx context.Context, founderID, filename string, size int64, file io.ReaderAt) (*dto.UploadDocumentResponse, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("%w: only PDF files are accepted", ErrInvalidFile)
	}
	if size > MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, size, MaxUploadBytes)
	}

	text, pages, err := pdfx.ExtractText(file, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	safeName := sanitizeFilename(filename)
	doc, err := s.docs.Index(ctx, docstore.IndexRequest{
		FounderID: founderID,
		Filename:  safeName,
		SizeBytes: size,
		PageCount: pages,
		Content:   text,
	})
	if err != nil {
		return nil, err
	}

	// Plain sessions upgrade on the next message; memory carries over.
	s.registry.OnDocumentsUploaded(founderID)

	s.analysis.Invalidate(founderID)
	resp := &dto.UploadDocumentResponse{
		Id:         doc.Id,
		Filename:   safeName,
		SizeBytes:  size,
		PageCount:  pages,
		TextLength: len(text),
		UploadedAt: doc.CreatedAt,
	}

	analysisResp, err := s.analysis.Analyze(ctx, founderID)
	if err != nil {
		// The upload itself succeeded; analysis can be requested again.
		s.log.Warn("DocumentService", "Post-upload analysis failed", map[string]interface{}{
			"founder_id": founderID,
			"error":      err.Error(),
		})
	} else {
		resp.Analysis = analysisResp.Reports
	}

	if s.eventPublisher != nil {
		evt := events.NewBaseEvent(EventAnalysisReady, map[string]interface{}{
			"founder_id":  founderID,
			"document_id": doc.Id.String(),
			"filename":    safeName,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("DocumentService", "Failed to publish analysis event", map[string]interface{}{
				"founder_id": founderID,
				"error":      err.Error(),
			})
		}
	}

	s.log.Info("DocumentService", "Document uploaded", map[string]interface{}{
		"founder_id": founderID,
		"filename":   safeName,
		"pages":      pages,
		"bytes":      size,
	})
	return resp, nil
}
