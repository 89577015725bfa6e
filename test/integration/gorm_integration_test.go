package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/repository/specification"
	"vc-copilot-be/internal/repository/unitofwork"
	"vc-copilot-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	return unitofwork.NewRepositoryFactory(gormDB)
}

func TestGormConnection(t *testing.T) {
	uowFactory := newTestFactory(t)
	uow := uowFactory.NewUnitOfWork(context.Background())

	// Verify Wiring
	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.DocumentChunkRepository())
	assert.NotNil(t, uow.AnalysisReportRepository())
}

func TestDocumentRoundTrip(t *testing.T) {
	uowFactory := newTestFactory(t)
	ctx := context.Background()

	founderID := "integration-" + uuid.NewString() + "@example.com"

	uow := uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	doc := &entity.Document{
		Id:        uuid.New(),
		FounderId: founderID,
		Filename:  "deck.pdf",
		SizeBytes: 1024,
		PageCount: 12,
		Content:   "Our team of ex-Google engineers targets a $2B market.",
	}
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))

	exists, err := uow.DocumentRepository().ExistsForFounder(ctx, founderID)
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := uow.DocumentRepository().FindOne(ctx, specification.ByFounderId{FounderId: founderID})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "deck.pdf", found.Filename)
	assert.Equal(t, 12, found.PageCount)

	// Rolled back, nothing persists.
}
