package contract

import (
	"context"

	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// ExistsForFounder is the hot path behind session mode selection.
	ExistsForFounder(ctx context.Context, founderId string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
