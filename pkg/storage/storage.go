package storage

import (
	"context"

	"github.com/google/uuid"

	"msme-ai-engine/pkg/models"
)

// ProductStore is the read/import boundary for product records.
// FindByID returns (nil, nil) when no record matches.
type ProductStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Upsert(ctx context.Context, product models.Product) error
	Count(ctx context.Context) (int, error)
}

// HistoryStore is the append-only prediction-history boundary.
type HistoryStore interface {
	Append(ctx context.Context, record models.HistoryRecord) error
	Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	Count(ctx context.Context) (int, error)
}
