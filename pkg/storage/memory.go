package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"msme-ai-engine/pkg/models"
)

// MemoryProductStore is a mutex-guarded in-memory ProductStore. It backs
// tests and the no-database fallback mode.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]models.Product
}

// NewMemoryProductStore creates an empty in-memory product store.
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[uuid.UUID]models.Product),
	}
}

// SeedDemoProducts loads a small demo catalogue so the server is usable
// without a database.
func (s *MemoryProductStore) SeedDemoProducts() {
	ptr := func(v float64) *float64 { return &v }

	demo := []models.Product{
		{
			ID:            uuid.MustParse("7f9619ff-8b86-4d01-b42d-00cf4fc964ff"),
			Name:          "Masala Chai Blend 250g",
			BaseSales:     ptr(140),
			StockQuantity: ptr(35),
		},
		{
			ID:            uuid.MustParse("b1e92c3b-a44a-4856-9fde-d52c75f3d1f4"),
			Name:          "Handloom Cotton Scarf",
			BaseSales:     ptr(80),
			StockQuantity: ptr(150),
		},
		{
			// No sales/stock attributes on purpose, exercises the defaults.
			ID:   uuid.MustParse("3d2f8a10-6c4e-4b5a-9f37-1a2b3c4d5e6f"),
			Name: "Clay Water Bottle",
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, product := range demo {
		s.products[product.ID] = product
	}
}

// FindByID looks up one product. Absent products return (nil, nil).
func (s *MemoryProductStore) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// Upsert inserts or replaces a product record.
func (s *MemoryProductStore) Upsert(_ context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
	return nil
}

// Count returns the number of product records.
func (s *MemoryProductStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

// MemoryHistoryStore is a mutex-guarded in-memory HistoryStore.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	records []models.HistoryRecord
}

// NewMemoryHistoryStore creates an empty in-memory history store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{
		records: make([]models.HistoryRecord, 0),
	}
}

// Append stores one history record.
func (s *MemoryHistoryStore) Append(_ context.Context, record models.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *MemoryHistoryStore) Recent(_ context.Context, limit int) ([]models.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]models.HistoryRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

// Count returns the number of history records.
func (s *MemoryHistoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
