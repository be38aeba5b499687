package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"msme-ai-engine/pkg/models"
)

// PostgresClient backs both the product store and the history store with a
// single connection pool.
type PostgresClient struct {
	db *sql.DB
}

// NewPostgresClient opens a pooled connection and verifies it with a ping.
func NewPostgresClient(databaseURL string) (*PostgresClient, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{db: db}, nil
}

// EnsureSchema creates the two tables if they do not exist yet.
func (p *PostgresClient) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			product_name TEXT NOT NULL,
			base_sales DOUBLE PRECISION,
			stock_quantity DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS prediction_history (
			id BIGSERIAL PRIMARY KEY,
			product_id UUID NOT NULL,
			recommended_price NUMERIC(12,2) NOT NULL,
			demand_level TEXT NOT NULL,
			inventory_action TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, statement := range statements {
		if _, err := p.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// FindByID looks up one product. Absent rows return (nil, nil).
func (p *PostgresClient) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
        SELECT id, product_name, base_sales, stock_quantity
        FROM products
        WHERE id = $1
    `

	var product models.Product
	var baseSales, stockQuantity sql.NullFloat64
	err := p.db.QueryRowContext(ctx, query, id).Scan(&product.ID, &product.Name, &baseSales, &stockQuantity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if baseSales.Valid {
		product.BaseSales = &baseSales.Float64
	}
	if stockQuantity.Valid {
		product.StockQuantity = &stockQuantity.Float64
	}

	return &product, nil
}

// Upsert inserts or replaces a product record.
func (p *PostgresClient) Upsert(ctx context.Context, product models.Product) error {
	query := `
        INSERT INTO products (id, product_name, base_sales, stock_quantity)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
        SET product_name = EXCLUDED.product_name,
            base_sales = EXCLUDED.base_sales,
            stock_quantity = EXCLUDED.stock_quantity
    `

	_, err := p.db.ExecContext(ctx, query, product.ID, product.Name,
		nullableFloat(product.BaseSales), nullableFloat(product.StockQuantity))
	return err
}

// Count returns the number of product records.
func (p *PostgresClient) Count(ctx context.Context) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// Append writes one prediction-history record.
func (p *PostgresClient) Append(ctx context.Context, record models.HistoryRecord) error {
	query := `
        INSERT INTO prediction_history (product_id, recommended_price, demand_level, inventory_action, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := p.db.ExecContext(ctx, query, record.ProductID, record.RecommendedPrice,
		record.DemandLevel, record.InventoryAction, record.CreatedAt)
	return err
}

// Recent returns the newest history records, newest first.
func (p *PostgresClient) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	query := `
        SELECT product_id, recommended_price, demand_level, inventory_action, created_at
        FROM prediction_history
        ORDER BY created_at DESC
        LIMIT $1
    `

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.HistoryRecord, 0, limit)
	for rows.Next() {
		var record models.HistoryRecord
		if err := rows.Scan(&record.ProductID, &record.RecommendedPrice,
			&record.DemandLevel, &record.InventoryAction, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// HistoryCount returns the number of history records.
func (p *PostgresClient) HistoryCount(ctx context.Context) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prediction_history`).Scan(&count)
	return count, err
}

// Health pings the database.
func (p *PostgresClient) Health() error {
	return p.db.Ping()
}

// Close releases the connection pool.
func (p *PostgresClient) Close() error {
	return p.db.Close()
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// historyStoreAdapter exposes the history side of the client under the
// HistoryStore interface, where Count means history count.
type historyStoreAdapter struct {
	client *PostgresClient
}

// HistoryStore returns the client viewed as a HistoryStore.
func (p *PostgresClient) HistoryStore() HistoryStore {
	return &historyStoreAdapter{client: p}
}

func (h *historyStoreAdapter) Append(ctx context.Context, record models.HistoryRecord) error {
	return h.client.Append(ctx, record)
}

func (h *historyStoreAdapter) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	return h.client.Recent(ctx, limit)
}

func (h *historyStoreAdapter) Count(ctx context.Context) (int, error) {
	return h.client.HistoryCount(ctx)
}
