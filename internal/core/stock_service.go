package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StockService is the stock mutation engine. Every quantity change goes
// through it: the engine validates the delta against current stock,
// constructs the ledger entry, and persists the new quantity and the
// appended entry in a single UPDATE so no reader can observe one without
// the other.
type StockService interface {
	// AddStock increases the quantity by qty (> 0).
	AddStock(ctx context.Context, itemID string, qty int64, comment string) (*Item, error)
	// ConsumeStock decreases the quantity by qty (> 0). Consuming more
	// than is on hand fails with *NegativeStockError before any write.
	ConsumeStock(ctx context.Context, itemID string, qty int64, comment string) (*Item, error)
	// AdjustStock applies a signed correction delta. The resulting
	// quantity must stay non-negative.
	AdjustStock(ctx context.Context, itemID string, delta int64, comment string) (*Item, error)
}

type stockService struct {
	pool *pgxpool.Pool
}

// NewStockService constructs a StockService backed by PostgreSQL.
func NewStockService(pool *pgxpool.Pool) StockService {
	return &stockService{pool: pool}
}

func (s *stockService) AddStock(ctx context.Context, itemID string, qty int64, comment string) (*Item, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("add quantity must be positive, got %d", qty)
	}
	return s.apply(ctx, itemID, EntryAddStock, qty, comment)
}

func (s *stockService) ConsumeStock(ctx context.Context, itemID string, qty int64, comment string) (*Item, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("consume quantity must be positive, got %d", qty)
	}
	return s.apply(ctx, itemID, EntryConsumeStock, -qty, comment)
}

func (s *stockService) AdjustStock(ctx context.Context, itemID string, delta int64, comment string) (*Item, error) {
	if delta == 0 {
		return nil, fmt.Errorf("adjustment delta must not be zero")
	}
	return s.apply(ctx, itemID, EntryAdjustStock, delta, comment)
}

// apply runs one mutation. The item row is locked FOR UPDATE inside the
// transaction, so two concurrent mutations on the same item serialize at
// the row instead of losing an update.
func (s *stockService) apply(ctx context.Context, itemID string, entryType EntryType, delta int64, comment string) (*Item, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	item := &Item{}
	var history []byte
	err = tx.QueryRow(ctx, `
		SELECT id, warehouse_id, owner_id, name, quantity, location, is_archived, history, created_at, updated_at
		FROM items
		WHERE id = $1
		FOR UPDATE
	`, itemID).Scan(&item.ID, &item.WarehouseID, &item.OwnerID, &item.Name, &item.Quantity,
		&item.Location, &item.IsArchived, &history, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load item %s: %w", itemID, err)
	}
	if err := json.Unmarshal(history, &item.History); err != nil {
		return nil, fmt.Errorf("failed to decode item history: %w", err)
	}
	if item.IsArchived {
		return nil, fmt.Errorf("item %q is archived and cannot be mutated", item.Name)
	}

	entry, err := NextEntry(uuid.NewString(), entryType, item.Quantity, delta, comment, time.Now().UTC())
	if err != nil {
		var nse *NegativeStockError
		if errors.As(err, &nse) {
			nse.ItemID = item.ID
		}
		return nil, err
	}

	item.History = append(item.History, entry)
	item.Quantity = entry.QuantityAfter
	encoded, err := json.Marshal(item.History)
	if err != nil {
		return nil, fmt.Errorf("failed to encode item history: %w", err)
	}

	// Quantity and appended entry travel in one statement. Partial
	// application is never observable.
	var updatedAt time.Time
	err = tx.QueryRow(ctx, `
		UPDATE items SET quantity = $1, history = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`, item.Quantity, encoded, item.ID).Scan(&updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update item %s: %w", item.ID, err)
	}
	item.UpdatedAt = updatedAt

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit stock mutation: %w", err)
	}

	// Refresh the parent warehouse's recency marker. Best effort only: a
	// failure here must not undo the committed mutation.
	if _, err := s.pool.Exec(ctx,
		"UPDATE warehouses SET updated_at = NOW() WHERE id = $1", item.WarehouseID); err != nil {
		log.Printf("failed to touch warehouse %s after stock mutation: %v", item.WarehouseID, err)
	}

	return item, nil
}
