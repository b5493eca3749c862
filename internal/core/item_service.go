package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemService manages item records. Quantity-changing operations live on
// StockService; this service owns creation (which seeds the ledger with
// its CREATE_ITEM entry), metadata updates, and the archive lifecycle.
type ItemService interface {
	// CreateItem creates an item with an initial quantity and a ledger
	// holding exactly one CREATE_ITEM entry (before=0, change=initial).
	CreateItem(ctx context.Context, req CreateItemInput) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context, warehouseID string, includeArchived bool) ([]Item, error)
	// ListActiveItems returns every non-archived item with its ledger,
	// the input set of the report flattening pipeline.
	ListActiveItems(ctx context.Context) ([]Item, error)
	// UpdateItem changes name and location only; quantity and history are
	// out of reach of metadata edits.
	UpdateItem(ctx context.Context, id, name, location string) (*Item, error)
	ArchiveItem(ctx context.Context, id string) error
	RestoreItem(ctx context.Context, id string) error
}

// CreateItemInput carries the fields for a new item.
type CreateItemInput struct {
	WarehouseID     string
	OwnerID         string
	Name            string
	Location        string
	InitialQuantity int64
	Comment         string
}

type itemService struct {
	pool *pgxpool.Pool
}

// NewItemService constructs an ItemService backed by PostgreSQL.
func NewItemService(pool *pgxpool.Pool) ItemService {
	return &itemService{pool: pool}
}

const itemColumns = "id, warehouse_id, owner_id, name, quantity, location, is_archived, history, created_at, updated_at"

func scanItem(row pgx.Row) (*Item, error) {
	it := &Item{}
	var history []byte
	err := row.Scan(&it.ID, &it.WarehouseID, &it.OwnerID, &it.Name, &it.Quantity,
		&it.Location, &it.IsArchived, &history, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	if err := json.Unmarshal(history, &it.History); err != nil {
		return nil, fmt.Errorf("failed to decode item history: %w", err)
	}
	return it, nil
}

func (s *itemService) CreateItem(ctx context.Context, req CreateItemInput) (*Item, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if req.InitialQuantity < 0 {
		return nil, fmt.Errorf("initial quantity must not be negative, got %d", req.InitialQuantity)
	}

	entry, err := NextEntry(uuid.NewString(), EntryCreateItem, 0, req.InitialQuantity, req.Comment, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal([]HistoryEntry{entry})
	if err != nil {
		return nil, fmt.Errorf("failed to encode item history: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO items (warehouse_id, owner_id, name, quantity, location, history)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns,
		req.WarehouseID, req.OwnerID, req.Name, entry.QuantityAfter, req.Location, history)
	item, err := scanItem(row)
	if err != nil {
		return nil, err
	}

	s.touchWarehouse(ctx, item.WarehouseID)
	return item, nil
}

func (s *itemService) GetItem(ctx context.Context, id string) (*Item, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+itemColumns+" FROM items WHERE id = $1", id)
	return scanItem(row)
}

func (s *itemService) ListItems(ctx context.Context, warehouseID string, includeArchived bool) ([]Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE warehouse_id = $1"
	if !includeArchived {
		query += " AND is_archived = false"
	}
	query += " ORDER BY updated_at DESC"
	return s.queryItems(ctx, query, warehouseID)
}

func (s *itemService) ListActiveItems(ctx context.Context) ([]Item, error) {
	return s.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE is_archived = false ORDER BY updated_at DESC")
}

func (s *itemService) queryItems(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var history []byte
		if err := rows.Scan(&it.ID, &it.WarehouseID, &it.OwnerID, &it.Name, &it.Quantity,
			&it.Location, &it.IsArchived, &history, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if err := json.Unmarshal(history, &it.History); err != nil {
			return nil, fmt.Errorf("failed to decode item history: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *itemService) UpdateItem(ctx context.Context, id, name, location string) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE items SET name = $1, location = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+itemColumns,
		name, location, id)
	return scanItem(row)
}

func (s *itemService) ArchiveItem(ctx context.Context, id string) error {
	return s.setArchived(ctx, id, true)
}

func (s *itemService) RestoreItem(ctx context.Context, id string) error {
	return s.setArchived(ctx, id, false)
}

func (s *itemService) setArchived(ctx context.Context, id string, archived bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE items SET is_archived = $1, updated_at = NOW()
		WHERE id = $2 AND is_archived = $3
	`, archived, id, !archived)
	if err != nil {
		return fmt.Errorf("failed to update item archive state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return nil
}

// touchWarehouse refreshes the parent warehouse's updated_at marker,
// which only drives recency sorting of the warehouse list. Failure is
// logged and swallowed; it must never roll back an item write.
func (s *itemService) touchWarehouse(ctx context.Context, warehouseID string) {
	if _, err := s.pool.Exec(ctx,
		"UPDATE warehouses SET updated_at = NOW() WHERE id = $1", warehouseID); err != nil {
		log.Printf("failed to touch warehouse %s: %v", warehouseID, err)
	}
}
