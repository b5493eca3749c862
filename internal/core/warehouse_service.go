package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WarehouseService manages warehouse records and their archive lifecycle.
// Archiving cascades to the warehouse's items within one transaction;
// restoring brings back only the warehouse itself.
type WarehouseService interface {
	CreateWarehouse(ctx context.Context, ownerID, name, description string) (*Warehouse, error)
	GetWarehouse(ctx context.Context, id string) (*Warehouse, error)
	// ListWarehouses returns warehouses ordered by updated_at descending,
	// so recently touched warehouses surface first.
	ListWarehouses(ctx context.Context, includeArchived bool) ([]Warehouse, error)
	UpdateWarehouse(ctx context.Context, id, name, description string) (*Warehouse, error)
	// ArchiveWarehouse soft-deletes the warehouse and every non-archived
	// item under it as one logical operation.
	ArchiveWarehouse(ctx context.Context, id string) error
	RestoreWarehouse(ctx context.Context, id string) error
}

type warehouseService struct {
	pool *pgxpool.Pool
}

// NewWarehouseService constructs a WarehouseService backed by PostgreSQL.
func NewWarehouseService(pool *pgxpool.Pool) WarehouseService {
	return &warehouseService{pool: pool}
}

const warehouseColumns = "id, owner_id, name, description, is_archived, created_at, updated_at"

func scanWarehouse(row pgx.Row) (*Warehouse, error) {
	w := &Warehouse{}
	err := row.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Description, &w.IsArchived, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("warehouse: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan warehouse: %w", err)
	}
	return w, nil
}

func (s *warehouseService) CreateWarehouse(ctx context.Context, ownerID, name, description string) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("warehouse name is required")
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO warehouses (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING `+warehouseColumns,
		ownerID, name, description)
	return scanWarehouse(row)
}

func (s *warehouseService) GetWarehouse(ctx context.Context, id string) (*Warehouse, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+warehouseColumns+" FROM warehouses WHERE id = $1", id)
	return scanWarehouse(row)
}

func (s *warehouseService) ListWarehouses(ctx context.Context, includeArchived bool) ([]Warehouse, error) {
	query := "SELECT " + warehouseColumns + " FROM warehouses"
	if !includeArchived {
		query += " WHERE is_archived = false"
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []Warehouse
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Description, &w.IsArchived, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func (s *warehouseService) UpdateWarehouse(ctx context.Context, id, name, description string) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("warehouse name is required")
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE warehouses
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+warehouseColumns,
		name, description, id)
	return scanWarehouse(row)
}

func (s *warehouseService) ArchiveWarehouse(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE warehouses SET is_archived = true, updated_at = NOW()
		WHERE id = $1 AND is_archived = false
	`, id)
	if err != nil {
		return fmt.Errorf("failed to archive warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("warehouse %s: %w", id, ErrNotFound)
	}

	// Cascade: the warehouse's live items go with it. Their ledgers are
	// untouched; archival never edits history.
	_, err = tx.Exec(ctx, `
		UPDATE items SET is_archived = true, updated_at = NOW()
		WHERE warehouse_id = $1 AND is_archived = false
	`, id)
	if err != nil {
		return fmt.Errorf("failed to archive items of warehouse %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit warehouse archive: %w", err)
	}
	return nil
}

func (s *warehouseService) RestoreWarehouse(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE warehouses SET is_archived = false, updated_at = NOW()
		WHERE id = $1 AND is_archived = true
	`, id)
	if err != nil {
		return fmt.Errorf("failed to restore warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("warehouse %s: %w", id, ErrNotFound)
	}
	return nil
}
