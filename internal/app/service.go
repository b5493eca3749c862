package app

import (
	"bytes"
	"context"

	"github.com/enjleezdev/theappez/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web)
// call. It decouples presentation from business logic. Implementations
// must contain no fmt.Println, no ANSI codes, and no display logic of
// any kind.
type ApplicationService interface {
	// CreateWarehouse creates a warehouse owned by the given user.
	CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResult, error)

	// GetWarehouse returns one warehouse with its non-archived items.
	GetWarehouse(ctx context.Context, id string) (*WarehouseDetailResult, error)

	// ListWarehouses returns warehouses, most recently touched first.
	ListWarehouses(ctx context.Context, includeArchived bool) (*WarehouseListResult, error)

	// UpdateWarehouse changes a warehouse's name and description.
	UpdateWarehouse(ctx context.Context, id, name, description string) (*WarehouseResult, error)

	// ArchiveWarehouse soft-deletes a warehouse and all of its live items.
	ArchiveWarehouse(ctx context.Context, id string) error

	// RestoreWarehouse brings an archived warehouse back. Its items stay
	// archived and are restored individually.
	RestoreWarehouse(ctx context.Context, id string) error

	// CreateItem creates an item whose ledger starts with a CREATE_ITEM entry.
	CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResult, error)

	// GetItem returns one item with its full ledger.
	GetItem(ctx context.Context, id string) (*ItemResult, error)

	// ListItems returns the items of one warehouse.
	ListItems(ctx context.Context, warehouseID string, includeArchived bool) (*ItemListResult, error)

	// UpdateItem changes an item's name and location. Quantity is only
	// reachable through the stock operations.
	UpdateItem(ctx context.Context, id, name, location string) (*ItemResult, error)

	ArchiveItem(ctx context.Context, id string) error
	RestoreItem(ctx context.Context, id string) error

	// AddStock, ConsumeStock and AdjustStock record a ledger entry and the
	// new quantity atomically. Consuming below zero fails before any write.
	AddStock(ctx context.Context, itemID string, qty int64, comment string) (*ItemResult, error)
	ConsumeStock(ctx context.Context, itemID string, qty int64, comment string) (*ItemResult, error)
	AdjustStock(ctx context.Context, itemID string, delta int64, comment string) (*ItemResult, error)

	// GetTransactionReport flattens all live ledgers and applies the filter.
	GetTransactionReport(ctx context.Context, f core.ReportFilter) (*core.TransactionReport, error)

	// ExportTransactionReport renders the filtered report as an xlsx workbook.
	ExportTransactionReport(ctx context.Context, f core.ReportFilter) (*ExportResult, error)

	// PrintItemReport archives a deep copy of one item's ledger.
	PrintItemReport(ctx context.Context, itemID, printedBy string) (*core.ArchivedReport, error)

	// PrintWarehouseReport archives the warehouse's current item/quantity listing.
	PrintWarehouseReport(ctx context.Context, warehouseID, printedBy string) (*core.ArchivedReport, error)

	// PrintTransactionReport archives the filtered flattened transaction list.
	PrintTransactionReport(ctx context.Context, f core.ReportFilter, printedBy string) (*core.ArchivedReport, error)

	// ListArchivedReports returns stored reports, most recent first.
	// Reports whose snapshot no longer decodes appear header-only.
	ListArchivedReports(ctx context.Context) (*ArchiveListResult, error)

	// ReprintReport reconstructs the stored view of an archived report
	// purely from its snapshot, never from live data.
	ReprintReport(ctx context.Context, reportID string) (*ReprintResult, error)

	// SuggestStock asks the AI agent for a stock level recommendation
	// based on the item's recent ledger activity.
	SuggestStock(ctx context.Context, itemID string) (*SuggestionResult, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error)

	// RegisterUser creates a new account.
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*UserSession, error)

	// GetUser returns the profile for a user id.
	GetUser(ctx context.Context, userID string) (*core.User, error)
}

// ExportResult carries a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        *bytes.Buffer
}
